package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentParts caps simultaneous part uploads during Publish.
const maxConcurrentParts = 4

// MissingETagError is returned when a storage backend accepts a part
// upload but does not echo an ETag header. The upload cannot be finished
// without one.
type MissingETagError struct {
	Part int
}

func (e *MissingETagError) Error() string {
	return fmt.Sprintf("upload part %d: response has no ETag header", e.Part)
}

// InitiateUpload opens a multipart upload for a file of the given size.
// The response carries presigned URLs for each part. Callers that just
// want to publish an archive should use Publish instead.
func (a *API) InitiateUpload(ctx context.Context, name string, size int64) (*InitiateUploadResponse, error) {
	params := initiateUploadParams{Name: name, Size: size}
	var resp InitiateUploadResponse
	if err := a.http.PostJSON(ctx, a.usermediaURL("initiate-upload"), params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AbortUpload cancels an in-progress upload. Parts already uploaded are
// discarded by the server.
func (a *API) AbortUpload(ctx context.Context, id uuid.UUID) error {
	return a.http.PostJSON(ctx, a.usermediaURL(id.String()+"/abort-multipart-upload"), struct{}{}, nil)
}

// FinishUpload completes a multipart upload from the collected part tags.
func (a *API) FinishUpload(ctx context.Context, id uuid.UUID, parts []CompletedPart) (*UserMedia, error) {
	params := finishUploadParams{Parts: parts}
	var media UserMedia
	if err := a.http.PostJSON(ctx, a.usermediaURL(id.String()+"/finish-upload"), params, &media); err != nil {
		return nil, err
	}
	return &media, nil
}

// UploadPart PUTs one chunk of data to its presigned URL and returns the
// completed part record.
func (a *API) UploadPart(ctx context.Context, part UploadPartURL, chunk []byte) (CompletedPart, error) {
	resp, err := a.http.Do(ctx, http.MethodPut, part.URL, chunk, nil)
	if err != nil {
		return CompletedPart{}, fmt.Errorf("upload part %d: %w", part.Number, err)
	}
	defer resp.Body.Close()

	tag := resp.Header.Get("ETag")
	if tag == "" {
		return CompletedPart{}, &MissingETagError{Part: part.Number}
	}
	return CompletedPart{Tag: tag, Number: part.Number}, nil
}

// Upload sends data as a complete multipart upload: initiate, PUT every
// part concurrently, finish. The upload is aborted on failure.
func (a *API) Upload(ctx context.Context, name string, data []byte) (*UserMedia, error) {
	initiated, err := a.InitiateUpload(ctx, name, int64(len(data)))
	if err != nil {
		return nil, err
	}
	id := initiated.UserMedia.UUID

	parts := make([]CompletedPart, len(initiated.UploadURLs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentParts)
	for i, part := range initiated.UploadURLs {
		g.Go(func() error {
			end := part.Offset + part.Length
			if part.Offset < 0 || end > int64(len(data)) {
				return fmt.Errorf("upload part %d: range [%d, %d) outside file of %d bytes",
					part.Number, part.Offset, end, len(data))
			}
			done, err := a.UploadPart(gctx, part, data[part.Offset:end])
			if err != nil {
				return err
			}
			parts[i] = done
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Best effort. The server expires abandoned uploads on its own.
		_ = a.AbortUpload(context.WithoutCancel(ctx), id)
		return nil, err
	}

	return a.FinishUpload(ctx, id, parts)
}

// Publish uploads a package archive and submits it for review.
// meta must carry at least the author namespace and one community.
func (a *API) Publish(ctx context.Context, name string, data []byte, meta *PackageMetadata) (*SubmissionResult, error) {
	media, err := a.Upload(ctx, name, data)
	if err != nil {
		return nil, err
	}
	return a.Submit(ctx, media.UUID, meta)
}

// PublishFile reads a package archive from disk and publishes it.
func (a *API) PublishFile(ctx context.Context, path string, meta *PackageMetadata) (*SubmissionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.Publish(ctx, filepath.Base(path), data, meta)
}
