package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modhaven/modhaven-go/ident"
)

var ErrNoMirror = errors.New("no mirror has the artifact")

// ArtifactInfo contains information about a downloadable artifact.
type ArtifactInfo struct {
	URL      string
	Filename string
}

// Resolver maps package versions to archive URLs across an instance and
// its mirrors. Mirrors are tried in registration order after the primary
// instance.
type Resolver struct {
	primary string
	mirrors []string
}

// NewResolver creates a resolver for the given instance base URL.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{primary: strings.TrimSuffix(baseURL, "/")}
}

// AddMirror registers a mirror host to fall back to when the primary
// instance does not serve an artifact.
func (r *Resolver) AddMirror(baseURL string) {
	r.mirrors = append(r.mirrors, strings.TrimSuffix(baseURL, "/"))
}

// Resolve returns the primary download URL and filename for a package
// version. version accepts any shape supported by ident.AsVersion.
func (r *Resolver) Resolve(version any) (*ArtifactInfo, error) {
	id, err := ident.AsVersion(version)
	if err != nil {
		return nil, err
	}
	return r.info(r.primary, id), nil
}

// Candidates returns the download URLs for a version across the primary
// instance and every registered mirror, in try order.
func (r *Resolver) Candidates(version any) ([]*ArtifactInfo, error) {
	id, err := ident.AsVersion(version)
	if err != nil {
		return nil, err
	}

	infos := make([]*ArtifactInfo, 0, 1+len(r.mirrors))
	infos = append(infos, r.info(r.primary, id))
	for _, mirror := range r.mirrors {
		infos = append(infos, r.info(mirror, id))
	}
	return infos, nil
}

// ResolveAvailable probes the primary instance and mirrors with HEAD
// requests and returns the first host that serves the artifact.
func (r *Resolver) ResolveAvailable(ctx context.Context, f FetcherInterface, version any) (*ArtifactInfo, error) {
	candidates, err := r.Candidates(version)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, info := range candidates {
		if _, _, err := f.Head(ctx, info.URL); err != nil {
			lastErr = err
			continue
		}
		return info, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoMirror, lastErr)
	}
	return nil, ErrNoMirror
}

func (r *Resolver) info(host string, id ident.VersionIdent) *ArtifactInfo {
	return &ArtifactInfo{
		URL:      fmt.Sprintf("%s/package/download/%s/", host, id.Path()),
		Filename: id.String() + ".zip",
	}
}
