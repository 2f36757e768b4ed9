package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/modhaven/modhaven-go/ident"
)

// ListPackages fetches every package listed in a community and collects
// them in a slice.
//
// community is the community's slug, usually in kebab-case. On large
// communities the response can run to tens of megabytes; prefer
// StreamPackages when the whole slice is not needed at once.
func (a *API) ListPackages(ctx context.Context, community string) ([]PackageV1, error) {
	var packages []PackageV1
	if err := a.http.GetJSON(ctx, a.v1URL(community, "package"), &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// StreamPackages fetches the community listing and decodes it
// incrementally, yielding one package at a time instead of buffering the
// whole response:
//
//	stream, err := api.StreamPackages(ctx, "content-warning")
//	if err != nil { ... }
//	defer stream.Close()
//	for stream.Next() {
//		pkg := stream.Package()
//	}
//	if err := stream.Err(); err != nil { ... }
func (a *API) StreamPackages(ctx context.Context, community string) (*PackageStream, error) {
	body, err := a.http.GetStream(ctx, a.v1URL(community, "package"))
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(body)
	tok, err := dec.Token()
	if err != nil {
		_ = body.Close()
		return nil, fmt.Errorf("reading listing: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		_ = body.Close()
		return nil, fmt.Errorf("reading listing: expected array, got %v", tok)
	}

	return &PackageStream{body: body, dec: dec}, nil
}

// PackageStream iterates over a community listing one package at a time.
type PackageStream struct {
	body io.ReadCloser
	dec  *json.Decoder
	cur  PackageV1
	err  error
	done bool
}

// Next advances to the next package. It returns false when the listing is
// exhausted or an error occurred; check Err afterwards.
func (s *PackageStream) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	if !s.dec.More() {
		// consume the closing bracket so a clean end is distinguishable
		// from a truncated response
		if _, err := s.dec.Token(); err != nil && err != io.EOF {
			s.err = fmt.Errorf("reading listing: %w", err)
		}
		s.done = true
		_ = s.body.Close()
		return false
	}

	s.cur = PackageV1{}
	if err := s.dec.Decode(&s.cur); err != nil {
		s.err = fmt.Errorf("decoding package: %w", err)
		_ = s.body.Close()
		return false
	}
	return true
}

// Package returns the package decoded by the last successful Next call.
// The value is reused between calls; copy it if it must outlive the next
// Next.
func (s *PackageStream) Package() *PackageV1 {
	return &s.cur
}

// Err returns the first error encountered while streaming.
func (s *PackageStream) Err() error {
	return s.err
}

// Close releases the underlying response. It is safe to call at any point
// and more than once.
func (s *PackageStream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.body.Close()
}

// Metrics fetches download metrics for a package within a community.
//
// community is the community's slug; pkg accepts any shape supported by
// ident.AsPackage.
func (a *API) Metrics(ctx context.Context, community string, pkg any) (*PackageMetrics, error) {
	id, err := ident.AsPackage(pkg)
	if err != nil {
		return nil, err
	}

	var m PackageMetrics
	url := a.v1URL(community, "package-metrics/"+id.Path())
	if err := a.http.GetJSON(ctx, url, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Downloads fetches the download count for a specific version of a package
// within a community.
func (a *API) Downloads(ctx context.Context, community string, version any) (int64, error) {
	id, err := ident.AsVersion(version)
	if err != nil {
		return 0, err
	}

	var m VersionMetrics
	url := a.v1URL(community, "package-metrics/"+id.Path())
	if err := a.http.GetJSON(ctx, url, &m); err != nil {
		return 0, err
	}
	return m.Downloads, nil
}
