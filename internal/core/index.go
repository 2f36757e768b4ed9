package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// PackageIndex fetches the full package index and collects it in a slice.
// The index covers every version of every package on the instance; prefer
// StreamPackageIndex for anything that does not need the whole slice in
// memory.
func (a *API) PackageIndex(ctx context.Context) ([]IndexEntry, error) {
	stream, err := a.StreamPackageIndex(ctx)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var entries []IndexEntry
	for stream.Next() {
		entries = append(entries, *stream.Entry())
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// StreamPackageIndex fetches the package index and decodes its
// newline-delimited JSON incrementally:
//
//	stream, err := api.StreamPackageIndex(ctx)
//	if err != nil { ... }
//	defer stream.Close()
//	for stream.Next() {
//		entry := stream.Entry()
//	}
//	if err := stream.Err(); err != nil { ... }
func (a *API) StreamPackageIndex(ctx context.Context) (*IndexStream, error) {
	body, err := a.http.GetStream(ctx, a.experimentalURL("package-index"))
	if err != nil {
		return nil, err
	}
	return &IndexStream{body: body, dec: json.NewDecoder(body)}, nil
}

// IndexStream iterates over the NDJSON package index one entry at a time.
type IndexStream struct {
	body io.ReadCloser
	dec  *json.Decoder
	cur  IndexEntry
	err  error
	done bool
}

// Next advances to the next index entry. It returns false when the index
// is exhausted or an error occurred; check Err afterwards.
func (s *IndexStream) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	s.cur = IndexEntry{}
	if err := s.dec.Decode(&s.cur); err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("decoding index entry: %w", err)
		}
		s.done = true
		_ = s.body.Close()
		return false
	}
	return true
}

// Entry returns the entry decoded by the last successful Next call.
// The value is reused between calls; copy it if it must outlive the next
// Next.
func (s *IndexStream) Entry() *IndexEntry {
	return &s.cur
}

// Err returns the first error encountered while streaming.
func (s *IndexStream) Err() error {
	return s.err
}

// Close releases the underlying response. It is safe to call at any point
// and more than once.
func (s *IndexStream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.body.Close()
}
