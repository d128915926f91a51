// Package ingest loads a motion-intensity dataset: it fetches raw CSV from a
// source, decodes rows, normalizes them into typed records and derives the
// filter domain.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/huangsam/motionlens/internal/contract"
)

// DefaultFetchTimeout bounds a remote fetch when the context has no deadline.
const DefaultFetchTimeout = 30 * time.Second

// NewSource picks a file or HTTP source for src.
func NewSource(src string) contract.DataSource {
	if contract.IsRemoteSource(src) {
		return &HTTPSource{URL: src}
	}
	return &FileSource{Path: src}
}

// FileSource reads a CSV file from local disk.
type FileSource struct {
	Path string
}

var _ contract.DataSource = &FileSource{} // Compile-time check

// Name implements the DataSource interface.
func (s *FileSource) Name() string {
	return s.Path
}

// Open implements the DataSource interface.
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.Path)
}

// HTTPSource fetches a CSV over http(s).
type HTTPSource struct {
	URL    string
	Client *http.Client // nil uses a client with DefaultFetchTimeout
}

var _ contract.DataSource = &HTTPSource{} // Compile-time check

// Name implements the DataSource interface.
func (s *HTTPSource) Name() string {
	return s.URL
}

// Open implements the DataSource interface.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// BytesSource serves an in-memory CSV.
type BytesSource struct {
	Label string
	Data  []byte
}

var _ contract.DataSource = &BytesSource{} // Compile-time check

// Name implements the DataSource interface.
func (s *BytesSource) Name() string {
	return s.Label
}

// Open implements the DataSource interface.
func (s *BytesSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}
