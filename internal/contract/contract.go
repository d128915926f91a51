// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"io"
	"time"

	"github.com/huangsam/motionlens/schema"
)

// DataSource delivers the raw CSV bytes of a dataset.
// This allows the load path to be tested without touching disk or network.
type DataSource interface {
	// Name identifies the source in errors and cache keys.
	Name() string

	// Open returns a reader over the raw CSV. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Renderer draws one view frame through an external visualization library.
type Renderer interface {
	Render(frame schema.ViewFrame) error
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetDatasetStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	List() ([]schema.CacheEntry, error)
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// Recorder receives session telemetry. A nil Recorder disables it.
type Recorder interface {
	ObserveEvent(kind schema.EventKind, outcome string)
	ObserveRender(view schema.ViewKind, err error)
	ObserveProjection(view schema.ViewKind, d time.Duration)
	SetRecords(n int)
}
