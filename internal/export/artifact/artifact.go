// Package artifact stores rendered export outputs behind a thin S3-like
// abstraction with filesystem, S3/MinIO and in-memory drivers. Artifacts are
// rendered in memory before storage, so the interface trades in byte slices
// rather than streams.
package artifact

import (
	"context"
	"time"
)

// Driver identifies a concrete artifact storage backend.
type Driver string

const (
	// DriverFS is the local filesystem implementation (default, dev).
	DriverFS Driver = "fs"
	// DriverS3 is an S3 / MinIO compatible implementation.
	DriverS3 Driver = "s3"
	// DriverMemory is the in-memory implementation used in tests.
	DriverMemory Driver = "memory"
)

// Info describes a stored artifact.
type Info struct {
	Key         string    `json:"key"`
	Size        int64     `json:"size_bytes"`
	ContentType string    `json:"content_type,omitempty"`
	ETag        string    `json:"etag,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	URL         string    `json:"url,omitempty"`
}

// Store persists rendered export artifacts.
//
// Put is create-only: writing an existing key returns sentinel.ErrConflict
// (wrapped) so a rerun can never overwrite a published output. Get and Head
// return sentinel.ErrNotFound (wrapped) for missing keys.
type Store interface {
	Put(ctx context.Context, key string, payload []byte, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, []byte, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}
