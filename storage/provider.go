// Package storage abstracts where document files live. The backend set
// is closed: local disk for development, Google Cloud Storage in
// production, chosen once at startup from configuration.
package storage

import (
	"context"
	"fmt"
	"io"

	"puna.nz/compliance/config"
)

// Provider stores and retrieves document blobs by key.
type Provider interface {
	// Put writes the object and returns the number of bytes stored.
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	// Get opens the object for reading; the caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// Name identifies the backend in logs.
	Name() string
}

// New constructs the provider selected by the configuration.
func New(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.Storage {
	case config.StorageLocal:
		return NewLocal(cfg.LocalDir)
	case config.StorageGCS:
		return NewGCS(ctx, cfg.GCSBucket)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage)
	}
}
