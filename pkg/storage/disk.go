// Package storage stores uploaded product images.
//
// Two drivers are available: "local" keeps files under STORAGE_LOCAL_ROOT,
// served by the API at /storage/, and "s3" writes to S3-compatible object
// storage (AWS S3, MinIO, R2).
//
//	disk, _ := storage.Open(ctx)
//	_ = disk.Put(ctx, "products/abc.png", r, "image/png")
//	url := disk.URL("products/abc.png")
package storage

import (
	"context"
	"io"
)

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes r to path, creating parent directories as needed.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Get returns a ReadCloser for the file. Caller must close it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string

	Name() string
}
