// Package storage is the filesystem abstraction behind profile images.
//
// Two drivers are available:
//   - "local"  local filesystem, served by the HTTP kernel under its base URL
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Pick one at boot:
//
//	disk, err := storage.New(cfg)
//	_ = disk.Put(ctx, "profile-images/ab12.png", r, "image/png")
//	url := disk.URL("profile-images/ab12.png")
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/shashiranjanraj/catalog/config"
)

// Disk is the driver interface. Keys are slash-separated and relative to the
// disk root.
type Disk interface {
	// Put writes r to key, creating parent directories as needed.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error

	// Delete removes key. Returns nil if it did not exist.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key.
	URL(key string) string

	// Key is the inverse of URL: it recovers the key from a public URL this
	// disk produced.
	Key(publicURL string) (string, bool)
}

// New builds the disk named by cfg.StorageDisk.
func New(cfg *config.Config) (Disk, error) {
	switch cfg.StorageDisk {
	case "", "local":
		return NewLocal(cfg.StorageLocalRoot, cfg.StorageURL), nil
	case "s3":
		d, err := NewS3(context.Background(), S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Key:      cfg.S3Key,
			Secret:   cfg.S3Secret,
			Endpoint: cfg.S3Endpoint,
			BaseURL:  cfg.S3URL,
		})
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("storage: unknown disk %q", cfg.StorageDisk)
	}
}
