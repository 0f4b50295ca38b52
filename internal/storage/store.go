package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrObjectNotFound is returned when a key has no stored object
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore stores exported artifacts
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	DownloadURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Drivers accepted by New
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Options selects and configures an ObjectStore
type Options struct {
	Driver string
	Local  LocalConfig
	S3     S3Config
}

// New creates the ObjectStore for the configured driver
func New(ctx context.Context, opts Options) (ObjectStore, error) {
	switch opts.Driver {
	case DriverLocal, "":
		return NewLocalStore(opts.Local)
	case DriverS3:
		return NewS3Store(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", opts.Driver)
	}
}

// cleanKey rejects keys that are empty or would escape the store root
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	return cleaned, nil
}
