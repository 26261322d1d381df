// Package storage mirrors generated outputs to an S3-compatible object store
// and hands out time-limited download links for them.
package storage

import (
	"context"
	"io"
	"path"
	"time"
)

// KeyPrefix is the object key prefix under which outputs are mirrored.
const KeyPrefix = "outputs"

// ObjectKey returns the object key of the output with the given final name.
func ObjectKey(name string) string {
	return path.Join(KeyPrefix, name)
}

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
}

// Storage is an S3-compatible object storage client.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
