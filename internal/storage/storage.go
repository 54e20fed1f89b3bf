// Package storage keeps customer photos and their cached thumbnails.
//
// Two providers implement Storage: LocalStorage for development and
// S3Storage for any S3-compatible bucket (AWS, R2, MinIO). The workspace only
// reads original photos; it writes nothing but derived thumbnails.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Storage is a minimal object store.
//
// All methods are context-aware for timeout and cancellation support.
type Storage interface {
	// Put stores data at key. Returns ErrKeyExists if the key is taken and
	// opts.Overwrite is false.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get retrieves the data at key. The caller must close the reader.
	// Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
}

// PutOptions configures how an object is stored.
type PutOptions struct {
	// ContentType is the MIME type. Detected from the key when empty.
	ContentType string

	// MaxSize is the maximum allowed size in bytes; 0 means no limit.
	MaxSize int64

	// Overwrite allows replacing an existing object at the same key.
	Overwrite bool
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string // Empty for local storage
}

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	// BasePath is the root directory where objects are stored.
	// Example: "./storage"
	BasePath string
}

// S3Config holds configuration for S3-compatible storage.
type S3Config struct {
	// Endpoint overrides the AWS endpoint, e.g. an R2 account endpoint.
	// Leave empty for AWS S3.
	Endpoint string

	// Region is required by the SDK. R2 accepts "auto".
	Region string

	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
}

const (
	// ProviderLocal identifies the local filesystem storage provider.
	ProviderLocal = "local"

	// ProviderS3 identifies the S3-compatible storage provider.
	ProviderS3 = "s3"
)

// ThumbnailKey returns the cache key for a customer photo thumbnail of the
// given edge length.
// Format: customers/{customerID}/thumbnails/{size}.jpg
func ThumbnailKey(customerID string, size int) string {
	return fmt.Sprintf("customers/%s/thumbnails/%d.jpg", customerID, size)
}

// validateKey rejects empty keys, absolute keys and keys that climb out of
// the store with "..".
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(path.Clean(key), "/") {
		if part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}
