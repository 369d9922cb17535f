// Package storage keeps staged images. Every stored object is addressed by a reference
// string (file:// or s3:// URI) that the same backend can resolve back to its bytes.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrExists is returned by Put when the key is already taken.
	ErrExists = errors.New("object already exists")
	// ErrForeignRef is returned when a reference was not produced by this backend.
	ErrForeignRef = errors.New("reference does not belong to this storage")
	// ErrObjectNotFound is returned by Get when the referenced object is gone.
	ErrObjectNotFound = errors.New("object not found")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, -1 otherwise.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Ref          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the image store behind the stager.
type Storage interface {
	// Put writes r under key. It fails with ErrExists instead of overwriting.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens the object a reference points to.
	Get(ctx context.Context, ref string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes the referenced object. A missing object is not an error.
	Delete(ctx context.Context, ref string) error
}
