package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

const maxStageAttempts = 5

// Stager copies picked images into the store under time-derived names.
type Stager struct {
	store Storage
	now   func() time.Time
}

// NewStager wraps store.
func NewStager(store Storage) *Stager {
	return &Stager{store: store, now: time.Now}
}

// StageKey names a staged image: img_<epoch-millis>.jpg, with a numeric suffix when
// another image already took that millisecond.
func StageKey(t time.Time, attempt int) string {
	if attempt == 0 {
		return fmt.Sprintf("img_%d.jpg", t.UnixMilli())
	}
	return fmt.Sprintf("img_%d_%d.jpg", t.UnixMilli(), attempt)
}

// Stage copies all of r into a new uniquely named object and returns its info; Ref is the
// string to store in the spot document.
func (s *Stager) Stage(ctx context.Context, r io.Reader, size int64, contentType string) (ObjectInfo, error) {
	if r == nil {
		return ObjectInfo{}, errors.New("image reader is nil")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	// Unknown length streams until EOF.
	if size <= 0 {
		size = -1
	}
	ts := s.now()
	for attempt := 0; attempt < maxStageAttempts; attempt++ {
		info, err := s.store.Put(ctx, StageKey(ts, attempt), r, PutObjectOptions{
			Size:        size,
			ContentType: contentType,
		})
		if errors.Is(err, ErrExists) {
			continue
		}
		return info, err
	}
	return ObjectInfo{}, fmt.Errorf("no free image name for %d after %d attempts", ts.UnixMilli(), maxStageAttempts)
}

// Open resolves a reference produced by Stage.
func (s *Stager) Open(ctx context.Context, ref string) (io.ReadCloser, ObjectInfo, error) {
	return s.store.Get(ctx, ref)
}

// Remove deletes a staged image.
func (s *Stager) Remove(ctx context.Context, ref string) error {
	return s.store.Delete(ctx, ref)
}
