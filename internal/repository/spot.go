package repository

import (
	"context"
	"errors"

	"spotapi/internal/model"
)

// ErrNotFound is returned by FindByName when no document has the given name.
var ErrNotFound = errors.New("spot not found")

// SpotRepository is the document collection of tourist spots, keyed by spot name.
// Implementations hold no business rules; they only read and write documents.
type SpotRepository interface {
	// List returns every spot in the order the store yields them. No ordering is guaranteed
	// across calls. The returned slice is never nil, even when an error is returned.
	List(ctx context.Context) ([]model.Spot, error)

	// FindByName returns the spot stored under name or ErrNotFound.
	FindByName(ctx context.Context, name string) (*model.Spot, error)

	// Upsert writes spot as a complete document under spot.Name, replacing any existing one.
	Upsert(ctx context.Context, spot model.Spot) (*model.Spot, error)

	// Delete removes the document stored under name. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error

	// Ping checks connectivity to the backing store.
	Ping(ctx context.Context) error
}
