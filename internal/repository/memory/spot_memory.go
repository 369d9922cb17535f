package memory

import (
	"context"
	"sync"

	"spotapi/internal/model"
	"spotapi/internal/repository"
)

// SpotMemory keeps the spot collection in process as schema-less documents.
// Documents are listed in first-insertion order; overwriting keeps the original position.
// It backs local development and tests.
type SpotMemory struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]map[string]any
}

// NewSpotMemory creates an empty collection.
func NewSpotMemory() *SpotMemory {
	return &SpotMemory{docs: make(map[string]map[string]any)}
}

var _ repository.SpotRepository = (*SpotMemory)(nil)

func (r *SpotMemory) List(ctx context.Context) ([]model.Spot, error) {
	if err := ctx.Err(); err != nil {
		return []model.Spot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Spot, 0, len(r.order))
	for _, name := range r.order {
		items = append(items, model.SpotFromFields(r.docs[name]))
	}
	return items, nil
}

func (r *SpotMemory) FindByName(ctx context.Context, name string) (*model.Spot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s := model.SpotFromFields(doc)
	return &s, nil
}

func (r *SpotMemory) Upsert(ctx context.Context, spot model.Spot) (*model.Spot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[spot.Name]; !ok {
		r.order = append(r.order, spot.Name)
	}
	r.docs[spot.Name] = spot.Fields()
	out := model.SpotFromFields(r.docs[spot.Name])
	return &out, nil
}

func (r *SpotMemory) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[name]; !ok {
		return nil
	}
	delete(r.docs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *SpotMemory) Ping(ctx context.Context) error {
	return ctx.Err()
}
