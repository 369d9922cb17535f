package firestore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"spotapi/internal/model"
	"spotapi/internal/repository"
)

// SpotFirestore stores spots as documents of a Cloud Firestore collection.
// The document id is the spot name.
type SpotFirestore struct {
	col *firestore.CollectionRef
}

// NewSpotFirestore creates a repository over the named collection.
func NewSpotFirestore(client *firestore.Client, collection string) *SpotFirestore {
	return &SpotFirestore{col: client.Collection(collection)}
}

var _ repository.SpotRepository = (*SpotFirestore)(nil)

// docID rejects names Firestore cannot use as a document id.
func docID(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") ||
		(strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")) {
		return "", fmt.Errorf("invalid document id %q", name)
	}
	return name, nil
}

func fromSnapshot(snap *firestore.DocumentSnapshot) model.Spot {
	return model.SpotFromFields(snap.Data())
}

func (r *SpotFirestore) List(ctx context.Context) ([]model.Spot, error) {
	snaps, err := r.col.Documents(ctx).GetAll()
	if err != nil {
		return make([]model.Spot, 0), err
	}
	items := make([]model.Spot, 0, len(snaps))
	for _, snap := range snaps {
		items = append(items, fromSnapshot(snap))
	}
	return items, nil
}

func (r *SpotFirestore) FindByName(ctx context.Context, name string) (*model.Spot, error) {
	id, err := docID(name)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	snap, err := r.col.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	s := fromSnapshot(snap)
	return &s, nil
}

// Upsert replaces the whole document; Set without merge options drops fields not sent.
func (r *SpotFirestore) Upsert(ctx context.Context, spot model.Spot) (*model.Spot, error) {
	id, err := docID(spot.Name)
	if err != nil {
		return nil, err
	}
	if _, err := r.col.Doc(id).Set(ctx, spot.Fields()); err != nil {
		return nil, err
	}
	out := spot
	return &out, nil
}

func (r *SpotFirestore) Delete(ctx context.Context, name string) error {
	id, err := docID(name)
	if err != nil {
		return err
	}
	_, err = r.col.Doc(id).Delete(ctx)
	return err
}

// Ping reads at most one document; Firestore has no dedicated health call.
func (r *SpotFirestore) Ping(ctx context.Context) error {
	_, err := r.col.Limit(1).Documents(ctx).GetAll()
	return err
}
