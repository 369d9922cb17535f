package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spotapi/internal/model"
	"spotapi/internal/repository"
)

// SpotMongo stores spots in a MongoDB collection with the spot name as _id.
type SpotMongo struct {
	col *mongo.Collection
}

// NewSpotMongo creates a repository over db.collection.
func NewSpotMongo(db *mongo.Database, collection string) *SpotMongo {
	return &SpotMongo{col: db.Collection(collection)}
}

var _ repository.SpotRepository = (*SpotMongo)(nil)

func toDocument(spot model.Spot) bson.M {
	doc := bson.M{"_id": spot.Name}
	for k, v := range spot.Fields() {
		doc[k] = v
	}
	return doc
}

func (r *SpotMongo) List(ctx context.Context) ([]model.Spot, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return make([]model.Spot, 0), err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return make([]model.Spot, 0), err
	}
	items := make([]model.Spot, 0, len(docs))
	for _, d := range docs {
		items = append(items, model.SpotFromFields(d))
	}
	return items, nil
}

func (r *SpotMongo) FindByName(ctx context.Context, name string) (*model.Spot, error) {
	var doc bson.M
	err := r.col.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	s := model.SpotFromFields(doc)
	return &s, nil
}

// Upsert replaces the document with _id = spot.Name, inserting it when absent.
func (r *SpotMongo) Upsert(ctx context.Context, spot model.Spot) (*model.Spot, error) {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": spot.Name}, toDocument(spot), options.Replace().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	out := spot
	return &out, nil
}

func (r *SpotMongo) Delete(ctx context.Context, name string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": name})
	return err
}

func (r *SpotMongo) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}
