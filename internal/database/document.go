package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spotapi/internal/config"
)

// NewMongo connects to MongoDB and verifies the connection with a ping within 10s of ctx.
func NewMongo(ctx context.Context, c config.MongoConfig) (*mongo.Client, error) {
	if c.URI == "" {
		return nil, fmt.Errorf("invalid mongo config: uri is required")
	}

	clientOptions := options.Client().
		ApplyURI(c.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// NewFirestore creates a Cloud Firestore client. Credentials come from the environment
// (GOOGLE_APPLICATION_CREDENTIALS or FIRESTORE_EMULATOR_HOST).
func NewFirestore(ctx context.Context, c config.FirestoreConfig) (*firestore.Client, error) {
	if c.ProjectID == "" {
		return nil, fmt.Errorf("invalid firestore config: project id is required")
	}
	dbID := c.DatabaseID
	if dbID == "" {
		dbID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, c.ProjectID, dbID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return client, nil
}
