package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the MongoDB connection and hands out per-collection
// repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Farmers returns the farmers collection client.
func (s *Store) Farmers() *FarmerRepository {
	return &FarmerRepository{coll: s.db.Collection("farmers")}
}

// Users returns the staff accounts repository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection("users")}
}

// Summaries returns the registration summaries repository.
func (s *Store) Summaries() *SummaryRepository {
	return &SummaryRepository{coll: s.db.Collection("registration_summaries")}
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
