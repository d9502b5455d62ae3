package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// MongoDatabase wraps the client handle for the document store.
type MongoDatabase struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDatabase creates a new MongoDatabase instance.
// It establishes a connection to the MongoDB deployment, verifies its
// availability and creates the indexes the repositories rely on.
func NewMongoDatabase(ctx context.Context, uri, name string) (*MongoDatabase, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to check database connection: %w", err)
	}

	mdb := &MongoDatabase{
		client: client,
		db:     client.Database(name),
	}

	if err := mdb.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return mdb, nil
}

// Users returns a handle to the users collection.
func (mdb *MongoDatabase) Users() *mongo.Collection {
	return mdb.db.Collection(usersCollection)
}

// Ping verifies the database connection is still usable.
func (mdb *MongoDatabase) Ping(ctx context.Context) error {
	return mdb.client.Ping(ctx, nil)
}

// ensureIndexes creates the unique username index backing the signup
// duplicate check.
func (mdb *MongoDatabase) ensureIndexes(ctx context.Context) error {
	_, err := mdb.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (mdb *MongoDatabase) Close(ctx context.Context) error {
	if err := mdb.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
