// Package db manages the MongoDB connection and index bootstrap.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// Connect opens a MongoDB connection and verifies it with a ping.
// Fails fast if the server is unreachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on.
// The unique email index backs the signup conflict check, so a lost race
// still surfaces as a duplicate-key error instead of a second user document.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := database.Collection("users").Indexes().CreateOne(ctx, emailIndex); err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	eventIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "occurred_at", Value: 1}},
	}
	if _, err := database.Collection("events").Indexes().CreateOne(ctx, eventIndex); err != nil {
		return fmt.Errorf("create events occurred_at index: %w", err)
	}
	return nil
}
