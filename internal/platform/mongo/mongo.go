// Package mongo dials MongoDB for the document-backed repositories.
package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultDatabase is used when MONGO_DATABASE is empty.
const DefaultDatabase = "pharmatrack"

// Connect dials uri, pings the primary and returns the named database plus a disconnect func.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, func(), error) {
	if strings.TrimSpace(uri) == "" {
		return nil, func() {}, fmt.Errorf("mongo URI is empty")
	}
	if strings.TrimSpace(database) == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, func() {}, err
	}
	disconnect := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnect()
		return nil, func() {}, fmt.Errorf("ping mongo: %w", err)
	}
	return client.Database(database), disconnect, nil
}
