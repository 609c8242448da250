package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Bag documents are small and short-lived, so the pool stays modest compared
// to the catalog's Postgres pool.
const (
	bagConnectTimeout   = 10 * time.Second
	bagSelectionTimeout = 5 * time.Second
	bagMaxPoolSize      = 50
	bagMinPoolSize      = 5
)

// ConnectMongoDB opens the bag store's database handle and verifies the
// primary is reachable before any handler depends on it.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(bagConnectTimeout).
		SetServerSelectionTimeout(bagSelectionTimeout).
		SetMaxPoolSize(bagMaxPoolSize).
		SetMinPoolSize(bagMinPoolSize)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to bag store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping bag store: %w", err)
	}

	return client.Database(database), nil
}
