package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout  = 10 * time.Second
	defaultPoolSize = 32

	// defaultTimeout bounds individual repository operations.
	defaultTimeout = 10 * time.Second
)

// Config carries the connection settings for the record store.
type Config struct {
	URI      string
	Database string
	// MaxPoolSize bounds concurrent server connections; 0 uses the default.
	MaxPoolSize uint64
}

// Connect dials the record store and verifies it answers a primary-preferred
// ping before any repository is built on top of it. Task transitions rely on
// the store's per-document update atomicity, so failing fast here beats
// discovering a dead store on the first write.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	pool := cfg.MaxPoolSize
	if pool == 0 {
		pool = defaultPoolSize
	}

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("project-system").
		SetMaxPoolSize(pool)

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(dialCtx, readpref.PrimaryPreferred()); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
