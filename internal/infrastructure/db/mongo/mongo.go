package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config selects the cluster and database holding users, profiles and posts.
type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
}

// Connect dials cfg.URI and pings the primary before handing out the
// database. The client is disconnected again if the ping fails.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes every repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := NewProfileRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("profiles indexes: %w", err)
	}
	if err := NewPostRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("posts indexes: %w", err)
	}
	return nil
}

// objectID parses a hex id, reporting domain.ErrInvalidID for anything that
// is not a 24-character ObjectID.
func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, hex)
	}
	return id, nil
}
