package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// CacheConfig selects the Redis instance backing ProfileCache.
type CacheConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Connect opens the cache client and fails fast when the server does not
// answer a PING within the dial timeout.
func Connect(ctx context.Context, cfg CacheConfig) (*redis.Client, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
