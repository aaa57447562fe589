package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tariq-shuvo/social-media-rest-api/internal/api/metrics"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

const (
	defaultProfileTTL = 10 * time.Minute

	// generationTTL outlives any single profile load by a wide margin.
	generationTTL = 24 * time.Hour
)

var errFenced = errors.New("profile invalidated since read")

// ProfileCache keeps fully populated profiles as JSON under profile:<user_id>.
// A counter under profile:gen:<user_id> fences fills against invalidations:
// Fill commits only while the counter still holds the value Get returned.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache wraps client. A non-positive ttl falls back to defaultProfileTTL.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// Get reads the entry and the owner's generation in one round trip. A miss
// is a nil profile with a nil error.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*domain.Profile, int64, error) {
	vals, err := c.client.MGet(ctx, c.key(userID), c.genKey(userID)).Result()
	if err != nil {
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, 0, fmt.Errorf("profile cache get: %w", err)
	}

	gen, err := parseGeneration(vals[1])
	if err != nil {
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, 0, err
	}

	raw, ok := vals[0].(string)
	if !ok {
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, gen, nil
	}

	var p domain.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// Undecodable entries are overwritten by the next fill.
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, gen, nil
	}
	metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
	return &p, gen, nil
}

// Fill stores p inside a WATCH on the generation key, so an Invalidate that
// lands between the caller's Get and this call discards the write.
func (c *ProfileCache) Fill(ctx context.Context, p *domain.Profile, gen int64) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}

	genKey := c.genKey(p.UserID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		now, err := tx.Get(ctx, genKey).Int64()
		if errors.Is(err, redis.Nil) {
			now, err = 0, nil
		}
		if err != nil {
			return err
		}
		if now != gen {
			return errFenced
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(p.UserID), b, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case errors.Is(err, errFenced), errors.Is(err, redis.TxFailedErr):
		metrics.ProfileCacheTotal.WithLabelValues("fenced").Inc()
		return nil
	case err != nil:
		return fmt.Errorf("profile cache fill: %w", err)
	}
	return nil
}

// Invalidate advances the owner's generation and drops the entry atomically.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) error {
	genKey := c.genKey(userID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, c.key(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("profile cache invalidate: %w", err)
	}
	return nil
}

func (c *ProfileCache) key(userID string) string {
	return "profile:" + userID
}

func (c *ProfileCache) genKey(userID string) string {
	return "profile:gen:" + userID
}

// parseGeneration reads a generation counter; an absent counter is zero.
func parseGeneration(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	gen, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("profile cache generation %q: %w", s, err)
	}
	return gen, nil
}
