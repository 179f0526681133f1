// Package redis caches reduced tracking snapshots in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	// trackingKeyPrefix namespaces snapshot keys: tracking:<code>.
	trackingKeyPrefix = "tracking:"

	DefaultTTL = 5 * time.Minute
)

// TrackingCache is a Redis-backed ports.TrackingCache. Failures are logged
// and reported to callers as misses.
type TrackingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a TrackingCache instance.
type Option func(*TrackingCache)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *TrackingCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func NewTrackingCache(client *redis.Client, logger *slog.Logger, opts ...Option) *TrackingCache {
	c := &TrackingCache{
		client: client,
		ttl:    DefaultTTL,
		logger: logger.With("component", "TrackingCache"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *TrackingCache) Get(ctx context.Context, code kernel.TrackingCode) (ports.TrackingSnapshot, bool) {
	payload, err := c.client.Get(ctx, key(code.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.TrackingSnapshot{}, false
	}
	if err != nil {
		c.logger.Warn("Failed to read tracking snapshot", "tracking_number", code.String(), "error", err)
		return ports.TrackingSnapshot{}, false
	}

	var snapshot ports.TrackingSnapshot
	if err = json.Unmarshal(payload, &snapshot); err != nil {
		c.logger.Warn("Dropping unreadable tracking snapshot", "tracking_number", code.String(), "error", err)
		c.Invalidate(ctx, code)
		return ports.TrackingSnapshot{}, false
	}
	return snapshot, true
}

func (c *TrackingCache) Set(ctx context.Context, snapshot ports.TrackingSnapshot) {
	if snapshot.TrackingCode == "" {
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		c.logger.Warn("Failed to encode tracking snapshot", "tracking_number", snapshot.TrackingCode, "error", err)
		return
	}

	if err = c.client.Set(ctx, key(snapshot.TrackingCode), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write tracking snapshot", "tracking_number", snapshot.TrackingCode, "error", err)
	}
}

func (c *TrackingCache) Invalidate(ctx context.Context, code kernel.TrackingCode) {
	if err := c.client.Del(ctx, key(code.String())).Err(); err != nil {
		c.logger.Warn("Failed to invalidate tracking snapshot", "tracking_number", code.String(), "error", err)
	}
}

func key(code string) string {
	return trackingKeyPrefix + code
}
