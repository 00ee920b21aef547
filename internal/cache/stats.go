// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// stats.go caches the dashboard stats payload. The overview endpoint
// aggregates counts across four tables; a short TTL keeps it cheap
// under dashboard polling without hiding fresh publishes for long.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// statsKey is the Valkey key for the cached stats payload.
	statsKey = "stats:overview"

	// DefaultStatsTTL is how long the aggregated counts stay cached.
	DefaultStatsTTL = time.Minute
)

// StatsCache caches the JSON stats payload in Valkey.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a stats cache backed by the given Valkey client.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl == 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get retrieves the cached payload. Returns false on miss.
func (sc *StatsCache) Get(ctx context.Context) ([]byte, bool) {
	val, err := sc.client.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("stats cache get error", "error", err)
		return nil, false
	}
	return val, true
}

// Set stores the payload with the configured TTL.
func (sc *StatsCache) Set(ctx context.Context, payload []byte) {
	if err := sc.client.Set(ctx, statsKey, payload, sc.ttl).Err(); err != nil {
		slog.Warn("stats cache set error", "error", err)
	}
}

// Invalidate drops the cached payload, called after pipeline runs.
func (sc *StatsCache) Invalidate(ctx context.Context) {
	if err := sc.client.Del(ctx, statsKey).Err(); err != nil {
		slog.Warn("stats cache invalidate error", "error", err)
	}
}
