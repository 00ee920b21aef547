// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// lock.go provides a Valkey-backed mutual exclusion lock for generation
// jobs. A page generation can take minutes of LLM and WordPress round
// trips; the lock keeps a manual API trigger and the scheduler from
// generating the same slot twice at once. The database unique index is
// the backstop if the lock is ever lost.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// lockKeyPrefix is the Valkey key prefix for generation locks.
	lockKeyPrefix = "genlock:"

	// DefaultLockTTL bounds how long a crashed worker can hold a slot.
	DefaultLockTTL = 10 * time.Minute
)

// GenerationLock hands out per-slot locks with an expiry.
type GenerationLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGenerationLock creates a lock manager backed by the given Valkey client.
func NewGenerationLock(client *redis.Client, ttl time.Duration) *GenerationLock {
	if ttl == 0 {
		ttl = DefaultLockTTL
	}
	return &GenerationLock{client: client, ttl: ttl}
}

// Acquire tries to take the lock for a slot. Returns false when another
// worker holds it.
func (l *GenerationLock) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKeyPrefix+key, "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return ok, nil
}

// Release frees the lock. Safe to call on a lock that already expired.
func (l *GenerationLock) Release(ctx context.Context, key string) {
	if err := l.client.Del(ctx, lockKeyPrefix+key).Err(); err != nil {
		slog.Warn("lock release error", "key", key, "error", err)
	}
}

// PageLockKey builds the lock key for one (template, city, state) slot.
// The article queue needs no lock; its store claims rows atomically.
func PageLockKey(templateID, city, state string) string {
	return fmt.Sprintf("page:%s:%s:%s", templateID, city, state)
}
