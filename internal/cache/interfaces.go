// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache provides the expiring key/value store that backs user
// sessions.
//
// Two implementations are shipped: a Redis client ([NewRedisCache]) used in
// production and an in-process map ([NewMemoryCache]) for single-node
// deployments and tests. Both expire entries after their TTL and never return
// an expired value.
package cache

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/cache_mock.go -package=mock

// Cache is an expiring string key/value store.
type Cache interface {
	// Set stores value under key for ttl. A non-positive ttl is rejected.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value stored under key, or [ErrCacheMiss] when the key
	// does not exist or has expired.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes key and reports whether it was present.
	Delete(ctx context.Context, key string) (bool, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
