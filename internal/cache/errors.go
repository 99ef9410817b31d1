package cache

import "errors"

var (
	// ErrCacheMiss is returned by Get when the key is absent or expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidTTL is returned by Set for a non-positive TTL.
	ErrInvalidTTL = errors.New("ttl must be positive")
)

// ErrUnknownBackend is returned by New for an unsupported cache backend.
var ErrUnknownBackend = errors.New("unknown cache backend")
