// Package cache is an optional read-through cache for server-derived
// reference data (country list, posts list). Cache failures are never
// fatal to the client; callers log and fall back to the network.
package cache

import "context"

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
