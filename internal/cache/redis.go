package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/feral-file/ff-opportunities/internal/adapter"
)

// Redis is a Backend shared across replicas. Keys expire after expiry so redis
// does not keep entries the tier would reject anyway.
type Redis[V any] struct {
	client adapter.RedisClient
	json   adapter.JSON
	prefix string
	expiry time.Duration
}

// NewRedis creates a redis backend with keys namespaced under prefix
func NewRedis[V any](client adapter.RedisClient, json adapter.JSON, prefix string, expiry time.Duration) *Redis[V] {
	return &Redis[V]{
		client: client,
		json:   json,
		prefix: prefix,
		expiry: expiry,
	}
}

// Load returns the entry stored at key
func (r *Redis[V]) Load(ctx context.Context, key string) (Entry[V], bool, error) {
	var entry Entry[V]

	data, found, err := r.client.Get(ctx, r.prefix+key)
	if err != nil {
		return entry, false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	if !found {
		return entry, false, nil
	}

	if err := r.json.Unmarshal(data, &entry); err != nil {
		return entry, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return entry, true, nil
}

// Store writes the entry at key
func (r *Redis[V]) Store(ctx context.Context, key string, entry Entry[V]) error {
	data, err := r.json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, data, r.expiry); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}
