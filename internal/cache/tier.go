package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/metrics"
)

// Indefinite marks entries that never expire
const Indefinite time.Duration = -1

// Entry is a cached value with the time it was computed
type Entry[V any] struct {
	Value      V         `json:"value"`
	ComputedAt time.Time `json:"computed_at"`
}

// Backend persists cache entries. Expiry is decided by the Tier at read time,
// so a backend may keep entries past their TTL.
type Backend[V any] interface {
	Load(ctx context.Context, key string) (Entry[V], bool, error)
	Store(ctx context.Context, key string, entry Entry[V]) error
}

// TTLFunc returns how long a value stays valid; values may choose their own TTL
type TTLFunc[V any] func(value V) time.Duration

// FixedTTL returns a TTLFunc that ignores the value
func FixedTTL[V any](ttl time.Duration) TTLFunc[V] {
	return func(V) time.Duration { return ttl }
}

// Tier is one independently keyed TTL cache
type Tier[V any] struct {
	name    string
	backend Backend[V]
	ttl     TTLFunc[V]
	clock   adapter.Clock
}

// NewTier creates a cache tier over the given backend
func NewTier[V any](name string, backend Backend[V], ttl TTLFunc[V], clock adapter.Clock) *Tier[V] {
	return &Tier[V]{
		name:    name,
		backend: backend,
		ttl:     ttl,
		clock:   clock,
	}
}

// Name returns the tier name
func (t *Tier[V]) Name() string {
	return t.name
}

// Get returns the cached value for key if present and still valid
func (t *Tier[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	entry, found, err := t.backend.Load(ctx, key)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(t.name, "error").Inc()
		logger.WarnCtx(ctx, "Cache load failed", zap.String("tier", t.name), zap.String("key", key), zap.Error(err))
		return zero, false
	}
	if !found || !t.valid(entry) {
		metrics.CacheLookupsTotal.WithLabelValues(t.name, "miss").Inc()
		return zero, false
	}

	metrics.CacheLookupsTotal.WithLabelValues(t.name, "hit").Inc()
	return entry.Value, true
}

// Put stores value for key, computed now
func (t *Tier[V]) Put(ctx context.Context, key string, value V) {
	entry := Entry[V]{Value: value, ComputedAt: t.clock.Now()}
	if err := t.backend.Store(ctx, key, entry); err != nil {
		logger.WarnCtx(ctx, "Cache store failed", zap.String("tier", t.name), zap.String("key", key), zap.Error(err))
	}
}

// GetOrCompute returns the valid cached value for key or computes and stores a new one.
// When compute fails nothing is stored and its (possibly partial) value is returned with the error.
func (t *Tier[V]) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := t.Get(ctx, key); ok {
		return v, nil
	}

	v, err := compute(ctx)
	if err != nil {
		return v, err
	}

	t.Put(ctx, key, v)
	return v, nil
}

func (t *Tier[V]) valid(entry Entry[V]) bool {
	ttl := t.ttl(entry.Value)
	if ttl == Indefinite {
		return true
	}
	return t.clock.Now().Sub(entry.ComputedAt) < ttl
}
