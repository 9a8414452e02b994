package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/domain"
)

const dayLayout = "2006-01-02"

type eligibilityBackend struct {
	store Store
}

// NewEligibilityBackend persists the eligibility tier in eligibility_results.
// Keys are wallet:opportunity_id.
func NewEligibilityBackend(s Store) cache.Backend[domain.EligibilityResult] {
	return &eligibilityBackend{store: s}
}

func (b *eligibilityBackend) Load(ctx context.Context, key string) (cache.Entry[domain.EligibilityResult], bool, error) {
	var entry cache.Entry[domain.EligibilityResult]

	wallet, oppID, ok := strings.Cut(key, ":")
	if !ok {
		return entry, false, fmt.Errorf("invalid eligibility key %q", key)
	}

	result, err := b.store.GetEligibilityResult(ctx, wallet, oppID)
	if err != nil || result == nil {
		return entry, false, err
	}

	entry.Value = *result
	entry.ComputedAt = result.ComputedAt
	return entry, true, nil
}

func (b *eligibilityBackend) Store(ctx context.Context, _ string, entry cache.Entry[domain.EligibilityResult]) error {
	return b.store.SaveEligibilityResult(ctx, entry.Value, entry.ComputedAt)
}

type historicalBackend struct {
	store Store
}

// NewHistoricalBackend persists the snapshot tier in historical_activity.
// Keys are wallet:YYYY-MM-DD:chain.
func NewHistoricalBackend(s Store) cache.Backend[domain.HistoricalActivityResult] {
	return &historicalBackend{store: s}
}

func (b *historicalBackend) Load(ctx context.Context, key string) (cache.Entry[domain.HistoricalActivityResult], bool, error) {
	var entry cache.Entry[domain.HistoricalActivityResult]

	// chain names may contain ':', wallet and day never do
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return entry, false, fmt.Errorf("invalid snapshot key %q", key)
	}
	day, err := time.Parse(dayLayout, parts[1])
	if err != nil {
		return entry, false, fmt.Errorf("invalid snapshot key %q: %w", key, err)
	}

	result, computedAt, err := b.store.GetHistoricalActivity(ctx, parts[0], day, domain.Chain(parts[2]))
	if err != nil || result == nil {
		return entry, false, err
	}

	entry.Value = *result
	entry.ComputedAt = computedAt
	return entry, true, nil
}

func (b *historicalBackend) Store(ctx context.Context, _ string, entry cache.Entry[domain.HistoricalActivityResult]) error {
	return b.store.SaveHistoricalActivity(ctx, entry.Value, entry.ComputedAt)
}

type blockHeightBackend struct {
	store Store
}

// NewBlockHeightBackend persists the block height tier in block_heights.
// Keys are chain:YYYY-MM-DD.
func NewBlockHeightBackend(s Store) cache.Backend[uint64] {
	return &blockHeightBackend{store: s}
}

func (b *blockHeightBackend) parse(key string) (domain.Chain, time.Time, error) {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return "", time.Time{}, fmt.Errorf("invalid block height key %q", key)
	}
	chain, date := key[:i], key[i+1:]
	day, err := time.Parse(dayLayout, date)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid block height key %q: %w", key, err)
	}
	return domain.Chain(chain), day, nil
}

func (b *blockHeightBackend) Load(ctx context.Context, key string) (cache.Entry[uint64], bool, error) {
	var entry cache.Entry[uint64]

	chain, day, err := b.parse(key)
	if err != nil {
		return entry, false, err
	}

	height, computedAt, found, err := b.store.GetBlockHeight(ctx, chain, day)
	if err != nil || !found {
		return entry, false, err
	}

	entry.Value = height
	entry.ComputedAt = computedAt
	return entry, true, nil
}

func (b *blockHeightBackend) Store(ctx context.Context, key string, entry cache.Entry[uint64]) error {
	chain, day, err := b.parse(key)
	if err != nil {
		return err
	}
	return b.store.SaveBlockHeight(ctx, chain, day, entry.Value, entry.ComputedAt)
}
