package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/mocks"
	"github.com/feral-file/ff-opportunities/internal/store"
)

const wallet = "0xabcdef0123456789abcdef0123456789abcdef01"

var computedAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestEligibilityBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockStore(ctrl)
	backend := store.NewEligibilityBackend(s)
	ctx := context.Background()

	result := domain.EligibilityResult{WalletAddress: wallet, OpportunityID: "opp-1", Status: domain.EligibilityMaybe, Score: 0.5, ComputedAt: computedAt}

	s.EXPECT().GetEligibilityResult(ctx, wallet, "opp-1").Return(&result, nil)
	entry, found, err := backend.Load(ctx, wallet+":opp-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, result, entry.Value)
	assert.Equal(t, computedAt, entry.ComputedAt)

	s.EXPECT().GetEligibilityResult(ctx, wallet, "opp-2").Return(nil, nil)
	_, found, err = backend.Load(ctx, wallet+":opp-2")
	require.NoError(t, err)
	assert.False(t, found)

	s.EXPECT().SaveEligibilityResult(ctx, result, computedAt).Return(nil)
	require.NoError(t, backend.Store(ctx, wallet+":opp-1", cache.Entry[domain.EligibilityResult]{Value: result, ComputedAt: computedAt}))

	_, _, err = backend.Load(ctx, "no-separator")
	assert.Error(t, err)
}

func TestHistoricalBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockStore(ctrl)
	backend := store.NewHistoricalBackend(s)
	ctx := context.Background()

	day := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	result := domain.HistoricalActivityResult{WalletAddress: wallet, SnapshotDate: day, Chain: domain.ChainBase, WasActive: domain.ActivityInactive}

	s.EXPECT().GetHistoricalActivity(ctx, wallet, day, domain.ChainBase).Return(&result, computedAt, nil)
	entry, found, err := backend.Load(ctx, wallet+":2025-12-01:base")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.ActivityInactive, entry.Value.WasActive)
	assert.Equal(t, computedAt, entry.ComputedAt)

	boom := errors.New("db down")
	s.EXPECT().GetHistoricalActivity(ctx, wallet, day, domain.ChainEthereum).Return(nil, time.Time{}, boom)
	_, found, err = backend.Load(ctx, wallet+":2025-12-01:ethereum")
	assert.ErrorIs(t, err, boom)
	assert.False(t, found)

	for _, key := range []string{wallet + ":2025-12-01", wallet + ":yesterday:base"} {
		_, _, err = backend.Load(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestBlockHeightBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockStore(ctrl)
	backend := store.NewBlockHeightBackend(s)
	ctx := context.Background()

	day := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	s.EXPECT().SaveBlockHeight(ctx, domain.ChainEthereum, day, uint64(23_900_000), computedAt).Return(nil)
	require.NoError(t, backend.Store(ctx, "ethereum:2025-12-01", cache.Entry[uint64]{Value: 23_900_000, ComputedAt: computedAt}))

	s.EXPECT().GetBlockHeight(ctx, domain.ChainEthereum, day).Return(uint64(23_900_000), computedAt, true, nil)
	entry, found, err := backend.Load(ctx, "ethereum:2025-12-01")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(23_900_000), entry.Value)

	s.EXPECT().GetBlockHeight(ctx, domain.ChainBase, day).Return(uint64(0), time.Time{}, false, nil)
	_, found, err = backend.Load(ctx, "base:2025-12-01")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Error(t, backend.Store(ctx, "ethereum", cache.Entry[uint64]{}))
}

func TestBackends_ChainWithSeparator(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockStore(ctrl)
	ctx := context.Background()

	day := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	chain := domain.Chain("eip155:324")

	historical := store.NewHistoricalBackend(s)
	result := domain.HistoricalActivityResult{WalletAddress: wallet, SnapshotDate: day, Chain: chain, WasActive: domain.ActivityActive}
	s.EXPECT().GetHistoricalActivity(ctx, wallet, day, chain).Return(&result, computedAt, nil)
	entry, found, err := historical.Load(ctx, wallet+":2025-12-01:eip155:324")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, chain, entry.Value.Chain)

	heights := store.NewBlockHeightBackend(s)
	s.EXPECT().SaveBlockHeight(ctx, chain, day, uint64(42), computedAt).Return(nil)
	require.NoError(t, heights.Store(ctx, "eip155:324:2025-12-01", cache.Entry[uint64]{Value: 42, ComputedAt: computedAt}))

	s.EXPECT().GetBlockHeight(ctx, chain, day).Return(uint64(42), computedAt, true, nil)
	height, found, err := heights.Load(ctx, "eip155:324:2025-12-01")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(42), height.Value)
}
