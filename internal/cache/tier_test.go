package cache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/mocks"
)

// movableClock returns a mock clock whose Now is controlled by the returned pointer
func movableClock(ctrl *gomock.Controller, start time.Time) (*mocks.MockClock, *time.Time) {
	now := start
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()
	return clock, &now
}

func TestTier_GetOrCompute_HitWithinTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock, now := movableClock(ctrl, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	tier := cache.NewTier("signals", cache.NewMemory[int](0), cache.FixedTTL[int](5*time.Minute), clock)

	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := tier.GetOrCompute(context.Background(), "k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	*now = now.Add(4*time.Minute + 59*time.Second)
	v, err = tier.GetOrCompute(context.Background(), "k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "hit must not recompute")
	assert.Equal(t, 1, calls)

	*now = now.Add(time.Second)
	v, err = tier.GetOrCompute(context.Background(), "k", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "entry at exactly ttl is expired")
}

func TestTier_ValueDependentTTL(t *testing.T) {
	type result struct{ Degraded bool }

	ctrl := gomock.NewController(t)
	clock, now := movableClock(ctrl, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ttl := func(r result) time.Duration {
		if r.Degraded {
			return time.Hour
		}
		return 24 * time.Hour
	}
	tier := cache.NewTier("eligibility", cache.NewMemory[result](0), ttl, clock)

	tier.Put(context.Background(), "degraded", result{Degraded: true})
	tier.Put(context.Background(), "full", result{})

	*now = now.Add(2 * time.Hour)
	_, ok := tier.Get(context.Background(), "degraded")
	assert.False(t, ok)
	_, ok = tier.Get(context.Background(), "full")
	assert.True(t, ok)
}

func TestTier_Indefinite(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock, now := movableClock(ctrl, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	tier := cache.NewTier("block_height", cache.NewMemory[uint64](0), cache.FixedTTL[uint64](cache.Indefinite), clock)

	tier.Put(context.Background(), "ethereum:2020-01-01", 9_193_266)
	*now = now.AddDate(10, 0, 0)

	v, ok := tier.Get(context.Background(), "ethereum:2020-01-01")
	assert.True(t, ok)
	assert.Equal(t, uint64(9_193_266), v)
}

func TestTier_ComputeErrorIsNotStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock, _ := movableClock(ctrl, time.Now())
	backend := cache.NewMemory[[]string](0)
	tier := cache.NewTier("source", backend, cache.FixedTTL[[]string](time.Hour), clock)

	boom := errors.New("boom")
	v, err := tier.GetOrCompute(context.Background(), "galxe", func(context.Context) ([]string, error) {
		return []string{"partial"}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"partial"}, v)
	assert.Equal(t, 0, backend.Len())
}

func TestTier_BackendErrorIsAMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock, _ := movableClock(ctrl, time.Now())
	rc := mocks.NewMockRedisClient(ctrl)
	rc.EXPECT().Get(gomock.Any(), "p:k").Return(nil, false, errors.New("redis down"))
	rc.EXPECT().Set(gomock.Any(), "p:k", gomock.Any(), time.Minute).Return(errors.New("redis down"))

	tier := cache.NewTier("signals", cache.NewRedis[int](rc, adapter.NewJSON(), "p:", time.Minute), cache.FixedTTL[int](time.Minute), clock)

	v, err := tier.GetOrCompute(context.Background(), "k", func(context.Context) (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestRedisBackend_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	rc := mocks.NewMockRedisClient(ctrl)
	backend := cache.NewRedis[map[string]int](rc, adapter.NewJSON(), "ff:", time.Hour)

	computedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var stored []byte
	rc.EXPECT().Set(gomock.Any(), "ff:x", gomock.Any(), time.Hour).
		DoAndReturn(func(_ context.Context, _ string, value []byte, _ time.Duration) error {
			stored = value
			return nil
		})
	require.NoError(t, backend.Store(context.Background(), "x", cache.Entry[map[string]int]{Value: map[string]int{"a": 1}, ComputedAt: computedAt}))

	rc.EXPECT().Get(gomock.Any(), "ff:x").DoAndReturn(func(context.Context, string) ([]byte, bool, error) {
		return stored, true, nil
	})
	entry, found, err := backend.Load(context.Background(), "x")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, entry.Value["a"])
	assert.True(t, computedAt.Equal(entry.ComputedAt))

	rc.EXPECT().Get(gomock.Any(), "ff:missing").Return(nil, false, nil)
	_, found, err = backend.Load(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_Prune(t *testing.T) {
	m := cache.NewMemory[int](time.Minute)
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.Store(context.Background(), "old", cache.Entry[int]{Value: 1, ComputedAt: old}))

	fresh := old.Add(time.Hour)
	for i := range 1023 {
		require.NoError(t, m.Store(context.Background(), string(rune('a'+i%26))+time.Duration(i).String(), cache.Entry[int]{Value: i, ComputedAt: fresh}))
	}

	_, found, _ := m.Load(context.Background(), "old")
	assert.False(t, found)
}

func TestMemory_ConcurrentStoreLoad(t *testing.T) {
	m := cache.NewMemory[int](time.Minute)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				key := fmt.Sprintf("k%d", i%16)
				assert.NoError(t, m.Store(ctx, key, cache.Entry[int]{Value: w, ComputedAt: at}))
				if e, found, err := m.Load(ctx, key); assert.NoError(t, err) && found {
					assert.GreaterOrEqual(t, e.Value, 0)
					assert.Less(t, e.Value, 8)
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, m.Len())
}

func TestTier_ConcurrentSameKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock, _ := movableClock(ctrl, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	backend := cache.NewMemory[string](0)
	tier := cache.NewTier("signals", backend, cache.FixedTTL[string](time.Hour), clock)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := tier.GetOrCompute(context.Background(), "0xabc", func(context.Context) (string, error) {
				return "signals", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "signals", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, backend.Len())
}
