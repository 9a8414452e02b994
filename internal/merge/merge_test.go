package merge_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/merge"
	"github.com/feral-file/ff-opportunities/internal/sources"
)

var created = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func opp(source domain.SourceID, ref, key string, trust int) domain.Opportunity {
	return domain.Opportunity{
		ID:         sources.OpportunityID(source, ref),
		Source:     source,
		SourceRef:  ref,
		DedupeKey:  key,
		TrustScore: trust,
		CreatedAt:  created,
	}
}

func TestMerge_PriorityOrder(t *testing.T) {
	// defillama < galxe < layer3 < curated
	a := opp(domain.SourceGalxe, "a", "uniswap:ethereum", 100)
	b := opp(domain.SourceLayer3, "b", "uniswap:ethereum", 10)
	c := opp(domain.SourceCurated, "c", "uniswap:ethereum", 0)

	for _, input := range [][]domain.Opportunity{{a, b, c}, {c, b, a}, {b, c, a}} {
		merged := merge.Merge(input)
		require.Len(t, merged, 1)
		assert.Equal(t, "c", merged[0].SourceRef, "highest priority wins regardless of trust")
	}

	merged := merge.Merge([]domain.Opportunity{a, b})
	require.Len(t, merged, 1)
	assert.Equal(t, "b", merged[0].SourceRef)
}

func TestMerge_OnePerDedupeKey(t *testing.T) {
	input := []domain.Opportunity{
		opp(domain.SourceDefiLlama, "1", "aave:ethereum", 70),
		opp(domain.SourceDefiLlama, "2", "aave:base", 70),
		opp(domain.SourceGalxe, "3", "aave:ethereum", 60),
		opp(domain.SourceGalxe, "4", "zora:base", 60),
	}

	merged := merge.Merge(input)
	require.Len(t, merged, 3)

	keys := map[string]string{}
	for _, o := range merged {
		_, dup := keys[o.DedupeKey]
		assert.False(t, dup)
		keys[o.DedupeKey] = o.SourceRef
	}
	assert.Equal(t, "3", keys["aave:ethereum"])
}

func TestMerge_SameSourceTieBreak(t *testing.T) {
	small := opp(domain.SourceDefiLlama, "pool-b", "aave:ethereum", 70)
	small.Weight = 1_000
	big := opp(domain.SourceDefiLlama, "pool-c", "aave:ethereum", 70)
	big.Weight = 9_000
	twin := opp(domain.SourceDefiLlama, "pool-a", "aave:ethereum", 70)
	twin.Weight = 9_000

	merged := merge.Merge([]domain.Opportunity{big, small, twin})
	require.Len(t, merged, 1)
	assert.Equal(t, "pool-a", merged[0].SourceRef, "larger weight, then smaller source_ref")

	assert.Equal(t, "pool-a", merge.Winner(big, twin).SourceRef)
	assert.Equal(t, "pool-c", merge.Winner(small, big).SourceRef)
}

func TestMerge_Deterministic(t *testing.T) {
	older := opp(domain.SourceGalxe, "old", "x:base", 60)
	older.CreatedAt = created.Add(-time.Hour)
	newer := opp(domain.SourceGalxe, "new", "y:base", 60)

	first := merge.Merge([]domain.Opportunity{older, newer})
	second := merge.Merge([]domain.Opportunity{newer, older})
	assert.Equal(t, first, second)
	assert.Equal(t, "new", first[0].SourceRef)
}

func TestMergeBatches(t *testing.T) {
	batches := []sources.Batch{
		{Source: domain.SourceCurated, Opportunities: []domain.Opportunity{opp(domain.SourceCurated, "c", "k:base", 90)}},
		{Source: domain.SourceDefiLlama, Opportunities: []domain.Opportunity{opp(domain.SourceDefiLlama, "d", "k:base", 70)}},
		{Source: domain.SourceGalxe},
	}

	merged := merge.MergeBatches(batches)
	require.Len(t, merged, 1)
	assert.Equal(t, domain.SourceCurated, merged[0].Source)
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, merge.Merge(nil))
}
