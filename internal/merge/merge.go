// Package merge collapses opportunities from several sources into one candidate per dedupe key.
package merge

import (
	"cmp"
	"slices"
	"strings"

	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/sources"
)

// compare orders opportunities by how strongly they claim a dedupe key:
// source priority, then weight, then the smaller source_ref. Trust score plays no part.
func compare(a, b domain.Opportunity) int {
	if c := cmp.Compare(sources.Priority(a.Source), sources.Priority(b.Source)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
		return c
	}
	return strings.Compare(b.SourceRef, a.SourceRef)
}

// Winner returns the opportunity that keeps the dedupe key shared by a and b
func Winner(a, b domain.Opportunity) domain.Opportunity {
	if compare(a, b) > 0 {
		return a
	}
	return b
}

// Merge keeps one opportunity per dedupe key. Sources are applied in ascending
// priority and each later write overwrites the key, so the highest priority source wins.
// The result is ordered by created_at desc, then id.
func Merge(opportunities []domain.Opportunity) []domain.Opportunity {
	ordered := slices.Clone(opportunities)
	slices.SortStableFunc(ordered, compare)

	byKey := make(map[string]domain.Opportunity, len(ordered))
	for _, opp := range ordered {
		byKey[opp.DedupeKey] = opp
	}

	merged := make([]domain.Opportunity, 0, len(byKey))
	for _, opp := range byKey {
		merged = append(merged, opp)
	}
	slices.SortFunc(merged, func(a, b domain.Opportunity) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return merged
}

// MergeBatches merges the opportunities of every fetched batch
func MergeBatches(batches []sources.Batch) []domain.Opportunity {
	var all []domain.Opportunity
	for _, b := range batches {
		all = append(all, b.Opportunities...)
	}
	return Merge(all)
}
