package ranking

import (
	"cmp"
	"slices"
	"time"

	"github.com/feral-file/ff-opportunities/internal/domain"
)

const (
	preselectTrust   = 0.7
	preselectRecency = 0.3
)

// PreselectScore is the cheap score used to bound expensive stages
func PreselectScore(opp domain.Opportunity, now time.Time) float64 {
	return domain.Clamp01(preselectTrust*Trust(opp) + preselectRecency*Recency(opp, now))
}

// Preselect returns the top limit candidates by preselect score and the remainder,
// both in preselect order. Ties break on created_at desc, then id.
func Preselect(candidates []domain.Opportunity, now time.Time, limit int) ([]domain.Opportunity, []domain.Opportunity) {
	type scored struct {
		opp   domain.Opportunity
		score float64
	}

	items := make([]scored, len(candidates))
	for i, c := range candidates {
		items[i] = scored{opp: c, score: PreselectScore(c, now)}
	}
	slices.SortStableFunc(items, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := b.opp.CreatedAt.Compare(a.opp.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.opp.ID, b.opp.ID)
	})

	ordered := make([]domain.Opportunity, len(items))
	for i, it := range items {
		ordered[i] = it.opp
	}

	if limit < 0 || limit >= len(ordered) {
		return ordered, nil
	}
	return ordered[:limit], ordered[limit:]
}
