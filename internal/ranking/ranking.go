package ranking

import (
	"cmp"
	"slices"
	"time"

	"github.com/feral-file/ff-opportunities/internal/domain"
)

const (
	relevanceActiveChain = 0.4
	relevanceLikely      = 0.2
	relevanceMaybe       = 0.1
	relevanceSavedTag    = 0.1
	relevanceType        = 0.2

	overallRelevance = 0.60
	overallTrust     = 0.25
	overallFreshness = 0.15

	recencyWindowDays  = 30.0
	urgencyWindowHours = 168.0
)

// Rank scores one opportunity for one wallet. It is pure; eligibility and signals may be nil.
func Rank(opp domain.Opportunity, eligibility *domain.EligibilityResult, signals *domain.WalletSignals, history domain.WalletHistory, now time.Time) domain.RankingScore {
	relevance := 0.0
	if signals != nil && domain.ChainsIntersect(opp.Chains, signals.ChainsActive) {
		relevance += relevanceActiveChain
	}
	if eligibility != nil {
		switch eligibility.Status {
		case domain.EligibilityLikely:
			relevance += relevanceLikely
		case domain.EligibilityMaybe:
			relevance += relevanceMaybe
		}
	}
	if tagsIntersect(opp.Tags, history.SavedTags) {
		relevance += relevanceSavedTag
	}
	if history.MostCompletedType != "" && opp.Type == history.MostCompletedType {
		relevance += relevanceType
	}
	relevance = domain.Clamp01(relevance)

	freshness := Freshness(opp, now)
	overall := domain.Clamp01(overallRelevance*relevance + overallTrust*Trust(opp) + overallFreshness*freshness)

	return domain.RankingScore{
		Overall:   overall,
		Relevance: relevance,
		Freshness: freshness,
	}
}

// Trust returns the opportunity trust score scaled into [0, 1]
func Trust(opp domain.Opportunity) float64 {
	return domain.Clamp01(float64(opp.TrustScore) / 100)
}

// Recency decays linearly from 1 at creation to 0 after 30 days
func Recency(opp domain.Opportunity, now time.Time) float64 {
	days := now.Sub(opp.CreatedAt).Hours() / 24
	return domain.Clamp01(1 - max(days, 0)/recencyWindowDays)
}

// Urgency rises linearly to 1 over the final week before the end date; 0 without one
func Urgency(opp domain.Opportunity, now time.Time) float64 {
	if opp.EndsAt == nil {
		return 0
	}
	hours := opp.EndsAt.Sub(now).Hours()
	return domain.Clamp01(1 - max(hours, 0)/urgencyWindowHours)
}

// Freshness is the larger of recency and urgency
func Freshness(opp domain.Opportunity, now time.Time) float64 {
	return domain.Clamp01(max(Recency(opp, now), Urgency(opp, now)))
}

// SortRanked orders by overall desc, then created_at desc, then id for stability.
// Items without a ranking sort last.
func SortRanked(items []domain.RankedOpportunity) {
	slices.SortStableFunc(items, func(a, b domain.RankedOpportunity) int {
		if c := cmp.Compare(overallOf(b), overallOf(a)); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// SortByCreated orders newest first, then by id
func SortByCreated(opps []domain.Opportunity) {
	slices.SortStableFunc(opps, func(a, b domain.Opportunity) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func overallOf(r domain.RankedOpportunity) float64 {
	if r.Ranking == nil {
		return -1
	}
	return r.Ranking.Overall
}

func tagsIntersect(tags, saved []string) bool {
	for _, t := range tags {
		if slices.Contains(saved, t) {
			return true
		}
	}
	return false
}
