package eligibility

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/metrics"
	"github.com/feral-file/ff-opportunities/internal/snapshot"
)

const (
	chainPenalty    = 0.3
	agePenalty      = 0.3
	txPenalty       = 0.2
	tokenPenalty    = 0.2
	snapshotNudge   = 0.3
	indeterminateAt = 0.5

	minReasons = 2
	maxReasons = 5

	noRequirementsReason = "No specific requirements"
)

// Engine estimates whether a wallet qualifies for an opportunity
//
//go:generate mockgen -source=engine.go -destination=../mocks/eligibility.go -package=mocks -mock_names=Engine=MockEligibilityEngine
type Engine interface {
	// Evaluate returns the cached or freshly computed eligibility of the wallet described
	// by signals. Missing signals degrade the result instead of failing it.
	Evaluate(ctx context.Context, signals *domain.WalletSignals, opportunity domain.Opportunity) (domain.EligibilityResult, error)
}

// NewTier creates the eligibility cache tier
func NewTier(backend cache.Backend[domain.EligibilityResult], clock adapter.Clock) *cache.Tier[domain.EligibilityResult] {
	return cache.NewTier("eligibility", backend, TTL, clock)
}

// TTL returns the validity of an eligibility result
func TTL(r domain.EligibilityResult) time.Duration {
	if r.Degraded {
		return domain.ELIGIBILITY_DEGRADED_TTL
	}
	return domain.ELIGIBILITY_TTL
}

type engine struct {
	tier     *cache.Tier[domain.EligibilityResult]
	snapshot snapshot.Checker
	clock    adapter.Clock
}

// NewEngine creates an eligibility engine. A nil snapshot checker treats every
// snapshot-gated opportunity as unverifiable.
func NewEngine(tier *cache.Tier[domain.EligibilityResult], checker snapshot.Checker, clock adapter.Clock) Engine {
	return &engine{
		tier:     tier,
		snapshot: checker,
		clock:    clock,
	}
}

// Evaluate checks the cache first, then scores the requirements and applies the snapshot pass
func (e *engine) Evaluate(ctx context.Context, signals *domain.WalletSignals, opportunity domain.Opportunity) (domain.EligibilityResult, error) {
	if signals == nil {
		return domain.EligibilityResult{}, fmt.Errorf("%w: missing wallet signals", domain.ErrInvalidInput)
	}
	wallet, err := domain.NormalizeAddress(signals.Address)
	if err != nil {
		return domain.EligibilityResult{}, err
	}

	key := wallet + ":" + opportunity.ID
	return e.tier.GetOrCompute(ctx, key, func(ctx context.Context) (domain.EligibilityResult, error) {
		a := Assess(signals, opportunity.Requirements)

		if opportunity.SnapshotDate != nil && !opportunity.Requirements.IsEmpty() {
			activity := e.checkSnapshot(ctx, wallet, *opportunity.SnapshotDate, opportunity.PrimaryChain())
			if err := ctx.Err(); err != nil {
				return domain.EligibilityResult{}, err
			}
			a = a.WithSnapshot(activity)
		}

		result := a.Result(wallet, opportunity.ID, e.clock.Now())
		metrics.EligibilityEvaluations.WithLabelValues(string(result.Status), strconv.FormatBool(result.Degraded)).Inc()
		return result, nil
	})
}

func (e *engine) checkSnapshot(ctx context.Context, wallet string, date time.Time, chain domain.Chain) domain.HistoricalActivityResult {
	unknown := domain.HistoricalActivityResult{
		WalletAddress: wallet,
		SnapshotDate:  date,
		Chain:         chain,
		WasActive:     domain.ActivityUnknown,
		Degraded:      true,
	}
	if e.snapshot == nil {
		return unknown
	}

	activity, err := e.snapshot.CheckSnapshot(ctx, wallet, date, chain)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.WarnCtx(ctx, "Snapshot check failed", zap.String("wallet", wallet), zap.Error(err))
		}
		return unknown
	}
	return activity
}

// Fallback is the degraded result used when an evaluation could not run at all
func Fallback(wallet string, opportunityID string, now time.Time) domain.EligibilityResult {
	return domain.EligibilityResult{
		WalletAddress: wallet,
		OpportunityID: opportunityID,
		Status:        domain.EligibilityMaybe,
		Score:         indeterminateAt,
		Reasons: []string{
			"Eligibility could not be evaluated",
			estimateReason(domain.EligibilityMaybe, indeterminateAt),
		},
		Degraded:   true,
		ComputedAt: now,
	}
}

// Assessment is an intermediate eligibility score with its categorized reasons.
// Its methods return new values and never modify the receiver.
type Assessment struct {
	Score         float64
	Checks        int
	Indeterminate int
	Unmet         []string
	Met           []string
	Neutral       []string
	Degraded      bool
	noRequirement bool
}

// Assess scores the requirements against the signals
func Assess(signals *domain.WalletSignals, req *domain.Requirements) Assessment {
	if req.IsEmpty() {
		return Assessment{Score: indeterminateAt, noRequirement: true}
	}

	a := Assessment{Score: 1.0}
	indeterminate := func(reason string) {
		a.Indeterminate++
		a.Neutral = append(a.Neutral, reason)
	}

	if len(req.Chains) > 0 {
		a.Checks++
		switch {
		case signals.ChainsActive == nil:
			indeterminate("Chain activity could not be verified")
		case domain.ChainsIntersect(req.Chains, signals.ChainsActive):
			a.Met = append(a.Met, "Active on required chain: "+joinChains(intersection(req.Chains, signals.ChainsActive)))
		default:
			a.Score -= chainPenalty
			a.Unmet = append(a.Unmet, "No activity on required chains: "+joinChains(req.Chains))
		}
	}

	// a wallet never seen on any required chain has no age or activity there
	offChain := len(req.Chains) > 0 && signals.ChainsActive != nil && !domain.ChainsIntersect(req.Chains, signals.ChainsActive)

	if req.MinWalletAgeDays != nil {
		a.Checks++
		minAge := *req.MinWalletAgeDays
		switch {
		case offChain:
			a.Score -= agePenalty
			a.Unmet = append(a.Unmet, fmt.Sprintf("No wallet history on %s for the %d day age minimum", joinChains(req.Chains), minAge))
		case signals.WalletAgeDays == nil:
			indeterminate("Wallet age could not be verified")
		case *signals.WalletAgeDays >= minAge:
			a.Met = append(a.Met, fmt.Sprintf("Wallet age %d days meets the %d day minimum", *signals.WalletAgeDays, minAge))
		default:
			a.Score -= agePenalty
			a.Unmet = append(a.Unmet, fmt.Sprintf("Wallet age %d days is below the %d day minimum", *signals.WalletAgeDays, minAge))
		}
	}

	if req.MinTxCount != nil {
		a.Checks++
		minTx := *req.MinTxCount
		switch {
		case offChain:
			a.Score -= txPenalty
			a.Unmet = append(a.Unmet, fmt.Sprintf("No transactions on %s, %d required", joinChains(req.Chains), minTx))
		case signals.TxCount90d == nil:
			indeterminate("Transaction count could not be verified")
		case *signals.TxCount90d >= minTx:
			a.Met = append(a.Met, fmt.Sprintf("%d transactions in the last 90 days meets the minimum of %d", *signals.TxCount90d, minTx))
		default:
			a.Score -= txPenalty
			a.Unmet = append(a.Unmet, fmt.Sprintf("%d transactions in the last 90 days, %d required", *signals.TxCount90d, minTx))
		}
	}

	if len(req.RequiredTokens) > 0 {
		a.Checks++
		switch missing := missingTokens(req.RequiredTokens, signals.TopAssets); {
		case signals.TopAssets == nil:
			indeterminate("Token holdings could not be verified")
		case len(missing) == 0:
			a.Met = append(a.Met, "Holds required tokens: "+strings.Join(req.RequiredTokens, ", "))
		default:
			a.Score -= tokenPenalty
			a.Unmet = append(a.Unmet, "Missing required tokens: "+strings.Join(missing, ", "))
		}
	}

	a.Degraded = a.Indeterminate > 0
	a.Score = settle(a.Score)
	if a.Indeterminate*2 > a.Checks {
		a.Score = min(a.Score, indeterminateAt)
	}
	return a
}

// WithSnapshot applies the pre-snapshot activity nudge and returns the new assessment.
// An assessment without requirements is returned unchanged.
func (a Assessment) WithSnapshot(activity domain.HistoricalActivityResult) Assessment {
	if a.noRequirement {
		return a
	}

	next := a
	next.Unmet = slices.Clone(a.Unmet)
	next.Met = slices.Clone(a.Met)
	next.Neutral = slices.Clone(a.Neutral)

	date := activity.SnapshotDate.UTC().Format("2006-01-02")
	switch activity.WasActive {
	case domain.ActivityActive:
		next.Score = settle(a.Score + snapshotNudge)
		next.Met = append(next.Met, fmt.Sprintf("Active on %s before the %s snapshot", activity.Chain, date))
	case domain.ActivityInactive:
		next.Score = settle(a.Score - snapshotNudge)
		next.Unmet = append(next.Unmet, fmt.Sprintf("No activity on %s before the %s snapshot", activity.Chain, date))
	default:
		next.Neutral = append(next.Neutral, "Snapshot activity could not be verified")
	}
	next.Degraded = a.Degraded || activity.Degraded || activity.WasActive == domain.ActivityUnknown
	return next
}

// Result maps the assessment to a status and the final 2 to 5 reasons
func (a Assessment) Result(wallet string, opportunityID string, now time.Time) domain.EligibilityResult {
	score := domain.Clamp01(a.Score)
	status := domain.StatusForScore(score)

	var reasons []string
	if a.noRequirement {
		reasons = []string{noRequirementsReason}
	} else {
		reasons = make([]string, 0, maxReasons)
		reasons = append(reasons, a.Unmet...)
		reasons = append(reasons, a.Met...)
		reasons = append(reasons, a.Neutral...)
		if len(reasons) > maxReasons {
			reasons = reasons[:maxReasons]
		}
		if len(reasons) < minReasons {
			reasons = append(reasons, estimateReason(status, score))
		}
		if len(reasons) < minReasons {
			reasons = append(reasons, fmt.Sprintf("Based on %d of %d verifiable requirements", a.Checks-a.Indeterminate, a.Checks))
		}
	}

	return domain.EligibilityResult{
		WalletAddress: wallet,
		OpportunityID: opportunityID,
		Status:        status,
		Score:         score,
		Reasons:       reasons,
		Degraded:      a.Degraded,
		ComputedAt:    now,
	}
}

// settle clamps v and drops the float noise left by summing penalties, so 1-0.3-0.2 is 0.5
func settle(v float64) float64 {
	return domain.Clamp01(math.Round(v*1e6) / 1e6)
}

func estimateReason(status domain.EligibilityStatus, score float64) string {
	return fmt.Sprintf("Estimated eligibility: %s (score %.2f)", status, score)
}

func missingTokens(required []string, held []string) []string {
	var missing []string
	for _, token := range required {
		if !slices.ContainsFunc(held, func(h string) bool { return strings.EqualFold(h, token) }) {
			missing = append(missing, token)
		}
	}
	return missing
}

func intersection(a, b []domain.Chain) []domain.Chain {
	var out []domain.Chain
	for _, c := range a {
		if slices.Contains(b, c) {
			out = append(out, c)
		}
	}
	return out
}

func joinChains(chains []domain.Chain) string {
	names := make([]string, len(chains))
	for i, c := range chains {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
