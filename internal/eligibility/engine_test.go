package eligibility_test

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
	"github.com/feral-file/ff-opportunities/internal/eligibility"
	"github.com/feral-file/ff-opportunities/internal/mocks"
)

const wallet = "0x4444444444444444444444444444444444444444"

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func fullSignals() *domain.WalletSignals {
	return &domain.WalletSignals{
		Address:       wallet,
		WalletAgeDays: intPtr(90),
		TxCount90d:    intPtr(50),
		ChainsActive:  []domain.Chain{domain.ChainEthereum},
		TopAssets:     []string{"ETH"},
	}
}

func opportunity(req *domain.Requirements) domain.Opportunity {
	return domain.Opportunity{
		ID:           "opp-1",
		Source:       domain.SourceCurated,
		Protocol:     "Example",
		Chains:       []domain.Chain{domain.ChainEthereum},
		Requirements: req,
	}
}

type fixture struct {
	clock    *mocks.MockClock
	checker  *mocks.MockSnapshotChecker
	backend  *cache.Memory[domain.EligibilityResult]
	engine   eligibility.Engine
	noSnapEn eligibility.Engine
}

func setup(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		clock:   mocks.NewMockClock(ctrl),
		checker: mocks.NewMockSnapshotChecker(ctrl),
		backend: cache.NewMemory[domain.EligibilityResult](0),
	}
	f.clock.EXPECT().Now().Return(now).AnyTimes()
	tier := eligibility.NewTier(f.backend, f.clock)
	f.engine = eligibility.NewEngine(tier, f.checker, f.clock)
	f.noSnapEn = eligibility.NewEngine(eligibility.NewTier(cache.NewMemory[domain.EligibilityResult](0), f.clock), nil, f.clock)
	return f
}

func assertReasonCount(t *testing.T, r domain.EligibilityResult) {
	t.Helper()
	assert.GreaterOrEqual(t, len(r.Reasons), 2)
	assert.LessOrEqual(t, len(r.Reasons), 5)
}

func TestEvaluate_EmptyRequirements(t *testing.T) {
	tests := []struct {
		name string
		req  *domain.Requirements
	}{
		{name: "absent", req: nil},
		{name: "empty", req: &domain.Requirements{}},
		{name: "empty sets", req: &domain.Requirements{Chains: []domain.Chain{}, RequiredTokens: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			got, err := f.engine.Evaluate(context.Background(), &domain.WalletSignals{Address: wallet}, opportunity(tt.req))
			require.NoError(t, err)
			assert.Equal(t, domain.EligibilityMaybe, got.Status)
			assert.Equal(t, 0.5, got.Score)
			assert.Equal(t, []string{"No specific requirements"}, got.Reasons)
			assert.False(t, got.Degraded)
		})
	}
}

func TestEvaluate_LikelyScenario(t *testing.T) {
	f := setup(t)
	req := &domain.Requirements{
		Chains:           []domain.Chain{domain.ChainEthereum},
		MinWalletAgeDays: intPtr(30),
		MinTxCount:       intPtr(10),
	}

	got, err := f.engine.Evaluate(context.Background(), fullSignals(), opportunity(req))
	require.NoError(t, err)
	assert.Equal(t, domain.EligibilityLikely, got.Status)
	assert.GreaterOrEqual(t, got.Score, 0.8)
	assert.False(t, got.Degraded)
	assert.Equal(t, now, got.ComputedAt)
	assertReasonCount(t, got)
}

func TestEvaluate_ChainMismatchScenario(t *testing.T) {
	f := setup(t)
	req := &domain.Requirements{
		Chains:           []domain.Chain{domain.ChainBase},
		MinWalletAgeDays: intPtr(30),
		MinTxCount:       intPtr(10),
	}

	got, err := f.engine.Evaluate(context.Background(), fullSignals(), opportunity(req))
	require.NoError(t, err)
	assert.Equal(t, domain.EligibilityUnlikely, got.Status)
	assert.Less(t, got.Score, 0.5)
	assert.Equal(t, "No activity on required chains: base", got.Reasons[0])
	assert.Equal(t, []string{
		"No activity on required chains: base",
		"No wallet history on base for the 30 day age minimum",
		"No transactions on base, 10 required",
	}, got.Reasons)
}

func TestEvaluate_ChainOnlyMismatchIsMaybe(t *testing.T) {
	f := setup(t)
	req := &domain.Requirements{Chains: []domain.Chain{domain.ChainBase}}

	got, err := f.engine.Evaluate(context.Background(), fullSignals(), opportunity(req))
	require.NoError(t, err)
	assert.Equal(t, 0.7, got.Score)
	assert.Equal(t, domain.EligibilityMaybe, got.Status)
	assert.Equal(t, []string{
		"No activity on required chains: base",
		"Estimated eligibility: maybe (score 0.70)",
	}, got.Reasons)
}

func TestEvaluate_PenaltiesSumWithoutFloatDrift(t *testing.T) {
	f := setup(t)
	req := &domain.Requirements{
		Chains:           []domain.Chain{domain.ChainEthereum},
		MinWalletAgeDays: intPtr(365),
		MinTxCount:       intPtr(100),
	}

	got, err := f.engine.Evaluate(context.Background(), fullSignals(), opportunity(req))
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Score)
	assert.Equal(t, domain.EligibilityMaybe, got.Status)
}

func TestEvaluate_AllPenaltiesClampAtZero(t *testing.T) {
	f := setup(t)
	req := &domain.Requirements{
		Chains:           []domain.Chain{domain.ChainBase},
		MinWalletAgeDays: intPtr(365),
		MinTxCount:       intPtr(100),
		RequiredTokens:   []string{"USDC", "DAI"},
	}

	got, err := f.engine.Evaluate(context.Background(), fullSignals(), opportunity(req))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, domain.EligibilityUnlikely, got.Status)
	assert.Len(t, got.Reasons, 4)
	assert.Contains(t, got.Reasons, "Missing required tokens: USDC, DAI")
}

func TestEvaluate_NullSignalsAreNeutralAndPinned(t *testing.T) {
	f := setup(t)
	req := &domain.Requirements{
		Chains:           []domain.Chain{domain.ChainEthereum},
		MinWalletAgeDays: intPtr(30),
		MinTxCount:       intPtr(10),
	}
	signals := &domain.WalletSignals{Address: wallet, TxCount90d: intPtr(50)}

	got, err := f.engine.Evaluate(context.Background(), signals, opportunity(req))
	require.NoError(t, err)
	// two of three checks indeterminate, no penalties
	assert.Equal(t, 0.5, got.Score)
	assert.Equal(t, domain.EligibilityMaybe, got.Status)
	assert.True(t, got.Degraded)
	assert.Equal(t, time.Hour, eligibility.TTL(got))
	assert.Equal(t, []string{
		"50 transactions in the last 90 days meets the minimum of 10",
		"Chain activity could not be verified",
		"Wallet age could not be verified",
	}, got.Reasons)
}

func TestEvaluate_MinorityIndeterminateIsNotPinned(t *testing.T) {
	f := setup(t)
	req := &domain.Requirements{
		Chains:           []domain.Chain{domain.ChainEthereum},
		MinWalletAgeDays: intPtr(30),
		MinTxCount:       intPtr(10),
	}
	signals := fullSignals()
	signals.WalletAgeDays = nil

	got, err := f.engine.Evaluate(context.Background(), signals, opportunity(req))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Score)
	assert.Equal(t, domain.EligibilityLikely, got.Status)
	assert.True(t, got.Degraded)
}

func TestEvaluate_ReasonsTruncatedToFive(t *testing.T) {
	f := setup(t)
	snapshotDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	opp := opportunity(&domain.Requirements{
		Chains:           []domain.Chain{domain.ChainEthereum},
		MinWalletAgeDays: intPtr(30),
		MinTxCount:       intPtr(10),
		RequiredTokens:   []string{"ETH"},
	})
	opp.SnapshotDate = &snapshotDate

	f.checker.EXPECT().CheckSnapshot(gomock.Any(), wallet, snapshotDate, domain.ChainEthereum).
		Return(domain.HistoricalActivityResult{}, errors.New("indexer down"))

	got, err := f.engine.Evaluate(context.Background(), fullSignals(), opp)
	require.NoError(t, err)
	assert.Len(t, got.Reasons, 5)
	assert.Equal(t, "Snapshot activity could not be verified", got.Reasons[4])
	assert.True(t, got.Degraded)
}

func TestEvaluate_Snapshot(t *testing.T) {
	snapshotDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	req := &domain.Requirements{Chains: []domain.Chain{domain.ChainBase}}

	tests := []struct {
		name      string
		activity  domain.ActivityState
		wantScore float64
		wantState domain.EligibilityStatus
		reason    string
		degraded  bool
	}{
		{name: "active reopens likely", activity: domain.ActivityActive, wantScore: 1.0, wantState: domain.EligibilityLikely, reason: "Active on ethereum before the 2025-03-15 snapshot"},
		{name: "inactive", activity: domain.ActivityInactive, wantScore: 0.4, wantState: domain.EligibilityUnlikely, reason: "No activity on ethereum before the 2025-03-15 snapshot"},
		{name: "unknown is neutral", activity: domain.ActivityUnknown, wantScore: 0.7, wantState: domain.EligibilityMaybe, reason: "Snapshot activity could not be verified", degraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			opp := opportunity(req)
			opp.SnapshotDate = &snapshotDate

			f.checker.EXPECT().CheckSnapshot(gomock.Any(), wallet, snapshotDate, domain.ChainEthereum).
				Return(domain.HistoricalActivityResult{
					WalletAddress: wallet,
					SnapshotDate:  snapshotDate,
					Chain:         domain.ChainEthereum,
					WasActive:     tt.activity,
					Degraded:      tt.activity == domain.ActivityUnknown,
				}, nil)

			got, err := f.engine.Evaluate(context.Background(), fullSignals(), opp)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantState, got.Status)
			assert.Contains(t, got.Reasons, tt.reason)
			assert.Equal(t, tt.degraded, got.Degraded)
			assertReasonCount(t, got)
		})
	}
}

func TestEvaluate_SnapshotWithoutChecker(t *testing.T) {
	f := setup(t)
	snapshotDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	opp := opportunity(&domain.Requirements{Chains: []domain.Chain{domain.ChainBase}})
	opp.SnapshotDate = &snapshotDate

	got, err := f.noSnapEn.Evaluate(context.Background(), fullSignals(), opp)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, got.Score, 1e-9)
	assert.Contains(t, got.Reasons, "Snapshot activity could not be verified")
	assert.True(t, got.Degraded)
	assertReasonCount(t, got)
}

func TestEvaluate_SnapshotIgnoredWithoutRequirements(t *testing.T) {
	snapshotDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, req := range []*domain.Requirements{nil, {}} {
		f := setup(t)
		opp := opportunity(req)
		opp.SnapshotDate = &snapshotDate

		// no CheckSnapshot expectation: any call fails the test
		for _, engine := range []eligibility.Engine{f.engine, f.noSnapEn} {
			got, err := engine.Evaluate(context.Background(), fullSignals(), opp)
			require.NoError(t, err)
			assert.Equal(t, domain.EligibilityMaybe, got.Status)
			assert.Equal(t, 0.5, got.Score)
			assert.Equal(t, []string{"No specific requirements"}, got.Reasons)
			assert.False(t, got.Degraded)
		}
	}
}

func TestEvaluate_CachedPerWalletAndOpportunity(t *testing.T) {
	f := setup(t)
	snapshotDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	opp := opportunity(nil)
	opp.SnapshotDate = &snapshotDate

	first, err := f.engine.Evaluate(context.Background(), fullSignals(), opp)
	require.NoError(t, err)
	second, err := f.engine.Evaluate(context.Background(), fullSignals(), opp)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, domain.EligibilityMaybe, first.Status)
	assert.Equal(t, 0.5, first.Score)
	assert.Equal(t, []string{"No specific requirements"}, first.Reasons)
	assert.Equal(t, 1, f.backend.Len())

	other := opportunity(&domain.Requirements{Chains: []domain.Chain{domain.ChainBase}})
	other.ID = "opp-2"
	other.SnapshotDate = &snapshotDate
	f.checker.EXPECT().CheckSnapshot(gomock.Any(), wallet, snapshotDate, domain.ChainEthereum).
		Return(domain.HistoricalActivityResult{WasActive: domain.ActivityActive, Chain: domain.ChainEthereum, SnapshotDate: snapshotDate}, nil).
		Times(1)

	for range 2 {
		got, err := f.engine.Evaluate(context.Background(), fullSignals(), other)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got.Score, 1e-9)
	}
	assert.Equal(t, 2, f.backend.Len())
}

func TestEvaluate_InvalidSignals(t *testing.T) {
	f := setup(t)

	_, err := f.engine.Evaluate(context.Background(), nil, opportunity(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.Evaluate(context.Background(), &domain.WalletSignals{Address: "bad"}, opportunity(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssessment_WithSnapshotKeepsNoRequirementResult(t *testing.T) {
	base := eligibility.Assess(fullSignals(), nil)
	next := base.WithSnapshot(domain.HistoricalActivityResult{WasActive: domain.ActivityActive, Chain: domain.ChainEthereum})

	got := next.Result(wallet, "opp-1", now)
	assert.Equal(t, 0.5, got.Score)
	assert.Equal(t, []string{"No specific requirements"}, got.Reasons)
}

func TestAssessment_WithSnapshotDoesNotMutate(t *testing.T) {
	base := eligibility.Assess(fullSignals(), &domain.Requirements{Chains: []domain.Chain{domain.ChainBase}})
	next := base.WithSnapshot(domain.HistoricalActivityResult{WasActive: domain.ActivityInactive, Chain: domain.ChainBase})

	assert.Equal(t, 0.7, base.Score)
	assert.Len(t, base.Unmet, 1)
	assert.InDelta(t, 0.4, next.Score, 1e-9)
	assert.Len(t, next.Unmet, 2)
}

func TestFallback(t *testing.T) {
	got := eligibility.Fallback(wallet, "opp-1", now)
	assert.Equal(t, domain.EligibilityMaybe, got.Status)
	assert.True(t, got.Degraded)
	assert.Len(t, got.Reasons, 2)
}
