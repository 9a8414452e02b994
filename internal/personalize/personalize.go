package personalize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/eligibility"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/merge"
	"github.com/feral-file/ff-opportunities/internal/metrics"
	"github.com/feral-file/ff-opportunities/internal/ranking"
	"github.com/feral-file/ff-opportunities/internal/signals"
)

const (
	modeAnonymous    = "anonymous"
	modePersonalized = "personalized"
	modeFallback     = "fallback"
)

// Options tune a single ranking request
type Options struct {
	// IncludeUnranked appends the preselected but unevaluated candidates after the ranked ones
	IncludeUnranked bool
}

// Limits bounds the expensive stages of one request
type Limits struct {
	PreselectLimit int
	EvaluateLimit  int
	WorkerPoolSize int
}

func (l Limits) withDefaults() Limits {
	if l.PreselectLimit <= 0 {
		l.PreselectLimit = domain.PRESELECT_LIMIT
	}
	if l.EvaluateLimit <= 0 {
		l.EvaluateLimit = domain.EVALUATE_LIMIT
	}
	l.EvaluateLimit = min(l.EvaluateLimit, l.PreselectLimit)
	if l.WorkerPoolSize <= 0 {
		l.WorkerPoolSize = domain.WORKER_POOL_SIZE
	}
	return l
}

// HistoryReader reads what a wallet has previously done with opportunities
type HistoryReader interface {
	GetWalletHistory(ctx context.Context, wallet string) (domain.WalletHistory, error)
}

// Service ranks candidate opportunities for a wallet
//
//go:generate mockgen -source=personalize.go -destination=../mocks/personalize.go -package=mocks -mock_names=Service=MockPersonalizeService,HistoryReader=MockHistoryReader
type Service interface {
	// GetRankedOpportunities returns the candidates ranked for wallet. A nil wallet returns them
	// newest first without eligibility or ranking. Only a malformed wallet or a canceled context
	// is an error; any other failure degrades to the unranked list.
	GetRankedOpportunities(ctx context.Context, wallet *string, candidates []domain.Opportunity, opts Options) ([]domain.RankedOpportunity, error)
}

type service struct {
	signals     signals.Service
	eligibility eligibility.Engine
	history     HistoryReader
	clock       adapter.Clock
	limits      Limits
}

// NewService creates a personalization service. A nil history reader yields an empty history.
func NewService(signalsService signals.Service, engine eligibility.Engine, history HistoryReader, clock adapter.Clock, limits Limits) Service {
	return &service{
		signals:     signalsService,
		eligibility: engine,
		history:     history,
		clock:       clock,
		limits:      limits.withDefaults(),
	}
}

func (s *service) GetRankedOpportunities(ctx context.Context, wallet *string, candidates []domain.Opportunity, opts Options) ([]domain.RankedOpportunity, error) {
	startedAt := s.clock.Now()
	// one candidate per dedupe key regardless of what the caller passed in
	candidates = merge.Merge(candidates)

	if wallet == nil {
		defer observe(modeAnonymous, s.clock, startedAt)
		return unranked(candidates), nil
	}

	ranked, err := s.personalize(ctx, *wallet, candidates, opts, startedAt)
	switch {
	case err == nil:
		observe(modePersonalized, s.clock, startedAt)
		return ranked, nil
	case errors.Is(err, domain.ErrInvalidInput), ctx.Err() != nil:
		return nil, err
	default:
		logger.WarnCtx(ctx, "Personalization failed, returning unranked candidates",
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
		observe(modeFallback, s.clock, startedAt)
		return unranked(candidates), nil
	}
}

func (s *service) personalize(ctx context.Context, wallet string, candidates []domain.Opportunity, opts Options, now time.Time) ([]domain.RankedOpportunity, error) {
	preselected, _ := ranking.Preselect(candidates, now, s.limits.PreselectLimit)
	evaluated := preselected
	var rest []domain.Opportunity
	if len(preselected) > s.limits.EvaluateLimit {
		evaluated, rest = preselected[:s.limits.EvaluateLimit], preselected[s.limits.EvaluateLimit:]
	}

	walletSignals, history, err := s.walletContext(ctx, wallet)
	if err != nil {
		return nil, err
	}

	results, err := s.evaluate(ctx, walletSignals, evaluated, now)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedOpportunity, len(evaluated))
	for i, opp := range evaluated {
		result := results[i]
		score := ranking.Rank(opp, &result, walletSignals, history, now)
		ranked[i] = domain.RankedOpportunity{
			Opportunity: opp,
			EligibilityPreview: &domain.EligibilityPreview{
				Status:  result.Status,
				Score:   result.Score,
				Reasons: result.Reasons,
			},
			Ranking: &score,
		}
	}
	ranking.SortRanked(ranked)

	if opts.IncludeUnranked {
		for _, opp := range rest {
			ranked = append(ranked, domain.RankedOpportunity{Opportunity: opp})
		}
	}

	logger.DebugCtx(ctx, "Ranked opportunities",
		zap.String("wallet", walletSignals.Address),
		zap.Int("candidates", len(candidates)),
		zap.Int("preselected", len(preselected)),
		zap.Int("evaluated", len(evaluated)),
	)
	return ranked, nil
}

// walletContext fetches signals and history concurrently. A history failure degrades to
// an empty history; a signals failure fails the request.
func (s *service) walletContext(ctx context.Context, wallet string) (*domain.WalletSignals, domain.WalletHistory, error) {
	var (
		walletSignals *domain.WalletSignals
		history       domain.WalletHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		walletSignals, err = s.signals.GetSignals(gctx, wallet)
		if err != nil {
			return fmt.Errorf("failed to get wallet signals: %w", err)
		}
		return nil
	})
	if s.history != nil {
		g.Go(func() error {
			h, err := s.history.GetWalletHistory(gctx, strings.ToLower(wallet))
			if err != nil {
				logger.WarnCtx(ctx, "Failed to read wallet history, using empty history", zap.Error(err))
				return nil
			}
			history = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.WalletHistory{}, err
	}
	if walletSignals == nil {
		return nil, domain.WalletHistory{}, errors.New("no wallet signals returned")
	}
	return walletSignals, history, nil
}

// evaluate runs eligibility for every opportunity through a bounded pool.
// Results are in input order; a failed evaluation takes the degraded fallback.
func (s *service) evaluate(ctx context.Context, walletSignals *domain.WalletSignals, opps []domain.Opportunity, now time.Time) ([]domain.EligibilityResult, error) {
	results := make([]domain.EligibilityResult, len(opps))
	if len(opps) == 0 {
		return results, nil
	}

	pool := pond.NewPool(min(s.limits.WorkerPoolSize, len(opps)))
	for i, opp := range opps {
		pool.Submit(func() {
			result, err := s.eligibility.Evaluate(ctx, walletSignals, opp)
			if err != nil {
				logger.WarnCtx(ctx, "Eligibility evaluation failed, using fallback",
					zap.String("opportunity_id", opp.ID),
					zap.Error(err),
				)
				result = eligibility.Fallback(walletSignals.Address, opp.ID, now)
			}
			results[i] = result
		})
	}
	pool.StopAndWait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// unranked returns the candidates newest first without eligibility or ranking
func unranked(candidates []domain.Opportunity) []domain.RankedOpportunity {
	sorted := append([]domain.Opportunity(nil), candidates...)
	ranking.SortByCreated(sorted)

	items := make([]domain.RankedOpportunity, len(sorted))
	for i, opp := range sorted {
		items[i] = domain.RankedOpportunity{Opportunity: opp}
	}
	return items
}

func observe(mode string, clock adapter.Clock, startedAt time.Time) {
	metrics.PersonalizeLatency.WithLabelValues(mode).Observe(clock.Since(startedAt).Seconds())
}
