package signals

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/block"
	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/metrics"
	"github.com/feral-file/ff-opportunities/internal/providers/alchemy"
	"github.com/feral-file/ff-opportunities/internal/providers/ethereum"
	"github.com/feral-file/ff-opportunities/internal/providers/moralis"
)

// maxConcurrentFetches bounds the provider calls made for one signals lookup
const maxConcurrentFetches = 3

// Service derives wallet signals from optional on-chain providers
//
//go:generate mockgen -source=signals.go -destination=../mocks/signals.go -package=mocks -mock_names=Service=MockSignalsService
type Service interface {
	// GetSignals returns the signals of address. Providers that are missing or failing
	// leave their signal nil; only an invalid address or a canceled context is an error.
	GetSignals(ctx context.Context, address string) (*domain.WalletSignals, error)
}

// Providers are the optional signal sources. A nil provider yields a nil signal.
type Providers struct {
	RPC     ethereum.Client
	Blocks  block.BlockProvider
	Alchemy alchemy.Client
	Moralis moralis.Client
}

type service struct {
	providers   Providers
	tier        *cache.Tier[domain.WalletSignals]
	clock       adapter.Clock
	callTimeout time.Duration
	breakers    map[string]*gobreaker.CircuitBreaker
}

// NewService creates a signals service backed by the given cache tier
func NewService(providers Providers, tier *cache.Tier[domain.WalletSignals], clock adapter.Clock, callTimeout time.Duration) Service {
	if callTimeout <= 0 {
		callTimeout = domain.PROVIDER_CALL_TIMEOUT
	}

	breakers := make(map[string]*gobreaker.CircuitBreaker, 3)
	for _, name := range []string{ethereum.PROVIDER_NAME, alchemy.PROVIDER_NAME, moralis.PROVIDER_NAME} {
		breakers[name] = newBreaker(name)
	}

	return &service{
		providers:   providers,
		tier:        tier,
		clock:       clock,
		callTimeout: callTimeout,
		breakers:    breakers,
	}
}

// NewTier creates the signals cache tier
func NewTier(backend cache.Backend[domain.WalletSignals], clock adapter.Clock) *cache.Tier[domain.WalletSignals] {
	return cache.NewTier("signals", backend, cache.FixedTTL[domain.WalletSignals](domain.SIGNALS_TTL), clock)
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrProviderUnconfigured)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Provider circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// GetSignals validates address and returns the cached or freshly fetched signals
func (s *service) GetSignals(ctx context.Context, address string) (*domain.WalletSignals, error) {
	address, err := domain.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	signals, err := s.tier.GetOrCompute(ctx, address, func(ctx context.Context) (domain.WalletSignals, error) {
		return s.fetch(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return &signals, nil
}

// fetch runs the provider lookups concurrently. Every lookup degrades to nil on failure,
// so the only error is the caller's context ending, in which case nothing is cached.
func (s *service) fetch(ctx context.Context, address string) (domain.WalletSignals, error) {
	signals := domain.WalletSignals{Address: address}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	if s.providers.RPC != nil {
		g.Go(func() error {
			txCount, topAssets := s.fetchRPC(gctx, address)
			mu.Lock()
			signals.TxCount90d = txCount
			signals.TopAssets = topAssets
			mu.Unlock()
			return nil
		})
	}

	if s.providers.Alchemy != nil {
		g.Go(func() error {
			age := s.fetchWalletAge(gctx, address)
			mu.Lock()
			signals.WalletAgeDays = age
			mu.Unlock()
			return nil
		})
	}

	if s.providers.Moralis != nil {
		g.Go(func() error {
			chains := s.fetchActiveChains(gctx, address)
			mu.Lock()
			signals.ChainsActive = chains
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return signals, err
	}

	signals.FetchedAt = s.clock.Now()
	logger.DebugCtx(ctx, "Wallet signals fetched",
		zap.String("address", address),
		zap.Bool("has_wallet_age", signals.WalletAgeDays != nil),
		zap.Bool("has_tx_count", signals.TxCount90d != nil),
		zap.Bool("has_chains", signals.ChainsActive != nil),
	)
	return signals, nil
}

func (s *service) fetchRPC(ctx context.Context, address string) (*int, []string) {
	var txCount *int
	var topAssets []string

	count, err := call(ctx, s, ethereum.PROVIDER_NAME, func(ctx context.Context) (int, error) {
		if s.providers.Blocks == nil {
			return 0, domain.ErrProviderUnconfigured
		}
		fromBlock, err := s.providers.Blocks.EstimateBlockAt(ctx, s.clock.Now().Add(-domain.TX_COUNT_WINDOW))
		if err != nil {
			return 0, err
		}
		return s.providers.RPC.TxCountSince(ctx, address, fromBlock)
	})
	if err == nil {
		txCount = &count
	}

	balance, err := call(ctx, s, ethereum.PROVIDER_NAME, func(ctx context.Context) (*big.Int, error) {
		return s.providers.RPC.NativeBalance(ctx, address)
	})
	if err == nil && balance != nil {
		topAssets = []string{}
		if balance.Sign() > 0 {
			topAssets = append(topAssets, "ETH")
		}
	}

	return txCount, topAssets
}

func (s *service) fetchWalletAge(ctx context.Context, address string) *int {
	first, err := call(ctx, s, alchemy.PROVIDER_NAME, func(ctx context.Context) (*alchemy.Transfer, error) {
		return s.providers.Alchemy.FirstTransfer(ctx, address, nil)
	})
	if err != nil {
		return nil
	}

	days := 0
	if first != nil {
		days = max(int(s.clock.Now().Sub(first.Timestamp)/(24*time.Hour)), 0)
	}
	return &days
}

func (s *service) fetchActiveChains(ctx context.Context, address string) []domain.Chain {
	chains, err := call(ctx, s, moralis.PROVIDER_NAME, func(ctx context.Context) ([]domain.Chain, error) {
		return s.providers.Moralis.ActiveChains(ctx, address)
	})
	if err != nil {
		return nil
	}
	if chains == nil {
		chains = []domain.Chain{}
	}
	return chains
}

// call runs fn through the provider's circuit breaker with the per-call timeout
func call[T any](ctx context.Context, s *service, provider string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	startedAt := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	result, err := s.breakers[provider].Execute(func() (interface{}, error) {
		v, err := fn(callCtx)
		if err != nil && callCtx.Err() != nil && ctx.Err() == nil {
			err = errors.Join(domain.ErrProviderTransient, err)
		}
		return v, err
	})

	if errors.Is(err, domain.ErrProviderUnconfigured) {
		return zero, err
	}
	metrics.ObserveProviderCall(provider, startedAt, err)
	logger.ProviderCall(ctx, provider, startedAt, err)
	if err != nil {
		return zero, err
	}

	v, ok := result.(T)
	if !ok {
		return zero, nil
	}
	return v, nil
}
