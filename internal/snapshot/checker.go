package snapshot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/block"
	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/metrics"
	"github.com/feral-file/ff-opportunities/internal/providers/alchemy"
)

const dateLayout = "2006-01-02"

// Checker answers whether a wallet was active on a chain before a snapshot date
//
//go:generate mockgen -source=checker.go -destination=../mocks/snapshot.go -package=mocks -mock_names=Checker=MockSnapshotChecker
type Checker interface {
	// CheckSnapshot never reports a wallet inactive because of a missing or failing provider;
	// such results are "unknown" and marked degraded.
	CheckSnapshot(ctx context.Context, wallet string, snapshotDate time.Time, chain domain.Chain) (domain.HistoricalActivityResult, error)
}

// ChainProviders are the providers needed to check one chain
type ChainProviders struct {
	Blocks    block.BlockProvider
	Transfers alchemy.Client
}

// Tiers are the two snapshot cache tiers
type Tiers struct {
	// BlockHeights maps chain+date to a block height and never expires
	BlockHeights *cache.Tier[uint64]

	// Activity maps wallet+date+chain to a result, 7 days or 1 hour when degraded
	Activity *cache.Tier[domain.HistoricalActivityResult]
}

// NewTiers creates the snapshot cache tiers over the given backends
func NewTiers(heights cache.Backend[uint64], activity cache.Backend[domain.HistoricalActivityResult], clock adapter.Clock) Tiers {
	return Tiers{
		BlockHeights: cache.NewTier("block_height", heights, cache.FixedTTL[uint64](cache.Indefinite), clock),
		Activity:     cache.NewTier("snapshot", activity, ActivityTTL, clock),
	}
}

// ActivityTTL returns the validity of a historical activity result
func ActivityTTL(r domain.HistoricalActivityResult) time.Duration {
	if r.Degraded {
		return domain.SNAPSHOT_DEGRADED_TTL
	}
	return domain.SNAPSHOT_TTL
}

type checker struct {
	chains map[domain.Chain]ChainProviders
	tiers  Tiers
	clock  adapter.Clock
}

// NewChecker creates a snapshot checker for the configured chains
func NewChecker(chains map[domain.Chain]ChainProviders, tiers Tiers, clock adapter.Clock) Checker {
	return &checker{
		chains: chains,
		tiers:  tiers,
		clock:  clock,
	}
}

// CheckSnapshot resolves the snapshot date to a block height and looks for a transfer at or before it.
// The snapshot date is taken at UTC day granularity.
func (c *checker) CheckSnapshot(ctx context.Context, wallet string, snapshotDate time.Time, chain domain.Chain) (domain.HistoricalActivityResult, error) {
	wallet, err := domain.NormalizeAddress(wallet)
	if err != nil {
		return domain.HistoricalActivityResult{}, err
	}

	day := snapshotDate.UTC().Truncate(24 * time.Hour)
	key := fmt.Sprintf("%s:%s:%s", wallet, day.Format(dateLayout), chain)

	return c.tiers.Activity.GetOrCompute(ctx, key, func(ctx context.Context) (domain.HistoricalActivityResult, error) {
		result := c.check(ctx, wallet, day, chain)
		if err := ctx.Err(); err != nil {
			return result, err
		}
		return result, nil
	})
}

func (c *checker) check(ctx context.Context, wallet string, day time.Time, chain domain.Chain) domain.HistoricalActivityResult {
	result := domain.HistoricalActivityResult{
		WalletAddress: wallet,
		SnapshotDate:  day,
		Chain:         chain,
		WasActive:     domain.ActivityUnknown,
		Degraded:      true,
	}

	providers, ok := c.chains[chain]
	if !ok || providers.Blocks == nil || providers.Transfers == nil {
		logger.DebugCtx(ctx, "No snapshot providers for chain", zap.String("chain", string(chain)))
		return result
	}

	height, provisional, err := c.blockHeight(ctx, providers.Blocks, day, chain)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to resolve snapshot block height",
			zap.String("chain", string(chain)),
			zap.Time("snapshot_date", day),
			zap.Error(err),
		)
		return result
	}

	startedAt := time.Now()
	first, err := providers.Transfers.FirstTransfer(ctx, wallet, &height)
	metrics.ObserveProviderCall(alchemy.PROVIDER_NAME, startedAt, err)
	logger.ProviderCall(ctx, alchemy.PROVIDER_NAME, startedAt, err, zap.String("chain", string(chain)), zap.Uint64("to_block", height))
	if err != nil {
		return result
	}

	if first == nil {
		result.WasActive = domain.ActivityInactive
	} else {
		ts := first.Timestamp
		result.WasActive = domain.ActivityActive
		result.FirstTxDate = &ts
	}
	// activity up to a future date can still change
	result.Degraded = provisional
	return result
}

// blockHeight returns the height at the start of day. Days still in the future resolve
// to the chain head and are reported provisional instead of being cached.
func (c *checker) blockHeight(ctx context.Context, blocks block.BlockProvider, day time.Time, chain domain.Chain) (uint64, bool, error) {
	if day.After(c.clock.Now()) {
		head, err := blocks.GetLatestBlock(ctx)
		if err != nil {
			return 0, true, err
		}
		return head.Number, true, nil
	}

	key := fmt.Sprintf("%s:%s", chain, day.Format(dateLayout))
	height, err := c.tiers.BlockHeights.GetOrCompute(ctx, key, func(ctx context.Context) (uint64, error) {
		return blocks.EstimateBlockAt(ctx, day)
	})
	return height, false, err
}
