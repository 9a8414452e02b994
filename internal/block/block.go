package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/logger"
)

// BlockInfo is a block number with its chain timestamp
type BlockInfo struct {
	Number    uint64
	Timestamp time.Time
}

// BlockProvider gives cached access to the chain head and turns wall-clock
// times into approximate block heights
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider
type BlockProvider interface {
	// GetLatestBlock returns the latest block, potentially from cache
	GetLatestBlock(ctx context.Context) (BlockInfo, error)

	// EstimateBlockAt returns the approximate block height at the given time.
	// Times at or after the chain head resolve to the head.
	EstimateBlockAt(ctx context.Context, at time.Time) (uint64, error)
}

// BlockFetcher fetches the chain head from the blockchain
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockFetcher=MockBlockFetcher
type BlockFetcher interface {
	FetchLatestBlock(ctx context.Context) (BlockInfo, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long to cache the chain head
	TTL time.Duration

	// StaleWindow is how long a cached head may be served when fetching fails
	StaleWindow time.Duration

	// AverageBlockTime is the mean block interval used for estimation
	AverageBlockTime time.Duration
}

// averageBlockTimes are mean block intervals per chain
var averageBlockTimes = map[domain.Chain]time.Duration{
	domain.ChainEthereum: 12 * time.Second,
	domain.ChainBase:     2 * time.Second,
	domain.ChainOptimism: 2 * time.Second,
	domain.ChainPolygon:  2 * time.Second,
	domain.ChainArbitrum: 250 * time.Millisecond,
	domain.ChainBSC:      3 * time.Second,
}

// AverageBlockTime returns the mean block interval of chain, defaulting to Ethereum's
func AverageBlockTime(chain domain.Chain) time.Duration {
	if d, ok := averageBlockTimes[chain]; ok {
		return d
	}
	return averageBlockTimes[domain.ChainEthereum]
}

type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu       sync.RWMutex
	head     *BlockInfo
	cachedAt time.Time
}

// NewBlockProvider creates a new BlockProvider with head caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	if config.AverageBlockTime <= 0 {
		config.AverageBlockTime = averageBlockTimes[domain.ChainEthereum]
	}
	return &blockProvider{
		fetcher: fetcher,
		config:  config,
		clock:   clock,
	}
}

// GetLatestBlock returns the latest block, using cache if valid
func (p *blockProvider) GetLatestBlock(ctx context.Context) (BlockInfo, error) {
	p.mu.RLock()
	cached, cachedAt := p.head, p.cachedAt
	p.mu.RUnlock()

	now := p.clock.Now()
	if cached != nil && now.Sub(cachedAt) < p.config.TTL {
		return *cached, nil
	}

	head, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cachedAt) < p.config.StaleWindow {
			logger.DebugCtx(ctx, "Using stale block head", zap.Uint64("block_number", cached.Number))
			return *cached, nil
		}
		return BlockInfo{}, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.head = &head
	p.cachedAt = now
	p.mu.Unlock()

	return head, nil
}

// EstimateBlockAt walks back from the chain head by the average block time
func (p *blockProvider) EstimateBlockAt(ctx context.Context, at time.Time) (uint64, error) {
	head, err := p.GetLatestBlock(ctx)
	if err != nil {
		return 0, err
	}

	if !at.Before(head.Timestamp) {
		return head.Number, nil
	}

	back := uint64(head.Timestamp.Sub(at) / p.config.AverageBlockTime) //nolint:gosec,G115
	if back >= head.Number {
		return 0, nil
	}
	return head.Number - back, nil
}
