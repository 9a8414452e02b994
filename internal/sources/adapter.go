package sources

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/metrics"
)

// DefaultMaxPages is the page cap used when a caller passes no cap
const DefaultMaxPages = 5

// Page is one page of feed records. An empty Next means there are no more pages.
type Page struct {
	Records []RawRecord
	Next    string
}

// Feed fetches and maps one page of a source's records
type Feed interface {
	FetchPage(ctx context.Context, cursor string) (Page, error)
}

// Batch is the normalized outcome of one source fetch
type Batch struct {
	Source        domain.SourceID      `json:"source"`
	Opportunities []domain.Opportunity `json:"opportunities"`
	// Rejected describes records skipped for failing validation
	Rejected  []string  `json:"rejected,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Adapter fetches a source's opportunities behind its response cache
//
//go:generate mockgen -source=adapter.go -destination=../mocks/source_adapter.go -package=mocks -mock_names=Adapter=MockSourceAdapter,Feed=MockSourceFeed
type Adapter interface {
	// Definition returns the source definition
	Definition() Definition

	// Fetch returns the cached batch or fetches up to maxPages pages.
	// On failure it returns the records fetched before the error alongside it.
	Fetch(ctx context.Context, maxPages int) (Batch, error)
}

// NewTier creates the response cache tier of a source
func NewTier(def Definition, backend cache.Backend[Batch], clock adapter.Clock) *cache.Tier[Batch] {
	return cache.NewTier("source", backend, cache.FixedTTL[Batch](def.TTL), clock)
}

type feedAdapter struct {
	def       Definition
	feed      Feed
	tier      *cache.Tier[Batch]
	clock     adapter.Clock
	pageDelay time.Duration
}

// NewAdapter creates an adapter over feed
func NewAdapter(def Definition, feed Feed, tier *cache.Tier[Batch], clock adapter.Clock, pageDelay time.Duration) Adapter {
	return &feedAdapter{
		def:       def,
		feed:      feed,
		tier:      tier,
		clock:     clock,
		pageDelay: pageDelay,
	}
}

func (a *feedAdapter) Definition() Definition {
	return a.def
}

// Fetch serves the whole source from one cache key regardless of maxPages
func (a *feedAdapter) Fetch(ctx context.Context, maxPages int) (Batch, error) {
	return a.tier.GetOrCompute(ctx, string(a.def.ID), func(ctx context.Context) (Batch, error) {
		return a.fetchPages(ctx, maxPages)
	})
}

func (a *feedAdapter) fetchPages(ctx context.Context, maxPages int) (Batch, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	now := a.clock.Now()
	batch := Batch{Source: a.def.ID, FetchedAt: now}
	index := make(map[string]int)

	cursor := ""
	for page := 0; page < maxPages; page++ {
		if page > 0 && a.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return batch, ctx.Err()
			case <-a.clock.After(a.pageDelay):
			}
		}

		startedAt := time.Now()
		p, err := a.feed.FetchPage(ctx, cursor)
		metrics.ObserveProviderCall(string(a.def.ID), startedAt, err)
		logger.ProviderCall(ctx, string(a.def.ID), startedAt, err, zap.Int("page", page))
		if err != nil {
			return batch, fmt.Errorf("failed to fetch %s page %d: %w", a.def.ID, page+1, err)
		}

		for _, raw := range p.Records {
			opp, err := Build(a.def, raw, now)
			if err != nil {
				logger.WarnCtx(ctx, "Skipping invalid record", zap.String("source", string(a.def.ID)), zap.Error(err))
				batch.Rejected = append(batch.Rejected, err.Error())
				continue
			}
			// a record repeated across pages keeps its latest version
			if i, ok := index[opp.SourceRef]; ok {
				batch.Opportunities[i] = opp
				continue
			}
			index[opp.SourceRef] = len(batch.Opportunities)
			batch.Opportunities = append(batch.Opportunities, opp)
		}

		if p.Next == "" {
			break
		}
		cursor = p.Next
	}

	logger.InfoCtx(ctx, "Fetched source",
		zap.String("source", string(a.def.ID)),
		zap.Int("count", len(batch.Opportunities)),
		zap.Int("rejected", len(batch.Rejected)),
	)
	return batch, nil
}
