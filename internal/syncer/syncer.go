package syncer

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/messaging"
	"github.com/feral-file/ff-opportunities/internal/metrics"
	"github.com/feral-file/ff-opportunities/internal/sources"
	"github.com/feral-file/ff-opportunities/internal/store"
)

// Service syncs opportunity sources into the store
//
//go:generate mockgen -source=syncer.go -destination=../mocks/syncer.go -package=mocks -mock_names=Service=MockSyncerService
type Service interface {
	// SyncSource fetches one source, upserts its records and recomputes the dedup winners.
	// Fetch and validation failures are reported in the result; the error is reserved
	// for unknown sources and store failures.
	SyncSource(ctx context.Context, sourceID domain.SourceID) (*domain.SyncResult, error)

	// SyncAll syncs every configured source concurrently. A failing source never blocks the others.
	SyncAll(ctx context.Context) []domain.SyncResult

	// Sources returns the definitions of the configured sources in priority order
	Sources() []sources.Definition
}

type service struct {
	adapters  map[domain.SourceID]sources.Adapter
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	maxPages  int
	inflight  singleflight.Group
}

// NewService creates a new syncer service. A nil publisher disables sync events.
func NewService(adapters []sources.Adapter, st store.Store, publisher messaging.Publisher, clock adapter.Clock, maxPages int) Service {
	byID := make(map[domain.SourceID]sources.Adapter, len(adapters))
	for _, a := range adapters {
		byID[a.Definition().ID] = a
	}
	if publisher == nil {
		publisher = messaging.NewNopPublisher()
	}
	return &service{
		adapters:  byID,
		store:     st,
		publisher: publisher,
		clock:     clock,
		maxPages:  maxPages,
	}
}

func (s *service) Sources() []sources.Definition {
	defs := make([]sources.Definition, 0, len(s.adapters))
	for _, a := range s.adapters {
		defs = append(defs, a.Definition())
	}
	slices.SortFunc(defs, func(a, b sources.Definition) int { return cmp.Compare(a.Priority, b.Priority) })
	return defs
}

// SyncSource joins a run already in flight for the same source instead of starting another
func (s *service) SyncSource(ctx context.Context, sourceID domain.SourceID) (*domain.SyncResult, error) {
	a, ok := s.adapters[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}

	v, err, shared := s.inflight.Do(string(sourceID), func() (interface{}, error) {
		return s.sync(ctx, a)
	})
	if shared {
		logger.InfoCtx(ctx, "Joined in-flight sync", zap.String("source", string(sourceID)))
	}
	result, _ := v.(*domain.SyncResult)
	return result, err
}

func (s *service) sync(ctx context.Context, a sources.Adapter) (*domain.SyncResult, error) {
	def := a.Definition()
	source := string(def.ID)
	startedAt := s.clock.Now()

	result := &domain.SyncResult{
		RunID:  ulid.MustNewDefault(startedAt).String(),
		Source: def.ID,
		Errors: []string{},
	}
	ctx = logger.WithFields(ctx, zap.String("source", source), zap.String("run_id", result.RunID))
	logger.InfoCtx(ctx, "Starting source sync")

	metrics.SyncRunsTotal.WithLabelValues(source).Inc()
	defer func() {
		metrics.SyncLatency.WithLabelValues(source).Observe(s.clock.Since(startedAt).Seconds())
	}()

	// a failed fetch still carries the pages fetched before the failure
	batch, fetchErr := a.Fetch(ctx, s.maxPages)
	result.Errors = append(result.Errors, batch.Rejected...)
	if fetchErr != nil {
		logger.WarnCtx(ctx, "Source fetch failed, syncing partial results",
			zap.Int("partial", len(batch.Opportunities)), zap.Error(fetchErr))
		result.Errors = append(result.Errors, fetchErr.Error())
	}
	result.Count = len(batch.Opportunities)
	metrics.SyncRecordsTotal.WithLabelValues(source, "invalid").Add(float64(len(batch.Rejected)))

	var dedupeKeys []string
	if len(batch.Opportunities) > 0 {
		upserted, err := s.store.UpsertOpportunities(ctx, batch.Opportunities, startedAt)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			result.DurationMs = s.clock.Since(startedAt).Milliseconds()
			return result, fmt.Errorf("failed to upsert %s opportunities: %w", source, err)
		}
		result.New = upserted.New
		result.Updated = upserted.Updated
		dedupeKeys = upserted.DedupeKeys

		metrics.SyncRecordsTotal.WithLabelValues(source, "new").Add(float64(upserted.New))
		metrics.SyncRecordsTotal.WithLabelValues(source, "updated").Add(float64(upserted.Updated))
		metrics.SyncRecordsTotal.WithLabelValues(source, "unchanged").Add(float64(upserted.Unchanged))

		if err := s.store.ResolveCanonical(ctx, dedupeKeys, startedAt); err != nil {
			result.Errors = append(result.Errors, err.Error())
			result.DurationMs = s.clock.Since(startedAt).Milliseconds()
			return result, fmt.Errorf("failed to resolve canonical %s opportunities: %w", source, err)
		}
	}

	result.DurationMs = s.clock.Since(startedAt).Milliseconds()

	if err := s.store.SaveSyncRun(ctx, *result, startedAt); err != nil {
		logger.WarnCtx(ctx, "Failed to save sync run", zap.Error(err))
	}

	if err := s.publisher.PublishSynced(ctx, &messaging.SyncedEvent{
		RunID:      result.RunID,
		Source:     def.ID,
		Count:      result.Count,
		New:        result.New,
		Updated:    result.Updated,
		Errors:     len(result.Errors),
		DedupeKeys: dedupeKeys,
		OccurredAt: s.clock.Now(),
	}); err != nil {
		logger.WarnCtx(ctx, "Failed to publish sync event", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Source sync completed",
		zap.Int("count", result.Count),
		zap.Int("new", result.New),
		zap.Int("updated", result.Updated),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("duration", time.Duration(result.DurationMs)*time.Millisecond),
	)
	return result, nil
}

func (s *service) SyncAll(ctx context.Context) []domain.SyncResult {
	defs := s.Sources()

	var mu sync.Mutex
	results := make([]domain.SyncResult, 0, len(defs))

	var g errgroup.Group
	for _, def := range defs {
		g.Go(func() error {
			result, err := s.SyncSource(ctx, def.ID)
			if err != nil {
				logger.ErrorCtx(ctx, err, zap.String("source", string(def.ID)))
			}
			if result == nil {
				return nil
			}
			mu.Lock()
			results = append(results, *result)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(results, func(a, b domain.SyncResult) int {
		return cmp.Compare(sources.Priority(a.Source), sources.Priority(b.Source))
	})
	return results
}
