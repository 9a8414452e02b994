package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/store/schema"
)

// UpsertResult counts the effect of an opportunity upsert
type UpsertResult struct {
	New       int
	Updated   int
	Unchanged int
	// DedupeKeys holds every dedupe key touched, old and new, sorted
	DedupeKeys []string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// UpsertOpportunities inserts or updates opportunities on (source, source_ref).
	// Rows whose content is unchanged only refresh last_seen_at.
	UpsertOpportunities(ctx context.Context, opportunities []domain.Opportunity, seenAt time.Time) (*UpsertResult, error)
	// ResolveCanonical recomputes the canonical row of each dedupe key under row locks
	ResolveCanonical(ctx context.Context, dedupeKeys []string, now time.Time) error
	// ListCandidates returns canonical, active, not yet ended opportunities by created_at desc.
	// A non-positive limit returns every candidate.
	ListCandidates(ctx context.Context, now time.Time, limit int) ([]domain.Opportunity, error)

	// RecordWalletAction stores an action a wallet took on an opportunity
	RecordWalletAction(ctx context.Context, wallet string, opportunityID string, action schema.WalletAction) error
	// GetWalletHistory derives saved tags and the most completed type of a wallet
	GetWalletHistory(ctx context.Context, wallet string) (domain.WalletHistory, error)

	// SaveSyncRun stores the result of a sync run
	SaveSyncRun(ctx context.Context, result domain.SyncResult, startedAt time.Time) error
	// GetLatestSyncRuns returns the most recent run of every source
	GetLatestSyncRuns(ctx context.Context) ([]*schema.SyncRun, error)

	// GetEligibilityResult returns the stored result, or nil when none exists
	GetEligibilityResult(ctx context.Context, wallet string, opportunityID string) (*domain.EligibilityResult, error)
	// SaveEligibilityResult overwrites the stored result of (wallet, opportunity)
	SaveEligibilityResult(ctx context.Context, result domain.EligibilityResult, computedAt time.Time) error

	// GetHistoricalActivity returns the stored activity and when it was computed, or nil when none exists
	GetHistoricalActivity(ctx context.Context, wallet string, snapshotDay time.Time, chain domain.Chain) (*domain.HistoricalActivityResult, time.Time, error)
	// SaveHistoricalActivity overwrites the stored activity of (wallet, snapshot day, chain)
	SaveHistoricalActivity(ctx context.Context, result domain.HistoricalActivityResult, computedAt time.Time) error

	// GetBlockHeight returns the stored block height of a chain at the start of day
	GetBlockHeight(ctx context.Context, chain domain.Chain, day time.Time) (uint64, time.Time, bool, error)
	// SaveBlockHeight stores the block height of a chain at the start of day
	SaveBlockHeight(ctx context.Context, chain domain.Chain, day time.Time, height uint64, computedAt time.Time) error
}
