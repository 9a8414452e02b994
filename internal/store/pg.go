package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/merge"
	"github.com/feral-file/ff-opportunities/internal/store/schema"
)

// opportunityUpdateColumns are overwritten when a synced record already exists.
// id, created_at and is_canonical are never touched by an upsert.
var opportunityUpdateColumns = []string{
	"type", "title", "description", "url", "protocol", "chains", "tags",
	"trust_score", "weight", "active", "ends_at", "snapshot_date", "requirements",
	"dedupe_key", "content_hash", "updated_at", "last_seen_at",
}

// opportunityFields is the number of bound parameters per opportunity row
const opportunityFields = 22

type pgStore struct {
	db            *gorm.DB
	canonicalizer adapter.Canonicalizer
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB, canonicalizer adapter.Canonicalizer) Store {
	return &pgStore{db: db, canonicalizer: canonicalizer}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// idle connections can't exceed open connections
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize keeps a batch insert under PostgreSQL's 65535 bound parameter limit
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000 // ON CONFLICT and batch overhead

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// UpsertOpportunities inserts new rows and updates changed ones in a single transaction.
// Changes are detected by the content hash, so re-syncing identical records reports no updates.
func (s *pgStore) UpsertOpportunities(ctx context.Context, opportunities []domain.Opportunity, seenAt time.Time) (*UpsertResult, error) {
	result := &UpsertResult{}
	if len(opportunities) == 0 {
		return result, nil
	}

	// a batch may repeat a record; the last one wins
	byID := make(map[string]int, len(opportunities))
	unique := make([]domain.Opportunity, 0, len(opportunities))
	for _, o := range opportunities {
		if i, ok := byID[o.ID]; ok {
			unique[i] = o
			continue
		}
		byID[o.ID] = len(unique)
		unique = append(unique, o)
	}

	rows := make([]schema.Opportunity, 0, len(unique))
	ids := make([]string, 0, len(unique))
	for _, o := range unique {
		hash, err := s.canonicalizer.ContentHash(hashable(o))
		if err != nil {
			return nil, fmt.Errorf("failed to hash opportunity %s: %w", o.ID, err)
		}
		row, err := toOpportunityRow(o, hash, seenAt)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		ids = append(ids, o.ID)
	}
	// concurrent syncs take row locks in id order
	slices.SortFunc(rows, func(a, b schema.Opportunity) int { return cmp.Compare(a.ID, b.ID) })

	keys := make(map[string]struct{})
	sourceKeys := make([]string, 0, len(rows))
	for _, row := range rows {
		sourceKeys = append(sourceKeys, "source:"+row.Source)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// concurrent syncs of the same source serialize here, before any row is inserted
		if err := advisoryLock(tx, sourceKeys); err != nil {
			return err
		}

		var existing []schema.Opportunity
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "content_hash", "dedupe_key").
			Where("id IN ?", ids).
			Order("id").
			Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to lock existing opportunities: %w", err)
		}

		previous := make(map[string]schema.Opportunity, len(existing))
		for _, e := range existing {
			previous[e.ID] = e
		}

		var changed []schema.Opportunity
		var unchanged []string
		for _, row := range rows {
			keys[row.DedupeKey] = struct{}{}
			old, found := previous[row.ID]
			switch {
			case !found:
				result.New++
				changed = append(changed, row)
			case old.ContentHash != row.ContentHash:
				result.Updated++
				keys[old.DedupeKey] = struct{}{}
				changed = append(changed, row)
			default:
				result.Unchanged++
				unchanged = append(unchanged, row.ID)
			}
		}

		if len(changed) > 0 {
			batchSize := calculateSafeBatchSize(len(changed), opportunityFields)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "source"}, {Name: "source_ref"}},
				DoUpdates: clause.AssignmentColumns(opportunityUpdateColumns),
			}).CreateInBatches(&changed, batchSize).Error; err != nil {
				return fmt.Errorf("failed to upsert opportunities: %w", err)
			}
		}

		if len(unchanged) > 0 {
			if err := tx.Model(&schema.Opportunity{}).
				Where("id IN ?", unchanged).
				Update("last_seen_at", seenAt).Error; err != nil {
				return fmt.Errorf("failed to touch unchanged opportunities: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for k := range keys {
		result.DedupeKeys = append(result.DedupeKeys, k)
	}
	slices.Sort(result.DedupeKeys)
	return result, nil
}

// ResolveCanonical marks exactly one row per dedupe key as canonical.
// Live rows (active and not ended at now) are preferred; among them the merge winner takes the key.
func (s *pgStore) ResolveCanonical(ctx context.Context, dedupeKeys []string, now time.Time) error {
	if len(dedupeKeys) == 0 {
		return nil
	}
	keys := slices.Compact(slices.Sorted(slices.Values(dedupeKeys)))

	lockKeys := make([]string, len(keys))
	for i, k := range keys {
		lockKeys[i] = "dedupe:" + k
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the group is read after the lock so rows committed by an earlier sync are seen
		if err := advisoryLock(tx, lockKeys); err != nil {
			return err
		}

		var rows []schema.Opportunity
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "source", "source_ref", "weight", "active", "ends_at", "dedupe_key", "is_canonical").
			Where("dedupe_key IN ?", keys).
			Order("id").
			Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to lock dedupe groups: %w", err)
		}

		type contender struct {
			opp  domain.Opportunity
			live bool
		}
		best := make(map[string]contender, len(keys))
		for _, row := range rows {
			c := contender{
				opp: domain.Opportunity{
					ID:        row.ID,
					Source:    domain.SourceID(row.Source),
					SourceRef: row.SourceRef,
					Weight:    row.Weight,
				},
				live: row.Active && (row.EndsAt == nil || row.EndsAt.After(now)),
			}
			current, ok := best[row.DedupeKey]
			switch {
			case !ok, c.live && !current.live:
				best[row.DedupeKey] = c
			case c.live == current.live:
				if merge.Winner(current.opp, c.opp).ID == c.opp.ID {
					best[row.DedupeKey] = c
				}
			}
		}

		if len(best) == 0 {
			return nil
		}

		winners := make([]string, 0, len(best))
		for _, c := range best {
			winners = append(winners, c.opp.ID)
		}
		slices.Sort(winners)

		if err := tx.Model(&schema.Opportunity{}).
			Where("dedupe_key IN ? AND id NOT IN ? AND is_canonical", keys, winners).
			Update("is_canonical", false).Error; err != nil {
			return fmt.Errorf("failed to clear canonical flags: %w", err)
		}
		if err := tx.Model(&schema.Opportunity{}).
			Where("id IN ? AND NOT is_canonical", winners).
			Update("is_canonical", true).Error; err != nil {
			return fmt.Errorf("failed to set canonical flags: %w", err)
		}

		logger.DebugCtx(ctx, "Resolved canonical opportunities", zap.Int("keys", len(keys)), zap.Int("rows", len(rows)))
		return nil
	})
}

// advisoryLock takes transaction-scoped advisory locks on keys in sorted order
func advisoryLock(tx *gorm.DB, keys []string) error {
	for _, k := range slices.Compact(slices.Sorted(slices.Values(keys))) {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", k).Error; err != nil {
			return fmt.Errorf("failed to lock %s: %w", k, err)
		}
	}
	return nil
}

// ListCandidates returns the canonical opportunities still open at now
func (s *pgStore) ListCandidates(ctx context.Context, now time.Time, limit int) ([]domain.Opportunity, error) {
	q := s.db.WithContext(ctx).
		Where("is_canonical AND active AND (ends_at IS NULL OR ends_at > ?)", now).
		Order("created_at DESC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []schema.Opportunity
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	candidates := make([]domain.Opportunity, 0, len(rows))
	for _, row := range rows {
		opp, err := toOpportunity(row)
		if err != nil {
			// one corrupt row must not hide the others
			logger.WarnCtx(ctx, "Skipping unreadable opportunity", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		candidates = append(candidates, opp)
	}
	return candidates, nil
}

// RecordWalletAction stores an action a wallet took on an opportunity
func (s *pgStore) RecordWalletAction(ctx context.Context, wallet string, opportunityID string, action schema.WalletAction) error {
	switch action {
	case schema.WalletActionSaved, schema.WalletActionCompleted, schema.WalletActionDismissed:
	default:
		return fmt.Errorf("%w: unknown wallet action %q", domain.ErrInvalidInput, action)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.Opportunity{}).Where("id = ?", opportunityID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check opportunity: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("opportunity %s: %w", opportunityID, domain.ErrNotFound)
	}

	record := schema.WalletActionRecord{
		WalletAddress: wallet,
		OpportunityID: opportunityID,
		Action:        action,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record wallet action: %w", err)
	}
	return nil
}

// GetWalletHistory derives the wallet history from its recorded actions
func (s *pgStore) GetWalletHistory(ctx context.Context, wallet string) (domain.WalletHistory, error) {
	var history domain.WalletHistory

	var tagSets []datatypes.JSON
	if err := s.db.WithContext(ctx).
		Model(&schema.Opportunity{}).
		Joins("JOIN wallet_actions ON wallet_actions.opportunity_id = opportunities.id").
		Where("wallet_actions.wallet_address = ? AND wallet_actions.action = ?", wallet, schema.WalletActionSaved).
		Pluck("opportunities.tags", &tagSets).Error; err != nil {
		return history, fmt.Errorf("failed to get saved tags: %w", err)
	}

	seen := make(map[string]struct{})
	for _, raw := range tagSets {
		tags, err := unmarshalList[string](raw)
		if err != nil {
			return history, fmt.Errorf("failed to unmarshal saved tags: %w", err)
		}
		for _, tag := range tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			history.SavedTags = append(history.SavedTags, tag)
		}
	}
	slices.Sort(history.SavedTags)

	var top struct {
		Type  string
		Total int64
	}
	if err := s.db.WithContext(ctx).
		Table("wallet_actions").
		Select("opportunities.type AS type, COUNT(*) AS total").
		Joins("JOIN opportunities ON opportunities.id = wallet_actions.opportunity_id").
		Where("wallet_actions.wallet_address = ? AND wallet_actions.action = ?", wallet, schema.WalletActionCompleted).
		Group("opportunities.type").
		Order("total DESC, opportunities.type ASC").
		Limit(1).
		Scan(&top).Error; err != nil {
		return history, fmt.Errorf("failed to get completed types: %w", err)
	}
	history.MostCompletedType = domain.OpportunityType(top.Type)

	return history, nil
}

// SaveSyncRun stores the result of a sync run
func (s *pgStore) SaveSyncRun(ctx context.Context, result domain.SyncResult, startedAt time.Time) error {
	errs, err := marshalList(result.Errors)
	if err != nil {
		return fmt.Errorf("failed to marshal sync errors: %w", err)
	}

	run := schema.SyncRun{
		RunID:      result.RunID,
		Source:     string(result.Source),
		Count:      result.Count,
		New:        result.New,
		Updated:    result.Updated,
		DurationMs: result.DurationMs,
		Errors:     errs,
		StartedAt:  startedAt,
	}
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to save sync run: %w", err)
	}
	return nil
}

// GetLatestSyncRuns returns the most recent run of every source, ordered by source
func (s *pgStore) GetLatestSyncRuns(ctx context.Context) ([]*schema.SyncRun, error) {
	var runs []*schema.SyncRun
	if err := s.db.WithContext(ctx).
		Raw("SELECT DISTINCT ON (source) * FROM sync_runs ORDER BY source, started_at DESC").
		Scan(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to get latest sync runs: %w", err)
	}
	return runs, nil
}

// GetEligibilityResult returns the stored result of (wallet, opportunity)
func (s *pgStore) GetEligibilityResult(ctx context.Context, wallet string, opportunityID string) (*domain.EligibilityResult, error) {
	var row schema.EligibilityResult
	err := s.db.WithContext(ctx).
		Where("wallet_address = ? AND opportunity_id = ?", wallet, opportunityID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get eligibility result: %w", err)
	}

	reasons, err := unmarshalList[string](row.Reasons)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal reasons: %w", err)
	}

	return &domain.EligibilityResult{
		WalletAddress: row.WalletAddress,
		OpportunityID: row.OpportunityID,
		Status:        domain.EligibilityStatus(row.Status),
		Score:         row.Score,
		Reasons:       reasons,
		Degraded:      row.Degraded,
		ComputedAt:    row.ComputedAt.UTC(),
	}, nil
}

// SaveEligibilityResult overwrites the stored result of (wallet, opportunity)
func (s *pgStore) SaveEligibilityResult(ctx context.Context, result domain.EligibilityResult, computedAt time.Time) error {
	reasons, err := json.Marshal(result.Reasons)
	if err != nil {
		return fmt.Errorf("failed to marshal reasons: %w", err)
	}

	row := schema.EligibilityResult{
		WalletAddress: result.WalletAddress,
		OpportunityID: result.OpportunityID,
		Status:        string(result.Status),
		Score:         domain.Clamp01(result.Score),
		Reasons:       reasons,
		Degraded:      result.Degraded,
		ComputedAt:    computedAt,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}, {Name: "opportunity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "score", "reasons", "degraded", "computed_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save eligibility result: %w", err)
	}
	return nil
}

// GetHistoricalActivity returns the stored activity of (wallet, snapshot day, chain)
func (s *pgStore) GetHistoricalActivity(ctx context.Context, wallet string, snapshotDay time.Time, chain domain.Chain) (*domain.HistoricalActivityResult, time.Time, error) {
	var row schema.HistoricalActivity
	err := s.db.WithContext(ctx).
		Where("wallet_address = ? AND snapshot_date = ? AND chain = ?", wallet, startOfDay(snapshotDay), string(chain)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("failed to get historical activity: %w", err)
	}

	return &domain.HistoricalActivityResult{
		WalletAddress: row.WalletAddress,
		SnapshotDate:  startOfDay(row.SnapshotDate),
		Chain:         domain.Chain(row.Chain),
		WasActive:     domain.ActivityState(row.WasActive),
		FirstTxDate:   utcPtr(row.FirstTxDate),
		Degraded:      row.Degraded,
	}, row.ComputedAt.UTC(), nil
}

// SaveHistoricalActivity overwrites the stored activity of (wallet, snapshot day, chain)
func (s *pgStore) SaveHistoricalActivity(ctx context.Context, result domain.HistoricalActivityResult, computedAt time.Time) error {
	row := schema.HistoricalActivity{
		WalletAddress: result.WalletAddress,
		SnapshotDate:  startOfDay(result.SnapshotDate),
		Chain:         string(result.Chain),
		WasActive:     string(result.WasActive),
		FirstTxDate:   result.FirstTxDate,
		Degraded:      result.Degraded,
		ComputedAt:    computedAt,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}, {Name: "snapshot_date"}, {Name: "chain"}},
		DoUpdates: clause.AssignmentColumns([]string{"was_active", "first_tx_date", "degraded", "computed_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save historical activity: %w", err)
	}
	return nil
}

// GetBlockHeight returns the stored block height of chain at the start of day
func (s *pgStore) GetBlockHeight(ctx context.Context, chain domain.Chain, day time.Time) (uint64, time.Time, bool, error) {
	var row schema.BlockHeight
	err := s.db.WithContext(ctx).
		Where("chain = ? AND day = ?", string(chain), startOfDay(day)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, time.Time{}, false, nil
		}
		return 0, time.Time{}, false, fmt.Errorf("failed to get block height: %w", err)
	}
	return uint64(row.Height), row.ComputedAt.UTC(), true, nil //nolint:gosec,G115
}

// SaveBlockHeight stores the block height of chain at the start of day.
// Heights of past days never change, so an existing row is kept.
func (s *pgStore) SaveBlockHeight(ctx context.Context, chain domain.Chain, day time.Time, height uint64, computedAt time.Time) error {
	row := schema.BlockHeight{
		Chain:      string(chain),
		Day:        startOfDay(day),
		Height:     int64(height), //nolint:gosec,G115
		ComputedAt: computedAt,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain"}, {Name: "day"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save block height: %w", err)
	}
	return nil
}
