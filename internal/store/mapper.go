package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/store/schema"
)

func marshalList[T any](items []T) (datatypes.JSON, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func unmarshalList[T any](raw datatypes.JSON) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// hashable is the part of an opportunity that counts as content.
// CreatedAt is dropped because feeds without a creation time default it to the fetch time.
func hashable(o domain.Opportunity) domain.Opportunity {
	o.CreatedAt = time.Time{}
	return o
}

func toOpportunityRow(o domain.Opportunity, contentHash string, seenAt time.Time) (schema.Opportunity, error) {
	chains, err := marshalList(o.Chains)
	if err != nil {
		return schema.Opportunity{}, fmt.Errorf("failed to marshal chains: %w", err)
	}
	tags, err := marshalList(o.Tags)
	if err != nil {
		return schema.Opportunity{}, fmt.Errorf("failed to marshal tags: %w", err)
	}

	var requirements datatypes.JSON
	if !o.Requirements.IsEmpty() {
		raw, err := json.Marshal(o.Requirements)
		if err != nil {
			return schema.Opportunity{}, fmt.Errorf("failed to marshal requirements: %w", err)
		}
		requirements = raw
	}

	return schema.Opportunity{
		ID:           o.ID,
		Source:       string(o.Source),
		SourceRef:    o.SourceRef,
		Type:         string(o.Type),
		Title:        o.Title,
		Description:  o.Description,
		URL:          o.URL,
		Protocol:     o.Protocol,
		Chains:       chains,
		Tags:         tags,
		TrustScore:   o.TrustScore,
		Weight:       o.Weight,
		Active:       o.Active,
		EndsAt:       o.EndsAt,
		SnapshotDate: o.SnapshotDate,
		Requirements: requirements,
		DedupeKey:    o.DedupeKey,
		ContentHash:  contentHash,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    seenAt,
		LastSeenAt:   seenAt,
	}, nil
}

func toOpportunity(row schema.Opportunity) (domain.Opportunity, error) {
	chains, err := unmarshalList[domain.Chain](row.Chains)
	if err != nil {
		return domain.Opportunity{}, fmt.Errorf("failed to unmarshal chains of %s: %w", row.ID, err)
	}
	tags, err := unmarshalList[string](row.Tags)
	if err != nil {
		return domain.Opportunity{}, fmt.Errorf("failed to unmarshal tags of %s: %w", row.ID, err)
	}

	var requirements *domain.Requirements
	if len(row.Requirements) > 0 && string(row.Requirements) != "null" {
		requirements = &domain.Requirements{}
		if err := json.Unmarshal(row.Requirements, requirements); err != nil {
			return domain.Opportunity{}, fmt.Errorf("failed to unmarshal requirements of %s: %w", row.ID, err)
		}
	}

	return domain.Opportunity{
		ID:           row.ID,
		Source:       domain.SourceID(row.Source),
		SourceRef:    row.SourceRef,
		Type:         domain.OpportunityType(row.Type),
		Title:        row.Title,
		Description:  row.Description,
		URL:          row.URL,
		Protocol:     row.Protocol,
		Chains:       chains,
		Tags:         tags,
		TrustScore:   row.TrustScore,
		Weight:       row.Weight,
		Active:       row.Active,
		CreatedAt:    row.CreatedAt.UTC(),
		EndsAt:       utcPtr(row.EndsAt),
		SnapshotDate: utcPtr(row.SnapshotDate),
		Requirements: requirements,
		DedupeKey:    row.DedupeKey,
	}, nil
}

// ToSyncResult converts a stored sync run to its result
func ToSyncResult(row *schema.SyncRun) (domain.SyncResult, error) {
	errs, err := unmarshalList[string](row.Errors)
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("failed to unmarshal errors of run %s: %w", row.RunID, err)
	}
	return domain.SyncResult{
		RunID:      row.RunID,
		Source:     domain.SourceID(row.Source),
		Count:      row.Count,
		New:        row.New,
		Updated:    row.Updated,
		DurationMs: row.DurationMs,
		Errors:     errs,
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// startOfDay truncates t to its UTC day
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
