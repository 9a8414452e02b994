package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Opportunity represents the opportunities table - one row per (source, source_ref) ever synced
type Opportunity struct {
	// ID is the deterministic UUIDv5 of source:source_ref
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Source is the adapter that produced the record (defillama, galxe, layer3, curated)
	Source string `gorm:"column:source;not null;type:text;uniqueIndex:idx_opportunities_source_ref,priority:1"`
	// SourceRef is the record id inside its source
	SourceRef string `gorm:"column:source_ref;not null;type:text;uniqueIndex:idx_opportunities_source_ref,priority:2"`
	Type      string `gorm:"column:type;not null;type:text"`
	Title     string `gorm:"column:title;not null;type:text"`
	// Description and URL are optional; empty strings are stored as-is
	Description string `gorm:"column:description;not null;default:'';type:text"`
	URL         string `gorm:"column:url;not null;default:'';type:text"`
	Protocol    string `gorm:"column:protocol;not null;type:text"`
	// Chains is a JSON array of canonical chain names, primary chain first
	Chains datatypes.JSON `gorm:"column:chains;not null;type:jsonb"`
	// Tags is a JSON array of free-form tags
	Tags       datatypes.JSON `gorm:"column:tags;not null;type:jsonb"`
	TrustScore int            `gorm:"column:trust_score;not null"`
	Weight     float64        `gorm:"column:weight;not null;default:0"`
	Active     bool           `gorm:"column:active;not null;default:true"`
	EndsAt     *time.Time     `gorm:"column:ends_at"`
	// SnapshotDate is the eligibility snapshot of airdrops, when announced
	SnapshotDate *time.Time `gorm:"column:snapshot_date"`
	// Requirements is the JSON requirements object, NULL when the record has none
	Requirements datatypes.JSON `gorm:"column:requirements;type:jsonb"`
	// DedupeKey is protocol slug and primary chain; at most one row per key is canonical
	DedupeKey   string `gorm:"column:dedupe_key;not null;type:text;index:idx_opportunities_dedupe_key"`
	IsCanonical bool   `gorm:"column:is_canonical;not null;default:false;index:idx_opportunities_canonical_created,priority:1"`
	// ContentHash is the sha256 of the canonical JSON of the normalized record
	ContentHash string `gorm:"column:content_hash;not null;type:text"`
	// CreatedAt is set on first sync and never updated
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now();index:idx_opportunities_canonical_created,priority:2"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;default:now()"`
	LastSeenAt time.Time `gorm:"column:last_seen_at;not null;default:now()"`
}

// TableName specifies the table name for the Opportunity model
func (Opportunity) TableName() string {
	return "opportunities"
}
