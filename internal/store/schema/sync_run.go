package schema

import (
	"time"

	"gorm.io/datatypes"
)

// SyncRun represents the sync_runs table - one row per SyncSource execution
type SyncRun struct {
	// RunID is a ULID so runs sort by start time
	RunID      string         `gorm:"column:run_id;primaryKey;type:text"`
	Source     string         `gorm:"column:source;not null;type:text;index:idx_sync_runs_source_started,priority:1"`
	Count      int            `gorm:"column:count;not null"`
	New        int            `gorm:"column:new;not null"`
	Updated    int            `gorm:"column:updated;not null"`
	DurationMs int64          `gorm:"column:duration_ms;not null"`
	Errors     datatypes.JSON `gorm:"column:errors;not null;type:jsonb"`
	StartedAt  time.Time      `gorm:"column:started_at;not null;index:idx_sync_runs_source_started,priority:2,sort:desc"`
}

// TableName specifies the table name for the SyncRun model
func (SyncRun) TableName() string {
	return "sync_runs"
}
