package schema

import (
	"time"

	"gorm.io/datatypes"
)

// EligibilityResult represents the eligibility_results table.
// Rows are overwritten on recompute and never deleted on expiry.
type EligibilityResult struct {
	WalletAddress string  `gorm:"column:wallet_address;primaryKey;type:text"`
	OpportunityID string  `gorm:"column:opportunity_id;primaryKey;type:text"`
	Status        string  `gorm:"column:status;not null;type:text"`
	Score         float64 `gorm:"column:score;not null"`
	// Reasons is a JSON array of 2 to 5 reason strings
	Reasons    datatypes.JSON `gorm:"column:reasons;not null;type:jsonb"`
	Degraded   bool           `gorm:"column:degraded;not null;default:false"`
	ComputedAt time.Time      `gorm:"column:computed_at;not null"`
}

// TableName specifies the table name for the EligibilityResult model
func (EligibilityResult) TableName() string {
	return "eligibility_results"
}
