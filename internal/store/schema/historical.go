package schema

import "time"

// HistoricalActivity represents the historical_activity table - pre-snapshot activity per wallet and chain
type HistoricalActivity struct {
	WalletAddress string    `gorm:"column:wallet_address;primaryKey;type:text"`
	SnapshotDate  time.Time `gorm:"column:snapshot_date;primaryKey;type:date"`
	Chain         string    `gorm:"column:chain;primaryKey;type:text"`
	// WasActive is active, inactive or unknown
	WasActive   string     `gorm:"column:was_active;not null;type:text"`
	FirstTxDate *time.Time `gorm:"column:first_tx_date"`
	Degraded    bool       `gorm:"column:degraded;not null;default:false"`
	ComputedAt  time.Time  `gorm:"column:computed_at;not null"`
}

// TableName specifies the table name for the HistoricalActivity model
func (HistoricalActivity) TableName() string {
	return "historical_activity"
}

// BlockHeight represents the block_heights table - the approximate block at the start of a UTC day
type BlockHeight struct {
	Chain      string    `gorm:"column:chain;primaryKey;type:text"`
	Day        time.Time `gorm:"column:day;primaryKey;type:date"`
	Height     int64     `gorm:"column:height;not null"`
	ComputedAt time.Time `gorm:"column:computed_at;not null"`
}

// TableName specifies the table name for the BlockHeight model
func (BlockHeight) TableName() string {
	return "block_heights"
}
