package schema

import "time"

// WalletAction is what a wallet did with an opportunity
type WalletAction string

const (
	WalletActionSaved     WalletAction = "saved"
	WalletActionCompleted WalletAction = "completed"
	WalletActionDismissed WalletAction = "dismissed"
)

// WalletActionRecord represents the wallet_actions table
type WalletActionRecord struct {
	ID            int64        `gorm:"column:id;primaryKey;autoIncrement"`
	WalletAddress string       `gorm:"column:wallet_address;not null;type:text;index:idx_wallet_actions_wallet"`
	OpportunityID string       `gorm:"column:opportunity_id;not null;type:text"`
	Action        WalletAction `gorm:"column:action;not null;type:text"`
	CreatedAt     time.Time    `gorm:"column:created_at;not null;default:now()"`

	Opportunity *Opportunity `gorm:"foreignKey:OpportunityID;references:ID"`
}

// TableName specifies the table name for the WalletActionRecord model
func (WalletActionRecord) TableName() string {
	return "wallet_actions"
}
