package dto

import (
	"time"

	"github.com/feral-file/ff-opportunities/internal/domain"
)

// OpportunityListResponse is the ranked or unranked opportunity list
type OpportunityListResponse struct {
	Wallet       *string                    `json:"wallet,omitempty"`
	Personalized bool                       `json:"personalized"`
	Items        []domain.RankedOpportunity `json:"items"`
	Total        int                        `json:"total"`
	GeneratedAt  time.Time                  `json:"generated_at"`
}

// SourceResponse describes a configured source and its latest sync run
type SourceResponse struct {
	ID         domain.SourceID    `json:"id"`
	Priority   int                `json:"priority"`
	TrustScore int                `json:"trust_score"`
	TTLSeconds int64              `json:"ttl_seconds"`
	LastRun    *domain.SyncResult `json:"last_run,omitempty"`
	LastRunAt  *time.Time         `json:"last_run_at,omitempty"`
}

// SourceListResponse lists sources in ascending priority
type SourceListResponse struct {
	Sources []SourceResponse `json:"sources"`
}

// WalletActionRequest records an action a wallet took on an opportunity
type WalletActionRequest struct {
	OpportunityID string `json:"opportunity_id" binding:"required"`
	Action        string `json:"action" binding:"required,oneof=saved completed dismissed"`
}

// WalletActionsRequest records one or more wallet actions
type WalletActionsRequest struct {
	Actions []WalletActionRequest `json:"actions" binding:"required,min=1,dive"`
}

// WalletActionsResponse reports how many actions were recorded
type WalletActionsResponse struct {
	Recorded int `json:"recorded"`
}
