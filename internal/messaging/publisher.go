package messaging

import (
	"context"
	"time"

	"github.com/feral-file/ff-opportunities/internal/domain"
)

// SyncedEvent is emitted after a source sync run completes
type SyncedEvent struct {
	RunID      string          `json:"run_id"`
	Source     domain.SourceID `json:"source"`
	Count      int             `json:"count"`
	New        int             `json:"new"`
	Updated    int             `json:"updated"`
	Errors     int             `json:"errors"`
	DedupeKeys []string        `json:"dedupe_keys"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher defines the interface for publishing sync events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishSynced publishes a sync completion event
	PublishSynced(ctx context.Context, event *SyncedEvent) error
	// Close closes the connection
	Close()
}

// nopPublisher discards events when no broker is configured
type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishSynced(context.Context, *SyncedEvent) error { return nil }

func (nopPublisher) Close() {}
