package registry

import (
	"fmt"
	"time"

	"github.com/feral-file/ff-opportunities/internal/adapter"
)

// CuratedRequirements are the hand-entered requirements of a curated record
type CuratedRequirements struct {
	Chains           []string `json:"chains"`
	MinWalletAgeDays *int     `json:"min_wallet_age_days"`
	MinTxCount       *int     `json:"min_tx_count"`
	RequiredTokens   []string `json:"required_tokens"`
}

// CuratedRecord is one entry of the curated opportunities file
type CuratedRecord struct {
	ID           string               `json:"id"`
	Type         string               `json:"type"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	URL          string               `json:"url"`
	Protocol     string               `json:"protocol"`
	Chains       []string             `json:"chains"`
	Tags         []string             `json:"tags"`
	Weight       float64              `json:"weight"`
	Active       *bool                `json:"active"`
	CreatedAt    time.Time            `json:"created_at"`
	EndsAt       *time.Time           `json:"ends_at"`
	SnapshotDate *time.Time           `json:"snapshot_date"`
	Requirements *CuratedRequirements `json:"requirements"`
}

// CuratedData represents the structure of the curated.json file
type CuratedData struct {
	Opportunities []CuratedRecord `json:"opportunities"`
}

// CuratedRegistry defines the interface for reading curated opportunities
//
//go:generate mockgen -source=curated.go -destination=../mocks/curated_registry.go -package=mocks -mock_names=CuratedRegistry=MockCuratedRegistry
type CuratedRegistry interface {
	// Load reads every curated record. The file is read on each call so edits
	// show up on the next uncached fetch.
	Load() ([]CuratedRecord, error)
}

type curatedRegistry struct {
	fs       adapter.FileSystem
	json     adapter.JSON
	filePath string
}

// NewCuratedRegistry creates a curated registry backed by a JSON file
func NewCuratedRegistry(fs adapter.FileSystem, json adapter.JSON, filePath string) CuratedRegistry {
	return &curatedRegistry{
		fs:       fs,
		json:     json,
		filePath: filePath,
	}
}

// Load reads and parses the curated file
func (r *curatedRegistry) Load() ([]CuratedRecord, error) {
	data, err := r.fs.ReadFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curated file: %w", err)
	}

	var curated CuratedData
	if err := r.json.Unmarshal(data, &curated); err != nil {
		return nil, fmt.Errorf("failed to parse curated JSON: %w", err)
	}

	return curated.Opportunities, nil
}
