package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Chain represents a blockchain network by its canonical lowercase name
type Chain string

const (
	ChainEthereum Chain = "ethereum"
	ChainBase     Chain = "base"
	ChainArbitrum Chain = "arbitrum"
	ChainOptimism Chain = "optimism"
	ChainPolygon  Chain = "polygon"
	ChainBSC      Chain = "bsc"
	ChainSolana   Chain = "solana"
)

// chainAliases maps feed-specific chain spellings to canonical chains
var chainAliases = map[string]Chain{
	"ethereum":     ChainEthereum,
	"eth":          ChainEthereum,
	"mainnet":      ChainEthereum,
	"eip155:1":     ChainEthereum,
	"base":         ChainBase,
	"eip155:8453":  ChainBase,
	"arbitrum":     ChainArbitrum,
	"arbitrum one": ChainArbitrum,
	"arb":          ChainArbitrum,
	"eip155:42161": ChainArbitrum,
	"optimism":     ChainOptimism,
	"op":           ChainOptimism,
	"eip155:10":    ChainOptimism,
	"polygon":      ChainPolygon,
	"matic":        ChainPolygon,
	"eip155:137":   ChainPolygon,
	"bsc":          ChainBSC,
	"binance":      ChainBSC,
	"bnb":          ChainBSC,
	"eip155:56":    ChainBSC,
	"solana":       ChainSolana,
	"sol":          ChainSolana,
}

// NormalizeChain converts a feed chain name into a canonical Chain.
// Unknown names are lowercased and kept so that new chains are not dropped.
func NormalizeChain(name string) Chain {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := chainAliases[key]; ok {
		return c
	}
	return Chain(key)
}

// NormalizeChains normalizes and de-duplicates chains, preserving first-seen order
func NormalizeChains(names []string) []Chain {
	chains := make([]Chain, 0, len(names))
	for _, name := range names {
		c := NormalizeChain(name)
		if c == "" || slices.Contains(chains, c) {
			continue
		}
		chains = append(chains, c)
	}
	return chains
}

// ChainsIntersect reports whether the two chain sets share at least one chain
func ChainsIntersect(a, b []Chain) bool {
	for _, c := range a {
		if slices.Contains(b, c) {
			return true
		}
	}
	return false
}

// OpportunityType is the kind of reward-earning action an opportunity describes
type OpportunityType string

const (
	OpportunityTypeYield    OpportunityType = "yield"
	OpportunityTypeAirdrop  OpportunityType = "airdrop"
	OpportunityTypeQuest    OpportunityType = "quest"
	OpportunityTypePoints   OpportunityType = "points"
	OpportunityTypeRWA      OpportunityType = "rwa"
	OpportunityTypeStrategy OpportunityType = "strategy"
)

// Valid checks if the opportunity type is one of the known types
func (t OpportunityType) Valid() bool {
	switch t {
	case OpportunityTypeYield, OpportunityTypeAirdrop, OpportunityTypeQuest,
		OpportunityTypePoints, OpportunityTypeRWA, OpportunityTypeStrategy:
		return true
	}
	return false
}

// SourceID identifies an opportunity source adapter
type SourceID string

const (
	SourceDefiLlama SourceID = "defillama"
	SourceGalxe     SourceID = "galxe"
	SourceLayer3    SourceID = "layer3"
	SourceCurated   SourceID = "curated"
)

// Requirements are the structured eligibility requirements of an opportunity
type Requirements struct {
	Chains           []Chain  `json:"chains,omitempty"`
	MinWalletAgeDays *int     `json:"min_wallet_age_days,omitempty"`
	MinTxCount       *int     `json:"min_tx_count,omitempty"`
	RequiredTokens   []string `json:"required_tokens,omitempty"`
}

// IsEmpty reports whether no requirement is set
func (r *Requirements) IsEmpty() bool {
	return r == nil ||
		(len(r.Chains) == 0 && r.MinWalletAgeDays == nil && r.MinTxCount == nil && len(r.RequiredTokens) == 0)
}

// Opportunity is a normalized external reward-earning action record
type Opportunity struct {
	ID           string          `json:"id"`
	Source       SourceID        `json:"source"`
	SourceRef    string          `json:"source_ref"`
	Type         OpportunityType `json:"type"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	URL          string          `json:"url,omitempty"`
	Protocol     string          `json:"protocol"`
	Chains       []Chain         `json:"chains"`
	Tags         []string        `json:"tags,omitempty"`
	TrustScore   int             `json:"trust_score"`
	Weight       float64         `json:"weight,omitempty"` // source-local ordering hint (e.g. pool TVL)
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	EndsAt       *time.Time      `json:"ends_at,omitempty"`
	SnapshotDate *time.Time      `json:"snapshot_date,omitempty"`
	Requirements *Requirements   `json:"requirements,omitempty"`
	DedupeKey    string          `json:"dedupe_key"`
}

// PrimaryChain returns the first listed chain of the opportunity
func (o *Opportunity) PrimaryChain() Chain {
	if len(o.Chains) == 0 {
		return ""
	}
	return o.Chains[0]
}

// Ended reports whether the opportunity has an end time before now
func (o *Opportunity) Ended(now time.Time) bool {
	return o.EndsAt != nil && !o.EndsAt.After(now)
}

var protocolSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ProtocolSlug normalizes a protocol name for dedup comparisons
func ProtocolSlug(protocol string) string {
	slug := protocolSlugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(protocol)), "-")
	return strings.Trim(slug, "-")
}

// NewDedupeKey builds the dedupe key from protocol and primary chain
func NewDedupeKey(protocol string, primary Chain) string {
	return fmt.Sprintf("%s:%s", ProtocolSlug(protocol), primary)
}

// WalletSignals are derived on-chain characteristics of an address.
// A nil pointer or nil slice means the signal could not be determined.
type WalletSignals struct {
	Address       string    `json:"address"`
	WalletAgeDays *int      `json:"wallet_age_days"`
	TxCount90d    *int      `json:"tx_count_90d"`
	ChainsActive  []Chain   `json:"chains_active"`
	TopAssets     []string  `json:"top_assets"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// EligibilityStatus is the coarse eligibility estimate
type EligibilityStatus string

const (
	EligibilityLikely   EligibilityStatus = "likely"
	EligibilityMaybe    EligibilityStatus = "maybe"
	EligibilityUnlikely EligibilityStatus = "unlikely"
)

// EligibilityResult is a wallet's estimated qualification for one opportunity
type EligibilityResult struct {
	WalletAddress string            `json:"wallet_address"`
	OpportunityID string            `json:"opportunity_id"`
	Status        EligibilityStatus `json:"status"`
	Score         float64           `json:"score"`
	Reasons       []string          `json:"reasons"`
	Degraded      bool              `json:"degraded"`
	ComputedAt    time.Time         `json:"computed_at"`
}

// ActivityState is the tri-state outcome of a historical activity check
type ActivityState string

const (
	ActivityActive   ActivityState = "active"
	ActivityInactive ActivityState = "inactive"
	ActivityUnknown  ActivityState = "unknown"
)

// HistoricalActivityResult records whether a wallet was active before a snapshot
type HistoricalActivityResult struct {
	WalletAddress string        `json:"wallet_address"`
	SnapshotDate  time.Time     `json:"snapshot_date"`
	Chain         Chain         `json:"chain"`
	WasActive     ActivityState `json:"was_active"`
	FirstTxDate   *time.Time    `json:"first_tx_date"`
	Degraded      bool          `json:"degraded"`
}

// RankingScore is the per-request score of one opportunity for one wallet
type RankingScore struct {
	Overall   float64 `json:"overall"`
	Relevance float64 `json:"relevance"`
	Freshness float64 `json:"freshness"`
}

// WalletHistory is what a wallet has previously done with opportunities
type WalletHistory struct {
	SavedTags         []string        `json:"saved_tags,omitempty"`
	MostCompletedType OpportunityType `json:"most_completed_type,omitempty"`
}

// EligibilityPreview is the eligibility summary attached to a ranked item
type EligibilityPreview struct {
	Status  EligibilityStatus `json:"status"`
	Score   float64           `json:"score"`
	Reasons []string          `json:"reasons"`
}

// RankedOpportunity is an opportunity annotated with eligibility and ranking
type RankedOpportunity struct {
	Opportunity
	EligibilityPreview *EligibilityPreview `json:"eligibility_preview,omitempty"`
	Ranking            *RankingScore       `json:"ranking,omitempty"`
}

// SyncResult summarizes a single source sync run
type SyncResult struct {
	RunID      string   `json:"run_id"`
	Source     SourceID `json:"source"`
	Count      int      `json:"count"`
	New        int      `json:"new"`
	Updated    int      `json:"updated"`
	DurationMs int64    `json:"duration_ms"`
	Errors     []string `json:"errors"`
}
