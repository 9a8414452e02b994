package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-opportunities/internal/domain"
)

// opportunityNamespace scopes the deterministic opportunity ids
var opportunityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://feralfile.com/opportunities"))

// RawRecord is a feed record mapped to opportunity fields but not yet tagged with its source
type RawRecord struct {
	SourceRef    string
	Type         domain.OpportunityType
	Title        string
	Description  string
	URL          string
	Protocol     string
	Chains       []string
	Tags         []string
	Weight       float64
	Active       bool
	CreatedAt    time.Time
	EndsAt       *time.Time
	SnapshotDate *time.Time
	Requirements *domain.Requirements
}

// OpportunityID returns the deterministic id of (source, sourceRef)
func OpportunityID(source domain.SourceID, sourceRef string) string {
	return uuid.NewSHA1(opportunityNamespace, []byte(string(source)+":"+sourceRef)).String()
}

// Build validates raw and tags it with the source's id, trust and dedupe key.
// Invalid records return an error wrapping domain.ErrDataIntegrity.
func Build(def Definition, raw RawRecord, now time.Time) (domain.Opportunity, error) {
	ref := strings.TrimSpace(raw.SourceRef)
	if ref == "" {
		return domain.Opportunity{}, fmt.Errorf("%w: %s record without source_ref", domain.ErrDataIntegrity, def.ID)
	}
	if strings.TrimSpace(raw.Title) == "" {
		return domain.Opportunity{}, fmt.Errorf("%w: %s/%s: missing title", domain.ErrDataIntegrity, def.ID, ref)
	}
	if domain.ProtocolSlug(raw.Protocol) == "" {
		return domain.Opportunity{}, fmt.Errorf("%w: %s/%s: missing protocol", domain.ErrDataIntegrity, def.ID, ref)
	}
	if !raw.Type.Valid() {
		return domain.Opportunity{}, fmt.Errorf("%w: %s/%s: unknown type %q", domain.ErrDataIntegrity, def.ID, ref, raw.Type)
	}
	chains := domain.NormalizeChains(raw.Chains)
	if len(chains) == 0 {
		return domain.Opportunity{}, fmt.Errorf("%w: %s/%s: no chains", domain.ErrDataIntegrity, def.ID, ref)
	}

	createdAt := raw.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	var req *domain.Requirements
	if !raw.Requirements.IsEmpty() {
		r := *raw.Requirements
		r.Chains = domain.NormalizeChains(chainNames(r.Chains))
		req = &r
	}

	return domain.Opportunity{
		ID:           OpportunityID(def.ID, ref),
		Source:       def.ID,
		SourceRef:    ref,
		Type:         raw.Type,
		Title:        strings.TrimSpace(raw.Title),
		Description:  strings.TrimSpace(raw.Description),
		URL:          raw.URL,
		Protocol:     strings.TrimSpace(raw.Protocol),
		Chains:       chains,
		Tags:         raw.Tags,
		TrustScore:   def.TrustScore,
		Weight:       raw.Weight,
		Active:       raw.Active,
		CreatedAt:    createdAt.UTC(),
		EndsAt:       utc(raw.EndsAt),
		SnapshotDate: utc(raw.SnapshotDate),
		Requirements: req,
		DedupeKey:    domain.NewDedupeKey(raw.Protocol, chains[0]),
	}, nil
}

func chainNames(chains []domain.Chain) []string {
	names := make([]string, len(chains))
	for i, c := range chains {
		names[i] = string(c)
	}
	return names
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
