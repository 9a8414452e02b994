package sources_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/sources"
)

var buildNow = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func validRecord() sources.RawRecord {
	return sources.RawRecord{
		SourceRef: "q-1",
		Type:      domain.OpportunityTypeQuest,
		Title:     "  Bridge to Base ",
		Protocol:  "Base Bridge",
		Chains:    []string{"Base", "eth", "base"},
		Active:    true,
	}
}

func TestBuild(t *testing.T) {
	def, _ := sources.Lookup(domain.SourceLayer3)
	raw := validRecord()
	age := 30
	raw.Requirements = &domain.Requirements{Chains: []domain.Chain{"ETH"}, MinWalletAgeDays: &age}
	ends := time.Date(2026, 6, 1, 9, 0, 0, 0, time.FixedZone("X", 3600))
	raw.EndsAt = &ends

	opp, err := sources.Build(def, raw, buildNow)
	require.NoError(t, err)

	assert.Equal(t, sources.OpportunityID(domain.SourceLayer3, "q-1"), opp.ID)
	assert.Equal(t, domain.SourceLayer3, opp.Source)
	assert.Equal(t, "Bridge to Base", opp.Title)
	assert.Equal(t, []domain.Chain{domain.ChainBase, domain.ChainEthereum}, opp.Chains)
	assert.Equal(t, 65, opp.TrustScore)
	assert.Equal(t, "base-bridge:base", opp.DedupeKey)
	assert.Equal(t, buildNow, opp.CreatedAt, "missing created_at defaults to now")
	assert.Equal(t, time.UTC, opp.EndsAt.Location())
	require.NotNil(t, opp.Requirements)
	assert.Equal(t, []domain.Chain{domain.ChainEthereum}, opp.Requirements.Chains)
}

func TestBuild_EmptyRequirementsDropped(t *testing.T) {
	def, _ := sources.Lookup(domain.SourceGalxe)
	raw := validRecord()
	raw.Requirements = &domain.Requirements{}

	opp, err := sources.Build(def, raw, buildNow)
	require.NoError(t, err)
	assert.Nil(t, opp.Requirements)
}

func TestBuild_Invalid(t *testing.T) {
	def, _ := sources.Lookup(domain.SourceGalxe)

	tests := []struct {
		name   string
		modify func(*sources.RawRecord)
	}{
		{name: "missing ref", modify: func(r *sources.RawRecord) { r.SourceRef = " " }},
		{name: "missing title", modify: func(r *sources.RawRecord) { r.Title = "" }},
		{name: "missing protocol", modify: func(r *sources.RawRecord) { r.Protocol = "!!" }},
		{name: "unknown type", modify: func(r *sources.RawRecord) { r.Type = "lottery" }},
		{name: "no chains", modify: func(r *sources.RawRecord) { r.Chains = []string{" "} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRecord()
			tt.modify(&raw)
			_, err := sources.Build(def, raw, buildNow)
			assert.ErrorIs(t, err, domain.ErrDataIntegrity)
		})
	}
}

func TestOpportunityID_Deterministic(t *testing.T) {
	a := sources.OpportunityID(domain.SourceGalxe, "123")
	assert.Equal(t, a, sources.OpportunityID(domain.SourceGalxe, "123"))
	assert.NotEqual(t, a, sources.OpportunityID(domain.SourceLayer3, "123"))
	assert.NotEqual(t, a, sources.OpportunityID(domain.SourceGalxe, "124"))
}
