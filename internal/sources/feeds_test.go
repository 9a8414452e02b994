package sources_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/mocks"
	"github.com/feral-file/ff-opportunities/internal/providers/vendors/defillama"
	"github.com/feral-file/ff-opportunities/internal/providers/vendors/galxe"
	"github.com/feral-file/ff-opportunities/internal/providers/vendors/layer3"
	"github.com/feral-file/ff-opportunities/internal/registry"
	"github.com/feral-file/ff-opportunities/internal/sources"
)

func ptr[T any](v T) *T { return &v }

func TestDefiLlamaFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDefiLlamaClient(ctrl)
	client.EXPECT().GetPools(gomock.Any()).Return([]defillama.Pool{
		{Pool: "small", Chain: "Ethereum", Project: "tiny", Symbol: "X", TvlUsd: 10},
		{Pool: "p1", Chain: "Ethereum", Project: "aave-v3", Symbol: "USDC", TvlUsd: 2_000_000, Apy: ptr(4.5), Stablecoin: true, Exposure: "single"},
		{Pool: "p2", Chain: "Base", Project: "aerodrome", Symbol: "WETH-USDC", TvlUsd: 5_000_000},
	}, nil)

	page, err := sources.NewDefiLlamaFeed(client, 1_000_000).FetchPage(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, page.Next)
	require.Len(t, page.Records, 2)

	assert.Equal(t, "p2", page.Records[0].SourceRef, "largest pool first")
	r := page.Records[1]
	assert.Equal(t, domain.OpportunityTypeYield, r.Type)
	assert.Equal(t, "aave-v3 USDC", r.Title)
	assert.Equal(t, "4.50% APY for USDC on Ethereum", r.Description)
	assert.Equal(t, "https://defillama.com/yields/pool/p1", r.URL)
	assert.Equal(t, []string{"yield", "stablecoin", "single"}, r.Tags)
	assert.Equal(t, 2_000_000.0, r.Weight)
}

func TestDefiLlamaFeed_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDefiLlamaClient(ctrl)
	boom := errors.New("boom")
	client.EXPECT().GetPools(gomock.Any()).Return(nil, boom)

	_, err := sources.NewDefiLlamaFeed(client, 0).FetchPage(context.Background(), "")
	assert.ErrorIs(t, err, boom)
}

func TestGalxeFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockGalxeClient(ctrl)

	client.EXPECT().GetCampaigns(gomock.Any(), "", 50).Return(&galxe.CampaignPage{
		Campaigns: []galxe.Campaign{
			{
				ID: "GC1", Name: "Base Onchain Summer", Description: "Complete tasks", Status: "Active", Chain: "BASE",
				StartTime: ptr(int64(1_700_000_000)), EndTime: ptr(int64(1_800_000_000)),
				ParticipantsCount: 1200, Space: &galxe.Space{Alias: "base"},
			},
			{ID: "GC2", Name: "Retroactive airdrop", Status: "Active", Chain: "ETHEREUM", Space: &galxe.Space{Name: "Zora"}},
		},
		EndCursor:   "cur1",
		HasNextPage: true,
	}, nil)

	page, err := sources.NewGalxeFeed(client).FetchPage(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "cur1", page.Next)
	require.Len(t, page.Records, 2)

	first := page.Records[0]
	assert.Equal(t, domain.OpportunityTypeQuest, first.Type)
	assert.Equal(t, "base", first.Protocol)
	assert.True(t, first.Active)
	assert.Equal(t, time.Unix(1_700_000_000, 0).UTC(), first.CreatedAt)
	require.NotNil(t, first.EndsAt)
	assert.Equal(t, 1200.0, first.Weight)

	second := page.Records[1]
	assert.Equal(t, domain.OpportunityTypeAirdrop, second.Type)
	assert.Equal(t, "Zora", second.Protocol)
	assert.True(t, second.CreatedAt.IsZero())
}

func TestGalxeFeed_StopsOnRepeatedCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockGalxeClient(ctrl)
	client.EXPECT().GetCampaigns(gomock.Any(), "cur1", 50).Return(&galxe.CampaignPage{EndCursor: "cur1", HasNextPage: true}, nil)

	page, err := sources.NewGalxeFeed(client).FetchPage(context.Background(), "cur1")
	require.NoError(t, err)
	assert.Empty(t, page.Next)
}

func TestLayer3Feed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockLayer3Client(ctrl)

	created := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	client.EXPECT().GetQuests(gomock.Any(), 2, 50).Return(&layer3.QuestPage{
		Quests: []layer3.Quest{{
			ID: "l3-1", Slug: "arb-odyssey", Title: "Arbitrum Odyssey", Chains: []string{"arbitrum"},
			CreatedAt: created, Completions: 40, Dapp: &layer3.Dapp{Name: "Arbitrum"},
			Requirements: &layer3.QuestRequirements{MinWalletAgeDays: ptr(30), Tokens: []string{"ARB"}},
		}},
		HasMore: true,
	}, nil)

	page, err := sources.NewLayer3Feed(client).FetchPage(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "3", page.Next)
	require.Len(t, page.Records, 1)

	r := page.Records[0]
	assert.Equal(t, "https://app.layer3.xyz/quests/arb-odyssey", r.URL)
	assert.Equal(t, "Arbitrum", r.Protocol)
	assert.Equal(t, created, r.CreatedAt)
	require.NotNil(t, r.Requirements)
	assert.Equal(t, 30, *r.Requirements.MinWalletAgeDays)
	assert.Equal(t, []string{"ARB"}, r.Requirements.RequiredTokens)
}

func TestLayer3Feed_BadCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockLayer3Client(ctrl)

	_, err := sources.NewLayer3Feed(client).FetchPage(context.Background(), "abc")
	assert.Error(t, err)
}

func TestLayer3Feed_LastPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockLayer3Client(ctrl)
	client.EXPECT().GetQuests(gomock.Any(), 1, 50).Return(&layer3.QuestPage{HasMore: true}, nil)

	page, err := sources.NewLayer3Feed(client).FetchPage(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, page.Next, "an empty page ends paging")
}

func TestCuratedFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockCuratedRegistry(ctrl)
	reg.EXPECT().Load().Return([]registry.CuratedRecord{
		{ID: "c1", Type: "Points", Title: "Blast points", Protocol: "Blast", Chains: []string{"ethereum"}},
		{ID: "c2", Title: "Linea airdrop claim", Protocol: "Linea", Chains: []string{"ethereum"}, Active: ptr(false),
			Requirements: &registry.CuratedRequirements{Chains: []string{"ETH"}, MinTxCount: ptr(10)}},
	}, nil)

	page, err := sources.NewCuratedFeed(reg).FetchPage(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Records, 2)

	assert.Equal(t, domain.OpportunityTypePoints, page.Records[0].Type)
	assert.True(t, page.Records[0].Active)

	second := page.Records[1]
	assert.Equal(t, domain.OpportunityTypeAirdrop, second.Type)
	assert.False(t, second.Active)
	require.NotNil(t, second.Requirements)
	assert.Equal(t, []domain.Chain{domain.ChainEthereum}, second.Requirements.Chains)
}

func TestCuratedFeed_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockCuratedRegistry(ctrl)
	reg.EXPECT().Load().Return(nil, fmt.Errorf("failed to read curated file: %w", errors.New("nope")))

	_, err := sources.NewCuratedFeed(reg).FetchPage(context.Background(), "")
	assert.Error(t, err)
}
