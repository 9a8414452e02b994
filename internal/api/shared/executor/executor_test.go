package executor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-opportunities/internal/api/shared/constants"
	"github.com/feral-file/ff-opportunities/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-opportunities/internal/api/shared/errors"
	"github.com/feral-file/ff-opportunities/internal/api/shared/executor"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/mocks"
	"github.com/feral-file/ff-opportunities/internal/personalize"
	"github.com/feral-file/ff-opportunities/internal/sources"
	"github.com/feral-file/ff-opportunities/internal/store/schema"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type testExecutorMocks struct {
	store       *mocks.MockStore
	personalize *mocks.MockPersonalizeService
	syncer      *mocks.MockSyncerService
	exec        executor.Executor
}

func setupTestExecutor(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	m := &testExecutorMocks{
		store:       mocks.NewMockStore(ctrl),
		personalize: mocks.NewMockPersonalizeService(ctrl),
		syncer:      mocks.NewMockSyncerService(ctrl),
	}
	m.exec = executor.NewExecutor(m.store, m.personalize, m.syncer, clock)
	return m
}

func requireAPIError(t *testing.T, err error, code apierrors.ErrorCode) {
	t.Helper()
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.Equal(t, code, apiErr.Code)
}

func TestGetOpportunities_Personalized(t *testing.T) {
	m := setupTestExecutor(t)
	candidates := []domain.Opportunity{{ID: "a"}, {ID: "b"}}
	wallet := "0x4444444444444444444444444444444444444444"

	m.store.EXPECT().ListCandidates(gomock.Any(), now, constants.MAX_CANDIDATES).Return(candidates, nil)
	m.personalize.EXPECT().GetRankedOpportunities(gomock.Any(), &wallet, candidates, personalize.Options{IncludeUnranked: true}).
		Return([]domain.RankedOpportunity{
			{Opportunity: candidates[0], Ranking: &domain.RankingScore{Overall: 0.7}},
			{Opportunity: candidates[1]},
		}, nil)

	resp, err := m.exec.GetOpportunities(context.Background(), &wallet, true)
	require.NoError(t, err)
	assert.True(t, resp.Personalized)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, now, resp.GeneratedAt)
	assert.Equal(t, &wallet, resp.Wallet)
}

func TestGetOpportunities_Anonymous(t *testing.T) {
	m := setupTestExecutor(t)
	candidates := []domain.Opportunity{{ID: "a"}}

	m.store.EXPECT().ListCandidates(gomock.Any(), now, constants.MAX_CANDIDATES).Return(candidates, nil)
	m.personalize.EXPECT().GetRankedOpportunities(gomock.Any(), nil, candidates, personalize.Options{}).
		Return([]domain.RankedOpportunity{{Opportunity: candidates[0]}}, nil)

	resp, err := m.exec.GetOpportunities(context.Background(), nil, false)
	require.NoError(t, err)
	assert.False(t, resp.Personalized)
	assert.Nil(t, resp.Wallet)
	assert.Equal(t, 1, resp.Total)
}

func TestGetOpportunities_Errors(t *testing.T) {
	wallet := "0x1"

	t.Run("store failure", func(t *testing.T) {
		m := setupTestExecutor(t)
		m.store.EXPECT().ListCandidates(gomock.Any(), now, gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := m.exec.GetOpportunities(context.Background(), &wallet, false)
		requireAPIError(t, err, apierrors.ErrCodeDatabaseError)
	})

	t.Run("invalid wallet", func(t *testing.T) {
		m := setupTestExecutor(t)
		m.store.EXPECT().ListCandidates(gomock.Any(), now, gomock.Any()).Return(nil, nil)
		m.personalize.EXPECT().GetRankedOpportunities(gomock.Any(), &wallet, gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrInvalidInput)

		_, err := m.exec.GetOpportunities(context.Background(), &wallet, false)
		requireAPIError(t, err, apierrors.ErrCodeValidationFailed)
	})

	t.Run("canceled", func(t *testing.T) {
		m := setupTestExecutor(t)
		m.store.EXPECT().ListCandidates(gomock.Any(), now, gomock.Any()).Return(nil, nil)
		m.personalize.EXPECT().GetRankedOpportunities(gomock.Any(), &wallet, gomock.Any(), gomock.Any()).
			Return(nil, context.DeadlineExceeded)

		_, err := m.exec.GetOpportunities(context.Background(), &wallet, false)
		requireAPIError(t, err, apierrors.ErrCodeServiceError)
	})
}

func TestListSources(t *testing.T) {
	m := setupTestExecutor(t)
	galxe, _ := sources.Lookup(domain.SourceGalxe)
	curated, _ := sources.Lookup(domain.SourceCurated)
	startedAt := now.Add(-time.Minute)

	m.store.EXPECT().GetLatestSyncRuns(gomock.Any()).Return([]*schema.SyncRun{
		{RunID: "run-1", Source: string(domain.SourceGalxe), Count: 4, New: 1, Errors: datatypes.JSON(`["q9: missing title"]`), StartedAt: startedAt},
	}, nil)
	m.syncer.EXPECT().Sources().Return([]sources.Definition{galxe, curated})

	resp, err := m.exec.ListSources(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Sources, 2)

	assert.Equal(t, domain.SourceGalxe, resp.Sources[0].ID)
	assert.Equal(t, int64(600), resp.Sources[0].TTLSeconds)
	require.NotNil(t, resp.Sources[0].LastRun)
	assert.Equal(t, 4, resp.Sources[0].LastRun.Count)
	assert.Equal(t, []string{"q9: missing title"}, resp.Sources[0].LastRun.Errors)
	assert.Equal(t, startedAt, *resp.Sources[0].LastRunAt)

	assert.Equal(t, domain.SourceCurated, resp.Sources[1].ID)
	assert.Nil(t, resp.Sources[1].LastRun)
}

func TestTriggerSync(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := setupTestExecutor(t)
		m.syncer.EXPECT().SyncSource(gomock.Any(), domain.SourceLayer3).Return(&domain.SyncResult{Source: domain.SourceLayer3, Count: 2}, nil)

		result, err := m.exec.TriggerSync(context.Background(), domain.SourceLayer3)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count)
	})

	t.Run("unknown source", func(t *testing.T) {
		m := setupTestExecutor(t)
		m.syncer.EXPECT().SyncSource(gomock.Any(), domain.SourceID("foo")).Return(nil, domain.ErrUnknownSource)

		_, err := m.exec.TriggerSync(context.Background(), "foo")
		requireAPIError(t, err, apierrors.ErrCodeNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		m := setupTestExecutor(t)
		m.syncer.EXPECT().SyncSource(gomock.Any(), domain.SourceLayer3).Return(&domain.SyncResult{}, errors.New("deadlock"))

		_, err := m.exec.TriggerSync(context.Background(), domain.SourceLayer3)
		requireAPIError(t, err, apierrors.ErrCodeServiceError)
	})
}

func TestRecordWalletActions(t *testing.T) {
	wallet := "0xABCDEF0000000000000000000000000000000001"
	lower := "0xabcdef0000000000000000000000000000000001"

	t.Run("records each action against the lowercased wallet", func(t *testing.T) {
		m := setupTestExecutor(t)
		gomock.InOrder(
			m.store.EXPECT().RecordWalletAction(gomock.Any(), lower, "opp-1", schema.WalletActionSaved).Return(nil),
			m.store.EXPECT().RecordWalletAction(gomock.Any(), lower, "opp-2", schema.WalletActionCompleted).Return(nil),
		)

		resp, err := m.exec.RecordWalletActions(context.Background(), wallet, []dto.WalletActionRequest{
			{OpportunityID: "opp-1", Action: "saved"},
			{OpportunityID: "opp-2", Action: "COMPLETED"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Recorded)
	})

	t.Run("invalid wallet", func(t *testing.T) {
		m := setupTestExecutor(t)
		_, err := m.exec.RecordWalletActions(context.Background(), "bob.eth", []dto.WalletActionRequest{{OpportunityID: "x", Action: "saved"}})
		requireAPIError(t, err, apierrors.ErrCodeValidationFailed)
	})

	t.Run("too many actions", func(t *testing.T) {
		m := setupTestExecutor(t)
		actions := make([]dto.WalletActionRequest, constants.MAX_WALLET_ACTIONS_PER_REQUEST+1)
		_, err := m.exec.RecordWalletActions(context.Background(), wallet, actions)
		requireAPIError(t, err, apierrors.ErrCodeValidationFailed)
	})

	t.Run("unknown opportunity", func(t *testing.T) {
		m := setupTestExecutor(t)
		m.store.EXPECT().RecordWalletAction(gomock.Any(), lower, "missing", schema.WalletActionSaved).
			Return(domain.ErrNotFound)

		_, err := m.exec.RecordWalletActions(context.Background(), wallet, []dto.WalletActionRequest{{OpportunityID: "missing", Action: "saved"}})
		requireAPIError(t, err, apierrors.ErrCodeNotFound)
	})
}
