package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/api/shared/constants"
	"github.com/feral-file/ff-opportunities/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-opportunities/internal/api/shared/errors"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/personalize"
	"github.com/feral-file/ff-opportunities/internal/store"
	"github.com/feral-file/ff-opportunities/internal/store/schema"
	"github.com/feral-file/ff-opportunities/internal/syncer"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetOpportunities returns the current candidates, ranked for wallet when one is given
	GetOpportunities(ctx context.Context, wallet *string, includeUnranked bool) (*dto.OpportunityListResponse, error)

	// ListSources returns the configured sources with their latest sync run
	ListSources(ctx context.Context) (*dto.SourceListResponse, error)

	// TriggerSync runs a sync of one source and returns its result
	TriggerSync(ctx context.Context, sourceID domain.SourceID) (*domain.SyncResult, error)

	// RecordWalletActions stores actions a wallet took on opportunities
	RecordWalletActions(ctx context.Context, wallet string, actions []dto.WalletActionRequest) (*dto.WalletActionsResponse, error)
}

type executor struct {
	store       store.Store
	personalize personalize.Service
	syncer      syncer.Service
	clock       adapter.Clock
}

func NewExecutor(st store.Store, personalizeService personalize.Service, syncerService syncer.Service, clock adapter.Clock) Executor {
	return &executor{
		store:       st,
		personalize: personalizeService,
		syncer:      syncerService,
		clock:       clock,
	}
}

func (e *executor) GetOpportunities(ctx context.Context, wallet *string, includeUnranked bool) (*dto.OpportunityListResponse, error) {
	now := e.clock.Now()

	candidates, err := e.store.ListCandidates(ctx, now, constants.MAX_CANDIDATES)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to list candidates").WithCause(err)
	}

	items, err := e.personalize.GetRankedOpportunities(ctx, wallet, candidates, personalize.Options{IncludeUnranked: includeUnranked})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, apierrors.NewValidationError("wallet must be a 0x-prefixed 40 hex character address")
		}
		return nil, apierrors.NewServiceError("Failed to rank opportunities").WithCause(err)
	}

	response := &dto.OpportunityListResponse{
		Wallet:      wallet,
		Items:       items,
		Total:       len(items),
		GeneratedAt: now,
	}
	for _, item := range items {
		if item.Ranking != nil {
			response.Personalized = true
			break
		}
	}
	return response, nil
}

func (e *executor) ListSources(ctx context.Context) (*dto.SourceListResponse, error) {
	runs, err := e.store.GetLatestSyncRuns(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to get sync runs").WithCause(err)
	}

	latest := make(map[domain.SourceID]*schema.SyncRun, len(runs))
	for _, run := range runs {
		latest[domain.SourceID(run.Source)] = run
	}

	defs := e.syncer.Sources()
	response := &dto.SourceListResponse{Sources: make([]dto.SourceResponse, 0, len(defs))}
	for _, def := range defs {
		source := dto.SourceResponse{
			ID:         def.ID,
			Priority:   def.Priority,
			TrustScore: def.TrustScore,
			TTLSeconds: int64(def.TTL.Seconds()),
		}
		if run, ok := latest[def.ID]; ok {
			result, err := store.ToSyncResult(run)
			if err != nil {
				logger.WarnCtx(ctx, "Skipping unreadable sync run", zap.String("run_id", run.RunID), zap.Error(err))
			} else {
				startedAt := run.StartedAt
				source.LastRun = &result
				source.LastRunAt = &startedAt
			}
		}
		response.Sources = append(response.Sources, source)
	}
	return response, nil
}

func (e *executor) TriggerSync(ctx context.Context, sourceID domain.SourceID) (*domain.SyncResult, error) {
	result, err := e.syncer.SyncSource(ctx, sourceID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSource) {
			return nil, apierrors.NewNotFoundError("Source not found", string(sourceID))
		}
		return nil, apierrors.NewServiceError("Failed to sync source").WithCause(err)
	}
	return result, nil
}

func (e *executor) RecordWalletActions(ctx context.Context, wallet string, actions []dto.WalletActionRequest) (*dto.WalletActionsResponse, error) {
	address, err := domain.NormalizeAddress(wallet)
	if err != nil {
		return nil, apierrors.NewValidationError("wallet must be a 0x-prefixed 40 hex character address")
	}
	if len(actions) > constants.MAX_WALLET_ACTIONS_PER_REQUEST {
		return nil, apierrors.NewValidationError(fmt.Sprintf("at most %d actions per request", constants.MAX_WALLET_ACTIONS_PER_REQUEST))
	}

	recorded := 0
	for _, action := range actions {
		err := e.store.RecordWalletAction(ctx, address, action.OpportunityID, schema.WalletAction(strings.ToLower(action.Action)))
		switch {
		case err == nil:
			recorded++
		case errors.Is(err, domain.ErrNotFound):
			return nil, apierrors.NewNotFoundError("Opportunity not found", action.OpportunityID)
		case errors.Is(err, domain.ErrInvalidInput):
			return nil, apierrors.NewValidationError(err.Error())
		default:
			return nil, apierrors.NewDatabaseError("Failed to record wallet action").WithCause(err)
		}
	}
	return &dto.WalletActionsResponse{Recorded: recorded}, nil
}
