package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-opportunities/internal/api/shared/dto"
	"github.com/feral-file/ff-opportunities/internal/api/shared/executor"
	"github.com/feral-file/ff-opportunities/internal/domain"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// ListOpportunities returns current opportunities, personalized when a wallet is given
	// GET /api/v1/opportunities?wallet=<address>&include_unranked=<bool>
	ListOpportunities(c *gin.Context)

	// ListSources returns the configured sources and their latest sync runs
	// GET /api/v1/sources
	ListSources(c *gin.Context)

	// TriggerSourceSync syncs one source (requires authentication)
	// POST /api/v1/sources/:id/sync
	TriggerSourceSync(c *gin.Context)

	// RecordWalletActions records saved, completed or dismissed opportunities of a wallet (requires authentication)
	// POST /api/v1/wallets/:address/actions
	RecordWalletActions(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

func (h *handler) ListOpportunities(c *gin.Context) {
	queryParams, err := ParseListOpportunitiesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetOpportunities(c.Request.Context(), queryParams.WalletPtr(), queryParams.IncludeUnranked)
	if err != nil {
		respondError(c, err, "Failed to get opportunities")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) ListSources(c *gin.Context) {
	response, err := h.executor.ListSources(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list sources")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) TriggerSourceSync(c *gin.Context) {
	sourceID := c.Param("id")
	if sourceID == "" {
		respondBadRequest(c, "Source ID is required")
		return
	}

	result, err := h.executor.TriggerSync(c.Request.Context(), domain.SourceID(sourceID))
	if err != nil {
		respondError(c, err, "Failed to sync source")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handler) RecordWalletActions(c *gin.Context) {
	var req dto.WalletActionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.RecordWalletActions(c.Request.Context(), c.Param("address"), req.Actions)
	if err != nil {
		respondError(c, err, "Failed to record wallet actions")
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-opportunities-api",
	})
}
