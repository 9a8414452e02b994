package rest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feral-file/ff-opportunities/internal/api/middleware"
)

// SetupRoutes configures all REST API routes.
// requestTimeout bounds the personalized listing only; syncs run to completion.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, requestTimeout time.Duration) {
	// Health and metrics (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Opportunity endpoints (public read access)
		v1.GET("/opportunities", middleware.Timeout(requestTimeout), handler.ListOpportunities)
		v1.GET("/sources", handler.ListSources)

		// Sync trigger (requires authentication, rejected before any work)
		v1.POST("/sources/:id/sync", middleware.Auth(authCfg), handler.TriggerSourceSync)

		// Wallet history (requires authentication)
		v1.POST("/wallets/:address/actions", middleware.Auth(authCfg), handler.RecordWalletActions)
	}
}
