package api

import (
	"net/http"

	"energy-ledger/internal/api/handlers"
	"energy-ledger/internal/api/middleware"
	"energy-ledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires every ledger operation onto a gin engine. gatherer backs
// the /metrics endpoint.
func NewRouter(svc *service.Service, gatherer prometheus.Gatherer, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	assetHandler := handlers.NewAssetHandler(svc, logger)
	tradeHandler := handlers.NewTradeHandler(svc, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		api.POST("/ledger/init", assetHandler.InitLedger)

		api.GET("/assets", assetHandler.ListAssets)
		api.GET("/assets/view", assetHandler.ViewAssets)
		api.POST("/assets", assetHandler.CreateAsset)
		api.GET("/assets/:id", assetHandler.ReadAsset)
		api.PUT("/assets/:id", assetHandler.UpdateAsset)
		api.DELETE("/assets/:id", assetHandler.DeleteAsset)
		api.GET("/assets/:id/exists", assetHandler.AssetExists)
		api.POST("/assets/:id/transfer", assetHandler.TransferAsset)
		api.GET("/summary", assetHandler.Summary)

		api.POST("/trade", tradeHandler.Trade)
		api.GET("/ratios", tradeHandler.ViewRatios)
		api.GET("/txlog", tradeHandler.ViewTransactionLog)
		api.GET("/grid", tradeHandler.ViewCurrentGridPower)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
