package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter builds the game server engine with health, metrics and game routes.
func NewRouter(h *Handler, logger *zap.Logger, env string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if env == "local" || env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(ZapLogger(logger))
	router.Use(gin.Recovery())

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.RegisterRoutes(router)

	return router
}
