package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/elric-cpu/website-v4-api/internal/logger"
	"github.com/elric-cpu/website-v4-api/internal/metrics"
	"github.com/elric-cpu/website-v4-api/internal/middleware"
)

// testCollector is shared by every handler test: promauto registers on
// the process-wide default registry, so it can only be built once.
var testCollector = metrics.NewCollector("handlers_test")

// setupTestRouter creates a test router with the standard middleware.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.New("test")))
	return router
}
