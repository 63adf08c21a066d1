package router

import (
	"github.com/gin-gonic/gin"

	"deedflow/internal/handler"
	"deedflow/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	healthH *handler.HealthHandler,
	statsH *handler.StatsHandler,
	documentH *handler.DocumentHandler,
	batchH *handler.BatchHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.GET("/stats", statsH.GetStats)

	documents := v1.Group("/documents")
	documents.POST("", documentH.Intake)
	documents.GET("", documentH.List)
	documents.GET("/:id", documentH.GetByID)

	batches := v1.Group("/batches")
	batches.GET("/:batch/documents", documentH.ListByBatch)
	batches.GET("/:batch/export", batchH.Export)
	batches.POST("/:batch/archive", batchH.Archive)

	return r
}
