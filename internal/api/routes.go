package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/building-health-pipeline/internal/services"
)

// SetupRoutes configures all API routes over a finished batch run and
// training run. The server is a read-only view of those results; a fresh
// run means a restart.
func SetupRoutes(r *gin.Engine, batch *services.BatchResult, training *services.TrainingOutput) {
	buildingsHandler := NewBuildingsHandler(batch)
	insightsHandler := NewInsightsHandler(training)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"run_id":    batch.RunID,
			"buildings": len(batch.Reports),
			"timestamp": time.Now(),
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/buildings", buildingsHandler.GetBuildings)
		v1.GET("/buildings/:id", buildingsHandler.GetBuilding)
		v1.GET("/buildings/:id/compliance", buildingsHandler.GetBuildingCompliance)

		v1.GET("/ml/insights", insightsHandler.GetInsights)
		v1.GET("/ml/predict/:id", insightsHandler.Predict)
	}
}
