package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/building-health-pipeline/internal/ml"
	"github.com/ajharbinger/building-health-pipeline/internal/services"
)

// InsightsHandler serves model training results and per-building
// predictions. training may be nil when the startup training run failed;
// every endpoint then reports the models as unavailable.
type InsightsHandler struct {
	training *services.TrainingOutput
}

// NewInsightsHandler creates a handler over a finished training run.
func NewInsightsHandler(training *services.TrainingOutput) *InsightsHandler {
	return &InsightsHandler{training: training}
}

// GetInsights returns training metrics, feature importances and the class
// distribution of the latest training run.
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	if h.training == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Models not trained"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   h.training.Results,
		"timestamp": time.Now(),
	})
}

// Predict returns the predicted risk category and health index for one
// building from the trained models.
func (h *InsightsHandler) Predict(c *gin.Context) {
	if h.training == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Models not trained"})
		return
	}

	buildingID := c.Param("id")
	if _, ok := h.training.Features.VectorOf(buildingID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
		return
	}

	risk := h.training.PredictRisk(buildingID)
	response := gin.H{
		"building_id": buildingID,
		"risk":        risk,
		"timestamp":   time.Now(),
	}
	if risk == ml.RiskUnknown {
		response["risk_note"] = h.training.Results.ClassifierSkipReason
	}
	if predicted, ok := h.training.PredictBHI(buildingID); ok {
		response["predicted_bhi"] = predicted
	} else {
		response["bhi_note"] = h.training.Results.RegressorSkipReason
	}

	c.JSON(http.StatusOK, response)
}
