package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/building-health-pipeline/internal/services"
)

// BuildingsHandler serves scored buildings from the latest batch run.
type BuildingsHandler struct {
	batch *services.BatchResult
}

// NewBuildingsHandler creates a handler over a finished batch run.
func NewBuildingsHandler(batch *services.BatchResult) *BuildingsHandler {
	return &BuildingsHandler{batch: batch}
}

// buildingSummary is the list-view projection of a report.
type buildingSummary struct {
	Rank            int     `json:"rank"`
	BuildingID      string  `json:"building_id"`
	BuildingName    string  `json:"building_name"`
	FinancialScore  float64 `json:"financial_score"`
	StructuralScore float64 `json:"structural_score"`
	PeopleScore     float64 `json:"people_score"`
	BHI             float64 `json:"bhi"`
	Color           string  `json:"color"`
	ComplianceScore float64 `json:"compliance_score"`
}

// GetBuildings returns every scored building in ranked order.
func (h *BuildingsHandler) GetBuildings(c *gin.Context) {
	summaries := make([]buildingSummary, len(h.batch.Reports))
	for i, r := range h.batch.Reports {
		summaries[i] = buildingSummary{
			Rank:            i + 1,
			BuildingID:      r.BuildingID,
			BuildingName:    r.BuildingName,
			FinancialScore:  r.FinancialScore,
			StructuralScore: r.StructuralScore,
			PeopleScore:     r.PeopleScore,
			BHI:             r.BHI,
			Color:           r.Color,
			ComplianceScore: r.ComplianceScore,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":    h.batch.RunID,
		"buildings": summaries,
		"skipped":   h.batch.Skipped,
		"timestamp": time.Now(),
	})
}

// GetBuilding returns the full report for one building.
func (h *BuildingsHandler) GetBuilding(c *gin.Context) {
	buildingID := c.Param("id")

	report, ok := h.batch.ReportFor(buildingID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":    h.batch.RunID,
		"report":    report,
		"timestamp": time.Now(),
	})
}

// GetBuildingCompliance returns one building's compliance outcomes.
func (h *BuildingsHandler) GetBuildingCompliance(c *gin.Context) {
	buildingID := c.Param("id")

	report, ok := h.batch.ReportFor(buildingID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"building_id":      report.BuildingID,
		"building_name":    report.BuildingName,
		"compliance_score": report.ComplianceScore,
		"results":          report.ComplianceResults,
		"timestamp":        time.Now(),
	})
}
