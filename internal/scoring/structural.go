package scoring

import (
	"math"
	"strings"

	"github.com/ajharbinger/building-health-pipeline/internal/models"
)

// StructuralDetails carries the named metrics behind a structural score.
type StructuralDetails struct {
	BuildingAge        int    `json:"building_age"`
	AuditRating        string `json:"audit_rating"`
	OpenIssues         int    `json:"open_issues"`
	HighSeverityIssues int    `json:"high_severity_issues"`
}

// StructuralHealth scores a building's physical condition from its age,
// audit rating and open repair log. repairs are the building's own rows.
func (e *Engine) StructuralHealth(b models.Building, repairs []models.Repair) (float64, StructuralDetails) {
	// Age score: older buildings are penalized; unknown year built scores 0.
	age := 0
	ageScore := 0.0
	if b.YearBuilt > 0 {
		age = e.buildingAge(b.YearBuilt)
		ageScore = math.Max(0, 100-float64(age)*1.5)
	}

	// Audit rating score; unknown or missing ratings score 0.
	ratingScore := 0.0
	if b.StructuralAuditRating != "" {
		ratingScore = AuditRatingScores[strings.ToUpper(b.StructuralAuditRating)]
	}

	// Repair score: open issues cost 5 each, high-severity open issues a
	// further 20 each.
	openIssues := 0
	highSeverity := 0
	for _, r := range repairs {
		if !r.IsOpen() {
			continue
		}
		openIssues++
		if r.Severity == models.SeverityHigh {
			highSeverity++
		}
	}
	repairScore := math.Max(0, 100-float64(openIssues)*5-float64(highSeverity)*20)

	score := ageScore*weightAge +
		ratingScore*weightAuditRating +
		repairScore*weightRepairs

	details := StructuralDetails{
		BuildingAge:        age,
		AuditRating:        b.StructuralAuditRating,
		OpenIssues:         openIssues,
		HighSeverityIssues: highSeverity,
	}
	return clamp(score), details
}
