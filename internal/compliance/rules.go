package compliance

import (
	"fmt"
	"math"
	"time"

	"github.com/ajharbinger/building-health-pipeline/internal/models"
	"github.com/ajharbinger/building-health-pipeline/internal/scoring"
)

// fireSafety passes when the last fire-safety inspection is at most a year
// old. A missing or unparseable date fails with an explanatory detail; a
// future-dated inspection also fails.
func (ev *Evaluator) fireSafety(b models.Building, _ map[string]float64, _ scoring.FinancialDetails) (bool, string, error) {
	if b.LastFireSafety == "" {
		return false, "No fire safety inspection date found.", nil
	}
	inspected, err := models.ParseDate(b.LastFireSafety)
	if err != nil {
		return false, fmt.Sprintf("Invalid date format: %s", b.LastFireSafety), nil
	}
	days := daysSince(ev.now, inspected)
	passed := days >= 0 && days <= 365
	details := fmt.Sprintf("Last inspection: %s (%d days ago)", inspected.Format("2006-01-02"), days)
	return passed, details, nil
}

// structuralAudit passes when the last annual inspection falls within the
// required interval: yearly for buildings older than 15 years, every three
// years otherwise.
func (ev *Evaluator) structuralAudit(b models.Building, _ map[string]float64, _ scoring.FinancialDetails) (bool, string, error) {
	if b.LastAnnualInspection == "" {
		return false, "No structural audit date found.", nil
	}
	audited, err := models.ParseDate(b.LastAnnualInspection)
	if err != nil {
		return false, fmt.Sprintf("Invalid date format: %s", b.LastAnnualInspection), nil
	}

	age := 0
	if b.YearBuilt > 0 {
		age = ev.now.Year() - b.YearBuilt
	}
	requiredDays := 365 * 3
	if age > 15 {
		requiredDays = 365
	}

	days := daysSince(ev.now, audited)
	passed := days >= 0 && days <= requiredDays
	details := fmt.Sprintf("Last audit: %s (%d days ago). Required every %d days.",
		audited.Format("2006-01-02"), days, requiredDays)
	return passed, details, nil
}

// reserveFund passes when the building's reserve ratio meets the rule's
// min_ratio parameter. A rule without the parameter is a configuration
// error, reported as such.
func reserveFund(_ models.Building, params map[string]float64, fin scoring.FinancialDetails) (bool, string, error) {
	target, ok := params["min_ratio"]
	if !ok {
		return false, "", fmt.Errorf("rule parameter min_ratio missing")
	}
	passed := fin.ReserveRatio >= target
	details := fmt.Sprintf("Current Ratio: %.2f, Target: %.2f", fin.ReserveRatio, target)
	return passed, details, nil
}

// wasteSegregation passes when the society has waste segregation in place.
// Textual flags are normalized to booleans at ingestion.
func wasteSegregation(b models.Building, _ map[string]float64, _ scoring.FinancialDetails) (bool, string, error) {
	return b.WasteSegregationImplemented, "Based on society records.", nil
}

// sewageSystem passes when the sewage system holds municipal approval.
func sewageSystem(b models.Building, _ map[string]float64, _ scoring.FinancialDetails) (bool, string, error) {
	return b.SewageSystemApproved, "Based on municipal approval records.", nil
}

// daysSince returns whole days elapsed from t to now, flooring so any
// future t is negative even within the same 24h window.
func daysSince(now, t time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}
