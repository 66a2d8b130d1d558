package services

import (
	"errors"
	"math"
	"testing"
	"time"

	apperrors "github.com/ajharbinger/building-health-pipeline/internal/errors"
	"github.com/ajharbinger/building-health-pipeline/internal/logger"
	"github.com/ajharbinger/building-health-pipeline/internal/models"
	"github.com/ajharbinger/building-health-pipeline/internal/repository"
	"github.com/ajharbinger/building-health-pipeline/internal/scoring"
)

var testNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func standardRules() []models.ComplianceRule {
	return []models.ComplianceRule{
		{ID: models.RuleFireSafety, Description: "Annual fire safety inspection"},
		{ID: models.RuleStructuralAudit, Description: "Periodic structural audit"},
		{ID: models.RuleReserveFund, Description: "Minimum reserve fund", Parameters: map[string]float64{"min_ratio": 0.8}},
		{ID: models.RuleWasteSegregation, Description: "Waste segregation"},
		{ID: models.RuleSewageSystem, Description: "Approved sewage system"},
	}
}

func TestProcessEndToEnd(t *testing.T) {
	ds := &repository.Dataset{
		Buildings: []models.Building{{
			BuildingID:                  "B001",
			BuildingName:                "Sunrise Towers",
			YearBuilt:                   2005,
			TotalFlats:                  50,
			CurrentFund:                 300000,
			ReserveFund:                 250000,
			MonthlyMaintenanceCollected: 90000,
			MonthlyMaintenanceExpected:  100000,
			StructuralAuditRating:       "B",
			LastFireSafety:              "2025-01-10",
			LastAnnualInspection:        "2025-02-01",
			WasteSegregationImplemented: true,
			SewageSystemApproved:        true,
		}},
		Repairs: []models.Repair{
			{BuildingID: "B001", Severity: models.SeverityLow, Status: models.RepairOpen},
		},
		Rules: standardRules(),
	}

	result, err := NewBatchProcessorAt(testNow, logger.NopLogger{}).Process(ds)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.RunID == "" {
		t.Error("expected a run id")
	}
	if len(result.Reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(result.Reports))
	}

	r := result.Reports[0]
	// 0.4*90 + 0.4*100 + 0.2*0
	if math.Abs(r.FinancialScore-76) > 1e-9 {
		t.Errorf("financial = %v, want 76", r.FinancialScore)
	}
	// 0.2*70 + 0.5*80 + 0.3*95
	if math.Abs(r.StructuralScore-82.5) > 1e-9 {
		t.Errorf("structural = %v, want 82.5", r.StructuralScore)
	}
	if r.PeopleScore != 0 {
		t.Errorf("people = %v, want 0 without residents", r.PeopleScore)
	}
	// 0.5*76 + 0.3*82.5 + 0.2*0
	if math.Abs(r.BHI-62.75) > 1e-9 {
		t.Errorf("BHI = %v, want 62.75", r.BHI)
	}
	if r.Color != scoring.ColorOrange {
		t.Errorf("color = %q, want orange", r.Color)
	}
	// All five rules pass for this building.
	if r.ComplianceScore != 100 {
		t.Errorf("compliance = %v, want 100", r.ComplianceScore)
	}
	if len(r.ComplianceResults) != 5 {
		t.Errorf("expected 5 rule results, got %d", len(r.ComplianceResults))
	}
}

func TestProcessOrdering(t *testing.T) {
	mk := func(id string, rating string) models.Building {
		return models.Building{BuildingID: id, YearBuilt: 2020, TotalFlats: 10, StructuralAuditRating: rating}
	}
	ds := &repository.Dataset{
		Buildings: []models.Building{
			mk("B003", "C"),
			mk("B001", "A"),
			mk("B002", "A"),
		},
		Rules: standardRules(),
	}

	result, err := NewBatchProcessorAt(testNow, logger.NopLogger{}).Process(ds)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	got := []string{result.Reports[0].BuildingID, result.Reports[1].BuildingID, result.Reports[2].BuildingID}
	// Highest BHI first; identical scores fall back to id order.
	want := []string{"B001", "B002", "B003"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestProcessSkipsMissingID(t *testing.T) {
	ds := &repository.Dataset{
		Buildings: []models.Building{
			{BuildingID: "", BuildingName: "Orphan"},
			{BuildingID: "B001", YearBuilt: 2020, TotalFlats: 10},
		},
		Rules: standardRules(),
	}

	result, err := NewBatchProcessorAt(testNow, logger.NopLogger{}).Process(ds)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(result.Reports) != 1 {
		t.Errorf("expected 1 report, got %d", len(result.Reports))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "missing building id" {
		t.Errorf("skipped = %+v", result.Skipped)
	}
}

func TestProcessEmptyInputs(t *testing.T) {
	processor := NewBatchProcessorAt(testNow, logger.NopLogger{})

	_, err := processor.Process(&repository.Dataset{Rules: standardRules()})
	if err == nil {
		t.Fatal("expected error for empty buildings")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeInvalidInput {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}

	_, err = processor.Process(&repository.Dataset{Buildings: []models.Building{{BuildingID: "B001"}}})
	if err == nil {
		t.Fatal("expected error for empty rule set")
	}
}

func TestReportFor(t *testing.T) {
	result := &BatchResult{Reports: []BuildingReport{{BuildingID: "B001", BHI: 70}}}
	if _, ok := result.ReportFor("B001"); !ok {
		t.Error("expected report for B001")
	}
	if _, ok := result.ReportFor("B404"); ok {
		t.Error("expected no report for unknown id")
	}
	if got := result.BHIByBuilding()["B001"]; got != 70 {
		t.Errorf("BHIByBuilding = %v, want 70", got)
	}
}
