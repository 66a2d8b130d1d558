package services

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ajharbinger/building-health-pipeline/internal/compliance"
	"github.com/ajharbinger/building-health-pipeline/internal/logger"
)

func TestExport(t *testing.T) {
	result := &BatchResult{
		RunID: "test-run",
		Reports: []BuildingReport{{
			BuildingID:      "B001",
			BuildingName:    "Sunrise Towers",
			FinancialScore:  76,
			StructuralScore: 82.5,
			BHI:             62.75,
			Color:           "orange",
			ComplianceScore: 80,
			ComplianceResults: []compliance.RuleResult{
				{Rule: "Annual fire safety inspection", Status: compliance.StatusPass, Details: "ok"},
			},
		}},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := NewExportService(logger.NopLogger{}).Export(path, result); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Rankings", "A1"); got != "Rank" {
		t.Errorf("A1 = %q, want Rank", got)
	}
	if got, _ := f.GetCellValue("Rankings", "B2"); got != "B001" {
		t.Errorf("B2 = %q, want B001", got)
	}
	if got, _ := f.GetCellValue("Compliance", "D2"); got != "Pass" {
		t.Errorf("Compliance D2 = %q, want Pass", got)
	}
}
