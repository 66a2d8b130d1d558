package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/ajharbinger/building-health-pipeline/internal/errors"
	"github.com/ajharbinger/building-health-pipeline/internal/logger"
)

// ExportService writes a batch result to an Excel workbook: one sheet of
// ranked scores, one sheet of per-building compliance outcomes.
type ExportService struct {
	log logger.Logger
}

// NewExportService creates an export service.
func NewExportService(log logger.Logger) *ExportService {
	return &ExportService{log: log}
}

var rankingHeaders = []string{
	"Rank", "Building ID", "Building Name",
	"Financial Score", "Structural Score", "People Score",
	"BHI", "Health Tier", "Compliance Score",
}

var complianceHeaders = []string{
	"Building ID", "Building Name", "Rule", "Status", "Details",
}

// Export writes the batch result to path. Reports are written in their
// ranked order.
func (s *ExportService) Export(path string, result *BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const rankSheet = "Rankings"
	const complianceSheet = "Compliance"

	f.SetSheetName("Sheet1", rankSheet)
	if _, err := f.NewSheet(complianceSheet); err != nil {
		return apperrors.ExportError("failed to create compliance sheet", err)
	}

	if err := writeRow(f, rankSheet, 1, toCells(rankingHeaders)); err != nil {
		return err
	}
	for i, report := range result.Reports {
		cells := []interface{}{
			i + 1,
			report.BuildingID,
			report.BuildingName,
			round2(report.FinancialScore),
			round2(report.StructuralScore),
			round2(report.PeopleScore),
			round2(report.BHI),
			report.Color,
			round2(report.ComplianceScore),
		}
		if err := writeRow(f, rankSheet, i+2, cells); err != nil {
			return err
		}
	}

	if err := writeRow(f, complianceSheet, 1, toCells(complianceHeaders)); err != nil {
		return err
	}
	rowNum := 2
	for _, report := range result.Reports {
		for _, rr := range report.ComplianceResults {
			cells := []interface{}{
				report.BuildingID,
				report.BuildingName,
				rr.Rule,
				string(rr.Status),
				rr.Details,
			}
			if err := writeRow(f, complianceSheet, rowNum, cells); err != nil {
				return err
			}
			rowNum++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.ExportError("failed to save workbook", err).WithDetails(path)
	}
	s.log.Info("batch result exported", "path", path, "buildings", len(result.Reports))
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for col, v := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return apperrors.ExportError("invalid cell coordinates", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return apperrors.ExportError(fmt.Sprintf("failed to write cell %s", cell), err)
		}
	}
	return nil
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
