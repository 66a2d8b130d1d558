package repository

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/ajharbinger/building-health-pipeline/internal/errors"
	"github.com/ajharbinger/building-health-pipeline/internal/logger"
	"github.com/ajharbinger/building-health-pipeline/internal/models"
	"github.com/ajharbinger/building-health-pipeline/pkg/config"
)

// FileStore loads the dataset from CSV tables and a rules JSON file.
// Missing numeric cells parse to zero and textual booleans are normalized
// at this boundary so nothing downstream re-validates raw strings.
type FileStore struct {
	cfg *config.Config
	log logger.Logger
}

// NewFileStore creates a store over the configured file paths.
func NewFileStore(cfg *config.Config, log logger.Logger) *FileStore {
	return &FileStore{cfg: cfg, log: log}
}

// Load reads all four tables and the rule set. A missing buildings file or
// rules file is fatal; the supporting tables load as empty when absent.
func (s *FileStore) Load() (*Dataset, error) {
	buildings, err := s.loadBuildings()
	if err != nil {
		return nil, err
	}
	rules, err := s.loadRules()
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Buildings: buildings, Rules: rules}
	ds.Residents = loadOptional(s, s.cfg.ResidentsCSV, "residents", parseResident)
	ds.Transactions = loadOptional(s, s.cfg.TransactionsCSV, "transactions", parseTransaction)
	ds.Repairs = loadOptional(s, s.cfg.RepairsCSV, "repairs", parseRepair)

	s.log.Info("dataset loaded",
		"buildings", len(ds.Buildings),
		"residents", len(ds.Residents),
		"transactions", len(ds.Transactions),
		"repairs", len(ds.Repairs),
		"rules", len(ds.Rules))
	return ds, nil
}

func (s *FileStore) loadBuildings() ([]models.Building, error) {
	rows, err := readCSV(s.cfg.BuildingsCSV)
	if err != nil {
		return nil, apperrors.DataError("failed to load buildings table", err).
			WithDetails(s.cfg.BuildingsCSV)
	}
	buildings := make([]models.Building, 0, len(rows))
	for _, row := range rows {
		buildings = append(buildings, parseBuilding(row))
	}
	return buildings, nil
}

func (s *FileStore) loadRules() ([]models.ComplianceRule, error) {
	data, err := os.ReadFile(s.cfg.RulesJSON)
	if err != nil {
		return nil, apperrors.DataError("failed to load rules file", err).
			WithDetails(s.cfg.RulesJSON)
	}
	var set models.RuleSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, apperrors.DataError("failed to parse rules file", err).
			WithDetails(s.cfg.RulesJSON)
	}
	return set.Rules, nil
}

// loadOptional reads a supporting table, logging and returning empty when
// the file is missing or malformed.
func loadOptional[T any](s *FileStore, path, name string, parse func(row map[string]string) T) []T {
	rows, err := readCSV(path)
	if err != nil {
		s.log.Warn("supporting table unavailable, continuing without it",
			"table", name, "path", path, "error", err)
		return nil
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, parse(row))
	}
	return out
}

// readCSV reads a whole CSV file into header-keyed rows. Header names are
// lowercased and trimmed so column order and casing in source files do not
// matter.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseBuilding(row map[string]string) models.Building {
	return models.Building{
		BuildingID:                  row["building_id"],
		BuildingName:                row["building_name"],
		YearBuilt:                   atoi(row["year_built"]),
		TotalFlats:                  atoi(row["total_flats"]),
		CurrentFund:                 atof(row["current_fund"]),
		ReserveFund:                 atof(row["reserve_fund"]),
		MonthlyMaintenanceCollected: atof(row["monthly_maintenance_collected"]),
		MonthlyMaintenanceExpected:  atof(row["monthly_maintenance_expected"]),
		StructuralAuditRating:       row["structural_audit_rating"],
		LastAnnualInspection:        row["last_annual_inspection"],
		LastFireSafety:              row["last_fire_safety"],
		Latitude:                    atof(row["latitude"]),
		Longitude:                   atof(row["longitude"]),
		WasteSegregationImplemented: models.TruthyString(row["waste_segregation_implemented"]),
		SewageSystemApproved:        models.TruthyString(row["sewage_system_approved"]),
	}
}

func parseResident(row map[string]string) models.Resident {
	return models.Resident{
		BuildingID:           row["building_id"],
		FlatNumber:           row["flat_number"],
		OwnerOrTenant:        row["owner_or_tenant"],
		AvgMonthlyIncome:     row["avg_monthly_income"],
		EducationLevel:       row["education_level"],
		OccupantCount:        atoi(row["occupant_count"]),
		LastPaymentDate:      row["last_payment_date"],
		MaintenanceDueAmount: atof(row["maintenance_due_amount"]),
	}
}

func parseTransaction(row map[string]string) models.Transaction {
	return models.Transaction{
		BuildingID:      row["building_id"],
		Date:            row["date"],
		TransactionType: row["transaction_type"],
		Category:        row["category"],
		Amount:          atof(row["amount"]),
		Notes:           row["notes"],
	}
}

func parseRepair(row map[string]string) models.Repair {
	return models.Repair{
		BuildingID:    row["building_id"],
		IssueType:     row["issue_type"],
		Area:          row["area"],
		Severity:      row["severity"],
		Status:        row["status"],
		EstimatedCost: atof(row["estimated_cost"]),
	}
}

// atoi parses an int cell, tolerating float formatting; bad cells read as 0.
func atoi(s string) int {
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// atof parses a float cell; bad cells read as 0.
func atof(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
