package features

import (
	"math"
	"strings"
	"time"

	"github.com/ajharbinger/building-health-pipeline/internal/models"
	"github.com/ajharbinger/building-health-pipeline/internal/scoring"
)

// Columns is the fixed feature column order fed to the model trainer.
var Columns = []string{
	"age",
	"total_flats",
	"total_residents",
	"current_fund",
	"reserve_fund",
	"total_funds",
	"monthly_collected",
	"monthly_expected",
	"collection_rate",
	"reserve_ratio",
	"audit_rating_score",
	"num_repairs",
	"num_open_issues",
	"num_high_severity",
	"total_repair_cost",
	"payment_punctuality",
	"owner_ratio",
	"avg_dues",
	"total_dues",
	"avg_income_score",
	"avg_edu_score",
	"total_expenses",
	"total_income",
	"waste_segregation",
	"sewage_approved",
	"expense_security_salaries",
	"expense_utilities",
	"expense_repairs",
	"expense_amenities",
}

// Vector is one building's named numeric features.
type Vector map[string]float64

// Row pairs a building id with its feature vector.
type Row struct {
	BuildingID string `json:"building_id"`
	Features   Vector `json:"features"`
}

// Table is the full feature set in fixed column order.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Matrix renders the table as a dense float matrix in column order.
// Features absent from a vector read as 0.
func (t Table) Matrix() [][]float64 {
	m := make([][]float64, len(t.Rows))
	for i, row := range t.Rows {
		m[i] = row.Values(t.Columns)
	}
	return m
}

// VectorOf returns the feature vector for a building id.
func (t Table) VectorOf(buildingID string) (Vector, bool) {
	for _, row := range t.Rows {
		if row.BuildingID == buildingID {
			return row.Features, true
		}
	}
	return nil, false
}

// Values renders a row as a float slice in the given column order.
func (r Row) Values(columns []string) []float64 {
	vals := make([]float64, len(columns))
	for i, col := range columns {
		vals[i] = r.Features[col]
	}
	return vals
}

// Builder derives feature vectors from the raw tables. Like the scoring
// engine it is anchored at a reference time for age math.
type Builder struct {
	now time.Time
}

// NewBuilder creates a builder anchored at the wall clock.
func NewBuilder() *Builder {
	return NewBuilderAt(time.Now())
}

// NewBuilderAt creates a builder anchored at a fixed reference time.
func NewBuilderAt(now time.Time) *Builder {
	return &Builder{now: now}
}

// Build derives one feature row per building with a non-empty id. The row
// indexes are the precomputed per-building groupings; buildings absent from
// them produce zeroed resident/transaction/repair features, never missing
// markers.
func (b *Builder) Build(
	buildings []models.Building,
	residents map[string][]models.Resident,
	transactions map[string][]models.Transaction,
	repairs map[string][]models.Repair,
) Table {
	table := Table{Columns: Columns}
	for _, bld := range buildings {
		if bld.BuildingID == "" {
			continue
		}
		table.Rows = append(table.Rows, Row{
			BuildingID: bld.BuildingID,
			Features:   b.buildVector(bld, residents[bld.BuildingID], transactions[bld.BuildingID], repairs[bld.BuildingID]),
		})
	}
	return table
}

func (b *Builder) buildVector(bld models.Building, residents []models.Resident, transactions []models.Transaction, repairs []models.Repair) Vector {
	age := 0
	if bld.YearBuilt > 0 {
		age = b.now.Year() - bld.YearBuilt
	}

	totalFunds := bld.CurrentFund + bld.ReserveFund
	collectionRate := 0.0
	if bld.MonthlyMaintenanceExpected > 0 {
		collectionRate = bld.MonthlyMaintenanceCollected / bld.MonthlyMaintenanceExpected * 100
	}
	requiredReserve := 1.0
	if bld.TotalFlats > 0 {
		requiredReserve = float64(bld.TotalFlats) * scoring.MinReservePerFlatPerYear * math.Max(1, float64(age))
	}
	reserveRatio := totalFunds / requiredReserve

	ratingScore := 0.0
	if bld.StructuralAuditRating != "" {
		ratingScore = scoring.AuditRatingScores[strings.ToUpper(bld.StructuralAuditRating)]
	}

	numOpen, numHighSeverity := 0, 0
	totalRepairCost := 0.0
	for _, r := range repairs {
		totalRepairCost += r.EstimatedCost
		if r.IsOpen() {
			numOpen++
			if r.Severity == models.SeverityHigh {
				numHighSeverity++
			}
		}
	}

	punctuality, ownerRatio := 0.0, 0.0
	avgDues, totalDues := 0.0, 0.0
	avgIncome, avgEdu := 0.0, 0.0
	if len(residents) > 0 {
		clear, owners := 0, 0
		var incomeSum, eduSum float64
		for _, r := range residents {
			if r.MaintenanceDueAmount == 0 {
				clear++
			}
			if r.IsOwner() {
				owners++
			}
			totalDues += r.MaintenanceDueAmount
			incomeSum += scoring.IncomeScores[r.AvgMonthlyIncome]
			eduSum += scoring.EducationScores[r.EducationLevel]
		}
		if bld.TotalFlats > 0 {
			punctuality = float64(clear) / float64(bld.TotalFlats) * 100
			ownerRatio = float64(owners) / float64(bld.TotalFlats) * 100
		}
		avgDues = totalDues / float64(len(residents))
		avgIncome = incomeSum / float64(len(residents))
		avgEdu = eduSum / float64(len(residents))
	}

	totalExpenses, totalIncome := 0.0, 0.0
	expenseByCategory := make(map[string]float64)
	for _, t := range transactions {
		switch t.TransactionType {
		case models.TransactionExpense:
			totalExpenses += t.Amount
			expenseByCategory[t.Category] += t.Amount
		case models.TransactionIncome:
			totalIncome += t.Amount
		}
	}

	v := Vector{
		"age":                 float64(age),
		"total_flats":         float64(bld.TotalFlats),
		"total_residents":     float64(len(residents)),
		"current_fund":        bld.CurrentFund,
		"reserve_fund":        bld.ReserveFund,
		"total_funds":         totalFunds,
		"monthly_collected":   bld.MonthlyMaintenanceCollected,
		"monthly_expected":    bld.MonthlyMaintenanceExpected,
		"collection_rate":     collectionRate,
		"reserve_ratio":       reserveRatio,
		"audit_rating_score":  ratingScore,
		"num_repairs":         float64(len(repairs)),
		"num_open_issues":     float64(numOpen),
		"num_high_severity":   float64(numHighSeverity),
		"total_repair_cost":   totalRepairCost,
		"payment_punctuality": punctuality,
		"owner_ratio":         ownerRatio,
		"avg_dues":            avgDues,
		"total_dues":          totalDues,
		"avg_income_score":    avgIncome,
		"avg_edu_score":       avgEdu,
		"total_expenses":      totalExpenses,
		"total_income":        totalIncome,
		"waste_segregation":   boolFeature(bld.WasteSegregationImplemented),
		"sewage_approved":     boolFeature(bld.SewageSystemApproved),
	}
	for _, category := range models.KnownExpenseCategories {
		key := "expense_" + strings.ReplaceAll(strings.ToLower(category), " ", "_")
		v[key] = expenseByCategory[category]
	}
	return v
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
