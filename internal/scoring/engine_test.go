package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/ajharbinger/building-health-pipeline/internal/models"
)

var testNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFinancialHealth(t *testing.T) {
	engine := NewEngineAt(testNow)

	// 90% collection, reserve above target, no residents.
	b := models.Building{
		BuildingID:                  "B001",
		YearBuilt:                   2005,
		TotalFlats:                  50,
		CurrentFund:                 300000,
		ReserveFund:                 250000,
		MonthlyMaintenanceCollected: 90000,
		MonthlyMaintenanceExpected:  100000,
	}

	score, details := engine.FinancialHealth(b, nil, nil)

	if !almostEqual(details.CollectionRate, 90) {
		t.Errorf("collection rate = %v, want 90", details.CollectionRate)
	}
	// 50 flats * 500 * 20 years = 500000 target; 550000 held.
	if !almostEqual(details.RequiredReserve, 500000) {
		t.Errorf("required reserve = %v, want 500000", details.RequiredReserve)
	}
	if !almostEqual(details.ReserveRatio, 1.1) {
		t.Errorf("reserve ratio = %v, want 1.1", details.ReserveRatio)
	}
	// 0.4*90 + 0.4*100 + 0.2*0
	if !almostEqual(score, 76) {
		t.Errorf("financial score = %v, want 76", score)
	}
}

func TestFinancialHealthZeroDenominators(t *testing.T) {
	engine := NewEngineAt(testNow)

	score, details := engine.FinancialHealth(models.Building{BuildingID: "B002"}, nil, nil)
	if details.CollectionRate != 0 {
		t.Errorf("collection rate = %v, want 0 when nothing expected", details.CollectionRate)
	}
	if details.ReserveRatio != 0 {
		t.Errorf("reserve ratio = %v, want 0 when year/flats unknown", details.ReserveRatio)
	}
	if details.RequiredReserve != 1 {
		t.Errorf("required reserve = %v, want 1 when year/flats unknown", details.RequiredReserve)
	}
	if score != 0 {
		t.Errorf("financial score = %v, want 0", score)
	}
}

func TestFinancialHealthPunctuality(t *testing.T) {
	engine := NewEngineAt(testNow)

	b := models.Building{BuildingID: "B003", TotalFlats: 10}
	residents := make([]models.Resident, 0, 10)
	for i := 0; i < 8; i++ {
		residents = append(residents, models.Resident{BuildingID: "B003"})
	}
	residents = append(residents,
		models.Resident{BuildingID: "B003", MaintenanceDueAmount: 1500},
		models.Resident{BuildingID: "B003", MaintenanceDueAmount: 200},
	)

	_, details := engine.FinancialHealth(b, nil, residents)
	if !almostEqual(details.PaymentPunctuality, 80) {
		t.Errorf("punctuality = %v, want 80", details.PaymentPunctuality)
	}
}

func TestFinancialHealthExpenseDistribution(t *testing.T) {
	engine := NewEngineAt(testNow)

	transactions := []models.Transaction{
		{BuildingID: "B004", TransactionType: models.TransactionExpense, Category: "Utilities", Amount: 3000},
		{BuildingID: "B004", TransactionType: models.TransactionExpense, Category: "Utilities", Amount: 2000},
		{BuildingID: "B004", TransactionType: models.TransactionIncome, Category: "Maintenance", Amount: 9000},
	}
	_, details := engine.FinancialHealth(models.Building{BuildingID: "B004"}, transactions, nil)
	if !almostEqual(details.ExpenseDistribution["Utilities"], 5000) {
		t.Errorf("utilities expense = %v, want 5000", details.ExpenseDistribution["Utilities"])
	}
	if _, ok := details.ExpenseDistribution["Maintenance"]; ok {
		t.Error("income category must not appear in expense distribution")
	}
}

func TestStructuralHealthNewBuilding(t *testing.T) {
	engine := NewEngineAt(testNow)

	// 5 year old A-rated building, no repairs:
	// 0.2*92.5 + 0.5*100 + 0.3*100 = 98.5
	b := models.Building{BuildingID: "B005", YearBuilt: 2020, StructuralAuditRating: "A"}
	score, details := engine.StructuralHealth(b, nil)
	if !almostEqual(score, 98.5) {
		t.Errorf("structural score = %v, want 98.5", score)
	}
	if details.BuildingAge != 5 {
		t.Errorf("building age = %d, want 5", details.BuildingAge)
	}
}

func TestStructuralHealthWithRepairs(t *testing.T) {
	engine := NewEngineAt(testNow)

	// 20 years old, B rating, one open low-severity issue:
	// 0.2*70 + 0.5*80 + 0.3*95 = 82.5
	b := models.Building{BuildingID: "B001", YearBuilt: 2005, StructuralAuditRating: "B"}
	repairs := []models.Repair{
		{BuildingID: "B001", Severity: models.SeverityLow, Status: models.RepairOpen},
		{BuildingID: "B001", Severity: models.SeverityHigh, Status: models.RepairClosed},
	}
	score, details := engine.StructuralHealth(b, repairs)
	if !almostEqual(score, 82.5) {
		t.Errorf("structural score = %v, want 82.5", score)
	}
	if details.OpenIssues != 1 {
		t.Errorf("open issues = %d, want 1", details.OpenIssues)
	}
	if details.HighSeverityIssues != 0 {
		t.Errorf("high severity issues = %d, want 0; closed issues must not count", details.HighSeverityIssues)
	}
}

func TestStructuralHealthLowercaseRating(t *testing.T) {
	engine := NewEngineAt(testNow)

	b := models.Building{BuildingID: "B006", YearBuilt: 2020, StructuralAuditRating: "a"}
	score, _ := engine.StructuralHealth(b, nil)
	if !almostEqual(score, 98.5) {
		t.Errorf("lowercase rating must normalize; score = %v, want 98.5", score)
	}
}

func TestPeopleScoreNoResidents(t *testing.T) {
	engine := NewEngineAt(testNow)

	score, details := engine.PeopleScore(models.Building{BuildingID: "B007", TotalFlats: 20}, nil)
	if score != 0 {
		t.Errorf("people score = %v, want 0 with no residents", score)
	}
	if details != (PeopleDetails{}) {
		t.Errorf("details = %+v, want zero value", details)
	}
}

func TestPeopleScore(t *testing.T) {
	engine := NewEngineAt(testNow)

	// 10 owner flats, all paid, Medium income, Graduate education:
	// 0.5*100 + 0.2*100 + 0.3*(0.6*70+0.4*80) = 92.2
	b := models.Building{BuildingID: "B008", TotalFlats: 10}
	residents := make([]models.Resident, 10)
	for i := range residents {
		residents[i] = models.Resident{
			BuildingID:       "B008",
			OwnerOrTenant:    models.OccupancyOwner,
			AvgMonthlyIncome: "Medium",
			EducationLevel:   "Graduate",
		}
	}
	score, details := engine.PeopleScore(b, residents)
	if !almostEqual(score, 92.2) {
		t.Errorf("people score = %v, want 92.2", score)
	}
	if !almostEqual(details.AvgIncomeScore, 70) {
		t.Errorf("avg income score = %v, want 70", details.AvgIncomeScore)
	}
	if !almostEqual(details.AvgEducationScore, 80) {
		t.Errorf("avg education score = %v, want 80", details.AvgEducationScore)
	}
}

func TestCalculateBHI(t *testing.T) {
	// 0.5*90 + 0.3*70 + 0.2*60 = 78
	if got := CalculateBHI(90, 70, 60); !almostEqual(got, 78) {
		t.Errorf("BHI = %v, want 78", got)
	}
	if got := CalculateBHI(200, 200, 200); got != 100 {
		t.Errorf("BHI = %v, want clamp to 100", got)
	}
	if got := CalculateBHI(0, 0, 0); got != 0 {
		t.Errorf("BHI = %v, want 0", got)
	}
}

func TestBHIColor(t *testing.T) {
	cases := []struct {
		bhi  float64
		want string
	}{
		{95, ColorGreen},
		{80, ColorGreen},
		{79.99, ColorOrange},
		{50, ColorOrange},
		{49.99, ColorRed},
		{0, ColorRed},
	}
	for _, tc := range cases {
		if got := BHIColor(tc.bhi); got != tc.want {
			t.Errorf("BHIColor(%v) = %q, want %q", tc.bhi, got, tc.want)
		}
	}
}
