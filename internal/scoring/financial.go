package scoring

import (
	"math"

	"github.com/ajharbinger/building-health-pipeline/internal/models"
)

// FinancialDetails carries the named metrics behind a financial score.
// ReserveRatio is also consumed by the RESERVE_FUND compliance rule.
type FinancialDetails struct {
	CollectionRate      float64            `json:"collection_rate"`
	TotalFunds          float64            `json:"total_funds"`
	RequiredReserve     float64            `json:"required_reserve"`
	ReserveRatio        float64            `json:"reserve_ratio"`
	PaymentPunctuality  float64            `json:"payment_punctuality"`
	ExpenseDistribution map[string]float64 `json:"expense_distribution"`
}

// FinancialHealth scores a building's finances from its own funds plus its
// residents' dues and transaction history. transactions and residents are
// the building's own rows; empty slices degrade the affected components to 0.
func (e *Engine) FinancialHealth(b models.Building, transactions []models.Transaction, residents []models.Resident) (float64, FinancialDetails) {
	// Collection rate: collected vs expected monthly maintenance. Not capped
	// here; only the composite is clamped.
	collectionRate := 0.0
	if b.MonthlyMaintenanceExpected > 0 {
		collectionRate = b.MonthlyMaintenanceCollected / b.MonthlyMaintenanceExpected * 100
	}

	// Reserve ratio: held funds vs an age- and size-scaled target.
	totalFunds := b.CurrentFund + b.ReserveFund
	requiredReserve := 1.0
	reserveRatio := 0.0
	if b.YearBuilt > 0 && b.TotalFlats > 0 {
		age := e.buildingAge(b.YearBuilt)
		requiredReserve = float64(b.TotalFlats) * MinReservePerFlatPerYear * math.Max(1, float64(age))
		if requiredReserve > 0 {
			reserveRatio = totalFunds / requiredReserve
		}
	}
	reserveRatioScore := math.Min(100, reserveRatio*100)

	// Payment punctuality: share of flats with zero outstanding dues.
	punctuality := paymentPunctuality(residents, b.TotalFlats)

	// Expense distribution, detail-only.
	expenseDist := make(map[string]float64)
	for _, t := range transactions {
		if t.TransactionType == models.TransactionExpense {
			expenseDist[t.Category] += t.Amount
		}
	}

	score := collectionRate*weightCollectionRate +
		reserveRatioScore*weightReserveRatio +
		punctuality*weightFinPunctuality

	details := FinancialDetails{
		CollectionRate:      collectionRate,
		TotalFunds:          totalFunds,
		RequiredReserve:     requiredReserve,
		ReserveRatio:        reserveRatio,
		PaymentPunctuality:  punctuality,
		ExpenseDistribution: expenseDist,
	}
	return clamp(score), details
}

// paymentPunctuality is the share of flats with exactly zero dues, against
// the building's total flat count. Zero flats or no residents scores 0.
func paymentPunctuality(residents []models.Resident, totalFlats int) float64 {
	if len(residents) == 0 || totalFlats <= 0 {
		return 0
	}
	clear := 0
	for _, r := range residents {
		if r.MaintenanceDueAmount == 0 {
			clear++
		}
	}
	return float64(clear) / float64(totalFlats) * 100
}
