package models

// Transaction types.
const (
	TransactionIncome  = "Income"
	TransactionExpense = "Expense"
)

// Known expense categories tracked individually by the feature builder.
var KnownExpenseCategories = []string{
	"Security Salaries",
	"Utilities",
	"Repairs",
	"Amenities",
}

// Transaction is one income or expense entry for a building.
type Transaction struct {
	BuildingID      string  `json:"building_id"`
	Date            string  `json:"date"`
	TransactionType string  `json:"transaction_type"`
	Category        string  `json:"category"`
	Amount          float64 `json:"amount"`
	Notes           string  `json:"notes"`
}
