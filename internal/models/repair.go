package models

// Repair statuses and severities as recorded in the repairs table.
const (
	RepairOpen   = "Open"
	RepairClosed = "Closed"

	SeverityHigh   = "High"
	SeverityMedium = "Medium"
	SeverityLow    = "Low"
)

// Repair is one maintenance issue logged against a building.
type Repair struct {
	BuildingID    string  `json:"building_id"`
	IssueType     string  `json:"issue_type"`
	Area          string  `json:"area"`
	Severity      string  `json:"severity"`
	Status        string  `json:"status"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// IsOpen reports whether the issue is still unresolved.
func (r Repair) IsOpen() bool {
	return r.Status == RepairOpen
}
