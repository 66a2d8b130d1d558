package models

// Owner/tenant flag values as they appear in the residents table.
const (
	OccupancyOwner  = "Owner"
	OccupancyTenant = "Tenant"
)

// Resident is one flat occupant record, keyed to a building by BuildingID.
// AvgMonthlyIncome and EducationLevel are categorical brackets
// (Low/Medium/High and High School/Graduate/Post-Graduate).
type Resident struct {
	BuildingID           string  `json:"building_id"`
	FlatNumber           string  `json:"flat_number"`
	OwnerOrTenant        string  `json:"owner_or_tenant"`
	AvgMonthlyIncome     string  `json:"avg_monthly_income"`
	EducationLevel       string  `json:"education_level"`
	OccupantCount        int     `json:"occupant_count"`
	LastPaymentDate      string  `json:"last_payment_date"`
	MaintenanceDueAmount float64 `json:"maintenance_due_amount"`
}

// IsOwner reports whether the record is flagged as an owner-occupied flat.
func (r Resident) IsOwner() bool {
	return r.OwnerOrTenant == OccupancyOwner
}
