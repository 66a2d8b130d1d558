package models

// Building represents one residential society building. Numeric fields
// default to zero and date/rating fields stay empty when the source row has
// no value; downstream scoring treats those as degraded inputs, never errors.
type Building struct {
	BuildingID                  string  `json:"building_id"`
	BuildingName                string  `json:"building_name"`
	YearBuilt                   int     `json:"year_built"`
	TotalFlats                  int     `json:"total_flats"`
	CurrentFund                 float64 `json:"current_fund"`
	ReserveFund                 float64 `json:"reserve_fund"`
	MonthlyMaintenanceCollected float64 `json:"monthly_maintenance_collected"`
	MonthlyMaintenanceExpected  float64 `json:"monthly_maintenance_expected"`
	StructuralAuditRating       string  `json:"structural_audit_rating"`
	LastAnnualInspection        string  `json:"last_annual_inspection"`
	LastFireSafety              string  `json:"last_fire_safety"`
	Latitude                    float64 `json:"latitude"`
	Longitude                   float64 `json:"longitude"`
	WasteSegregationImplemented bool    `json:"waste_segregation_implemented"`
	SewageSystemApproved        bool    `json:"sewage_system_approved"`
}

// DisplayName returns the building name, falling back to the id.
func (b Building) DisplayName() string {
	if b.BuildingName != "" {
		return b.BuildingName
	}
	return "Building " + b.BuildingID
}
