package models

// Stable rule identifiers dispatched by the compliance evaluator.
const (
	RuleFireSafety       = "FIRE_SAFETY"
	RuleStructuralAudit  = "STRUCT_AUDIT"
	RuleReserveFund      = "RESERVE_FUND"
	RuleWasteSegregation = "WASTE_SEGREGATION"
	RuleSewageSystem     = "SEWAGE_SYSTEM"
)

// ComplianceRule is one named regulatory check. Parameters carries optional
// per-rule numeric settings, e.g. min_ratio for RESERVE_FUND.
type ComplianceRule struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Parameters  map[string]float64 `json:"parameters,omitempty"`
}

// RuleSet is the document shape of the rules JSON file.
type RuleSet struct {
	Rules []ComplianceRule `json:"rules"`
}
