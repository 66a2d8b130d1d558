package compliance

import (
	"fmt"
	"time"

	"github.com/ajharbinger/building-health-pipeline/internal/models"
	"github.com/ajharbinger/building-health-pipeline/internal/scoring"
)

// Rule outcome statuses.
type Status string

const (
	StatusPass  Status = "Pass"
	StatusFail  Status = "Fail"
	StatusError Status = "Error"
)

// RuleResult is the outcome of one rule for one building.
type RuleResult struct {
	Rule    string `json:"rule"`
	Status  Status `json:"status"`
	Details string `json:"details"`
}

// RuleFunc evaluates one rule against a building. It returns whether the
// rule passed plus a human-readable detail; a non-nil error becomes an
// Error outcome without affecting other rules.
type RuleFunc func(b models.Building, params map[string]float64, fin scoring.FinancialDetails) (bool, string, error)

// Evaluator applies a rule set to buildings. Rules dispatch through a
// registry keyed by rule id, so adding a rule is a registration, not an
// edit to a conditional chain.
type Evaluator struct {
	now      time.Time
	registry map[string]RuleFunc
}

// NewEvaluator creates an evaluator anchored at the wall clock with the
// standard municipal rules registered.
func NewEvaluator() *Evaluator {
	return NewEvaluatorAt(time.Now())
}

// NewEvaluatorAt creates an evaluator anchored at a fixed reference time.
func NewEvaluatorAt(now time.Time) *Evaluator {
	ev := &Evaluator{
		now:      now,
		registry: make(map[string]RuleFunc),
	}
	ev.Register(models.RuleFireSafety, ev.fireSafety)
	ev.Register(models.RuleStructuralAudit, ev.structuralAudit)
	ev.Register(models.RuleReserveFund, reserveFund)
	ev.Register(models.RuleWasteSegregation, wasteSegregation)
	ev.Register(models.RuleSewageSystem, sewageSystem)
	return ev
}

// Register installs an evaluation function for a rule id, replacing any
// existing registration.
func (ev *Evaluator) Register(id string, fn RuleFunc) {
	ev.registry[id] = fn
}

// Evaluate applies every rule to the building in rule-list order. The score
// is the passing percentage; an empty rule list scores 0. A failure inside
// one rule is contained to that rule's outcome.
func (ev *Evaluator) Evaluate(b models.Building, rules []models.ComplianceRule, fin scoring.FinancialDetails) (float64, []RuleResult) {
	if len(rules) == 0 {
		return 0, nil
	}

	results := make([]RuleResult, 0, len(rules))
	passCount := 0
	for _, rule := range rules {
		passed, details, err := ev.evaluateRule(rule, b, fin)
		switch {
		case err != nil:
			results = append(results, RuleResult{
				Rule:    rule.Description,
				Status:  StatusError,
				Details: fmt.Sprintf("Could not check rule: %v", err),
			})
		case passed:
			passCount++
			results = append(results, RuleResult{Rule: rule.Description, Status: StatusPass, Details: details})
		default:
			results = append(results, RuleResult{Rule: rule.Description, Status: StatusFail, Details: details})
		}
	}

	score := float64(passCount) / float64(len(rules)) * 100
	return score, results
}

// evaluateRule dispatches one rule through the registry, converting a
// missing registration or a panic into an error outcome.
func (ev *Evaluator) evaluateRule(rule models.ComplianceRule, b models.Building, fin scoring.FinancialDetails) (passed bool, details string, err error) {
	fn, ok := ev.registry[rule.ID]
	if !ok {
		return false, "", fmt.Errorf("no evaluator registered for rule %s", rule.ID)
	}
	defer func() {
		if r := recover(); r != nil {
			passed = false
			details = ""
			err = fmt.Errorf("rule %s panicked: %v", rule.ID, r)
		}
	}()
	return fn(b, rule.Parameters, fin)
}
