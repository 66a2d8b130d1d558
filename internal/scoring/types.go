package scoring

import "time"

// MinReservePerFlatPerYear is the per-flat-per-year reserve target used to
// size a building's required reserve fund.
const MinReservePerFlatPerYear = 500.0

// Sub-score weights for the financial health composite.
const (
	weightCollectionRate = 0.4
	weightReserveRatio   = 0.4
	weightFinPunctuality = 0.2
)

// Sub-score weights for the structural health composite.
const (
	weightAge         = 0.2
	weightAuditRating = 0.5
	weightRepairs     = 0.3
)

// Sub-score weights for the people score composite.
const (
	weightPplPunctuality = 0.5
	weightOwnerRatio     = 0.2
	weightSocioEconomic  = 0.3
)

// BHI blend weights.
const (
	weightFinancial  = 0.5
	weightStructural = 0.3
	weightPeople     = 0.2
)

// AuditRatingScores maps structural audit ratings to scores. Unknown or
// missing ratings score 0.
var AuditRatingScores = map[string]float64{
	"A": 100,
	"B": 80,
	"C": 50,
	"D": 20,
	"F": 0,
}

// IncomeScores maps resident income brackets to socio-economic scores.
var IncomeScores = map[string]float64{
	"Low":    30,
	"Medium": 70,
	"High":   100,
}

// EducationScores maps resident education levels to socio-economic scores.
var EducationScores = map[string]float64{
	"High School":   50,
	"Graduate":      80,
	"Post-Graduate": 100,
}

// Health tier colors derived from the BHI.
const (
	ColorGreen  = "green"
	ColorOrange = "orange"
	ColorRed    = "red"
)

// BHI color thresholds.
const (
	greenThreshold  = 80.0
	orangeThreshold = 50.0
)

// Engine computes per-building health scores. The reference time fixes the
// current year used in age math, so a batch run is deterministic.
type Engine struct {
	now time.Time
}

// NewEngine creates an engine anchored at the wall clock.
func NewEngine() *Engine {
	return NewEngineAt(time.Now())
}

// NewEngineAt creates an engine anchored at a fixed reference time.
func NewEngineAt(now time.Time) *Engine {
	return &Engine{now: now}
}

// CurrentYear returns the engine's reference year.
func (e *Engine) CurrentYear() int {
	return e.now.Year()
}

// buildingAge returns years since construction, 0 when year built is unset.
func (e *Engine) buildingAge(yearBuilt int) int {
	if yearBuilt <= 0 {
		return 0
	}
	return e.CurrentYear() - yearBuilt
}

// clamp bounds a score to [0,100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
