package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ajharbinger/building-health-pipeline/internal/compliance"
	apperrors "github.com/ajharbinger/building-health-pipeline/internal/errors"
	"github.com/ajharbinger/building-health-pipeline/internal/logger"
	"github.com/ajharbinger/building-health-pipeline/internal/models"
	"github.com/ajharbinger/building-health-pipeline/internal/repository"
	"github.com/ajharbinger/building-health-pipeline/internal/scoring"
)

// BuildingReport is the full scoring and compliance outcome for one building.
type BuildingReport struct {
	BuildingID        string                    `json:"building_id"`
	BuildingName      string                    `json:"building_name"`
	FinancialScore    float64                   `json:"financial_score"`
	FinancialDetails  scoring.FinancialDetails  `json:"financial_details"`
	StructuralScore   float64                   `json:"structural_score"`
	StructuralDetails scoring.StructuralDetails `json:"structural_details"`
	PeopleScore       float64                   `json:"people_score"`
	PeopleDetails     scoring.PeopleDetails     `json:"people_details"`
	BHI               float64                   `json:"bhi"`
	Color             string                    `json:"color"`
	ComplianceScore   float64                   `json:"compliance_score"`
	ComplianceResults []compliance.RuleResult   `json:"compliance_results"`
}

// SkippedBuilding records a building dropped from a batch run and why.
type SkippedBuilding struct {
	BuildingID string `json:"building_id"`
	Reason     string `json:"reason"`
}

// BatchResult is one complete batch run: every scored building ranked by
// BHI, plus whatever was skipped.
type BatchResult struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Reports     []BuildingReport  `json:"reports"`
	Skipped     []SkippedBuilding `json:"skipped,omitempty"`
}

// ReportFor returns the report for a building id.
func (r *BatchResult) ReportFor(buildingID string) (*BuildingReport, bool) {
	for i := range r.Reports {
		if r.Reports[i].BuildingID == buildingID {
			return &r.Reports[i], true
		}
	}
	return nil, false
}

// BHIByBuilding maps building id to BHI for every scored building.
func (r *BatchResult) BHIByBuilding() map[string]float64 {
	out := make(map[string]float64, len(r.Reports))
	for _, rep := range r.Reports {
		out[rep.BuildingID] = rep.BHI
	}
	return out
}

// BatchProcessor scores and compliance-checks a whole dataset in one run.
// One bad building never aborts the batch; it is skipped with a reason.
type BatchProcessor struct {
	engine    *scoring.Engine
	evaluator *compliance.Evaluator
	log       logger.Logger
}

// NewBatchProcessor creates a processor anchored at the wall clock.
func NewBatchProcessor(log logger.Logger) *BatchProcessor {
	return NewBatchProcessorAt(time.Now(), log)
}

// NewBatchProcessorAt creates a processor anchored at a fixed reference
// time, so age and inspection-interval math is reproducible.
func NewBatchProcessorAt(now time.Time, log logger.Logger) *BatchProcessor {
	return &BatchProcessor{
		engine:    scoring.NewEngineAt(now),
		evaluator: compliance.NewEvaluatorAt(now),
		log:       log,
	}
}

// Process runs the full pipeline over a dataset. An empty buildings table
// or empty rule set is a configuration fault and fails the run outright.
// Results are ordered by BHI descending, building id breaking ties.
func (p *BatchProcessor) Process(ds *repository.Dataset) (*BatchResult, error) {
	if len(ds.Buildings) == 0 {
		return nil, apperrors.InvalidInput("no buildings to process", nil)
	}
	if len(ds.Rules) == 0 {
		return nil, apperrors.InvalidInput("no compliance rules configured", nil)
	}

	residents := ds.ResidentsByBuilding()
	transactions := ds.TransactionsByBuilding()
	repairs := ds.RepairsByBuilding()

	result := &BatchResult{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	for _, b := range ds.Buildings {
		if b.BuildingID == "" {
			p.log.Warn("skipping building with no id", "name", b.BuildingName)
			result.Skipped = append(result.Skipped, SkippedBuilding{Reason: "missing building id"})
			continue
		}
		report, err := p.processOne(b, residents[b.BuildingID], transactions[b.BuildingID], repairs[b.BuildingID], ds.Rules)
		if err != nil {
			p.log.Error("failed to score building, skipping", err, "building_id", b.BuildingID)
			result.Skipped = append(result.Skipped, SkippedBuilding{
				BuildingID: b.BuildingID,
				Reason:     err.Error(),
			})
			continue
		}
		result.Reports = append(result.Reports, *report)
	}

	sort.SliceStable(result.Reports, func(i, j int) bool {
		if result.Reports[i].BHI != result.Reports[j].BHI {
			return result.Reports[i].BHI > result.Reports[j].BHI
		}
		return result.Reports[i].BuildingID < result.Reports[j].BuildingID
	})

	p.log.Info("batch run complete",
		"run_id", result.RunID,
		"scored", len(result.Reports),
		"skipped", len(result.Skipped))
	return result, nil
}

// processOne scores a single building. A panic inside scoring is contained
// here so the batch survives malformed rows.
func (p *BatchProcessor) processOne(
	b models.Building,
	residents []models.Resident,
	transactions []models.Transaction,
	repairs []models.Repair,
	rules []models.ComplianceRule,
) (report *BuildingReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = fmt.Errorf("panic while scoring: %v", r)
		}
	}()

	finScore, finDetails := p.engine.FinancialHealth(b, transactions, residents)
	strScore, strDetails := p.engine.StructuralHealth(b, repairs)
	pplScore, pplDetails := p.engine.PeopleScore(b, residents)
	bhi := scoring.CalculateBHI(finScore, strScore, pplScore)
	compScore, compResults := p.evaluator.Evaluate(b, rules, finDetails)

	return &BuildingReport{
		BuildingID:        b.BuildingID,
		BuildingName:      b.DisplayName(),
		FinancialScore:    finScore,
		FinancialDetails:  finDetails,
		StructuralScore:   strScore,
		StructuralDetails: strDetails,
		PeopleScore:       pplScore,
		PeopleDetails:     pplDetails,
		BHI:               bhi,
		Color:             scoring.BHIColor(bhi),
		ComplianceScore:   compScore,
		ComplianceResults: compResults,
	}, nil
}
