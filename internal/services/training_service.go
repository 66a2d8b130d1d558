package services

import (
	"time"

	apperrors "github.com/ajharbinger/building-health-pipeline/internal/errors"
	"github.com/ajharbinger/building-health-pipeline/internal/features"
	"github.com/ajharbinger/building-health-pipeline/internal/logger"
	"github.com/ajharbinger/building-health-pipeline/internal/ml"
	"github.com/ajharbinger/building-health-pipeline/internal/repository"
)

// TrainingOutput bundles the trained models with the feature table they
// were fit on, so callers can look up a building's vector for prediction.
type TrainingOutput struct {
	Results  ml.Results     `json:"results"`
	Features features.Table `json:"features"`
}

// PredictRisk classifies a building from its stored feature vector.
func (o *TrainingOutput) PredictRisk(buildingID string) string {
	vec, ok := o.Features.VectorOf(buildingID)
	if !ok {
		return ml.RiskUnknown
	}
	return o.Results.PredictRisk(features.Row{Features: vec}.Values(o.Features.Columns))
}

// PredictBHI regresses a building's health index from its stored feature
// vector. The second return is false when the building is unknown or no
// regressor was trained.
func (o *TrainingOutput) PredictBHI(buildingID string) (float64, bool) {
	vec, ok := o.Features.VectorOf(buildingID)
	if !ok {
		return 0, false
	}
	return o.Results.PredictBHI(features.Row{Features: vec}.Values(o.Features.Columns))
}

// TrainingService derives the feature table from a dataset and fits the
// risk classifier and health-index regressor against batch BHI targets.
type TrainingService struct {
	builder *features.Builder
	trainer *ml.Trainer
	log     logger.Logger
}

// NewTrainingService creates a service anchored at the wall clock.
func NewTrainingService(cfg ml.Config, log logger.Logger) *TrainingService {
	return NewTrainingServiceAt(time.Now(), cfg, log)
}

// NewTrainingServiceAt creates a service anchored at a fixed reference time
// so feature derivation matches the batch run it trains against.
func NewTrainingServiceAt(now time.Time, cfg ml.Config, log logger.Logger) *TrainingService {
	return &TrainingService{
		builder: features.NewBuilderAt(now),
		trainer: ml.NewTrainer(cfg, log),
		log:     log,
	}
}

// Train builds features for every building in the dataset and fits both
// models against the batch run's BHI values. Buildings missing from the
// batch result are left out of training.
func (s *TrainingService) Train(ds *repository.Dataset, batch *BatchResult) (*TrainingOutput, error) {
	table := s.builder.Build(ds.Buildings, ds.ResidentsByBuilding(), ds.TransactionsByBuilding(), ds.RepairsByBuilding())
	if len(table.Rows) == 0 {
		return nil, apperrors.TrainingError("no feature rows to train on", nil)
	}

	bhiByID := batch.BHIByBuilding()
	var (
		X   [][]float64
		bhi []float64
		ids []string
	)
	for _, row := range table.Rows {
		target, ok := bhiByID[row.BuildingID]
		if !ok {
			s.log.Warn("building absent from batch result, excluded from training",
				"building_id", row.BuildingID)
			continue
		}
		X = append(X, row.Values(table.Columns))
		bhi = append(bhi, target)
		ids = append(ids, row.BuildingID)
	}
	if len(X) == 0 {
		return nil, apperrors.TrainingError("no feature rows matched the batch result", nil)
	}

	s.log.Info("training models", "samples", len(X), "features", len(table.Columns))
	results := s.trainer.Train(table.Columns, X, bhi, ids)
	return &TrainingOutput{Results: results, Features: table}, nil
}
