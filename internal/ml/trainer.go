package ml

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ajharbinger/building-health-pipeline/internal/logger"
)

// Config holds the training hyperparameters.
type Config struct {
	NumTrees int
	MaxDepth int
	TestSize float64
	Seed     int64
}

// DefaultConfig mirrors the baseline hyperparameters used across the
// pipeline.
func DefaultConfig() Config {
	return Config{
		NumTrees: 100,
		MaxDepth: 10,
		TestSize: 0.2,
		Seed:     42,
	}
}

// Risk categories derived from the health index.
const (
	RiskLow     = "Low"
	RiskMedium  = "Medium"
	RiskHigh    = "High"
	RiskUnknown = "Unknown"
)

// ClassifyRisk maps a health index onto a risk category.
func ClassifyRisk(bhi float64) string {
	switch {
	case bhi >= 80:
		return RiskLow
	case bhi >= 50:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// FeatureImportance is one feature's share of total impurity decrease.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// ClassifierResults bundles the trained risk classifier and its holdout
// evaluation.
type ClassifierResults struct {
	Forest          *ForestClassifier       `json:"-"`
	Accuracy        float64                 `json:"accuracy"`
	Report          map[string]ClassMetrics `json:"report"`
	ConfusionMatrix [][]int                 `json:"confusion_matrix"`
	Classes         []string                `json:"classes"`
	Importances     []FeatureImportance     `json:"importances"`
	TrainSize       int                     `json:"train_size"`
	TestSize        int                     `json:"test_size"`
}

// RegressorResults bundles the trained health-index regressor and its
// holdout evaluation.
type RegressorResults struct {
	Forest      *ForestRegressor    `json:"-"`
	Scaler      *StandardScaler     `json:"-"`
	MSE         float64             `json:"mse"`
	MAE         float64             `json:"mae"`
	R2          float64             `json:"r2"`
	Importances []FeatureImportance `json:"importances"`
	TrainSize   int                 `json:"train_size"`
	TestSize    int                 `json:"test_size"`
}

// Results is the full training outcome. Either model may be nil when the
// dataset cannot support it; the skip reasons say why.
type Results struct {
	Classifier           *ClassifierResults `json:"classifier,omitempty"`
	ClassifierSkipReason string             `json:"classifier_skip_reason,omitempty"`
	Regressor            *RegressorResults  `json:"regressor,omitempty"`
	RegressorSkipReason  string             `json:"regressor_skip_reason,omitempty"`
	ClassDistribution    map[string]int     `json:"class_distribution"`
	StratifiedSplit      bool               `json:"stratified_split"`
	FeatureColumns       []string           `json:"feature_columns"`
	RiskLabels           map[string]string  `json:"risk_labels"`
}

// Trainer fits the risk classifier and health-index regressor from a
// feature matrix.
type Trainer struct {
	cfg Config
	log logger.Logger
}

// NewTrainer creates a trainer with the given hyperparameters.
func NewTrainer(cfg Config, log logger.Logger) *Trainer {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = DefaultConfig().NumTrees
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.TestSize <= 0 || cfg.TestSize >= 1 {
		cfg.TestSize = DefaultConfig().TestSize
	}
	return &Trainer{cfg: cfg, log: log}
}

// Train fits both models from a feature matrix and the per-row health
// index. Rows and bhi are parallel; columns names the feature order. A
// dataset too small or too uniform for a model skips that model instead of
// failing the run.
func (t *Trainer) Train(columns []string, X [][]float64, bhi []float64, ids []string) Results {
	labels := make([]string, len(bhi))
	distribution := make(map[string]int)
	riskByID := make(map[string]string, len(ids))
	for i, v := range bhi {
		labels[i] = ClassifyRisk(v)
		distribution[labels[i]]++
		if i < len(ids) {
			riskByID[ids[i]] = labels[i]
		}
	}

	results := Results{
		ClassDistribution: distribution,
		FeatureColumns:    columns,
		RiskLabels:        riskByID,
	}

	t.trainClassifier(columns, X, labels, distribution, &results)
	t.trainRegressor(columns, X, bhi, &results)
	return results
}

func (t *Trainer) trainClassifier(columns []string, X [][]float64, labels []string, distribution map[string]int, results *Results) {
	if len(distribution) < 2 {
		results.ClassifierSkipReason = fmt.Sprintf(
			"need at least 2 risk classes, dataset has %d", len(distribution))
		t.log.Warn("skipping risk classifier", "reason", results.ClassifierSkipReason)
		return
	}
	if len(X) < 4 {
		results.ClassifierSkipReason = fmt.Sprintf(
			"need at least 4 samples to train, dataset has %d", len(X))
		t.log.Warn("skipping risk classifier", "reason", results.ClassifierSkipReason)
		return
	}

	minCount := len(X)
	for _, c := range distribution {
		if c < minCount {
			minCount = c
		}
	}

	rng := rand.New(rand.NewSource(t.cfg.Seed))
	var trainIdx, testIdx []int
	if minCount >= 2 {
		trainIdx, testIdx = stratifiedIndices(labels, t.cfg.TestSize, rng)
		results.StratifiedSplit = true
	} else {
		t.log.Warn("smallest risk class has a single sample, falling back to an unstratified split")
		trainIdx, testIdx = splitIndices(len(X), t.cfg.TestSize, rng)
	}

	trainX, testX := subset(X, trainIdx), subset(X, testIdx)
	trainY, testY := subsetStrings(labels, trainIdx), subsetStrings(labels, testIdx)

	forest := TrainClassifier(trainX, trainY, ForestConfig{
		NumTrees: t.cfg.NumTrees,
		MaxDepth: t.cfg.MaxDepth,
		Seed:     t.cfg.Seed,
	})

	predictions := forest.PredictBatch(testX)
	results.Classifier = &ClassifierResults{
		Forest:          forest,
		Accuracy:        Accuracy(testY, predictions),
		Report:          ClassificationReport(testY, predictions, forest.Classes()),
		ConfusionMatrix: ConfusionMatrix(testY, predictions, forest.Classes()),
		Classes:         forest.Classes(),
		Importances:     rankImportances(columns, forest.FeatureImportances()),
		TrainSize:       len(trainX),
		TestSize:        len(testX),
	}
	t.log.Info("risk classifier trained",
		"train", len(trainX), "test", len(testX), "accuracy", results.Classifier.Accuracy)
}

func (t *Trainer) trainRegressor(columns []string, X [][]float64, bhi []float64, results *Results) {
	if len(X) < 2 {
		results.RegressorSkipReason = fmt.Sprintf(
			"need at least 2 samples to train, dataset has %d", len(X))
		t.log.Warn("skipping health index regressor", "reason", results.RegressorSkipReason)
		return
	}

	rng := rand.New(rand.NewSource(t.cfg.Seed))
	trainIdx, testIdx := splitIndices(len(X), t.cfg.TestSize, rng)

	trainX, testX := subset(X, trainIdx), subset(X, testIdx)
	trainY, testY := subsetFloats(bhi, trainIdx), subsetFloats(bhi, testIdx)

	scaler := &StandardScaler{}
	scaler.Fit(trainX)
	scaledTrain := scaler.Transform(trainX)
	scaledTest := scaler.Transform(testX)

	forest := TrainRegressor(scaledTrain, trainY, ForestConfig{
		NumTrees: t.cfg.NumTrees,
		MaxDepth: t.cfg.MaxDepth,
		Seed:     t.cfg.Seed,
	})

	predictions := forest.PredictBatch(scaledTest)
	results.Regressor = &RegressorResults{
		Forest:      forest,
		Scaler:      scaler,
		MSE:         MeanSquaredError(testY, predictions),
		MAE:         MeanAbsoluteError(testY, predictions),
		R2:          RSquared(testY, predictions),
		Importances: rankImportances(columns, forest.FeatureImportances()),
		TrainSize:   len(trainX),
		TestSize:    len(testX),
	}
	t.log.Info("health index regressor trained",
		"train", len(trainX), "test", len(testX), "r2", results.Regressor.R2)
}

// PredictRisk classifies one feature vector, or reports Unknown when no
// classifier was trained.
func (r Results) PredictRisk(x []float64) string {
	if r.Classifier == nil || r.Classifier.Forest == nil {
		return RiskUnknown
	}
	return r.Classifier.Forest.Predict(x)
}

// PredictBHI regresses one feature vector onto the health index scale,
// clamped to [0, 100]. The second return is false when no regressor was
// trained.
func (r Results) PredictBHI(x []float64) (float64, bool) {
	if r.Regressor == nil || r.Regressor.Forest == nil {
		return 0, false
	}
	predicted := r.Regressor.Forest.Predict(r.Regressor.Scaler.TransformRow(x))
	if predicted < 0 {
		predicted = 0
	}
	if predicted > 100 {
		predicted = 100
	}
	return predicted, true
}

// rankImportances pairs importances with their column names, sorted by
// importance descending with name as the tie-break.
func rankImportances(columns []string, importances []float64) []FeatureImportance {
	ranked := make([]FeatureImportance, 0, len(columns))
	for i, col := range columns {
		if i >= len(importances) {
			break
		}
		ranked = append(ranked, FeatureImportance{Feature: col, Importance: importances[i]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Importance != ranked[j].Importance {
			return ranked[i].Importance > ranked[j].Importance
		}
		return ranked[i].Feature < ranked[j].Feature
	})
	return ranked
}
