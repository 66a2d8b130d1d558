package ml

import (
	"fmt"
	"testing"

	"github.com/ajharbinger/building-health-pipeline/internal/logger"
)

var testColumns = []string{"score_signal", "half_signal", "noise"}

// syntheticData spreads 30 buildings across the three risk tiers with a
// feature that tracks the target directly, so both models can learn it.
func syntheticData() (X [][]float64, bhi []float64, ids []string) {
	for i := 0; i < 30; i++ {
		var target float64
		switch {
		case i < 10:
			target = 85 + float64(i%5)
		case i < 20:
			target = 55 + float64(i%5)
		default:
			target = 20 + float64(i%5)
		}
		X = append(X, []float64{target, target / 2, float64(i % 3)})
		bhi = append(bhi, target)
		ids = append(ids, fmt.Sprintf("B%03d", i))
	}
	return X, bhi, ids
}

func testTrainer() *Trainer {
	return NewTrainer(Config{NumTrees: 25, MaxDepth: 6, TestSize: 0.2, Seed: 42}, logger.NopLogger{})
}

func TestClassifyRisk(t *testing.T) {
	cases := []struct {
		bhi  float64
		want string
	}{
		{95, RiskLow},
		{80, RiskLow},
		{79.9, RiskMedium},
		{50, RiskMedium},
		{49.9, RiskHigh},
		{0, RiskHigh},
	}
	for _, tc := range cases {
		if got := ClassifyRisk(tc.bhi); got != tc.want {
			t.Errorf("ClassifyRisk(%v) = %q, want %q", tc.bhi, got, tc.want)
		}
	}
}

func TestTrainFullPipeline(t *testing.T) {
	X, bhi, ids := syntheticData()
	results := testTrainer().Train(testColumns, X, bhi, ids)

	if results.Classifier == nil {
		t.Fatalf("classifier skipped: %s", results.ClassifierSkipReason)
	}
	if results.Regressor == nil {
		t.Fatalf("regressor skipped: %s", results.RegressorSkipReason)
	}
	if !results.StratifiedSplit {
		t.Error("expected a stratified split with 10 samples per class")
	}

	for _, class := range []string{RiskLow, RiskMedium, RiskHigh} {
		if results.ClassDistribution[class] != 10 {
			t.Errorf("class %s count = %d, want 10", class, results.ClassDistribution[class])
		}
	}
	if results.RiskLabels["B000"] != RiskLow {
		t.Errorf("B000 label = %q, want Low", results.RiskLabels["B000"])
	}
	if results.RiskLabels["B025"] != RiskHigh {
		t.Errorf("B025 label = %q, want High", results.RiskLabels["B025"])
	}

	// The signal feature tracks the target exactly; both models should do
	// well on the holdout.
	if results.Classifier.Accuracy < 0.8 {
		t.Errorf("accuracy = %v, want >= 0.8 on separable data", results.Classifier.Accuracy)
	}
	if results.Regressor.R2 < 0.5 {
		t.Errorf("R2 = %v, want >= 0.5 on separable data", results.Regressor.R2)
	}

	if len(results.Classifier.Importances) != len(testColumns) {
		t.Errorf("importances = %d entries, want %d", len(results.Classifier.Importances), len(testColumns))
	}
}

func TestTrainDeterminism(t *testing.T) {
	X, bhi, ids := syntheticData()
	a := testTrainer().Train(testColumns, X, bhi, ids)
	b := testTrainer().Train(testColumns, X, bhi, ids)

	if a.Classifier.Accuracy != b.Classifier.Accuracy {
		t.Errorf("accuracy differs between runs: %v vs %v", a.Classifier.Accuracy, b.Classifier.Accuracy)
	}
	if a.Regressor.R2 != b.Regressor.R2 {
		t.Errorf("R2 differs between runs: %v vs %v", a.Regressor.R2, b.Regressor.R2)
	}
	if a.Regressor.MSE != b.Regressor.MSE {
		t.Errorf("MSE differs between runs: %v vs %v", a.Regressor.MSE, b.Regressor.MSE)
	}
	for i := range a.Regressor.Importances {
		if a.Regressor.Importances[i] != b.Regressor.Importances[i] {
			t.Errorf("importance %d differs between runs", i)
		}
	}
}

func TestTrainSingleClassSkipsClassifier(t *testing.T) {
	var (
		X   [][]float64
		bhi []float64
		ids []string
	)
	for i := 0; i < 10; i++ {
		X = append(X, []float64{float64(i), 1, 2})
		bhi = append(bhi, 90)
		ids = append(ids, fmt.Sprintf("B%03d", i))
	}

	results := testTrainer().Train(testColumns, X, bhi, ids)
	if results.Classifier != nil {
		t.Error("expected classifier to be skipped with one class")
	}
	if results.ClassifierSkipReason == "" {
		t.Error("expected a classifier skip reason")
	}
	if results.ClassDistribution[RiskLow] != 10 {
		t.Errorf("distribution = %v, want 10 Low", results.ClassDistribution)
	}
	if got := results.PredictRisk(X[0]); got != RiskUnknown {
		t.Errorf("PredictRisk = %q, want Unknown without a classifier", got)
	}
	// The regressor has no class requirement and still trains.
	if results.Regressor == nil {
		t.Errorf("regressor skipped: %s", results.RegressorSkipReason)
	}
}

func TestTrainTinyDataset(t *testing.T) {
	results := testTrainer().Train(testColumns, [][]float64{{1, 2, 3}}, []float64{75}, []string{"B001"})
	if results.Classifier != nil || results.Regressor != nil {
		t.Error("expected both models skipped with one sample")
	}
	if _, ok := results.PredictBHI([]float64{1, 2, 3}); ok {
		t.Error("PredictBHI must report unavailable without a regressor")
	}
}

func TestPredictBHIClamped(t *testing.T) {
	X, bhi, ids := syntheticData()
	results := testTrainer().Train(testColumns, X, bhi, ids)

	for _, x := range [][]float64{{-500, -250, 0}, {500, 250, 2}, {60, 30, 1}} {
		predicted, ok := results.PredictBHI(x)
		if !ok {
			t.Fatal("expected a trained regressor")
		}
		if predicted < 0 || predicted > 100 {
			t.Errorf("PredictBHI(%v) = %v, want within [0,100]", x, predicted)
		}
	}
}
