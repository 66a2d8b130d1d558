package ml

import (
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	yTrue := []string{"Low", "High", "Medium", "Low"}
	yPred := []string{"Low", "High", "Low", "High"}
	if got := Accuracy(yTrue, yPred); got != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", got)
	}
	if got := Accuracy(nil, nil); got != 0 {
		t.Errorf("accuracy of empty = %v, want 0", got)
	}
}

func TestClassificationReport(t *testing.T) {
	yTrue := []string{"Low", "Low", "High", "High"}
	yPred := []string{"Low", "High", "High", "High"}
	report := ClassificationReport(yTrue, yPred, []string{"High", "Low"})

	low := report["Low"]
	if low.Precision != 1 {
		t.Errorf("Low precision = %v, want 1", low.Precision)
	}
	if low.Recall != 0.5 {
		t.Errorf("Low recall = %v, want 0.5", low.Recall)
	}
	if low.Support != 2 {
		t.Errorf("Low support = %d, want 2", low.Support)
	}

	high := report["High"]
	if math.Abs(high.Precision-2.0/3.0) > 1e-9 {
		t.Errorf("High precision = %v, want 2/3", high.Precision)
	}
	if high.Recall != 1 {
		t.Errorf("High recall = %v, want 1", high.Recall)
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []string{"Low", "Low", "High"}
	yPred := []string{"Low", "High", "High"}
	m := ConfusionMatrix(yTrue, yPred, []string{"High", "Low"})

	// Rows are actual, columns predicted.
	if m[0][0] != 1 { // High predicted High
		t.Errorf("m[0][0] = %d, want 1", m[0][0])
	}
	if m[1][0] != 1 { // Low predicted High
		t.Errorf("m[1][0] = %d, want 1", m[1][0])
	}
	if m[1][1] != 1 { // Low predicted Low
		t.Errorf("m[1][1] = %d, want 1", m[1][1])
	}
}

func TestRegressionMetrics(t *testing.T) {
	yTrue := []float64{10, 20, 30}
	yPred := []float64{12, 18, 30}

	if got := MeanAbsoluteError(yTrue, yPred); math.Abs(got-4.0/3.0) > 1e-9 {
		t.Errorf("MAE = %v, want 4/3", got)
	}
	if got := MeanSquaredError(yTrue, yPred); math.Abs(got-8.0/3.0) > 1e-9 {
		t.Errorf("MSE = %v, want 8/3", got)
	}
	if got := RSquared(yTrue, yTrue); math.Abs(got-1) > 1e-9 {
		t.Errorf("perfect R2 = %v, want 1", got)
	}
}
