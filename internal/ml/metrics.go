package ml

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ClassMetrics is the per-class slice of a classification report.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Accuracy is the share of exact label matches.
func Accuracy(yTrue, yPred []string) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// ConfusionMatrix counts predictions per (actual, predicted) class pair in
// the given class order.
func ConfusionMatrix(yTrue, yPred []string, classes []string) [][]int {
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	matrix := make([][]int, len(classes))
	for i := range matrix {
		matrix[i] = make([]int, len(classes))
	}
	for i := range yTrue {
		ti, tok := index[yTrue[i]]
		pi, pok := index[yPred[i]]
		if tok && pok {
			matrix[ti][pi]++
		}
	}
	return matrix
}

// ClassificationReport computes precision, recall, F1 and support per class.
// Classes absent from both truth and prediction report zeros.
func ClassificationReport(yTrue, yPred []string, classes []string) map[string]ClassMetrics {
	report := make(map[string]ClassMetrics, len(classes))
	for _, class := range classes {
		var tp, fp, fn int
		for i := range yTrue {
			switch {
			case yTrue[i] == class && yPred[i] == class:
				tp++
			case yTrue[i] != class && yPred[i] == class:
				fp++
			case yTrue[i] == class && yPred[i] != class:
				fn++
			}
		}
		var precision, recall, f1 float64
		if tp+fp > 0 {
			precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			recall = float64(tp) / float64(tp+fn)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		report[class] = ClassMetrics{
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   tp + fn,
		}
	}
	return report
}

// MeanSquaredError is the average squared residual.
func MeanSquaredError(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	var sum float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return sum / float64(len(yTrue))
}

// MeanAbsoluteError is the average absolute residual.
func MeanAbsoluteError(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	var sum float64
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return sum / float64(len(yTrue))
}

// RSquared is the coefficient of determination of predictions against truth.
func RSquared(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	return stat.RSquaredFrom(yPred, yTrue, nil)
}
