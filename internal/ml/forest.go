package ml

import (
	"math/rand"
	"sort"
)

// ForestConfig controls random forest growth.
type ForestConfig struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	Seed            int64
}

// ForestClassifier is a bagged ensemble of CART trees voting over class
// labels. Each split considers sqrt(p) features.
type ForestClassifier struct {
	trees   []*decisionTree
	classes []string
	cols    int
}

// TrainClassifier grows a forest over string labels. Classes are indexed in
// sorted order so training is deterministic for a given seed.
func TrainClassifier(X [][]float64, labels []string, cfg ForestConfig) *ForestClassifier {
	classes := uniqueSorted(labels)
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	y := make([]float64, len(labels))
	for i, l := range labels {
		y[i] = float64(index[l])
	}

	cols := 0
	if len(X) > 0 {
		cols = len(X[0])
	}
	params := treeParams{
		maxDepth:         cfg.MaxDepth,
		minSamplesSplit:  max(cfg.MinSamplesSplit, 2),
		featuresPerSplit: sqrtFeatures(cols),
		classify:         true,
		numClasses:       len(classes),
	}

	f := &ForestClassifier{classes: classes, cols: cols}
	for i := 0; i < cfg.NumTrees; i++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
		bX, bY := bootstrap(X, y, rng)
		f.trees = append(f.trees, growTree(bX, bY, params, rng))
	}
	return f
}

// Predict returns the majority-vote label for one feature vector. Vote ties
// break toward the lexically lower class.
func (f *ForestClassifier) Predict(x []float64) string {
	votes := make([]int, len(f.classes))
	for _, t := range f.trees {
		votes[int(t.predict(x))]++
	}
	best := 0
	for c := 1; c < len(votes); c++ {
		if votes[c] > votes[best] {
			best = c
		}
	}
	return f.classes[best]
}

// PredictBatch predicts labels for every row.
func (f *ForestClassifier) PredictBatch(X [][]float64) []string {
	out := make([]string, len(X))
	for i, x := range X {
		out[i] = f.Predict(x)
	}
	return out
}

// Classes returns the label set in sorted order.
func (f *ForestClassifier) Classes() []string {
	return f.classes
}

// FeatureImportances averages per-tree impurity decrease and normalizes to
// sum to 1.
func (f *ForestClassifier) FeatureImportances() []float64 {
	return averageImportances(f.trees, f.cols)
}

// ForestRegressor is a bagged ensemble of CART trees averaging a numeric
// target. Splits consider every feature.
type ForestRegressor struct {
	trees []*decisionTree
	cols  int
}

// TrainRegressor grows a variance-reduction forest over a numeric target.
func TrainRegressor(X [][]float64, y []float64, cfg ForestConfig) *ForestRegressor {
	cols := 0
	if len(X) > 0 {
		cols = len(X[0])
	}
	params := treeParams{
		maxDepth:        cfg.MaxDepth,
		minSamplesSplit: max(cfg.MinSamplesSplit, 2),
	}

	f := &ForestRegressor{cols: cols}
	for i := 0; i < cfg.NumTrees; i++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
		bX, bY := bootstrap(X, y, rng)
		f.trees = append(f.trees, growTree(bX, bY, params, rng))
	}
	return f
}

// Predict averages the per-tree predictions for one feature vector.
func (f *ForestRegressor) Predict(x []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees))
}

// PredictBatch predicts the target for every row.
func (f *ForestRegressor) PredictBatch(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = f.Predict(x)
	}
	return out
}

// FeatureImportances averages per-tree impurity decrease and normalizes to
// sum to 1.
func (f *ForestRegressor) FeatureImportances() []float64 {
	return averageImportances(f.trees, f.cols)
}

func bootstrap(X [][]float64, y []float64, rng *rand.Rand) ([][]float64, []float64) {
	n := len(X)
	bX := make([][]float64, n)
	bY := make([]float64, n)
	for i := 0; i < n; i++ {
		j := rng.Intn(n)
		bX[i] = X[j]
		bY[i] = y[j]
	}
	return bX, bY
}

func averageImportances(trees []*decisionTree, cols int) []float64 {
	avg := make([]float64, cols)
	if len(trees) == 0 {
		return avg
	}
	for _, t := range trees {
		for j, v := range t.importances {
			avg[j] += v
		}
	}
	var total float64
	for j := range avg {
		avg[j] /= float64(len(trees))
		total += avg[j]
	}
	if total > 0 {
		for j := range avg {
			avg[j] /= total
		}
	}
	return avg
}

func uniqueSorted(labels []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}
