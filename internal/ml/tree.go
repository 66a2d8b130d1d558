package ml

import (
	"math"
	"math/rand"
	"sort"
)

// treeNode is a binary CART node. Leaves carry the predicted value: a class
// index for classification, a mean target for regression.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	leaf      bool
	value     float64
}

// treeParams controls tree growth.
type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	// featuresPerSplit limits how many candidate features each split
	// considers; 0 means all.
	featuresPerSplit int
	// classify selects gini impurity over variance.
	classify   bool
	numClasses int
}

// decisionTree is one CART tree plus its accumulated importance.
type decisionTree struct {
	root *treeNode
	// importances accumulates weighted impurity decrease per feature.
	importances []float64
}

func growTree(X [][]float64, y []float64, params treeParams, rng *rand.Rand) *decisionTree {
	cols := 0
	if len(X) > 0 {
		cols = len(X[0])
	}
	t := &decisionTree{importances: make([]float64, cols)}
	t.root = t.grow(X, y, 0, len(X), params, rng)
	return t
}

func (t *decisionTree) grow(X [][]float64, y []float64, depth, total int, params treeParams, rng *rand.Rand) *treeNode {
	if len(y) == 0 {
		return &treeNode{leaf: true}
	}
	if depth >= params.maxDepth || len(y) < params.minSamplesSplit || pure(y) {
		return &treeNode{leaf: true, value: leafValue(y, params)}
	}

	feature, threshold, gain, ok := t.bestSplit(X, y, params, rng)
	if !ok || gain <= 0 {
		return &treeNode{leaf: true, value: leafValue(y, params)}
	}

	leftX, leftY, rightX, rightY := partition(X, y, feature, threshold)
	if len(leftY) == 0 || len(rightY) == 0 {
		return &treeNode{leaf: true, value: leafValue(y, params)}
	}

	t.importances[feature] += float64(len(y)) / float64(total) * gain

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      t.grow(leftX, leftY, depth+1, total, params, rng),
		right:     t.grow(rightX, rightY, depth+1, total, params, rng),
	}
}

func (t *decisionTree) predict(x []float64) float64 {
	node := t.root
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// bestSplit scans a feature subsample for the threshold with the highest
// impurity decrease. Thresholds are midpoints between consecutive distinct
// sorted values.
func (t *decisionTree) bestSplit(X [][]float64, y []float64, params treeParams, rng *rand.Rand) (feature int, threshold, gain float64, ok bool) {
	cols := len(X[0])
	candidates := rng.Perm(cols)
	if params.featuresPerSplit > 0 && params.featuresPerSplit < cols {
		candidates = candidates[:params.featuresPerSplit]
	}

	parent := impurity(y, params)
	bestGain := 0.0

	values := make([]float64, len(X))
	for _, f := range candidates {
		for i := range X {
			values[i] = X[i][f]
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		for i := 1; i < len(sorted); i++ {
			if sorted[i] == sorted[i-1] {
				continue
			}
			th := (sorted[i] + sorted[i-1]) / 2

			var leftY, rightY []float64
			for j := range X {
				if X[j][f] <= th {
					leftY = append(leftY, y[j])
				} else {
					rightY = append(rightY, y[j])
				}
			}
			if len(leftY) == 0 || len(rightY) == 0 {
				continue
			}
			weighted := (float64(len(leftY))*impurity(leftY, params) +
				float64(len(rightY))*impurity(rightY, params)) / float64(len(y))
			if g := parent - weighted; g > bestGain {
				bestGain = g
				feature = f
				threshold = th
				ok = true
			}
		}
	}
	return feature, threshold, bestGain, ok
}

func partition(X [][]float64, y []float64, feature int, threshold float64) (lX [][]float64, lY []float64, rX [][]float64, rY []float64) {
	for i := range X {
		if X[i][feature] <= threshold {
			lX = append(lX, X[i])
			lY = append(lY, y[i])
		} else {
			rX = append(rX, X[i])
			rY = append(rY, y[i])
		}
	}
	return lX, lY, rX, rY
}

func pure(y []float64) bool {
	for i := 1; i < len(y); i++ {
		if y[i] != y[0] {
			return false
		}
	}
	return true
}

// leafValue is the majority class index for classification, the mean for
// regression. Class ties break toward the lower index for determinism.
func leafValue(y []float64, params treeParams) float64 {
	if !params.classify {
		var sum float64
		for _, v := range y {
			sum += v
		}
		return sum / float64(len(y))
	}
	counts := make([]int, params.numClasses)
	for _, v := range y {
		counts[int(v)]++
	}
	best := 0
	for c := 1; c < len(counts); c++ {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return float64(best)
}

// impurity is gini for classification, variance for regression.
func impurity(y []float64, params treeParams) float64 {
	if len(y) == 0 {
		return 0
	}
	if params.classify {
		counts := make([]int, params.numClasses)
		for _, v := range y {
			counts[int(v)]++
		}
		g := 1.0
		for _, c := range counts {
			p := float64(c) / float64(len(y))
			g -= p * p
		}
		return g
	}
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	var variance float64
	for _, v := range y {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(y))
}

// sqrtFeatures is the classifier's per-split feature budget.
func sqrtFeatures(cols int) int {
	n := int(math.Sqrt(float64(cols)))
	if n < 1 {
		n = 1
	}
	return n
}
