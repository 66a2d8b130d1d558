package ml

import (
	"math"
	"math/rand"
	"sort"
)

// splitIndices shuffles [0,n) and carves off ceil(n*testSize) test indices,
// always leaving at least one training sample. Deterministic for a given
// seed.
func splitIndices(n int, testSize float64, rng *rand.Rand) (train, test []int) {
	perm := rng.Perm(n)
	testCount := int(math.Ceil(float64(n) * testSize))
	if testCount < 1 {
		testCount = 1
	}
	if testCount >= n {
		testCount = n - 1
	}
	test = append(test, perm[:testCount]...)
	train = append(train, perm[testCount:]...)
	return train, test
}

// stratifiedIndices splits per class so the test set preserves the class
// mix. Every class contributes at least one test sample when it has two or
// more members; callers guard that precondition.
func stratifiedIndices(labels []string, testSize float64, rng *rand.Rand) (train, test []int) {
	byClass := make(map[string][]int)
	classes := make([]string, 0)
	for i, label := range labels {
		if _, seen := byClass[label]; !seen {
			classes = append(classes, label)
		}
		byClass[label] = append(byClass[label], i)
	}
	sort.Strings(classes)

	for _, class := range classes {
		idx := byClass[class]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		testCount := int(math.Ceil(float64(len(idx)) * testSize))
		if testCount < 1 {
			testCount = 1
		}
		if testCount >= len(idx) {
			testCount = len(idx) - 1
		}
		test = append(test, idx[:testCount]...)
		train = append(train, idx[testCount:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test
}

// subset gathers matrix rows by index.
func subset(X [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = X[j]
	}
	return out
}

// subsetFloats gathers slice elements by index.
func subsetFloats(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

// subsetStrings gathers slice elements by index.
func subsetStrings(y []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
