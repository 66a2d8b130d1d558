package ml

import (
	"math"
	"testing"
)

func TestScalerFitTransform(t *testing.T) {
	s := &StandardScaler{}
	s.Fit([][]float64{{1, 5}, {3, 5}})

	if s.Mean[0] != 2 || s.Mean[1] != 5 {
		t.Errorf("means = %v, want [2 5]", s.Mean)
	}
	// Constant column must scale by 1, not divide by zero.
	if s.Scale[1] != 1 {
		t.Errorf("constant column scale = %v, want 1", s.Scale[1])
	}

	got := s.TransformRow([]float64{2, 5})
	if got[0] != 0 || got[1] != 0 {
		t.Errorf("transform of the mean = %v, want zeros", got)
	}

	got = s.TransformRow([]float64{3, 5})
	want := 1 / math.Sqrt2 // sample stddev of {1,3} is sqrt(2)
	if math.Abs(got[0]-want) > 1e-9 {
		t.Errorf("scaled value = %v, want %v", got[0], want)
	}
}

func TestScalerTransformMatrix(t *testing.T) {
	s := &StandardScaler{}
	X := [][]float64{{0}, {10}}
	s.Fit(X)
	out := s.Transform(X)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if math.Abs(out[0][0]+out[1][0]) > 1e-9 {
		t.Errorf("standardized values should be symmetric around zero: %v", out)
	}
}
