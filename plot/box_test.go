package plot

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBox(t *testing.T) {
	b, err := Box([]float64{9, 1, 8, 2, 7, 3, 6, 4, 5, math.NaN()})
	if err != nil {
		t.Fatal(err)
	}

	expected := BoxStats{N: 9, Q1: 2.5, Median: 5, Q3: 7.5, WhiskerLo: 1, WhiskerHi: 9}
	if diff := cmp.Diff(expected, b); diff != "" {
		t.Errorf("Box mismatch (-want +got):\n%s", diff)
	}
}

func TestBoxOutlier(t *testing.T) {
	b, err := Box([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100})
	if err != nil {
		t.Fatal(err)
	}

	if b.Q1 != 3 || b.Median != 5.5 || b.Q3 != 8 {
		t.Errorf("Unexpected quartiles %+v", b)
	}
	if b.WhiskerHi != 9 || b.WhiskerLo != 1 {
		t.Errorf("Unexpected whiskers %+v", b)
	}
	if diff := cmp.Diff([]float64{100}, b.Outliers); diff != "" {
		t.Errorf("Outlier mismatch (-want +got):\n%s", diff)
	}
}

func TestBoxDegenerate(t *testing.T) {
	b, err := Box([]float64{0.3})
	if err != nil {
		t.Fatal(err)
	}
	if b.Q1 != 0.3 || b.Q3 != 0.3 || b.WhiskerLo != 0.3 || b.WhiskerHi != 0.3 {
		t.Errorf("Unexpected single-value box %+v", b)
	}

	if _, err := Box([]float64{math.NaN()}); err == nil {
		t.Error("Expected an error with no finite values")
	}
}
