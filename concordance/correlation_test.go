package concordance

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"
)

func TestPairedFinite(t *testing.T) {
	a := []float64{1, math.NaN(), 3, 4, math.Inf(1)}
	b := []float64{5, 6, math.NaN(), 8, 9}

	pa, pb, err := PairedFinite(a, b)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]float64{1, 4}, pa); diff != "" {
		t.Errorf("set A mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{5, 8}, pb); diff != "" {
		t.Errorf("set B mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := PairedFinite([]float64{1}, []float64{1, 2}); err == nil {
		t.Error("Expected an error for unequal lengths")
	}
}

func TestPearson(t *testing.T) {
	for _, v := range []struct {
		X, Y []float64
		R    float64
	}{
		{[]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8}, 1},
		{[]float64{1, 2, 3, 4}, []float64{8, 6, 4, 2}, -1},
		{[]float64{1, 2, 3}, []float64{1, 3, 2}, 0.5},
	} {
		r, err := Pearson(v.X, v.Y)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(r-v.R) > 1e-12 {
			t.Errorf("Pearson(%v, %v) = %v, expected %v", v.X, v.Y, r, v.R)
		}
	}
}

func TestSpearman(t *testing.T) {
	// Monotone but not linear.
	r, err := Spearman([]float64{1, 2, 3, 4, 5}, []float64{1, 4, 9, 16, 1000})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r-1) > 1e-12 {
		t.Errorf("Expected 1, got %v", r)
	}

	r, err = Spearman([]float64{1, 2, 3}, []float64{3, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r-(-0.5)) > 1e-12 {
		t.Errorf("Expected -0.5, got %v", r)
	}
}

func TestRankTies(t *testing.T) {
	if diff := cmp.Diff([]float64{1, 2.5, 2.5, 4}, Rank([]float64{10, 20, 20, 30})); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]float64{3, 1, 3, 3}, Rank([]float64{5, 1, 5, 5})); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}
}

func TestCorrelationConstantIsNaN(t *testing.T) {
	x := []float64{1, 2, 3}
	c := []float64{4, 4, 4}

	r, err := Pearson(x, c)
	if err != nil || !math.IsNaN(r) {
		t.Errorf("Pearson with a constant input: got %v, %v; expected NaN, nil", r, err)
	}

	r, err = Spearman(c, x)
	if err != nil || !math.IsNaN(r) {
		t.Errorf("Spearman with a constant input: got %v, %v; expected NaN, nil", r, err)
	}
}

func TestCorrelationTooFewPairs(t *testing.T) {
	for _, x := range [][]float64{nil, {1}} {
		if _, err := Pearson(x, x); !errors.Is(err, ErrTooFewPairs) {
			t.Errorf("Pearson over %d values: expected ErrTooFewPairs, got %v", len(x), err)
		}
		if _, err := Spearman(x, x); !errors.Is(err, ErrTooFewPairs) {
			t.Errorf("Spearman over %d values: expected ErrTooFewPairs, got %v", len(x), err)
		}
	}
}

func TestCorrelationBounds(t *testing.T) {
	src := rand.New(rand.NewSource(11))

	for trial := 0; trial < 200; trial++ {
		n := 2 + src.Intn(50)
		x, y := make([]float64, n), make([]float64, n)
		for i := range x {
			x[i] = src.NormFloat64()
			// Mix in a strong linear component so values near +-1 occur.
			y[i] = float64(trial%3-1)*x[i] + 0.01*src.NormFloat64()
		}

		for name, f := range map[string]func(x, y []float64) (float64, error){"Pearson": Pearson, "Spearman": Spearman} {
			r, err := f(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if !math.IsNaN(r) && (r < -1 || r > 1) {
				t.Fatalf("Trial %d: %s = %v is outside [-1, 1]", trial, name, r)
			}
		}
	}
}
