package concordance

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrTooFewPairs means a correlation was requested over fewer than two paired
// values, where it is undefined.
var ErrTooFewPairs = errors.New("fewer than 2 paired finite values")

// PairedFinite returns copies of a and b without the positions at which
// either value is NaN or infinite.
func PairedFinite(a, b []float64) ([]float64, []float64, error) {
	if len(a) != len(b) {
		return nil, nil, fmt.Errorf("cannot pair %d values with %d values", len(a), len(b))
	}

	outA := make([]float64, 0, len(a))
	outB := make([]float64, 0, len(b))
	for i := range a {
		if !finite(a[i]) || !finite(b[i]) {
			continue
		}
		outA = append(outA, a[i])
		outB = append(outB, b[i])
	}

	return outA, outB, nil
}

// Pearson returns the Pearson product-moment correlation of x and y. If
// either input is constant the result is NaN.
func Pearson(x, y []float64) (float64, error) {
	if err := checkPairs(x, y); err != nil {
		return math.NaN(), err
	}

	return clamp(stat.Correlation(x, y, nil)), nil
}

// Spearman returns the Spearman rank correlation of x and y: the Pearson
// correlation of their ranks, with tied values sharing their average rank.
func Spearman(x, y []float64) (float64, error) {
	if err := checkPairs(x, y); err != nil {
		return math.NaN(), err
	}

	return clamp(stat.Correlation(Rank(x), Rank(y), nil)), nil
}

// Rank returns the 1-based fractional ranks of x. Ties receive the mean of
// the ranks they span.
func Rank(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })

	ranks := make([]float64, len(x))
	for start := 0; start < len(idx); {
		end := start + 1
		for end < len(idx) && x[idx[end]] == x[idx[start]] {
			end++
		}

		// Positions start..end-1 hold ranks start+1..end.
		avg := float64(start+1+end) / 2
		for _, i := range idx[start:end] {
			ranks[i] = avg
		}
		start = end
	}

	return ranks
}

func checkPairs(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("cannot correlate %d values with %d values", len(x), len(y))
	}
	if len(x) < 2 {
		return ErrTooFewPairs
	}

	return nil
}

// clamp pins rounding excursions back into [-1, 1]. NaN passes through.
func clamp(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}

	return r
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
