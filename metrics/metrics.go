// Package metrics scores how well each k-mer's presence explains the probe
// intensities measured for one RNA-binding protein, producing the three
// RNAcompete k-mer summaries: Z-score, AUC and E-score.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrNoIntensities is returned when every intensity for a target is missing.
var ErrNoIntensities = errors.New("no finite intensities")

// Triple holds one value per k-mer for each summary. Entries are NaN where
// the summary is undefined for that k-mer.
type Triple struct {
	ZScores []float64
	AUCs    []float64
	EScores []float64
}

// Compute scores every k-mer (row of pa) against the intensities of the
// probes (columns of pa). A k-mer is present in a probe when its entry is
// positive. Probes whose intensity is NaN are ignored.
//
// The Z-score is the standardized median intensity of the probes containing
// the k-mer. The AUC is the area under the ROC curve when intensity is used
// to separate probes with the k-mer from probes without it. The E-score is
// the same area computed over only the brighter half of each group, shifted
// by -0.5 so that it lies in [-0.5, 0.5].
func Compute(pa mat.Matrix, intensities []float64) (Triple, error) {
	rows, cols := pa.Dims()
	if len(intensities) != cols {
		return Triple{}, pfx.Err(fmt.Errorf("matrix has %d probes but %d intensities were given", cols, len(intensities)))
	}

	// Probe indices with a usable intensity, sorted by ascending intensity.
	order := make([]int, 0, cols)
	for j, v := range intensities {
		if !math.IsNaN(v) {
			order = append(order, j)
		}
	}
	if len(order) == 0 {
		return Triple{}, ErrNoIntensities
	}
	sort.SliceStable(order, func(i, j int) bool { return intensities[order[i]] < intensities[order[j]] })

	y := make([]float64, len(order))
	for i, j := range order {
		y[i] = intensities[j]
	}

	out := Triple{
		ZScores: make([]float64, rows),
		AUCs:    make([]float64, rows),
		EScores: make([]float64, rows),
	}

	medians := out.ZScores
	classes := make([]bool, len(order))
	fg := make([]float64, 0, len(order))

	for i := 0; i < rows; i++ {
		fg = fg[:0]
		for k, j := range order {
			classes[k] = pa.At(i, j) > 0
			if classes[k] {
				fg = append(fg, y[k])
			}
		}

		medians[i] = sortedMedian(fg)
		out.AUCs[i] = AUC(y, classes)
		out.EScores[i] = EScore(y, classes)
	}

	standardize(medians)

	return out, nil
}

// AUC returns the area under the ROC curve for y as a score of classes. y
// must be sorted in ascending order. Tied scores contribute half credit. The
// result is NaN if either class is empty.
func AUC(y []float64, classes []bool) float64 {
	pos := 0
	for _, c := range classes {
		if c {
			pos++
		}
	}
	if pos == 0 || pos == len(classes) {
		return math.NaN()
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)

	return integrate.Trapezoidal(fpr, tpr)
}

// EScore restricts y to the brightest half of the positive and of the
// negative observations (rounding up), and returns AUC - 0.5 over that
// subset. y must be sorted in ascending order.
func EScore(y []float64, classes []bool) float64 {
	pos := 0
	for _, c := range classes {
		if c {
			pos++
		}
	}
	neg := len(classes) - pos
	if pos == 0 || neg == 0 {
		return math.NaN()
	}

	posTop, negTop := (pos+1)/2, (neg+1)/2

	// Walk from the brightest probe down, then reverse so that the subset is
	// ascending again.
	subY := make([]float64, 0, posTop+negTop)
	subC := make([]bool, 0, posTop+negTop)
	for k := len(y) - 1; k >= 0 && (posTop > 0 || negTop > 0); k-- {
		if classes[k] && posTop > 0 {
			posTop--
		} else if !classes[k] && negTop > 0 {
			negTop--
		} else {
			continue
		}
		subY = append(subY, y[k])
		subC = append(subC, classes[k])
	}

	for i, j := 0, len(subY)-1; i < j; i, j = i+1, j-1 {
		subY[i], subY[j] = subY[j], subY[i]
		subC[i], subC[j] = subC[j], subC[i]
	}

	return AUC(subY, subC) - 0.5
}

// sortedMedian returns the median of x, which must already be sorted. Even
// lengths average the two middle values. Empty input gives NaN.
func sortedMedian(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return x[n/2]
	}

	return (x[n/2-1] + x[n/2]) / 2
}

// standardize replaces each finite value of x with its z-score relative to
// the finite values of x (sample standard deviation). If fewer than two finite
// values exist or they do not vary, every entry becomes NaN.
func standardize(x []float64) {
	finite := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}

	mean, sd := math.NaN(), math.NaN()
	if len(finite) >= 2 {
		mean, sd = stat.MeanStdDev(finite, nil)
	}

	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.IsNaN(sd) || sd == 0 {
			x[i] = math.NaN()
			continue
		}
		x[i] = (v - mean) / sd
	}
}
