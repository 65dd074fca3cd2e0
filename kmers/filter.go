package kmers

import (
	"fmt"
	"sort"

	"github.com/carbocation/pfx"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// RowSums returns the sum of each row of m.
func RowSums(m *mat.Dense) []float64 {
	rows, _ := m.Dims()
	out := make([]float64, rows)
	for i := range out {
		out[i] = floats.Sum(m.RawRowView(i))
	}

	return out
}

// SharedSignalMask marks the k-mers that were called present in at least one
// probe of both experiments: mask[i] = rowsum(a)[i] > 0 && rowsum(b)[i] > 0.
func SharedSignalMask(a, b *mat.Dense) ([]bool, error) {
	ra, _ := a.Dims()
	rb, _ := b.Dims()
	if ra != rb {
		return nil, pfx.Err(fmt.Errorf("set A has %d k-mers but set B has %d", ra, rb))
	}

	sumA, sumB := RowSums(a), RowSums(b)

	mask := make([]bool, ra)
	for i := range mask {
		mask[i] = sumA[i] > 0 && sumB[i] > 0
	}

	return mask, nil
}

// MaskIndices returns the positions at which mask is true, in order.
func MaskIndices(mask []bool) []int {
	out := make([]int, 0, len(mask))
	for i, keep := range mask {
		if keep {
			out = append(out, i)
		}
	}

	return out
}

// KeepRows returns a new matrix holding the rows of m at idx, in the order
// given. A nil matrix is returned when idx is empty, since gonum does not
// permit zero-sized dense matrices.
func KeepRows(m *mat.Dense, idx []int) *mat.Dense {
	if len(idx) == 0 {
		return nil
	}

	_, cols := m.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	for i, row := range idx {
		out.SetRow(i, m.RawRowView(row))
	}

	return out
}

// FilterShared applies SharedSignalMask to both matrices, keeping row order.
// The surviving original row indices are returned alongside.
func FilterShared(a, b *mat.Dense) (fa, fb *mat.Dense, kept []int, err error) {
	mask, err := SharedSignalMask(a, b)
	if err != nil {
		return nil, nil, nil, err
	}

	kept = MaskIndices(mask)
	if len(kept) == 0 {
		return nil, nil, kept, pfx.Err(fmt.Errorf("no k-mer was present in both sets"))
	}

	return KeepRows(a, kept), KeepRows(b, kept), kept, nil
}

// Subsample draws n distinct row indices uniformly at random from [0, rows)
// using seed. The indices are returned sorted so the original k-mer order is
// kept. If n <= 0 or n >= rows, every row index is returned.
func Subsample(rows, n int, seed uint64) []int {
	if n <= 0 || n >= rows {
		out := make([]int, rows)
		for i := range out {
			out[i] = i
		}
		return out
	}

	idx := make([]int, n)
	sampleuv.WithoutReplacement(idx, rows, rand.NewSource(seed))
	sort.Ints(idx)

	return idx
}

// SubsamplePair applies the same row subsample to both matrices.
func SubsamplePair(a, b *mat.Dense, n int, seed uint64) (*mat.Dense, *mat.Dense, error) {
	ra, _ := a.Dims()
	rb, _ := b.Dims()
	if ra != rb {
		return nil, nil, pfx.Err(fmt.Errorf("set A has %d k-mers but set B has %d", ra, rb))
	}

	if n <= 0 || n >= ra {
		return a, b, nil
	}

	idx := Subsample(ra, n, seed)

	return KeepRows(a, idx), KeepRows(b, idx), nil
}

// IsBinary reports whether every entry of m is 0 or 1.
func IsBinary(m *mat.Dense) bool {
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		for _, v := range m.RawRowView(i) {
			if v != 0 && v != 1 {
				return false
			}
		}
	}

	return true
}
