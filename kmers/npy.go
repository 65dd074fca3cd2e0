package kmers

import (
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"
)

// Read parses a NumPy .npy array of k-mer presence/absence calls into a dense
// matrix with one row per k-mer and one column per probe. One-dimensional
// arrays become a single column. Column-major (Fortran order) arrays are
// reordered so that the result is always indexed as (k-mer, probe).
func Read(r io.Reader) (*mat.Dense, error) {
	npr, err := gonpy.NewReader(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var rows, cols int
	switch len(npr.Shape) {
	case 1:
		rows, cols = npr.Shape[0], 1
	case 2:
		rows, cols = npr.Shape[0], npr.Shape[1]
	default:
		return nil, pfx.Err(fmt.Errorf("expected a 1- or 2-dimensional array, got shape %v", npr.Shape))
	}

	if rows == 0 || cols == 0 {
		return nil, pfx.Err(fmt.Errorf("array with shape %v is empty", npr.Shape))
	}

	data, err := readFloat64(npr)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(data) != rows*cols {
		return nil, pfx.Err(fmt.Errorf("array with shape %v held %d values", npr.Shape, len(data)))
	}

	if !npr.ColumnMajor || cols == 1 {
		return mat.NewDense(rows, cols, data), nil
	}

	// Fortran order: the flat data is laid out column by column, so it reads
	// as the transpose.
	transposed := mat.NewDense(cols, rows, data)
	out := mat.NewDense(rows, cols, nil)
	out.Copy(transposed.T())

	return out, nil
}

// readFloat64 reads the array body, converting any supported numeric dtype to
// float64.
func readFloat64(npr *gonpy.NpyReader) ([]float64, error) {
	dtype := strings.TrimLeft(npr.Dtype, "<>|=")

	switch dtype {
	case "f8":
		return npr.GetFloat64()
	case "f4":
		v, err := npr.GetFloat32()
		return widen(v, err)
	case "i8":
		v, err := npr.GetInt64()
		return widen(v, err)
	case "i4":
		v, err := npr.GetInt32()
		return widen(v, err)
	case "i2":
		v, err := npr.GetInt16()
		return widen(v, err)
	case "i1":
		v, err := npr.GetInt8()
		return widen(v, err)
	case "u8":
		v, err := npr.GetUint64()
		return widen(v, err)
	case "u4":
		v, err := npr.GetUint32()
		return widen(v, err)
	case "u2":
		v, err := npr.GetUint16()
		return widen(v, err)
	case "u1":
		v, err := npr.GetUint8()
		return widen(v, err)
	case "b1":
		// NumPy bools are stored one byte each as 0 or 1.
		npr.Dtype = "u1"
		v, err := npr.GetUint8()
		return widen(v, err)
	}

	return nil, fmt.Errorf("unsupported dtype %q; save the array as an integer or float type (e.g. arr.astype(np.uint8))", npr.Dtype)
}

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32
}

func widen[T number](v []T, err error) ([]float64, error) {
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}

	return out, nil
}
