// Package matrix provides helpers to select samples stored in matrix rows.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Rows returns a new matrix which contains the rows of m at indices idx, in the order given by idx.
// Indices may repeat. It returns error if idx is empty or if any index is out of range.
func Rows(m mat.Matrix, idx []int) (*mat.Dense, error) {
	if len(idx) == 0 {
		return nil, fmt.Errorf("invalid row indices: %v", idx)
	}

	rows, cols := m.Dims()
	out := mat.NewDense(len(idx), cols, nil)

	for i, r := range idx {
		if r < 0 || r >= rows {
			return nil, fmt.Errorf("row index out of range: %d", r)
		}
		for c := 0; c < cols; c++ {
			out.Set(i, c, m.At(r, c))
		}
	}

	return out, nil
}

// Mask returns a new matrix which contains the rows of m for which keep is true.
// It returns error if len(keep) does not match the number of rows of m or if no row is kept.
func Mask(m mat.Matrix, keep []bool) (*mat.Dense, error) {
	rows, _ := m.Dims()
	if rows != len(keep) {
		return nil, fmt.Errorf("invalid mask size: %d, expected: %d", len(keep), rows)
	}

	return Rows(m, Indices(keep))
}

// MaskFloats returns a new slice which contains the elements of x for which keep is true.
// It returns error if x and keep differ in length.
func MaskFloats(x []float64, keep []bool) ([]float64, error) {
	if len(x) != len(keep) {
		return nil, fmt.Errorf("invalid mask size: %d, expected: %d", len(keep), len(x))
	}

	out := make([]float64, 0, len(x))
	for i, k := range keep {
		if k {
			out = append(out, x[i])
		}
	}

	return out, nil
}

// Indices returns the indices of keep which are true.
func Indices(keep []bool) []int {
	var idx []int
	for i, k := range keep {
		if k {
			idx = append(idx, i)
		}
	}

	return idx
}
