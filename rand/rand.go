// Package rand implements weighted resampling of importance samples.
package rand

import (
	"fmt"
	"math"
	"sort"

	"github.com/milosgajdos/go-evidence/matrix"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// RouletteDrawN draws n numbers randomly from a probability mass function (PMF) defined by weights in p.
// RouletteDrawN implements the Roulette Wheel Draw a.k.a. Fitness Proportionate Selection:
// - https://en.wikipedia.org/wiki/Fitness_proportionate_selection
// - http://www.keithschwarz.com/darts-dice-coins/
// The weights in p do not need to be normalized. If src is nil, the global source is used.
// It returns a slice of n indices into the vector p.
// It fails with error if p is empty, if n is negative or if p does not define a valid PMF.
func RouletteDrawN(p []float64, n int, src rand.Source) ([]int, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("invalid probability weights: %v", p)
	}

	if n < 0 {
		return nil, fmt.Errorf("invalid number of draws: %d", n)
	}

	for i, w := range p {
		if !(w >= 0) {
			return nil, fmt.Errorf("invalid probability weight %d: %v", i, w)
		}
	}

	// Initialization: create the discrete CDF
	// We know that cdf is sorted in ascending order
	cdf := make([]float64, len(p))
	floats.CumSum(cdf, p)

	total := cdf[len(cdf)-1]
	if total == 0 || math.IsInf(total, 1) {
		return nil, fmt.Errorf("invalid probability weights sum: %v", total)
	}

	unit := distuv.Uniform{Min: 0, Max: 1, Src: src}

	// Generation:
	// 1. Generate a uniformly-random value x in the range [0,1)
	// 2. Using a binary search, find the index of the smallest element in cdf larger than x
	var val float64
	indices := make([]int, n)
	for i := range indices {
		// multiply the sample with the largest CDF value; easier than normalizing to [0,1)
		val = unit.Rand() * total
		// Search returns the smallest index i such that cdf[i] > val
		indices[i] = sort.Search(len(cdf), func(i int) bool { return cdf[i] > val })
	}

	return indices, nil
}

// Resample draws n samples from the rows of theta with probabilities proportional to
// importance sampling weights w and returns them stored in the rows of the returned matrix.
// The returned samples are unweighted draws from the importance sampling posterior.
// It returns error if len(w) does not match the number of rows of theta or if the weights are invalid.
func Resample(theta *mat.Dense, w []float64, n int, src rand.Source) (*mat.Dense, error) {
	rows, _ := theta.Dims()
	if rows != len(w) {
		return nil, fmt.Errorf("invalid number of weights: %d, expected: %d", len(w), rows)
	}

	if n <= 0 {
		return nil, fmt.Errorf("invalid number of samples requested: %d", n)
	}

	indices, err := RouletteDrawN(w, n, src)
	if err != nil {
		return nil, fmt.Errorf("failed to draw sample indices: %w", err)
	}

	return matrix.Rows(theta, indices)
}
