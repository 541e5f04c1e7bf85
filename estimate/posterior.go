package estimate

import (
	"fmt"

	evidence "github.com/milosgajdos/go-evidence"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Posterior is an importance sampling estimate of a posterior distribution
type Posterior struct {
	// val is weighted posterior mean
	val *mat.VecDense
	// cov is weighted posterior covariance
	cov *mat.SymDense
}

// NewPosterior computes posterior mean and covariance of samples theta
// weighted by importance sampling weights w and returns it.
// theta stores the samples in its rows: row i is weighted by w[i].
// w does not need to be normalized.
// It returns error if the number of samples does not match the number of weights,
// or if the weights are negative or all zero.
func NewPosterior(theta mat.Matrix, w []float64) (*Posterior, error) {
	rows, cols := theta.Dims()
	if rows != len(w) {
		return nil, fmt.Errorf("%w: samples: %d, weights: %d", evidence.ErrShapeMismatch, rows, len(w))
	}

	for i, x := range w {
		if x < 0 {
			return nil, fmt.Errorf("%w: sample %d: %v", evidence.ErrNegativeWeight, i, x)
		}
	}

	sum := floats.Sum(w)
	if sum == 0 {
		return nil, fmt.Errorf("%w: all weights are zero", evidence.ErrDegenerateWeights)
	}

	// stat.CovarianceMatrix treats weights as frequencies,
	// so we scale them to sum up to the number of samples
	fw := make([]float64, len(w))
	floats.ScaleTo(fw, float64(rows)/sum, w)

	val := mat.NewVecDense(cols, nil)
	col := make([]float64, rows)
	for c := 0; c < cols; c++ {
		mat.Col(col, c, theta)
		val.SetVec(c, stat.Mean(col, fw))
	}

	cov := mat.NewSymDense(cols, nil)
	if rows > 1 {
		stat.CovarianceMatrix(cov, theta, fw)
	}

	return &Posterior{
		val: val,
		cov: cov,
	}, nil
}

// Val returns posterior mean
func (p *Posterior) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(p.val)

	return v
}

// Cov returns posterior covariance
func (p *Posterior) Cov() mat.Symmetric {
	cov := mat.NewSymDense(p.cov.SymmetricDim(), nil)
	cov.CopySym(p.cov)

	return cov
}
