package estimate

import (
	"testing"

	evidence "github.com/milosgajdos/go-evidence"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewPosterior(t *testing.T) {
	assert := assert.New(t)

	theta := mat.NewDense(3, 2, []float64{
		1.0, 10.0,
		2.0, 20.0,
		3.0, 30.0,
	})

	p, err := NewPosterior(theta, []float64{1, 1, 1})
	assert.NotNil(p)
	assert.NoError(err)

	p, err = NewPosterior(theta, []float64{1, 1})
	assert.Nil(p)
	assert.ErrorIs(err, evidence.ErrShapeMismatch)

	p, err = NewPosterior(theta, []float64{1, -1, 1})
	assert.Nil(p)
	assert.ErrorIs(err, evidence.ErrNegativeWeight)

	p, err = NewPosterior(theta, []float64{0, 0, 0})
	assert.Nil(p)
	assert.ErrorIs(err, evidence.ErrDegenerateWeights)
}

func TestPosteriorValCov(t *testing.T) {
	assert := assert.New(t)

	theta := mat.NewDense(4, 2, []float64{
		1.0, 2.0,
		3.0, 6.0,
		5.0, 10.0,
		100.0, 100.0,
	})

	// the last sample carries no weight
	p, err := NewPosterior(theta, []float64{1, 1, 1, 0})
	assert.NoError(err)

	val := p.Val()
	assert.InDelta(3.0, val.AtVec(0), 1e-12)
	assert.InDelta(6.0, val.AtVec(1), 1e-12)

	// frequency weights scaled to sum up to 4: sum(w*d^2) / (4-1)
	cov := p.Cov()
	assert.Equal(2, cov.SymmetricDim())
	assert.InDelta(32.0/9.0, cov.At(0, 0), 1e-9)
	assert.InDelta(4*cov.At(0, 0), cov.At(1, 1), 1e-9)
	assert.InDelta(2*cov.At(0, 0), cov.At(0, 1), 1e-9)

	// weight scale does not matter
	p2, err := NewPosterior(theta, []float64{0.25, 0.25, 0.25, 0})
	assert.NoError(err)
	assert.True(mat.EqualApprox(p.Val(), p2.Val(), 1e-12))
	assert.True(mat.EqualApprox(p.Cov(), p2.Cov(), 1e-12))

	// returned values are copies
	v := p.Val().(*mat.VecDense)
	v.SetVec(0, 42.0)
	assert.InDelta(3.0, p.Val().AtVec(0), 1e-12)

	// single sample has zero covariance
	p, err = NewPosterior(mat.NewDense(1, 2, []float64{1, 2}), []float64{1})
	assert.NoError(err)
	assert.InDelta(0.0, p.Cov().At(0, 0), 1e-12)
	assert.InDelta(2.0, p.Val().AtVec(1), 1e-12)
}
