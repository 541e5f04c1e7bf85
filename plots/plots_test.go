package plots

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewWeightsHist(t *testing.T) {
	assert := assert.New(t)

	w := []float64{0, 0.5, 1.0, 1.5, math.NaN()}

	plt, err := NewWeightsHist(w, 10)
	assert.NotNil(plt)
	assert.NoError(err)

	plt, err = NewWeightsHist(w, 0)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewWeightsHist([]float64{0, 0}, 10)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewWeightsHist(nil, 10)
	assert.Nil(plt)
	assert.Error(err)
}

func TestNewMarginalHist(t *testing.T) {
	assert := assert.New(t)

	theta := mat.NewDense(4, 2, []float64{
		1.0, 2.0,
		2.0, 3.0,
		3.0, math.Inf(1),
		4.0, 5.0,
	})
	w := []float64{1, 2, 1, 0}

	plt, err := NewMarginalHist(theta, 0, w, 5)
	assert.NotNil(plt)
	assert.NoError(err)

	plt, err = NewMarginalHist(theta, 1, w, 5)
	assert.NotNil(plt)
	assert.NoError(err)

	plt, err = NewMarginalHist(nil, 0, w, 5)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewMarginalHist(theta, 2, w, 5)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewMarginalHist(theta, 0, w[:2], 5)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewMarginalHist(theta, 0, []float64{0, 0, 0, 0}, 5)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewMarginalHist(theta, 0, w, -1)
	assert.Nil(plt)
	assert.Error(err)
}
