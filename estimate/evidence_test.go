package estimate

import (
	"math"
	"testing"

	evidence "github.com/milosgajdos/go-evidence"
	"github.com/stretchr/testify/assert"
)

func TestLogEvidence(t *testing.T) {
	assert := assert.New(t)

	e, err := LogEvidence([]float64{0, 1, 2})
	assert.NoError(err)
	assert.InDelta(1.3089936757762708, e.LogZ, 1e-9)
	assert.InDelta(0.4209628541297575, e.Std, 1e-9)

	// uniform weights: the estimate is exact
	e, err = LogEvidence([]float64{-3, -3, -3, -3})
	assert.NoError(err)
	assert.InDelta(-3.0, e.LogZ, 1e-12)
	assert.InDelta(0.0, e.Std, 1e-6)
	assert.False(math.IsNaN(e.Std))

	// large magnitudes must not overflow
	e, err = LogEvidence([]float64{-1000, -1000})
	assert.NoError(err)
	assert.InDelta(-1000.0, e.LogZ, 1e-9)

	// samples with zero weight still count
	e, err = LogEvidence([]float64{math.Inf(-1), 0})
	assert.NoError(err)
	assert.InDelta(-math.Log(2), e.LogZ, 1e-12)
	assert.InDelta(math.Sqrt(0.5), e.Std, 1e-12)

	_, err = LogEvidence([]float64{math.Inf(-1), math.Inf(-1)})
	assert.ErrorIs(err, evidence.ErrDegenerateWeights)

	_, err = LogEvidence(nil)
	assert.ErrorIs(err, evidence.ErrDegenerateWeights)
}

func TestEvidenceString(t *testing.T) {
	assert := assert.New(t)

	e := &Evidence{LogZ: 1.5, Std: 0.25}
	assert.Equal("Evidence{LogZ=1.5, Std=0.25}", e.String())
}
