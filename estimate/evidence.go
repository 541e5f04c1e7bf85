// Package estimate implements importance sampling estimates of the Bayesian
// evidence and of the posterior distribution.
package estimate

import (
	"fmt"
	"math"

	"github.com/milosgajdos/go-evidence/efficiency"
	"github.com/milosgajdos/go-evidence/weights"
	"gonum.org/v1/gonum/floats"
)

// Evidence is an estimate of the log-evidence (log of the marginal likelihood)
type Evidence struct {
	// LogZ is log-evidence estimate
	LogZ float64
	// Std is standard deviation of LogZ
	Std float64
}

// LogEvidence estimates the log-evidence from raw log-weights and returns it.
// The estimate is the log of the mean of the raw weights:
//   log(Z) = LSE(raw) - log(N)
// and its standard deviation is computed from the effective sample size:
//   std = sqrt((N - n_eff) / (N * n_eff))
// It returns error if the weights are degenerate.
func LogEvidence(raw []float64) (*Evidence, error) {
	w, err := weights.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize weights: %w", err)
	}

	nEff, err := efficiency.EffectiveSampleSize(w)
	if err != nil {
		return nil, fmt.Errorf("failed to compute effective sample size: %w", err)
	}

	n := float64(len(raw))
	// nEff may exceed n by round-off for uniform weights
	variance := math.Max(n-nEff, 0) / (n * nEff)

	return &Evidence{
		LogZ: floats.LogSumExp(raw) - math.Log(n),
		Std:  math.Sqrt(variance),
	}, nil
}

// String implements the Stringer interface.
func (e *Evidence) String() string {
	return fmt.Sprintf("Evidence{LogZ=%g, Std=%g}", e.LogZ, e.Std)
}
