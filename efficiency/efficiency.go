// Package efficiency implements importance sampling efficiency diagnostics.
package efficiency

import (
	"fmt"
	"math"

	evidence "github.com/milosgajdos/go-evidence"
	"gonum.org/v1/gonum/floats"
)

// Efficiency holds importance sampling efficiency diagnostics
type Efficiency struct {
	// NEff is effective sample size
	NEff float64
	// Sampling is the number of effective samples per proposal sample
	Sampling float64
	// Simulation is the number of effective samples per simulator call.
	// It is NaN if it was not computed.
	Simulation float64
}

// HasSimulation returns true if simulation efficiency was computed
func (e *Efficiency) HasSimulation() bool {
	return !math.IsNaN(e.Simulation)
}

// String implements the Stringer interface.
func (e *Efficiency) String() string {
	return fmt.Sprintf("Efficiency{NEff=%g, Sampling=%g, Simulation=%g}", e.NEff, e.Sampling, e.Simulation)
}

// EffectiveSampleSize returns the effective sample size of weights w:
//   n_eff = (sum(w))^2 / sum(w^2)
// It equals len(w) for uniform weights and approaches 1 when the weight
// concentrates on a single sample. w does not need to be normalized.
// NaN weights are not masked: they propagate.
// It returns error if w is empty, if any weight is negative or if all weights are zero.
func EffectiveSampleSize(w []float64) (float64, error) {
	if len(w) == 0 {
		return 0, fmt.Errorf("%w: no samples", evidence.ErrDegenerateWeights)
	}

	for i, x := range w {
		if x < 0 {
			return 0, fmt.Errorf("%w: sample %d: %v", evidence.ErrNegativeWeight, i, x)
		}
	}

	sumSq := floats.Dot(w, w)
	if sumSq == 0 {
		return 0, fmt.Errorf("%w: all weights are zero", evidence.ErrDegenerateWeights)
	}

	sum := floats.Sum(w)

	return sum * sum / sumSq, nil
}

// Compute computes effective sample size, sampling efficiency and, if logPriors
// is not nil, simulation efficiency of importance sampling weights w.
// Simulation efficiency only counts the samples inside of prior support (logPrior > -Inf)
// because those are the only samples which were simulated; it is therefore never
// smaller than sampling efficiency.
// It returns error if w and logPriors differ in length, if the weights are
// invalid or degenerate, or if all samples are outside of prior support.
func Compute(w []float64, logPriors []float64) (*Efficiency, error) {
	if logPriors != nil && len(logPriors) != len(w) {
		return nil, fmt.Errorf("%w: weights: %d, log-priors: %d", evidence.ErrShapeMismatch, len(w), len(logPriors))
	}

	nEff, err := EffectiveSampleSize(w)
	if err != nil {
		return nil, err
	}

	e := &Efficiency{
		NEff:       nEff,
		Sampling:   nEff / float64(len(w)),
		Simulation: math.NaN(),
	}

	if logPriors == nil {
		return e, nil
	}

	nSim := floats.Count(func(x float64) bool { return x > math.Inf(-1) }, logPriors)
	if nSim == 0 {
		return nil, fmt.Errorf("%w: all samples have zero prior mass", evidence.ErrDegenerateWeights)
	}
	e.Simulation = nEff / float64(nSim)

	return e, nil
}
