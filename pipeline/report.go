package pipeline

import (
	"context"
	"fmt"
	"math"

	evidence "github.com/milosgajdos/go-evidence"
	"github.com/milosgajdos/go-evidence/efficiency"
	"github.com/milosgajdos/go-evidence/estimate"
	"github.com/milosgajdos/go-evidence/matrix"
	isrand "github.com/milosgajdos/go-evidence/rand"
	"github.com/milosgajdos/go-evidence/weights"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Report is importance sampling report
type Report struct {
	// Theta stores proposal samples in its rows
	Theta *mat.Dense
	// LogProbs are proposal log-probabilities
	LogProbs []float64
	// LogPriors are sample log-priors
	LogPriors []float64
	// LogLikelihoods are sample log-likelihoods
	LogLikelihoods []float64
	// RawLogWeights are raw (unnormalized) log-weights
	RawLogWeights []float64
	// Weights are normalized weights; they sum up to the number of samples
	Weights []float64
	// Clipped are normalized weights computed from clipped log-weights.
	// It's nil unless clipping was requested.
	Clipped []float64
	// Failed is the number of failed simulations
	Failed int
	// Efficiency stores sampling and simulation efficiency
	Efficiency *efficiency.Efficiency
	// Evidence is log-evidence estimate
	Evidence *estimate.Evidence
	// Posterior is weighted posterior estimate
	Posterior *estimate.Posterior
}

// Run runs importance sampling for proposal samples stored in the rows of theta
// with proposal log-probabilities logProbs and returns the report.
// It evaluates prior and likelihood of every sample, computes the importance
// sampling weights, efficiency, log-evidence and posterior estimates.
// It returns error if the inputs are not aligned, if any evaluation fails
// or if the resulting weights are degenerate.
func Run(ctx context.Context, theta *mat.Dense, logProbs []float64, prior evidence.Prior, lik evidence.Likelihood, c Config) (*Report, error) {
	rows, _ := theta.Dims()
	if rows != len(logProbs) {
		return nil, fmt.Errorf("%w: samples: %d, log-probs: %d", evidence.ErrShapeMismatch, rows, len(logProbs))
	}

	results, err := Evaluate(ctx, theta, prior, lik, c.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate samples: %w", err)
	}

	r := &Report{
		Theta:          theta,
		LogProbs:       logProbs,
		LogPriors:      make([]float64, rows),
		LogLikelihoods: make([]float64, rows),
	}

	for i, res := range results {
		r.LogPriors[i] = res.LogPrior
		r.LogLikelihoods[i] = res.LogLikelihood
		if res.Failed {
			r.Failed++
		}
	}

	r.RawLogWeights, r.Weights, err = weights.Compute(r.LogLikelihoods, r.LogPriors, r.LogProbs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute weights: %w", err)
	}

	if c.ClipPercentile > 0 {
		r.Clipped, err = weights.ClipAndNormalize(r.RawLogWeights, c.ClipPercentile)
		if err != nil {
			return nil, fmt.Errorf("failed to clip weights: %w", err)
		}
	}

	r.Efficiency, err = efficiency.Compute(r.Weights, r.LogPriors)
	if err != nil {
		return nil, fmt.Errorf("failed to compute efficiency: %w", err)
	}

	r.Evidence, err = estimate.LogEvidence(r.RawLogWeights)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate evidence: %w", err)
	}

	r.Posterior, err = estimate.NewPosterior(r.Theta, r.Weights)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate posterior: %w", err)
	}

	return r, nil
}

// InSupport returns the samples which lie inside of prior support together with their weights.
// It returns error if no sample lies inside of prior support.
func (r *Report) InSupport() (*mat.Dense, []float64, error) {
	keep := make([]bool, len(r.LogPriors))
	for i, lp := range r.LogPriors {
		keep[i] = lp > math.Inf(-1)
	}

	theta, err := matrix.Mask(r.Theta, keep)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to select samples: %w", err)
	}

	w, err := matrix.MaskFloats(r.Weights, keep)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to select weights: %w", err)
	}

	return theta, w, nil
}

// Resample draws n unweighted posterior samples from the weighted proposal samples.
// If src is nil, the global source is used.
func (r *Report) Resample(n int, src rand.Source) (*mat.Dense, error) {
	return isrand.Resample(r.Theta, r.Weights, n, src)
}
