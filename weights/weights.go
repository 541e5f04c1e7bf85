// Package weights computes importance sampling weights in log-space.
package weights

import (
	"fmt"
	"math"
	"sort"

	evidence "github.com/milosgajdos/go-evidence"
	"gonum.org/v1/gonum/floats"
)

// Percentile returns the p-th percentile of x, p being in (0, 100].
// The percentile is linearly interpolated between the two closest ranks of the
// sorted x, the lowest value having rank 0 and the largest rank len(x)-1.
// Interpolating between -Inf and a finite value yields -Inf. If x contains NaN, NaN is returned.
// It returns error if x is empty or if p is outside of (0, 100].
func Percentile(x []float64, p float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("invalid input size: %d", len(x))
	}

	if !(p > 0 && p <= 100) {
		return 0, fmt.Errorf("%w: %v", evidence.ErrInvalidPercentile, p)
	}

	if floats.HasNaN(x) {
		return math.NaN(), nil
	}

	s := make([]float64, len(x))
	copy(s, x)
	sort.Float64s(s)

	h := float64(len(s)-1) * p / 100
	lo := int(math.Floor(h))
	if lo >= len(s)-1 {
		return s[len(s)-1], nil
	}

	frac := h - float64(lo)
	a, b := s[lo], s[lo+1]
	if frac == 0 || a == b || math.IsInf(a, -1) {
		return a, nil
	}

	return a + frac*(b-a), nil
}

// Normalize normalizes raw log-weights so that the returned weights sum up to len(raw).
// Log-weights equal to -Inf get zero weight. NaN log-weights are not masked: they propagate.
// Normalize does not modify raw.
// It returns error if raw is empty or if all log-weights are -Inf.
func Normalize(raw []float64) ([]float64, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no samples", evidence.ErrDegenerateWeights)
	}

	// In linear space the normalized weights are:
	//   w_i = N * exp(x_i) / sum(exp(x_j))
	// which in log space becomes:
	//   w_i = exp(log(N) + x_i - LSE(x))
	// LSE stays finite for log-weights in the hundreds.
	lse := floats.LogSumExp(raw)
	if math.IsInf(lse, -1) {
		return nil, fmt.Errorf("%w: all log-weights are -Inf", evidence.ErrDegenerateWeights)
	}

	logN := math.Log(float64(len(raw)))
	w := make([]float64, len(raw))
	for i, x := range raw {
		w[i] = math.Exp(logN + x - lse)
	}

	return w, nil
}

// ClipAndNormalize clips raw log-weights at the given percentile and normalizes them.
// Every log-weight above the percentile threshold is replaced by the threshold.
// Clipping reduces the variance of the weights at the cost of introducing bias.
// ClipAndNormalize does not modify raw.
// It returns error if percentile is outside of (0, 100] or if the clipped weights are degenerate.
func ClipAndNormalize(raw []float64, percentile float64) ([]float64, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no samples", evidence.ErrDegenerateWeights)
	}

	threshold, err := Percentile(raw, percentile)
	if err != nil {
		return nil, fmt.Errorf("failed to compute clipping threshold: %w", err)
	}

	clipped := make([]float64, len(raw))
	for i, x := range raw {
		clipped[i] = math.Min(x, threshold)
	}

	return Normalize(clipped)
}

// Compute computes importance sampling weights from aligned per-sample log-likelihoods,
// log-priors and proposal log-probabilities and returns both the raw log-weights
//   raw_i = logL_i + logPrior_i - logProb_i
// and the normalized weights which sum up to the number of samples. No clipping is applied.
// Log-likelihoods and log-priors can be -Inf; proposal log-probabilities must be finite.
// It returns error if the inputs differ in length, if any proposal log-probability
// is not finite or if the weights are degenerate.
func Compute(logLikelihoods, logPriors, logProbs []float64) ([]float64, []float64, error) {
	if len(logLikelihoods) != len(logPriors) || len(logLikelihoods) != len(logProbs) {
		return nil, nil, fmt.Errorf("%w: log-likelihoods: %d, log-priors: %d, log-probs: %d",
			evidence.ErrShapeMismatch, len(logLikelihoods), len(logPriors), len(logProbs))
	}

	for i, lp := range logProbs {
		if math.IsInf(lp, 0) || math.IsNaN(lp) {
			return nil, nil, fmt.Errorf("%w: sample %d: %v", evidence.ErrNonFiniteProposal, i, lp)
		}
	}

	raw := make([]float64, len(logLikelihoods))
	floats.AddTo(raw, logLikelihoods, logPriors)
	floats.Sub(raw, logProbs)

	w, err := Normalize(raw)
	if err != nil {
		return nil, nil, err
	}

	return raw, w, nil
}
