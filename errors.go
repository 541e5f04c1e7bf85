package evidence

import "errors"

var (
	// ErrDegenerateWeights is returned when no sample carries any weight:
	// all log-weights are -Inf or all weights are zero.
	ErrDegenerateWeights = errors.New("degenerate weights")
	// ErrShapeMismatch is returned when aligned inputs differ in length.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidPercentile is returned when a clipping percentile is outside of (0, 100].
	ErrInvalidPercentile = errors.New("invalid percentile")
	// ErrNonFiniteProposal is returned when a proposal log-probability is not finite.
	ErrNonFiniteProposal = errors.New("non-finite proposal log-probability")
	// ErrNegativeWeight is returned when an importance weight is negative.
	ErrNegativeWeight = errors.New("negative weight")
	// ErrSimulationFailed signals that the simulator failed for a given sample.
	ErrSimulationFailed = errors.New("simulation failed")
)
