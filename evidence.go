package evidence

import "gonum.org/v1/gonum/mat"

// Prior is a prior distribution over model parameters
type Prior interface {
	// LogProb returns log-prior of parameters theta.
	// It returns math.Inf(-1) when theta lies outside of the prior support.
	LogProb(theta mat.Vector) (float64, error)
}

// Likelihood is a likelihood of the observed data given model parameters
type Likelihood interface {
	// LogProb returns log-likelihood of the observed data given parameters theta.
	// Implementations which fail to simulate the data for theta should
	// return an error which wraps ErrSimulationFailed.
	LogProb(theta mat.Vector) (float64, error)
}
