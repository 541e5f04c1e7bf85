// Package pipeline evaluates prior and likelihood of proposal samples concurrently
// and turns the results into importance sampling weights and diagnostics.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	evidence "github.com/milosgajdos/go-evidence"
	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/mat"
)

// Config is importance sampling pipeline configuration
type Config struct {
	// Workers is the number of concurrent sample evaluations.
	// If it's not positive, runtime.NumCPU() workers are used.
	Workers int
	// ClipPercentile, if positive, is the percentile at which raw log-weights
	// are clipped to compute Report.Clipped. It must be in (0, 100].
	ClipPercentile float64
}

// Task is a single sample evaluation task
type Task struct {
	// Index is sample index
	Index int
	// Theta stores sample parameters
	Theta mat.Vector
}

// Result is a result of a sample evaluation Task
type Result struct {
	// Index is sample index
	Index int
	// LogPrior is sample log-prior
	LogPrior float64
	// LogLikelihood is sample log-likelihood.
	// It's -Inf if the sample was not simulated or if the simulation failed.
	LogLikelihood float64
	// Simulated is true if the sample lies inside of prior support
	// and the simulator was called for it
	Simulated bool
	// Failed is true if the simulation failed
	Failed bool
}

// Process evaluates prior and likelihood of the task sample and returns the result.
// The likelihood is only evaluated if the sample lies inside of prior support.
// Failed simulations, signalled by errors which wrap evidence.ErrSimulationFailed,
// give the sample zero likelihood.
// It returns error if the prior fails or if the likelihood fails for any other reason.
func Process(t Task, prior evidence.Prior, lik evidence.Likelihood) (Result, error) {
	logPrior, err := prior.LogProb(t.Theta)
	if err != nil {
		return Result{}, fmt.Errorf("sample %d: prior evaluation failed: %w", t.Index, err)
	}

	res := Result{
		Index:         t.Index,
		LogPrior:      logPrior,
		LogLikelihood: math.Inf(-1),
	}

	// zero prior: the weight is zero regardless of the likelihood
	if math.IsInf(logPrior, -1) {
		return res, nil
	}

	res.Simulated = true
	logL, err := lik.LogProb(t.Theta)
	if err != nil {
		if errors.Is(err, evidence.ErrSimulationFailed) {
			res.Failed = true
			return res, nil
		}
		return Result{}, fmt.Errorf("sample %d: likelihood evaluation failed: %w", t.Index, err)
	}
	res.LogLikelihood = logL

	return res, nil
}

// Evaluate evaluates prior and likelihood of all samples stored in the rows of theta
// using up to workers concurrent workers and returns the results ordered by sample index.
// Every worker receives its own copy of the sample parameters.
// It returns error if any sample evaluation fails or if ctx is cancelled.
func Evaluate(ctx context.Context, theta mat.Matrix, prior evidence.Prior, lik evidence.Likelihood, workers int) ([]Result, error) {
	if prior == nil || lik == nil {
		return nil, fmt.Errorf("invalid prior or likelihood")
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rows, cols := theta.Dims()

	p := pool.NewWithResults[Result]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(workers)

	for i := 0; i < rows; i++ {
		task := Task{
			Index: i,
			Theta: mat.NewVecDense(cols, mat.Row(nil, i, theta)),
		}
		p.Go(func(ctx context.Context) (Result, error) {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			return Process(task, prior, lik)
		})
	}

	res, err := p.Wait()
	if err != nil {
		return nil, err
	}

	results := make([]Result, rows)
	for _, r := range res {
		results[r.Index] = r
	}

	return results, nil
}
