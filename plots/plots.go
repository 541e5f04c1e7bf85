// Package plots creates diagnostic plots of importance sampling results.
package plots

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// NewWeightsHist creates a histogram of log10 of normalized importance sampling weights w.
// Zero weights are not shown. A well-behaved proposal concentrates the weights around 0.
// It returns error if w has no positive finite weight, if bins is not positive
// or if the plot fails to be created.
func NewWeightsHist(w []float64, bins int) (*plot.Plot, error) {
	vals := make(plotter.Values, 0, len(w))
	for _, x := range w {
		if x > 0 && !math.IsInf(x, 1) {
			vals = append(vals, math.Log10(x))
		}
	}

	if len(vals) == 0 {
		return nil, fmt.Errorf("invalid weights: no positive weight")
	}

	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram: %v", err)
	}
	h.FillColor = color.RGBA{R: 255, B: 128, A: 255}

	p := plot.New()
	p.Title.Text = "Importance sampling weights"
	p.X.Label.Text = "log10(weight)"
	p.Y.Label.Text = "count"
	p.Add(h)

	return p, nil
}

// NewMarginalHist creates a histogram of the marginal posterior of the parameter
// stored in column col of theta, weighted by importance sampling weights w.
// The histogram is normalized to unit area. Samples with non-finite values or weights are skipped.
// It returns error if theta and w are not aligned, if col is out of range
// or if the plot fails to be created.
func NewMarginalHist(theta mat.Matrix, col int, w []float64, bins int) (*plot.Plot, error) {
	if theta == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	rows, cols := theta.Dims()
	if rows != len(w) {
		return nil, fmt.Errorf("invalid data dimensions: samples: %d, weights: %d", rows, len(w))
	}

	if col < 0 || col >= cols {
		return nil, fmt.Errorf("invalid parameter column: %d", col)
	}

	pts := make(plotter.XYs, 0, rows)
	for i := 0; i < rows; i++ {
		x := theta.At(i, col)
		if isFinite(x) && isFinite(w[i]) && w[i] > 0 {
			pts = append(pts, plotter.XY{X: x, Y: w[i]})
		}
	}

	if len(pts) == 0 {
		return nil, fmt.Errorf("invalid weights: no positive weight")
	}

	h, err := plotter.NewHistogram(pts, bins)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram: %v", err)
	}
	h.Normalize(1)
	h.FillColor = color.RGBA{R: 169, G: 169, B: 169, A: 255}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Marginal posterior of parameter %d", col)
	p.X.Label.Text = fmt.Sprintf("theta[%d]", col)
	p.Y.Label.Text = "density"
	p.Add(h)

	return p, nil
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
