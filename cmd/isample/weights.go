package isample

import (
	"fmt"
	"io"
	"math"

	"github.com/milosgajdos/go-evidence/efficiency"
	"github.com/milosgajdos/go-evidence/estimate"
	"github.com/milosgajdos/go-evidence/plots"
	"github.com/milosgajdos/go-evidence/weights"
	"github.com/milosgajdos/matrix"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/vg"
)

// weightsCmd implements 'weights', which computes importance sampling weights
// and their diagnostics from log-likelihoods, log-priors and proposal log-probabilities.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Compute importance sampling weights and efficiency",
	Long: `The 'weights' command reads a CSV file with log_likelihood, log_prior and log_prob columns
and prints the weight range, the effective sample size, the sampling and simulation efficiency
and the log-evidence estimate. Columns prefixed with theta are treated as parameters
and their weighted posterior mean is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := weightsOptions{
			input:      viper.GetString("weights.input"),
			percentile: viper.GetFloat64("weights.percentile"),
			plot:       viper.GetString("weights.plot"),
			bins:       viper.GetInt("weights.bins"),
		}
		return runWeights(cmd.OutOrStdout(), opts)
	},
}

// weightsOptions configure the weights command.
type weightsOptions struct {
	input      string
	percentile float64
	plot       string
	bins       int
}

func runWeights(out io.Writer, opts weightsOptions) error {
	f, err := openInput(opts.input)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := readSamples(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.input, err)
	}

	raw, w, err := weights.Compute(s.logLiks, s.logPriors, s.logProbs)
	if err != nil {
		return err
	}

	eff, err := efficiency.Compute(w, s.logPriors)
	if err != nil {
		return err
	}

	ev, err := estimate.LogEvidence(raw)
	if err != nil {
		return err
	}

	fields := []field{
		{"samples", fmt.Sprintf("%d", len(w))},
		{"min weight", fmt.Sprintf("%.6g", floats.Min(w))},
		{"max weight", fmt.Sprintf("%.6g", floats.Max(w))},
		{"n_eff", fmt.Sprintf("%.2f", eff.NEff)},
		{"sampling efficiency", fmt.Sprintf("%.4f", eff.Sampling)},
		{"simulation efficiency", fmt.Sprintf("%.4f", eff.Simulation)},
		{"log Z", fmt.Sprintf("%.4f ± %.4f", ev.LogZ, ev.Std)},
	}

	if opts.percentile > 0 {
		clipped, err := weights.ClipAndNormalize(raw, opts.percentile)
		if err != nil {
			return err
		}

		ceff, err := efficiency.Compute(clipped, s.logPriors)
		if err != nil {
			return err
		}

		fields = append(fields,
			field{fmt.Sprintf("clipped max weight (p%g)", opts.percentile), fmt.Sprintf("%.6g", floats.Max(clipped))},
			field{"clipped n_eff", fmt.Sprintf("%.2f", ceff.NEff)},
			field{"clipped sampling efficiency", fmt.Sprintf("%.4f", ceff.Sampling)},
		)
	}

	render(out, "Importance sampling", fields)

	if eff.Sampling < 0.01 {
		fmt.Fprintln(out, warnStyle.Render("warning: sampling efficiency below 1%; the estimates are unreliable"))
	}

	if s.theta != nil {
		post, err := estimate.NewPosterior(s.theta, w)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, titleStyle.Render("Posterior mean"))
		for i, name := range s.names {
			fmt.Fprintf(out, "%s  %s\n", labelStyle.Render("  "+name), valueStyle.Render(fmt.Sprintf("%.6g", post.Val().AtVec(i))))
		}
		fmt.Fprintln(out, titleStyle.Render("Posterior covariance"))
		fmt.Fprintf(out, "%v\n", matrix.Format(post.Cov()))
	}

	if opts.plot != "" {
		if err := saveWeightsPlot(w, opts.bins, opts.plot); err != nil {
			return err
		}
		fmt.Fprintln(out, hintStyle.Render("weights histogram saved to "+opts.plot))
	}

	return nil
}

func saveWeightsPlot(w []float64, bins int, name string) error {
	if bins <= 0 {
		bins = int(math.Ceil(math.Sqrt(float64(len(w)))))
	}

	plt, err := plots.NewWeightsHist(w, bins)
	if err != nil {
		return fmt.Errorf("failed to make plot: %w", err)
	}

	if err := plt.Save(10*vg.Inch, 10*vg.Inch, name); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", name, err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(weightsCmd)

	weightsCmd.Flags().StringP("input", "i", "", "CSV file with log_likelihood, log_prior and log_prob columns (- for stdin)")
	weightsCmd.Flags().Float64P("percentile", "p", 0, "clip raw log-weights at this percentile in (0, 100]; 0 disables clipping")
	weightsCmd.Flags().String("plot", "", "save histogram of the weights to this file (png, svg, pdf)")
	weightsCmd.Flags().Int("bins", 0, "number of histogram bins; 0 picks sqrt(samples)")

	viper.BindPFlag("weights.input", weightsCmd.Flags().Lookup("input"))
	viper.BindPFlag("weights.percentile", weightsCmd.Flags().Lookup("percentile"))
	viper.BindPFlag("weights.plot", weightsCmd.Flags().Lookup("plot"))
	viper.BindPFlag("weights.bins", weightsCmd.Flags().Lookup("bins"))
}
