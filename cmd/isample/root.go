// Package isample implements the isample command line tool which computes
// importance sampling weights, efficiencies and evidence estimates
// from precomputed log-likelihoods, log-priors and proposal log-probabilities.
package isample

import (
	"errors"
	"fmt"
	"os"
	"strings"

	evidence "github.com/milosgajdos/go-evidence"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfgFile is an optional config file with default flag values.
var cfgFile string

// rootCmd is the base command of the isample tool.
var rootCmd = &cobra.Command{
	Use:   "isample",
	Short: "Importance sampling diagnostics",
	Long: `isample computes importance sampling weights, sampling and simulation efficiency
and the Bayesian evidence from samples stored in CSV files.
Flags can be set in a config file or through ISAMPLE_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It prints any returned error together
// with a diagnostic hint and exits with a non-zero status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		if hint := diagnose(err); hint != "" {
			fmt.Fprintln(os.Stderr, hintStyle.Render(hint))
		}
		os.Exit(1)
	}
}

// diagnose returns a hint explaining the failure or empty string
// if err is not one of the known importance sampling failures.
func diagnose(err error) string {
	switch {
	case errors.Is(err, evidence.ErrDegenerateWeights):
		return "all weights vanished: the proposal misses the posterior or no sample lies in prior support"
	case errors.Is(err, evidence.ErrShapeMismatch):
		return "input columns have different lengths"
	case errors.Is(err, evidence.ErrInvalidPercentile):
		return "percentile must be in (0, 100]"
	case errors.Is(err, evidence.ErrNonFiniteProposal):
		return "proposal log-probabilities must be finite"
	case errors.Is(err, evidence.ErrNegativeWeight):
		return "weights must not be negative"
	}
	return ""
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("failed to read config %s: %v", cfgFile, err)))
			os.Exit(1)
		}
	}

	viper.SetEnvPrefix("ISAMPLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (e.g. isample.yaml)")
}
