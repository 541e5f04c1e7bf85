package isample

import (
	"fmt"
	"io"

	"github.com/milosgajdos/go-evidence/estimate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// evidenceCmd implements 'evidence', which estimates the log-evidence
// from raw importance sampling log-weights.
var evidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Estimate the log-evidence from raw log-weights",
	Long: `The 'evidence' command reads a CSV file with a log_weight column of raw (unnormalized)
importance sampling log-weights and prints the log-evidence estimate with its standard deviation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvidence(cmd.OutOrStdout(), viper.GetString("evidence.input"))
	},
}

func runEvidence(out io.Writer, input string) error {
	f, err := openInput(input)
	if err != nil {
		return err
	}
	defer f.Close()

	raw, err := readLogWeights(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	ev, err := estimate.LogEvidence(raw)
	if err != nil {
		return err
	}

	render(out, "Evidence", []field{
		{"samples", fmt.Sprintf("%d", len(raw))},
		{"log Z", fmt.Sprintf("%.4f ± %.4f", ev.LogZ, ev.Std)},
	})

	return nil
}

func init() {
	rootCmd.AddCommand(evidenceCmd)

	evidenceCmd.Flags().StringP("input", "i", "", "CSV file with a log_weight column (- for stdin)")

	viper.BindPFlag("evidence.input", evidenceCmd.Flags().Lookup("input"))
}
