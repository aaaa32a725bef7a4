package cmd

import (
	"fmt"
	"strconv"

	"github.com/dotcommander/pwgrade/internal/report"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score HIT_RATE REPEAT_RATE",
	Short: "Score hit and repeat rates into a composite grade",
	Long: `Score combines a hit rate and a repeat rate, both fractions in [0, 1],
into a 0-10 composite score with a letter grade.

Example:
  pwgrade score 0.12 0.0005`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := parseRates(args[0], args[1])
		if err != nil {
			return err
		}
		return runRequest(report.Request{Composite: in})
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func parseRates(hit, repeat string) (*report.CompositeInput, error) {
	hitRate, err := strconv.ParseFloat(hit, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hit rate: %q", hit)
	}
	repeatRate, err := strconv.ParseFloat(repeat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid repeat rate: %q", repeat)
	}
	return &report.CompositeInput{HitRate: hitRate, RepeatRate: repeatRate}, nil
}
