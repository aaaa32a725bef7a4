package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dotcommander/pwgrade/internal/bands"
	"github.com/dotcommander/pwgrade/internal/metrics"
	"github.com/dotcommander/pwgrade/internal/report"
	"github.com/spf13/cobra"
)

var listMetrics bool

var classifyCmd = &cobra.Command{
	Use:   "classify METRIC VALUE [METRIC VALUE ...]",
	Short: "Classify metric values into quality bands",
	Long: `Classify maps each metric value onto its band label.

Percent metrics take values in [0, 100], ratios in [0, 1]. Use --list to
print every supported metric with its thresholds.

Examples:
  pwgrade classify entropy_ratio 84.2
  pwgrade classify hit_rate 12 repeat_rate 0.5
  pwgrade classify --list`,
	Args: func(cmd *cobra.Command, args []string) error {
		if listMetrics {
			return cobra.NoArgs(cmd, args)
		}
		if len(args) == 0 || len(args)%2 != 0 {
			return fmt.Errorf("expected METRIC VALUE pairs, got %d argument(s)", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if listMetrics {
			return printMetricTables(cmd.OutOrStdout())
		}
		return runClassify(args)
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&listMetrics, "list", false, "List supported metrics and their thresholds")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(args []string) error {
	samples, err := parseSamples(args)
	if err != nil {
		return err
	}
	return runRequest(report.Request{Metrics: samples})
}

// parseSamples reads METRIC VALUE pairs.
func parseSamples(args []string) ([]metrics.Sample, error) {
	samples := make([]metrics.Sample, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		value, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", args[i], args[i+1])
		}
		samples = append(samples, metrics.Sample{Name: args[i], Value: value})
	}
	return samples, nil
}

// runRequest assembles req and renders it through the configured formatter.
func runRequest(req report.Request) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, err := newEvalContext(cfg)
	if err != nil {
		return err
	}

	rep, err := ctx.Assembler.Assemble(req)
	if err != nil {
		return err
	}

	summary := ctx.SummarizeReport(rep)
	if err := render(cfg, summary); err != nil {
		return err
	}
	return checkFailOn(cfg, summary)
}

func printMetricTables(w io.Writer) error {
	for _, name := range bands.Names() {
		m, err := bands.Definition(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s %s\n", name, m.Domain, m.Table.Direction)

		op := m.Table.Operator()
		parts := make([]string, 0, len(m.Table.Bands)+1)
		for _, b := range m.Table.Bands {
			parts = append(parts, fmt.Sprintf("%s %s %g", b.Value, op, b.Bound))
		}
		parts = append(parts, fmt.Sprintf("%s otherwise", m.Table.Fallback))
		fmt.Fprintf(w, "    %s\n", strings.Join(parts, ", "))
	}
	return nil
}
