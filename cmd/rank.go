package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dotcommander/pwgrade/internal/ranking"
	"github.com/dotcommander/pwgrade/internal/report"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank NAME=LENGTH,PATTERN ...",
	Short: "Rank candidate models by distance to the reference",
	Long: `Rank orders candidate models by combined distance (length distance plus
pattern distance), closest first. Ties keep argument order.

Example:
  pwgrade rank PassGPT=0.04,0.05 PassGAN=0.08,0.12`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		candidates, err := parseCandidates(args)
		if err != nil {
			return err
		}
		return runRequest(report.Request{Candidates: candidates})
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

// parseCandidates reads NAME=LENGTH,PATTERN arguments. The name is split at
// the last '=' so it may itself contain one.
func parseCandidates(args []string) ([]ranking.Candidate, error) {
	candidates := make([]ranking.Candidate, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid candidate %q: want NAME=LENGTH,PATTERN", arg)
		}
		name, dists := arg[:i], arg[i+1:]

		length, pattern, ok := strings.Cut(dists, ",")
		if !ok {
			return nil, fmt.Errorf("invalid candidate %q: want NAME=LENGTH,PATTERN", arg)
		}
		ld, err := strconv.ParseFloat(strings.TrimSpace(length), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid length distance for %s: %q", name, length)
		}
		pd, err := strconv.ParseFloat(strings.TrimSpace(pattern), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern distance for %s: %q", name, pattern)
		}
		candidates = append(candidates, ranking.Candidate{Name: name, LengthDistance: ld, PatternDistance: pd})
	}
	return candidates, nil
}
