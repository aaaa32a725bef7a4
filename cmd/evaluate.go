package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dotcommander/pwgrade/internal/baseline"
	"github.com/dotcommander/pwgrade/internal/cli"
	"github.com/dotcommander/pwgrade/internal/config"
	"github.com/dotcommander/pwgrade/internal/git"
	"github.com/dotcommander/pwgrade/internal/scoring"
	"github.com/dotcommander/pwgrade/internal/types"
	"github.com/spf13/cobra"
)

var (
	useBaseline    bool
	createBaseline bool
	baselinePath   string
	changedOnly    bool
	stagedOnly     bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [PATH|GLOB ...]",
	Short: "Evaluate request files",
	Long: `Evaluate reads YAML or JSON request files, validates them against the
request schema and runs every requested classification, score and ranking.

Arguments may be files, directories or doublestar globs. With no arguments
the root directory is searched for *.yaml, *.yml and *.json files; dotfiles
are skipped.

With --baseline, issues recorded in the baseline file are ignored and any
grade that dropped since the baseline was taken is reported as a regression.

With --changed or --staged, only request files below the root with
uncommitted or staged git changes are evaluated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluate(cmd, args)
	},
}

func init() {
	evaluateCmd.Flags().BoolVar(&useBaseline, "baseline", false, "Ignore known issues and report grade regressions")
	evaluateCmd.Flags().BoolVar(&createBaseline, "create-baseline", false, "Record current issues and grades as the baseline")
	evaluateCmd.Flags().StringVar(&baselinePath, "baseline-path", "", "Baseline file (default from config, relative to root)")
	evaluateCmd.Flags().BoolVar(&changedOnly, "changed", false, "Evaluate only request files with uncommitted changes")
	evaluateCmd.Flags().BoolVar(&stagedOnly, "staged", false, "Evaluate only request files staged for commit")
	evaluateCmd.MarkFlagsMutuallyExclusive("changed", "staged")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, err := newEvalContext(cfg)
	if err != nil {
		return err
	}

	if changedOnly || stagedOnly {
		if len(args) > 0 {
			return fmt.Errorf("--changed and --staged take no path arguments")
		}
		files, err := gitFiles(cfg.Root)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			if !cfg.Quiet {
				fmt.Fprintln(cmd.ErrOrStderr(), "No changed request files")
			}
			return nil
		}
		args = files
	}

	baselineFile := resolveBaselinePath(cfg)

	var b *baseline.Baseline
	if useBaseline {
		b = loadBaselineIfPresent(baselineFile)
	}

	summary, err := ctx.Evaluate(cmd.Context(), args)
	if err != nil {
		return err
	}

	// Issues are collected before filtering so the new baseline covers them all.
	var allIssues []types.ValidationError
	if createBaseline {
		allIssues = cli.CollectAllIssues(summary)
	}

	var ignored int
	var regressions []baseline.Regression
	if b != nil {
		ignored = cli.FilterResults(summary, b)
		regressions = b.Regressions(cli.CollectSnapshots(summary))
	}

	if err := render(cfg, summary); err != nil {
		return err
	}

	status := cmd.ErrOrStderr()

	if createBaseline {
		nb := baseline.CreateBaseline(allIssues, cli.CollectSnapshots(summary))
		nb.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := nb.SaveBaseline(baselineFile); err != nil {
			return fmt.Errorf("failed to save baseline: %w", err)
		}
		if !cfg.Quiet {
			fmt.Fprintf(status, "\nBaseline created: %s (%d issues, %d grades)\n",
				baselineFile, len(nb.Fingerprints), len(nb.Grades))
		}
		// Creating a baseline accepts the current state.
		return nil
	}

	if ignored > 0 && !cfg.Quiet {
		fmt.Fprintf(status, "\n%d baseline %s ignored\n", ignored, pluralize("issue", ignored))
	}
	printRegressions(status, regressions)

	if len(regressions) > 0 {
		return fmt.Errorf("%d %s regressed since baseline", len(regressions), pluralize("grade", len(regressions)))
	}
	return checkFailOn(cfg, summary)
}

// gitFiles lists the request files selected by --changed or --staged.
func gitFiles(root string) ([]string, error) {
	var files []string
	var err error
	if stagedOnly {
		files, err = git.GetStagedFiles(root)
	} else {
		files, err = git.GetChangedFiles(root)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing git changes: %w", err)
	}
	return files, nil
}

func resolveBaselinePath(cfg *config.Config) string {
	path := cfg.Baseline.Path
	if baselinePath != "" {
		path = baselinePath
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Root, path)
	}
	return path
}

// loadBaselineIfPresent returns nil when the baseline is missing or unreadable.
func loadBaselineIfPresent(path string) *baseline.Baseline {
	if _, err := os.Stat(path); err != nil {
		slog.Debug("no baseline found", "path", path)
		return nil
	}
	b, err := baseline.LoadBaseline(path)
	if err != nil {
		slog.Warn("failed to load baseline", "path", path, "error", err)
		return nil
	}
	return b
}

func printRegressions(w io.Writer, regressions []baseline.Regression) {
	for _, r := range regressions {
		name := r.Name
		if name == "" {
			name = r.Source
		}
		fmt.Fprintf(w, "regressed: %s %s → %s\n", name, r.Previous, r.Current)
	}
}

// checkFailOn returns an error when any file failed or any grade is below
// the configured threshold.
func checkFailOn(cfg *config.Config, summary *cli.EvaluationSummary) error {
	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d %s failed", summary.FailedFiles, pluralize("request", summary.FailedFiles))
	}
	if cfg.FailOn == "" {
		return nil
	}
	threshold, ok := scoring.ParseGrade(cfg.FailOn)
	if !ok {
		return fmt.Errorf("invalid fail-on grade: %s", cfg.FailOn)
	}
	if failing := cli.FailingGrades(summary, threshold); len(failing) > 0 {
		return fmt.Errorf("%d %s below %s", len(failing), pluralize("grade", len(failing)), threshold)
	}
	return nil
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
