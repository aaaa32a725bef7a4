package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dotcommander/pwgrade/internal/cli"
	"github.com/dotcommander/pwgrade/internal/config"
	"github.com/dotcommander/pwgrade/internal/outputters"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// exitFunc is replaced in tests.
var exitFunc = os.Exit

var (
	rootPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	failOn       string
	concurrency  int
	noSchemas    bool
)

var rootCmd = &cobra.Command{
	Use:   "pwgrade",
	Short: "Grade password generation models from pre-computed metrics",
	Long: `pwgrade classifies password-model metrics into quality bands, scores
hit and repeat rates into a 0-10 composite with a letter grade, and ranks
candidate models by their distance to a reference distribution.

Metrics are read from YAML or JSON request files, or given directly on the
command line with the classify, score and rank commands.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Directory request paths are resolved against (default \".\")")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show recommendations and debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write json or markdown output to a file")
	rootCmd.PersistentFlags().StringVar(&failOn, "fail-on", "", "Fail when any grade is below this grade (e.g. B)")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 4, "Request files evaluated in parallel")
	rootCmd.PersistentFlags().BoolVar(&noSchemas, "no-schemas", false, "Skip CUE schema validation of request files")

	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("failOn", rootCmd.PersistentFlags().Lookup("fail-on"))
	_ = viper.BindPFlag("concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))
}

// loadConfig loads configuration and applies the flags viper cannot bind.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if noSchemas {
		cfg.Schemas.Enabled = false
	}
	if cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	return cfg, nil
}

// newEvalContext builds the evaluation context described by cfg.
func newEvalContext(cfg *config.Config) (*cli.EvalContext, error) {
	return cli.NewEvalContext(cli.Options{
		RootPath:    cfg.Root,
		Exclude:     cfg.Exclude,
		Quiet:       cfg.Quiet,
		Verbose:     cfg.Verbose,
		Concurrency: cfg.Concurrency,
		Schemas:     cfg.Schemas.Enabled,
	})
}

// render formats summary with the configured formatter.
func render(cfg *config.Config, summary *cli.EvaluationSummary) error {
	if err := outputters.NewOutputter(cfg).Format(summary, cfg.Format); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}
