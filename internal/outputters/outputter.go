package outputters

import (
	"fmt"
	"time"

	"github.com/dotcommander/pwgrade/internal/cli"
	"github.com/dotcommander/pwgrade/internal/config"
	"github.com/dotcommander/pwgrade/internal/output"
)

// Formatter renders an evaluation summary.
type Formatter interface {
	Format(summary *cli.EvaluationSummary) error
}

// FormatterFactory creates a Formatter for a named output format.
type FormatterFactory interface {
	CreateFormatter(format string) (Formatter, error)
}

// DefaultFormatterFactory builds the console, json and markdown formatters
// from the loaded configuration.
type DefaultFormatterFactory struct {
	cfg *config.Config
}

// NewDefaultFormatterFactory creates a DefaultFormatterFactory
func NewDefaultFormatterFactory(cfg *config.Config) *DefaultFormatterFactory {
	return &DefaultFormatterFactory{cfg: cfg}
}

// CreateFormatter returns the formatter for format.
func (f *DefaultFormatterFactory) CreateFormatter(format string) (Formatter, error) {
	switch format {
	case "console":
		return output.NewConsoleFormatter(f.cfg.Quiet, f.cfg.Verbose), nil
	case "json":
		return output.NewJSONFormatter(f.cfg.Quiet, true, f.cfg.Output), nil
	case "markdown":
		return output.NewMarkdownFormatter(f.cfg.Quiet, f.cfg.Verbose, f.cfg.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	config  *config.Config
	factory FormatterFactory
}

// NewOutputter creates a new Outputter
func NewOutputter(cfg *config.Config) *Outputter {
	return NewOutputterWithFactory(cfg, NewDefaultFormatterFactory(cfg))
}

// NewOutputterWithFactory creates an Outputter with a custom formatter factory.
func NewOutputterWithFactory(cfg *config.Config, factory FormatterFactory) *Outputter {
	return &Outputter{
		config:  cfg,
		factory: factory,
	}
}

// Format formats the evaluation summary using the requested format
func (o *Outputter) Format(summary *cli.EvaluationSummary, format string) error {
	if summary.StartTime.IsZero() {
		summary.StartTime = time.Now()
	}

	summary.ProjectRoot = o.config.Root

	formatter, err := o.factory.CreateFormatter(format)
	if err != nil {
		return err
	}
	return formatter.Format(summary)
}
