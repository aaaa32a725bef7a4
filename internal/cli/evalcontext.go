package cli

import (
	"fmt"
	"log/slog"

	"github.com/dotcommander/pwgrade/internal/cue"
	"github.com/dotcommander/pwgrade/internal/discovery"
	"github.com/dotcommander/pwgrade/internal/report"
)

// Options controls how an EvalContext is built.
type Options struct {
	RootPath    string
	Exclude     []string
	Quiet       bool
	Verbose     bool
	Concurrency int
	Schemas     bool
}

// EvalContext holds the shared state for evaluating request files.
// It centralizes schema loading, discovery and report assembly so every
// command builds them the same way.
type EvalContext struct {
	RootPath    string
	Quiet       bool
	Verbose     bool
	Concurrency int
	Validator   *cue.Validator // nil when schema checks are disabled
	Discoverer  *discovery.FileDiscovery
	Assembler   *report.Assembler
}

// NewEvalContext creates an EvalContext with all dependencies initialized.
func NewEvalContext(opts Options, asmOpts ...report.Option) (*EvalContext, error) {
	root := opts.RootPath
	if root == "" {
		root = "."
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var validator *cue.Validator
	if opts.Schemas {
		validator = cue.NewValidator()
		if err := validator.LoadSchemas(); err != nil {
			return nil, fmt.Errorf("loading request schemas: %w", err)
		}
	} else {
		slog.Debug("request schema validation disabled")
	}

	return &EvalContext{
		RootPath:    root,
		Quiet:       opts.Quiet,
		Verbose:     opts.Verbose,
		Concurrency: concurrency,
		Validator:   validator,
		Discoverer:  discovery.NewFileDiscovery(root, opts.Exclude...),
		Assembler:   report.NewAssembler(asmOpts...),
	}, nil
}

// NewSummary creates an initialized EvaluationSummary with the total file count.
func (ctx *EvalContext) NewSummary(totalFiles int) *EvaluationSummary {
	return &EvaluationSummary{
		ProjectRoot: ctx.RootPath,
		TotalFiles:  totalFiles,
	}
}
