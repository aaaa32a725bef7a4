// Package cli runs evaluation requests in batch for the pwgrade commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dotcommander/pwgrade/internal/discovery"
	"github.com/dotcommander/pwgrade/internal/report"
	"github.com/dotcommander/pwgrade/internal/request"
	"github.com/dotcommander/pwgrade/internal/types"
	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome of evaluating one request file.
type FileResult struct {
	File     string
	Report   *report.Report
	Errors   []types.ValidationError
	Success  bool
	Duration int64 // milliseconds
}

// EvaluationSummary summarizes a batch of evaluated requests.
type EvaluationSummary struct {
	ProjectRoot     string
	StartTime       time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalErrors     int
	Duration        int64
	Results         []FileResult
	Stats           report.Summary
}

// Reports returns every assembled report in result order.
func (s *EvaluationSummary) Reports() []*report.Report {
	out := make([]*report.Report, 0, len(s.Results))
	for _, r := range s.Results {
		if r.Report != nil {
			out = append(out, r.Report)
		}
	}
	return out
}

// Recount recomputes the file and error totals and the aggregate stats
// from Results.
func (s *EvaluationSummary) Recount() {
	s.SuccessfulFiles, s.FailedFiles, s.TotalErrors = 0, 0, 0
	for _, r := range s.Results {
		if r.Success {
			s.SuccessfulFiles++
		} else {
			s.FailedFiles++
		}
		s.TotalErrors += len(r.Errors)
	}
	s.Stats = report.Summarize(s.Reports())
}

// Evaluate expands args into request files and evaluates them.
func (ctx *EvalContext) Evaluate(c context.Context, args []string) (*EvaluationSummary, error) {
	files, err := ctx.Discoverer.Expand(args)
	if err != nil {
		return nil, fmt.Errorf("error discovering files: %w", err)
	}
	return ctx.EvaluateFiles(c, files)
}

// EvaluateFiles evaluates files concurrently, at most ctx.Concurrency at a
// time. Results keep the order of files. A failing file is recorded on its
// own result and does not stop the others; only cancellation of c aborts
// the batch.
func (ctx *EvalContext) EvaluateFiles(c context.Context, files []discovery.File) (*EvaluationSummary, error) {
	summary := ctx.NewSummary(len(files))
	summary.StartTime = time.Now()

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(c)
	g.SetLimit(ctx.Concurrency)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ctx.evaluateFile(file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation cancelled: %w", err)
	}

	summary.Results = results
	summary.Recount()
	summary.Duration = time.Since(summary.StartTime).Milliseconds()

	return summary, nil
}

// evaluateFile runs one file through validation and the engine.
func (ctx *EvalContext) evaluateFile(file discovery.File) FileResult {
	start := time.Now()
	result := FileResult{File: file.RelPath}

	fail := func(source string, err error) FileResult {
		result.Errors = append(result.Errors, types.ValidationError{
			File:     file.RelPath,
			Message:  err.Error(),
			Severity: types.SeverityError,
			Source:   source,
		})
		result.Duration = time.Since(start).Milliseconds()
		slog.Debug("request failed", "file", file.RelPath, "error", err)
		return result
	}

	if _, err := discovery.ValidateFilePath(file.Path); err != nil {
		return fail(types.SourceInput, err)
	}

	doc, err := request.ParseFile(file.Path)
	if err != nil {
		return fail(types.SourceInput, err)
	}

	if ctx.Validator != nil {
		schemaErrors, err := ctx.Validator.ValidateRequest(doc.Data)
		if err != nil {
			return fail(types.SourceSchema, err)
		}
		if len(schemaErrors) > 0 {
			for i := range schemaErrors {
				schemaErrors[i].File = file.RelPath
				schemaErrors[i].Line = doc.Line(schemaErrors[i].Path)
			}
			result.Errors = append(result.Errors, schemaErrors...)
			result.Duration = time.Since(start).Milliseconds()
			slog.Debug("request failed schema validation", "file", file.RelPath, "errors", len(schemaErrors))
			return result
		}
	}

	rep, err := ctx.Assembler.Assemble(doc.File.ToRequest(file.RelPath))
	if err != nil {
		return fail(types.SourceEngine, err)
	}

	result.Report = rep
	result.Success = true
	result.Duration = time.Since(start).Milliseconds()
	slog.Debug("request evaluated", "file", file.RelPath, "grade", rep.Grade(), "duration_ms", result.Duration)
	return result
}

// SummarizeReport wraps a single report built outside a file, such as from
// command line arguments, so it renders through the same formatters.
func (ctx *EvalContext) SummarizeReport(rep *report.Report) *EvaluationSummary {
	summary := ctx.NewSummary(1)
	summary.StartTime = time.Now()
	summary.Results = []FileResult{{
		File:    rep.Source,
		Report:  rep,
		Success: true,
	}}
	summary.Recount()
	return summary
}
