package output

import (
	"testing"
	"time"

	"github.com/dotcommander/pwgrade/internal/cli"
	"github.com/dotcommander/pwgrade/internal/metrics"
	"github.com/dotcommander/pwgrade/internal/ranking"
	"github.com/dotcommander/pwgrade/internal/report"
	"github.com/dotcommander/pwgrade/internal/types"
)

func assemble(t *testing.T, req report.Request) *report.Report {
	t.Helper()
	asm := report.NewAssembler(
		report.WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }),
		report.WithIDGenerator(func() string { return "fixture" }),
	)
	rep, err := asm.Assemble(req)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	return rep
}

// mixedSummary holds one fully evaluated request, one ranking-only request
// and one failure.
func mixedSummary(t *testing.T) *cli.EvaluationSummary {
	t.Helper()

	full := assemble(t, report.Request{
		Name:   "passgpt",
		Source: "runs/passgpt.yaml",
		Metrics: []metrics.Sample{
			{Name: types.MetricEntropyRatio, Value: 84.2},
			{Name: types.MetricHitRate, Value: 12},
		},
		Composite: &report.CompositeInput{HitRate: 0.12, RepeatRate: 0.0005},
	})
	ranked := assemble(t, report.Request{
		Name:   "models",
		Source: "runs/models.json",
		Candidates: []ranking.Candidate{
			{Name: "PassGAN", LengthDistance: 0.25, PatternDistance: 0.5},
			{Name: "PassGPT", LengthDistance: 0.03125, PatternDistance: 0.03125},
		},
	})

	summary := &cli.EvaluationSummary{
		ProjectRoot: "/work",
		StartTime:   time.Now(),
		TotalFiles:  3,
		Results: []cli.FileResult{
			{File: "runs/passgpt.yaml", Report: full, Success: true},
			{File: "runs/models.json", Report: ranked, Success: true},
			{File: "runs/broken.yaml", Errors: []types.ValidationError{{
				File:     "runs/broken.yaml",
				Message:  "composite.hit_rate: invalid value 12 (out of bound <=1)",
				Severity: types.SeverityError,
				Source:   types.SourceSchema,
				Path:     "composite.hit_rate",
				Line:     3,
			}}},
		},
	}
	summary.Recount()
	return summary
}

func passingSummary(t *testing.T) *cli.EvaluationSummary {
	t.Helper()
	summary := &cli.EvaluationSummary{
		ProjectRoot: "/work",
		StartTime:   time.Now(),
		TotalFiles:  2,
		Results: []cli.FileResult{
			{File: "a.yaml", Success: true, Report: assemble(t, report.Request{
				Name: "a", Composite: &report.CompositeInput{HitRate: 0.2, RepeatRate: 0},
			})},
			{File: "b.yaml", Success: true, Report: assemble(t, report.Request{
				Name: "b", Composite: &report.CompositeInput{HitRate: 0.01, RepeatRate: 0.02},
			})},
		},
	}
	summary.Recount()
	return summary
}
