package cli

import (
	"github.com/dotcommander/pwgrade/internal/baseline"
	"github.com/dotcommander/pwgrade/internal/scoring"
	"github.com/dotcommander/pwgrade/internal/types"
)

// FilterResults drops issues known to the baseline and returns how many
// were ignored. A file whose every error is known counts as successful only
// when it still produced a report.
func FilterResults(summary *EvaluationSummary, b *baseline.Baseline) int {
	if b == nil {
		return 0 // No baseline, no filtering
	}

	var ignored int
	for i := range summary.Results {
		result := &summary.Results[i]

		filtered := make([]types.ValidationError, 0, len(result.Errors))
		for _, err := range result.Errors {
			if b.IsKnown(err) {
				ignored++
			} else {
				filtered = append(filtered, err)
			}
		}
		result.Errors = filtered
		result.Success = len(result.Errors) == 0 && result.Report != nil
	}

	summary.Recount()
	return ignored
}

// CollectAllIssues collects all validation errors from a summary (for baseline creation)
func CollectAllIssues(summary *EvaluationSummary) []types.ValidationError {
	var issues []types.ValidationError
	for _, result := range summary.Results {
		issues = append(issues, result.Errors...)
	}
	return issues
}

// CollectSnapshots records the grade of every report in the summary.
func CollectSnapshots(summary *EvaluationSummary) []baseline.Snapshot {
	var out []baseline.Snapshot
	for _, result := range summary.Results {
		if result.Report == nil {
			continue
		}
		out = append(out, baseline.Snapshot{
			Source: result.Report.Source,
			Name:   result.Report.Name,
			Grade:  result.Report.Grade(),
		})
	}
	return out
}

// FailingGrades lists results whose grade is below threshold. Results without a
// composite score are not graded and never fail.
func FailingGrades(summary *EvaluationSummary, threshold types.Grade) []FileResult {
	if threshold == "" {
		return nil
	}
	var out []FileResult
	for _, result := range summary.Results {
		if result.Report == nil {
			continue
		}
		g := result.Report.Grade()
		if g == "" {
			continue
		}
		if !scoring.GradeAtLeast(g, threshold) {
			out = append(out, result)
		}
	}
	return out
}
