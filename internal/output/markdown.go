package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dotcommander/pwgrade/internal/bands"
	"github.com/dotcommander/pwgrade/internal/cli"
	"github.com/dotcommander/pwgrade/internal/report"
	"github.com/dotcommander/pwgrade/internal/scoring"
	"github.com/dotcommander/pwgrade/internal/types"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	quiet      bool
	verbose    bool
	outputFile string
	out        io.Writer
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(quiet, verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		quiet:      quiet,
		verbose:    verbose,
		outputFile: outputFile,
		out:        os.Stdout,
	}
}

// WithWriter redirects stdout output.
func (f *MarkdownFormatter) WithWriter(w io.Writer) *MarkdownFormatter {
	f.out = w
	return f
}

// Format formats the evaluation summary as Markdown
func (f *MarkdownFormatter) Format(summary *cli.EvaluationSummary) error {
	var b strings.Builder

	b.WriteString("# Password Model Evaluation\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Project:** %s\n\n", summary.ProjectRoot)
	fmt.Fprintf(&b, "**Duration:** %v\n\n", time.Since(summary.StartTime).Round(time.Millisecond))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Requests | %d |\n", summary.TotalFiles)
	fmt.Fprintf(&b, "| Successful | %d |\n", summary.SuccessfulFiles)
	fmt.Fprintf(&b, "| Failed | %d |\n", summary.FailedFiles)
	fmt.Fprintf(&b, "| Errors | %d |\n", summary.TotalErrors)
	b.WriteString("\n")

	writeGradeDistribution(&b, summary.Stats)

	b.WriteString("## Detailed Results\n\n")

	if summary.TotalFiles == 0 {
		b.WriteString("*No request files found.*\n\n")
	}

	for _, result := range summary.Results {
		name := strings.TrimPrefix(displayFile(result), "./")
		fmt.Fprintf(&b, "### %s\n\n", name)
		fmt.Fprintf(&b, "Status: %s\n\n", getStatusEmoji(result.Success))

		if len(result.Errors) > 0 {
			b.WriteString("#### Errors\n\n")
			for _, err := range result.Errors {
				fmt.Fprintf(&b, "- %s", err.Message)
				if err.Line > 0 {
					fmt.Fprintf(&b, " (line %d)", err.Line)
				}
				if err.Source != "" {
					fmt.Fprintf(&b, " `[%s]`", err.Source)
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}

		if result.Report != nil {
			f.writeReport(&b, result.Report)
		}
	}

	b.WriteString("## Conclusion\n\n")
	if summary.FailedFiles == 0 {
		b.WriteString("✓ All requests evaluated\n")
	} else {
		fmt.Fprintf(&b, "✗ %d %s failed\n", summary.FailedFiles, pluralizeCount("request", summary.FailedFiles))
	}

	return writeOutput(f.outputFile, f.out, []byte(b.String()))
}

func writeGradeDistribution(b *strings.Builder, stats report.Summary) {
	if stats.Scored == 0 {
		return
	}
	b.WriteString("## Grades\n\n")
	b.WriteString("| Grade | Count |\n")
	b.WriteString("|-------|-------|\n")
	for _, g := range types.Grades {
		if n := stats.GradeCounts[g]; n > 0 {
			fmt.Fprintf(b, "| %s | %d |\n", g, n)
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "Mean total %.2f, standard deviation %.2f\n\n", stats.MeanTotal, stats.StdDevTotal)
	if stats.BestCandidate != nil {
		fmt.Fprintf(b, "Closest model: **%s** in %s (%s)\n\n",
			stats.BestCandidate.Entry.Name, stats.BestCandidate.Report,
			formatDistance(stats.BestCandidate.Entry.CombinedDistance))
	}
}

func (f *MarkdownFormatter) writeReport(b *strings.Builder, rep *report.Report) {
	if len(rep.Classifications) > 0 {
		b.WriteString("| Metric | Value | Label |\n")
		b.WriteString("|--------|-------|-------|\n")
		for _, c := range rep.Classifications {
			fmt.Fprintf(b, "| %s | %s | %s |\n", c.Metric, formatValue(c.Value, c.Unit), c.Label)
		}
		b.WriteString("\n")
	}

	if c := rep.Composite; c != nil {
		fmt.Fprintf(b, "**Grade:** %s (%.1f/%.0f, %s)\n\n", c.Score.Grade, c.Score.Total, scoring.MaxTotal, c.Status)
		for _, d := range c.Score.Details {
			fmt.Fprintf(b, "- %s: %.1f/%.0f (%g%%, %s)\n", d.Name, d.Points, d.MaxPoints, d.Input, d.Label)
		}
		fmt.Fprintf(b, "- Efficiency: %s\n\n", formatEfficiency(c.Efficiency))

		if f.verbose && len(c.Advice) > 0 {
			b.WriteString("#### Recommendations\n\n")
			for _, a := range c.Advice {
				fmt.Fprintf(b, "- **%s** %s\n", a.Level, a.Message)
			}
			b.WriteString("\n")
		}
	}

	if r := rep.Ranking; r != nil {
		if r.Empty() {
			b.WriteString("*No candidates to rank.*\n\n")
			return
		}
		b.WriteString("| Rank | Model | Length | Pattern | Combined |\n")
		b.WriteString("|------|-------|--------|---------|----------|\n")
		for _, e := range r.Entries {
			fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n", e.Rank, e.Name,
				formatDistance(e.LengthDistance), formatDistance(e.PatternDistance), formatDistance(e.CombinedDistance))
		}
		b.WriteString("\n")
		fmt.Fprintf(b, "Best: **%s**, %s\n\n", r.Best.Name, bands.Describe(r.Similarity))
	}
}

// getStatusEmoji returns an emoji for the status
func getStatusEmoji(success bool) string {
	if success {
		return "✅"
	}
	return "❌"
}
