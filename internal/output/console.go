package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/pwgrade/internal/cli"
	"github.com/dotcommander/pwgrade/internal/report"
	"github.com/dotcommander/pwgrade/internal/scoring"
	"github.com/dotcommander/pwgrade/internal/types"
)

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	quiet    bool
	verbose  bool
	colorize bool
	out      io.Writer
}

// NewConsoleFormatter creates a new ConsoleFormatter writing to stdout
func NewConsoleFormatter(quiet, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		quiet:    quiet,
		verbose:  verbose,
		colorize: true,
		out:      os.Stdout,
	}
}

// WithWriter redirects output, disabling the celebration animation.
func (f *ConsoleFormatter) WithWriter(w io.Writer) *ConsoleFormatter {
	f.out = w
	return f
}

// Format formats the evaluation summary for console output
func (f *ConsoleFormatter) Format(summary *cli.EvaluationSummary) error {
	if f.quiet {
		// Only show exit code in quiet mode
		return nil
	}

	f.printFileResults(summary)
	f.printSummary(summary)
	f.printConclusion(summary)

	return nil
}

func (f *ConsoleFormatter) style(color string) lipgloss.Style {
	if !f.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// gradeColor maps a grade to a terminal color, best grades green.
func gradeColor(g types.Grade) string {
	switch {
	case g == "":
		return "7"
	case scoring.GradeAtLeast(g, types.GradeAMinus):
		return "10" // green
	case scoring.GradeAtLeast(g, types.GradeBMinus):
		return "12" // blue
	case scoring.GradeAtLeast(g, types.GradeCMinus):
		return "3" // yellow
	default:
		return "9" // red
	}
}

// printFileResults prints results for each file
func (f *ConsoleFormatter) printFileResults(summary *cli.EvaluationSummary) {
	for _, result := range summary.Results {
		if !result.Success {
			fmt.Fprintf(f.out, "%s %s\n", f.style("9").Render("✗"), result.File)
			for _, err := range result.Errors {
				f.printValidationError(err)
			}
			continue
		}

		rep := result.Report
		header := fmt.Sprintf("%s %s", f.style("10").Render("✓"), displayFile(result))
		if rep.Composite != nil {
			score := rep.Composite.Score
			header += "  " + f.style(gradeColor(score.Grade)).Bold(f.colorize).Render(string(score.Grade))
			header += fmt.Sprintf("  %.1f/%.0f (%s)", score.Total, scoring.MaxTotal, rep.Composite.Status)
		}
		fmt.Fprintln(f.out, header)

		f.printClassifications(rep)
		f.printComposite(rep)
		f.printRanking(rep)
	}
}

func displayFile(result cli.FileResult) string {
	if result.File != "" {
		return result.File
	}
	if result.Report != nil && result.Report.Name != "" {
		return result.Report.Name
	}
	return "(arguments)"
}

func (f *ConsoleFormatter) printClassifications(rep *report.Report) {
	if len(rep.Classifications) == 0 {
		return
	}
	width := 0
	for _, c := range rep.Classifications {
		width = max(width, len(c.Metric))
	}
	dim := f.style("8")
	for _, c := range rep.Classifications {
		value := formatValue(c.Value, c.Unit)
		fmt.Fprintf(f.out, "    %-*s  %12s  %s\n", width, c.Metric, dim.Render(value), c.Label)
	}
}

func (f *ConsoleFormatter) printComposite(rep *report.Report) {
	if rep.Composite == nil {
		return
	}
	score := rep.Composite.Score
	dim := f.style("8")
	fmt.Fprintf(f.out, "    %s hit %.1f/%.0f, repeat %.1f/%.0f, efficiency %s\n",
		dim.Render("composite"),
		score.HitComponent, scoring.MaxHitPoints,
		score.RepeatComponent, scoring.MaxRepeatPoints,
		formatEfficiency(rep.Composite.Efficiency))

	if !f.verbose {
		return
	}
	for _, a := range rep.Composite.Advice {
		fmt.Fprintf(f.out, "    %s %s\n", f.adviceIcon(a.Level), a.Message)
	}
}

func (f *ConsoleFormatter) adviceIcon(level string) string {
	switch level {
	case scoring.AdviceCritical:
		return f.style("9").Render("✘")
	case scoring.AdviceWarning:
		return f.style("3").Render("⚠")
	case scoring.AdviceGood:
		return f.style("10").Render("✓")
	default:
		return f.style("7").Render("•")
	}
}

func (f *ConsoleFormatter) printRanking(rep *report.Report) {
	if rep.Ranking == nil {
		return
	}
	dim := f.style("8")
	if rep.Ranking.Empty() {
		fmt.Fprintf(f.out, "    %s no candidates\n", dim.Render("ranking"))
		return
	}
	fmt.Fprintf(f.out, "    %s best %s (%s, %s)\n",
		dim.Render("ranking"), rep.Ranking.Best.Name,
		formatDistance(rep.Ranking.Best.CombinedDistance), rep.Ranking.Similarity)
	for _, e := range rep.Ranking.Entries {
		fmt.Fprintf(f.out, "      %d. %-20s %s\n", e.Rank, e.Name, dim.Render(formatDistance(e.CombinedDistance)))
	}
}

// printValidationError prints a validation error with appropriate styling
func (f *ConsoleFormatter) printValidationError(err types.ValidationError) {
	var style lipgloss.Style
	prefix := "    "
	switch err.Severity {
	case types.SeverityError:
		style = f.style("9") // red
		prefix = "    ✘ "
	case types.SeverityWarning:
		style = f.style("3") // yellow
		prefix = "    ⚠ "
	default:
		style = f.style("7") // gray
	}

	msg := err.Message
	if err.Line > 0 {
		msg += f.style("8").Render(fmt.Sprintf(" (line %d)", err.Line))
	}
	if err.Source != "" {
		fmt.Fprintf(f.out, "%s%s %s\n", prefix, style.Render("["+err.Source+"]"), msg)
	} else {
		fmt.Fprintf(f.out, "%s%s\n", prefix, msg)
	}
}

// printSummary prints the summary statistics
func (f *ConsoleFormatter) printSummary(summary *cli.EvaluationSummary) {
	if summary.TotalFiles <= 1 && summary.FailedFiles == 0 {
		return
	}

	stats := summary.Stats
	if stats.Scored > 1 {
		var parts []string
		for _, g := range types.Grades {
			if n := stats.GradeCounts[g]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s×%d", g, n))
			}
		}
		fmt.Fprintf(f.out, "\ngrades %s, mean %.2f ± %.2f\n", strings.Join(parts, " "), stats.MeanTotal, stats.StdDevTotal)
	}
	if stats.BestCandidate != nil {
		fmt.Fprintf(f.out, "closest model %s in %s (%s)\n",
			stats.BestCandidate.Entry.Name, stats.BestCandidate.Report,
			formatDistance(stats.BestCandidate.Entry.CombinedDistance))
	}

	duration := time.Since(summary.StartTime)
	text := fmt.Sprintf("\n%d/%d passed", summary.SuccessfulFiles, summary.TotalFiles)
	if summary.TotalErrors > 0 {
		text += fmt.Sprintf(", %d %s", summary.TotalErrors, pluralizeCount("error", summary.TotalErrors))
	}
	text += fmt.Sprintf(" (%s)", formatDuration(duration))
	fmt.Fprintln(f.out, text)
}

// printConclusion prints the conclusion message
func (f *ConsoleFormatter) printConclusion(summary *cli.EvaluationSummary) {
	if summary.FailedFiles > 0 || summary.TotalFiles == 0 {
		if summary.TotalFiles == 0 {
			fmt.Fprintln(f.out, "No request files found")
		}
		return
	}

	msg := "✓ All passed"
	if summary.TotalFiles == 1 {
		return
	}
	if f.colorize && f.out == os.Stdout && isTTY() && allTopGrade(summary) {
		printCelebration(f.out, msg)
		return
	}
	fmt.Fprintln(f.out, f.style("10").Bold(f.colorize).Render(msg))
}

// allTopGrade reports whether every graded report earned an A+.
func allTopGrade(summary *cli.EvaluationSummary) bool {
	if summary.Stats.Scored == 0 {
		return false
	}
	return summary.Stats.GradeCounts[types.GradeAPlus] == summary.Stats.Scored
}

// pluralizeCount returns singular or plural form based on count.
func pluralizeCount(s string, count int) string {
	if count == 1 {
		return s
	}
	return s + "s"
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatValue(v float64, unit string) string {
	switch unit {
	case "%":
		return fmt.Sprintf("%g%%", v)
	case "", "ratio", "points", "distance":
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%g %s", v, unit)
	}
}

func formatDistance(d float64) string {
	return fmt.Sprintf("%.4f", d)
}

func formatEfficiency(e float64) string {
	if e >= 1e6 {
		return fmt.Sprintf("%.2e", e)
	}
	return fmt.Sprintf("%.1f", e)
}
