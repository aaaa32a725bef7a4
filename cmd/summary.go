package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/pwgrade/internal/cli"
	"github.com/dotcommander/pwgrade/internal/report"
	"github.com/dotcommander/pwgrade/internal/types"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [PATH|GLOB ...]",
	Short: "Show grade distribution across request files",
	Long: `Summary evaluates request files and prints a dashboard with the grade
distribution, the mean composite score, the lowest scoring requests and the
candidate model closest to the reference.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, err := newEvalContext(cfg)
	if err != nil {
		return err
	}

	summary, err := ctx.Evaluate(cmd.Context(), args)
	if err != nil {
		return err
	}

	printSummaryReport(cmd.OutOrStdout(), summary)
	return nil
}

// gradeBucket groups letter grades into one dashboard row.
type gradeBucket struct {
	label  string
	color  string
	grades []types.Grade
}

var gradeBuckets = []gradeBucket{
	{"A (8-10)  ", "10", []types.Grade{types.GradeAPlus, types.GradeA, types.GradeAMinus}},
	{"B (6-8)   ", "12", []types.Grade{types.GradeBPlus, types.GradeB, types.GradeBMinus}},
	{"C (3-6)   ", "3", []types.Grade{types.GradeCPlus, types.GradeC, types.GradeCMinus}},
	{"D/F (<3)  ", "9", []types.Grade{types.GradeD, types.GradeF}},
}

// printStyles holds all the styles used in the summary report.
type printStyles struct {
	header lipgloss.Style
	dim    lipgloss.Style
	bad    lipgloss.Style
}

// newPrintStyles creates a new set of print styles.
func newPrintStyles() printStyles {
	return printStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func printSummaryReport(w io.Writer, summary *cli.EvaluationSummary) {
	styles := newPrintStyles()
	stats := summary.Stats

	printReportHeader(w, styles)
	printRequestCounts(w, summary, styles)
	printGradeDistribution(w, stats, styles)
	printLowestScoring(w, stats, styles)
	printBestCandidate(w, stats, styles)
	printReportFooter(w, styles)
}

func printReportHeader(w io.Writer, styles printStyles) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.header.Render("╔═══════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(w, styles.header.Render("║              PASSWORD MODEL GRADE SUMMARY                 ║"))
	fmt.Fprintln(w, styles.header.Render("╠═══════════════════════════════════════════════════════════╣"))
}

func printRequestCounts(w io.Writer, summary *cli.EvaluationSummary, styles printStyles) {
	fmt.Fprintf(w, "║ Requests Evaluated: %-38d ║\n", summary.TotalFiles)
	failed := fmt.Sprintf("%-5d", summary.FailedFiles)
	if summary.FailedFiles > 0 {
		failed = styles.bad.Render(failed)
	}
	fmt.Fprintf(w, "║   Scored: %-5d │ Ranked: %-5d │ Failed: %s         ║\n",
		summary.Stats.Scored, summary.Stats.Ranked, failed)
}

func printGradeDistribution(w io.Writer, stats report.Summary, styles printStyles) {
	fmt.Fprintln(w, styles.header.Render("╠───────────────────────────────────────────────────────────╣"))
	fmt.Fprintln(w, "║ GRADE DISTRIBUTION                                        ║")

	total := stats.Scored
	denom := float64(total)
	if denom == 0 {
		denom = 1
	}

	for _, bucket := range gradeBuckets {
		count := 0
		for _, g := range bucket.grades {
			count += stats.GradeCounts[g]
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(bucket.color))
		fmt.Fprintf(w, "║   %s: %-4d (%5.1f%%)  %s                          ║\n",
			style.Render(bucket.label), count, float64(count)/denom*100,
			renderBar(count, total, bucket.color))
	}

	if total > 0 {
		fmt.Fprintf(w, "║   %s %-44s ║\n", styles.dim.Render("mean"),
			fmt.Sprintf("%.2f ± %.2f", stats.MeanTotal, stats.StdDevTotal))
	}
}

func printLowestScoring(w io.Writer, stats report.Summary, styles printStyles) {
	if len(stats.Lowest) == 0 {
		return
	}
	fmt.Fprintln(w, styles.header.Render("╠───────────────────────────────────────────────────────────╣"))
	fmt.Fprintln(w, "║ LOWEST SCORING REQUESTS                                   ║")

	for i, s := range stats.Lowest {
		if i >= 5 {
			break
		}
		name := truncateLeft(s.Name, 35)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(bucketColor(s.Grade)))
		fmt.Fprintf(w, "║   %s %-35s %-3s %5.1f      ║\n",
			styles.dim.Render(fmt.Sprintf("%d.", i+1)),
			name,
			style.Render(string(s.Grade)),
			s.Total)
	}
}

func printBestCandidate(w io.Writer, stats report.Summary, styles printStyles) {
	best := stats.BestCandidate
	if best == nil {
		return
	}
	fmt.Fprintln(w, styles.header.Render("╠───────────────────────────────────────────────────────────╣"))
	fmt.Fprintln(w, "║ CLOSEST MODEL                                             ║")
	fmt.Fprintf(w, "║   %-25s %s %-20s ║\n",
		truncateLeft(best.Entry.Name, 25),
		styles.dim.Render("in"),
		truncateLeft(best.Report, 20))
	fmt.Fprintf(w, "║   %s %-36.4f ║\n", styles.dim.Render("combined distance"), best.Entry.CombinedDistance)
}

func printReportFooter(w io.Writer, styles printStyles) {
	fmt.Fprintln(w, styles.header.Render("╚═══════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(w)
}

func bucketColor(g types.Grade) string {
	for _, bucket := range gradeBuckets {
		for _, bg := range bucket.grades {
			if bg == g {
				return bucket.color
			}
		}
	}
	return "7"
}

func truncateLeft(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return "..." + string(runes[len(runes)-width+3:])
}

func renderBar(count, total int, color string) string {
	if total == 0 {
		return ""
	}
	barWidth := 10
	filled := (count * barWidth) / total
	if count > 0 && filled == 0 {
		filled = 1
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
}
