package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dotcommander/pwgrade/internal/cli"
	"github.com/dotcommander/pwgrade/internal/report"
)

// Tool metadata written into machine-readable reports.
const (
	ToolName    = "pwgrade"
	ToolVersion = "1.0.0"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	quiet      bool
	indent     bool
	outputFile string
	out        io.Writer
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(quiet bool, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		quiet:      quiet,
		indent:     indent,
		outputFile: outputFile,
		out:        os.Stdout,
	}
}

// WithWriter redirects stdout output.
func (f *JSONFormatter) WithWriter(w io.Writer) *JSONFormatter {
	f.out = w
	return f
}

// Format formats the evaluation summary as JSON
func (f *JSONFormatter) Format(summary *cli.EvaluationSummary) error {
	doc := JSONReport{
		Header: JSONHeader{
			Tool:      ToolName,
			Version:   ToolVersion,
			Timestamp: time.Now().Format(time.RFC3339),
			Project:   summary.ProjectRoot,
		},
		Summary: JSONSummary{
			TotalFiles:      summary.TotalFiles,
			SuccessfulFiles: summary.SuccessfulFiles,
			FailedFiles:     summary.FailedFiles,
			TotalErrors:     summary.TotalErrors,
			Duration:        time.Since(summary.StartTime).Round(time.Millisecond).String(),
			Stats:           summary.Stats,
		},
		Results: make([]JSONResult, len(summary.Results)),
	}

	for i, result := range summary.Results {
		jsonResult := JSONResult{
			File:     result.File,
			Success:  result.Success,
			Duration: result.Duration,
			Report:   result.Report,
		}

		for _, err := range result.Errors {
			jsonResult.Errors = append(jsonResult.Errors, JSONValidationError{
				File:     err.File,
				Message:  err.Message,
				Severity: err.Severity,
				Source:   err.Source,
				Path:     err.Path,
				Line:     err.Line,
			})
		}

		doc.Results[i] = jsonResult
	}

	var jsonBytes []byte
	var err error

	if f.indent {
		jsonBytes, err = json.MarshalIndent(doc, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(doc)
	}

	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	return writeOutput(f.outputFile, f.out, append(jsonBytes, '\n'))
}

// writeOutput writes content to path, or to w when path is empty.
func writeOutput(path string, w io.Writer, content []byte) error {
	if path != "" {
		if err := os.WriteFile(path, content, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", path, err)
		}
		return nil
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}

// JSONReport represents the complete JSON report structure
type JSONReport struct {
	Header  JSONHeader   `json:"header"`
	Summary JSONSummary  `json:"summary"`
	Results []JSONResult `json:"results"`
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Project   string `json:"project,omitempty"`
}

// JSONSummary contains summary statistics
type JSONSummary struct {
	TotalFiles      int            `json:"total_files"`
	SuccessfulFiles int            `json:"successful_files"`
	FailedFiles     int            `json:"failed_files"`
	TotalErrors     int            `json:"total_errors"`
	Duration        string         `json:"duration"`
	Stats           report.Summary `json:"stats"`
}

// JSONResult represents a single file's evaluation result
type JSONResult struct {
	File     string                `json:"file"`
	Success  bool                  `json:"success"`
	Duration int64                 `json:"duration_ms,omitempty"`
	Errors   []JSONValidationError `json:"errors,omitempty"`
	Report   *report.Report        `json:"report,omitempty"`
}

// JSONValidationError represents a validation error
type JSONValidationError struct {
	File     string `json:"file"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Source   string `json:"source,omitempty"`
	Path     string `json:"path,omitempty"`
	Line     int    `json:"line,omitempty"`
}
