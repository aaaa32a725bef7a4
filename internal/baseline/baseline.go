package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dotcommander/pwgrade/internal/scoring"
	"github.com/dotcommander/pwgrade/internal/types"
)

var (
	quotedPattern = regexp.MustCompile(`"[^"]+"`)
	numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?([eE][-+]?\d+)?`)
)

// Baseline is a snapshot of known issues and of the grade each request
// earned when it was taken.
type Baseline struct {
	Version      string                 `json:"version"`
	CreatedAt    string                 `json:"created_at"`
	Fingerprints []string               `json:"fingerprints"`
	Grades       map[string]types.Grade `json:"grades,omitempty"`
	index        map[string]bool        // For fast lookup
}

// Snapshot identifies one graded request.
type Snapshot struct {
	Source string
	Name   string
	Grade  types.Grade
}

// Regression is a request whose grade dropped below its baseline grade.
type Regression struct {
	Source   string
	Name     string
	Previous types.Grade
	Current  types.Grade
}

// CreateBaseline creates a new baseline from validation issues and grade
// snapshots. Snapshots without a grade are ignored.
func CreateBaseline(issues []types.ValidationError, snapshots []Snapshot) *Baseline {
	fingerprints := make([]string, 0, len(issues))
	index := make(map[string]bool)

	for _, issue := range issues {
		fp := fingerprint(issue)
		if !index[fp] {
			fingerprints = append(fingerprints, fp)
			index[fp] = true
		}
	}

	// Sort for deterministic output
	sort.Strings(fingerprints)

	grades := make(map[string]types.Grade)
	for _, s := range snapshots {
		if s.Grade == "" {
			continue
		}
		grades[snapshotKey(s.Source, s.Name)] = s.Grade
	}

	return &Baseline{
		Version:      "1.0",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Fingerprints: fingerprints,
		Grades:       grades,
		index:        index,
	}
}

// LoadBaseline loads a baseline from a JSON file
func LoadBaseline(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file: %w", err)
	}

	b.index = make(map[string]bool, len(b.Fingerprints))
	for _, fp := range b.Fingerprints {
		b.index[fp] = true
	}

	return &b, nil
}

// SaveBaseline saves the baseline to a JSON file
func (b *Baseline) SaveBaseline(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}

	return nil
}

// IsKnown checks if an issue is in the baseline
func (b *Baseline) IsKnown(issue types.ValidationError) bool {
	if b.index == nil {
		return false
	}
	return b.index[fingerprint(issue)]
}

// Regressions lists snapshots graded worse than their baseline grade.
// Requests unknown to the baseline, or without a current grade, never regress.
func (b *Baseline) Regressions(snapshots []Snapshot) []Regression {
	var out []Regression
	for _, s := range snapshots {
		if s.Grade == "" {
			continue
		}
		prev, ok := b.Grades[snapshotKey(s.Source, s.Name)]
		if !ok {
			continue
		}
		if scoring.GradeRank(s.Grade) > scoring.GradeRank(prev) {
			out = append(out, Regression{
				Source:   s.Source,
				Name:     s.Name,
				Previous: prev,
				Current:  s.Grade,
			})
		}
	}
	return out
}

func snapshotKey(source, name string) string {
	hash := sha256.Sum256([]byte(source + "|" + name))
	return fmt.Sprintf("%x", hash)
}

// fingerprint creates a stable hash of an issue for comparison
// Uses: file path + source + normalized message pattern
func fingerprint(issue types.ValidationError) string {
	msg := normalizeMessage(issue.Message)
	data := fmt.Sprintf("%s|%s|%s", issue.File, issue.Source, msg)

	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// normalizeMessage replaces quoted names and numbers with placeholders so
// that an issue keeps its fingerprint when only the offending value changes.
func normalizeMessage(msg string) string {
	msg = quotedPattern.ReplaceAllString(msg, `"*"`)
	msg = numberPattern.ReplaceAllString(msg, `N`)
	return strings.Join(strings.Fields(msg), " ")
}
