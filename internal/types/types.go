// Package types provides shared vocabulary used across the pwgrade codebase.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package types

// Label is a discrete classification produced by a band table.
type Label string

// Grade is a letter grade derived from a composite score.
type Grade string

// ValidationError represents a problem found while evaluating a request.
type ValidationError struct {
	File     string
	Message  string
	Severity string // error, warning, info
	Source   string // schema, engine, input
	Path     string // dotted field path, when known
	Line     int    // 1-based line in File, 0 when unknown
}

// Metric name constants.
const (
	MetricEntropyRatio          = "entropy_ratio"
	MetricAvgEntropy            = "avg_entropy"
	MetricHitRate               = "hit_rate"
	MetricRepeatRate            = "repeat_rate"
	MetricPatternDiversityRatio = "pattern_diversity_ratio"
	MetricStrongPasswordPct     = "strong_password_pct"
	MetricOverallScore          = "overall_score"
	MetricReferenceSimilarity   = "reference_similarity"
	MetricDistanceStatus        = "distance_status"
)

// Label constants.
const (
	LabelHigh              Label = "High"
	LabelMedium            Label = "Medium"
	LabelLow               Label = "Low"
	LabelVeryHigh          Label = "VeryHigh"
	LabelExcellent         Label = "Excellent"
	LabelVeryGood          Label = "VeryGood"
	LabelGood              Label = "Good"
	LabelAverage           Label = "Average"
	LabelWeak              Label = "Weak"
	LabelVeryWeak          Label = "VeryWeak"
	LabelPerfect           Label = "Perfect"
	LabelVerySimilar       Label = "VerySimilar"
	LabelModeratelySimilar Label = "ModeratelySimilar"
	LabelDistinct          Label = "Distinct"
	LabelNeedsImprovement  Label = "NeedsImprovement"
)

// Grade constants, best first.
const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeD      Grade = "D"
	GradeF      Grade = "F"
)

// Grades lists every grade from best to worst.
var Grades = []Grade{
	GradeAPlus, GradeA, GradeAMinus,
	GradeBPlus, GradeB, GradeBMinus,
	GradeCPlus, GradeC, GradeCMinus,
	GradeD, GradeF,
}

// Severity level constants.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Validation source constants.
const (
	SourceSchema = "schema"
	SourceEngine = "engine"
	SourceInput  = "input"
)
