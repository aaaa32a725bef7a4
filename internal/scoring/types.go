package scoring

import (
	"github.com/dotcommander/pwgrade/internal/bands"
	"github.com/dotcommander/pwgrade/internal/types"
)

// CompositeScore is the weighted quality score of a generated password set
type CompositeScore struct {
	HitComponent    float64         `json:"hit_component"`    // 0.5-6 hit rate tier
	RepeatComponent float64         `json:"repeat_component"` // 0-4 repeat rate tier
	Total           float64         `json:"total"`            // 0-10 sum of components
	Grade           types.Grade     `json:"grade"`            // A+ .. F
	Details         []ScoringMetric `json:"details,omitempty"`
}

// ScoringMetric represents one component of the composite score
type ScoringMetric struct {
	Category  string      `json:"category"`   // hit, repeat
	Name      string      `json:"name"`       // Human-readable name
	Input     float64     `json:"input"`      // Percentage the tier was chosen from
	Points    float64     `json:"points"`     // Points earned
	MaxPoints float64     `json:"max_points"` // Maximum possible points
	Label     types.Label `json:"label"`      // Band label of the input
}

// Component maxima.
const (
	MaxHitPoints    = 6.0
	MaxRepeatPoints = 4.0
	MaxTotal        = MaxHitPoints + MaxRepeatPoints
)

// gradeTable is the canonical grade table, keyed on total.
func gradeTable() bands.Table[types.Grade] {
	return bands.Table[types.Grade]{
		Direction: bands.HigherIsBetter,
		Bands: []bands.Band[types.Grade]{
			{Bound: 9.5, Value: types.GradeAPlus},
			{Bound: 9, Value: types.GradeA},
			{Bound: 8, Value: types.GradeAMinus},
			{Bound: 7.5, Value: types.GradeBPlus},
			{Bound: 7, Value: types.GradeB},
			{Bound: 6, Value: types.GradeBMinus},
			{Bound: 5, Value: types.GradeCPlus},
			{Bound: 4, Value: types.GradeC},
			{Bound: 3, Value: types.GradeCMinus},
			{Bound: 2, Value: types.GradeD},
		},
		Fallback: types.GradeF,
	}
}

// GradeFromTotal returns the letter grade for a composite total
func GradeFromTotal(total float64) types.Grade {
	return gradeTable().Lookup(total)
}

// GradeRank returns the position of g in the grade order, 0 being best.
// Unknown grades rank after F.
func GradeRank(g types.Grade) int {
	for i, known := range types.Grades {
		if known == g {
			return i
		}
	}
	return len(types.Grades)
}

// GradeAtLeast reports whether g is as good as or better than threshold.
func GradeAtLeast(g, threshold types.Grade) bool {
	return GradeRank(g) <= GradeRank(threshold)
}

// ParseGrade returns the grade matching s, or false if s is not a grade.
func ParseGrade(s string) (types.Grade, bool) {
	for _, g := range types.Grades {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}
