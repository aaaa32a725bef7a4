// Package bands maps single numeric metrics onto ordinal labels through
// per-metric threshold tables.
//
// Every table is built on demand by Definition, so the package holds no
// shared state and Classify is safe to call from any goroutine.
package bands

import (
	"github.com/dotcommander/pwgrade/internal/metrics"
	"github.com/dotcommander/pwgrade/internal/types"
)

// Metric describes how one metric is classified.
type Metric struct {
	Name   string
	Unit   string
	Domain metrics.Domain
	Table  Table[types.Label]
}

// Classify validates value against the metric domain and returns its label.
func (m Metric) Classify(value float64) (types.Label, error) {
	if err := m.Domain.Check(m.Name, value); err != nil {
		return "", err
	}
	return m.Table.Lookup(value), nil
}

// Classify returns the label for value under the named metric's table.
func Classify(name string, value float64) (types.Label, error) {
	m, err := Definition(name)
	if err != nil {
		return "", err
	}
	return m.Classify(value)
}

// Names lists every metric with a table, in display order.
func Names() []string {
	return []string{
		types.MetricEntropyRatio,
		types.MetricAvgEntropy,
		types.MetricHitRate,
		types.MetricRepeatRate,
		types.MetricPatternDiversityRatio,
		types.MetricStrongPasswordPct,
		types.MetricOverallScore,
		types.MetricReferenceSimilarity,
		types.MetricDistanceStatus,
	}
}

// Definition returns the table for a metric, or a ConfigurationError.
func Definition(name string) (Metric, error) {
	switch name {
	case types.MetricEntropyRatio:
		return Metric{
			Name:   name,
			Unit:   "%",
			Domain: metrics.Percentage,
			Table: Table[types.Label]{
				Direction: HigherIsBetter,
				Bands: []Band[types.Label]{
					{80, types.LabelHigh},
					{60, types.LabelMedium},
				},
				Fallback: types.LabelLow,
			},
		}, nil
	case types.MetricAvgEntropy:
		return Metric{
			Name:   name,
			Unit:   "bits",
			Domain: metrics.NonNegative,
			Table: Table[types.Label]{
				Direction: HigherIsBetter,
				Bands: []Band[types.Label]{
					{40, types.LabelHigh},
					{25, types.LabelMedium},
				},
				Fallback: types.LabelLow,
			},
		}, nil
	case types.MetricHitRate:
		return Metric{
			Name:   name,
			Unit:   "%",
			Domain: metrics.Percentage,
			Table: Table[types.Label]{
				Direction: HigherIsBetter,
				Bands: []Band[types.Label]{
					{15, types.LabelExcellent},
					{10, types.LabelGood},
					{5, types.LabelAverage},
					{1, types.LabelWeak},
				},
				Fallback: types.LabelVeryWeak,
			},
		}, nil
	case types.MetricRepeatRate:
		return Metric{
			Name:   name,
			Unit:   "%",
			Domain: metrics.Percentage,
			Table: Table[types.Label]{
				Direction: LowerIsBetter,
				Bands: []Band[types.Label]{
					{0.000001, types.LabelExcellent},
					{0.001, types.LabelVeryGood},
					{0.1, types.LabelGood},
					{1, types.LabelAverage},
					{5, types.LabelWeak},
				},
				Fallback: types.LabelVeryWeak,
			},
		}, nil
	case types.MetricPatternDiversityRatio:
		return Metric{
			Name:   name,
			Unit:   "ratio",
			Domain: metrics.Fraction,
			Table: Table[types.Label]{
				Direction: HigherIsBetter,
				Strict:    true,
				Bands: []Band[types.Label]{
					{0.8, types.LabelVeryHigh},
					{0.5, types.LabelHigh},
					{0.3, types.LabelMedium},
				},
				Fallback: types.LabelLow,
			},
		}, nil
	case types.MetricStrongPasswordPct:
		return Metric{
			Name:   name,
			Unit:   "%",
			Domain: metrics.Percentage,
			Table: Table[types.Label]{
				Direction: HigherIsBetter,
				Bands: []Band[types.Label]{
					{70, types.LabelGood},
					{40, types.LabelAverage},
				},
				Fallback: types.LabelWeak,
			},
		}, nil
	case types.MetricOverallScore:
		return Metric{
			Name:   name,
			Unit:   "points",
			Domain: metrics.Domain{Min: 0, Max: 10},
			Table: Table[types.Label]{
				Direction: HigherIsBetter,
				Bands: []Band[types.Label]{
					{9, types.LabelPerfect},
					{7, types.LabelExcellent},
					{5, types.LabelGood},
					{3, types.LabelAverage},
				},
				Fallback: types.LabelWeak,
			},
		}, nil
	case types.MetricReferenceSimilarity:
		return Metric{
			Name:   name,
			Unit:   "distance",
			Domain: metrics.NonNegative,
			Table: Table[types.Label]{
				Direction: LowerIsBetter,
				Strict:    true,
				Bands: []Band[types.Label]{
					{0.1, types.LabelVerySimilar},
					{0.3, types.LabelModeratelySimilar},
				},
				Fallback: types.LabelDistinct,
			},
		}, nil
	case types.MetricDistanceStatus:
		return Metric{
			Name:   name,
			Unit:   "distance",
			Domain: metrics.NonNegative,
			Table: Table[types.Label]{
				Direction: LowerIsBetter,
				Strict:    true,
				Bands: []Band[types.Label]{
					{0.1, types.LabelExcellent},
					{0.3, types.LabelGood},
					{0.5, types.LabelAverage},
				},
				Fallback: types.LabelNeedsImprovement,
			},
		}, nil
	}
	return Metric{}, &metrics.ConfigurationError{Metric: name}
}

// Describe returns a sentence for similarity labels, or the label itself.
func Describe(label types.Label) string {
	switch label {
	case types.LabelVerySimilar:
		return "very similar to reference distribution"
	case types.LabelModeratelySimilar:
		return "moderately similar to reference distribution"
	case types.LabelDistinct:
		return "distinct from reference distribution"
	default:
		return string(label)
	}
}
