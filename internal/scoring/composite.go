package scoring

import (
	"github.com/dotcommander/pwgrade/internal/bands"
	"github.com/dotcommander/pwgrade/internal/metrics"
	"github.com/dotcommander/pwgrade/internal/types"
)

// hitTable scores hit rate percentages, higher is better.
func hitTable() bands.Table[float64] {
	return bands.Table[float64]{
		Direction: bands.HigherIsBetter,
		Bands: []bands.Band[float64]{
			{Bound: 20, Value: 6},
			{Bound: 15, Value: 5.5},
			{Bound: 10, Value: 5},
			{Bound: 5, Value: 4},
			{Bound: 2, Value: 3},
			{Bound: 1, Value: 2},
			{Bound: 0.5, Value: 1.5},
			{Bound: 0.1, Value: 1},
		},
		Fallback: 0.5,
	}
}

// repeatTable scores repeat rate percentages, lower is better.
func repeatTable() bands.Table[float64] {
	return bands.Table[float64]{
		Direction: bands.LowerIsBetter,
		Bands: []bands.Band[float64]{
			{Bound: 0.000001, Value: 4},
			{Bound: 0.00001, Value: 3.8},
			{Bound: 0.0001, Value: 3.6},
			{Bound: 0.001, Value: 3.4},
			{Bound: 0.01, Value: 3.2},
			{Bound: 0.1, Value: 3},
			{Bound: 1, Value: 2},
			{Bound: 5, Value: 1},
		},
		Fallback: 0,
	}
}

// HitComponent returns the hit rate sub-score for a percentage.
func HitComponent(hitPercent float64) float64 {
	return hitTable().Lookup(hitPercent)
}

// RepeatComponent returns the repeat rate sub-score for a percentage.
func RepeatComponent(repeatPercent float64) float64 {
	return repeatTable().Lookup(repeatPercent)
}

// Score combines a hit rate and a repeat rate, both fractions in [0,1],
// into a CompositeScore.
func Score(hitRate, repeatRate float64) (CompositeScore, error) {
	if err := metrics.Fraction.Check(types.MetricHitRate, hitRate); err != nil {
		return CompositeScore{}, err
	}
	if err := metrics.Fraction.Check(types.MetricRepeatRate, repeatRate); err != nil {
		return CompositeScore{}, err
	}

	hitPercent := hitRate * 100
	repeatPercent := repeatRate * 100

	hitLabel, err := bands.Classify(types.MetricHitRate, hitPercent)
	if err != nil {
		return CompositeScore{}, err
	}
	repeatLabel, err := bands.Classify(types.MetricRepeatRate, repeatPercent)
	if err != nil {
		return CompositeScore{}, err
	}

	hit := HitComponent(hitPercent)
	repeat := RepeatComponent(repeatPercent)
	total := hit + repeat

	return CompositeScore{
		HitComponent:    hit,
		RepeatComponent: repeat,
		Total:           total,
		Grade:           GradeFromTotal(total),
		Details: []ScoringMetric{
			{
				Category:  "hit",
				Name:      "Hit rate",
				Input:     hitPercent,
				Points:    hit,
				MaxPoints: MaxHitPoints,
				Label:     hitLabel,
			},
			{
				Category:  "repeat",
				Name:      "Repeat rate",
				Input:     repeatPercent,
				Points:    repeat,
				MaxPoints: MaxRepeatPoints,
				Label:     repeatLabel,
			},
		},
	}, nil
}

// Efficiency relates hits to repeats: hit / (repeat + 1e-9) * 100.
// Callers are expected to have validated both rates.
func Efficiency(hitRate, repeatRate float64) float64 {
	return hitRate / (repeatRate + 1e-9) * 100
}
