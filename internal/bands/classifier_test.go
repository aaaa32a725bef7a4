package bands

import (
	"errors"
	"math"
	"testing"

	"github.com/dotcommander/pwgrade/internal/metrics"
	"github.com/dotcommander/pwgrade/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		metric string
		value  float64
		want   types.Label
	}{
		// entropy_ratio
		{"entropy ratio - max", types.MetricEntropyRatio, 100, types.LabelHigh},
		{"entropy ratio - high boundary", types.MetricEntropyRatio, 80, types.LabelHigh},
		{"entropy ratio - just below high", types.MetricEntropyRatio, 79.99, types.LabelMedium},
		{"entropy ratio - medium boundary", types.MetricEntropyRatio, 60, types.LabelMedium},
		{"entropy ratio - low", types.MetricEntropyRatio, 59.9, types.LabelLow},
		{"entropy ratio - zero", types.MetricEntropyRatio, 0, types.LabelLow},

		// avg_entropy
		{"avg entropy - high boundary", types.MetricAvgEntropy, 40, types.LabelHigh},
		{"avg entropy - unbounded high", types.MetricAvgEntropy, 512, types.LabelHigh},
		{"avg entropy - medium boundary", types.MetricAvgEntropy, 25, types.LabelMedium},
		{"avg entropy - low", types.MetricAvgEntropy, 24.999, types.LabelLow},

		// hit_rate (percent)
		{"hit rate - excellent boundary", types.MetricHitRate, 15, types.LabelExcellent},
		{"hit rate - good", types.MetricHitRate, 12, types.LabelGood},
		{"hit rate - good boundary", types.MetricHitRate, 10, types.LabelGood},
		{"hit rate - average boundary", types.MetricHitRate, 5, types.LabelAverage},
		{"hit rate - weak boundary", types.MetricHitRate, 1, types.LabelWeak},
		{"hit rate - very weak", types.MetricHitRate, 0.99, types.LabelVeryWeak},
		{"hit rate - zero", types.MetricHitRate, 0, types.LabelVeryWeak},

		// repeat_rate (percent, inverted)
		{"repeat rate - zero", types.MetricRepeatRate, 0, types.LabelExcellent},
		{"repeat rate - excellent boundary", types.MetricRepeatRate, 0.000001, types.LabelExcellent},
		{"repeat rate - very good", types.MetricRepeatRate, 0.00005, types.LabelVeryGood},
		{"repeat rate - very good boundary", types.MetricRepeatRate, 0.001, types.LabelVeryGood},
		{"repeat rate - good boundary", types.MetricRepeatRate, 0.1, types.LabelGood},
		{"repeat rate - average boundary", types.MetricRepeatRate, 1, types.LabelAverage},
		{"repeat rate - weak boundary", types.MetricRepeatRate, 5, types.LabelWeak},
		{"repeat rate - very weak", types.MetricRepeatRate, 5.01, types.LabelVeryWeak},
		{"repeat rate - all repeats", types.MetricRepeatRate, 100, types.LabelVeryWeak},

		// pattern_diversity_ratio (strict)
		{"diversity - very high", types.MetricPatternDiversityRatio, 0.81, types.LabelVeryHigh},
		{"diversity - at 0.8 is high", types.MetricPatternDiversityRatio, 0.8, types.LabelHigh},
		{"diversity - at 0.5 is medium", types.MetricPatternDiversityRatio, 0.5, types.LabelMedium},
		{"diversity - at 0.3 is low", types.MetricPatternDiversityRatio, 0.3, types.LabelLow},
		{"diversity - one", types.MetricPatternDiversityRatio, 1, types.LabelVeryHigh},

		// strong_password_pct
		{"strong - good boundary", types.MetricStrongPasswordPct, 70, types.LabelGood},
		{"strong - average boundary", types.MetricStrongPasswordPct, 40, types.LabelAverage},
		{"strong - weak", types.MetricStrongPasswordPct, 39.5, types.LabelWeak},

		// overall_score
		{"overall - perfect", types.MetricOverallScore, 9, types.LabelPerfect},
		{"overall - excellent", types.MetricOverallScore, 8.5, types.LabelExcellent},
		{"overall - good", types.MetricOverallScore, 5, types.LabelGood},
		{"overall - average", types.MetricOverallScore, 3, types.LabelAverage},
		{"overall - weak", types.MetricOverallScore, 2.9, types.LabelWeak},

		// reference_similarity (strict, inverted)
		{"similarity - very similar", types.MetricReferenceSimilarity, 0.05, types.LabelVerySimilar},
		{"similarity - at 0.1 is moderate", types.MetricReferenceSimilarity, 0.1, types.LabelModeratelySimilar},
		{"similarity - at 0.3 is distinct", types.MetricReferenceSimilarity, 0.3, types.LabelDistinct},
		{"similarity - far", types.MetricReferenceSimilarity, 7, types.LabelDistinct},

		// distance_status
		{"status - excellent", types.MetricDistanceStatus, 0, types.LabelExcellent},
		{"status - good", types.MetricDistanceStatus, 0.2, types.LabelGood},
		{"status - average", types.MetricDistanceStatus, 0.45, types.LabelAverage},
		{"status - needs improvement", types.MetricDistanceStatus, 0.5, types.LabelNeedsImprovement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.metric, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyUnknownMetric(t *testing.T) {
	label, err := Classify("guess_number", 10)
	require.Error(t, err)
	assert.Empty(t, label)

	var cfgErr *metrics.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "guess_number", cfgErr.Metric)
}

func TestClassifyOutOfDomain(t *testing.T) {
	tests := []struct {
		name   string
		metric string
		value  float64
	}{
		{"negative hit rate", types.MetricHitRate, -1},
		{"hit rate above 100", types.MetricHitRate, 100.1},
		{"repeat rate NaN", types.MetricRepeatRate, math.NaN()},
		{"diversity above one", types.MetricPatternDiversityRatio, 1.2},
		{"entropy infinite", types.MetricAvgEntropy, math.Inf(1)},
		{"overall score above ten", types.MetricOverallScore, 10.5},
		{"negative distance", types.MetricReferenceSimilarity, -0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.metric, tt.value)
			var invalid *metrics.InvalidMetricError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.metric, invalid.Metric)
		})
	}
}

func TestClassifyIsTotalOverDomain(t *testing.T) {
	for _, name := range Names() {
		m, err := Definition(name)
		require.NoError(t, err)

		upper := m.Domain.Max
		if math.IsInf(upper, 1) {
			upper = 1000
		}
		step := (upper - m.Domain.Min) / 997
		for v := m.Domain.Min; v <= upper; v += step {
			label, err := m.Classify(v)
			require.NoError(t, err, "%s at %g", name, v)
			assert.NotEmpty(t, label, "%s at %g", name, v)
		}
		for _, b := range m.Table.Bands {
			_, err := m.Classify(b.Bound)
			require.NoError(t, err, "%s at bound %g", name, b.Bound)
		}
	}
}

func TestDefinitionsAreValid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			m, err := Definition(name)
			require.NoError(t, err)
			assert.Equal(t, name, m.Name)
			assert.NoError(t, m.Table.Validate())
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	first, err := Classify(types.MetricRepeatRate, 0.00005)
	require.NoError(t, err)
	second, err := Classify(types.MetricRepeatRate, 0.00005)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, types.LabelVeryGood, first)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "very similar to reference distribution", Describe(types.LabelVerySimilar))
	assert.Equal(t, "moderately similar to reference distribution", Describe(types.LabelModeratelySimilar))
	assert.Equal(t, "distinct from reference distribution", Describe(types.LabelDistinct))
	assert.Equal(t, "Good", Describe(types.LabelGood))
}
