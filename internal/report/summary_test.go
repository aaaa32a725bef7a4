package report

import (
	"math"
	"testing"

	"github.com/dotcommander/pwgrade/internal/ranking"
	"github.com/dotcommander/pwgrade/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAssemble(t *testing.T, req Request) *Report {
	t.Helper()
	rep, err := newTestAssembler().Assemble(req)
	require.NoError(t, err)
	return rep
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Reports)
	assert.Zero(t, s.MeanTotal)
	assert.Zero(t, s.StdDevTotal)
	assert.Nil(t, s.BestCandidate)
	assert.NotNil(t, s.GradeCounts)
}

func TestSummarizeSingleScore(t *testing.T) {
	rep := mustAssemble(t, Request{Composite: &CompositeInput{HitRate: 0.12, RepeatRate: 0.0005}})
	s := Summarize([]*Report{rep})

	assert.Equal(t, 1, s.Scored)
	assert.Equal(t, 8.0, s.MeanTotal)
	assert.Zero(t, s.StdDevTotal)
	assert.False(t, math.IsNaN(s.StdDevTotal))
}

func TestSummarizeBatch(t *testing.T) {
	reports := []*Report{
		mustAssemble(t, Request{Name: "strong", Composite: &CompositeInput{HitRate: 0.2, RepeatRate: 0}}),
		mustAssemble(t, Request{Name: "weak", Composite: &CompositeInput{HitRate: 0, RepeatRate: 1}}),
		nil,
		mustAssemble(t, Request{Name: "middle", Composite: &CompositeInput{HitRate: 0.12, RepeatRate: 0.0005}}),
		mustAssemble(t, Request{Name: "models", Candidates: []ranking.Candidate{
			{Name: "PassGAN", LengthDistance: 0.5, PatternDistance: 0.5},
			{Name: "PassGPT", LengthDistance: 0.125, PatternDistance: 0.125},
		}}),
		mustAssemble(t, Request{Name: "more-models", Candidates: []ranking.Candidate{
			{Name: "DC Generated", LengthDistance: 0.0625, PatternDistance: 0},
		}}),
	}

	s := Summarize(reports)

	assert.Equal(t, 5, s.Reports)
	assert.Equal(t, 3, s.Scored)
	assert.Equal(t, 2, s.Ranked)
	assert.Equal(t, 1, s.GradeCounts[types.GradeAPlus])
	assert.Equal(t, 1, s.GradeCounts[types.GradeAMinus])
	assert.Equal(t, 1, s.GradeCounts[types.GradeF])

	// totals are 10, 0.5 and 8
	assert.InDelta(t, (10+0.5+8)/3.0, s.MeanTotal, 1e-9)
	assert.Greater(t, s.StdDevTotal, 0.0)

	require.Len(t, s.Lowest, 3)
	assert.Equal(t, "weak", s.Lowest[0].Name)
	assert.Equal(t, "middle", s.Lowest[1].Name)
	assert.Equal(t, "strong", s.Lowest[2].Name)

	require.NotNil(t, s.BestCandidate)
	assert.Equal(t, "more-models", s.BestCandidate.Report)
	assert.Equal(t, "DC Generated", s.BestCandidate.Entry.Name)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "n", displayName(&Report{ID: "i", Name: "n", Source: "s"}))
	assert.Equal(t, "s", displayName(&Report{ID: "i", Source: "s"}))
	assert.Equal(t, "i", displayName(&Report{ID: "i"}))
}
