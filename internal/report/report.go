// Package report assembles classifier, scorer and ranker output into a
// single structured result for presentation.
package report

import (
	"fmt"
	"time"

	"github.com/dotcommander/pwgrade/internal/bands"
	"github.com/dotcommander/pwgrade/internal/metrics"
	"github.com/dotcommander/pwgrade/internal/ranking"
	"github.com/dotcommander/pwgrade/internal/scoring"
	"github.com/dotcommander/pwgrade/internal/types"
	"github.com/google/uuid"
)

// CompositeInput carries the two rates the composite scorer needs.
type CompositeInput struct {
	HitRate    float64 `json:"hit_rate"`
	RepeatRate float64 `json:"repeat_rate"`
}

// Request is everything one evaluation asks the engine to do.
type Request struct {
	Name       string
	Source     string
	Metrics    []metrics.Sample
	Composite  *CompositeInput
	Candidates []ranking.Candidate
}

// Empty reports whether the request asks for nothing.
func (r Request) Empty() bool {
	return len(r.Metrics) == 0 && r.Composite == nil && r.Candidates == nil
}

// Classification is one labelled metric.
type Classification struct {
	Metric string      `json:"metric"`
	Value  float64     `json:"value"`
	Unit   string      `json:"unit,omitempty"`
	Label  types.Label `json:"label"`
}

// CompositeSection is the scored hit/repeat evaluation.
type CompositeSection struct {
	Input      CompositeInput         `json:"input"`
	Score      scoring.CompositeScore `json:"score"`
	Status     types.Label            `json:"status"`
	Efficiency float64                `json:"efficiency"`
	Advice     []scoring.Advice       `json:"advice,omitempty"`
}

// Report is the assembled result of one evaluation request.
type Report struct {
	ID              string            `json:"id"`
	Name            string            `json:"name,omitempty"`
	Source          string            `json:"source,omitempty"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Classifications []Classification  `json:"classifications,omitempty"`
	Composite       *CompositeSection `json:"composite,omitempty"`
	Ranking         *ranking.Ranking  `json:"ranking,omitempty"`
}

// Grade returns the composite grade, or "" when the report has no composite.
func (r *Report) Grade() types.Grade {
	if r.Composite == nil {
		return ""
	}
	return r.Composite.Score.Grade
}

// Assembler builds reports. The zero value is not usable; use NewAssembler.
type Assembler struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// WithIDGenerator overrides the report ID source.
func WithIDGenerator(newID func() string) Option {
	return func(a *Assembler) { a.newID = newID }
}

// NewAssembler creates an Assembler stamping reports with random UUIDs and
// the current UTC time.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble runs every part of the request through the engine. The first
// engine error aborts the whole request.
func (a *Assembler) Assemble(req Request) (*Report, error) {
	if req.Empty() {
		return nil, fmt.Errorf("request has no metrics, composite or candidates")
	}

	rep := &Report{
		ID:          a.newID(),
		Name:        req.Name,
		Source:      req.Source,
		GeneratedAt: a.now(),
	}

	for _, sample := range req.Metrics {
		def, err := bands.Definition(sample.Name)
		if err != nil {
			return nil, fmt.Errorf("classifying %s: %w", sample.Name, err)
		}
		label, err := def.Classify(sample.Value)
		if err != nil {
			return nil, fmt.Errorf("classifying %s: %w", sample.Name, err)
		}
		rep.Classifications = append(rep.Classifications, Classification{
			Metric: sample.Name,
			Value:  sample.Value,
			Unit:   def.Unit,
			Label:  label,
		})
	}

	if req.Composite != nil {
		section, err := composite(*req.Composite)
		if err != nil {
			return nil, fmt.Errorf("scoring: %w", err)
		}
		rep.Composite = section
	}

	if req.Candidates != nil {
		r, err := ranking.Rank(req.Candidates)
		if err != nil {
			return nil, fmt.Errorf("ranking: %w", err)
		}
		rep.Ranking = &r
	}

	return rep, nil
}

func composite(in CompositeInput) (*CompositeSection, error) {
	score, err := scoring.Score(in.HitRate, in.RepeatRate)
	if err != nil {
		return nil, err
	}
	status, err := bands.Classify(types.MetricOverallScore, score.Total)
	if err != nil {
		return nil, err
	}
	return &CompositeSection{
		Input:      in,
		Score:      score,
		Status:     status,
		Efficiency: scoring.Efficiency(in.HitRate, in.RepeatRate),
		Advice:     scoring.Advise(in.HitRate, in.RepeatRate),
	}, nil
}
