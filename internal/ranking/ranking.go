// Package ranking orders candidate models by their combined distance to a
// reference password distribution.
package ranking

import (
	"errors"
	"sort"

	"github.com/dotcommander/pwgrade/internal/bands"
	"github.com/dotcommander/pwgrade/internal/metrics"
	"github.com/dotcommander/pwgrade/internal/types"
)

// Candidate holds one model's distances to the reference distribution.
type Candidate struct {
	Name            string  `json:"name"`
	LengthDistance  float64 `json:"length_distance"`
	PatternDistance float64 `json:"pattern_distance"`
}

// CombinedDistance is the sum of length and pattern distance.
func (c Candidate) CombinedDistance() float64 {
	return c.LengthDistance + c.PatternDistance
}

// Entry is a ranked candidate.
type Entry struct {
	Rank             int     `json:"rank"`
	Name             string  `json:"name"`
	LengthDistance   float64 `json:"length_distance"`
	PatternDistance  float64 `json:"pattern_distance"`
	CombinedDistance float64 `json:"combined_distance"`
}

// Ranking is the ascending order of candidates by combined distance.
// Best and Worst are nil when there are no entries.
type Ranking struct {
	Entries    []Entry     `json:"entries"`
	Best       *Entry      `json:"best,omitempty"`
	Worst      *Entry      `json:"worst,omitempty"`
	Similarity types.Label `json:"similarity,omitempty"`
	Status     types.Label `json:"status,omitempty"`
}

// Empty reports whether the ranking has no entries.
func (r Ranking) Empty() bool {
	return len(r.Entries) == 0
}

// Rank validates candidates and orders them by combined distance, lowest
// first. Candidates with equal combined distance keep their input order.
func Rank(candidates []Candidate) (Ranking, error) {
	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		if err := metrics.NonNegative.Check("length_distance", c.LengthDistance); err != nil {
			return Ranking{}, withSubject(err, c.Name)
		}
		if err := metrics.NonNegative.Check("pattern_distance", c.PatternDistance); err != nil {
			return Ranking{}, withSubject(err, c.Name)
		}
		combined := c.CombinedDistance()
		if err := metrics.NonNegative.Check("combined_distance", combined); err != nil {
			return Ranking{}, withSubject(err, c.Name)
		}
		entries = append(entries, Entry{
			Name:             c.Name,
			LengthDistance:   c.LengthDistance,
			PatternDistance:  c.PatternDistance,
			CombinedDistance: combined,
		})
	}

	if len(entries) == 0 {
		return Ranking{Entries: entries}, nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CombinedDistance < entries[j].CombinedDistance
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	r := Ranking{
		Entries: entries,
		Best:    &entries[0],
		Worst:   &entries[len(entries)-1],
	}

	similarity, err := bands.Classify(types.MetricReferenceSimilarity, r.Best.CombinedDistance)
	if err != nil {
		return Ranking{}, withSubject(err, r.Best.Name)
	}
	status, err := bands.Classify(types.MetricDistanceStatus, r.Best.CombinedDistance)
	if err != nil {
		return Ranking{}, withSubject(err, r.Best.Name)
	}
	r.Similarity = similarity
	r.Status = status

	return r, nil
}

func withSubject(err error, subject string) error {
	var invalid *metrics.InvalidMetricError
	if errors.As(err, &invalid) {
		invalid.Subject = subject
	}
	return err
}
