package report

import (
	"sort"

	"github.com/dotcommander/pwgrade/internal/ranking"
	"github.com/dotcommander/pwgrade/internal/types"
	"gonum.org/v1/gonum/stat"
)

// ScoredReport is a report reduced to its composite result for sorting.
type ScoredReport struct {
	Name   string      `json:"name"`
	Source string      `json:"source,omitempty"`
	Total  float64     `json:"total"`
	Grade  types.Grade `json:"grade"`
}

// CandidateHighlight is the best ranked candidate across many reports.
type CandidateHighlight struct {
	Report string        `json:"report"`
	Entry  ranking.Entry `json:"entry"`
}

// Summary aggregates a batch of reports.
type Summary struct {
	Reports       int                 `json:"reports"`
	Scored        int                 `json:"scored"`
	Ranked        int                 `json:"ranked"`
	GradeCounts   map[types.Grade]int `json:"grade_counts"`
	MeanTotal     float64             `json:"mean_total"`
	StdDevTotal   float64             `json:"stddev_total"`
	Lowest        []ScoredReport      `json:"lowest,omitempty"`
	BestCandidate *CandidateHighlight `json:"best_candidate,omitempty"`
}

// Summarize aggregates composite grades and rankings over reports.
// Nil reports are skipped. Lowest lists every scored report, worst first,
// in input order for equal totals.
func Summarize(reports []*Report) Summary {
	s := Summary{GradeCounts: make(map[types.Grade]int)}

	var totals []float64
	for _, rep := range reports {
		if rep == nil {
			continue
		}
		s.Reports++

		if rep.Composite != nil {
			s.Scored++
			score := rep.Composite.Score
			s.GradeCounts[score.Grade]++
			totals = append(totals, score.Total)
			s.Lowest = append(s.Lowest, ScoredReport{
				Name:   displayName(rep),
				Source: rep.Source,
				Total:  score.Total,
				Grade:  score.Grade,
			})
		}

		if rep.Ranking != nil && rep.Ranking.Best != nil {
			s.Ranked++
			best := *rep.Ranking.Best
			if s.BestCandidate == nil || best.CombinedDistance < s.BestCandidate.Entry.CombinedDistance {
				s.BestCandidate = &CandidateHighlight{Report: displayName(rep), Entry: best}
			}
		}
	}

	switch len(totals) {
	case 0:
	case 1:
		s.MeanTotal = totals[0]
	default:
		s.MeanTotal, s.StdDevTotal = stat.MeanStdDev(totals, nil)
	}

	sort.SliceStable(s.Lowest, func(i, j int) bool {
		return s.Lowest[i].Total < s.Lowest[j].Total
	})

	return s
}

func displayName(rep *Report) string {
	if rep.Name != "" {
		return rep.Name
	}
	if rep.Source != "" {
		return rep.Source
	}
	return rep.ID
}
