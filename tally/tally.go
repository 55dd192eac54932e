// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"
	"sort"
	"strings"

	"github.com/danielhkuo/quandr/models"
)

// Result is the aggregate outcome for a question's votes.
type Result struct {
	// TotalVotes counts the ballots that were actually tallied. Rows with
	// an out-of-range option index are skipped, so this can be lower than
	// the raw row count.
	TotalVotes int `json:"total_votes"`

	// Counts and Percents are dense, one entry per option index.
	Counts   []int `json:"counts"`
	Percents []int `json:"percents"`

	// WinnerIndex is the plurality winner: the lowest option index holding
	// the maximum count. With zero tallied votes it is 0 and TotalVotes
	// tells callers nothing actually won.
	WinnerIndex int `json:"winner_index"`

	// ResolvedIndex is the author's final answer when one exists. Display
	// surfaces prefer it over WinnerIndex once set.
	ResolvedIndex *int `json:"resolved_index,omitempty"`

	// ReasonsByOption buckets cleaned, non-blank reason texts under the
	// option their vote chose, newest vote first.
	ReasonsByOption [][]string `json:"reasons_by_option"`
}

// DisplayWinner returns the option index a reader should see highlighted:
// the resolved option when the author has answered, the plurality winner
// otherwise.
func (r *Result) DisplayWinner() int {
	if r.ResolvedIndex != nil {
		return *r.ResolvedIndex
	}
	return r.WinnerIndex
}

// Compute reduces a question's votes into per-option counts, percentages,
// a winner, and reason buckets. It is a pure function of its inputs: it
// never mutates them and recomputing over the same snapshot yields an
// identical result.
func Compute(q *models.Question, votes []models.Vote) Result {
	n := len(q.Options)
	res := Result{
		Counts:          make([]int, n),
		Percents:        make([]int, n),
		ReasonsByOption: make([][]string, n),
	}
	for i := range res.ReasonsByOption {
		res.ReasonsByOption[i] = []string{}
	}

	// Newest first, without reordering the caller's slice.
	ordered := make([]models.Vote, len(votes))
	copy(ordered, votes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	for _, v := range ordered {
		if v.OptionIndex < 0 || v.OptionIndex >= n {
			// Malformed row; skip rather than crash.
			continue
		}
		res.Counts[v.OptionIndex]++
		res.TotalVotes++
		if reason := CleanReason(v.Reason); reason != "" {
			res.ReasonsByOption[v.OptionIndex] = append(res.ReasonsByOption[v.OptionIndex], reason)
		}
	}

	for i, c := range res.Counts {
		res.Percents[i] = percent(c, res.TotalVotes)
	}

	// Scan in index order; only a strictly greater count displaces the
	// leader, so the lowest index wins every tie.
	for i := 1; i < n; i++ {
		if res.Counts[i] > res.Counts[res.WinnerIndex] {
			res.WinnerIndex = i
		}
	}

	if q.Resolution != nil && q.ValidOptionIndex(q.Resolution.OptionIndex) {
		idx := q.Resolution.OptionIndex
		res.ResolvedIndex = &idx
	}

	return res
}

// CleanReason normalizes a free-text reason. Whitespace-only input is
// equivalent to no reason at all and comes back as "".
func CleanReason(s string) string {
	return strings.TrimSpace(s)
}

func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
