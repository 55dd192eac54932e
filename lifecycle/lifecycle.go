// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"time"

	"github.com/danielhkuo/quandr/models"
)

// Evaluate computes the current phase of a question. It is a pure function
// of the question's configuration, the vote count, and now; it never fails.
//
// Resolution presence always wins: a resolved question stays resolved no
// matter what the clock or the vote count says. Without a resolution, the
// question is awaiting_resolution once either configured limit is reached,
// and open otherwise. A question with neither a duration nor a vote cap
// never auto-expires.
func Evaluate(q *models.Question, voteCount int, now time.Time) models.Phase {
	if q.HasResolution() {
		return models.PhaseResolved
	}
	if Expired(q, voteCount, now) {
		return models.PhaseAwaitingResolution
	}
	return models.PhaseOpen
}

// Expired reports whether the voting window has ended, by duration or by
// vote cap. Non-positive configured values are treated as "not configured"
// rather than an error, so a garbled row degrades to never-expires.
func Expired(q *models.Question, voteCount int, now time.Time) bool {
	if q.DurationHours != nil && *q.DurationHours > 0 {
		if !now.Before(closesAt(q)) {
			return true
		}
	}
	if q.MaxVotes != nil && *q.MaxVotes > 0 {
		if voteCount >= *q.MaxVotes {
			return true
		}
	}
	return false
}

// ClosesAt returns the wall-clock end of the voting window, or nil when no
// duration is configured. A vote cap can still end the window earlier.
func ClosesAt(q *models.Question) *time.Time {
	if q.DurationHours == nil || *q.DurationHours <= 0 {
		return nil
	}
	t := closesAt(q)
	return &t
}

func closesAt(q *models.Question) time.Time {
	return q.CreatedAt.Add(time.Duration(*q.DurationHours) * time.Hour)
}

// CanResolve reports whether the author may create a resolution in the
// given phase. Resolution requires natural expiry first; a question that
// is already resolved reads back the existing record instead.
func CanResolve(phase models.Phase) bool {
	return phase == models.PhaseAwaitingResolution
}
