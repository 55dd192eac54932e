// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"github.com/danielhkuo/quandr/db"
	"github.com/danielhkuo/quandr/models"
	"github.com/danielhkuo/quandr/tally"
	"github.com/danielhkuo/quandr/visibility"
)

// View is everything one viewer is allowed to know about a question at
// one moment: the phase, their capabilities, and the aggregate results
// when the gate shows them.
type View struct {
	Question     *models.Question
	Phase        models.Phase
	VoteCount    int
	Capabilities visibility.Capabilities

	// Results is nil while the viewer may not see aggregates.
	Results *tally.Result
}

// ViewFor assembles the read path end to end: phase evaluation, the
// visibility gate, and (when permitted) the tally over a single vote
// snapshot. It holds no state; recomputing is always safe.
func (e *Engine) ViewFor(q *models.Question, viewer visibility.Viewer) (*View, error) {
	phase, count, err := e.Phase(q)
	if err != nil {
		return nil, err
	}

	v := &View{
		Question:     q,
		Phase:        phase,
		VoteCount:    count,
		Capabilities: visibility.For(phase, viewer, q.DiscussionEnabled),
	}

	if v.Capabilities.CanSeeAggregateResults {
		votes, err := db.ListVotes(e.db, q.ID)
		if err != nil {
			return nil, err
		}
		result := tally.Compute(q, votes)
		v.Results = &result
	}
	return v, nil
}
