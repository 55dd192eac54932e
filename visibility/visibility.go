// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package visibility

import "github.com/danielhkuo/quandr/models"

// Viewer describes who is looking at a question, relative to that question.
// Identity is always passed in explicitly; nothing here reads ambient
// session state.
type Viewer struct {
	// Authenticated is false for anonymous readers.
	Authenticated bool
	// IsAuthor is true when the viewer presented a valid author key.
	IsAuthor bool
	// HasVoted is true when the viewer has a ballot on this question.
	HasVoted bool
}

// Capabilities is the full set of yes/no answers the presentation layer
// needs for one (viewer, question) pair.
type Capabilities struct {
	CanCastVote            bool `json:"can_cast_vote"`
	CanEditOwnReason       bool `json:"can_edit_own_reason"`
	CanSeeAggregateResults bool `json:"can_see_aggregate_results"`
	CanViewDiscussion      bool `json:"can_view_discussion"`
	CanPostDiscussion      bool `json:"can_post_discussion"`
	CanToggleDiscussion    bool `json:"can_toggle_discussion"`
}

// For computes the viewer's capabilities from the phase, the viewer's role,
// and the question's discussion flag. Pure; one rule set for every surface.
//
// Aggregate results are hidden while voting is live to avoid herding, with
// one exception: a viewer who has already cast a ballot unlocks their own
// early preview. Discussion reads are public once voting has ended and the
// author has enabled the thread; posting additionally requires having voted.
func For(phase models.Phase, viewer Viewer, discussionEnabled bool) Capabilities {
	open := phase == models.PhaseOpen
	canView := !open && discussionEnabled

	return Capabilities{
		CanCastVote:            open && viewer.Authenticated && !viewer.HasVoted,
		CanEditOwnReason:       open && viewer.HasVoted,
		CanSeeAggregateResults: !open || viewer.HasVoted,
		CanViewDiscussion:      canView,
		CanPostDiscussion:      canView && viewer.Authenticated && viewer.HasVoted,
		CanToggleDiscussion:    viewer.IsAuthor && !open,
	}
}
