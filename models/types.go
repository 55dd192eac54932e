// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Phase is the derived lifecycle state of a question. It is never stored;
// lifecycle.Evaluate computes it from the question's configuration, the
// clock, and the current vote count.
type Phase string

const (
	PhaseOpen               Phase = "open"
	PhaseAwaitingResolution Phase = "awaiting_resolution"
	PhaseResolved           Phase = "resolved"
)

// Stored status marker on the question row. Resolution presence is the
// source of truth; the status column is secondary metadata kept in sync
// best-effort so plain SQL queries can filter on it.
const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// Option bounds for a question.
const (
	MinOptions = 2
	MaxOptions = 4
)

// Request types

type CreateQuestionRequest struct {
	Title      string                `json:"title"`
	Detail     string                `json:"detail"`
	AuthorName string                `json:"author_name"`
	Options    []CreateOptionRequest `json:"options"`
	// Either, both, or neither may be set. Nil means "not configured".
	DurationHours *int `json:"duration_hours,omitempty"`
	MaxVotes      *int `json:"max_votes,omitempty"`
}

type CreateOptionRequest struct {
	Label    string `json:"label"`
	ImageRef string `json:"image_ref,omitempty"`
}

type ClaimNameRequest struct {
	Name string `json:"name"`
}

type CastVoteRequest struct {
	OptionIndex int    `json:"option_index"`
	Reason      string `json:"reason,omitempty"`
}

type UpdateReasonRequest struct {
	Reason string `json:"reason"`
}

type ResolveRequest struct {
	OptionIndex int    `json:"option_index"`
	Note        string `json:"note,omitempty"`
}

type PostCommentRequest struct {
	Body string `json:"body"`
}

// Response types

type CreateQuestionResponse struct {
	QuestionID string `json:"question_id"`
	AuthorKey  string `json:"author_key"`
	ShareSlug  string `json:"share_slug"`
	ShareURL   string `json:"share_url"`
}

type ClaimNameResponse struct {
	VoterToken string `json:"voter_token"`
}

type CastVoteResponse struct {
	VoteID      string `json:"vote_id"`
	Message     string `json:"message"`
	ChosenIndex int    `json:"chosen_index"`
}

type MyVoteResponse struct {
	VoteID      string    `json:"vote_id"`
	OptionIndex int       `json:"option_index"`
	Reason      string    `json:"reason,omitempty"`
	CastAt      time.Time `json:"cast_at"`
}

type ResolveResponse struct {
	Resolution Resolution `json:"resolution"`
	// True when the resolution already existed and was returned as-is.
	AlreadyResolved bool `json:"already_resolved"`
}

type DiscussionToggleResponse struct {
	DiscussionEnabled bool `json:"discussion_enabled"`
}

type PostCommentResponse struct {
	CommentID string `json:"comment_id"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Question struct {
	ID                string      `json:"id"`
	AuthorID          string      `json:"author_id"`
	Title             string      `json:"title"`
	Detail            string      `json:"detail,omitempty"`
	Options           []Option    `json:"options"`
	ShareSlug         string      `json:"share_slug"`
	DurationHours     *int        `json:"duration_hours,omitempty"`
	MaxVotes          *int        `json:"max_votes,omitempty"`
	DiscussionEnabled bool        `json:"discussion_enabled"`
	Status            string      `json:"status"`
	Resolution        *Resolution `json:"resolution,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}

// HasResolution reports whether the author has locked in a final answer.
func (q *Question) HasResolution() bool {
	return q.Resolution != nil
}

// ValidOptionIndex reports whether idx refers to one of the question's options.
func (q *Question) ValidOptionIndex(idx int) bool {
	return idx >= 0 && idx < len(q.Options)
}

type Option struct {
	QuestionID string `json:"question_id"`
	Index      int    `json:"index"`
	Label      string `json:"label"`
	ImageRef   string `json:"image_ref,omitempty"`
}

type Vote struct {
	ID          string    `json:"id"`
	QuestionID  string    `json:"question_id"`
	VoterToken  string    `json:"-"` // Never expose in JSON
	OptionIndex int       `json:"option_index"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Resolution struct {
	QuestionID  string    `json:"question_id"`
	ResolverID  string    `json:"resolver_id"`
	OptionIndex int       `json:"option_index"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Comment struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
