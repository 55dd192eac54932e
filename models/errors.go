// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Expected, user-facing failure kinds. Handlers compare with errors.Is and
// translate each into a specific message; none of these indicate a bug or
// a broken store.
var (
	// ErrNotFound: the question (or the caller's vote) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyVoted: the voter already has a ballot on this question.
	// Recoverable; callers re-read and return the existing state.
	ErrAlreadyVoted = errors.New("already voted")

	// ErrNotAuthor: the requester is not the question's author.
	ErrNotAuthor = errors.New("requester is not the question author")

	// ErrInvalidPhase: the action is outside its allowed lifecycle window,
	// e.g. resolving or toggling discussion while voting is still open.
	ErrInvalidPhase = errors.New("action not allowed in current phase")

	// ErrInvalidOption: the chosen option index is outside the question's range.
	ErrInvalidOption = errors.New("option index out of range")

	// ErrTooEarly: discussion toggled before voting has ended.
	ErrTooEarly = errors.New("voting has not ended yet")

	// ErrForbidden: the viewer's capabilities do not allow the action
	// (e.g. a non-voter posting to the discussion).
	ErrForbidden = errors.New("not allowed for this viewer")
)
