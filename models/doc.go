// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API,
plus the error kinds shared by every layer.

# Domain Types

  - Question: the decision prompt with 2-4 ordered options, timing
    configuration (duration hours and/or vote cap), the author-controlled
    discussion flag, and the eventual Resolution
  - Option: one choice, addressed by a stable index 0..3
  - Vote: a single choice by a single voter, with an optional reason
  - Resolution: the author's final, immutable answer
  - Comment: one entry in the post-close discussion thread
  - Phase: derived lifecycle state (open / awaiting_resolution / resolved)

# Error Kinds

Sentinel errors compared with errors.Is:

	ErrNotFound, ErrAlreadyVoted, ErrNotAuthor,
	ErrInvalidPhase, ErrInvalidOption, ErrTooEarly, ErrForbidden

All are expected user-facing conditions. Anything else bubbling out of the
db package is an opaque storage failure the handlers report as a 500.

# Invariants

  - A question has 2-4 options with contiguous indices starting at 0
  - At most one Vote per (question, voter); the store enforces this
  - A blank or whitespace-only reason is equivalent to no reason
  - A Resolution exists at most once per question and never changes
*/
package models
