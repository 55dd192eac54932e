// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine coordinates every state change in a question's life:
casting votes, editing reasons, the author's resolution, the discussion
toggle, and gated comment access. Handlers stay thin; the rules live here
once instead of being re-derived per endpoint.

# Write contracts

  - CastVote: open phase only; a duplicate cast re-reads and returns the
    existing ballot with models.ErrAlreadyVoted rather than failing
  - UpdateReason: open phase only, own ballot only; blank removes
  - Resolve: author only, after natural expiry; idempotent once resolved,
    including under concurrent double-submission, where the loser of the
    insert race reads back the winner's record
  - SetDiscussion: author only, after voting ends; a closed thread keeps
    its comments and stays readable

Resolve writes the resolution row first and only then flips the question's
status marker. The marker is best-effort: phase evaluation derives from
resolution presence, so a missed update repairs itself on the next read.

# Read path

ViewFor composes phase evaluation, the visibility gate, and the tally into
a single View per (question, viewer) pair. Identity always arrives as an
explicit parameter.
*/
package engine
