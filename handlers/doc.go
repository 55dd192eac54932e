// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quandr API.

# Handler Types

Each handler is a struct with database, config, and engine dependencies:

  - QuestionHandler: question creation and the author's admin view
  - ViewHandler: the public question view with gated results
  - VotingHandler: name claims, vote casting, reason edits
  - ResolutionHandler: the author's final answer
  - DiscussionHandler: toggle and gated comment access

Handlers stay thin: they authenticate, parse, and serialize. Phase rules,
visibility, and tallying live in the engine and its pure helper packages,
so every endpoint enforces the same contract.

# Question Lifecycle

Questions derive their phase; nothing stores it:

	open -> awaiting_resolution -> resolved

	POST /questions                    -> CreateQuestion (returns author_key, share_slug)
	GET  /questions/{id}/admin         -> GetQuestionAdmin
	POST /questions/{id}/resolve       -> Resolve (after the window ends; idempotent)
	POST /questions/{id}/discussion/*  -> Open/CloseDiscussion

Author operations require the X-Author-Key header.

# Voting Flow

Wayfinders interact via the share slug:

	POST /questions/{slug}/claim-name -> ClaimName (returns voter_token)
	POST /questions/{slug}/votes      -> CastVote (one per voter, with optional reason)
	PUT  /questions/{slug}/reason     -> UpdateReason (while open)
	GET  /questions/{slug}/my-vote    -> GetMyVote
	GET  /questions/{slug}            -> GetQuestion (capabilities + gated results)

Voter operations require the X-Voter-Token header. Aggregate results stay
hidden from a viewer until they have voted or voting has ended.

# Discussion

	GET  /questions/{slug}/comments -> ListComments (public once enabled)
	POST /questions/{slug}/comments -> PostComment (voters only)
*/
package handlers
