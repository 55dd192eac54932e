// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quandr API server.

Quandr is a group decision service: an author (the "Curioso") poses a
question with 2-4 options, other people ("Wayfinders") each cast one vote
with an optional short reason during a bounded window, the author locks in
a final answer, and an optional gated discussion opens afterwards.

# Starting the Server

The server reads configuration from environment variables, an optional
.env file, or CLI flags:

	DATABASE_URL=quandr.db go run .

Or with flags:

	go run . -p 3321 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string (file path for sqlite)
  - AUTHOR_KEY_SALT (--author-salt): secret for author key HMAC
  - QUESTION_SLUG_SALT (--slug-salt): secret for share slug generation

Optional settings:

  - PORT (-p): server port (default: 3321)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - BASE_URL (--base-url): public base for share links

# Architecture

The core rules live in small pure packages that every surface shares:

  - lifecycle: derives a question's phase (open / awaiting_resolution /
    resolved) from its configuration; resolution presence always wins
  - tally: reduces votes into counts, percentages, reasons, and a winner
  - visibility: computes what one viewer may see and do
  - engine: the single read/write coordinator on top of those rules
  - db: portable SQL storage boundary (postgres and sqlite)
  - handlers, router, middleware: the HTTP surface
  - auth: HMAC author keys, voter tokens, share slugs
  - models: domain and API types, error kinds
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
