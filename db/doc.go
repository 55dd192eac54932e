// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the storage boundary: schema creation plus the narrow query
functions the engine and handlers call. Everything row-shaped is
normalized into the strict models types here; nothing above this package
ever branches on which column happened to be populated.

The SQL is portable across the two supported backends, PostgreSQL
(lib/pq, production) and SQLite (modernc.org/sqlite, dev and tests):
lowest-common-denominator DDL, $1 placeholders, timestamps always written
from Go, booleans stored as INTEGER 0/1.

Two constraints live in the schema rather than in application code:

  - UNIQUE (question_id, voter_token) on vote enforces one ballot per
    voter; CreateVote maps a violation to models.ErrAlreadyVoted
  - resolution keyed by question_id allows one resolution per question;
    CreateResolution maps a violation to ErrConflict so the caller can
    re-read the existing record
*/
package db
