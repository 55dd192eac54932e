// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is restricted to the dialect both PostgreSQL and SQLite accept;
// all timestamps are written from Go, never by column defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Questions
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    author_id TEXT NOT NULL,
    title TEXT NOT NULL,
    detail TEXT,
    share_slug TEXT UNIQUE,
    duration_hours INTEGER,
    max_votes INTEGER,
    discussion_enabled INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'resolved')),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_share_slug ON question(share_slug);
CREATE INDEX IF NOT EXISTS idx_question_status ON question(status);

-- Options (2-4 per question, contiguous indices starting at 0)
CREATE TABLE IF NOT EXISTS option (
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    idx INTEGER NOT NULL CHECK (idx >= 0 AND idx <= 3),
    label TEXT NOT NULL,
    image_ref TEXT,
    PRIMARY KEY (question_id, idx)
);

-- Participants (claimed display names; the voter token is the identity)
CREATE TABLE IF NOT EXISTS participant (
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    voter_token TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (question_id, voter_token),
    UNIQUE (question_id, name)
);

CREATE INDEX IF NOT EXISTS idx_participant_question_id ON participant(question_id);

-- Votes (the store, not the application, enforces one per voter)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    voter_token TEXT NOT NULL,
    option_index INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (question_id, voter_token)
);

CREATE INDEX IF NOT EXISTS idx_vote_question_id ON vote(question_id);

-- Reasons (at most one per vote, upsertable while voting is open)
CREATE TABLE IF NOT EXISTS reason (
    vote_id TEXT PRIMARY KEY REFERENCES vote(id) ON DELETE CASCADE,
    body TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Resolutions (set once; presence of this row is what makes a question resolved)
CREATE TABLE IF NOT EXISTS resolution (
    question_id TEXT PRIMARY KEY REFERENCES question(id) ON DELETE CASCADE,
    resolver_id TEXT NOT NULL,
    option_index INTEGER NOT NULL,
    note TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Discussion comments
CREATE TABLE IF NOT EXISTS comment (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    voter_token TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comment_question_id ON comment(question_id);
`
