// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quandr/models"
)

// CreateComment appends a discussion comment. Gating (phase, discussion
// flag, voter-only posting) happens in the engine before this is called.
func CreateComment(dbh *sql.DB, c *models.Comment, voterToken string) error {
	_, err := dbh.Exec(`
		INSERT INTO comment (id, question_id, voter_token, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.QuestionID, voterToken, c.Body, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// ListComments returns a question's discussion thread, newest first, with
// each commenter's claimed display name.
func ListComments(dbh *sql.DB, questionID string) ([]models.Comment, error) {
	rows, err := dbh.Query(`
		SELECT c.id, c.question_id, COALESCE(p.name, ''), c.body, c.created_at
		FROM comment c
		LEFT JOIN participant p
		  ON p.question_id = c.question_id AND p.voter_token = c.voter_token
		WHERE c.question_id = $1
		ORDER BY c.created_at DESC
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	return comments, nil
}
