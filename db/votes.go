// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/quandr/models"
)

// ClaimName registers a display name on a question and stores the voter
// token that identifies the participant from then on. Returns ErrNameTaken
// when another participant already claimed the name.
func ClaimName(dbh *sql.DB, questionID, name, voterToken string, at time.Time) error {
	_, err := dbh.Exec(`
		INSERT INTO participant (question_id, name, voter_token, created_at)
		VALUES ($1, $2, $3, $4)
	`, questionID, name, voterToken, at)
	if isUniqueViolation(err) {
		return ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// IsParticipant reports whether the voter token was issued for this question.
func IsParticipant(dbh *sql.DB, questionID, voterToken string) (bool, error) {
	var exists bool
	err := dbh.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM participant
			WHERE question_id = $1 AND voter_token = $2
		)
	`, questionID, voterToken).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to verify participant: %w", err)
	}
	return exists, nil
}

// ParticipantName returns the display name the token claimed, or "" when
// the token is unknown on this question.
func ParticipantName(dbh *sql.DB, questionID, voterToken string) (string, error) {
	var name string
	err := dbh.QueryRow(`
		SELECT name FROM participant
		WHERE question_id = $1 AND voter_token = $2
	`, questionID, voterToken).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query participant: %w", err)
	}
	return name, nil
}

// CreateVote inserts a ballot. The store's uniqueness constraint is the
// only enforcement of one-vote-per-voter; a violation comes back as
// models.ErrAlreadyVoted, never as a generic failure.
func CreateVote(dbh *sql.DB, v *models.Vote) error {
	_, err := dbh.Exec(`
		INSERT INTO vote (id, question_id, voter_token, option_index, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.QuestionID, v.VoterToken, v.OptionIndex, v.CreatedAt)
	if isUniqueViolation(err) {
		return models.ErrAlreadyVoted
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// GetVote returns the voter's ballot on a question, with its reason when
// present. Returns models.ErrNotFound when the voter has not voted.
func GetVote(dbh *sql.DB, questionID, voterToken string) (*models.Vote, error) {
	var (
		v      models.Vote
		reason sql.NullString
	)
	err := dbh.QueryRow(`
		SELECT v.id, v.question_id, v.voter_token, v.option_index, v.created_at, r.body
		FROM vote v
		LEFT JOIN reason r ON r.vote_id = v.id
		WHERE v.question_id = $1 AND v.voter_token = $2
	`, questionID, voterToken).Scan(&v.ID, &v.QuestionID, &v.VoterToken, &v.OptionIndex, &v.CreatedAt, &reason)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}
	v.Reason = reason.String
	return &v, nil
}

// ListVotes returns every ballot for a question, reasons attached.
func ListVotes(dbh *sql.DB, questionID string) ([]models.Vote, error) {
	rows, err := dbh.Query(`
		SELECT v.id, v.question_id, v.voter_token, v.option_index, v.created_at, r.body
		FROM vote v
		LEFT JOIN reason r ON r.vote_id = v.id
		WHERE v.question_id = $1
		ORDER BY v.created_at
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var (
			v      models.Vote
			reason sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.QuestionID, &v.VoterToken, &v.OptionIndex, &v.CreatedAt, &reason); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.Reason = reason.String
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	return votes, nil
}

// CountVotes returns the number of ballots on a question. The lifecycle
// evaluator uses this against the vote cap.
func CountVotes(dbh *sql.DB, questionID string) (int, error) {
	var count int
	err := dbh.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE question_id = $1
	`, questionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// UpsertReason attaches or replaces the free-text reason for a vote.
// A blank body deletes the reason instead; blank and absent are the same
// thing to readers.
func UpsertReason(dbh *sql.DB, voteID, body string, at time.Time) error {
	if body == "" {
		_, err := dbh.Exec(`DELETE FROM reason WHERE vote_id = $1`, voteID)
		if err != nil {
			return fmt.Errorf("failed to delete reason: %w", err)
		}
		return nil
	}

	// Update first, insert when no row was there.
	res, err := dbh.Exec(`
		UPDATE reason SET body = $1, updated_at = $2 WHERE vote_id = $3
	`, body, at, voteID)
	if err != nil {
		return fmt.Errorf("failed to update reason: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	_, err = dbh.Exec(`
		INSERT INTO reason (vote_id, body, updated_at)
		VALUES ($1, $2, $3)
	`, voteID, body, at)
	if isUniqueViolation(err) {
		// Lost a race with another writer of the same reason row.
		_, err = dbh.Exec(`
			UPDATE reason SET body = $1, updated_at = $2 WHERE vote_id = $3
		`, body, at, voteID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert reason: %w", err)
	}
	return nil
}
