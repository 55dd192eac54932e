// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quandr/models"
)

// CreateQuestion inserts a question and its options in one transaction.
// The caller supplies a fully populated question (ID, slug, options with
// contiguous indices); validation happens before this point.
func CreateQuestion(dbh *sql.DB, q *models.Question) error {
	tx, err := dbh.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO question (id, author_id, title, detail, share_slug, duration_hours, max_votes, discussion_enabled, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, q.ID, q.AuthorID, q.Title, q.Detail, q.ShareSlug, q.DurationHours, q.MaxVotes,
		boolToInt(q.DiscussionEnabled), q.Status, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}

	for _, opt := range q.Options {
		_, err = tx.Exec(`
			INSERT INTO option (question_id, idx, label, image_ref)
			VALUES ($1, $2, $3, $4)
		`, q.ID, opt.Index, opt.Label, opt.ImageRef)
		if err != nil {
			return fmt.Errorf("failed to insert option %d: %w", opt.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit question: %w", err)
	}
	return nil
}

// GetQuestionByID loads a question with its options and resolution.
// Returns models.ErrNotFound when no such question exists.
func GetQuestionByID(dbh *sql.DB, id string) (*models.Question, error) {
	return getQuestion(dbh, "id", id)
}

// GetQuestionBySlug is GetQuestionByID keyed by the public share slug.
func GetQuestionBySlug(dbh *sql.DB, slug string) (*models.Question, error) {
	return getQuestion(dbh, "share_slug", slug)
}

func getQuestion(dbh *sql.DB, column, value string) (*models.Question, error) {
	var (
		q         models.Question
		detail    sql.NullString
		slug      sql.NullString
		duration  sql.NullInt64
		maxVotes  sql.NullInt64
		enabled   int
	)
	err := dbh.QueryRow(`
		SELECT id, author_id, title, detail, share_slug, duration_hours, max_votes, discussion_enabled, status, created_at
		FROM question
		WHERE `+column+` = $1
	`, value).Scan(&q.ID, &q.AuthorID, &q.Title, &detail, &slug, &duration, &maxVotes, &enabled, &q.Status, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query question: %w", err)
	}

	q.Detail = detail.String
	q.ShareSlug = slug.String
	q.DiscussionEnabled = enabled != 0
	if duration.Valid {
		v := int(duration.Int64)
		q.DurationHours = &v
	}
	if maxVotes.Valid {
		v := int(maxVotes.Int64)
		q.MaxVotes = &v
	}

	rows, err := dbh.Query(`
		SELECT question_id, idx, label, image_ref
		FROM option
		WHERE question_id = $1
		ORDER BY idx
	`, q.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			opt      models.Option
			imageRef sql.NullString
		)
		if err := rows.Scan(&opt.QuestionID, &opt.Index, &opt.Label, &imageRef); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		opt.ImageRef = imageRef.String
		q.Options = append(q.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	res, err := GetResolution(dbh, q.ID)
	if err != nil {
		return nil, err
	}
	q.Resolution = res

	return &q, nil
}

// GetResolution returns the question's resolution, or nil when the author
// has not answered yet.
func GetResolution(dbh *sql.DB, questionID string) (*models.Resolution, error) {
	var (
		res  models.Resolution
		note sql.NullString
	)
	err := dbh.QueryRow(`
		SELECT question_id, resolver_id, option_index, note, created_at
		FROM resolution
		WHERE question_id = $1
	`, questionID).Scan(&res.QuestionID, &res.ResolverID, &res.OptionIndex, &note, &res.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query resolution: %w", err)
	}
	res.Note = note.String
	return &res, nil
}

// CreateResolution inserts the set-once resolution record. A second insert
// for the same question returns ErrConflict; callers re-read the existing
// record rather than treating that as a failure.
func CreateResolution(dbh *sql.DB, res *models.Resolution) error {
	_, err := dbh.Exec(`
		INSERT INTO resolution (question_id, resolver_id, option_index, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, res.QuestionID, res.ResolverID, res.OptionIndex, res.Note, res.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to insert resolution: %w", err)
	}
	return nil
}

// MarkResolved flips the question's externally visible status marker.
// Idempotent; the resolution row remains the source of truth, so a lost
// update here is repaired the next time anyone evaluates the phase.
func MarkResolved(dbh *sql.DB, questionID string) error {
	_, err := dbh.Exec(`
		UPDATE question SET status = $1 WHERE id = $2
	`, models.StatusResolved, questionID)
	if err != nil {
		return fmt.Errorf("failed to update question status: %w", err)
	}
	return nil
}

// SetDiscussionEnabled persists the author's discussion toggle.
func SetDiscussionEnabled(dbh *sql.DB, questionID string, enabled bool) error {
	_, err := dbh.Exec(`
		UPDATE question SET discussion_enabled = $1 WHERE id = $2
	`, boolToInt(enabled), questionID)
	if err != nil {
		return fmt.Errorf("failed to update discussion flag: %w", err)
	}
	return nil
}

// boolToInt keeps the column portable; pq maps BOOLEAN scans differently
// than sqlite, an INTEGER 0/1 reads back the same on both.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
