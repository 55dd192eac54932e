// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quandr/db"
	"github.com/danielhkuo/quandr/lifecycle"
	"github.com/danielhkuo/quandr/models"
	"github.com/danielhkuo/quandr/tally"
	"github.com/danielhkuo/quandr/visibility"
)

// Engine is the single write path for votes, reasons, resolutions, and the
// discussion toggle. Every mutation validates against the current phase
// before touching the store, so all surfaces share one contract.
type Engine struct {
	db *sql.DB

	// now is swappable in tests.
	now func() time.Time
}

func New(dbh *sql.DB) *Engine {
	return &Engine{db: dbh, now: time.Now}
}

// Phase evaluates the question's current phase, fetching the vote count
// the evaluator needs.
func (e *Engine) Phase(q *models.Question) (models.Phase, int, error) {
	count, err := db.CountVotes(e.db, q.ID)
	if err != nil {
		return "", 0, err
	}
	return lifecycle.Evaluate(q, count, e.now()), count, nil
}

// ViewerFor builds the visibility input for a voter token. An empty or
// unknown token is an anonymous viewer.
func (e *Engine) ViewerFor(q *models.Question, voterToken string, isAuthor bool) (visibility.Viewer, error) {
	viewer := visibility.Viewer{IsAuthor: isAuthor}
	if voterToken == "" {
		return viewer, nil
	}

	ok, err := db.IsParticipant(e.db, q.ID, voterToken)
	if err != nil {
		return viewer, err
	}
	viewer.Authenticated = ok
	if !ok {
		return viewer, nil
	}

	_, err = db.GetVote(e.db, q.ID, voterToken)
	if err == nil {
		viewer.HasVoted = true
	} else if !errors.Is(err, models.ErrNotFound) {
		return viewer, err
	}
	return viewer, nil
}

// CastVote records a ballot with an optional reason. The store's
// uniqueness constraint decides races; when the voter already has a
// ballot, the existing one is re-read and returned alongside
// models.ErrAlreadyVoted so callers can render current state.
func (e *Engine) CastVote(q *models.Question, voterToken string, optionIndex int, reason string) (*models.Vote, error) {
	phase, _, err := e.Phase(q)
	if err != nil {
		return nil, err
	}
	if phase != models.PhaseOpen {
		return nil, models.ErrInvalidPhase
	}
	if !q.ValidOptionIndex(optionIndex) {
		return nil, models.ErrInvalidOption
	}

	v := &models.Vote{
		ID:          uuid.NewString(),
		QuestionID:  q.ID,
		VoterToken:  voterToken,
		OptionIndex: optionIndex,
		CreatedAt:   e.now(),
	}
	err = db.CreateVote(e.db, v)
	if errors.Is(err, models.ErrAlreadyVoted) {
		existing, readErr := db.GetVote(e.db, q.ID, voterToken)
		if readErr != nil {
			return nil, readErr
		}
		return existing, models.ErrAlreadyVoted
	}
	if err != nil {
		return nil, err
	}

	if cleaned := tally.CleanReason(reason); cleaned != "" {
		if err := db.UpsertReason(e.db, v.ID, cleaned, v.CreatedAt); err != nil {
			// The ballot is in; a lost reason is not worth failing the cast.
			slog.Warn("failed to save vote reason", "error", err, "vote_id", v.ID)
		} else {
			v.Reason = cleaned
		}
	}
	return v, nil
}

// UpdateReason edits the voter's own reason while voting is still open.
// A blank reason removes it.
func (e *Engine) UpdateReason(q *models.Question, voterToken, reason string) (*models.Vote, error) {
	phase, _, err := e.Phase(q)
	if err != nil {
		return nil, err
	}
	if phase != models.PhaseOpen {
		return nil, models.ErrInvalidPhase
	}

	v, err := db.GetVote(e.db, q.ID, voterToken)
	if err != nil {
		return nil, err
	}

	cleaned := tally.CleanReason(reason)
	if err := db.UpsertReason(e.db, v.ID, cleaned, e.now()); err != nil {
		return nil, err
	}
	v.Reason = cleaned
	return v, nil
}

// Resolve creates the question's immutable resolution. The requester must
// be the author, the voting window must have ended, and the chosen index
// must be in range. Once resolved, further calls read back the existing
// record (reported via the second return) instead of writing again.
func (e *Engine) Resolve(q *models.Question, requesterID string, optionIndex int, note string) (*models.Resolution, bool, error) {
	if requesterID != q.AuthorID {
		return nil, false, models.ErrNotAuthor
	}

	phase, _, err := e.Phase(q)
	if err != nil {
		return nil, false, err
	}
	switch phase {
	case models.PhaseResolved:
		return q.Resolution, true, nil
	case models.PhaseOpen:
		return nil, false, models.ErrInvalidPhase
	}

	if !q.ValidOptionIndex(optionIndex) {
		return nil, false, models.ErrInvalidOption
	}

	res := &models.Resolution{
		QuestionID:  q.ID,
		ResolverID:  requesterID,
		OptionIndex: optionIndex,
		Note:        tally.CleanReason(note),
		CreatedAt:   e.now(),
	}

	// The resolution row lands first; the status marker is secondary
	// metadata that phase evaluation can live without.
	err = db.CreateResolution(e.db, res)
	if errors.Is(err, db.ErrConflict) {
		// Concurrent double-submit: the first writer won, return its record.
		existing, readErr := db.GetResolution(e.db, q.ID)
		if readErr != nil {
			return nil, false, readErr
		}
		return existing, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := db.MarkResolved(e.db, q.ID); err != nil {
		slog.Warn("failed to mark question resolved", "error", err, "question_id", q.ID)
	}
	return res, false, nil
}

// SetDiscussion flips the author's discussion toggle. Allowed only after
// voting has ended; closing never deletes existing comments, it only
// blocks new posts.
func (e *Engine) SetDiscussion(q *models.Question, requesterID string, enabled bool) error {
	if requesterID != q.AuthorID {
		return models.ErrNotAuthor
	}

	phase, _, err := e.Phase(q)
	if err != nil {
		return err
	}
	if !visibility.For(phase, visibility.Viewer{IsAuthor: true}, q.DiscussionEnabled).CanToggleDiscussion {
		return models.ErrTooEarly
	}

	return db.SetDiscussionEnabled(e.db, q.ID, enabled)
}

// Comments returns the discussion thread when the viewer may read it.
func (e *Engine) Comments(q *models.Question, viewer visibility.Viewer) ([]models.Comment, error) {
	phase, _, err := e.Phase(q)
	if err != nil {
		return nil, err
	}
	if !visibility.For(phase, viewer, q.DiscussionEnabled).CanViewDiscussion {
		return nil, models.ErrForbidden
	}
	return db.ListComments(e.db, q.ID)
}

// PostComment appends to the discussion thread. Only voters post; anyone
// the gate admits may read.
func (e *Engine) PostComment(q *models.Question, voterToken, body string) (*models.Comment, error) {
	viewer, err := e.ViewerFor(q, voterToken, false)
	if err != nil {
		return nil, err
	}

	phase, _, err := e.Phase(q)
	if err != nil {
		return nil, err
	}
	if !visibility.For(phase, viewer, q.DiscussionEnabled).CanPostDiscussion {
		return nil, models.ErrForbidden
	}

	c := &models.Comment{
		ID:         uuid.NewString(),
		QuestionID: q.ID,
		Body:       body,
		CreatedAt:  e.now(),
	}
	if err := db.CreateComment(e.db, c, voterToken); err != nil {
		return nil, err
	}
	return c, nil
}
