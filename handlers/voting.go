// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/quandr/auth"
	"github.com/danielhkuo/quandr/cliparse"
	"github.com/danielhkuo/quandr/db"
	"github.com/danielhkuo/quandr/engine"
	"github.com/danielhkuo/quandr/middleware"
	"github.com/danielhkuo/quandr/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	eng *engine.Engine
}

func NewVotingHandler(dbh *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: dbh, cfg: cfg, eng: engine.New(dbh)}
}

// ClaimName handles POST /questions/{slug}/claim-name
// A Wayfinder claims a display name while voting is open and receives the
// voter token that identifies them from then on.
func (h *VotingHandler) ClaimName(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var req models.ClaimNameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if len(name) < 2 || len(name) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be 2-50 characters")
		return
	}

	q, err := db.GetQuestionBySlug(h.db, shareSlug)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	phase, _, err := h.eng.Phase(q)
	if err != nil {
		middleware.KindError(w, err)
		return
	}
	if phase != models.PhaseOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Question is no longer open for voting")
		return
	}

	voterToken, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim name")
		return
	}

	err = db.ClaimName(h.db, q.ID, name, voterToken, time.Now())
	if errors.Is(err, db.ErrNameTaken) {
		middleware.ErrorResponse(w, http.StatusConflict, "Name already taken")
		return
	}
	if err != nil {
		slog.Error("failed to claim name", "error", err, "question_id", q.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim name")
		return
	}

	slog.Info("name claimed", "question_id", q.ID, "name", name)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimNameResponse{
		VoterToken: voterToken,
	})
}

// CastVote handles POST /questions/{slug}/votes
// One ballot per voter; the store's uniqueness constraint is authoritative
// and a duplicate cast comes back as a 409 carrying the existing ballot.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	q, voterToken, ok := h.requireParticipant(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	v, err := h.eng.CastVote(q, voterToken, req.OptionIndex, req.Reason)
	if errors.Is(err, models.ErrAlreadyVoted) {
		middleware.JSONResponse(w, http.StatusConflict, models.CastVoteResponse{
			VoteID:      v.ID,
			Message:     "You have already voted on this question",
			ChosenIndex: v.OptionIndex,
		})
		return
	}
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	slog.Info("vote cast", "question_id", q.ID, "vote_id", v.ID, "option_index", v.OptionIndex)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:      v.ID,
		Message:     "Vote recorded",
		ChosenIndex: v.OptionIndex,
	})
}

// UpdateReason handles PUT /questions/{slug}/reason
// A voter may edit (or blank out) their reason while voting is open.
func (h *VotingHandler) UpdateReason(w http.ResponseWriter, r *http.Request) {
	q, voterToken, ok := h.requireParticipant(w, r)
	if !ok {
		return
	}

	var req models.UpdateReasonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	v, err := h.eng.UpdateReason(q, voterToken, req.Reason)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	slog.Info("reason updated", "question_id", q.ID, "vote_id", v.ID)

	middleware.JSONResponse(w, http.StatusOK, models.MyVoteResponse{
		VoteID:      v.ID,
		OptionIndex: v.OptionIndex,
		Reason:      v.Reason,
		CastAt:      v.CreatedAt,
	})
}

// GetMyVote handles GET /questions/{slug}/my-vote
func (h *VotingHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	q, voterToken, ok := h.requireParticipant(w, r)
	if !ok {
		return
	}

	v, err := db.GetVote(h.db, q.ID, voterToken)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "You have not voted on this question")
		return
	}
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVoteResponse{
		VoteID:      v.ID,
		OptionIndex: v.OptionIndex,
		Reason:      v.Reason,
		CastAt:      v.CreatedAt,
	})
}

// requireParticipant loads the question and checks the caller's voter
// token was issued for it. Writes the error response itself when not.
func (h *VotingHandler) requireParticipant(w http.ResponseWriter, r *http.Request) (*models.Question, string, bool) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return nil, "", false
	}

	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return nil, "", false
	}

	q, err := db.GetQuestionBySlug(h.db, shareSlug)
	if err != nil {
		middleware.KindError(w, err)
		return nil, "", false
	}

	ok, err := db.IsParticipant(h.db, q.ID, voterToken)
	if err != nil {
		middleware.KindError(w, err)
		return nil, "", false
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token for this question")
		return nil, "", false
	}

	return q, voterToken, true
}
