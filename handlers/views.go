// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quandr/cliparse"
	"github.com/danielhkuo/quandr/db"
	"github.com/danielhkuo/quandr/engine"
	"github.com/danielhkuo/quandr/lifecycle"
	"github.com/danielhkuo/quandr/middleware"
	"github.com/danielhkuo/quandr/models"
)

type ViewHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	eng *engine.Engine
}

func NewViewHandler(dbh *sql.DB, cfg cliparse.Config) *ViewHandler {
	return &ViewHandler{db: dbh, cfg: cfg, eng: engine.New(dbh)}
}

// GetQuestion handles GET /questions/{slug}
// Returns the question, the viewer's capabilities, and - only when the
// visibility gate allows - the aggregate results. A voter who has cast a
// ballot gets an early preview; everyone else waits for voting to end.
func (h *ViewHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	q, err := db.GetQuestionBySlug(h.db, shareSlug)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	voterToken := r.Header.Get("X-Voter-Token")
	viewer, err := h.eng.ViewerFor(q, voterToken, false)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	view, err := h.eng.ViewFor(q, viewer)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	var myVote *models.MyVoteResponse
	if viewer.HasVoted {
		if v, err := db.GetVote(h.db, q.ID, voterToken); err == nil {
			myVote = &models.MyVoteResponse{
				VoteID:      v.ID,
				OptionIndex: v.OptionIndex,
				Reason:      v.Reason,
				CastAt:      v.CreatedAt,
			}
		}
	}

	middleware.JSONResponse(w, http.StatusOK, viewResponse(view, myVote))
}

// viewResponse shapes an engine view for JSON. The humanized window text
// is presentation sugar; clients that want exact times use closes_at.
func viewResponse(view *engine.View, myVote *models.MyVoteResponse) map[string]interface{} {
	resp := map[string]interface{}{
		"question":     view.Question,
		"phase":        view.Phase,
		"vote_count":   view.VoteCount,
		"capabilities": view.Capabilities,
	}

	if closesAt := lifecycle.ClosesAt(view.Question); closesAt != nil {
		resp["closes_at"] = closesAt
		if view.Phase == models.PhaseOpen {
			resp["closes_in"] = humanize.Time(*closesAt)
		}
	}
	if view.Phase == models.PhaseResolved && view.Question.Resolution != nil {
		resp["resolved"] = humanize.Time(view.Question.Resolution.CreatedAt)
	}
	if view.Results != nil {
		resp["results"] = view.Results
	}
	if myVote != nil {
		resp["my_vote"] = myVote
	}
	return resp
}
