// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quandr/auth"
	"github.com/danielhkuo/quandr/cliparse"
	"github.com/danielhkuo/quandr/db"
	"github.com/danielhkuo/quandr/engine"
	"github.com/danielhkuo/quandr/middleware"
	"github.com/danielhkuo/quandr/models"
)

type ResolutionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	eng *engine.Engine
}

func NewResolutionHandler(dbh *sql.DB, cfg cliparse.Config) *ResolutionHandler {
	return &ResolutionHandler{db: dbh, cfg: cfg, eng: engine.New(dbh)}
}

// Resolve handles POST /questions/{id}/resolve
// The author locks in the final answer once the voting window has ended.
// Re-submitting returns the existing resolution unchanged; two rapid
// clicks cannot produce two records.
func (h *ResolutionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	authorKey := r.Header.Get("X-Author-Key")
	if err := auth.ValidateAuthorKey(questionID, authorKey, h.cfg.AuthorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid author key")
		return
	}

	var req models.ResolveRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	q, err := db.GetQuestionByID(h.db, questionID)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	res, already, err := h.eng.Resolve(q, q.AuthorID, req.OptionIndex, req.Note)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	status := http.StatusCreated
	if already {
		status = http.StatusOK
	} else {
		slog.Info("question resolved", "question_id", q.ID, "option_index", res.OptionIndex)
	}

	middleware.JSONResponse(w, status, models.ResolveResponse{
		Resolution:      *res,
		AlreadyResolved: already,
	})
}
