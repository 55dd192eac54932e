// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quandr/auth"
	"github.com/danielhkuo/quandr/cliparse"
	"github.com/danielhkuo/quandr/db"
	"github.com/danielhkuo/quandr/engine"
	"github.com/danielhkuo/quandr/middleware"
	"github.com/danielhkuo/quandr/models"
	"github.com/danielhkuo/quandr/visibility"
)

type QuestionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	eng *engine.Engine
}

func NewQuestionHandler(dbh *sql.DB, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{db: dbh, cfg: cfg, eng: engine.New(dbh)}
}

// CreateQuestion handles POST /questions
// The question and its options are created atomically and are immutable
// afterwards, except for the discussion flag and the eventual resolution.
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if strings.TrimSpace(req.AuthorName) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author_name is required")
		return
	}
	if len(req.Options) < models.MinOptions || len(req.Options) > models.MaxOptions {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a question needs 2 to 4 options")
		return
	}
	for _, opt := range req.Options {
		if strings.TrimSpace(opt.Label) == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "every option needs a label")
			return
		}
	}
	if req.DurationHours != nil && *req.DurationHours <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "duration_hours must be positive")
		return
	}
	if req.MaxVotes != nil && *req.MaxVotes <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "max_votes must be positive")
		return
	}

	questionID := uuid.NewString()
	authorKey := auth.GenerateAuthorKey(questionID, h.cfg.AuthorKeySalt)
	shareSlug := auth.GenerateShareSlug(questionID, h.cfg.QuestionSlugSalt)

	q := &models.Question{
		ID:            questionID,
		AuthorID:      uuid.NewString(),
		Title:         strings.TrimSpace(req.Title),
		Detail:        strings.TrimSpace(req.Detail),
		ShareSlug:     shareSlug,
		DurationHours: req.DurationHours,
		MaxVotes:      req.MaxVotes,
		Status:        models.StatusOpen,
		CreatedAt:     time.Now(),
	}
	for i, opt := range req.Options {
		q.Options = append(q.Options, models.Option{
			QuestionID: questionID,
			Index:      i,
			Label:      strings.TrimSpace(opt.Label),
			ImageRef:   opt.ImageRef,
		})
	}

	if err := db.CreateQuestion(h.db, q); err != nil {
		slog.Error("failed to create question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question created", "question_id", questionID, "author", req.AuthorName, "options", len(q.Options))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{
		QuestionID: questionID,
		AuthorKey:  authorKey,
		ShareSlug:  shareSlug,
		ShareURL:   h.cfg.BaseURL + "/q/" + shareSlug,
	})
}

// GetQuestionAdmin handles GET /questions/{id}/admin
// Returns the author's view, keyed by question ID and author key.
func (h *QuestionHandler) GetQuestionAdmin(w http.ResponseWriter, r *http.Request) {
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

	q, err := db.GetQuestionByID(h.db, questionID)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	view, err := h.eng.ViewFor(q, visibility.Viewer{Authenticated: true, IsAuthor: true})
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, viewResponse(view, nil))
}
