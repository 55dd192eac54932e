// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quandr/auth"
	"github.com/danielhkuo/quandr/cliparse"
	"github.com/danielhkuo/quandr/db"
	"github.com/danielhkuo/quandr/engine"
	"github.com/danielhkuo/quandr/middleware"
	"github.com/danielhkuo/quandr/models"
)

type DiscussionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	eng *engine.Engine
}

func NewDiscussionHandler(dbh *sql.DB, cfg cliparse.Config) *DiscussionHandler {
	return &DiscussionHandler{db: dbh, cfg: cfg, eng: engine.New(dbh)}
}

// OpenDiscussion handles POST /questions/{id}/discussion/open
func (h *DiscussionHandler) OpenDiscussion(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, true)
}

// CloseDiscussion handles POST /questions/{id}/discussion/close
// Closing only blocks new posts; the thread stays readable.
func (h *DiscussionHandler) CloseDiscussion(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, false)
}

func (h *DiscussionHandler) toggle(w http.ResponseWriter, r *http.Request, enabled bool) {
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

	if err := h.eng.SetDiscussion(q, q.AuthorID, enabled); err != nil {
		middleware.KindError(w, err)
		return
	}

	slog.Info("discussion toggled", "question_id", q.ID, "enabled", enabled)

	middleware.JSONResponse(w, http.StatusOK, models.DiscussionToggleResponse{
		DiscussionEnabled: enabled,
	})
}

// ListComments handles GET /questions/{slug}/comments
// Anyone may read once voting has ended and the author opened the thread.
func (h *DiscussionHandler) ListComments(w http.ResponseWriter, r *http.Request) {
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

	viewer, err := h.eng.ViewerFor(q, r.Header.Get("X-Voter-Token"), false)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	comments, err := h.eng.Comments(q, viewer)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"comments": comments,
	})
}

// PostComment handles POST /questions/{slug}/comments
// Posting is voter-only; non-voters read but never write.
func (h *DiscussionHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}

	var req models.PostCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "body is required")
		return
	}

	q, err := db.GetQuestionBySlug(h.db, shareSlug)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	c, err := h.eng.PostComment(q, voterToken, body)
	if err != nil {
		middleware.KindError(w, err)
		return
	}

	slog.Info("comment posted", "question_id", q.ID, "comment_id", c.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.PostCommentResponse{
		CommentID: c.ID,
	})
}
