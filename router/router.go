// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quandr/cliparse"
	"github.com/danielhkuo/quandr/handlers"
	"github.com/danielhkuo/quandr/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	viewHandler := handlers.NewViewHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resolutionHandler := handlers.NewResolutionHandler(db, cfg)
	discussionHandler := handlers.NewDiscussionHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Question management (author operations)
	mux.HandleFunc("POST /questions", middleware.WithLogging(questionHandler.CreateQuestion))
	mux.HandleFunc("GET /questions/{id}/admin", middleware.WithLogging(questionHandler.GetQuestionAdmin))
	mux.HandleFunc("POST /questions/{id}/resolve", middleware.WithLogging(resolutionHandler.Resolve))
	mux.HandleFunc("POST /questions/{id}/discussion/open", middleware.WithLogging(discussionHandler.OpenDiscussion))
	mux.HandleFunc("POST /questions/{id}/discussion/close", middleware.WithLogging(discussionHandler.CloseDiscussion))

	// Voting operations (public, voter token)
	mux.HandleFunc("POST /questions/{slug}/claim-name", middleware.WithLogging(votingHandler.ClaimName))
	mux.HandleFunc("POST /questions/{slug}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("PUT /questions/{slug}/reason", middleware.WithLogging(votingHandler.UpdateReason))
	mux.HandleFunc("GET /questions/{slug}/my-vote", middleware.WithLogging(votingHandler.GetMyVote))

	// Question view (public, with gated results)
	mux.HandleFunc("GET /questions/{slug}", middleware.WithLogging(viewHandler.GetQuestion))

	// Discussion (gated)
	mux.HandleFunc("GET /questions/{slug}/comments", middleware.WithLogging(discussionHandler.ListComments))
	mux.HandleFunc("POST /questions/{slug}/comments", middleware.WithLogging(discussionHandler.PostComment))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quandr API v1"))
	})

	return mux
}
