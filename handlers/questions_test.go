// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quandr/auth"
	"github.com/danielhkuo/quandr/db"
	"github.com/danielhkuo/quandr/models"
	"github.com/danielhkuo/quandr/testutil"
)

func TestCreateQuestion(t *testing.T) {
	dbh := testutil.SetupTestDB(t)
	defer dbh.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(dbh, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreateQuestionResponse)
	}{
		{
			name: "valid question",
			requestBody: models.CreateQuestionRequest{
				Title:      "Which apartment should we take?",
				Detail:     "Lease starts next month",
				AuthorName: "Alice",
				Options: []models.CreateOptionRequest{
					{Label: "Downtown studio"},
					{Label: "Suburb two-bed"},
					{Label: "Midtown loft"},
				},
				DurationHours: testutil.IntPtr(24),
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateQuestionResponse) {
				if resp.QuestionID == "" {
					t.Error("Expected non-empty question_id")
				}
				if resp.AuthorKey == "" {
					t.Error("Expected non-empty author_key")
				}
				if resp.ShareSlug == "" {
					t.Error("Expected non-empty share_slug")
				}
				if resp.ShareURL != cfg.BaseURL+"/q/"+resp.ShareSlug {
					t.Errorf("ShareURL = %q, want %q", resp.ShareURL, cfg.BaseURL+"/q/"+resp.ShareSlug)
				}

				// The author key must validate against the new question.
				if err := auth.ValidateAuthorKey(resp.QuestionID, resp.AuthorKey, cfg.AuthorKeySalt); err != nil {
					t.Errorf("Returned author key does not validate: %v", err)
				}

				// Question and options landed atomically.
				q, err := db.GetQuestionByID(dbh, resp.QuestionID)
				if err != nil {
					t.Fatalf("Failed to load created question: %v", err)
				}
				if len(q.Options) != 3 {
					t.Errorf("len(Options) = %d, want 3", len(q.Options))
				}
				if q.DurationHours == nil || *q.DurationHours != 24 {
					t.Errorf("DurationHours = %v, want 24", q.DurationHours)
				}
				if q.DiscussionEnabled {
					t.Error("DiscussionEnabled = true on creation, want false")
				}
			},
		},
		{
			name: "missing title",
			requestBody: models.CreateQuestionRequest{
				AuthorName: "Alice",
				Options: []models.CreateOptionRequest{
					{Label: "A"}, {Label: "B"},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing author name",
			requestBody: models.CreateQuestionRequest{
				Title: "Test",
				Options: []models.CreateOptionRequest{
					{Label: "A"}, {Label: "B"},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "too few options",
			requestBody: models.CreateQuestionRequest{
				Title:      "Test",
				AuthorName: "Alice",
				Options:    []models.CreateOptionRequest{{Label: "Only one"}},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "too many options",
			requestBody: models.CreateQuestionRequest{
				Title:      "Test",
				AuthorName: "Alice",
				Options: []models.CreateOptionRequest{
					{Label: "A"}, {Label: "B"}, {Label: "C"}, {Label: "D"}, {Label: "E"},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "blank option label",
			requestBody: models.CreateQuestionRequest{
				Title:      "Test",
				AuthorName: "Alice",
				Options: []models.CreateOptionRequest{
					{Label: "A"}, {Label: "   "},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "zero duration",
			requestBody: models.CreateQuestionRequest{
				Title:      "Test",
				AuthorName: "Alice",
				Options: []models.CreateOptionRequest{
					{Label: "A"}, {Label: "B"},
				},
				DurationHours: testutil.IntPtr(0),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "negative vote cap",
			requestBody: models.CreateQuestionRequest{
				Title:      "Test",
				AuthorName: "Alice",
				Options: []models.CreateOptionRequest{
					{Label: "A"}, {Label: "B"},
				},
				MaxVotes: testutil.IntPtr(-5),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not json at all",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/questions", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreateQuestion(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CreateQuestionResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestGetQuestionAdmin(t *testing.T) {
	dbh := testutil.SetupTestDB(t)
	defer dbh.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(dbh, cfg)

	q, authorKey := testutil.CreateTestQuestion(t, dbh, cfg, testutil.QuestionSpec{})
	voter := testutil.CreateTestVoter(t, dbh, q.ID, "bob")
	testutil.CastTestVote(t, dbh, q.ID, voter, 1, "", q.CreatedAt)

	t.Run("valid author key sees everything", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/questions/"+q.ID+"/admin", nil, map[string]string{
			"X-Author-Key": authorKey,
		})
		req.SetPathValue("id", q.ID)
		w := httptest.NewRecorder()

		handler.GetQuestionAdmin(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp map[string]interface{}
		testutil.AssertJSON(t, w, &resp)
		if resp["phase"] != string(models.PhaseOpen) {
			t.Errorf("phase = %v, want open", resp["phase"])
		}
		// Author is not a voter; results stay sealed while open.
		if _, ok := resp["results"]; ok {
			t.Error("results present for author while voting is open, want sealed")
		}
		if resp["vote_count"].(float64) != 1 {
			t.Errorf("vote_count = %v, want 1", resp["vote_count"])
		}
	})

	t.Run("invalid author key", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/questions/"+q.ID+"/admin", nil, map[string]string{
			"X-Author-Key": "wrong-key",
		})
		req.SetPathValue("id", q.ID)
		w := httptest.NewRecorder()

		handler.GetQuestionAdmin(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("missing author key", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/questions/"+q.ID+"/admin", nil, nil)
		req.SetPathValue("id", q.ID)
		w := httptest.NewRecorder()

		handler.GetQuestionAdmin(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}
