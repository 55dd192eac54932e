// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quandr/auth"
	"github.com/danielhkuo/quandr/cliparse"
	"github.com/danielhkuo/quandr/db"
	"github.com/danielhkuo/quandr/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each test gets its own database; nothing external is required.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbh, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A second pool connection would get its own empty :memory: database.
	dbh.SetMaxOpenConns(1)

	if err := db.CreateSchema(dbh); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return dbh
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3321,
		DatabaseURL:      ":memory:",
		DatabaseType:     "sqlite",
		AuthorKeySalt:    "test-author-salt",
		QuestionSlugSalt: "test-slug-salt",
		BaseURL:          "https://quandr.test",
	}
}

// QuestionSpec configures CreateTestQuestion. Zero values mean: two
// options ("A", "B"), no duration, no cap, created now, discussion off.
type QuestionSpec struct {
	Labels        []string
	DurationHours *int
	MaxVotes      *int
	CreatedAt     time.Time
	Discussion    bool
}

// CreateTestQuestion inserts a question and returns it along with its
// author key and share slug.
func CreateTestQuestion(t *testing.T, dbh *sql.DB, cfg cliparse.Config, spec QuestionSpec) (*models.Question, string) {
	t.Helper()

	if len(spec.Labels) == 0 {
		spec.Labels = []string{"A", "B"}
	}
	if spec.CreatedAt.IsZero() {
		spec.CreatedAt = time.Now()
	}

	questionID := uuid.NewString()
	q := &models.Question{
		ID:                questionID,
		AuthorID:          uuid.NewString(),
		Title:             "Test Question",
		Detail:            "A test question",
		ShareSlug:         auth.GenerateShareSlug(questionID, cfg.QuestionSlugSalt),
		DurationHours:     spec.DurationHours,
		MaxVotes:          spec.MaxVotes,
		DiscussionEnabled: spec.Discussion,
		Status:            models.StatusOpen,
		CreatedAt:         spec.CreatedAt,
	}
	for i, label := range spec.Labels {
		q.Options = append(q.Options, models.Option{
			QuestionID: questionID,
			Index:      i,
			Label:      label,
		})
	}

	if err := db.CreateQuestion(dbh, q); err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return q, auth.GenerateAuthorKey(questionID, cfg.AuthorKeySalt)
}

// CreateTestVoter claims a display name and returns the voter token.
func CreateTestVoter(t *testing.T, dbh *sql.DB, questionID, name string) string {
	t.Helper()

	voterToken, err := auth.GenerateVoterToken()
	if err != nil {
		t.Fatalf("Failed to generate voter token: %v", err)
	}
	if err := db.ClaimName(dbh, questionID, name, voterToken, time.Now()); err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterToken
}

// CastTestVote inserts a ballot directly, with an optional reason.
func CastTestVote(t *testing.T, dbh *sql.DB, questionID, voterToken string, optionIndex int, reason string, at time.Time) string {
	t.Helper()

	v := &models.Vote{
		ID:          uuid.NewString(),
		QuestionID:  questionID,
		VoterToken:  voterToken,
		OptionIndex: optionIndex,
		CreatedAt:   at,
	}
	if err := db.CreateVote(dbh, v); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	if reason != "" {
		if err := db.UpsertReason(dbh, v.ID, reason, at); err != nil {
			t.Fatalf("Failed to create test reason: %v", err)
		}
	}

	return v.ID
}

// ResolveTestQuestion inserts a resolution record directly.
func ResolveTestQuestion(t *testing.T, dbh *sql.DB, q *models.Question, optionIndex int, note string) {
	t.Helper()

	err := db.CreateResolution(dbh, &models.Resolution{
		QuestionID:  q.ID,
		ResolverID:  q.AuthorID,
		OptionIndex: optionIndex,
		Note:        note,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to resolve test question: %v", err)
	}
	if err := db.MarkResolved(dbh, q.ID); err != nil {
		t.Fatalf("Failed to mark test question resolved: %v", err)
	}
}

// IntPtr is shorthand for taking the address of a literal.
func IntPtr(n int) *int {
	return &n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
