// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quandr/models"
	"github.com/danielhkuo/quandr/testutil"
)

// TestFullQuestionWorkflow walks the complete lifecycle through the HTTP
// surface: create, claim names, vote with reasons, hit the vote cap,
// resolve, open discussion, comment.
func TestFullQuestionWorkflow(t *testing.T) {
	dbh := testutil.SetupTestDB(t)
	defer dbh.Close()

	cfg := testutil.GetTestConfig()
	questionHandler := NewQuestionHandler(dbh, cfg)
	viewHandler := NewViewHandler(dbh, cfg)
	votingHandler := NewVotingHandler(dbh, cfg)
	resolutionHandler := NewResolutionHandler(dbh, cfg)
	discussionHandler := NewDiscussionHandler(dbh, cfg)

	// Step 1: the Curioso poses the question. The vote cap at 3 ends the
	// window once everyone has weighed in.
	req := testutil.MakeRequest("POST", "/questions", models.CreateQuestionRequest{
		Title:      "Which city for the offsite?",
		AuthorName: "Alice",
		Options: []models.CreateOptionRequest{
			{Label: "Lisbon"},
			{Label: "Prague"},
			{Label: "Montreal"},
		},
		MaxVotes: testutil.IntPtr(3),
	}, nil)
	w := httptest.NewRecorder()
	questionHandler.CreateQuestion(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.CreateQuestionResponse
	testutil.AssertJSON(t, w, &created)

	// Step 2: three Wayfinders claim names and vote.
	votes := []struct {
		name   string
		option int
		reason string
	}{
		{"bob", 0, "cheap flights"},
		{"carol", 0, "great food"},
		{"dave", 2, "no visa hassle"},
	}
	tokens := map[string]string{}
	for _, v := range votes {
		req := testutil.MakeRequest("POST", "/questions/"+created.ShareSlug+"/claim-name",
			models.ClaimNameRequest{Name: v.name}, nil)
		req.SetPathValue("slug", created.ShareSlug)
		w := httptest.NewRecorder()
		votingHandler.ClaimName(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var claim models.ClaimNameResponse
		testutil.AssertJSON(t, w, &claim)
		tokens[v.name] = claim.VoterToken
	}

	// Before anyone votes, the public view seals the results.
	req = testutil.MakeRequest("GET", "/questions/"+created.ShareSlug, nil, nil)
	req.SetPathValue("slug", created.ShareSlug)
	w = httptest.NewRecorder()
	viewHandler.GetQuestion(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view map[string]interface{}
	testutil.AssertJSON(t, w, &view)
	if view["phase"] != string(models.PhaseOpen) {
		t.Fatalf("phase = %v, want open", view["phase"])
	}
	if _, ok := view["results"]; ok {
		t.Error("results visible to anonymous viewer while open")
	}

	for i, v := range votes {
		req := testutil.MakeRequest("POST", "/questions/"+created.ShareSlug+"/votes",
			models.CastVoteRequest{OptionIndex: v.option, Reason: v.reason},
			map[string]string{"X-Voter-Token": tokens[v.name]})
		req.SetPathValue("slug", created.ShareSlug)
		w := httptest.NewRecorder()
		votingHandler.CastVote(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)

		// The first voter gets an early preview of their own poll.
		if i == 0 {
			req := testutil.MakeRequest("GET", "/questions/"+created.ShareSlug, nil,
				map[string]string{"X-Voter-Token": tokens[v.name]})
			req.SetPathValue("slug", created.ShareSlug)
			w := httptest.NewRecorder()
			viewHandler.GetQuestion(w, req)
			testutil.AssertStatus(t, w, http.StatusOK)

			var preview map[string]interface{}
			testutil.AssertJSON(t, w, &preview)
			if _, ok := preview["results"]; !ok {
				t.Error("voter did not get an early results preview")
			}
			if _, ok := preview["my_vote"]; !ok {
				t.Error("voter view missing my_vote")
			}
		}
	}

	// Step 3: the cap is hit, the window is over.
	req = testutil.MakeRequest("GET", "/questions/"+created.ShareSlug, nil, nil)
	req.SetPathValue("slug", created.ShareSlug)
	w = httptest.NewRecorder()
	viewHandler.GetQuestion(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &view)
	if view["phase"] != string(models.PhaseAwaitingResolution) {
		t.Fatalf("phase = %v, want awaiting_resolution", view["phase"])
	}
	results, ok := view["results"].(map[string]interface{})
	if !ok {
		t.Fatal("results missing after window closed")
	}
	if results["total_votes"].(float64) != 3 {
		t.Errorf("total_votes = %v, want 3", results["total_votes"])
	}
	// Lisbon leads 2-1.
	if results["winner_index"].(float64) != 0 {
		t.Errorf("winner_index = %v, want 0", results["winner_index"])
	}

	// A fourth claim after the window is refused.
	req = testutil.MakeRequest("POST", "/questions/"+created.ShareSlug+"/claim-name",
		models.ClaimNameRequest{Name: "erin"}, nil)
	req.SetPathValue("slug", created.ShareSlug)
	w = httptest.NewRecorder()
	votingHandler.ClaimName(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Step 4: the Curioso overrides the plurality and picks Montreal.
	req = testutil.MakeRequest("POST", "/questions/"+created.QuestionID+"/resolve",
		models.ResolveRequest{OptionIndex: 2, Note: "budget said otherwise"},
		map[string]string{"X-Author-Key": created.AuthorKey})
	req.SetPathValue("id", created.QuestionID)
	w = httptest.NewRecorder()
	resolutionHandler.Resolve(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	req = testutil.MakeRequest("GET", "/questions/"+created.ShareSlug, nil, nil)
	req.SetPathValue("slug", created.ShareSlug)
	w = httptest.NewRecorder()
	viewHandler.GetQuestion(w, req)
	testutil.AssertJSON(t, w, &view)
	if view["phase"] != string(models.PhaseResolved) {
		t.Fatalf("phase = %v, want resolved", view["phase"])
	}
	results = view["results"].(map[string]interface{})
	if results["resolved_index"].(float64) != 2 {
		t.Errorf("resolved_index = %v, want 2", results["resolved_index"])
	}
	// Plurality stays visible alongside the override.
	if results["winner_index"].(float64) != 0 {
		t.Errorf("winner_index = %v, want 0 even after override", results["winner_index"])
	}

	// Step 5: discussion opens and a voter posts.
	req = testutil.MakeRequest("POST", "/questions/"+created.QuestionID+"/discussion/open", nil,
		map[string]string{"X-Author-Key": created.AuthorKey})
	req.SetPathValue("id", created.QuestionID)
	w = httptest.NewRecorder()
	discussionHandler.OpenDiscussion(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("POST", "/questions/"+created.ShareSlug+"/comments",
		models.PostCommentRequest{Body: "Montreal it is, pack warm"},
		map[string]string{"X-Voter-Token": tokens["bob"]})
	req.SetPathValue("slug", created.ShareSlug)
	w = httptest.NewRecorder()
	discussionHandler.PostComment(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)
}

// TestResultsSealedUntilClosed pins the anti-herding rule: no aggregate
// leaks to non-voters while the window is open, however they ask.
func TestResultsSealedUntilClosed(t *testing.T) {
	dbh := testutil.SetupTestDB(t)
	defer dbh.Close()

	cfg := testutil.GetTestConfig()
	viewHandler := NewViewHandler(dbh, cfg)

	q, _ := testutil.CreateTestQuestion(t, dbh, cfg, testutil.QuestionSpec{})
	voter := testutil.CreateTestVoter(t, dbh, q.ID, "bob")
	testutil.CastTestVote(t, dbh, q.ID, voter, 0, "secret reason", q.CreatedAt)
	nonVoter := testutil.CreateTestVoter(t, dbh, q.ID, "lurker")

	for _, tc := range []struct {
		name      string
		token     string
		wantLeaks bool
	}{
		{"anonymous", "", false},
		{"participant who has not voted", nonVoter, false},
		{"voter early preview", voter, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.token != "" {
				headers["X-Voter-Token"] = tc.token
			}
			req := testutil.MakeRequest("GET", "/questions/"+q.ShareSlug, nil, headers)
			req.SetPathValue("slug", q.ShareSlug)
			w := httptest.NewRecorder()
			viewHandler.GetQuestion(w, req)
			testutil.AssertStatus(t, w, http.StatusOK)

			var view map[string]interface{}
			testutil.AssertJSON(t, w, &view)
			_, leaked := view["results"]
			if leaked != tc.wantLeaks {
				t.Errorf("results leaked = %v, want %v", leaked, tc.wantLeaks)
			}
		})
	}
}

// TestNeverExpiringQuestion covers the no-duration, no-cap configuration:
// the window stays open indefinitely and resolution stays unavailable.
func TestNeverExpiringQuestion(t *testing.T) {
	dbh := testutil.SetupTestDB(t)
	defer dbh.Close()

	cfg := testutil.GetTestConfig()
	viewHandler := NewViewHandler(dbh, cfg)

	q, _ := testutil.CreateTestQuestion(t, dbh, cfg, testutil.QuestionSpec{})

	req := testutil.MakeRequest("GET", "/questions/"+q.ShareSlug, nil, nil)
	req.SetPathValue("slug", q.ShareSlug)
	w := httptest.NewRecorder()
	viewHandler.GetQuestion(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view map[string]interface{}
	testutil.AssertJSON(t, w, &view)
	if view["phase"] != string(models.PhaseOpen) {
		t.Errorf("phase = %v, want open", view["phase"])
	}
	if _, ok := view["closes_at"]; ok {
		t.Error("closes_at present on a question with no duration")
	}
}
