// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quandr/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "quandr API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Every route should be registered. Handlers may still reject the
	// request (404 for an unknown question is fine); a 405 means the
	// method pattern was never wired.
	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/questions"},
		{"GET", "/questions/some-id/admin"},
		{"POST", "/questions/some-id/resolve"},
		{"POST", "/questions/some-id/discussion/open"},
		{"POST", "/questions/some-id/discussion/close"},
		{"POST", "/questions/some-slug/claim-name"},
		{"POST", "/questions/some-slug/votes"},
		{"PUT", "/questions/some-slug/reason"},
		{"GET", "/questions/some-slug/my-vote"},
		{"GET", "/questions/some-slug"},
		{"GET", "/questions/some-slug/comments"},
		{"POST", "/questions/some-slug/comments"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s not registered (405)", rt.method, rt.path)
			}
		})
	}
}

func TestUnknownMethodRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// DELETE is not part of the API surface.
	req := httptest.NewRequest("DELETE", "/questions/some-slug/votes", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for unsupported method, got %d", w.Code)
	}
}
