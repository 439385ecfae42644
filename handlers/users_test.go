// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-schedule/auth"
	"github.com/danielhkuo/quickly-schedule/middleware"
	"github.com/danielhkuo/quickly-schedule/models"
	"github.com/danielhkuo/quickly-schedule/testutil"
)

// asViewer attaches a logged-in user the way middleware.RequireUser does
func asViewer(req *http.Request, user models.User) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(db, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedName   string
	}{
		{
			name:           "valid username",
			requestBody:    models.LoginRequest{Username: "alice"},
			expectedStatus: http.StatusOK,
			expectedName:   "alice",
		},
		{
			name:           "surrounding whitespace trimmed",
			requestBody:    models.LoginRequest{Username: "  bob  "},
			expectedStatus: http.StatusOK,
			expectedName:   "bob",
		},
		{
			name:           "multibyte username counted in characters",
			requestBody:    models.LoginRequest{Username: "太郎"},
			expectedStatus: http.StatusOK,
			expectedName:   "太郎",
		},
		{
			name:           "missing username",
			requestBody:    models.LoginRequest{Username: ""},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "username too short",
			requestBody:    models.LoginRequest{Username: "a"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "username too long",
			requestBody:    models.LoginRequest{Username: strings.Repeat("x", 51)},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/login", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.LoginResponse
			testutil.AssertJSON(t, w, &resp)

			if resp.Username != tt.expectedName {
				t.Errorf("Expected username %q, got %q", tt.expectedName, resp.Username)
			}
			if resp.UserID == 0 {
				t.Error("Expected non-zero user_id")
			}

			user, err := auth.ParseSessionToken(resp.Token, cfg.SessionSecret)
			if err != nil {
				t.Fatalf("Issued token does not parse: %v", err)
			}
			if user.ID != resp.UserID || user.Username != resp.Username {
				t.Errorf("Token carries %+v, response says %d/%s", user, resp.UserID, resp.Username)
			}
		})
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewUserHandler(db, testutil.GetTestConfig())

	req := httptest.NewRequest("POST", "/login", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestLogin_SameUsernameSameUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewUserHandler(db, testutil.GetTestConfig())

	login := func() models.LoginResponse {
		req := testutil.MakeRequest("POST", "/login", models.LoginRequest{Username: "alice"}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LoginResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	first := login()
	second := login()
	if first.UserID != second.UserID {
		t.Errorf("Expected the same user ID on repeated login, got %d and %d", first.UserID, second.UserID)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM app_user WHERE username = $1", "alice").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user row, got %d", count)
	}
}

func TestViewerRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewScheduleHandler(db, testutil.GetTestConfig())

	// No user in context: the handler was mounted without RequireUser
	req := httptest.NewRequest("GET", "/schedules", nil)
	w := httptest.NewRecorder()
	handler.ListSchedules(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
