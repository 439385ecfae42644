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

	"github.com/danielhkuo/quickly-schedule/auth"
	"github.com/danielhkuo/quickly-schedule/cliparse"
	"github.com/danielhkuo/quickly-schedule/db"
	"github.com/danielhkuo/quickly-schedule/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.TypeSQLite,
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
	}
}

// CreateTestUser inserts a user and returns it
func CreateTestUser(t *testing.T, conn *sql.DB, username string) models.User {
	t.Helper()

	user := models.User{Username: username}
	err := conn.QueryRow(`
		INSERT INTO app_user (username, created_at)
		VALUES ($1, $2)
		RETURNING id
	`, username, time.Now()).Scan(&user.ID)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestSchedule creates a schedule owned by ownerID with the given
// candidates and returns the schedule ID and candidate IDs in order
func CreateTestSchedule(t *testing.T, conn *sql.DB, ownerID int64, name string, candidates ...string) (string, []int64) {
	t.Helper()

	scheduleID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO schedule (id, name, memo, created_by, updated_at)
		VALUES ($1, $2, 'test memo', $3, $4)
	`, scheduleID, name, ownerID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test schedule: %v", err)
	}

	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		var id int64
		err := conn.QueryRow(`
			INSERT INTO candidate (schedule_id, name)
			VALUES ($1, $2)
			RETURNING id
		`, scheduleID, c).Scan(&id)
		if err != nil {
			t.Fatalf("Failed to create test candidate: %v", err)
		}
		ids = append(ids, id)
	}

	return scheduleID, ids
}

// SetTestAvailability stores an availability code
func SetTestAvailability(t *testing.T, conn *sql.DB, scheduleID string, candidateID, userID int64, code models.AvailabilityCode) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO availability (candidate_id, user_id, schedule_id, availability)
		VALUES ($1, $2, $3, $4)
	`, candidateID, userID, scheduleID, int(code))
	if err != nil {
		t.Fatalf("Failed to create test availability: %v", err)
	}
}

// SetTestComment stores a comment
func SetTestComment(t *testing.T, conn *sql.DB, scheduleID string, userID int64, comment string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO schedule_comment (schedule_id, user_id, comment)
		VALUES ($1, $2, $3)
	`, scheduleID, userID, comment)
	if err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
}

// AuthHeaders returns an Authorization header carrying a session for user
func AuthHeaders(t *testing.T, cfg cliparse.Config, user models.User) map[string]string {
	t.Helper()

	token, _, err := auth.IssueSessionToken(user, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		t.Fatalf("Failed to issue session token: %v", err)
	}

	return map[string]string{"Authorization": "Bearer " + token}
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
