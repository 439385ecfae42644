// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-schedule/models"
	"github.com/danielhkuo/quickly-schedule/testutil"
)

func commentRequest(scheduleID, userID string, body interface{}, viewer models.User) *http.Request {
	path := "/schedules/" + scheduleID + "/users/" + userID + "/comments"
	req := asViewer(testutil.MakeRequest("POST", path, body, nil), viewer)
	req.SetPathValue("id", scheduleID)
	req.SetPathValue("userId", userID)
	return req
}

func TestSetComment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewCommentHandler(db, testutil.GetTestConfig())
	owner := testutil.CreateTestUser(t, db, "alice")
	bob := testutil.CreateTestUser(t, db, "bob")
	scheduleID, _ := testutil.CreateTestSchedule(t, db, owner.ID, "Lunch", "Mon")

	bobID := strconv.FormatInt(bob.ID, 10)

	tests := []struct {
		name            string
		scheduleID      string
		userID          string
		comment         string
		expectedStatus  int
		expectedComment string
	}{
		{
			name:            "short comment",
			scheduleID:      scheduleID,
			userID:          bobID,
			comment:         "might be late",
			expectedStatus:  http.StatusOK,
			expectedComment: "might be late",
		},
		{
			name:            "long comment truncated",
			scheduleID:      scheduleID,
			userID:          bobID,
			comment:         strings.Repeat("z", 300),
			expectedStatus:  http.StatusOK,
			expectedComment: strings.Repeat("z", 255),
		},
		{
			name:            "multibyte comment truncated by characters",
			scheduleID:      scheduleID,
			userID:          bobID,
			comment:         strings.Repeat("遅", 256),
			expectedStatus:  http.StatusOK,
			expectedComment: strings.Repeat("遅", 255),
		},
		{
			name:            "empty comment clears",
			scheduleID:      scheduleID,
			userID:          bobID,
			comment:         "",
			expectedStatus:  http.StatusOK,
			expectedComment: "",
		},
		{
			name:           "another user's comment",
			scheduleID:     scheduleID,
			userID:         strconv.FormatInt(owner.ID, 10),
			comment:        "hijack",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing schedule",
			scheduleID:     uuid.NewString(),
			userID:         bobID,
			comment:        "hello",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed schedule id",
			scheduleID:     "abc",
			userID:         bobID,
			comment:        "hello",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := commentRequest(tt.scheduleID, tt.userID, models.SetCommentRequest{Comment: tt.comment}, bob)
			w := httptest.NewRecorder()

			handler.SetComment(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.SetCommentResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Comment != tt.expectedComment {
				t.Errorf("Expected echoed comment of %d characters, got %d", utf8.RuneCountInString(tt.expectedComment), utf8.RuneCountInString(resp.Comment))
			}

			var stored string
			err := db.QueryRow(`
				SELECT comment FROM schedule_comment WHERE schedule_id = $1 AND user_id = $2
			`, scheduleID, bob.ID).Scan(&stored)
			if err != nil {
				t.Fatalf("Comment not stored: %v", err)
			}
			if stored != tt.expectedComment {
				t.Errorf("Stored comment differs from expected (%d vs %d characters)", utf8.RuneCountInString(stored), utf8.RuneCountInString(tt.expectedComment))
			}
		})
	}

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM schedule_comment WHERE schedule_id = $1", scheduleID).Scan(&count)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected a single comment row after overwrites, got %d", count)
	}
}
