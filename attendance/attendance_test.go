// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package attendance

import (
	"reflect"
	"testing"

	"github.com/danielhkuo/quickly-schedule/models"
)

func candidates(ids ...int64) []models.Candidate {
	out := make([]models.Candidate, len(ids))
	for i, id := range ids {
		out[i] = models.Candidate{ID: id, ScheduleID: "s1", Name: "slot"}
	}
	return out
}

func TestBuild_SingleResponder(t *testing.T) {
	cands := []models.Candidate{
		{ID: 1, ScheduleID: "s1", Name: "Mon"},
		{ID: 2, ScheduleID: "s1", Name: "Tue"},
	}
	avails := []models.Availability{
		{UserID: 7, Username: "bob", CandidateID: 1, ScheduleID: "s1", Availability: models.AvailabilityPresent},
	}
	viewer := models.User{ID: 5, Username: "alice"}

	view := Build(cands, avails, viewer, nil)

	wantUsers := []models.ScheduleUser{
		{UserID: 5, Username: "alice", IsSelf: true},
		{UserID: 7, Username: "bob", IsSelf: false},
	}
	if !reflect.DeepEqual(view.Users, wantUsers) {
		t.Errorf("Users = %+v, want %+v", view.Users, wantUsers)
	}

	wantIndex := map[int64]map[int64]models.AvailabilityCode{
		5: {1: 0, 2: 0},
		7: {1: 2, 2: 0},
	}
	if !reflect.DeepEqual(view.Availabilities, wantIndex) {
		t.Errorf("Availabilities = %v, want %v", view.Availabilities, wantIndex)
	}
}

func TestBuild_EmptySchedule(t *testing.T) {
	view := Build(nil, nil, models.User{ID: 9, Username: "viewer"}, nil)

	if len(view.Users) != 1 || view.Users[0].UserID != 9 || !view.Users[0].IsSelf {
		t.Fatalf("Expected only the viewer, got %+v", view.Users)
	}

	want := map[int64]map[int64]models.AvailabilityCode{9: {}}
	if !reflect.DeepEqual(view.Availabilities, want) {
		t.Errorf("Availabilities = %v, want %v", view.Availabilities, want)
	}
	if len(view.Comments) != 0 {
		t.Errorf("Expected no comments, got %v", view.Comments)
	}
}

func TestBuild_Completeness(t *testing.T) {
	tests := []struct {
		name       string
		candidates []models.Candidate
		avails     []models.Availability
		wantUsers  int
	}{
		{
			name:       "no candidates with responders",
			candidates: nil,
			avails: []models.Availability{
				{UserID: 2, Username: "b", CandidateID: 10, Availability: 1},
			},
			wantUsers: 2,
		},
		{
			name:       "sparse responses",
			candidates: candidates(1, 2, 3, 4),
			avails: []models.Availability{
				{UserID: 2, Username: "b", CandidateID: 1, Availability: 2},
				{UserID: 3, Username: "c", CandidateID: 4, Availability: 1},
				{UserID: 4, Username: "d", CandidateID: 2, Availability: 0},
			},
			wantUsers: 4,
		},
		{
			name:       "viewer also responded",
			candidates: candidates(1, 2),
			avails: []models.Availability{
				{UserID: 1, Username: "a", CandidateID: 2, Availability: 2},
				{UserID: 2, Username: "b", CandidateID: 1, Availability: 1},
			},
			wantUsers: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Build(tt.candidates, tt.avails, models.User{ID: 1, Username: "a"}, nil)

			if len(view.Users) != tt.wantUsers {
				t.Fatalf("Expected %d users, got %d", tt.wantUsers, len(view.Users))
			}
			if len(view.Availabilities) != tt.wantUsers {
				t.Errorf("Expected %d index entries, got %d", tt.wantUsers, len(view.Availabilities))
			}
			for _, u := range view.Users {
				cells, ok := view.Availabilities[u.UserID]
				if !ok {
					t.Errorf("user %d missing from index", u.UserID)
					continue
				}
				for _, c := range tt.candidates {
					if _, ok := cells[c.ID]; !ok {
						t.Errorf("cell (%d, %d) missing", u.UserID, c.ID)
					}
				}
			}
		})
	}
}

func TestBuild_DefaultSentinel(t *testing.T) {
	cands := candidates(1, 2, 3)
	avails := []models.Availability{
		{UserID: 2, Username: "b", CandidateID: 2, Availability: models.AvailabilityMaybe},
	}

	view := Build(cands, avails, models.User{ID: 1, Username: "a"}, nil)

	for _, uid := range []int64{1, 2} {
		for _, cid := range []int64{1, 3} {
			if got := view.Availabilities[uid][cid]; got != models.AvailabilityAbsent {
				t.Errorf("cell (%d, %d) = %d, want 0", uid, cid, got)
			}
		}
	}
	if got := view.Availabilities[2][2]; got != models.AvailabilityMaybe {
		t.Errorf("stored cell lost: got %d", got)
	}
}

func TestBuild_DuplicateRecordsLastWins(t *testing.T) {
	cands := candidates(1)
	avails := []models.Availability{
		{UserID: 2, Username: "b", CandidateID: 1, Availability: models.AvailabilityPresent},
		{UserID: 2, Username: "b", CandidateID: 1, Availability: models.AvailabilityMaybe},
	}

	view := Build(cands, avails, models.User{ID: 1, Username: "a"}, nil)

	if got := view.Availabilities[2][1]; got != models.AvailabilityMaybe {
		t.Errorf("Expected last record to win, got %d", got)
	}
}

func TestBuild_OverwriteIdempotence(t *testing.T) {
	cands := candidates(1, 2)
	record := models.Availability{UserID: 3, Username: "c", CandidateID: 2, Availability: models.AvailabilityPresent}
	comments := []models.Comment{{UserID: 3, Comment: "hi"}}
	viewer := models.User{ID: 1, Username: "a"}

	once := Build(cands, []models.Availability{record}, viewer, comments)
	twice := Build(cands, []models.Availability{record, record}, viewer, comments)

	if !reflect.DeepEqual(once.Availabilities, twice.Availabilities) {
		t.Errorf("index differs: %v vs %v", once.Availabilities, twice.Availabilities)
	}
	if !reflect.DeepEqual(once.Users, twice.Users) {
		t.Errorf("users differ: %+v vs %+v", once.Users, twice.Users)
	}
	if !reflect.DeepEqual(once.Rows(), twice.Rows()) {
		t.Error("rows differ")
	}
}

func TestBuild_ViewerAlwaysPresentOnce(t *testing.T) {
	cands := candidates(1, 2)
	// Viewer "m" sorts between the other responders
	avails := []models.Availability{
		{UserID: 2, Username: "b", CandidateID: 1, Availability: 2},
		{UserID: 1, Username: "m", CandidateID: 1, Availability: 1},
		{UserID: 1, Username: "m", CandidateID: 2, Availability: 2},
		{UserID: 3, Username: "z", CandidateID: 2, Availability: 0},
	}

	view := Build(cands, avails, models.User{ID: 1, Username: "m"}, nil)

	count := 0
	for _, u := range view.Users {
		if u.UserID == 1 {
			count++
			if !u.IsSelf {
				t.Error("viewer must be flagged IsSelf")
			}
		} else if u.IsSelf {
			t.Errorf("user %d wrongly flagged IsSelf", u.UserID)
		}
	}
	if count != 1 {
		t.Errorf("viewer appears %d times, want 1", count)
	}
	if view.Users[0].UserID != 1 {
		t.Errorf("viewer must come first, got %d", view.Users[0].UserID)
	}
}

func TestBuild_OrderPreservation(t *testing.T) {
	cands := candidates(1, 2)
	avails := []models.Availability{
		{UserID: 40, Username: "amy", CandidateID: 1},
		{UserID: 40, Username: "amy", CandidateID: 2},
		{UserID: 10, Username: "ben", CandidateID: 1},
		{UserID: 30, Username: "cat", CandidateID: 2},
		{UserID: 20, Username: "dan", CandidateID: 1},
	}

	view := Build(cands, avails, models.User{ID: 99, Username: "viewer"}, nil)

	var got []int64
	for _, u := range view.Users {
		got = append(got, u.UserID)
	}
	want := []int64{99, 40, 10, 30, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("user order = %v, want %v", got, want)
	}
}

func TestBuild_OrphanResponseNotInRows(t *testing.T) {
	cands := candidates(1)
	avails := []models.Availability{
		{UserID: 2, Username: "b", CandidateID: 1, Availability: 2},
		{UserID: 2, Username: "b", CandidateID: 77, Availability: 1},
	}

	view := Build(cands, avails, models.User{ID: 1, Username: "a"}, nil)

	for _, row := range view.Rows() {
		if len(row.Cells) != 1 {
			t.Fatalf("Expected 1 cell per row, got %d", len(row.Cells))
		}
		if row.Cells[0].CandidateID != 1 {
			t.Errorf("unexpected candidate %d in row", row.Cells[0].CandidateID)
		}
	}
}

func TestBuild_CommentLastWriteWins(t *testing.T) {
	comments := []models.Comment{
		{UserID: 7, Comment: "A"},
		{UserID: 7, Comment: "B"},
		{UserID: 8, Comment: "C"},
	}

	view := Build(nil, nil, models.User{ID: 5}, comments)

	if view.Comments[7] != "B" {
		t.Errorf("Expected comment 'B', got '%s'", view.Comments[7])
	}
	if view.Comments[8] != "C" {
		t.Errorf("Expected comment 'C', got '%s'", view.Comments[8])
	}
}

func TestView_Rows(t *testing.T) {
	cands := []models.Candidate{{ID: 3, Name: "Wed"}, {ID: 5, Name: "Fri"}}
	avails := []models.Availability{
		{UserID: 2, Username: "b", CandidateID: 5, Availability: models.AvailabilityPresent},
	}
	comments := []models.Comment{{UserID: 2, Comment: "late"}}

	rows := Build(cands, avails, models.User{ID: 1, Username: "a"}, comments).Rows()

	want := []models.AttendanceRow{
		{
			User:  models.ScheduleUser{UserID: 1, Username: "a", IsSelf: true},
			Cells: []models.AttendanceCell{{CandidateID: 3}, {CandidateID: 5}},
		},
		{
			User: models.ScheduleUser{UserID: 2, Username: "b"},
			Cells: []models.AttendanceCell{
				{CandidateID: 3, Availability: models.AvailabilityAbsent},
				{CandidateID: 5, Availability: models.AvailabilityPresent},
			},
			Comment: "late",
		},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Rows() = %+v, want %+v", rows, want)
	}
}

func TestSortResponses(t *testing.T) {
	avails := []models.Availability{
		{Username: "carol", CandidateID: 1},
		{Username: "alice", CandidateID: 3},
		{Username: "bob", CandidateID: 2},
		{Username: "alice", CandidateID: 1},
	}

	SortResponses(avails)

	want := []struct {
		username string
		cid      int64
	}{
		{"alice", 1}, {"alice", 3}, {"bob", 2}, {"carol", 1},
	}
	for i, w := range want {
		if avails[i].Username != w.username || avails[i].CandidateID != w.cid {
			t.Errorf("position %d = (%s, %d), want (%s, %d)",
				i, avails[i].Username, avails[i].CandidateID, w.username, w.cid)
		}
	}
}
