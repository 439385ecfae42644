// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package attendance

import (
	"sort"

	"github.com/danielhkuo/quickly-schedule/models"
)

// View is the aggregated attendance data for one schedule as seen by one viewer
type View struct {
	// user_id -> candidate_id -> code, complete over Users x Candidates
	Availabilities map[int64]map[int64]models.AvailabilityCode
	// Viewer first, then responders in the order they were read
	Users []models.ScheduleUser
	// user_id -> comment
	Comments map[int64]string

	candidates []models.Candidate
}

// Build aggregates sparse availability records into a complete matrix.
//
// candidates must be ordered by ID ascending and availabilities by username
// then candidate ID ascending (the order the store returns them in; see
// SortResponses). Build does not re-sort, it trusts the given order.
//
// Records that point at a candidate outside candidates are kept in the
// index but never show up in Rows.
func Build(candidates []models.Candidate, availabilities []models.Availability, viewer models.User, comments []models.Comment) View {
	// Response index
	index := make(map[int64]map[int64]models.AvailabilityCode)
	for _, a := range availabilities {
		m, ok := index[a.UserID]
		if !ok {
			m = make(map[int64]models.AvailabilityCode)
			index[a.UserID] = m
		}
		m[a.CandidateID] = a.Availability
	}

	// Viewer first, then responders
	users := newUserRegistry()
	users.add(models.ScheduleUser{
		UserID:   viewer.ID,
		Username: viewer.Username,
		IsSelf:   true,
	})
	for _, a := range availabilities {
		users.add(models.ScheduleUser{
			UserID:   a.UserID,
			Username: a.Username,
			IsSelf:   a.UserID == viewer.ID,
		})
	}
	ordered := users.values()

	// Fill every missing cell with the default code
	for _, u := range ordered {
		m, ok := index[u.UserID]
		if !ok {
			m = make(map[int64]models.AvailabilityCode, len(candidates))
			index[u.UserID] = m
		}
		for _, c := range candidates {
			if _, ok := m[c.ID]; !ok {
				m[c.ID] = models.AvailabilityAbsent
			}
		}
	}

	commentMap := make(map[int64]string, len(comments))
	for _, c := range comments {
		commentMap[c.UserID] = c.Comment
	}

	return View{
		Availabilities: index,
		Users:          ordered,
		Comments:       commentMap,
		candidates:     candidates,
	}
}

// Rows lays the view out in display order: one row per user, one cell per
// candidate in candidate order.
func (v View) Rows() []models.AttendanceRow {
	rows := make([]models.AttendanceRow, 0, len(v.Users))
	for _, u := range v.Users {
		cells := make([]models.AttendanceCell, 0, len(v.candidates))
		for _, c := range v.candidates {
			cells = append(cells, models.AttendanceCell{
				CandidateID:  c.ID,
				Availability: v.Availabilities[u.UserID][c.ID],
			})
		}
		rows = append(rows, models.AttendanceRow{
			User:    u,
			Cells:   cells,
			Comment: v.Comments[u.UserID],
		})
	}
	return rows
}

// SortResponses orders availabilities by username, then candidate ID, which
// is the order Build expects. Equal keys keep their relative order.
func SortResponses(availabilities []models.Availability) {
	sort.SliceStable(availabilities, func(i, j int) bool {
		a, b := availabilities[i], availabilities[j]
		if a.Username != b.Username {
			return a.Username < b.Username
		}
		return a.CandidateID < b.CandidateID
	})
}

// userRegistry is a map of users that remembers insertion order
type userRegistry struct {
	order []int64
	byID  map[int64]models.ScheduleUser
}

func newUserRegistry() *userRegistry {
	return &userRegistry{byID: make(map[int64]models.ScheduleUser)}
}

// add inserts u unless its ID is already present; the first entry wins
func (r *userRegistry) add(u models.ScheduleUser) {
	if _, ok := r.byID[u.UserID]; ok {
		return
	}
	r.order = append(r.order, u.UserID)
	r.byID[u.UserID] = u
}

func (r *userRegistry) values() []models.ScheduleUser {
	out := make([]models.ScheduleUser, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
