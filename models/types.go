package models

import "time"

// Availability codes. AvailabilityAbsent doubles as the value of a cell
// nobody has answered.
type AvailabilityCode int

const (
	AvailabilityAbsent  AvailabilityCode = 0
	AvailabilityMaybe   AvailabilityCode = 1
	AvailabilityPresent AvailabilityCode = 2
)

// Valid reports whether c is one of the known codes
func (c AvailabilityCode) Valid() bool {
	return c >= AvailabilityAbsent && c <= AvailabilityPresent
}

// Length limits
const (
	MaxScheduleNameLength = 255
	MaxCommentLength      = 255
	MinUsernameLength     = 2
	MaxUsernameLength     = 50
)

// UntitledScheduleName replaces an empty schedule name
const UntitledScheduleName = "(untitled)"

// Request types

type LoginRequest struct {
	Username string `json:"username"`
}

// Candidates is newline separated; blank lines are dropped
type CreateScheduleRequest struct {
	Name       string `json:"name"`
	Memo       string `json:"memo"`
	Candidates string `json:"candidates"`
}

type UpdateScheduleRequest struct {
	Name       string `json:"name"`
	Memo       string `json:"memo"`
	Candidates string `json:"candidates"`
}

type SetAvailabilityRequest struct {
	Availability AvailabilityCode `json:"availability"`
}

type SetCommentRequest struct {
	Comment string `json:"comment"`
}

// Response types

type LoginResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateScheduleResponse struct {
	ScheduleID string      `json:"schedule_id"`
	Candidates []Candidate `json:"candidates"`
}

type ListSchedulesResponse struct {
	Schedules []ScheduleSummary `json:"schedules"`
}

type ScheduleSummary struct {
	Schedule   Schedule `json:"schedule"`
	UpdatedAgo string   `json:"updated_ago"`
}

type ScheduleEditResponse struct {
	Schedule   Schedule    `json:"schedule"`
	Candidates []Candidate `json:"candidates"`
}

type DeleteScheduleResponse struct {
	Status     string `json:"status"`
	ScheduleID string `json:"schedule_id"`
}

type SetAvailabilityResponse struct {
	Status       string           `json:"status"`
	Availability AvailabilityCode `json:"availability"`
}

type SetCommentResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// ScheduleViewResponse is the attendance page payload. Availabilities is
// complete over Users x Candidates; Rows is the same data in display order.
type ScheduleViewResponse struct {
	Schedule       Schedule                             `json:"schedule"`
	UpdatedAgo     string                               `json:"updated_ago"`
	IsOwner        bool                                 `json:"is_owner"`
	Candidates     []Candidate                          `json:"candidates"`
	Users          []ScheduleUser                       `json:"users"`
	Availabilities map[int64]map[int64]AvailabilityCode `json:"availabilities"`
	Comments       map[int64]string                     `json:"comments"`
	Rows           []AttendanceRow                      `json:"rows"`
}

// Domain types

type User struct {
	ID       int64  `json:"user_id"`
	Username string `json:"username"`
}

type Schedule struct {
	ID        string    `json:"schedule_id"`
	Name      string    `json:"name"`
	Memo      string    `json:"memo"`
	CreatedBy int64     `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwner reports whether userID created the schedule
func (s Schedule) IsOwner(userID int64) bool {
	return s.CreatedBy == userID
}

type Candidate struct {
	ID         int64  `json:"candidate_id"`
	ScheduleID string `json:"schedule_id"`
	Name       string `json:"name"`
}

// Availability is one stored response, joined with the responder's username
type Availability struct {
	CandidateID  int64            `json:"candidate_id"`
	UserID       int64            `json:"user_id"`
	Username     string           `json:"username"`
	ScheduleID   string           `json:"schedule_id"`
	Availability AvailabilityCode `json:"availability"`
}

type Comment struct {
	ScheduleID string `json:"schedule_id"`
	UserID     int64  `json:"user_id"`
	Comment    string `json:"comment"`
}

// ScheduleUser is a row header of the attendance matrix
type ScheduleUser struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsSelf   bool   `json:"is_self"`
}

type AttendanceCell struct {
	CandidateID  int64            `json:"candidate_id"`
	Availability AvailabilityCode `json:"availability"`
}

type AttendanceRow struct {
	User    ScheduleUser     `json:"user"`
	Cells   []AttendanceCell `json:"cells"`
	Comment string           `json:"comment"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
