// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Schedule API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Login and session issuance
  - ScheduleHandler: Schedule lifecycle and the attendance view
  - AvailabilityHandler: One cell of the attendance matrix
  - CommentHandler: Per-user schedule comments

Handlers are created via constructor functions that accept *sql.DB and Config:

	scheduleHandler := handlers.NewScheduleHandler(db, cfg)

# Sessions

Every handler except Login expects middleware.RequireUser to have placed
the logged-in user in the request context and answers 401 otherwise.

	POST /login → Login (returns a bearer token)

# Schedules

	GET  /schedules             → ListSchedules (own schedules, newest first)
	POST /schedules             → CreateSchedule
	GET  /schedules/{id}        → GetSchedule (attendance view)
	GET  /schedules/{id}/edit   → GetScheduleEdit (owner only)
	POST /schedules/{id}/update → UpdateSchedule (owner only)
	POST /schedules/{id}/delete → DeleteSchedule (owner only)

Candidates are sent as newline separated text; blank lines are dropped.
Owner-only routes answer 404 to everyone else, the same as for a missing
schedule.

# Attendance View

GetSchedule reads candidates, availabilities and comments and hands them
to attendance.Build:

	view := attendance.Build(candidates, availabilities, viewer, comments)

The viewer always appears first. Cells nobody answered read as absent (0).

# Answers

	POST /schedules/{id}/users/{userId}/candidates/{candidateId} → SetAvailability
	POST /schedules/{id}/users/{userId}/comments                 → SetComment

{userId} must be the logged-in user (403 otherwise). Availability is 0
(absent), 1 (maybe) or 2 (present). Comments are cut to 255 characters.
*/
package handlers
