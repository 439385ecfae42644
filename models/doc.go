// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: username
  - CreateScheduleRequest: name, memo, candidates (newline separated)
  - UpdateScheduleRequest: name, memo, candidates to append
  - SetAvailabilityRequest: availability code
  - SetCommentRequest: comment

# Response Types

Types for JSON responses:

  - LoginResponse: user_id, username, token, expires_at
  - CreateScheduleResponse: schedule_id, candidates
  - ListSchedulesResponse: schedules owned by the viewer
  - ScheduleViewResponse: the attendance matrix for one schedule
  - ScheduleEditResponse: schedule and candidates for the owner
  - ErrorResponse: error, message

# Domain Types

  - User: id and username
  - Schedule: name, memo, owner, last update
  - Candidate: one proposed slot, ordered by id
  - Availability: one stored response joined with the username
  - Comment: one free-text comment per user per schedule
  - ScheduleUser, AttendanceRow, AttendanceCell: matrix presentation

# Constants

Availability codes:

	AvailabilityAbsent  = 0 // also the default for unanswered cells
	AvailabilityMaybe   = 1
	AvailabilityPresent = 2
*/
package models
