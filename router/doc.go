// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Schedule API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Public:

	GET  /health - Liveness
	GET  /       - Banner
	POST /login  - Get a session token

Schedules (requires Authorization: Bearer <token>):

	GET  /schedules             - Own schedules
	POST /schedules             - Create schedule
	GET  /schedules/{id}        - Attendance view
	GET  /schedules/{id}/edit   - Edit form data (owner)
	POST /schedules/{id}/update - Rename, re-memo, append candidates (owner)
	POST /schedules/{id}/delete - Delete schedule (owner)

Answers (requires Authorization, {userId} must be the session user):

	POST /schedules/{id}/users/{userId}/candidates/{candidateId} - Set availability
	POST /schedules/{id}/users/{userId}/comments                 - Set comment

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(db, cfg)
	scheduleHandler := handlers.NewScheduleHandler(db, cfg)
	availabilityHandler := handlers.NewAvailabilityHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)

All handlers receive the database connection and configuration. Every
route except health, root and login is wrapped in middleware.RequireUser.
*/
package router
