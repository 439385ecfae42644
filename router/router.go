// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-schedule/cliparse"
	"github.com/danielhkuo/quickly-schedule/handlers"
	"github.com/danielhkuo/quickly-schedule/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	scheduleHandler := handlers.NewScheduleHandler(db, cfg)
	availabilityHandler := handlers.NewAvailabilityHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)

	// Logged-in routes
	private := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireUser(cfg.SessionSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session
	mux.HandleFunc("POST /login", middleware.WithLogging(userHandler.Login))

	// Schedules
	mux.HandleFunc("GET /schedules", private(scheduleHandler.ListSchedules))
	mux.HandleFunc("POST /schedules", private(scheduleHandler.CreateSchedule))
	mux.HandleFunc("GET /schedules/{id}", private(scheduleHandler.GetSchedule))
	mux.HandleFunc("GET /schedules/{id}/edit", private(scheduleHandler.GetScheduleEdit))
	mux.HandleFunc("POST /schedules/{id}/update", private(scheduleHandler.UpdateSchedule))
	mux.HandleFunc("POST /schedules/{id}/delete", private(scheduleHandler.DeleteSchedule))

	// Answers
	mux.HandleFunc("POST /schedules/{id}/users/{userId}/candidates/{candidateId}", private(availabilityHandler.SetAvailability))
	mux.HandleFunc("POST /schedules/{id}/users/{userId}/comments", private(commentHandler.SetComment))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-schedule API v1"))
	})

	return mux
}
