// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-schedule/cliparse"
	"github.com/danielhkuo/quickly-schedule/middleware"
	"github.com/danielhkuo/quickly-schedule/models"
	"github.com/danielhkuo/quickly-schedule/store"
)

type AvailabilityHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	store *store.Store
}

func NewAvailabilityHandler(db *sql.DB, cfg cliparse.Config) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, cfg: cfg, store: store.New(db)}
}

// SetAvailability handles POST /schedules/{id}/users/{userId}/candidates/{candidateId}
func (h *AvailabilityHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}

	scheduleID, ok := scheduleIDFromPath(w, r)
	if !ok {
		return
	}

	if !pathUserIsViewer(w, r, viewer) {
		return
	}

	candidateID, err := strconv.ParseInt(r.PathValue("candidateId"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	var req models.SetAvailabilityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !req.Availability.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "availability must be 0, 1 or 2")
		return
	}

	ctx := r.Context()
	if _, err := h.store.GetCandidate(ctx, scheduleID, candidateID); err != nil {
		writeStoreError(w, err, "Candidate not found")
		return
	}

	err = h.store.UpsertAvailability(ctx, models.Availability{
		CandidateID:  candidateID,
		UserID:       viewer.ID,
		ScheduleID:   scheduleID,
		Availability: req.Availability,
	})
	if err != nil {
		slog.Error("failed to store availability", "error", err, "schedule_id", scheduleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save availability")
		return
	}

	slog.Info("availability updated",
		"schedule_id", scheduleID,
		"candidate_id", candidateID,
		"user_id", viewer.ID,
		"availability", int(req.Availability),
	)

	middleware.JSONResponse(w, http.StatusOK, models.SetAvailabilityResponse{
		Status:       "OK",
		Availability: req.Availability,
	})
}

// pathUserIsViewer answers 403 unless the {userId} path segment names the
// logged-in user
func pathUserIsViewer(w http.ResponseWriter, r *http.Request, viewer models.User) bool {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil || userID != viewer.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Cannot change another user's answers")
		return false
	}
	return true
}
