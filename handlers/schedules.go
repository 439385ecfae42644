// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-schedule/attendance"
	"github.com/danielhkuo/quickly-schedule/cliparse"
	"github.com/danielhkuo/quickly-schedule/middleware"
	"github.com/danielhkuo/quickly-schedule/models"
	"github.com/danielhkuo/quickly-schedule/store"
)

const notFoundOrForbidden = "Schedule not found or you are not its owner"

type ScheduleHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	store *store.Store
}

func NewScheduleHandler(db *sql.DB, cfg cliparse.Config) *ScheduleHandler {
	return &ScheduleHandler{db: db, cfg: cfg, store: store.New(db)}
}

// ListSchedules handles GET /schedules
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}

	schedules, err := h.store.ListSchedulesByOwner(r.Context(), viewer.ID)
	if err != nil {
		writeStoreError(w, err, "Schedules not found")
		return
	}

	summaries := make([]models.ScheduleSummary, 0, len(schedules))
	for _, sch := range schedules {
		summaries = append(summaries, models.ScheduleSummary{
			Schedule:   sch,
			UpdatedAgo: humanize.Time(sch.UpdatedAt),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListSchedulesResponse{
		Schedules: summaries,
	})
}

// CreateSchedule handles POST /schedules
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}

	var req models.CreateScheduleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sch := models.Schedule{
		ID:        uuid.NewString(),
		Name:      normalizeScheduleName(req.Name),
		Memo:      req.Memo,
		CreatedBy: viewer.ID,
		UpdatedAt: time.Now(),
	}

	candidates, err := h.store.CreateSchedule(r.Context(), sch, parseCandidateNames(req.Candidates))
	if err != nil {
		slog.Error("failed to create schedule", "error", err, "user_id", viewer.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create schedule")
		return
	}

	slog.Info("schedule created", "schedule_id", sch.ID, "user_id", viewer.ID, "candidates", len(candidates))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateScheduleResponse{
		ScheduleID: sch.ID,
		Candidates: candidates,
	})
}

// GetSchedule handles GET /schedules/{id}
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}

	scheduleID, ok := scheduleIDFromPath(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	sch, err := h.store.GetSchedule(ctx, scheduleID)
	if err != nil {
		writeStoreError(w, err, "Schedule not found")
		return
	}

	// Three independent reads; a write landing in between is tolerated
	candidates, err := h.store.ListCandidates(ctx, scheduleID)
	if err != nil {
		writeStoreError(w, err, "Schedule not found")
		return
	}
	availabilities, err := h.store.ListAvailabilities(ctx, scheduleID)
	if err != nil {
		writeStoreError(w, err, "Schedule not found")
		return
	}
	comments, err := h.store.ListComments(ctx, scheduleID)
	if err != nil {
		writeStoreError(w, err, "Schedule not found")
		return
	}

	view := attendance.Build(candidates, availabilities, viewer, comments)

	middleware.JSONResponse(w, http.StatusOK, models.ScheduleViewResponse{
		Schedule:       sch,
		UpdatedAgo:     humanize.Time(sch.UpdatedAt),
		IsOwner:        sch.IsOwner(viewer.ID),
		Candidates:     candidates,
		Users:          view.Users,
		Availabilities: view.Availabilities,
		Comments:       view.Comments,
		Rows:           view.Rows(),
	})
}

// GetScheduleEdit handles GET /schedules/{id}/edit
func (h *ScheduleHandler) GetScheduleEdit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}

	sch, ok := h.ownedSchedule(w, r, viewer)
	if !ok {
		return
	}

	candidates, err := h.store.ListCandidates(r.Context(), sch.ID)
	if err != nil {
		writeStoreError(w, err, notFoundOrForbidden)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ScheduleEditResponse{
		Schedule:   sch,
		Candidates: candidates,
	})
}

// UpdateSchedule handles POST /schedules/{id}/update
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}

	sch, ok := h.ownedSchedule(w, r, viewer)
	if !ok {
		return
	}

	var req models.UpdateScheduleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sch.Name = normalizeScheduleName(req.Name)
	sch.Memo = req.Memo
	sch.UpdatedAt = time.Now()

	ctx := r.Context()
	added, err := h.store.UpdateSchedule(ctx, sch, parseCandidateNames(req.Candidates))
	if err != nil {
		writeStoreError(w, err, notFoundOrForbidden)
		return
	}

	candidates, err := h.store.ListCandidates(ctx, sch.ID)
	if err != nil {
		writeStoreError(w, err, notFoundOrForbidden)
		return
	}

	slog.Info("schedule updated", "schedule_id", sch.ID, "added_candidates", len(added))

	middleware.JSONResponse(w, http.StatusOK, models.ScheduleEditResponse{
		Schedule:   sch,
		Candidates: candidates,
	})
}

// DeleteSchedule handles POST /schedules/{id}/delete
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}

	sch, ok := h.ownedSchedule(w, r, viewer)
	if !ok {
		return
	}

	if err := h.store.DeleteSchedule(r.Context(), sch.ID); err != nil {
		writeStoreError(w, err, notFoundOrForbidden)
		return
	}

	slog.Info("schedule deleted", "schedule_id", sch.ID, "user_id", viewer.ID)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteScheduleResponse{
		Status:     "deleted",
		ScheduleID: sch.ID,
	})
}

// ownedSchedule loads the schedule named in the path. A schedule owned by
// someone else gets the same 404 as a missing one.
func (h *ScheduleHandler) ownedSchedule(w http.ResponseWriter, r *http.Request, viewer models.User) (models.Schedule, bool) {
	scheduleID, ok := scheduleIDFromPath(w, r)
	if !ok {
		return models.Schedule{}, false
	}

	sch, err := h.store.GetSchedule(r.Context(), scheduleID)
	if err != nil {
		writeStoreError(w, err, notFoundOrForbidden)
		return models.Schedule{}, false
	}

	if !sch.IsOwner(viewer.ID) {
		middleware.ErrorResponse(w, http.StatusNotFound, notFoundOrForbidden)
		return models.Schedule{}, false
	}

	return sch, true
}

// scheduleIDFromPath answers 404 for IDs that are not UUIDs; no such
// schedule can exist
func scheduleIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	scheduleID := r.PathValue("id")
	if _, err := uuid.Parse(scheduleID); err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Schedule not found")
		return "", false
	}
	return scheduleID, true
}

// normalizeScheduleName truncates to MaxScheduleNameLength runes and falls
// back to UntitledScheduleName when nothing is left
func normalizeScheduleName(name string) string {
	name = strings.TrimSpace(name)
	name = truncateRunes(name, models.MaxScheduleNameLength)
	if name == "" {
		return models.UntitledScheduleName
	}
	return name
}

// parseCandidateNames splits newline separated text into candidate names,
// trimming each line and dropping blank ones
func parseCandidateNames(text string) []string {
	names := []string{}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
