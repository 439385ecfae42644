// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-schedule/cliparse"
	"github.com/danielhkuo/quickly-schedule/middleware"
	"github.com/danielhkuo/quickly-schedule/models"
	"github.com/danielhkuo/quickly-schedule/store"
)

type CommentHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	store *store.Store
}

func NewCommentHandler(db *sql.DB, cfg cliparse.Config) *CommentHandler {
	return &CommentHandler{db: db, cfg: cfg, store: store.New(db)}
}

// SetComment handles POST /schedules/{id}/users/{userId}/comments
func (h *CommentHandler) SetComment(w http.ResponseWriter, r *http.Request) {
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

	var req models.SetCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx := r.Context()
	if _, err := h.store.GetSchedule(ctx, scheduleID); err != nil {
		writeStoreError(w, err, "Schedule not found")
		return
	}

	comment := truncateRunes(req.Comment, models.MaxCommentLength)
	err := h.store.UpsertComment(ctx, models.Comment{
		ScheduleID: scheduleID,
		UserID:     viewer.ID,
		Comment:    comment,
	})
	if err != nil {
		slog.Error("failed to store comment", "error", err, "schedule_id", scheduleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save comment")
		return
	}

	slog.Info("comment updated", "schedule_id", scheduleID, "user_id", viewer.ID)

	middleware.JSONResponse(w, http.StatusOK, models.SetCommentResponse{
		Status:  "OK",
		Comment: comment,
	})
}
