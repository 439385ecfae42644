// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-schedule/models"
)

// ErrNotFound is returned when a schedule or candidate does not exist
var ErrNotFound = errors.New("not found")

// Store runs every query the handlers need. Queries use $n placeholders,
// which all three supported drivers accept.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertUser returns the user with the given username, creating it if needed
func (s *Store) UpsertUser(ctx context.Context, username string) (models.User, error) {
	user := models.User{Username: username}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO app_user (username, created_at)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, time.Now()).Scan(&user.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

// GetSchedule returns ErrNotFound if id does not exist
func (s *Store) GetSchedule(ctx context.Context, id string) (models.Schedule, error) {
	var sch models.Schedule
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, memo, created_by, updated_at
		FROM schedule
		WHERE id = $1
	`, id).Scan(&sch.ID, &sch.Name, &sch.Memo, &sch.CreatedBy, &sch.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Schedule{}, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Schedule{}, fmt.Errorf("failed to query schedule: %w", err)
	}
	return sch, nil
}

// ListSchedulesByOwner returns the user's schedules, most recently updated first
func (s *Store) ListSchedulesByOwner(ctx context.Context, userID int64) ([]models.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, memo, created_by, updated_at
		FROM schedule
		WHERE created_by = $1
		ORDER BY updated_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		var sch models.Schedule
		if err := rows.Scan(&sch.ID, &sch.Name, &sch.Memo, &sch.CreatedBy, &sch.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, sch)
	}
	return schedules, rows.Err()
}

// ListCandidates returns the schedule's candidates ordered by ID ascending
func (s *Store) ListCandidates(ctx context.Context, scheduleID string) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, schedule_id, name
		FROM candidate
		WHERE schedule_id = $1
		ORDER BY id ASC
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ScheduleID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// GetCandidate returns ErrNotFound unless the candidate belongs to the schedule
func (s *Store) GetCandidate(ctx context.Context, scheduleID string, candidateID int64) (models.Candidate, error) {
	var c models.Candidate
	err := s.db.QueryRowContext(ctx, `
		SELECT id, schedule_id, name
		FROM candidate
		WHERE id = $1 AND schedule_id = $2
	`, candidateID, scheduleID).Scan(&c.ID, &c.ScheduleID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, fmt.Errorf("candidate %d: %w", candidateID, ErrNotFound)
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	return c, nil
}

// ListAvailabilities returns every stored availability of the schedule,
// ordered by username then candidate ID
func (s *Store) ListAvailabilities(ctx context.Context, scheduleID string) ([]models.Availability, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.candidate_id, a.user_id, u.username, a.schedule_id, a.availability
		FROM availability a
		JOIN app_user u ON u.id = a.user_id
		WHERE a.schedule_id = $1
		ORDER BY u.username ASC, a.candidate_id ASC
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query availabilities: %w", err)
	}
	defer rows.Close()

	availabilities := []models.Availability{}
	for rows.Next() {
		var a models.Availability
		if err := rows.Scan(&a.CandidateID, &a.UserID, &a.Username, &a.ScheduleID, &a.Availability); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		availabilities = append(availabilities, a)
	}
	return availabilities, rows.Err()
}

// ListComments returns the schedule's comments in no particular order
func (s *Store) ListComments(ctx context.Context, scheduleID string) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT schedule_id, user_id, comment
		FROM schedule_comment
		WHERE schedule_id = $1
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ScheduleID, &c.UserID, &c.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateSchedule inserts the schedule and its candidates in one transaction.
// Candidate IDs are assigned in the order of candidateNames.
func (s *Store) CreateSchedule(ctx context.Context, sch models.Schedule, candidateNames []string) ([]models.Candidate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO schedule (id, name, memo, created_by, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sch.ID, sch.Name, sch.Memo, sch.CreatedBy, sch.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert schedule: %w", err)
	}

	candidates, err := insertCandidates(ctx, tx, sch.ID, candidateNames)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return candidates, nil
}

// UpdateSchedule rewrites name, memo and updated_at and appends new candidates
func (s *Store) UpdateSchedule(ctx context.Context, sch models.Schedule, newCandidateNames []string) ([]models.Candidate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE schedule
		SET name = $1, memo = $2, updated_at = $3
		WHERE id = $4
	`, sch.Name, sch.Memo, sch.UpdatedAt, sch.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("schedule %s: %w", sch.ID, ErrNotFound)
	}

	candidates, err := insertCandidates(ctx, tx, sch.ID, newCandidateNames)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return candidates, nil
}

// DeleteSchedule removes the schedule with its availabilities, candidates
// and comments
func (s *Store) DeleteSchedule(ctx context.Context, scheduleID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first; SQLite does not enforce ON DELETE CASCADE by default
	for _, q := range []string{
		`DELETE FROM availability WHERE schedule_id = $1`,
		`DELETE FROM candidate WHERE schedule_id = $1`,
		`DELETE FROM schedule_comment WHERE schedule_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, q, scheduleID); err != nil {
			return fmt.Errorf("failed to delete schedule contents: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM schedule WHERE id = $1`, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("schedule %s: %w", scheduleID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpsertAvailability stores a code for (candidate, user), replacing any previous one
func (s *Store) UpsertAvailability(ctx context.Context, a models.Availability) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO availability (candidate_id, user_id, schedule_id, availability)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (candidate_id, user_id) DO UPDATE SET availability = EXCLUDED.availability
	`, a.CandidateID, a.UserID, a.ScheduleID, int(a.Availability))
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return nil
}

// UpsertComment stores the user's comment on a schedule, replacing any previous one
func (s *Store) UpsertComment(ctx context.Context, c models.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_comment (schedule_id, user_id, comment)
		VALUES ($1, $2, $3)
		ON CONFLICT (schedule_id, user_id) DO UPDATE SET comment = EXCLUDED.comment
	`, c.ScheduleID, c.UserID, c.Comment)
	if err != nil {
		return fmt.Errorf("failed to upsert comment: %w", err)
	}
	return nil
}

func insertCandidates(ctx context.Context, tx *sql.Tx, scheduleID string, names []string) ([]models.Candidate, error) {
	candidates := make([]models.Candidate, 0, len(names))
	for _, name := range names {
		c := models.Candidate{ScheduleID: scheduleID, Name: name}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO candidate (schedule_id, name)
			VALUES ($1, $2)
			RETURNING id
		`, scheduleID, name).Scan(&c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}
