// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported DATABASE_TYPE values
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypePgx      = "pgx"
)

// Open connects to the database and verifies the connection.
// dbType selects the driver: sqlite (modernc), postgres (lib/pq) or pgx.
func Open(dbType, url string) (*sql.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one connection avoids SQLITE_BUSY
	// and keeps :memory: databases alive across queries
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func driverName(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite:
		return "sqlite", nil
	case TypePostgres:
		return "postgres", nil
	case TypePgx:
		return "pgx", nil
	}
	return "", fmt.Errorf("unsupported database type %q", dbType)
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	serial := "BIGSERIAL PRIMARY KEY"
	if dbType == TypeSQLite {
		serial = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	_, err := db.Exec(fmt.Sprintf(schema, serial))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// %[1]s is the auto-increment primary key column type of the dialect
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id %[1]s,
    username TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

-- Schedules
CREATE TABLE IF NOT EXISTS schedule (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    memo TEXT NOT NULL DEFAULT '',
    created_by BIGINT NOT NULL REFERENCES app_user(id),
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_schedule_created_by ON schedule(created_by);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id %[1]s,
    schedule_id TEXT NOT NULL REFERENCES schedule(id) ON DELETE CASCADE,
    name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_schedule_id ON candidate(schedule_id);

-- Availabilities
CREATE TABLE IF NOT EXISTS availability (
    candidate_id BIGINT NOT NULL REFERENCES candidate(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES app_user(id),
    schedule_id TEXT NOT NULL REFERENCES schedule(id) ON DELETE CASCADE,
    availability INTEGER NOT NULL DEFAULT 0 CHECK (availability >= 0 AND availability <= 2),
    PRIMARY KEY (candidate_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_availability_schedule_id ON availability(schedule_id);

-- Comments
CREATE TABLE IF NOT EXISTS schedule_comment (
    schedule_id TEXT NOT NULL REFERENCES schedule(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES app_user(id),
    comment TEXT NOT NULL,
    PRIMARY KEY (schedule_id, user_id)
);
`
