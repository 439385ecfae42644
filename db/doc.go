// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open picks the driver from the configured database type and pings it:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types:

  - sqlite: modernc.org/sqlite (default, pure Go)
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The only dialect difference is the auto-increment key of app_user and
candidate.

# Tables

  - app_user: id, unique username
  - schedule: name, memo, owner, updated_at
  - candidate: proposed slots, id order is display order
  - availability: one code per (candidate, user)
  - schedule_comment: one comment per (schedule, user)

# Relationships

	app_user 1──* schedule (created_by)
	schedule 1──* candidate
	schedule 1──* availability
	candidate 1──* availability
	schedule 1──* schedule_comment
*/
package db
