// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Schedule API server.

Quickly Schedule lets a group pick a date: the owner lists candidate dates,
everyone marks each one absent, maybe or present, and the schedule page
shows the full attendance matrix with one comment per participant.

# Starting the Server

The server reads environment variables (optionally from a .env file) or
CLI flags:

	SESSION_SECRET=change-me DATABASE_URL=schedule.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -session-secret change-me

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - SESSION_SECRET (-session-secret): HMAC key for session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - SESSION_TTL (-session-ttl): Session lifetime (default: 168h)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, schedules, availabilities, comments)
  - attendance: Builds the attendance matrix for one viewer
  - store: SQL queries
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - models: Request/response and domain types
  - auth: Session token issuance and validation
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
