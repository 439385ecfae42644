// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store reads and writes schedules, candidates, availabilities,
comments and users.

	s := store.New(conn)
	sch, err := s.GetSchedule(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		// 404
	}

# Ordering Guarantees

The attendance view depends on these:

  - ListCandidates: candidate ID ascending
  - ListAvailabilities: username ascending, then candidate ID ascending
  - ListComments: unspecified
  - ListSchedulesByOwner: updated_at descending

# Writes

CreateSchedule, UpdateSchedule and DeleteSchedule each run in a single
transaction. UpsertAvailability and UpsertComment overwrite the previous
value for the same key, so the last write wins.
*/
package store
