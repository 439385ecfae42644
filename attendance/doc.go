// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package attendance builds the attendance matrix shown on a schedule page.

# Building a View

Build takes the schedule's candidates, every stored availability record,
the viewer and the comments, and returns a View:

	view := attendance.Build(candidates, availabilities, viewer, comments)

The View holds three lookups:

  - Availabilities: user_id -> candidate_id -> code
  - Users: viewer first, then responders in read order
  - Comments: user_id -> comment

Availabilities is complete: every user in Users has an entry for every
candidate. Cells without a stored record hold AvailabilityAbsent (0), so an
explicit "absent" and "never answered" look the same.

# Ordering

Candidates must arrive sorted by ID and availabilities by username then
candidate ID. The store queries return them that way; SortResponses does the
same for callers that build records by hand.

# Rows

View.Rows flattens the lookups into display order for rendering.

Build does no I/O and keeps no state, so concurrent requests can call it
freely.
*/
package attendance
