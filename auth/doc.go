// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues and validates session tokens.

# Session Tokens

A session token is an HS256 JWT signed with the configured session secret:

	token, expiresAt, err := auth.IssueSessionToken(user, secret, ttl)
	user, err := auth.ParseSessionToken(token, secret)

Claims:

  - sub: the user ID
  - username: the display name at login time
  - iss: "quickly-schedule"
  - iat, exp: issue and expiry times

Tokens are stateless; nothing is stored in the database. Changing the
secret invalidates every outstanding token.

# Errors

ParseSessionToken returns ErrInvalidToken for any malformed, tampered,
expired or foreign token, without saying which. Both functions return
ErrEmptySecret when called without a secret.
*/
package auth
