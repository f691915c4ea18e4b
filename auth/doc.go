// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity tokens and ID generation.

# Identity Tokens

Tokens carry the caller's user id and role, signed with HMAC-SHA256:

	token, err := auth.IssueToken(models.Identity{UserID: "u1", Role: models.RoleAdmin}, secret, 24*time.Hour, time.Now())
	id, err := auth.ParseToken(token, secret, time.Now())

The token is two URL-safe base64 segments (no padding) joined by a dot: the
JSON claims and their signature. Validation needs only the shared secret,
so the login system that issues tokens and this API never share storage.

Errors:

  - ErrInvalidToken: malformed token or claims
  - ErrBadSignature: signature does not match the secret
  - ErrTokenExpired: exp is in the past

# ID Generation

Random hex IDs for records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
