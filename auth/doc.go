// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key generation and validation.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same election ID and salt always produce the same key. This allows
validation without storing the key anywhere.

The holder of the admin key is the election's administrator; every privileged
call is checked against it. Voter identity, by contrast, is an opaque
verified address supplied with each request - authenticating it is the
deployment's concern, not this package's.

# ID Generation

Random hex IDs for the hosted election:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
