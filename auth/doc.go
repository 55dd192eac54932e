// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the key and token primitives the API authenticates
with. There is no account system; identity is capability-shaped.

# Author Keys

Author keys use HMAC-SHA256 to create deterministic, verifiable keys:

	key := auth.GenerateAuthorKey(questionID, salt)
	err := auth.ValidateAuthorKey(questionID, key, salt)

The key is URL-safe base64 without padding. Possession of it is what
authorizes resolving a question and toggling its discussion; it is never
stored server-side.

# Voter Tokens

Voter tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateVoterToken()

A Wayfinder receives one when claiming a display name on a question and
presents it for every vote, reason edit, and discussion post.

# Share Slugs

Share slugs are deterministic base62 identifiers for public question URLs:

	slug := auth.GenerateShareSlug(questionID, salt)

# IP Hashing

For privacy-preserving abuse triage:

	hash := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of an HMAC-SHA256.
*/
package auth
