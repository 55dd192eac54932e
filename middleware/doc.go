// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP plumbing shared by every handler:
request logging, CORS, JSON encode/decode helpers, and client IP
extraction.

KindError is the one place domain error kinds become HTTP statuses:

	NotFound      -> 404
	AlreadyVoted  -> 409
	NotAuthor     -> 403
	InvalidPhase  -> 409
	InvalidOption -> 400
	TooEarly      -> 409
	Forbidden     -> 403
	anything else -> 500 (opaque storage failure, caller may retry)
*/
package middleware
