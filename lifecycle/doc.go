// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle derives a question's phase from its configuration.

The state machine is one-directional:

	open -> awaiting_resolution -> resolved

A question is awaiting_resolution when either configured limit has been
reached: the duration window has elapsed, or the vote cap has been hit.
A question with neither limit configured never auto-expires and can only
leave open via resolution. A resolution record, once present, makes the
phase resolved regardless of time or vote count.

Evaluate is pure and never fails; every surface that needs the phase calls
it with an explicit clock value, which keeps the result reproducible and
testable.
*/
package lifecycle
