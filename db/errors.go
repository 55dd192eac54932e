// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"strings"
)

var (
	// ErrNameTaken: another participant already claimed this display name.
	ErrNameTaken = errors.New("name already taken")

	// ErrConflict: a set-once row (resolution) already exists. Callers
	// re-read and return the existing record instead of failing.
	ErrConflict = errors.New("record already exists")
)

// isUniqueViolation recognizes a uniqueness-constraint failure from either
// backend. lib/pq and modernc.org/sqlite surface these only as message
// text, so this matches the same way the drivers report it.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}
