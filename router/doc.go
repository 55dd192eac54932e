// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires URL patterns to handlers using Go 1.22+ method
routing on the standard ServeMux. Author operations are keyed by question
ID plus X-Author-Key; public operations by share slug plus (where needed)
X-Voter-Token.
*/
package router
