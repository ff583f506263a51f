// Package strings provides small string helpers shared across services
package strings

import std "strings"

// Blank reports whether s is empty or all whitespace
func Blank(s string) bool { return std.TrimSpace(s) == "" }

// BlankToNil returns nil for blank strings, else a pointer to s.
// Useful for outbound payloads where absent beats empty
func BlankToNil(s string) *string {
	if Blank(s) {
		return nil
	}
	return &s
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if Blank(s) {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /leads or /sequences
// ensures a single leading slash and no trailing slash except for the root itself
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Truncate cuts s to at most max runes, appending an ellipsis marker when it
// actually shortened the input. A string of exactly max runes is untouched
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
