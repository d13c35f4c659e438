package util

import "strings"

// OptionalField normalizes a free-text form field for persistence:
// whitespace is trimmed and an empty result becomes nil, so optional
// columns store NULL instead of "".
func OptionalField(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value behind p, or "" for nil. The inverse of
// OptionalField, used when filling form inputs from a record.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
