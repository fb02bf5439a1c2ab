// Package normalize canonicalizes user-supplied field values before they
// are validated or persisted. All store writes go through these helpers so
// that uniqueness checks compare like with like.
package normalize

import "strings"

// Email trims surrounding whitespace and lowercases the address.
// Uniqueness of user emails is checked against this canonical form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace. Case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims surrounding whitespace and collapses interior spaces.
func Phone(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Identity trims surrounding whitespace from a national-ID string.
// Uniqueness of user identities is checked against this canonical form.
func Identity(s string) string {
	return strings.TrimSpace(s)
}

// Code trims surrounding whitespace and uppercases a position code.
func Code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
