package common

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ContainsInsensitive reports whether s contains substr, ignoring case.
func ContainsInsensitive(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Fold normalizes a string for comparison: NFKC normalization followed by
// lowercasing, so visually equivalent Unicode spellings compare equal.
func Fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// SplitEmail splits an address into local part and domain. Addresses
// without an @ keep everything in the local part and get an empty domain.
func SplitEmail(email string) (local, domain string) {
	local, domain, found := strings.Cut(email, "@")
	if !found {
		return email, ""
	}
	return local, domain
}
