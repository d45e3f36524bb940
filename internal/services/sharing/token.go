package sharing

import (
	"strings"
)

// Token shape: 32 random bytes as lowercase hex
const (
	tokenBytes = 32
	// TokenLength is the textual length of a share token
	TokenLength = tokenBytes * 2
)

// ValidToken reports whether s has the exact shape of a share token:
// 64 hex characters, case-insensitive. Checking this before any lookup
// keeps malformed input away from the store.
func ValidToken(s string) bool {
	if len(s) != TokenLength {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Slugify lowercases s and collapses every run of characters outside
// [a-z0-9] to a single hyphen, for human-readable share URLs
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, c := range strings.ToLower(s) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
