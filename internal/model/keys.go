package model

import (
	"regexp"
	"strings"
)

var (
	unsafeKeyChars = regexp.MustCompile(`[^a-z0-9_.]`)
	// KeyPattern matches every non-empty derived key.
	KeyPattern = regexp.MustCompile(`^[a-z0-9_.]+$`)
)

// DeriveKey turns a human-entered title into a property key: trimmed,
// lowercased, spaces replaced with underscores and every character outside
// [a-z0-9_.] dropped. The result may be empty.
func DeriveKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	key = strings.ReplaceAll(key, " ", "_")
	return unsafeKeyChars.ReplaceAllString(key, "")
}
