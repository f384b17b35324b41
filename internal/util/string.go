package util

import "strings"

// TruncateString truncates a string to maxRunes characters (rune-based, not
// byte-based), appending "..." when something was cut.
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// CollapseWhitespace folds runs of whitespace, including newlines, into
// single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
