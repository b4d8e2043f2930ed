package chat

import "strings"

// deriveTitle keeps short messages verbatim; longer ones are cut to max runes,
// trimmed, and suffixed with "...".
func deriveTitle(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
