// ABOUTME: Rune-safe truncation for notification descriptions
// ABOUTME: Caps text at a maximum length with a trailing ellipsis marker
package watch

// maxDescriptionLen is the longest description a notification carries.
const maxDescriptionLen = 2048

// Truncate returns s unchanged when it fits in max runes; otherwise a string
// of exactly max runes ending in "...".
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
