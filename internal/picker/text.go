package picker

import "unicode/utf8"

const ellipsis = "..."

// truncate shortens text to at most maxWidth runes, ending in an ellipsis
// when anything was cut.
func truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxWidth {
		return text
	}

	// Not enough room for any text next to the ellipsis
	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if maxWidth <= ellipsisLen {
		return ellipsis[:maxWidth]
	}

	runes := []rune(text)
	return string(runes[:maxWidth-ellipsisLen]) + ellipsis
}
