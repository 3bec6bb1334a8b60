package highlight

import (
	"strings"

	"clipforge/internal/transcript"
)

const (
	// fallbackTitle is used when a group carries no usable text
	fallbackTitle = "Video Highlight"

	titleMaxWords = 8
	titleMaxRunes = 50
)

// TitleFromSegments derives a short human-readable title from a group's
// concatenated text: the first eight words, hard-truncated at fifty
// characters
func TitleFromSegments(group []transcript.Segment) string {
	var parts []string
	for _, seg := range group {
		text := strings.TrimSpace(seg.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}

	fullText := strings.Join(parts, " ")
	if fullText == "" {
		return fallbackTitle
	}

	words := strings.Fields(fullText)
	if len(words) > titleMaxWords {
		words = words[:titleMaxWords]
	}
	title := strings.Join(words, " ")

	if runes := []rune(title); len(runes) > titleMaxRunes {
		title = string(runes[:titleMaxRunes-1]) + "…"
	}

	if title == "" {
		return fallbackTitle
	}
	return title
}
