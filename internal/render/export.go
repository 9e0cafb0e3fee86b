package render

import (
	"fmt"
	"strings"

	"wordtint/internal/stt"
)

// PlainText joins the word texts with single spaces, in original order.
// This is the body of transcript.txt.
func PlainText(words []stt.Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

// DetailedText emits one "<word> (<confidence>)" line per word, in original
// order. This is the body of detailed_transcript.txt.
func DetailedText(words []stt.Word) string {
	lines := make([]string, 0, len(words))
	for _, w := range words {
		lines = append(lines, fmt.Sprintf("%s (%.2f)", w.Text, w.Confidence))
	}
	return strings.Join(lines, "\n")
}
