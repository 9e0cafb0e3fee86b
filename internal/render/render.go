// Package render turns a word-level transcription into confidence-colored
// fragments and plain-text exports. All functions are pure and keep the
// provider's word order.
package render

import (
	"fmt"
	"html"
	"strings"

	"wordtint/internal/stt"
)

// Fragment is one rendered word with its colors.
type Fragment struct {
	Text       string `json:"text"`
	Background RGB    `json:"background"`
	Foreground string `json:"foreground"`
}

// Fragments renders the word list in order. When showConfidence is set, each
// fragment's text carries the numeric score to two decimal places.
func Fragments(words []stt.Word, showConfidence bool) []Fragment {
	fragments := make([]Fragment, 0, len(words))
	for _, w := range words {
		fragments = append(fragments, Fragment{
			Text:       displayText(w, showConfidence),
			Background: Color(w.Confidence),
			Foreground: TextColor(w.Confidence),
		})
	}
	return fragments
}

// HTML renders the fragments as the span markup the page displays. An empty
// word list renders nothing.
func HTML(words []stt.Word, showConfidence bool) string {
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div style="line-height: 2.5;">`)
	for _, w := range words {
		c := Color(w.Confidence)
		fmt.Fprintf(&b,
			`<span style="background-color: rgb(%d, %d, %d); padding: 3px 5px; margin: 2px; border-radius: 3px; color: %s;">%s</span> `,
			c.R, c.G, c.B, TextColor(w.Confidence), html.EscapeString(displayText(w, showConfidence)))
	}
	b.WriteString("</div>")
	return b.String()
}

func displayText(w stt.Word, showConfidence bool) string {
	if showConfidence {
		return fmt.Sprintf("%s (%.2f)", w.Text, w.Confidence)
	}
	return w.Text
}
