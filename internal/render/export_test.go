package render

import (
	"strings"
	"testing"

	"wordtint/internal/stt"
)

func sampleWords() []stt.Word {
	return []stt.Word{
		{Text: "hello", Confidence: 0.92},
		{Text: "world", Confidence: 0.31},
	}
}

func TestPlainText(t *testing.T) {
	if got := PlainText(sampleWords()); got != "hello world" {
		t.Errorf("PlainText = %q, want %q", got, "hello world")
	}
}

func TestPlainTextRoundTrip(t *testing.T) {
	words := []stt.Word{
		{Text: "the"}, {Text: "quick"}, {Text: "brown"}, {Text: "fox"},
	}
	plain := PlainText(words)
	parts := strings.Split(plain, " ")
	if len(parts) != len(words) {
		t.Fatalf("split yields %d parts, want %d", len(parts), len(words))
	}
	for i, p := range parts {
		if p != words[i].Text {
			t.Errorf("part %d = %q, want %q", i, p, words[i].Text)
		}
	}
}

func TestPlainTextKeepsOrder(t *testing.T) {
	// Low-confidence words must not be moved or dropped.
	words := []stt.Word{
		{Text: "z", Confidence: 0.01},
		{Text: "a", Confidence: 0.99},
		{Text: "m", Confidence: 0.5},
	}
	if got := PlainText(words); got != "z a m" {
		t.Errorf("PlainText = %q, want %q", got, "z a m")
	}
}

func TestDetailedText(t *testing.T) {
	want := "hello (0.92)\nworld (0.31)"
	if got := DetailedText(sampleWords()); got != want {
		t.Errorf("DetailedText = %q, want %q", got, want)
	}
}

func TestDetailedTextLineCount(t *testing.T) {
	words := []stt.Word{
		{Text: "one", Confidence: 0.1},
		{Text: "two", Confidence: 0.256},
		{Text: "three", Confidence: 1},
	}
	got := DetailedText(words)
	lines := strings.Split(got, "\n")
	if len(lines) != len(words) {
		t.Fatalf("got %d lines, want %d", len(lines), len(words))
	}
	if lines[1] != "two (0.26)" {
		t.Errorf("line 1 = %q, want %q", lines[1], "two (0.26)")
	}
	if lines[2] != "three (1.00)" {
		t.Errorf("line 2 = %q, want %q", lines[2], "three (1.00)")
	}
}

func TestExportsEmpty(t *testing.T) {
	if got := PlainText(nil); got != "" {
		t.Errorf("PlainText(nil) = %q, want empty", got)
	}
	if got := DetailedText(nil); got != "" {
		t.Errorf("DetailedText(nil) = %q, want empty", got)
	}
}
