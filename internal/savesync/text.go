package savesync

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// LineCount returns the number of lines in text as an editor counts them:
// an empty text has one line and a trailing newline opens another.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// Offset converts pos to a byte offset in text. Characters count UTF-16 code
// units. Positions past the end of a line or of the text are clamped.
func Offset(text string, pos Position) int {
	if pos.Line < 0 {
		return 0
	}

	offset := 0
	for line := 0; line < pos.Line; line++ {
		i := strings.IndexByte(text[offset:], '\n')
		if i < 0 {
			return len(text)
		}
		offset += i + 1
	}

	end := len(text)
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		end = offset + i
	}

	units := 0
	for offset < end && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[offset:end])
		n := utf16.RuneLen(r)
		if n < 1 {
			n = 1
		}
		units += n
		offset += size
	}
	return offset
}

// ApplyEdit returns text with rng replaced by newText.
func ApplyEdit(text string, rng Range, newText string) string {
	start := Offset(text, rng.Start)
	end := Offset(text, rng.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + newText + text[end:]
}
