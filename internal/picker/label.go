package picker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// escapeRE matches terminal escape sequences: CSI (colors, cursor moves),
// OSC terminated by ST or BEL, charset designations and other two-byte escapes.
var escapeRE = regexp.MustCompile(`\x1b(?:` +
	`\[[0-9;?]*[A-Za-z]` +
	`|\].*?(?:\x1b\\|\x07)` +
	`|[()][A-B0-2]` +
	`|[#*+\-./][A-Za-z0-9]` +
	`)`)

// CleanLabel makes arbitrary input safe to draw in a single terminal row:
// escapes are removed, invalid UTF-8 becomes U+FFFD, tabs become spaces and
// remaining control characters are dropped.
func CleanLabel(s string) string {
	s = escapeRE.ReplaceAllString(s, "")
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimRight(s, "\r\n"))
}

// MiddleTruncate shortens s to maxWidth display columns by replacing its
// middle with an ellipsis. Wide runes count as two columns. Below three
// columns the string is cut from the right instead.
func MiddleTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return prefixWithin(s, maxWidth)
	}
	rest := maxWidth - 1
	return prefixWithin(s, (rest+1)/2) + "…" + suffixWithin(s, rest/2)
}

// CenterPad centers s in width columns. Strings wider than width are
// truncated first.
func CenterPad(s string, width int) string {
	s = MiddleTruncate(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

func prefixWithin(s string, width int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > width {
			return s[:i]
		}
		w += rw
	}
	return s
}

func suffixWithin(s string, width int) string {
	runes := []rune(s)
	w, start := 0, len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > width {
			break
		}
		w += rw
		start = i
	}
	return string(runes[start:])
}
