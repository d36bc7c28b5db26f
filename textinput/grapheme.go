package textinput

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// dropLastGrapheme removes the final user-perceived character from text.
func dropLastGrapheme(text string) string {
	if text == "" {
		return text
	}
	last := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		last, _ = g.Positions()
	}
	return text[:last]
}

// graphemeCount returns the number of user-perceived characters in text.
func graphemeCount(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// truncateGraphemes keeps at most n grapheme clusters of text.
func truncateGraphemes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		count++
		if count == n {
			_, end := g.Positions()
			return text[:end]
		}
	}
	return text
}

// printable keeps the runes of s that can be typed into a single-line input.
func printable(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsPrint(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
