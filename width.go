package shellfie

import "github.com/unilibs/uniwidth"

// CellWidth returns the number of character cells text advances the layout
// cursor by. Every rune takes at least one cell, including tabs, control
// characters and combining marks; wide characters (CJK, emoji) take two.
func CellWidth(text string) int {
	n := 0
	for _, r := range text {
		n += max(1, uniwidth.RuneWidth(r))
	}
	return n
}
