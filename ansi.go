package shellfie

import (
	"strconv"
	"strings"
)

// ColorRef names a color the way the parser saw it: empty for "unset", a
// palette name such as "red" or "bright_black", or a lowercase "#rrggbb" literal.
// Names are resolved against a [Theme] at layout time so themes can override them.
type ColorRef string

// IsHex reports whether the reference is a "#..." literal rather than a palette name.
func (c ColorRef) IsHex() bool {
	return strings.HasPrefix(string(c), "#")
}

// Style is the SGR state in effect for a run of text.
// The zero value is the default style (no colors, no attributes).
type Style struct {
	Foreground ColorRef
	Background ColorRef
	Bold       bool
	Italic     bool
	Underline  bool
}

// Segment is a maximal run of text sharing one [Style].
type Segment struct {
	Text string
	Style
}

const (
	escByte = 0x1b
	csiByte = '['
	sgrByte = 'm'
)

// Parse splits text into styled segments, starting from the default style.
// Each call is independent: no style survives between calls.
func Parse(text string) []Segment {
	segments, _ := ParseFrom(Style{}, text)
	return segments
}

// ParseFrom splits text into styled segments starting from the given style and
// returns the style in effect at the end of the input.
//
// Only "ESC [ <digits and semicolons> m" sequences are interpreted; every other
// byte, including other escape sequences, is kept as literal text.
func ParseFrom(style Style, text string) ([]Segment, Style) {
	var segments []Segment
	var run strings.Builder

	flush := func() {
		if run.Len() == 0 {
			return
		}
		segments = append(segments, Segment{Text: run.String(), Style: style})
		run.Reset()
	}

	for i := 0; i < len(text); {
		if params, end, ok := scanSGR(text, i); ok {
			flush()
			style = applySGR(style, params)
			i = end
			continue
		}
		run.WriteByte(text[i])
		i++
	}
	flush()

	return segments, style
}

// Strip returns text with every SGR sequence removed.
func Strip(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); {
		if _, end, ok := scanSGR(text, i); ok {
			i = end
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

// scanSGR matches an SGR sequence at text[i:]. It returns the raw parameter
// string and the index just past the final 'm'.
func scanSGR(text string, i int) (string, int, bool) {
	if text[i] != escByte || i+1 >= len(text) || text[i+1] != csiByte {
		return "", 0, false
	}
	j := i + 2
	for j < len(text) && (text[j] == ';' || (text[j] >= '0' && text[j] <= '9')) {
		j++
	}
	if j >= len(text) || text[j] != sgrByte {
		return "", 0, false
	}
	return text[i+2 : j], j + 1, true
}

// sgrCodes converts "1;;31" into [1 0 31]. Empty fields count as 0 except
// trailing ones, which are dropped. Values too large to represent become -1
// so they fall through as unknown codes.
func sgrCodes(params string) []int {
	fields := strings.Split(params, ";")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}

	codes := make([]int, len(fields))
	for i, f := range fields {
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			n = -1
		}
		codes[i] = n
	}
	return codes
}

func applySGR(style Style, params string) Style {
	if params == "" {
		return Style{}
	}

	codes := sgrCodes(params)
	for i := 0; i < len(codes); i++ {
		code := codes[i]
		switch {
		case code == 0:
			style = Style{}
		case code == 1:
			style.Bold = true
		case code == 3:
			style.Italic = true
		case code == 4:
			style.Underline = true
		case code == 22:
			style.Bold = false
		case code == 23:
			style.Italic = false
		case code == 24:
			style.Underline = false
		case code >= 30 && code <= 37:
			style.Foreground = NamedColors[code-30]
		case code >= 90 && code <= 97:
			style.Foreground = NamedColors[code-90+8]
		case code == 38:
			var c ColorRef
			var ok bool
			if i, c, ok = extendedColor(codes, i); ok {
				style.Foreground = c
			}
		case code == 39:
			style.Foreground = ""
		case code >= 40 && code <= 47:
			style.Background = NamedColors[code-40]
		case code >= 100 && code <= 107:
			style.Background = NamedColors[code-100+8]
		case code == 48:
			var c ColorRef
			var ok bool
			if i, c, ok = extendedColor(codes, i); ok {
				style.Background = c
			}
		case code == 49:
			style.Background = ""
		}
	}
	return style
}

// extendedColor decodes the parameters following a 38 or 48 at codes[i].
// It returns the index of the last consumed parameter, the color, and whether
// the color should be assigned. Truncated sequences assign an unset color; an
// unknown selector is a no-op that consumes only the 38/48 itself.
func extendedColor(codes []int, i int) (int, ColorRef, bool) {
	if i+1 >= len(codes) {
		return i, "", true
	}

	switch codes[i+1] {
	case 5:
		if i+2 >= len(codes) {
			return len(codes) - 1, "", true
		}
		return i + 2, Color256(codes[i+2]), true
	case 2:
		if i+4 >= len(codes) {
			return len(codes) - 1, "", true
		}
		return i + 4, ColorRef(HexRGB(codes[i+2], codes[i+3], codes[i+4])), true
	default:
		return i, "", false
	}
}
