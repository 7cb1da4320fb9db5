package shellfie

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// NamedColors lists the 16 ANSI palette names in index order:
// standard colors (0-7) followed by their bright variants (8-15).
var NamedColors = [16]ColorRef{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15), 216 color cube (16-231), 24 grayscale (232-255).
// The named entries are only used when quantizing GIF frames; parsed colors 0-15 stay symbolic.
var DefaultPalette = [256]color.RGBA{
	// Standard colors (0-7)
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White

	// Bright colors (8-15)
	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White
}

func init() {
	// Generate 216 color cube (16-231)
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{
					R: uint8(r * 51),
					G: uint8(g * 51),
					B: uint8(b * 51),
					A: 255,
				}
				i++
			}
		}
	}

	// Generate grayscale (232-255)
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{gray, gray, gray, 255}
	}
}

// Color256 resolves an xterm 256-color index. Indices 0-15 return the symbolic
// name so themes can override them; the cube and grayscale ramp return "#rrggbb".
// Out-of-range indices return an unset color.
func Color256(index int) ColorRef {
	switch {
	case index < 0 || index > 255:
		return ""
	case index < 16:
		return NamedColors[index]
	default:
		c := DefaultPalette[index]
		return ColorRef(HexRGB(int(c.R), int(c.G), int(c.B)))
	}
}

// HexRGB formats components as a lowercase "#rrggbb" literal, clamping each to 0-255.
func HexRGB(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Color is a fill color on a draw operation: "#rrggbb" or "#rrggbbaa".
type Color string

// WithAlpha returns c with its alpha channel replaced by a (0 transparent, 1 opaque).
// Colors that are not hex literals are returned unchanged.
func (c Color) WithAlpha(a float64) Color {
	rgba, ok := ParseColor(string(c))
	if !ok {
		return c
	}
	if a >= 1 {
		return Color(HexRGB(int(rgba.R), int(rgba.G), int(rgba.B)))
	}
	if a < 0 {
		a = 0
	}
	return Color(fmt.Sprintf("#%02x%02x%02x%02x", rgba.R, rgba.G, rgba.B, uint8(math.Round(a*255))))
}

// NRGBA converts the color for painting. Unparseable colors become opaque black.
func (c Color) NRGBA() color.NRGBA {
	rgba, ok := ParseColor(string(c))
	if !ok {
		return color.NRGBA{A: 255}
	}
	return rgba
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, bool) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, false
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}
