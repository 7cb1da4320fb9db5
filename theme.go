package shellfie

import (
	"maps"
	"slices"
)

// ButtonSide is the title-bar edge the window buttons are anchored to.
type ButtonSide string

const (
	ButtonsLeft  ButtonSide = "left"
	ButtonsRight ButtonSide = "right"
)

// Palette keys for the window surfaces. ANSI names come from [NamedColors].
const (
	PaletteBackground = "background"
	PaletteForeground = "foreground"
	PaletteTitleBar   = "title_bar"
	PaletteTitleText  = "title_text"
)

// DefaultThemeName is the variant used when a theme name is unknown.
const DefaultThemeName = "macos"

// Shadow describes the drop shadow a theme's window casts.
type Shadow struct {
	Blur    int
	OffsetX int
	OffsetY int
	Color   Color
}

// Chrome holds window decoration geometry in logical pixels.
type Chrome struct {
	TitleBarHeight int
	ButtonSize     int
	ButtonSpacing  int
	CornerRadius   int
	Shadow         Shadow
}

// Theme is an immutable bundle of palette, window chrome and button styling.
// Variants differ only in data; there is no per-theme behavior.
type Theme struct {
	Name        string
	Description string
	Chrome      Chrome
	Buttons     [3]Color
	ButtonSide  ButtonSide
	Font        FontSpec

	palette map[string]Color
}

// ColorFor resolves a color reference against the theme palette.
// Hex literals pass through unchanged; unset and unknown names fall back to
// the foreground color.
func (t *Theme) ColorFor(ref ColorRef) Color {
	if ref.IsHex() {
		return Color(ref)
	}
	if c, ok := t.palette[string(ref)]; ok {
		return c
	}
	return t.palette[PaletteForeground]
}

// Color returns a palette entry by key (e.g. [PaletteBackground]).
func (t *Theme) Color(key string) Color {
	return t.ColorFor(ColorRef(key))
}

// Palette returns a copy of the theme's named colors.
func (t *Theme) Palette() map[string]Color {
	return maps.Clone(t.palette)
}

// ThemeByName looks up a built-in theme.
func ThemeByName(name string) (*Theme, bool) {
	t, ok := themes[name]
	if !ok {
		return nil, false
	}
	return &t, true
}

// ResolveTheme returns the named theme, or the default theme when the name is
// unknown. Validated configs never take the fallback path.
func ResolveTheme(name string) *Theme {
	if t, ok := ThemeByName(name); ok {
		return t
	}
	t, _ := ThemeByName(DefaultThemeName)
	return t
}

// ThemeNames returns the names of all built-in themes, sorted.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}

var basePalette = map[string]Color{
	PaletteBackground: "#1e1e1e",
	PaletteForeground: "#ffffff",
	PaletteTitleBar:   "#3c3c3c",
	PaletteTitleText:  "#ffffff",
	"black":           "#000000",
	"red":             "#ff5555",
	"green":           "#50fa7b",
	"yellow":          "#f1fa8c",
	"blue":            "#6272a4",
	"magenta":         "#ff79c6",
	"cyan":            "#8be9fd",
	"white":           "#f8f8f2",
	"bright_black":    "#6272a4",
	"bright_red":      "#ff6e6e",
	"bright_green":    "#69ff94",
	"bright_yellow":   "#ffffa5",
	"bright_blue":     "#d6acff",
	"bright_magenta":  "#ff92df",
	"bright_cyan":     "#a4ffff",
	"bright_white":    "#ffffff",
}

// withPalette overlays entries on the base palette.
func withPalette(overrides map[string]Color) map[string]Color {
	p := maps.Clone(basePalette)
	maps.Copy(p, overrides)
	return p
}

var themes = map[string]Theme{
	"macos": {
		Name:        "macos",
		Description: "macOS Terminal style (red/yellow/green buttons, left side)",
		Chrome: Chrome{
			TitleBarHeight: 28,
			ButtonSize:     12,
			ButtonSpacing:  8,
			CornerRadius:   10,
			Shadow:         Shadow{Blur: 50, OffsetY: 25, Color: "#00000066"},
		},
		Buttons:     [3]Color{"#ff5f56", "#ffbd2e", "#27c93f"},
		ButtonSide:  ButtonsLeft,
		Font:        FontSpec{Family: "SF Mono", Size: 14, LineHeight: 1.4},
		palette: withPalette(map[string]Color{
			PaletteBackground: "#1e1e1e",
			PaletteTitleBar:   "#3c3c3c",
			PaletteTitleText:  "#ffffff",
		}),
	},
	"ubuntu": {
		Name:        "ubuntu",
		Description: "Ubuntu Terminal style (buttons on right side)",
		Chrome: Chrome{
			TitleBarHeight: 36,
			ButtonSize:     14,
			ButtonSpacing:  6,
			CornerRadius:   12,
			Shadow:         Shadow{Blur: 30, OffsetY: 15, Color: "#00000059"},
		},
		Buttons:     [3]Color{"#f46067", "#f5bf55", "#5fc454"},
		ButtonSide:  ButtonsRight,
		Font:        FontSpec{Family: "Ubuntu Mono", Size: 14, LineHeight: 1.4},
		palette: withPalette(map[string]Color{
			PaletteBackground: "#300a24",
			PaletteForeground: "#ffffff",
			PaletteTitleBar:   "#2c2c2c",
			PaletteTitleText:  "#ffffff",
			"green":           "#4e9a06",
			"yellow":          "#c4a000",
			"blue":            "#3465a4",
			"magenta":         "#75507b",
			"cyan":            "#06989a",
		}),
	},
	"windows": {
		Name:        "windows",
		Description: "Windows Terminal style (square corners, buttons on right side)",
		Chrome: Chrome{
			TitleBarHeight: 32,
			ButtonSize:     10,
			ButtonSpacing:  0,
			CornerRadius:   0,
			Shadow:         Shadow{Blur: 15, OffsetY: 5, Color: "#00000040"},
		},
		Buttons:     [3]Color{"#ff5f56", "#ffbd2e", "#27c93f"},
		ButtonSide:  ButtonsRight,
		Font:        FontSpec{Family: "Cascadia Mono", Size: 14, LineHeight: 1.3},
		palette: withPalette(map[string]Color{
			PaletteBackground: "#0c0c0c",
			PaletteForeground: "#cccccc",
			PaletteTitleBar:   "#1f1f1f",
			PaletteTitleText:  "#ffffff",
			"black":           "#0c0c0c",
			"red":             "#c50f1f",
			"green":           "#13a10e",
			"yellow":          "#c19c00",
			"blue":            "#0037da",
			"magenta":         "#881798",
			"cyan":            "#3a96dd",
			"white":           "#cccccc",
			"bright_black":    "#767676",
			"bright_red":      "#e74856",
			"bright_green":    "#16c60c",
			"bright_yellow":   "#f9f1a5",
			"bright_blue":     "#3b78ff",
			"bright_magenta":  "#b4009e",
			"bright_cyan":     "#61d6d6",
			"bright_white":    "#f2f2f2",
		}),
	},
}
