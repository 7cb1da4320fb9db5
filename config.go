package shellfie

import (
	"strings"
)

// Line is one entry of a static session: a [CommandLine] or an [OutputLine].
// The set is closed; no other type implements it.
type Line interface {
	isLine()
}

// CommandLine is a prompt followed by a command, rendered on one row.
type CommandLine struct {
	Prompt  string
	Command string
}

// OutputLine is program output. Embedded newlines produce one row each.
type OutputLine struct {
	Text string
}

func (CommandLine) isLine() {}
func (OutputLine) isLine()  {}

// Frame is one step of an animated session.
//
// Type is typed character by character; Output appears at once. A frame with
// neither and a positive Delay is a pause.
type Frame struct {
	Prompt string
	Type   string
	Output string
	// Delay in milliseconds. For output frames zero means the default.
	Delay int
	// Instant shows Type fully formed instead of typing it.
	Instant bool
}

// WindowSpec controls the panel size.
type WindowSpec struct {
	Width   int
	Padding int
	Opacity float64
}

// FontSpec describes the text face. Zero fields fall back to the theme's font.
type FontSpec struct {
	Family     string
	Size       int
	LineHeight float64
}

// AnimationSpec holds typing animation tunables (milliseconds).
type AnimationSpec struct {
	TypingSpeed  int
	CommandDelay int
	CursorBlink  bool
	Loop         bool
}

// Config describes a terminal session to render.
// Exactly one of Lines and Frames is populated.
type Config struct {
	Theme     string
	Title     string
	Window    WindowSpec
	Font      FontSpec
	Animation AnimationSpec
	Headless  bool
	Lines     []Line
	Frames    []Frame
}

const (
	DefaultTitle        = "Terminal"
	DefaultWidth        = 600
	DefaultPadding      = 20
	DefaultFontFamily   = "Monaco"
	DefaultFontSize     = 14
	DefaultLineHeight   = 1.4
	DefaultTypingSpeed  = 80
	DefaultCommandDelay = 500
	DefaultOutputDelay  = 100
)

// DefaultConfig returns a config with every schema default applied and no content.
func DefaultConfig() *Config {
	return &Config{
		Theme: DefaultThemeName,
		Title: DefaultTitle,
		Window: WindowSpec{
			Width:   DefaultWidth,
			Padding: DefaultPadding,
			Opacity: 1.0,
		},
		Font: FontSpec{
			Family:     DefaultFontFamily,
			Size:       DefaultFontSize,
			LineHeight: DefaultLineHeight,
		},
		Animation: AnimationSpec{
			TypingSpeed:  DefaultTypingSpeed,
			CommandDelay: DefaultCommandDelay,
			CursorBlink:  true,
		},
	}
}

// Animated reports whether the config describes an animation.
func (c *Config) Animated() bool {
	return len(c.Frames) > 0
}

// Static reports whether the config describes a single image.
func (c *Config) Static() bool {
	return !c.Animated()
}

// Validate checks the config for structural and semantic problems.
func (c *Config) Validate() error {
	if _, ok := ThemeByName(c.Theme); !ok {
		return validationError("invalid theme '%s'\n  → Available themes: %s",
			c.Theme, strings.Join(ThemeNames(), ", "))
	}

	switch {
	case len(c.Lines) == 0 && len(c.Frames) == 0:
		return validationError("configuration must have either 'lines' or 'frames'")
	case len(c.Lines) > 0 && len(c.Frames) > 0:
		return validationError("configuration cannot have both 'lines' and 'frames'")
	}

	if c.Window.Width <= 0 {
		return validationError("window width must be positive, got %d", c.Window.Width)
	}
	if c.Window.Padding < 0 {
		return validationError("window padding must not be negative, got %d", c.Window.Padding)
	}
	if c.Window.Opacity < 0 || c.Window.Opacity > 1 {
		return validationError("window opacity must be between 0 and 1, got %g", c.Window.Opacity)
	}
	if c.Font.Size < 0 {
		return validationError("font size must not be negative, got %d", c.Font.Size)
	}
	if c.Font.LineHeight < 0 {
		return validationError("font line_height must not be negative, got %g", c.Font.LineHeight)
	}
	if c.Animation.TypingSpeed < 0 {
		return validationError("animation typing_speed must not be negative, got %d", c.Animation.TypingSpeed)
	}

	for i, l := range c.Lines {
		if l == nil {
			return validationError("line %d is empty", i+1)
		}
	}
	for i, f := range c.Frames {
		if f.Delay < 0 {
			return validationError("frame %d: delay must not be negative, got %d", i+1, f.Delay)
		}
	}
	return nil
}

// Clone returns a copy of c that shares no slices with it.
func (c *Config) Clone() *Config {
	out := *c
	out.Lines = append([]Line(nil), c.Lines...)
	out.Frames = append([]Frame(nil), c.Frames...)
	return &out
}

// font returns the effective font: config values with zero fields filled from the theme.
func (c *Config) font(theme *Theme) FontSpec {
	f := c.Font
	if f.Family == "" {
		f.Family = theme.Font.Family
	}
	if f.Size == 0 {
		f.Size = theme.Font.Size
	}
	if f.LineHeight == 0 {
		f.LineHeight = theme.Font.LineHeight
	}
	return f
}
