package shellfie

import (
	"errors"
	"strings"
	"testing"
)

func staticConfig() *Config {
	cfg := DefaultConfig()
	cfg.Lines = []Line{
		CommandLine{Prompt: "$ ", Command: "echo hi"},
		OutputLine{Text: "hi"},
	}
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != "macos" || cfg.Title != "Terminal" {
		t.Errorf("theme/title = %q/%q", cfg.Theme, cfg.Title)
	}
	if cfg.Window.Width != 600 || cfg.Window.Padding != 20 || cfg.Window.Opacity != 1 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Font.Size != 14 || cfg.Font.LineHeight != 1.4 || cfg.Font.Family != "Monaco" {
		t.Errorf("font = %+v", cfg.Font)
	}
	if cfg.Animation.TypingSpeed != 80 || cfg.Animation.CommandDelay != 500 || cfg.Animation.Loop {
		t.Errorf("animation = %+v", cfg.Animation)
	}
}

func TestConfig_Animated(t *testing.T) {
	cfg := staticConfig()
	if cfg.Animated() || !cfg.Static() {
		t.Error("config with lines should be static")
	}
	cfg.Lines = nil
	cfg.Frames = []Frame{{Type: "ls"}}
	if !cfg.Animated() || cfg.Static() {
		t.Error("config with frames should be animated")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown theme", func(c *Config) { c.Theme = "solarized" }, "invalid theme 'solarized'"},
		{"base theme", func(c *Config) { c.Theme = "base" }, "Available themes: macos, ubuntu, windows"},
		{"neither", func(c *Config) { c.Lines = nil }, "either 'lines' or 'frames'"},
		{"both", func(c *Config) { c.Frames = []Frame{{Type: "x"}} }, "both 'lines' and 'frames'"},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "width must be positive"},
		{"negative padding", func(c *Config) { c.Window.Padding = -1 }, "padding"},
		{"opacity", func(c *Config) { c.Window.Opacity = 1.5 }, "opacity"},
		{"font size", func(c *Config) { c.Font.Size = -2 }, "font size"},
		{"line height", func(c *Config) { c.Font.LineHeight = -1 }, "line_height"},
		{"typing speed", func(c *Config) { c.Animation.TypingSpeed = -1 }, "typing_speed"},
		{"nil line", func(c *Config) { c.Lines = append(c.Lines, nil) }, "line 3"},
		{"frame delay", func(c *Config) {
			c.Lines = nil
			c.Frames = []Frame{{Type: "ls"}, {Delay: -5}}
		}, "frame 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := staticConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSub == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.errSub)
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.errSub)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error kind = %v, want validation", KindOf(err))
			}
		})
	}
}

func TestConfig_ValidateListsThemes(t *testing.T) {
	cfg := staticConfig()
	cfg.Theme = "nope"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "macos, ubuntu, windows") {
		t.Errorf("Validate() = %v, want the available themes listed", err)
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := staticConfig()
	c := cfg.Clone()
	c.Lines[0] = OutputLine{Text: "changed"}
	c.Title = "other"

	if _, ok := cfg.Lines[0].(CommandLine); !ok {
		t.Error("Clone shares the Lines slice")
	}
	if cfg.Title != "Terminal" {
		t.Error("Clone shares scalar fields")
	}
}

func TestConfig_FontFallsBackToTheme(t *testing.T) {
	cfg := staticConfig()
	cfg.Font = FontSpec{}
	theme, _ := ThemeByName("windows")

	f := cfg.font(theme)
	if f != theme.Font {
		t.Errorf("font = %+v, want theme font %+v", f, theme.Font)
	}

	cfg.Font.Size = 20
	if got := cfg.font(theme); got.Size != 20 || got.Family != "Cascadia Mono" {
		t.Errorf("partial font = %+v", got)
	}
}
