package shellfie

import (
	"reflect"
	"testing"
)

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"macos", "ubuntu", "windows"} {
		theme, ok := ThemeByName(name)
		if !ok {
			t.Errorf("ThemeByName(%q) not found", name)
			continue
		}
		if theme.Name != name {
			t.Errorf("ThemeByName(%q).Name = %q", name, theme.Name)
		}
	}
	for _, name := range []string{"solarized", "base"} {
		if _, ok := ThemeByName(name); ok {
			t.Errorf("ThemeByName(%q) should not be found", name)
		}
	}
}

func TestResolveTheme_Fallback(t *testing.T) {
	if got := ResolveTheme("nope").Name; got != DefaultThemeName {
		t.Errorf("ResolveTheme(nope) = %q, want %q", got, DefaultThemeName)
	}
	if got := ResolveTheme("ubuntu").Name; got != "ubuntu" {
		t.Errorf("ResolveTheme(ubuntu) = %q", got)
	}
}

func TestThemeNames(t *testing.T) {
	want := []string{"macos", "ubuntu", "windows"}
	if got := ThemeNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ThemeNames = %v, want %v", got, want)
	}
}

func TestTheme_Chrome(t *testing.T) {
	tests := []struct {
		name   string
		side   ButtonSide
		radius int
		bar    int
	}{
		{"macos", ButtonsLeft, 10, 28},
		{"ubuntu", ButtonsRight, 12, 36},
		{"windows", ButtonsRight, 0, 32},
	}
	for _, tt := range tests {
		theme, _ := ThemeByName(tt.name)
		if theme.ButtonSide != tt.side {
			t.Errorf("%s buttons = %s, want %s", tt.name, theme.ButtonSide, tt.side)
		}
		if theme.Chrome.CornerRadius != tt.radius || theme.Chrome.TitleBarHeight != tt.bar {
			t.Errorf("%s chrome = %+v", tt.name, theme.Chrome)
		}
	}
}

func TestTheme_WindowsButtonColors(t *testing.T) {
	windows, _ := ThemeByName("windows")
	macos, _ := ThemeByName("macos")
	if windows.Buttons != macos.Buttons {
		t.Errorf("windows buttons = %v, want %v", windows.Buttons, macos.Buttons)
	}
}

func TestTheme_ColorFor(t *testing.T) {
	theme, _ := ThemeByName("ubuntu")

	tests := []struct {
		ref  ColorRef
		want Color
	}{
		{"green", "#4e9a06"},           // override
		{"red", "#ff5555"},             // inherited from base
		{"#123456", "#123456"},         // literal passes through
		{"", "#ffffff"},                // unset is the foreground
		{"not_a_color", "#ffffff"},     // unknown is the foreground
		{PaletteBackground, "#300a24"}, // surface key
	}
	for _, tt := range tests {
		if got := theme.ColorFor(tt.ref); got != tt.want {
			t.Errorf("ColorFor(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestTheme_PaletteIsCopy(t *testing.T) {
	theme, _ := ThemeByName("macos")
	p := theme.Palette()
	p["red"] = "#000000"

	again, _ := ThemeByName("macos")
	if again.Color("red") == "#000000" {
		t.Error("mutating Palette() changed the theme table")
	}
}

func TestTheme_AllNamedColorsDefined(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, _ := ThemeByName(name)
		p := theme.Palette()
		for _, c := range NamedColors {
			if _, ok := p[string(c)]; !ok {
				t.Errorf("theme %s lacks %s", name, c)
			}
		}
	}
}
