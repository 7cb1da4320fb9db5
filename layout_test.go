package shellfie

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestRows(t *testing.T) {
	rows := Rows([]Line{
		CommandLine{Prompt: "\x1b[32m$ ", Command: "ls\x1b[0m"},
		OutputLine{Text: "a\nb\n\n"},
		OutputLine{Text: ""},
	})
	if len(rows) != 3 {
		t.Fatalf("Rows = %d rows, want 3: %+v", len(rows), rows)
	}
	want := Row{
		{Text: "$ ", Style: Style{Foreground: "green"}},
		{Text: "ls", Style: Style{Foreground: "green"}},
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("command row = %+v, want %+v", rows[0], want)
	}
	if rows[1][0].Text != "a" || rows[2][0].Text != "b" {
		t.Errorf("output rows = %+v", rows[1:])
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"\n\n", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitLines(tt.input)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLayout_Geometry(t *testing.T) {
	scene, err := Layout(staticConfig(), DefaultRenderOptions())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	// 28 title bar + 2 rows * 19.6 + 2 * 20 padding = 107.2
	if scene.Width != 700 || scene.Height != 207 {
		t.Errorf("canvas = %dx%d, want 700x207", scene.Width, scene.Height)
	}

	shadow, ok := scene.Ops[0].(RoundedRect)
	if !ok {
		t.Fatalf("op 0 = %T, want shadow RoundedRect", scene.Ops[0])
	}
	wantShadow := RoundedRect{X0: 60, Y0: 60, X1: 659, Y1: 166, Radius: 10, Fill: "#0000004d"}
	if shadow != wantShadow {
		t.Errorf("shadow = %+v, want %+v", shadow, wantShadow)
	}
	wantBlur := Blur{X0: 0, Y0: 0, X1: 699, Y1: 206, Sigma: 15}
	if blur, _ := scene.Ops[1].(Blur); blur != wantBlur {
		t.Errorf("blur = %+v, want %+v", scene.Ops[1], wantBlur)
	}
	wantBG := RoundedRect{X0: 50, Y0: 50, X1: 649, Y1: 156, Radius: 10, Fill: "#1e1e1e"}
	if bg, _ := scene.Ops[2].(RoundedRect); bg != wantBG {
		t.Errorf("background = %+v, want %+v", scene.Ops[2], wantBG)
	}
}

func TestLayout_TitleBarAndButtons(t *testing.T) {
	scene, err := Layout(staticConfig(), DefaultRenderOptions())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	var circles []Circle
	for _, op := range scene.Ops {
		if c, ok := op.(Circle); ok {
			circles = append(circles, c)
		}
	}
	want := []Circle{
		{CX: 66, CY: 64, Radius: 6, Fill: "#ff5f56"},
		{CX: 86, CY: 64, Radius: 6, Fill: "#ffbd2e"},
		{CX: 106, CY: 64, Radius: 6, Fill: "#27c93f"},
	}
	if !reflect.DeepEqual(circles, want) {
		t.Errorf("buttons = %+v, want %+v", circles, want)
	}

	title := scene.Texts()[0]
	if title.Content != "Terminal" || title.X != 317 || title.Y != 68 {
		t.Errorf("title = %+v, want centered at 317,68", title)
	}
}

func TestLayout_Rows(t *testing.T) {
	scene, err := Layout(staticConfig(), DefaultRenderOptions())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	texts := scene.Texts()[1:]

	want := []struct {
		content string
		x, y    int
	}{
		{"$ ", 70, 112},
		{"echo hi", 86, 112},
		{"hi", 70, 131},
	}
	if len(texts) != len(want) {
		t.Fatalf("row texts = %+v", texts)
	}
	for i, w := range want {
		got := texts[i]
		if got.Content != w.content || got.X != w.x || got.Y != w.y {
			t.Errorf("text %d = %q at %d,%d, want %q at %d,%d", i, got.Content, got.X, got.Y, w.content, w.x, w.y)
		}
		if got.Fill != "#ffffff" || got.Size != 14 || got.Family != "Monaco" {
			t.Errorf("text %d style = %+v", i, got)
		}
	}
}

func TestLayout_Deterministic(t *testing.T) {
	a, _ := Layout(staticConfig(), DefaultRenderOptions())
	b, _ := Layout(staticConfig(), DefaultRenderOptions())
	if !reflect.DeepEqual(a, b) {
		t.Error("Layout is not deterministic")
	}
}

func TestLayout_Headless(t *testing.T) {
	framed, _ := Layout(staticConfig(), DefaultRenderOptions())

	opts := DefaultRenderOptions()
	opts.Headless = true
	bare, err := Layout(staticConfig(), opts)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	if framed.Height-bare.Height != 28 {
		t.Errorf("headless height delta = %d, want 28", framed.Height-bare.Height)
	}
	for _, op := range bare.Ops {
		if _, ok := op.(Circle); ok {
			t.Fatal("headless scene has buttons")
		}
	}
	// Content moves up by the title bar height.
	if got := bare.Texts()[0].Y; got != 112-28 {
		t.Errorf("first row baseline = %d, want %d", got, 112-28)
	}

	cfg := staticConfig()
	cfg.Headless = true
	fromConfig, _ := Layout(cfg, DefaultRenderOptions())
	if !reflect.DeepEqual(fromConfig, bare) {
		t.Error("Config.Headless and RenderOptions.Headless should agree")
	}
}

func TestLayout_NoShadowTransparent(t *testing.T) {
	opts := RenderOptions{Scale: 1, Transparent: true}
	scene, err := Layout(staticConfig(), opts)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	for _, op := range scene.Ops {
		if _, ok := op.(Blur); ok {
			t.Error("scene without shadow has a blur")
		}
	}
	// First op is the title bar, not a background.
	if rr, ok := scene.Ops[0].(RoundedRect); !ok || rr.Fill != "#3c3c3c" {
		t.Errorf("op 0 = %+v, want title bar", scene.Ops[0])
	}
}

func TestLayout_Opacity(t *testing.T) {
	cfg := staticConfig()
	cfg.Window.Opacity = 0.5
	scene, _ := Layout(cfg, RenderOptions{Scale: 1})
	if bg := scene.Ops[0].(RoundedRect); bg.Fill != "#1e1e1e80" {
		t.Errorf("background fill = %q, want #1e1e1e80", bg.Fill)
	}
}

func TestLayout_Scale(t *testing.T) {
	one, _ := Layout(staticConfig(), RenderOptions{Scale: 1})
	two, _ := Layout(staticConfig(), RenderOptions{Scale: 2})
	if two.Width != one.Width*2 {
		t.Errorf("width at scale 2 = %d, want %d", two.Width, one.Width*2)
	}
	if got := two.Texts()[1].Size; got != 28 {
		t.Errorf("font size at scale 2 = %d, want 28", got)
	}
}

func TestLayout_ButtonsRight(t *testing.T) {
	cfg := staticConfig()
	cfg.Theme = "ubuntu"
	scene, err := Layout(cfg, RenderOptions{Scale: 1})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	var circles []Circle
	for _, op := range scene.Ops {
		if c, ok := op.(Circle); ok {
			circles = append(circles, c)
		}
	}
	if len(circles) != 3 {
		t.Fatalf("buttons = %+v", circles)
	}
	// 50 + 600 - 16 - 3*14
	if circles[0].CX != 592 || circles[1].CX != 612 || circles[2].CX != 632 {
		t.Errorf("button x = %d,%d,%d, want 592,612,632", circles[0].CX, circles[1].CX, circles[2].CX)
	}
	if circles[0].CY != 50+18 || circles[0].Radius != 7 {
		t.Errorf("button 0 = %+v", circles[0])
	}
}

func TestLayout_WindowsButtons(t *testing.T) {
	cfg := staticConfig()
	cfg.Theme = "windows"
	scene, err := Layout(cfg, RenderOptions{Scale: 1})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	var circles []Circle
	for _, op := range scene.Ops {
		if c, ok := op.(Circle); ok {
			circles = append(circles, c)
		}
	}
	// 50 + 600 - 16 - 3*10, pitch 10, centered in the 32px bar
	want := []Circle{
		{CX: 604, CY: 66, Radius: 5, Fill: "#ff5f56"},
		{CX: 614, CY: 66, Radius: 5, Fill: "#ffbd2e"},
		{CX: 624, CY: 66, Radius: 5, Fill: "#27c93f"},
	}
	if !reflect.DeepEqual(circles, want) {
		t.Errorf("buttons = %+v, want %+v", circles, want)
	}
	for _, op := range scene.Ops {
		if rr, ok := op.(RoundedRect); ok && rr.Radius != 0 {
			t.Errorf("rounded rect = %+v, want square corners", rr)
		}
	}
}

func TestLayout_Styles(t *testing.T) {
	cfg := staticConfig()
	cfg.Lines = []Line{OutputLine{Text: "\x1b[1;4;31mbad\x1b[0m \x1b[3;38;5;196mx"}}
	scene, err := Layout(cfg, RenderOptions{Scale: 1})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	texts := scene.Texts()[1:]
	if len(texts) != 3 {
		t.Fatalf("texts = %+v", texts)
	}
	if !texts[0].Bold || texts[0].Fill != "#ff5555" {
		t.Errorf("bold red text = %+v", texts[0])
	}
	if !texts[2].Italic || texts[2].Fill != "#ff0000" {
		t.Errorf("italic 256-color text = %+v", texts[2])
	}

	var underline *Rect
	for _, op := range scene.Ops {
		if r, ok := op.(Rect); ok && r.Fill == "#ff5555" {
			underline = &r
		}
	}
	if underline == nil {
		t.Fatal("underline rect not found")
	}
	// "bad" = 3 cells * 14 * 0.6 = 25px wide
	if underline.X0 != texts[0].X || underline.X1 != texts[0].X+24 || underline.Y0 != texts[0].Y+1 {
		t.Errorf("underline = %+v", *underline)
	}
}

func TestLayout_WideCharacters(t *testing.T) {
	cfg := staticConfig()
	cfg.Lines = []Line{OutputLine{Text: "中\x1b[31mx"}}
	scene, _ := Layout(cfg, RenderOptions{Scale: 1})
	texts := scene.Texts()[1:]
	// two cells: int(2 * 14 * 0.6) = 16
	if texts[1].X-texts[0].X != 16 {
		t.Errorf("advance after wide char = %d, want 16", texts[1].X-texts[0].X)
	}
}

func TestLayout_ControlCharactersAdvance(t *testing.T) {
	cfg := staticConfig()
	cfg.Lines = []Line{OutputLine{Text: "a\tb\x1b[31mc"}}
	scene, err := Layout(cfg, RenderOptions{Scale: 1})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	texts := scene.Texts()[1:]
	if len(texts) != 2 {
		t.Fatalf("texts = %+v", texts)
	}
	// three cells, the tab included: int(3 * 14 * 0.6) = 25
	if got := texts[1].X - texts[0].X; got != 25 {
		t.Errorf("advance after tab = %d, want 25", got)
	}
}

func TestLayout_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		opts   RenderOptions
	}{
		{"zero scale", func(*Config) {}, RenderOptions{Scale: 0}},
		{"nan scale", func(*Config) {}, RenderOptions{Scale: math.NaN()}},
		{"negative scale", func(*Config) {}, RenderOptions{Scale: -1}},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, RenderOptions{Scale: 1}},
		{"tiny scale", func(*Config) {}, RenderOptions{Scale: 0.001}},
		{"no height", func(c *Config) {
			c.Lines = nil
			c.Window.Padding = 0
			c.Headless = true
		}, RenderOptions{Scale: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := staticConfig()
			tt.mutate(cfg)
			_, err := Layout(cfg, tt.opts)
			if !errors.Is(err, ErrRender) {
				t.Errorf("Layout() = %v, want render error", err)
			}
		})
	}
}

func TestTextAdvance(t *testing.T) {
	tests := []struct {
		text string
		size int
		want int
	}{
		{"", 14, 0},
		{"Terminal", 14, 67},
		{"中文", 10, 24},
		{"abc", 28, 50},
	}
	for _, tt := range tests {
		if got := textAdvance(tt.text, tt.size); got != tt.want {
			t.Errorf("textAdvance(%q, %d) = %d, want %d", tt.text, tt.size, got, tt.want)
		}
	}
}
