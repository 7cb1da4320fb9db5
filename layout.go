package shellfie

import (
	"math"
	"strings"
)

// RenderOptions are render-time parameters. They are never read from a config
// file and must be passed to every layout call.
type RenderOptions struct {
	// Scale multiplies every logical pixel value (2 for retina output).
	Scale float64
	// Shadow draws a blurred drop shadow under the window.
	Shadow bool
	// Transparent omits the opaque window background.
	Transparent bool
	// Headless omits the title bar. It is OR-ed with Config.Headless.
	Headless bool
}

// DefaultRenderOptions returns scale 1 with the shadow enabled.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Scale: 1, Shadow: true}
}

// Layout constants in logical pixels unless noted.
const (
	canvasMargin    = 50  // room around the window for the shadow
	shadowOffset    = 10  // shadow displacement along both axes
	shadowSigma     = 15  // shadow blur standard deviation
	shadowAlpha     = 0.3 // shadow opacity
	buttonInset     = 16  // distance from the window edge to the first button
	charWidthFactor = 0.6 // cell width as a fraction of the font size
)

// Row is one line of terminal content as styled segments.
type Row []Segment

// Rows flattens lines into display rows. A command line is one row: the
// prompt's segments followed by the command's, the command starting in the
// style the prompt left behind. Output lines produce one row per text line.
func Rows(lines []Line) []Row {
	var rows []Row
	for _, line := range lines {
		switch l := line.(type) {
		case CommandLine:
			prompt, style := ParseFrom(Style{}, l.Prompt)
			command, _ := ParseFrom(style, l.Command)
			rows = append(rows, append(prompt, command...))
		case OutputLine:
			for _, text := range splitLines(l.Text) {
				rows = append(rows, Parse(text))
			}
		}
	}
	return rows
}

// splitLines splits on "\n" and drops trailing empty lines, so a YAML block
// scalar's final newline does not add a blank row.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// geometry holds the scaled, device-pixel measurements of one layout.
type geometry struct {
	scale      float64
	margin     int
	width      int // panel
	height     int // panel
	padding    int
	titleBar   int
	lineHeight int
	fontSize   int
	radius     int
}

func (g geometry) px(v float64) int {
	return int(v * g.scale)
}

// Layout turns a static config into a scene. It is a pure function of its
// inputs: equal configs and options yield equal scenes.
func Layout(cfg *Config, opts RenderOptions) (*Scene, error) {
	return LayoutRows(cfg, Rows(cfg.Lines), opts)
}

// LayoutRows lays out pre-flattened rows using cfg for theme, window, font and title.
func LayoutRows(cfg *Config, rows []Row, opts RenderOptions) (*Scene, error) {
	theme := ResolveTheme(cfg.Theme)
	font := cfg.font(theme)
	headless := cfg.Headless || opts.Headless

	if opts.Scale <= 0 || math.IsNaN(opts.Scale) || math.IsInf(opts.Scale, 0) {
		return nil, renderError("layout", nil, "scale must be positive, got %g", opts.Scale)
	}

	titleBar := theme.Chrome.TitleBarHeight
	if headless {
		titleBar = 0
	}
	lineHeight := float64(font.Size) * font.LineHeight
	contentHeight := float64(len(rows))*lineHeight + float64(cfg.Window.Padding*2)
	totalHeight := float64(titleBar) + contentHeight

	g := geometry{scale: opts.Scale}
	g.width = g.px(float64(cfg.Window.Width))
	g.height = g.px(totalHeight)
	g.padding = g.px(float64(cfg.Window.Padding))
	g.titleBar = g.px(float64(titleBar))
	g.lineHeight = g.px(lineHeight)
	g.fontSize = g.px(float64(font.Size))
	g.radius = g.px(float64(theme.Chrome.CornerRadius))
	g.margin = g.px(canvasMargin)

	switch {
	case g.width <= 0:
		return nil, renderError("layout", nil, "window width %d at scale %g gives an empty canvas", cfg.Window.Width, opts.Scale)
	case g.height <= 0:
		return nil, renderError("layout", nil, "window has no height: add content or padding")
	case g.fontSize <= 0 || g.lineHeight <= 0:
		return nil, renderError("layout", nil, "font size %d with line height %g is too small", font.Size, font.LineHeight)
	}

	scene := &Scene{
		Width:  g.width + g.margin*2,
		Height: g.height + g.margin*2,
	}

	if opts.Shadow {
		off := g.px(shadowOffset)
		scene.Ops = append(scene.Ops,
			RoundedRect{
				X0:     g.margin + off,
				Y0:     g.margin + off,
				X1:     g.margin + g.width - 1 + off,
				Y1:     g.margin + g.height - 1 + off,
				Radius: g.radius,
				Fill:   Color("#000000").WithAlpha(shadowAlpha),
			},
			Blur{
				X1:    scene.Width - 1,
				Y1:    scene.Height - 1,
				Sigma: float64(g.px(shadowSigma)),
			},
		)
	}

	if !opts.Transparent {
		scene.Ops = append(scene.Ops, RoundedRect{
			X0:     g.margin,
			Y0:     g.margin,
			X1:     g.margin + g.width - 1,
			Y1:     g.margin + g.height - 1,
			Radius: g.radius,
			Fill:   theme.Color(PaletteBackground).WithAlpha(cfg.Window.Opacity),
		})
	}

	if !headless {
		scene.Ops = appendTitleBar(scene.Ops, g, theme, cfg.Title, font)
	}

	contentTop := g.margin + g.titleBar + g.padding
	for i, row := range rows {
		y := contentTop + i*g.lineHeight + g.fontSize
		scene.Ops = appendRow(scene.Ops, g, theme, font, row, g.margin+g.padding, y)
	}

	return scene, nil
}

func appendTitleBar(ops []DrawOp, g geometry, theme *Theme, title string, font FontSpec) []DrawOp {
	fill := theme.Color(PaletteTitleBar)
	bottom := g.margin + g.titleBar - 1

	ops = append(ops, RoundedRect{
		X0:     g.margin,
		Y0:     g.margin,
		X1:     g.margin + g.width - 1,
		Y1:     bottom,
		Radius: g.radius,
		Fill:   fill,
	})
	// Square off the lower corners so the bar meets the content flat.
	if g.margin+g.radius <= bottom {
		ops = append(ops, Rect{
			X0:   g.margin,
			Y0:   g.margin + g.radius,
			X1:   g.margin + g.width - 1,
			Y1:   bottom,
			Fill: fill,
		})
	}

	ops = appendButtons(ops, g, theme)

	if title != "" {
		titleWidth := textAdvance(title, g.fontSize)
		ops = append(ops, Text{
			X:       g.margin + g.width/2 - titleWidth/2,
			Y:       g.margin + g.titleBar/2 + g.fontSize/3,
			Size:    g.fontSize,
			Family:  font.Family,
			Content: title,
			Fill:    theme.Color(PaletteTitleText),
		})
	}
	return ops
}

func appendButtons(ops []DrawOp, g geometry, theme *Theme) []DrawOp {
	chrome := theme.Chrome
	size := g.px(float64(chrome.ButtonSize))
	radius := g.px(float64(chrome.ButtonSize / 2))
	inset := g.px(buttonInset)
	y := g.margin + g.titleBar/2

	pitch := g.px(float64(chrome.ButtonSpacing + chrome.ButtonSize))
	x := g.margin + inset
	if theme.ButtonSide == ButtonsRight {
		x = g.margin + g.width - inset - size*3
	}
	for i, fill := range theme.Buttons {
		ops = append(ops, Circle{CX: x + i*pitch, CY: y, Radius: radius, Fill: fill})
	}
	return ops
}

func appendRow(ops []DrawOp, g geometry, theme *Theme, font FontSpec, row Row, x, y int) []DrawOp {
	for _, seg := range row {
		if seg.Text == "" {
			continue
		}
		advance := textAdvance(seg.Text, g.fontSize)
		fill := theme.ColorFor(seg.Foreground)

		ops = append(ops, Text{
			X:       x,
			Y:       y,
			Size:    g.fontSize,
			Family:  font.Family,
			Content: seg.Text,
			Fill:    fill,
			Bold:    seg.Bold,
			Italic:  seg.Italic,
		})
		if seg.Underline && advance > 0 {
			t := max(1, g.px(1))
			ops = append(ops, Rect{X0: x, Y0: y + t, X1: x + advance - 1, Y1: y + 2*t - 1, Fill: fill})
		}
		x += advance
	}
	return ops
}

// textAdvance approximates the rendered width of text: cells × size × 0.6.
func textAdvance(text string, size int) int {
	return int(float64(CellWidth(text)) * float64(size) * charWidthFactor)
}
