package shellfie

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// magickCandidates are the ImageMagick entry points, newest first.
var magickCandidates = []string{"magick", "convert"}

// MagickRasterizer hands scenes to the ImageMagick command-line tool.
// The executable is resolved once, on the first Check.
type MagickRasterizer struct {
	once sync.Once
	path string
	err  error

	lookPath func(string) (string, error)
}

// NewMagickRasterizer creates a rasterizer that shells out to ImageMagick.
func NewMagickRasterizer() *MagickRasterizer {
	return &MagickRasterizer{lookPath: exec.LookPath}
}

// Check resolves the ImageMagick executable and reports a dependency error
// when neither "magick" nor "convert" is on PATH.
func (m *MagickRasterizer) Check() error {
	m.once.Do(func() {
		lookPath := m.lookPath
		if lookPath == nil {
			lookPath = exec.LookPath
		}
		for _, name := range magickCandidates {
			if p, err := lookPath(name); err == nil {
				m.path = p
				return
			}
		}
		m.err = &Error{
			Kind: KindDependency,
			Op:   "check",
			Msg: "ImageMagick not found\n" +
				"  → Please install ImageMagick: brew install imagemagick\n" +
				"  → Or visit: https://imagemagick.org/script/download.php",
		}
	})
	return m.err
}

// Path returns the resolved executable, empty before a successful Check.
func (m *MagickRasterizer) Path() string {
	return m.path
}

// WriteImage draws scene with ImageMagick into path.
func (m *MagickRasterizer) WriteImage(ctx context.Context, scene *Scene, path string) error {
	if err := m.Check(); err != nil {
		return err
	}
	return m.run(ctx, "write image", append(MagickDrawArgs(scene), path))
}

// Compose combines frames into an animated GIF with ImageMagick.
func (m *MagickRasterizer) Compose(ctx context.Context, frames []ComposedFrame, loop bool, path string) error {
	if err := m.Check(); err != nil {
		return err
	}
	if len(frames) == 0 {
		return renderError("compose", nil, "no frames to compose")
	}
	return m.run(ctx, "compose", append(MagickComposeArgs(frames, loop), path))
}

func (m *MagickRasterizer) run(ctx context.Context, op string, args []string) error {
	out, err := exec.CommandContext(ctx, m.path, args...).CombinedOutput()
	if err != nil {
		return renderError(op, err, "%s failed: %s", m.path, strings.TrimSpace(string(out)))
	}
	return nil
}

// MagickDrawArgs translates a scene into ImageMagick arguments, excluding the
// output path. Text coordinates are baselines, matching ImageMagick's default gravity.
func MagickDrawArgs(scene *Scene) []string {
	args := []string{"-size", fmt.Sprintf("%dx%d", scene.Width, scene.Height), "xc:transparent"}

	for _, op := range scene.Ops {
		switch o := op.(type) {
		case RoundedRect:
			args = append(args, "-fill", string(o.Fill), "-draw",
				fmt.Sprintf("roundrectangle %d,%d %d,%d %d,%d", o.X0, o.Y0, o.X1, o.Y1, o.Radius, o.Radius))
		case Rect:
			args = append(args, "-fill", string(o.Fill), "-draw",
				fmt.Sprintf("rectangle %d,%d %d,%d", o.X0, o.Y0, o.X1, o.Y1))
		case Circle:
			args = append(args, "-fill", string(o.Fill), "-draw",
				fmt.Sprintf("circle %d,%d %d,%d", o.CX, o.CY, o.CX+o.Radius, o.CY))
		case Text:
			args = append(args, "-fill", string(o.Fill), "-pointsize", strconv.Itoa(o.Size))
			if o.Bold {
				args = append(args, "-stroke", string(o.Fill), "-strokewidth", "1")
			}
			args = append(args, "-draw", fmt.Sprintf("text %d,%d '%s'", o.X, o.Y, escapeMagickText(o.Content)))
			if o.Bold {
				args = append(args, "+stroke")
			}
		case Blur:
			sigma := strconv.FormatFloat(o.Sigma, 'f', -1, 64)
			full := o.X0 <= 0 && o.Y0 <= 0 && o.X1 >= scene.Width-1 && o.Y1 >= scene.Height-1
			if full {
				args = append(args, "-blur", "0x"+sigma)
				continue
			}
			region := fmt.Sprintf("%dx%d+%d+%d", o.X1-o.X0+1, o.Y1-o.Y0+1, o.X0, o.Y0)
			args = append(args, "-region", region, "-blur", "0x"+sigma, "+region")
		}
	}
	return args
}

// MagickComposeArgs builds the GIF assembly arguments, excluding the output path.
func MagickComposeArgs(frames []ComposedFrame, loop bool) []string {
	loops := "1"
	if loop {
		loops = "0"
	}
	args := []string{"-dispose", "none", "-loop", loops}
	for _, f := range frames {
		args = append(args, "-delay", strconv.Itoa(GIFDelay(f.Delay)), f.Path)
	}
	return append(args, "-dither", "FloydSteinberg", "-colors", "256", "-layers", "optimize")
}

// escapeMagickText escapes backslashes and single quotes for a -draw text primitive.
func escapeMagickText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

var _ Rasterizer = (*MagickRasterizer)(nil)
