package shellfie

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Rasterizer turns scenes into files. Implementations are invoked sequentially.
type Rasterizer interface {
	// Check reports whether the rasterizer can run, typically a
	// [KindDependency] error when an external program is missing.
	Check() error
	// WriteImage rasterizes scene into path.
	WriteImage(ctx context.Context, scene *Scene, path string) error
	// Compose combines previously written frames into an animation at path.
	Compose(ctx context.Context, frames []ComposedFrame, loop bool, path string) error
}

// Renderer drives layout and rasterization for static and animated output.
//
// Example:
//
//	r := shellfie.NewRenderer(shellfie.WithScale(2))
//	if err := r.Generate(ctx, cfg, "demo.png", false); err != nil {
//		log.Fatal(err)
//	}
type Renderer struct {
	rasterizer Rasterizer
	logger     *log.Logger
	progress   ProgressProvider
	opts       RenderOptions
	tempDir    string
}

// Option configures a Renderer during construction.
type Option func(*Renderer)

// WithRasterizer sets the backend that produces files. Defaults to an
// [ImageRasterizer].
func WithRasterizer(r Rasterizer) Option {
	return func(rd *Renderer) {
		rd.rasterizer = r
	}
}

// WithLogger sets the logger for diagnostic messages. Defaults to discarding them.
func WithLogger(l *log.Logger) Option {
	return func(rd *Renderer) {
		rd.logger = l
	}
}

// WithProgress sets the provider notified as frames are written.
func WithProgress(p ProgressProvider) Option {
	return func(rd *Renderer) {
		rd.progress = p
	}
}

// WithScale multiplies every pixel measurement.
func WithScale(scale float64) Option {
	return func(rd *Renderer) {
		rd.opts.Scale = scale
	}
}

// WithShadow enables or disables the drop shadow.
func WithShadow(enabled bool) Option {
	return func(rd *Renderer) {
		rd.opts.Shadow = enabled
	}
}

// WithTransparent omits the window background.
func WithTransparent(enabled bool) Option {
	return func(rd *Renderer) {
		rd.opts.Transparent = enabled
	}
}

// WithHeadless omits the title bar regardless of the config.
func WithHeadless(enabled bool) Option {
	return func(rd *Renderer) {
		rd.opts.Headless = enabled
	}
}

// WithTempDir sets the parent directory for animation frames.
// Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(rd *Renderer) {
		rd.tempDir = dir
	}
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	rd := &Renderer{
		logger:   log.New(io.Discard, "", 0),
		progress: NoopProgress{},
		opts:     DefaultRenderOptions(),
	}
	for _, opt := range opts {
		opt(rd)
	}
	if rd.rasterizer == nil {
		rd.rasterizer = NewImageRasterizer()
	}
	if rd.logger == nil {
		rd.logger = log.New(io.Discard, "", 0)
	}
	if rd.progress == nil {
		rd.progress = NoopProgress{}
	}
	return rd
}

// Options returns the render options in effect.
func (rd *Renderer) Options() RenderOptions {
	return rd.opts
}

// Generate renders cfg to out, as an animation when animate is set or the
// config has frames.
func (rd *Renderer) Generate(ctx context.Context, cfg *Config, out string, animate bool) error {
	if animate || cfg.Animated() {
		return rd.RenderAnimation(ctx, cfg, out)
	}
	return rd.Render(ctx, cfg, out)
}

// Render writes a single image of cfg to out. An animated config is drawn in
// its final state.
func (rd *Renderer) Render(ctx context.Context, cfg *Config, out string) error {
	if err := rd.rasterizer.Check(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	static := cfg
	if cfg.Animated() {
		frames := BuildFrames(cfg)
		var lines []Line
		if len(frames) > 0 {
			lines = frames[len(frames)-1].Lines
		}
		static = FrameConfig(cfg, lines)
	}

	scene, err := Layout(static, rd.opts)
	if err != nil {
		return err
	}
	rd.logger.Printf("rendering %dx%d image with %d ops", scene.Width, scene.Height, len(scene.Ops))

	if err := rd.rasterizer.WriteImage(ctx, scene, out); err != nil {
		return err
	}
	rd.progress.Composed(out, 1)
	return nil
}

// RenderAnimation writes every animation frame to a temporary directory, then
// composes them into out. The directory is removed whether or not composition
// succeeds. A static config becomes a single-frame animation.
func (rd *Renderer) RenderAnimation(ctx context.Context, cfg *Config, out string) error {
	if err := rd.rasterizer.Check(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	frames := BuildFrames(cfg)
	if !cfg.Animated() {
		frames = []AnimationFrame{{Lines: cloneLines(cfg.Lines), Delay: DefaultOutputDelay}}
	}
	if len(frames) == 0 {
		return renderError("render animation", nil, "animation has no frames")
	}

	dir, err := os.MkdirTemp(rd.tempDir, "shellfie-")
	if err != nil {
		return renderError("render animation", err, "cannot create frame directory")
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			rd.logger.Printf("cannot remove %s: %v", dir, err)
		}
	}()
	rd.logger.Printf("rendering %d frame(s) in %s", len(frames), dir)

	composed := make([]ComposedFrame, 0, len(frames))
	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		scene, err := Layout(FrameConfig(cfg, frame.Lines), rd.opts)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := rd.rasterizer.WriteImage(ctx, scene, path); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		composed = append(composed, ComposedFrame{Path: path, Delay: frame.Delay})
		rd.progress.FrameRendered(i, len(frames))
	}

	if err := rd.rasterizer.Compose(ctx, composed, cfg.Animation.Loop, out); err != nil {
		return err
	}
	rd.progress.Composed(out, len(composed))
	return nil
}
