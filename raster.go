package shellfie

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points to approximate a quarter circle.
const kappa = 0.5522847498

// ImageRasterizer paints scenes in-process. Text uses an OpenType font when one
// is configured or found by family name, and a scaled basicfont.Face7x13 otherwise.
// It needs no external programs.
type ImageRasterizer struct {
	mu sync.Mutex

	font       *opentype.Font
	fontFinder FontFinder

	faces  map[faceKey]font.Face
	parsed map[string]*opentype.Font // family -> font, nil when lookup failed
}

type faceKey struct {
	family string
	size   int
}

// ImageOption configures an [ImageRasterizer].
type ImageOption func(*ImageRasterizer)

// WithFontData uses the given TrueType/OpenType data for all text.
func WithFontData(data []byte) ImageOption {
	return func(r *ImageRasterizer) {
		if ft, err := opentype.Parse(data); err == nil {
			r.font = ft
		}
	}
}

// WithFontFinder resolves Text.Family through f.
func WithFontFinder(f FontFinder) ImageOption {
	return func(r *ImageRasterizer) {
		r.fontFinder = f
	}
}

// NewImageRasterizer creates an in-process rasterizer.
func NewImageRasterizer(opts ...ImageOption) *ImageRasterizer {
	r := &ImageRasterizer{
		faces:  make(map[faceKey]font.Face),
		parsed: make(map[string]*opentype.Font),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Check implements [Rasterizer]. The in-process rasterizer is always available.
func (r *ImageRasterizer) Check() error {
	return nil
}

// WriteImage paints scene and writes it to path as PNG.
func (r *ImageRasterizer) WriteImage(ctx context.Context, scene *Scene, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img := r.Paint(scene)

	f, err := os.Create(path)
	if err != nil {
		return renderError("write image", err, "cannot create %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return renderError("write image", err, "cannot encode %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return renderError("write image", err, "cannot write %s", path)
	}
	return nil
}

// Compose implements [Rasterizer] by encoding the PNG frames as a GIF.
func (r *ImageRasterizer) Compose(ctx context.Context, frames []ComposedFrame, loop bool, path string) error {
	return encodeGIF(ctx, frames, loop, path)
}

// Paint renders scene onto a new transparent canvas.
func (r *ImageRasterizer) Paint(scene *Scene) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, scene.Width, scene.Height))

	for _, op := range scene.Ops {
		switch o := op.(type) {
		case RoundedRect:
			fillPath(img, o.X0, o.Y0, o.X1, o.Y1, o.Fill, func(z *vector.Rasterizer, ox, oy float32) {
				roundedRectPath(z, float32(o.X0)-ox, float32(o.Y0)-oy, float32(o.X1+1)-ox, float32(o.Y1+1)-oy, float32(o.Radius))
			})
		case Rect:
			draw.Draw(img, image.Rect(o.X0, o.Y0, o.X1+1, o.Y1+1), image.NewUniform(o.Fill.NRGBA()), image.Point{}, draw.Over)
		case Circle:
			if o.Radius <= 0 {
				continue
			}
			fillPath(img, o.CX-o.Radius, o.CY-o.Radius, o.CX+o.Radius, o.CY+o.Radius, o.Fill, func(z *vector.Rasterizer, ox, oy float32) {
				circlePath(z, float32(o.CX)+0.5-ox, float32(o.CY)+0.5-oy, float32(o.Radius))
			})
		case Text:
			r.drawText(img, o)
		case Blur:
			gaussianBlur(img, image.Rect(o.X0, o.Y0, o.X1+1, o.Y1+1), o.Sigma)
		}
	}

	return img
}

// fillPath rasterizes a path confined to the inclusive box (x0,y0)-(x1,y1).
// build receives the box origin so it can emit box-relative coordinates.
func fillPath(dst *image.RGBA, x0, y0, x1, y1 int, fill Color, build func(z *vector.Rasterizer, ox, oy float32)) {
	box := image.Rect(x0, y0, x1+1, y1+1)
	if box.Empty() {
		return
	}
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	build(z, float32(x0), float32(y0))
	z.Draw(dst, box, image.NewUniform(fill.NRGBA()), image.Point{})
}

func roundedRectPath(z *vector.Rasterizer, x0, y0, x1, y1, radius float32) {
	radius = min(radius, (x1-x0)/2, (y1-y0)/2)
	if radius <= 0 {
		z.MoveTo(x0, y0)
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
		z.ClosePath()
		return
	}
	k := radius * kappa
	z.MoveTo(x0+radius, y0)
	z.LineTo(x1-radius, y0)
	z.CubeTo(x1-radius+k, y0, x1, y0+radius-k, x1, y0+radius)
	z.LineTo(x1, y1-radius)
	z.CubeTo(x1, y1-radius+k, x1-radius+k, y1, x1-radius, y1)
	z.LineTo(x0+radius, y1)
	z.CubeTo(x0+radius-k, y1, x0, y1-radius+k, x0, y1-radius)
	z.LineTo(x0, y0+radius)
	z.CubeTo(x0, y0+radius-k, x0+radius-k, y0, x0+radius, y0)
	z.ClosePath()
}

func circlePath(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

func (r *ImageRasterizer) drawText(dst *image.RGBA, t Text) {
	if t.Content == "" || t.Size <= 0 {
		return
	}
	src := image.NewUniform(t.Fill.NRGBA())
	strikes := []int{0}
	if t.Bold {
		// Synthetic bold: a second strike shifted right.
		strikes = append(strikes, max(1, t.Size/14))
	}

	face := r.face(t.Family, t.Size)
	if face == nil {
		for _, dx := range strikes {
			drawScaledBasic(dst, src, t.Content, t.X+dx, t.Y, t.Size)
		}
		return
	}
	for _, dx := range strikes {
		d := &font.Drawer{
			Dst:  dst,
			Src:  src,
			Face: face,
			Dot:  fixed.P(t.X+dx, t.Y),
		}
		d.DrawString(t.Content)
	}
}

// face returns an OpenType face for the family and size, or nil to fall back
// to the bitmap font.
func (r *ImageRasterizer) face(family string, size int) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()

	ft := r.font
	if ft == nil {
		ft = r.findFont(family)
	}
	if ft == nil {
		return nil
	}

	key := faceKey{family: family, size: size}
	if face, ok := r.faces[key]; ok {
		return face
	}
	face, err := newFace(ft, float64(size))
	if err != nil {
		return nil
	}
	r.faces[key] = face
	return face
}

func (r *ImageRasterizer) findFont(family string) *opentype.Font {
	if r.fontFinder == nil || family == "" {
		return nil
	}
	if ft, ok := r.parsed[family]; ok {
		return ft
	}

	var ft *opentype.Font
	if path, err := r.fontFinder.Find(family); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			ft, _ = opentype.Parse(data)
		}
	}
	r.parsed[family] = ft
	return ft
}

// drawScaledBasic draws text with basicfont.Face7x13 resized to size pixels:
// the string is rendered to an alpha mask at its native 13px height, scaled,
// then used to composite src.
func drawScaledBasic(dst *image.RGBA, src image.Image, text string, x, baseline, size int) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := metrics.Height.Ceil()
	width := font.MeasureString(face, text).Ceil()
	if width <= 0 {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	factor := float64(size) / float64(height)
	scaled := image.NewAlpha(image.Rect(0, 0,
		int(math.Ceil(float64(width)*factor)),
		int(math.Ceil(float64(height)*factor))))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), draw.Src, nil)

	top := baseline - int(math.Round(float64(ascent)*factor))
	r := scaled.Bounds().Add(image.Pt(x, top))
	draw.DrawMask(dst, r, src, image.Point{}, scaled, image.Point{}, draw.Over)
}

// gifPalette is the fixed 256-entry palette frames are quantized to: a fully
// transparent entry followed by the xterm palette minus its first black.
var gifPalette = func() color.Palette {
	p := make(color.Palette, 0, 256)
	p = append(p, color.RGBA{})
	for _, c := range DefaultPalette[1:] {
		p = append(p, c)
	}
	return p
}()

// ensure the in-process rasterizer satisfies the interface
var _ Rasterizer = (*ImageRasterizer)(nil)

func (r *ImageRasterizer) String() string {
	if r.font != nil {
		return "image (opentype)"
	}
	return "image (basicfont)"
}
