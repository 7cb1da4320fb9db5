package shellfie

import (
	"context"
	"image"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
)

// ComposedFrame is a rendered frame on disk awaiting composition.
type ComposedFrame struct {
	Path  string
	Delay int // milliseconds
}

// gifLoopCount maps the loop flag to image/gif's LoopCount:
// 0 repeats forever, -1 plays once.
func gifLoopCount(loop bool) int {
	if loop {
		return 0
	}
	return -1
}

// encodeGIF quantizes PNG frames onto gifPalette with Floyd-Steinberg
// dithering and writes them as one animated GIF. Frames never dispose, so each
// one paints over the last; the logical screen fits the largest frame.
func encodeGIF(ctx context.Context, frames []ComposedFrame, loop bool, path string) error {
	if len(frames) == 0 {
		return renderError("compose", nil, "no frames to compose")
	}

	anim := &gif.GIF{LoopCount: gifLoopCount(loop)}
	var screen image.Rectangle

	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := readPNG(frame.Path)
		if err != nil {
			return err
		}

		bounds := img.Bounds()
		paletted := image.NewPaletted(bounds, gifPalette)
		draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, GIFDelay(frame.Delay))
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
		screen = screen.Union(bounds)
	}
	anim.Config = image.Config{
		ColorModel: gifPalette,
		Width:      screen.Dx(),
		Height:     screen.Dy(),
	}

	out, err := os.Create(path)
	if err != nil {
		return renderError("compose", err, "cannot create %s", path)
	}
	if err := gif.EncodeAll(out, anim); err != nil {
		out.Close()
		os.Remove(path)
		return renderError("compose", err, "cannot encode %s", path)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return renderError("compose", err, "cannot write %s", path)
	}
	return nil
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, renderError("compose", err, "cannot open frame %s", path)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, renderError("compose", err, "cannot decode frame %s", path)
	}
	return img, nil
}
