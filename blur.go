package shellfie

import (
	"image"
	"math"
)

// gaussianBlur blurs region of img in place. Three successive box blurs
// approximate a Gaussian with standard deviation sigma; edges are clamped.
// img is premultiplied, so blurring into transparent pixels keeps colors right.
func gaussianBlur(img *image.RGBA, region image.Rectangle, sigma float64) {
	region = region.Intersect(img.Bounds())
	if sigma <= 0 || region.Empty() {
		return
	}

	w, h := region.Dx(), region.Dy()
	stride := w * 4
	buf := make([]uint8, stride*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(region.Min.X, region.Min.Y+y)
		copy(buf[y*stride:(y+1)*stride], img.Pix[off:off+stride])
	}

	tmp := make([]uint8, len(buf))
	for _, size := range boxSizes(sigma, 3) {
		r := (size - 1) / 2
		boxBlurH(buf, tmp, w, h, r)
		boxBlurV(tmp, buf, w, h, r)
	}

	for y := 0; y < h; y++ {
		off := img.PixOffset(region.Min.X, region.Min.Y+y)
		copy(img.Pix[off:off+stride], buf[y*stride:(y+1)*stride])
	}
}

// boxSizes returns n odd box widths whose successive application approximates
// a Gaussian of the given sigma.
func boxSizes(sigma float64, n int) []int {
	ideal := math.Sqrt(12*sigma*sigma/float64(n) + 1)
	wl := int(math.Floor(ideal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2

	mIdeal := (12*sigma*sigma - float64(n*wl*wl) - float64(4*n*wl) - float64(3*n)) / float64(-4*wl-4)
	m := int(math.Round(mIdeal))

	sizes := make([]int, n)
	for i := range sizes {
		if i < m {
			sizes[i] = wl
		} else {
			sizes[i] = wu
		}
	}
	return sizes
}

func boxBlurH(src, dst []uint8, w, h, r int) {
	if r <= 0 {
		copy(dst, src)
		return
	}
	div := 2*r + 1
	for y := 0; y < h; y++ {
		row := y * w * 4
		for c := 0; c < 4; c++ {
			sum := 0
			for k := -r; k <= r; k++ {
				sum += int(src[row+clampInt(k, 0, w-1)*4+c])
			}
			for x := 0; x < w; x++ {
				dst[row+x*4+c] = uint8((sum + div/2) / div)
				out := clampInt(x-r, 0, w-1)
				in := clampInt(x+r+1, 0, w-1)
				sum += int(src[row+in*4+c]) - int(src[row+out*4+c])
			}
		}
	}
}

func boxBlurV(src, dst []uint8, w, h, r int) {
	if r <= 0 {
		copy(dst, src)
		return
	}
	div := 2*r + 1
	stride := w * 4
	for x := 0; x < w; x++ {
		col := x * 4
		for c := 0; c < 4; c++ {
			sum := 0
			for k := -r; k <= r; k++ {
				sum += int(src[clampInt(k, 0, h-1)*stride+col+c])
			}
			for y := 0; y < h; y++ {
				dst[y*stride+col+c] = uint8((sum + div/2) / div)
				out := clampInt(y-r, 0, h-1)
				in := clampInt(y+r+1, 0, h-1)
				sum += int(src[in*stride+col+c]) - int(src[out*stride+col+c])
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
