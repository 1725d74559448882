package rectify

import (
	"errors"

	"github.com/fieldscan/scancore/internal/geom"
	"github.com/fieldscan/scancore/internal/imaging"
)

// ErrRectificationFailed is the public-facing error returned by Rectify
// when the quad produces a degenerate transform. Failure leaves the
// caller's tracker state untouched; Rectify never mutates f.
var ErrRectificationFailed = errors.New("rectify: rectification failed, degenerate transform")

// Rectify implements C5 in full: it computes the destination size from
// q, builds the destination-to-source transform, and samples f through
// it with bilinear interpolation. q must already be
// canonicalized (TL,TR,BR,BL order); it is not re-validated here.
func Rectify(f imaging.Frame, q geom.Quad) (imaging.Frame, error) {
	if err := f.Validate(); err != nil {
		return imaging.Frame{}, err
	}

	w, h := DestinationSize(q)
	dst := DestinationQuad(w, h)

	// destToSrc maps a destination pixel to its source coordinate.
	destToSrc, err := BuildTransform(dst, q)
	if err != nil {
		return imaging.Frame{}, ErrRectificationFailed
	}

	return warp(f, destToSrc, w, h), nil
}

// warp resamples f at each of the w x h destination pixels using the
// supplied destination-to-source transform and bilinear interpolation.
// Destination pixels whose source coordinate falls outside the source
// frame are filled with black.
func warp(f imaging.Frame, destToSrc *Transform, w, h int) imaging.Frame {
	channels := f.Channels
	if channels == 1 {
		out := imaging.Frame{Width: w, Height: h, Stride: w, Channels: 1, Pix: make([]byte, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				src := destToSrc.Apply(geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
				out.Pix[y*w+x] = bilinearGray(f, src.X, src.Y)
			}
		}
		return out
	}

	out := imaging.Frame{Width: w, Height: h, Stride: w * 4, Channels: 4, Pix: make([]byte, w*h*4)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := destToSrc.Apply(geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			r, g, b, a := bilinearColor(f, src.X, src.Y)
			off := y*out.Stride + x*4
			out.Pix[off+0] = r
			out.Pix[off+1] = g
			out.Pix[off+2] = b
			out.Pix[off+3] = a
		}
	}
	return out
}

func bilinearGray(f imaging.Frame, fx, fy float64) byte {
	x0, y0, tx, ty := bilinearWeights(fx, fy)
	g := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
			return 0
		}
		return float64(f.Pix[y*f.Stride+x])
	}
	top := g(x0, y0)*(1-tx) + g(x0+1, y0)*tx
	bot := g(x0, y0+1)*(1-tx) + g(x0+1, y0+1)*tx
	return byte(clamp255(top*(1-ty) + bot*ty))
}

func bilinearColor(f imaging.Frame, fx, fy float64) (r, g, b, a byte) {
	x0, y0, tx, ty := bilinearWeights(fx, fy)
	sample := func(x, y, ch int) float64 {
		if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
			return 0
		}
		off := y*f.Stride + x*f.Channels
		if ch == 3 && f.Channels < 4 {
			return 255
		}
		return float64(f.Pix[off+ch])
	}
	mix := func(ch int) byte {
		top := sample(x0, y0, ch)*(1-tx) + sample(x0+1, y0, ch)*tx
		bot := sample(x0, y0+1, ch)*(1-tx) + sample(x0+1, y0+1, ch)*tx
		return byte(clamp255(top*(1-ty) + bot*ty))
	}
	return mix(0), mix(1), mix(2), mix(3)
}

func bilinearWeights(fx, fy float64) (x0, y0 int, tx, ty float64) {
	fx -= 0.5
	fy -= 0.5
	x0 = int(fx)
	y0 = int(fy)
	if fx < 0 {
		x0--
	}
	if fy < 0 {
		y0--
	}
	tx = fx - float64(x0)
	ty = fy - float64(y0)
	return x0, y0, tx, ty
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
