package imaging

import (
	"errors"
	"image"
	"image/color"
)

// Frame is a dense pixel matrix: the neutral "image view" boundary value
// between the core and a host's native frame representation. It is
// immutable during processing of a single frame, every stage that needs
// to mutate pixels works on its own copy.
type Frame struct {
	Width    int
	Height   int
	Stride   int
	Channels int // 1 (grayscale) or >= 3 (RGB/RGBA)
	Pix      []byte
}

// ErrInvalidFrame is returned for a zero-dimension frame or an
// unsupported channel layout.
var ErrInvalidFrame = errors.New("imaging: invalid frame dimensions or channel layout")

// Validate checks the invariants a Frame must satisfy before it can enter
// the pipeline: positive dimensions, a supported channel count, and a
// pixel buffer large enough for Stride*Height bytes.
func (f Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return ErrInvalidFrame
	}
	if f.Channels != 1 && f.Channels < 3 {
		return ErrInvalidFrame
	}
	if f.Stride < f.Width*f.Channels {
		return ErrInvalidFrame
	}
	if len(f.Pix) < f.Stride*f.Height {
		return ErrInvalidFrame
	}
	return nil
}

// ToImage converts a Frame into a standard library image.Image for
// interop with the bild primitives the pipeline is built from and with
// image encoders such as disintegration/imaging in cmd/scancore.
func (f Frame) ToImage() image.Image {
	if f.Channels == 1 {
		img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
		for y := 0; y < f.Height; y++ {
			srcRow := f.Pix[y*f.Stride : y*f.Stride+f.Width]
			copy(img.Pix[y*img.Stride:y*img.Stride+f.Width], srcRow)
		}
		return img
	}

	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			srcOff := y*f.Stride + x*f.Channels
			dstOff := img.PixOffset(x, y)
			r, g, b := f.Pix[srcOff], f.Pix[srcOff+1], f.Pix[srcOff+2]
			a := byte(255)
			if f.Channels >= 4 {
				a = f.Pix[srcOff+3]
			}
			img.Pix[dstOff+0] = r
			img.Pix[dstOff+1] = g
			img.Pix[dstOff+2] = b
			img.Pix[dstOff+3] = a
		}
	}
	return img
}

// FromImage builds a Frame from a standard library image.Image. The
// result is always either single-channel (source was *image.Gray) or
// 4-channel NRGBA, regardless of the source's concrete type.
func FromImage(img image.Image) Frame {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		f := Frame{Width: w, Height: h, Stride: w, Channels: 1, Pix: make([]byte, w*h)}
		for y := 0; y < h; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
			copy(f.Pix[y*w:y*w+w], row)
		}
		return f
	}

	f := Frame{Width: w, Height: h, Stride: w * 4, Channels: 4, Pix: make([]byte, w*h*4)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			off := y*f.Stride + x*4
			f.Pix[off+0] = c.R
			f.Pix[off+1] = c.G
			f.Pix[off+2] = c.B
			f.Pix[off+3] = c.A
		}
	}
	return f
}

// At returns the color of the pixel at (x, y). Out-of-bounds coordinates
// return black.
func (f Frame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.Black
	}
	if f.Channels == 1 {
		v := f.Pix[y*f.Stride+x]
		return color.Gray{Y: v}
	}
	off := y*f.Stride + x*f.Channels
	a := byte(255)
	if f.Channels >= 4 {
		a = f.Pix[off+3]
	}
	return color.NRGBA{R: f.Pix[off], G: f.Pix[off+1], B: f.Pix[off+2], A: a}
}
