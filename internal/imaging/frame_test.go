package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestValidateRejectsZeroDimensions(t *testing.T) {
	f := Frame{Width: 0, Height: 10, Stride: 10, Channels: 1, Pix: make([]byte, 100)}
	if err := f.Validate(); err != ErrInvalidFrame {
		t.Fatalf("got %v, want ErrInvalidFrame", err)
	}
}

func TestValidateRejectsShortBuffer(t *testing.T) {
	f := Frame{Width: 10, Height: 10, Stride: 10, Channels: 1, Pix: make([]byte, 5)}
	if err := f.Validate(); err != ErrInvalidFrame {
		t.Fatalf("got %v, want ErrInvalidFrame", err)
	}
}

func TestValidateAcceptsWellFormedFrame(t *testing.T) {
	f := Frame{Width: 4, Height: 4, Stride: 4, Channels: 1, Pix: make([]byte, 16)}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFrameAtGrayscale(t *testing.T) {
	f := Frame{Width: 2, Height: 2, Stride: 2, Channels: 1, Pix: []byte{10, 20, 30, 40}}
	if c := f.At(1, 1); c != (color.Gray{Y: 40}) {
		t.Fatalf("got %v, want Gray{Y: 40}", c)
	}
	if c := f.At(-1, 0); c != color.Black {
		t.Fatalf("got %v, want Black for out-of-bounds", c)
	}
}

func TestToImageFromImageRoundTripsGrayscale(t *testing.T) {
	f := Frame{Width: 3, Height: 2, Stride: 3, Channels: 1, Pix: []byte{1, 2, 3, 4, 5, 6}}
	img := f.ToImage()
	if _, ok := img.(*image.Gray); !ok {
		t.Fatalf("got %T, want *image.Gray", img)
	}

	back := FromImage(img)
	if back.Width != f.Width || back.Height != f.Height || back.Channels != 1 {
		t.Fatalf("got %+v, want matching dims and Channels=1", back)
	}
	for i, v := range f.Pix {
		if back.Pix[i] != v {
			t.Fatalf("pixel %d: got %d, want %d", i, back.Pix[i], v)
		}
	}
}

func TestFromImageColorProducesFourChannelFrame(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	src.Set(1, 1, color.NRGBA{R: 0, G: 255, B: 0, A: 128})

	f := FromImage(src)
	if f.Channels != 4 {
		t.Fatalf("got Channels %d, want 4", f.Channels)
	}
	if c := f.At(0, 0); c != (color.NRGBA{R: 255, G: 0, B: 0, A: 255}) {
		t.Fatalf("got %v at (0,0)", c)
	}
	if c := f.At(1, 1); c != (color.NRGBA{R: 0, G: 255, B: 0, A: 128}) {
		t.Fatalf("got %v at (1,1)", c)
	}
}
