package rectify

import (
	"testing"

	"github.com/fieldscan/scancore/internal/geom"
	"github.com/fieldscan/scancore/internal/imaging"
)

func checkerboardFrame(w, h int) imaging.Frame {
	f := imaging.Frame{Width: w, Height: h, Stride: w, Channels: 1, Pix: make([]byte, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/20+y/20)%2 == 0 {
				f.Pix[y*w+x] = 255
			}
		}
	}
	return f
}

func TestDestinationSizeMatchesAxisAlignedQuad(t *testing.T) {
	q := geom.Quad{{X: 200, Y: 100}, {X: 800, Y: 100}, {X: 800, Y: 900}, {X: 200, Y: 900}}
	w, h := DestinationSize(q)
	if w != 600 || h != 800 {
		t.Fatalf("got (%d,%d), want (600,800)", w, h)
	}
}

func TestBuildTransformIdentityOnAxisAlignedQuad(t *testing.T) {
	src := geom.Quad{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	tr, err := BuildTransform(src, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := tr.Apply(geom.Point{X: 37, Y: 42})
	if got.X < 36.9 || got.X > 37.1 || got.Y < 41.9 || got.Y > 42.1 {
		t.Fatalf("identity transform moved point: got %v", got)
	}
}

func TestBuildTransformDegenerateQuad(t *testing.T) {
	degenerate := geom.Quad{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	dst := DestinationQuad(10, 10)
	_, err := BuildTransform(dst, degenerate)
	if err == nil {
		t.Fatal("expected an error for a degenerate quad")
	}
}

// TestRectifyAxisAlignedCropRoundTrips checks that rectifying an already
// axis-aligned sub-rectangle reproduces its pixels, within bilinear
// interpolation tolerance.
func TestRectifyAxisAlignedCropRoundTrips(t *testing.T) {
	f := checkerboardFrame(400, 400)
	q := geom.Quad{{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 300}, {X: 100, Y: 300}}

	out, err := Rectify(f, q)
	if err != nil {
		t.Fatalf("Rectify returned error: %v", err)
	}
	if out.Width != 200 || out.Height != 200 {
		t.Fatalf("got dims (%d,%d), want (200,200)", out.Width, out.Height)
	}

	mismatches := 0
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			want := f.Pix[(y+100)*f.Stride+(x+100)]
			got := out.Pix[y*out.Stride+x]
			diff := int(want) - int(got)
			if diff < -10 || diff > 10 {
				mismatches++
			}
		}
	}
	if mismatches > out.Width*out.Height/100 {
		t.Fatalf("too many pixel mismatches: %d out of %d", mismatches, out.Width*out.Height)
	}
}

func TestRectifyRejectsInvalidFrame(t *testing.T) {
	q := geom.Quad{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	_, err := Rectify(imaging.Frame{}, q)
	if err != imaging.ErrInvalidFrame {
		t.Fatalf("got err %v, want ErrInvalidFrame", err)
	}
}

func TestRectifyDegenerateQuadFails(t *testing.T) {
	f := checkerboardFrame(100, 100)
	degenerate := geom.Quad{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	_, err := Rectify(f, degenerate)
	if err != ErrRectificationFailed {
		t.Fatalf("got err %v, want ErrRectificationFailed", err)
	}
}
