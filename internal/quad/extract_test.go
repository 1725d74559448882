package quad

import (
	"errors"
	"testing"

	"github.com/fieldscan/scancore/internal/geom"
	"github.com/fieldscan/scancore/internal/imaging"
)

// fillQuadFrame rasterizes a filled quadrilateral (in any winding order)
// onto a black frame using an even-odd point-in-polygon test, for shapes
// too irregular for the edge-outline helper below.
func fillQuadFrame(w, h int, q geom.Quad) imaging.Frame {
	f := imaging.Frame{Width: w, Height: h, Stride: w, Channels: 1, Pix: make([]byte, w*h)}
	for y := 0; y < h; y++ {
		py := float64(y) + 0.5
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5
			inside := false
			for i := 0; i < 4; i++ {
				a, b := q[i], q[(i+1)%4]
				if (a.Y > py) != (b.Y > py) {
					t := (py - a.Y) / (b.Y - a.Y)
					if px < a.X+t*(b.X-a.X) {
						inside = !inside
					}
				}
			}
			if inside {
				f.Pix[y*w+x] = 255
			}
		}
	}
	return f
}

func rectEdgeFrame(w, h, x1, y1, x2, y2 int) imaging.Frame {
	f := imaging.Frame{Width: w, Height: h, Stride: w, Channels: 1, Pix: make([]byte, w*h)}
	set := func(x, y int) { f.Pix[y*w+x] = 255 }
	for x := x1; x <= x2; x++ {
		set(x, y1)
		set(x, y2)
	}
	for y := y1; y <= y2; y++ {
		set(x1, y)
		set(x2, y)
	}
	return f
}

func TestExtractFindsCleanRectangleViaContourStrategy(t *testing.T) {
	edges := rectEdgeFrame(1000, 1000, 200, 100, 800, 900)
	params := DefaultParams(1000, 1000)

	res, err := Extract(edges, params)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if res.Strategy != StrategyContour {
		t.Fatalf("got strategy %v, want %v", res.Strategy, StrategyContour)
	}

	w, h := res.Quad.Dims()
	if w < 590 || w > 610 || h < 790 || h > 810 {
		t.Fatalf("got dims (%v,%v), want ~(600,800)", w, h)
	}
}

func TestExtractNoCandidateOnBlankFrame(t *testing.T) {
	f := imaging.Frame{Width: 200, Height: 200, Stride: 200, Channels: 1, Pix: make([]byte, 200*200)}
	_, err := Extract(f, DefaultParams(200, 200))
	if err != ErrNoCandidate {
		t.Fatalf("got err %v, want ErrNoCandidate", err)
	}
}

// TestExtractAllStrategiesFailOnSliverShape covers the end of S6's
// fallback chain: a long thin diagonal sliver that is too elongated to
// pass the validator's aspect-ratio bound (see
// geom.TestValidateRejectsSkewedAngles for the related corner-angle
// rejection) no matter which strategy proposes it. Strategy A's
// contour-approx and Strategy B's min-area-rect both resolve to
// essentially the same ~18:1 rectangle and get rejected by
// geom.Validate, and Strategy C's Hough pass finds no candidate because
// all four edges fall into the same "near-45-degree" bucket, leaving
// one of the two required line orientations empty. Since at least one
// strategy did reach the validator and got rejected, Extract wraps
// ErrNoCandidate with ErrRejected rather than returning the bare
// sentinel.
func TestExtractAllStrategiesFailOnSliverShape(t *testing.T) {
	sliver := geom.Quad{
		{X: 868, Y: 910},
		{X: 910, Y: 868},
		{X: 132, Y: 90},
		{X: 90, Y: 132},
	}
	mask := fillQuadFrame(1000, 1000, sliver)

	_, err := Extract(mask, DefaultParams(1000, 1000))
	if !errors.Is(err, ErrNoCandidate) {
		t.Fatalf("got err %v, want it to satisfy errors.Is(err, ErrNoCandidate)", err)
	}
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("got err %v, want it to satisfy errors.Is(err, ErrRejected)", err)
	}
}

// TestExtractNoCandidateIsNotRejectedOnBlankFrame checks that a frame
// with no shape at all, as opposed to one with a shape C3 rejects, does
// not carry the ErrRejected marker.
func TestExtractNoCandidateIsNotRejectedOnBlankFrame(t *testing.T) {
	f := imaging.Frame{Width: 200, Height: 200, Stride: 200, Channels: 1, Pix: make([]byte, 200*200)}
	_, err := Extract(f, DefaultParams(200, 200))
	if errors.Is(err, ErrRejected) {
		t.Fatalf("got err %v, did not want it to satisfy errors.Is(err, ErrRejected)", err)
	}
}
