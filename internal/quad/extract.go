package quad

import (
	"errors"
	"fmt"
	"math"

	"github.com/fieldscan/scancore/internal/contour"
	"github.com/fieldscan/scancore/internal/geom"
	"github.com/fieldscan/scancore/internal/imaging"
)

// ErrNoCandidate is returned when none of the three strategies produces a
// candidate that passes the geometry validator. It is not an error
// condition for the pipeline; a caller should treat it as "no detection
// this frame".
var ErrNoCandidate = errors.New("quad: no candidate passed validation")

// ErrRejected marks the case where at least one strategy found a shape
// to hand to geom.Validate and Validate rejected it, as opposed to no
// strategy ever finding anything C3-shaped to evaluate in the first
// place. Extract wraps ErrNoCandidate with it, so a caller that only
// cares about "no detection this frame" can keep checking
// errors.Is(err, ErrNoCandidate), while one that also wants to tell a
// rejected candidate apart from a genuinely empty frame can check
// errors.Is(err, ErrRejected).
var ErrRejected = errors.New("quad: candidate rejected by geometry validator")

// Strategy identifies which of the three extraction strategies produced
// a Result.
type Strategy string

const (
	StrategyContour     Strategy = "contour-approx"
	StrategyMinAreaRect Strategy = "min-area-rect"
	StrategyHough       Strategy = "hough-intersect"
)

// Params configures the extractor. FrameWidth/FrameHeight and
// MinFrameAreaPercent are forwarded to the geometry validator; the rest
// parameterize the three strategies themselves.
type Params struct {
	FrameWidth, FrameHeight float64
	MinContourArea          float64
	MinFrameAreaPercent     float64

	// HoughThreshold and HoughMaxLines bound Strategy C's accumulator
	// search; HoughOOBTolerance is expressed as a multiple of the
	// frame's larger dimension, bounding how far an intersection may
	// land outside the frame before being discarded.
	HoughThreshold    int
	HoughMaxLines     int
	HoughOOBTolerance float64
}

// DefaultParams returns extractor parameters derived from the tracker
// configuration defaults (min_contour_area=3000, min_frame_area_percent
// =0.12) plus reasonable Hough search bounds.
func DefaultParams(frameW, frameH float64) Params {
	return Params{
		FrameWidth:          frameW,
		FrameHeight:         frameH,
		MinContourArea:      3000,
		MinFrameAreaPercent: 0.12,
		HoughThreshold:      40,
		HoughMaxLines:       50,
		HoughOOBTolerance:   1.0,
	}
}

// Result is the extractor's output: a validated, canonicalized quad plus
// which strategy produced it (diagnostic only, nothing downstream
// branches on Strategy).
type Result struct {
	Quad     geom.Quad
	Strategy Strategy
}

// Extract tries strategies A, B, and C in strict order against edges,
// returning the first result that passes the geometry validator. Each
// strategy is attempted only if the previous one produced nothing that
// validated.
func Extract(edges imaging.Frame, p Params) (*Result, error) {
	mask := toMask(edges)
	rejected := false

	if res, err := strategyContour(mask, edges.Width, edges.Height, p); err == nil {
		return res, nil
	} else if errors.Is(err, ErrRejected) {
		rejected = true
	}

	if res, err := strategyMinAreaRect(mask, edges.Width, edges.Height, p); err == nil {
		return res, nil
	} else if errors.Is(err, ErrRejected) {
		rejected = true
	}

	if res, err := strategyHough(mask, edges.Width, edges.Height, p); err == nil {
		return res, nil
	} else if errors.Is(err, ErrRejected) {
		rejected = true
	}

	if rejected {
		return nil, fmt.Errorf("%w: %w", ErrNoCandidate, ErrRejected)
	}
	return nil, ErrNoCandidate
}

func toMask(f imaging.Frame) [][]bool {
	mask := make([][]bool, f.Height)
	for y := 0; y < f.Height; y++ {
		mask[y] = make([]bool, f.Width)
		for x := 0; x < f.Width; x++ {
			r, g, b, _ := f.At(x, y).RGBA()
			v := (r>>8 + g>>8 + b>>8) / 3
			mask[y][x] = v > 127
		}
	}
	return mask
}

// strategyContour is Strategy A: polygon approximation of external
// contours, largest-area first.
func strategyContour(mask [][]bool, w, h int, p Params) (*Result, error) {
	contours := contour.ExternalContours(mask, w, h)
	rejected := false
	for _, c := range contours {
		if float64(c.Area) < p.MinContourArea {
			continue
		}
		simplified := contour.Simplify(c.Points, 0.02*c.Perimeter())
		if len(simplified) != 4 {
			continue
		}
		q, err := geom.Validate(simplified, p.FrameWidth, p.FrameHeight, p.MinFrameAreaPercent)
		if err != nil {
			rejected = true
			continue
		}
		return &Result{Quad: q, Strategy: StrategyContour}, nil
	}
	if rejected {
		return nil, ErrRejected
	}
	return nil, ErrNoCandidate
}

// strategyMinAreaRect is Strategy B: fit a minimum-area rotated
// rectangle to the largest contour, recovering curved or slightly
// occluded document edges.
func strategyMinAreaRect(mask [][]bool, w, h int, p Params) (*Result, error) {
	contours := contour.ExternalContours(mask, w, h)
	if len(contours) == 0 || float64(contours[0].Area) <= p.MinContourArea {
		return nil, ErrNoCandidate
	}

	rect := contour.MinAreaRect(contours[0].Points)
	if len(rect) != 4 {
		return nil, ErrNoCandidate
	}

	q, err := geom.Validate(rect, p.FrameWidth, p.FrameHeight, p.MinFrameAreaPercent)
	if err != nil {
		return nil, ErrRejected
	}
	return &Result{Quad: q, Strategy: StrategyMinAreaRect}, nil
}

// strategyHough is Strategy C: cluster Hough lines into two orthogonal
// groups, pick the two outermost lines from each, and intersect them
// pairwise to form a quadrilateral.
func strategyHough(mask [][]bool, w, h int, p Params) (*Result, error) {
	lines := contour.HoughLines(mask, w, h, p.HoughThreshold, p.HoughMaxLines)

	var horizontals, verticals []contour.Line
	for _, l := range lines {
		angle := math.Abs(l.Angle())
		if angle <= 45 || angle >= 135 {
			horizontals = append(horizontals, l)
		} else {
			verticals = append(verticals, l)
		}
	}

	if len(horizontals) < 2 || len(verticals) < 2 {
		return nil, ErrNoCandidate
	}

	topLine, bottomLine := outermostByY(horizontals)
	leftLine, rightLine := outermostByX(verticals)

	tl, ok1 := contour.Intersect(topLine, leftLine)
	tr, ok2 := contour.Intersect(topLine, rightLine)
	br, ok3 := contour.Intersect(bottomLine, rightLine)
	bl, ok4 := contour.Intersect(bottomLine, leftLine)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, ErrNoCandidate
	}

	tol := p.HoughOOBTolerance * math.Max(float64(w), float64(h))
	pts := []geom.Point{tl, tr, br, bl}
	for _, pt := range pts {
		if pt.X < -tol || pt.X > float64(w)+tol || pt.Y < -tol || pt.Y > float64(h)+tol {
			return nil, ErrNoCandidate
		}
	}

	q, err := geom.Validate(pts, p.FrameWidth, p.FrameHeight, p.MinFrameAreaPercent)
	if err != nil {
		return nil, ErrRejected
	}
	return &Result{Quad: q, Strategy: StrategyHough}, nil
}

func outermostByY(lines []contour.Line) (top, bottom contour.Line) {
	top, bottom = lines[0], lines[0]
	for _, l := range lines[1:] {
		if l.MeanY() < top.MeanY() {
			top = l
		}
		if l.MeanY() > bottom.MeanY() {
			bottom = l
		}
	}
	return top, bottom
}

func outermostByX(lines []contour.Line) (left, right contour.Line) {
	left, right = lines[0], lines[0]
	for _, l := range lines[1:] {
		if l.MeanX() < left.MeanX() {
			left = l
		}
		if l.MeanX() > right.MeanX() {
			right = l
		}
	}
	return left, right
}
