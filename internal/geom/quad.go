package geom

import (
	"errors"
	"math"
)

// Quad is an ordered 4-tuple of points, canonically [TL, TR, BR, BL]
// (clockwise starting at the top-left corner). Corner order is an
// invariant once a Quad leaves Canonicalize/Validate: nothing downstream
// re-derives it.
type Quad [4]Point

const (
	// MinAspectRatio and MaxAspectRatio bound w/h for an accepted quad.
	MinAspectRatio = 0.25
	MaxAspectRatio = 4.0

	// MinCornerAngleDeg and MaxCornerAngleDeg bound every interior angle
	// of an accepted quad, in degrees.
	MinCornerAngleDeg = 50.0
	MaxCornerAngleDeg = 130.0
)

// ErrWrongPointCount is returned when a raw candidate does not have
// exactly four points.
var ErrWrongPointCount = errors.New("geom: quad candidate must have exactly 4 points")

// ErrBadAspectRatio is returned when width/height falls outside
// [MinAspectRatio, MaxAspectRatio].
var ErrBadAspectRatio = errors.New("geom: aspect ratio out of range")

// ErrTooSmall is returned when the quad's area is below the configured
// minimum fraction of the frame area.
var ErrTooSmall = errors.New("geom: area below minimum frame area percent")

// ErrBadCornerAngle is returned when an interior angle falls outside
// [MinCornerAngleDeg, MaxCornerAngleDeg].
var ErrBadCornerAngle = errors.New("geom: corner angle out of range")

// Canonicalize orders four raw points as TL, TR, BR, BL using a sum/
// difference extrema rule: TL minimizes x+y, BR maximizes x+y, TR
// maximizes x-y, BL minimizes x-y. This is robust to rotation up to
// +/-45 degrees; larger rotations are rejected later by the corner-angle
// check.
func Canonicalize(points []Point) (Quad, error) {
	if len(points) != 4 {
		return Quad{}, ErrWrongPointCount
	}

	tl, br, tr, bl := points[0], points[0], points[0], points[0]
	minSum, maxSum := sumXY(points[0]), sumXY(points[0])
	minDiff, maxDiff := diffXY(points[0]), diffXY(points[0])

	for _, p := range points[1:] {
		if s := sumXY(p); s < minSum {
			minSum, tl = s, p
		} else if s > maxSum {
			maxSum, br = s, p
		}
		if d := diffXY(p); d > maxDiff {
			maxDiff, tr = d, p
		} else if d < minDiff {
			minDiff, bl = d, p
		}
	}

	return Quad{tl, tr, br, bl}, nil
}

func sumXY(p Point) float64  { return p.X + p.Y }
func diffXY(p Point) float64 { return p.X - p.Y }

// ShoelaceArea returns the absolute area of an arbitrary simple polygon
// via the shoelace formula. The result is always non-negative.
func ShoelaceArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

// Dims returns the quad's width and height, each taken as the larger of
// its two parallel edges, matching the w/h definition used by both the
// validator (aspect ratio) and the rectifier (destination size).
func (q Quad) Dims() (w, h float64) {
	w = math.Max(Distance(q[0], q[1]), Distance(q[3], q[2])) // TL-TR vs BL-BR
	h = math.Max(Distance(q[1], q[2]), Distance(q[0], q[3])) // TR-BR vs TL-BL
	return w, h
}

// Area returns the shoelace area of the quad's four corners in order.
func (q Quad) Area() float64 {
	return ShoelaceArea(q[:])
}

// IsClockwise reports whether the quad's TL,TR,BR,BL ordering is
// clockwise in image coordinates (y increasing downward), i.e. the cross
// product of (TR-TL) x (BL-TL) is positive. This is invariant 1 from the
// data model.
func (q Quad) IsClockwise() bool {
	return Cross(Sub(q[1], q[0]), Sub(q[3], q[0])) > 0
}

// Validate runs the five checks from the geometry validator (C3) against
// a raw 4-point candidate and returns a canonicalized quad only if every
// check passes. frameW, frameH are the dimensions of the frame the
// candidate was extracted from; minFrameAreaPercent is the configured
// minimum fraction of frameW*frameH the quad's area must reach.
func Validate(points []Point, frameW, frameH, minFrameAreaPercent float64) (Quad, error) {
	q, err := Canonicalize(points)
	if err != nil {
		return Quad{}, err
	}

	w, h := q.Dims()
	if h == 0 || w/h < MinAspectRatio || w/h > MaxAspectRatio {
		return Quad{}, ErrBadAspectRatio
	}

	minArea := minFrameAreaPercent * frameW * frameH
	if q.Area() < minArea {
		return Quad{}, ErrTooSmall
	}

	for i := 0; i < 4; i++ {
		prev := q[(i+3)%4]
		curr := q[i]
		next := q[(i+1)%4]
		angle := AngleBetween(curr, prev, next)
		if angle < MinCornerAngleDeg || angle > MaxCornerAngleDeg {
			return Quad{}, ErrBadCornerAngle
		}
	}

	return q, nil
}

// ClampToFrame clamps every corner of q into [0,w] x [0,h], preserving
// invariant 2 of the data model.
func ClampToFrame(q Quad, w, h float64) Quad {
	var out Quad
	for i, p := range q {
		out[i] = Clamp(p, w, h)
	}
	return out
}
