package rectify

import (
	"errors"
	"math"

	"github.com/fieldscan/scancore/internal/geom"
)

// ErrDegenerateQuad is returned when a quadrilateral produces a
// projective transform with a non-finite coefficient and cannot be
// rectified.
var ErrDegenerateQuad = errors.New("rectify: degenerate quadrilateral, cannot build transform")

// Transform is a 3x3 projective transform in the classic
// quadrilateral-to-quadrilateral form: it maps a point (x, y) to
// ((a11*x + a21*y + a31)/d, (a12*x + a22*y + a32)/d) where
// d = a13*x + a23*y + a33.
type Transform struct {
	a11, a12, a13 float64
	a21, a22, a23 float64
	a31, a32, a33 float64
}

// Apply maps one point through the transform.
func (t *Transform) Apply(p geom.Point) geom.Point {
	d := t.a13*p.X + t.a23*p.Y + t.a33
	return geom.Point{
		X: (t.a11*p.X + t.a21*p.Y + t.a31) / d,
		Y: (t.a12*p.X + t.a22*p.Y + t.a32) / d,
	}
}

func squareToQuad(q geom.Quad) *Transform {
	x0, y0 := q[0].X, q[0].Y
	x1, y1 := q[1].X, q[1].Y
	x2, y2 := q[2].X, q[2].Y
	x3, y3 := q[3].X, q[3].Y

	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		return &Transform{
			a11: x1 - x0, a21: x2 - x1, a31: x0,
			a12: y1 - y0, a22: y2 - y1, a32: y0,
			a13: 0, a23: 0, a33: 1,
		}
	}

	dx1 := x1 - x2
	dx2 := x3 - x2
	dy1 := y1 - y2
	dy2 := y3 - y2
	denom := dx1*dy2 - dx2*dy1
	a13 := (dx3*dy2 - dx2*dy3) / denom
	a23 := (dx1*dy3 - dx3*dy1) / denom
	return &Transform{
		a11: x1 - x0 + a13*x1, a21: x3 - x0 + a23*x3, a31: x0,
		a12: y1 - y0 + a13*y1, a22: y3 - y0 + a23*y3, a32: y0,
		a13: a13, a23: a23, a33: 1,
	}
}

func (t *Transform) adjoint() *Transform {
	return &Transform{
		a11: t.a22*t.a33 - t.a23*t.a32,
		a21: t.a23*t.a31 - t.a21*t.a33,
		a31: t.a21*t.a32 - t.a22*t.a31,
		a12: t.a13*t.a32 - t.a12*t.a33,
		a22: t.a11*t.a33 - t.a13*t.a31,
		a32: t.a12*t.a31 - t.a11*t.a32,
		a13: t.a12*t.a23 - t.a13*t.a22,
		a23: t.a13*t.a21 - t.a11*t.a23,
		a33: t.a11*t.a22 - t.a12*t.a21,
	}
}

func (t *Transform) times(o *Transform) *Transform {
	return &Transform{
		a11: t.a11*o.a11 + t.a21*o.a12 + t.a31*o.a13,
		a21: t.a11*o.a21 + t.a21*o.a22 + t.a31*o.a23,
		a31: t.a11*o.a31 + t.a21*o.a32 + t.a31*o.a33,
		a12: t.a12*o.a11 + t.a22*o.a12 + t.a32*o.a13,
		a22: t.a12*o.a21 + t.a22*o.a22 + t.a32*o.a23,
		a32: t.a12*o.a31 + t.a22*o.a32 + t.a32*o.a33,
		a13: t.a13*o.a11 + t.a23*o.a12 + t.a33*o.a13,
		a23: t.a13*o.a21 + t.a23*o.a22 + t.a33*o.a23,
		a33: t.a13*o.a31 + t.a23*o.a32 + t.a33*o.a33,
	}
}

func quadToSquare(q geom.Quad) *Transform {
	return squareToQuad(q).adjoint()
}

// BuildTransform computes the projective transform mapping src (in
// canonical TL,TR,BR,BL order) onto dst (same order, typically the
// axis-aligned destination rectangle's corners). It returns
// ErrDegenerateQuad if any coefficient of the resulting matrix is
// non-finite.
func BuildTransform(src, dst geom.Quad) (*Transform, error) {
	srcToUnit := quadToSquare(src)
	unitToDst := squareToQuad(dst)
	t := unitToDst.times(srcToUnit)

	coeffs := []float64{t.a11, t.a12, t.a13, t.a21, t.a22, t.a23, t.a31, t.a32, t.a33}
	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrDegenerateQuad
		}
	}
	return t, nil
}

// DestinationSize computes the output dimensions for rectifying src per
// spec: the larger of each pair of opposite edges, rounded to the
// nearest integer and clamped to at least 1.
func DestinationSize(q geom.Quad) (w, h int) {
	wf := math.Max(geom.Distance(q[0], q[1]), geom.Distance(q[3], q[2]))
	hf := math.Max(geom.Distance(q[1], q[2]), geom.Distance(q[0], q[3]))
	w = int(math.Round(wf))
	h = int(math.Round(hf))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// DestinationQuad returns the canonical axis-aligned destination corners
// for an output of size w x h, in the same TL,TR,BR,BL order as src.
func DestinationQuad(w, h int) geom.Quad {
	return geom.Quad{
		{X: 0, Y: 0},
		{X: float64(w), Y: 0},
		{X: float64(w), Y: float64(h)},
		{X: 0, Y: float64(h)},
	}
}
