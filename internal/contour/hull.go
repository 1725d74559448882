package contour

import (
	"sort"

	"github.com/fieldscan/scancore/internal/geom"
)

// ConvexHull returns the convex hull of points in counter-clockwise
// order, using Andrew's monotone chain algorithm.
func ConvexHull(points []geom.Point) []geom.Point {
	pts := append([]geom.Point{}, points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	pts = dedupe(pts)
	n := len(pts)
	if n < 3 {
		return pts
	}

	cross := func(o, a, b geom.Point) float64 {
		return geom.Cross(geom.Sub(a, o), geom.Sub(b, o))
	}

	lower := make([]geom.Point, 0, n)
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]geom.Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return hull
}

func dedupe(pts []geom.Point) []geom.Point {
	out := pts[:0:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			out = append(out, p)
		}
	}
	return out
}
