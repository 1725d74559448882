package contour

import (
	"math"

	"github.com/fieldscan/scancore/internal/geom"
)

// MinAreaRect fits the minimum-area rotated rectangle enclosing points,
// using the rotating-calipers technique over the convex hull: the
// minimum-area bounding rectangle always has one side flush with a hull
// edge, so only |hull| candidate orientations need to be checked.
//
// Returns the rectangle's four corners in an arbitrary but consistent
// winding order; callers that need canonical TL/TR/BR/BL order should
// run the result through geom.Canonicalize.
func MinAreaRect(points []geom.Point) []geom.Point {
	hull := ConvexHull(points)
	n := len(hull)
	if n == 0 {
		return nil
	}
	if n < 3 {
		return hull
	}

	bestArea := math.Inf(1)
	var best [4]geom.Point

	for i := 0; i < n; i++ {
		a := hull[i]
		b := hull[(i+1)%n]
		edge := geom.Sub(b, a)
		edgeLen := geom.Norm(edge)
		if edgeLen == 0 {
			continue
		}
		ux, uy := edge.X/edgeLen, edge.Y/edgeLen // unit vector along edge
		vx, vy := -uy, ux                        // unit vector perpendicular

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			rel := geom.Sub(p, a)
			u := rel.X*ux + rel.Y*uy
			v := rel.X*vx + rel.Y*vy
			minU, maxU = math.Min(minU, u), math.Max(maxU, u)
			minV, maxV = math.Min(minV, v), math.Max(maxV, v)
		}

		area := (maxU - minU) * (maxV - minV)
		if area < bestArea {
			bestArea = area
			corner := func(u, v float64) geom.Point {
				return geom.Point{X: a.X + u*ux + v*vx, Y: a.Y + u*uy + v*vy}
			}
			best = [4]geom.Point{
				corner(minU, minV),
				corner(maxU, minV),
				corner(maxU, maxV),
				corner(minU, maxV),
			}
		}
	}

	return best[:]
}
