package contour

import "github.com/fieldscan/scancore/internal/geom"

// Simplify runs Douglas-Peucker polyline simplification on a closed
// contour with the given epsilon, returning the simplified vertex list.
// Strategy A calls this with epsilon = 0.02 * perimeter.
func Simplify(points []geom.Point, epsilon float64) []geom.Point {
	if len(points) < 3 {
		return points
	}

	// Treat the contour as closed: split at the two points farthest
	// apart and simplify each half, which is the standard adaptation of
	// Douglas-Peucker (normally defined on open polylines) to a closed
	// ring.
	i1, i2 := farthestPair(points)
	if i1 > i2 {
		i1, i2 = i2, i1
	}

	half1 := douglasPeucker(points[i1:i2+1], epsilon)
	half2wrap := append(append([]geom.Point{}, points[i2:]...), points[:i1+1]...)
	half2 := douglasPeucker(half2wrap, epsilon)

	out := make([]geom.Point, 0, len(half1)+len(half2))
	out = append(out, half1[:len(half1)-1]...)
	out = append(out, half2[:len(half2)-1]...)
	return out
}

func farthestPair(points []geom.Point) (int, int) {
	maxD := -1.0
	a, b := 0, 0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := geom.Distance(points[i], points[j])
			if d > maxD {
				maxD, a, b = d, i, j
			}
		}
	}
	return a, b
}

// douglasPeucker simplifies an open polyline, keeping its first and last
// points fixed.
func douglasPeucker(points []geom.Point, epsilon float64) []geom.Point {
	n := len(points)
	if n < 3 {
		return points
	}

	first, last := points[0], points[n-1]
	maxDist := -1.0
	splitIdx := -1
	for i := 1; i < n-1; i++ {
		d := perpendicularDistance(points[i], first, last)
		if d > maxDist {
			maxDist, splitIdx = d, i
		}
	}

	if maxDist <= epsilon {
		return []geom.Point{first, last}
	}

	left := douglasPeucker(points[:splitIdx+1], epsilon)
	right := douglasPeucker(points[splitIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

func perpendicularDistance(p, a, b geom.Point) float64 {
	if a == b {
		return geom.Distance(p, a)
	}
	num := geom.Cross(geom.Sub(b, a), geom.Sub(p, a))
	if num < 0 {
		num = -num
	}
	return num / geom.Distance(a, b)
}
