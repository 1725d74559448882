package geom

import "math"

// Point is a 2-D coordinate in frame pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns p - q as a vector.
func Sub(p, q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of p and q treated as vectors.
func Dot(p, q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2-D scalar cross product of p and q treated as vectors.
func Cross(p, q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Norm returns the Euclidean length of p treated as a vector.
func Norm(p Point) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// AngleBetween returns the interior angle in degrees between the vectors
// from corner to a and corner to b.
func AngleBetween(corner, a, b Point) float64 {
	v1 := Sub(a, corner)
	v2 := Sub(b, corner)
	n1, n2 := Norm(v1), Norm(v2)
	if n1 == 0 || n2 == 0 {
		return 0
	}
	cosTheta := Dot(v1, v2) / (n1 * n2)
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	return math.Acos(cosTheta) * 180 / math.Pi
}

// Clamp restricts p to the rectangle [0,w] x [0,h], preserving invariant 2
// of the data model (points never leave the frame).
func Clamp(p Point, w, h float64) Point {
	return Point{
		X: math.Max(0, math.Min(w, p.X)),
		Y: math.Max(0, math.Min(h, p.Y)),
	}
}
