package contour

import (
	"math"
	"testing"

	"github.com/fieldscan/scancore/internal/geom"
)

func rectEdgeMask(w, h, x1, y1, x2, y2 int) [][]bool {
	edges := make([][]bool, h)
	for y := range edges {
		edges[y] = make([]bool, w)
	}
	for x := x1; x <= x2; x++ {
		edges[y1][x] = true
		edges[y2][x] = true
	}
	for y := y1; y <= y2; y++ {
		edges[y][x1] = true
		edges[y][x2] = true
	}
	return edges
}

func TestExternalContoursFindsRectangleOutline(t *testing.T) {
	edges := rectEdgeMask(200, 200, 40, 40, 160, 160)
	contours := ExternalContours(edges, 200, 200)
	if len(contours) == 0 {
		t.Fatal("expected at least one contour")
	}
	if len(contours[0].Points) < 4 {
		t.Fatalf("expected at least 4 boundary points, got %d", len(contours[0].Points))
	}
}

func TestExternalContoursSortedByAreaDescending(t *testing.T) {
	edges := rectEdgeMask(300, 300, 10, 10, 280, 280)
	// add a small disjoint square
	for x := 5; x <= 8; x++ {
		edges[295][x] = true
		edges[298][x] = true
	}
	for y := 295; y <= 298; y++ {
		edges[y][5] = true
		edges[y][8] = true
	}

	contours := ExternalContours(edges, 300, 300)
	for i := 1; i < len(contours); i++ {
		if contours[i].Area > contours[i-1].Area {
			t.Fatalf("contours not sorted descending by area: %v", contours)
		}
	}
}

func TestSimplifyReducesNearlyStraightEdges(t *testing.T) {
	// A square traced boundary has many collinear points per side; after
	// Douglas-Peucker with a generous epsilon it should collapse to ~4
	// corners.
	edges := rectEdgeMask(100, 100, 10, 10, 90, 90)
	contours := ExternalContours(edges, 100, 100)
	if len(contours) == 0 {
		t.Fatal("expected a contour")
	}

	c := contours[0]
	simplified := Simplify(c.Points, 0.02*c.Perimeter())
	if len(simplified) > 8 {
		t.Fatalf("expected simplification to collapse near-straight edges, got %d points", len(simplified))
	}
}

func TestMinAreaRectOnAxisAlignedSquare(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	rect := MinAreaRect(pts)
	q, err := geom.Canonicalize(rect)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	w, h := q.Dims()
	if math.Abs(w-10) > 1e-6 || math.Abs(h-10) > 1e-6 {
		t.Fatalf("got dims (%v,%v), want (10,10)", w, h)
	}
}

func TestIntersectParallelLinesFail(t *testing.T) {
	l := Line{Start: geom.Point{X: 0, Y: 0}, End: geom.Point{X: 10, Y: 0}}
	m := Line{Start: geom.Point{X: 0, Y: 5}, End: geom.Point{X: 10, Y: 5}}
	_, ok := Intersect(l, m)
	if ok {
		t.Fatal("expected parallel lines to report no intersection")
	}
}

func TestIntersectPerpendicularLines(t *testing.T) {
	l := Line{Start: geom.Point{X: 0, Y: 5}, End: geom.Point{X: 10, Y: 5}}
	m := Line{Start: geom.Point{X: 5, Y: 0}, End: geom.Point{X: 5, Y: 10}}
	p, ok := Intersect(l, m)
	if !ok {
		t.Fatal("expected intersection")
	}
	if math.Abs(p.X-5) > 1e-6 || math.Abs(p.Y-5) > 1e-6 {
		t.Fatalf("got %v, want (5,5)", p)
	}
}
