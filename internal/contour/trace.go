package contour

import "github.com/fieldscan/scancore/internal/geom"

// Contour is an ordered boundary polygon in frame pixel space, along with
// the pixel count of the connected component it was traced from (used as
// the contour's "area" for Strategy A/B's sort-by-area-descending step).
type Contour struct {
	Points []geom.Point
	Area   int
}

// ExternalContours labels the edge mask's connected components and traces
// each one's outer boundary with Moore-neighbor tracing, returning
// contours sorted by pixel area, descending (largest first), matching
// "sort by contour area, descending" from the quad extractor's Strategy A.
func ExternalContours(edges [][]bool, w, h int) []Contour {
	labels, stats := labelComponents(edges, w, h)

	contours := make([]Contour, 0, len(stats))
	for label, st := range stats {
		pts := traceContourMoore(labels, w, h, label+1, st)
		if len(pts) < 3 {
			continue
		}
		contours = append(contours, Contour{Points: pts, Area: st.area})
	}

	// Insertion sort over every traced component; the minimum-area
	// filter is applied afterwards, by the caller.
	for i := 1; i < len(contours); i++ {
		for j := i; j > 0 && contours[j].Area > contours[j-1].Area; j-- {
			contours[j], contours[j-1] = contours[j-1], contours[j]
		}
	}
	return contours
}

// Perimeter returns the sum of Euclidean distances between consecutive
// points, including the closing edge back to the first point.
func (c Contour) Perimeter() float64 {
	n := len(c.Points)
	if n < 2 {
		return 0
	}
	var p float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		p += geom.Distance(c.Points[i], c.Points[j])
	}
	return p
}

// traceContourMoore extracts a boundary polygon for the given labeled
// component using Moore-neighbor tracing, restricted to the component's
// bounding box. Returned points are pixel-center coordinates, with
// immediately-collinear interior points dropped as they are produced.
func traceContourMoore(labels []int, w, h, label int, st compStats) []geom.Point {
	sx, sy := findStartingBoundaryPixel(labels, w, h, label, st)
	if sx == -1 {
		return nil
	}

	pts := make([]geom.Point, 0, 64)
	cx, cy := sx, sy
	bx, by := sx-1, sy

	addPoint := func(x, y int) {
		p := geom.Point{X: float64(x), Y: float64(y)}
		n := len(pts)
		if n >= 2 {
			a := pts[n-2]
			b := pts[n-1]
			cross := geom.Cross(geom.Sub(b, a), geom.Sub(p, b))
			if cross == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}

	addPoint(cx, cy)

	startCx, startCy, startBx, startBy := cx, cy, bx, by
	maxSteps := w*h*4 + 8

	for steps := 0; steps < maxSteps; steps++ {
		nx, ny, nbx, nby, found := findNextBoundaryPixel(labels, w, h, label, cx, cy, bx, by)
		if !found {
			break
		}
		bx, by = nbx, nby
		cx, cy = nx, ny

		if len(pts) == 0 || pts[len(pts)-1].X != float64(cx) || pts[len(pts)-1].Y != float64(cy) {
			addPoint(cx, cy)
		}

		if cx == startCx && cy == startCy && bx == startBx && by == startBy {
			break
		}
	}

	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

func findStartingBoundaryPixel(labels []int, w, h, label int, st compStats) (int, int) {
	for y := st.minY; y <= st.maxY; y++ {
		for x := st.minX; x <= st.maxX; x++ {
			if isBoundaryPixel(labels, w, h, label, x, y) {
				return x, y
			}
		}
	}
	for y := st.minY; y <= st.maxY; y++ {
		for x := st.minX; x <= st.maxX; x++ {
			if isLabelPixel(labels, w, h, label, x, y) {
				return x, y
			}
		}
	}
	return -1, -1
}

func isBoundaryPixel(labels []int, w, h, label, x, y int) bool {
	if !isLabelPixel(labels, w, h, label, x, y) {
		return false
	}
	return !isLabelPixel(labels, w, h, label, x+1, y) ||
		!isLabelPixel(labels, w, h, label, x-1, y) ||
		!isLabelPixel(labels, w, h, label, x, y+1) ||
		!isLabelPixel(labels, w, h, label, x, y-1)
}

func isLabelPixel(labels []int, w, h, label, x, y int) bool {
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	return labels[y*w+x] == label
}

// findNextBoundaryPixel finds the next boundary pixel in the 8-connected
// Moore neighborhood, scanning clockwise starting just past the
// backtrack direction.
func findNextBoundaryPixel(labels []int, w, h, label int, cx, cy, bx, by int) (nx, ny, nbx, nby int, found bool) {
	inBounds := func(x, y int) bool { return x >= 0 && y >= 0 && x < w && y < h }
	isLabel := func(x, y int) bool {
		return inBounds(x, y) && labels[y*w+x] == label
	}

	ndx := [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	ndy := [8]int{0, 1, 1, 1, 0, -1, -1, -1}

	dirIndex := func(dx, dy int) int {
		for i := 0; i < 8; i++ {
			if ndx[i] == dx && ndy[i] == dy {
				return i
			}
		}
		return 0
	}

	dx, dy := bx-cx, by-cy
	start := (dirIndex(dx, dy) + 1) % 8

	for k := 0; k < 8; k++ {
		i := (start + k) % 8
		tx, ty := cx+ndx[i], cy+ndy[i]
		if isLabel(tx, ty) {
			return tx, ty, cx, cy, true
		}
		bx, by = tx, ty
	}
	return 0, 0, bx, by, false
}
