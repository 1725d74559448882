package contour

import (
	"math"
	"sort"

	"github.com/fieldscan/scancore/internal/geom"
)

// Line is a detected line segment in frame pixel space.
type Line struct {
	Start, End geom.Point
	Votes      int
}

// HoughLines runs a probabilistic Hough line transform against a binary
// edge mask, returning detected segments sorted by vote count,
// descending, capped at maxLines. threshold is the minimum accumulator
// vote count for a line to be considered.
func HoughLines(edges [][]bool, w, h, threshold, maxLines int) []Line {
	maxDist := int(math.Sqrt(float64(w*w + h*h)))
	numAngles := 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	type peak struct {
		rho, theta, votes int
	}
	var peaks []peak
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			v := accumulator[rhoIdx][theta]
			if v < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > v {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rhoIdx - maxDist, theta, v})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].votes > peaks[j].votes })

	lines := make([]Line, 0, maxLines)
	for _, pk := range peaks {
		if len(lines) >= maxLines {
			break
		}
		angle := float64(pk.theta) * math.Pi / 180.0
		cosA, sinA := math.Cos(angle), math.Sin(angle)
		rho := float64(pk.rho)

		var pts []geom.Point
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !edges[y][x] {
					continue
				}
				if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) < 2.0 {
					pts = append(pts, geom.Point{X: float64(x), Y: float64(y)})
				}
			}
		}
		if len(pts) == 0 {
			continue
		}

		minProj, maxProj := math.Inf(1), math.Inf(-1)
		var start, end geom.Point
		for _, p := range pts {
			d := -p.X*sinA + p.Y*cosA // position along the line's direction
			if d < minProj {
				minProj, start = d, p
			}
			if d > maxProj {
				maxProj, end = d, p
			}
		}

		lines = append(lines, Line{Start: start, End: end, Votes: pk.votes})
	}

	return lines
}

// Angle returns the direction angle of Start->End in degrees, in
// (-180, 180].
func (l Line) Angle() float64 {
	dx := l.End.X - l.Start.X
	dy := l.End.Y - l.Start.Y
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// MeanY and MeanX are used to pick the "outermost" line within an
// orthogonal group, per the quad extractor's Strategy C.
func (l Line) MeanY() float64 { return (l.Start.Y + l.End.Y) / 2 }
func (l Line) MeanX() float64 { return (l.Start.X + l.End.X) / 2 }

// Intersect computes the intersection point of the infinite lines
// through l and m. ok is false for parallel (or near-parallel) lines.
func Intersect(l, m Line) (geom.Point, bool) {
	x1, y1, x2, y2 := l.Start.X, l.Start.Y, l.End.X, l.End.Y
	x3, y3, x4, y4 := m.Start.X, m.Start.Y, m.End.X, m.End.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-9 {
		return geom.Point{}, false
	}

	px := ((x1*y2-y1*x2)*(x3-x4) - (x1-x2)*(x3*y4-y3*x4)) / denom
	py := ((x1*y2-y1*x2)*(y3-y4) - (y1-y2)*(x3*y4-y3*x4)) / denom
	return geom.Point{X: px, Y: py}, true
}
