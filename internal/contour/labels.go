package contour

// compStats tracks the bounding box and pixel count of one connected
// component, used both to seed the Moore-neighbor tracer and to sort
// candidates by area before Douglas-Peucker simplification.
type compStats struct {
	minX, minY, maxX, maxY int
	area                   int
}

// labelComponents performs 8-connected labeling of a binary edge mask
// (edges[y][x] true = foreground). Returns a label grid (0 = background,
// label IDs are 1-based) and per-label stats, in label order.
func labelComponents(edges [][]bool, w, h int) ([]int, []compStats) {
	labels := make([]int, w*h)
	var stats []compStats

	type pt struct{ x, y int }
	stack := make([]pt, 0, 64)

	nextLabel := 1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !edges[y][x] || labels[idx] != 0 {
				continue
			}

			st := compStats{minX: x, minY: y, maxX: x, maxY: y}
			labels[idx] = nextLabel
			stack = append(stack, pt{x, y})

			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				st.area++
				if cur.x < st.minX {
					st.minX = cur.x
				}
				if cur.x > st.maxX {
					st.maxX = cur.x
				}
				if cur.y < st.minY {
					st.minY = cur.y
				}
				if cur.y > st.maxY {
					st.maxY = cur.y
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := cur.x+dx, cur.y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						nidx := ny*w + nx
						if !edges[ny][nx] || labels[nidx] != 0 {
							continue
						}
						labels[nidx] = nextLabel
						stack = append(stack, pt{nx, ny})
					}
				}
			}

			stats = append(stats, st)
			nextLabel++
		}
	}

	return labels, stats
}
