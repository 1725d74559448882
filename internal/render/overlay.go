package render

import (
	"errors"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/fieldscan/scancore/internal/geom"
	"github.com/fieldscan/scancore/internal/imaging"
)

// ErrInvalidOptions is returned for an overlay request with an
// unparseable stroke color or an out-of-range fill alpha.
var ErrInvalidOptions = errors.New("render: invalid overlay options")

// LockedStrokeColor is the tint the overlay stroke blends toward as the
// tracker's stability count approaches the required threshold. It is a
// saturated green distinct from the default stroke so a held-steady
// document is visually unambiguous.
const LockedStrokeColor = "#00E676"

// OverlayOptions configures DrawPolygonOverlay. StrokeColorHex and
// FillAlpha ordinarily come straight from tracker.Config's
// StrokeColor/FillAlpha fields.
type OverlayOptions struct {
	StrokeColorHex string
	StrokeWidth    int
	FillAlpha      float32

	// StabilityFraction, in [0,1], is stable_frame_count /
	// required_stable_frames for the frame being rendered. A value of 0
	// draws the plain stroke color; a value of 1 draws LockedStrokeColor;
	// values in between blend the two in Lab space. Callers that don't
	// track stability can leave this at 0.
	StabilityFraction float32
}

// DrawPolygonOverlay renders q's stroke and translucent fill onto a copy
// of f and returns the copy; f itself is never mutated. The source
// frame is promoted to 4-channel NRGBA if it arrived as grayscale.
func DrawPolygonOverlay(f imaging.Frame, q geom.Quad, opts OverlayOptions) (imaging.Frame, error) {
	if err := f.Validate(); err != nil {
		return imaging.Frame{}, err
	}
	if opts.FillAlpha < 0 || opts.FillAlpha > 1 {
		return imaging.Frame{}, ErrInvalidOptions
	}
	stroke, err := colorful.Hex(opts.StrokeColorHex)
	if err != nil {
		return imaging.Frame{}, ErrInvalidOptions
	}
	if opts.StabilityFraction > 0 {
		locked, err := colorful.Hex(LockedStrokeColor)
		if err != nil {
			return imaging.Frame{}, ErrInvalidOptions
		}
		t := float64(opts.StabilityFraction)
		if t > 1 {
			t = 1
		}
		stroke = stroke.BlendLab(locked, t)
	}

	out := toRGBA(f)

	fillPolygonQuad(out, q, stroke, opts.FillAlpha)

	width := opts.StrokeWidth
	if width < 1 {
		width = 2
	}
	for i := 0; i < 4; i++ {
		drawThickLine(out, q[i], q[(i+1)%4], stroke, width)
	}

	return out, nil
}

func toRGBA(f imaging.Frame) imaging.Frame {
	if f.Channels >= 4 {
		out := imaging.Frame{Width: f.Width, Height: f.Height, Stride: f.Stride, Channels: f.Channels, Pix: make([]byte, len(f.Pix))}
		copy(out.Pix, f.Pix)
		return out
	}
	out := imaging.Frame{Width: f.Width, Height: f.Height, Stride: f.Width * 4, Channels: 4, Pix: make([]byte, f.Width*f.Height*4)}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := color.NRGBAModel.Convert(f.At(x, y)).(color.NRGBA)
			off := y*out.Stride + x*4
			out.Pix[off+0], out.Pix[off+1], out.Pix[off+2], out.Pix[off+3] = c.R, c.G, c.B, c.A
		}
	}
	return out
}

func blendPixel(f imaging.Frame, x, y int, c colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	off := y*f.Stride + x*f.Channels
	dst := colorful.Color{R: float64(f.Pix[off+0]) / 255, G: float64(f.Pix[off+1]) / 255, B: float64(f.Pix[off+2]) / 255}
	f.Pix[off+0], f.Pix[off+1], f.Pix[off+2] = dst.BlendLab(c, alpha).Clamped().RGB255()
}

// fillPolygonQuad alpha-blends c into every pixel inside q, using a
// scanline point-in-polygon test restricted to q's bounding box.
func fillPolygonQuad(f imaging.Frame, q geom.Quad, c colorful.Color, alpha float32) {
	if alpha <= 0 {
		return
	}
	minX, minY, maxX, maxY := q[0].X, q[0].Y, q[0].X, q[0].Y
	for _, p := range q {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	x0 := clampInt(int(math.Floor(minX)), 0, f.Width-1)
	x1 := clampInt(int(math.Ceil(maxX)), 0, f.Width-1)
	y0 := clampInt(int(math.Floor(minY)), 0, f.Height-1)
	y1 := clampInt(int(math.Ceil(maxY)), 0, f.Height-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if pointInQuad(q, float64(x)+0.5, float64(y)+0.5) {
				blendPixel(f, x, y, c, float64(alpha))
			}
		}
	}
}

// pointInQuad is a standard even-odd ray-casting point-in-polygon test.
func pointInQuad(q geom.Quad, px, py float64) bool {
	inside := false
	for i, j := 0, 3; i < 4; j, i = i, i+1 {
		xi, yi := q[i].X, q[i].Y
		xj, yj := q[j].X, q[j].Y
		if (yi > py) != (yj > py) {
			xCross := xi + (py-yi)/(yj-yi)*(xj-xi)
			if px < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// drawThickLine draws a line from a to b with the given pixel width by
// stepping along the line with Bresenham and stamping a small square at
// each step.
func drawThickLine(f imaging.Frame, a, b geom.Point, c colorful.Color, width int) {
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	err := dx - dy

	x, y := x0, y0
	half := width / 2
	for {
		for oy := -half; oy <= half; oy++ {
			for ox := -half; ox <= half; ox++ {
				blendPixel(f, x+ox, y+oy, c, 1.0)
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
