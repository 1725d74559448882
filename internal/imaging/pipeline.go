package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// PipelineConfig parameterizes the five fixed preprocessing steps. The
// zero value is not usable; use DefaultPipelineConfig.
type PipelineConfig struct {
	// DenoiseRadius approximates a diameter-9 bilateral filter using
	// bild's median filter, the closest edge-preserving primitive
	// available.
	DenoiseRadius float64

	// BlurSigma is the Gaussian blur radius approximating a 5x5 kernel.
	BlurSigma float64

	// CannyLow and CannyHigh are the hysteresis thresholds (0-255)
	// applied to the Sobel edge magnitude.
	CannyLow, CannyHigh float64

	// DilateRadius approximates a 5x5 elliptical structuring element.
	DilateRadius float64
}

// DefaultPipelineConfig returns the fixed preprocessing parameters used
// by the document scanner pipeline.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		DenoiseRadius: 4,
		BlurSigma:     1.1,
		CannyLow:      30,
		CannyHigh:     100,
		DilateRadius:  2.5,
	}
}

// Pipeline runs the preprocessor (C1): grayscale, denoise, blur, edge
// extraction with hysteresis, and dilation, in that fixed order.
type Pipeline struct {
	cfg PipelineConfig
}

// NewPipeline constructs a Pipeline with the given configuration.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run executes the five-step pipeline against f and returns a
// single-channel edge map of the same dimensions. All intermediate
// buffers (grayscale, denoised, blurred, magnitude) are local to this
// call and released on return; only the edge map is handed back.
func (p *Pipeline) Run(f Frame) (Frame, error) {
	if err := f.Validate(); err != nil {
		return Frame{}, err
	}

	src := f.ToImage()

	gray := src
	if f.Channels != 1 {
		gray = effect.Grayscale(src)
	}

	denoised := effect.Median(gray, p.cfg.DenoiseRadius)
	blurred := blur.Gaussian(denoised, p.cfg.BlurSigma)
	magnitude := effect.Sobel(blurred)

	edges := hysteresis(magnitude, p.cfg.CannyLow, p.cfg.CannyHigh)
	dilated := effect.Dilate(edges, p.cfg.DilateRadius)

	return FromImage(dilated), nil
}

// hysteresis applies Canny-style double-threshold edge tracking to a
// Sobel magnitude image, producing a binary (black/white) edge map. A
// pixel at or above high is a strong edge. A pixel between low and high
// survives only if 8-connected to a strong edge, propagated with a
// stack-based flood fill (the same non-recursive approach the pack's
// contour tracers use to avoid stack overflow on large regions).
func hysteresis(mag image.Image, low, high float64) *image.Gray {
	bounds := mag.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	strong := make([][]bool, h)
	weak := make([][]bool, h)
	for y := 0; y < h; y++ {
		strong[y] = make([]bool, w)
		weak[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			r, g, b, _ := mag.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			v := (0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8))
			if v >= high {
				strong[y][x] = true
			} else if v >= low {
				weak[y][x] = true
			}
		}
	}

	kept := make([][]bool, h)
	for y := range kept {
		kept[y] = make([]bool, w)
	}

	type pt struct{ x, y int }
	stack := make([]pt, 0, 64)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if strong[y][x] && !kept[y][x] {
				stack = append(stack, pt{x, y})
				for len(stack) > 0 {
					cur := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					if cur.x < 0 || cur.y < 0 || cur.x >= w || cur.y >= h || kept[cur.y][cur.x] {
						continue
					}
					if !strong[cur.y][cur.x] && !weak[cur.y][cur.x] {
						continue
					}
					kept[cur.y][cur.x] = true
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							if dx == 0 && dy == 0 {
								continue
							}
							stack = append(stack, pt{cur.x + dx, cur.y + dy})
						}
					}
				}
			}
		}
	}

	out := image.NewGray(bounds)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if kept[y][x] {
				v = 255
			}
			out.SetGray(bounds.Min.X+x, bounds.Min.Y+y, color.Gray{Y: v})
		}
	}
	return out
}
