package render

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/fieldscan/scancore/internal/imaging"
)

// DefaultPreviewMaxDim is the longest edge, in pixels, of the preview
// bitmap attached to a DocumentDetected event.
const DefaultPreviewMaxDim = 480

// Preview downscales f so its longest edge is at most maxDim, using
// x/image/draw's bilinear scaler. Frames already at or under maxDim keep
// their size and are returned as a 4-channel copy.
func Preview(f imaging.Frame, maxDim int) imaging.Frame {
	if maxDim <= 0 {
		maxDim = DefaultPreviewMaxDim
	}
	longest := f.Width
	if f.Height > longest {
		longest = f.Height
	}
	if longest <= maxDim {
		return toRGBA(f)
	}

	scale := float64(maxDim) / float64(longest)
	dstW := int(float64(f.Width) * scale)
	dstH := int(float64(f.Height) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	src := f.ToImage()
	dstImg := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	draw.BiLinear.Scale(dstImg, dstImg.Bounds(), src, src.Bounds(), draw.Over, nil)
	return imaging.FromImage(dstImg)
}
