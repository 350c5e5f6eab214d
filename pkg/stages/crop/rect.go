// Package crop implements the per-frame crop stage and its geometry.
package crop

import (
	"fmt"
	"math"

	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
)

// ComputeRect converts a percentage-based crop specification into an
// absolute pixel rectangle for a frame of the given dimensions.
//
// A nil spec selects the full frame. With a spec, the rectangle is:
//
//	top    = round((100 - bottomOffset)/100 * h)
//	height = round(h - top - bottom/100 * h)
//	left   = round(left/100 * w)
//	width  = round(w - left - (100 - leftOffset)/100 * w)
//
// Rounding is round-half-away-from-zero on the intermediate float
// (math.Round). The rectangle must be non-degenerate and fully contained
// in the frame after rounding; otherwise the degenerate rectangle is
// returned along with an error.
func ComputeRect(frameWidth, frameHeight int, spec *pipeline.CropSpec) (pipeline.Rect, error) {
	if frameWidth <= 0 || frameHeight <= 0 {
		return pipeline.Rect{}, fmt.Errorf("non-positive frame dimensions %dx%d", frameWidth, frameHeight)
	}

	if spec == nil {
		return pipeline.Rect{Left: 0, Top: 0, Width: frameWidth, Height: frameHeight}, nil
	}

	w := float64(frameWidth)
	h := float64(frameHeight)

	top := int(math.Round((100 - spec.BottomOffset) / 100 * h))
	height := int(math.Round(h - float64(top) - spec.Bottom/100*h))
	left := int(math.Round(spec.Left / 100 * w))
	width := int(math.Round(w - float64(left) - (100-spec.LeftOffset)/100*w))

	rect := pipeline.Rect{Left: left, Top: top, Width: width, Height: height}

	if width <= 0 || height <= 0 {
		return rect, fmt.Errorf("degenerate rectangle %dx%d", width, height)
	}
	if left < 0 || top < 0 || left+width > frameWidth || top+height > frameHeight {
		return rect, fmt.Errorf("rectangle exceeds frame bounds %dx%d", frameWidth, frameHeight)
	}

	return rect, nil
}
