// Package geometry computes the letterboxed resize transforms applied
// to exported images and carries annotation coordinates through them.
package geometry

import "math"

// ResizeRatio returns the single scale factor that fits an image of the
// given size inside the target box while preserving its aspect ratio.
// With noUpscale set the factor never exceeds one, so a small image is
// left at its native size.
func ResizeRatio(width, height, targetWidth, targetHeight int, noUpscale bool) float64 {
	ratio := math.Min(
		float64(targetWidth)/float64(width),
		float64(targetHeight)/float64(height),
	)
	if noUpscale && ratio > 1 {
		return 1
	}
	return ratio
}

// ResizeDimensions returns the final dimensions of an image resized
// into a target box. Zero target dimensions default to the original
// size, so a caller that only constrains one axis still gets a usable
// box.
//
// With keepAspect the aspect-preserving ratio is applied and the result
// floored, capped at the target on each axis. Without it each axis
// stretches to its target independently, still capped at the original
// size when noUpscale is set.
func ResizeDimensions(width, height, targetWidth, targetHeight int, keepAspect, noUpscale bool) (int, int) {
	if targetWidth == 0 {
		targetWidth = width
	}
	if targetHeight == 0 {
		targetHeight = height
	}

	if !keepAspect {
		if noUpscale {
			return min(targetWidth, width), min(targetHeight, height)
		}
		return targetWidth, targetHeight
	}

	ratio := ResizeRatio(width, height, targetWidth, targetHeight, noUpscale)
	w := int(math.Floor(float64(width) * ratio))
	h := int(math.Floor(float64(height) * ratio))
	return min(w, targetWidth), min(h, targetHeight)
}

// ResizeTransform returns the letterbox placement for a resized image
// inside its target box: the origin the resized image is pasted at,
// centered on both axes, and the per-axis coordinate ratios from the
// original image to the resized one.
func ResizeTransform(width, height, targetWidth, targetHeight, resizeWidth, resizeHeight int) Transform {
	return Transform{
		OriginX: float64(targetWidth-resizeWidth) / 2.0,
		OriginY: float64(targetHeight-resizeHeight) / 2.0,
		RatioX:  float64(resizeWidth) / float64(width),
		RatioY:  float64(resizeHeight) / float64(height),
	}
}
