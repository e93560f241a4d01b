// Package assets provides the built-in fallback imagery used when no user
// sources are available.
package assets

import (
	"image"
	"image/color"
	"math"
)

// Pattern generates a deterministic color test pattern: an angular rainbow
// over concentric rings. Image mode falls back to it when the configured
// folder holds no usable images, so the scope always has something to show.
func Pattern(size int) *image.NRGBA {
	if size < 1 {
		size = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - c
			dy := float64(y) + 0.5 - c
			r := math.Hypot(dx, dy) / c
			a := math.Atan2(dy, dx)
			ring := 0.5 + 0.5*math.Sin(r*14)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * (0.5 + 0.5*math.Sin(a*3)) * ring),
				G: uint8(255 * (0.5 + 0.5*math.Sin(a*3+2.1)) * ring),
				B: uint8(255 * (0.5 + 0.5*math.Sin(a*3+4.2)) * ring),
				A: 0xff,
			})
		}
	}
	return img
}
