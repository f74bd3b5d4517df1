// Package glrender renders distance fields to raster images on the CPU.
package glrender

import (
	"image/color"

	"github.com/chewxy/math32"
)

// RGB converts a linear [0,1] RGB triplet to an opaque color, clamping out of range channels.
func RGB(c [3]float32) color.RGBA {
	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 255}
}

func channel(v float32) uint8 {
	if math32.IsNaN(v) || v <= 0 {
		return 0
	} else if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
