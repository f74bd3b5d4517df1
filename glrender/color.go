package glrender

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
)

var red = color.RGBA{R: 255, A: 255}

// DistanceColorIQ returns a conversion of signed distances to the banded
// coloring used on [Inigo Quilez]'s 2D distance function articles: warm
// outside, cool inside and white at the boundary. A good characteristic
// distance is a third of the canvas's normalized size. NaN maps to red.
//
// [Inigo Quilez]: https://iquilezles.org/articles/distfunctions2d/
func DistanceColorIQ(characteristicDistance float32) func(float32) color.Color {
	inv := 1 / characteristicDistance
	return func(d float32) color.Color {
		if math32.IsNaN(d) {
			return red
		}
		d *= inv
		c := [3]float32{0.65, 0.85, 1.0}
		if d > 0 {
			c = [3]float32{0.9, 0.6, 0.3}
		}
		band := (1 - math32.Exp(-6*math32.Abs(d))) * (0.8 + 0.2*math32.Cos(150*d))
		edge := 1 - ms1.SmoothStep(0, 0.01, math32.Abs(d))
		for i := range c {
			c[i] *= band
			c[i] += (1 - c[i]) * edge
		}
		return RGB(c)
	}
}
