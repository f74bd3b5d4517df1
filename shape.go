package drawbox

import (
	"strconv"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

// Kind identifies the live payload of a [Shape].
type Kind uint8

const (
	KindSquare Kind = iota
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindSquare:
		return "square"
	case KindCircle:
		return "circle"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Square is an axis aligned rounded rectangle. Pos and Size are canvas pixels.
type Square struct {
	Pos   ms2.Vec
	Size  ms2.Vec
	Color [3]float32
	// Radius rounds the corners as a fraction of half the smallest side.
	Radius float32
}

// Circle is centered at Pos with Radius in canvas pixels.
type Circle struct {
	Pos    ms2.Vec
	Radius float32
	Color  [3]float32
}

// Blend controls how a shape combines with the shapes before it.
type Blend struct {
	// Blob is the smooth minimum softness. Negative values are allowed.
	Blob float32
	// ColorSpread in [0,1] widens the color weight falloff of the shape.
	ColorSpread float32
	// Subtract carves the shape out of the accumulated field.
	Subtract bool
}

// Shape is a tagged variant over the editor's shape kinds. Only the payload
// matching Kind is meaningful. Values are not validated.
type Shape struct {
	Kind   Kind
	Square Square
	Circle Circle
	Blend  Blend
}

var white = [3]float32{1, 1, 1}

// DefaultSquare returns the square added by the editor's "Add Square" action.
func DefaultSquare() Shape {
	return Shape{
		Kind: KindSquare,
		Square: Square{
			Pos:    ms2.Vec{X: 50, Y: 50},
			Size:   ms2.Vec{X: 100, Y: 100},
			Color:  white,
			Radius: 0.2,
		},
		Blend: Blend{Blob: 0.5, ColorSpread: 0.5},
	}
}

// DefaultCircle returns the circle added by the editor's "Add Circle" action.
func DefaultCircle() Shape {
	return Shape{
		Kind: KindCircle,
		Circle: Circle{
			Radius: 100,
			Color:  white,
		},
	}
}

// Position returns the shape's center.
func (s Shape) Position() ms2.Vec {
	switch s.Kind {
	case KindSquare:
		return s.Square.Pos
	case KindCircle:
		return s.Circle.Pos
	}
	return ms2.Vec{}
}

// Color returns the shape's RGB color.
func (s Shape) Color() [3]float32 {
	switch s.Kind {
	case KindSquare:
		return s.Square.Color
	case KindCircle:
		return s.Circle.Color
	}
	return [3]float32{}
}

// Translate returns the shape moved by delta.
func (s Shape) Translate(delta ms2.Vec) Shape {
	switch s.Kind {
	case KindSquare:
		s.Square.Pos = ms2.Add(s.Square.Pos, delta)
	case KindCircle:
		s.Circle.Pos = ms2.Add(s.Circle.Pos, delta)
	}
	return s
}

// Contains reports whether the canvas point p lies strictly inside the shape's
// pick region: the bounding box of squares (rounding ignored) and the disk of circles.
func (s Shape) Contains(p ms2.Vec) bool {
	switch s.Kind {
	case KindSquare:
		d := ms2.Sub(p, s.Square.Pos)
		return math32.Abs(d.X) < s.Square.Size.X/2 && math32.Abs(d.Y) < s.Square.Size.Y/2
	case KindCircle:
		return ms2.Norm(ms2.Sub(p, s.Circle.Pos)) < s.Circle.Radius
	}
	return false
}
