package drawbox

import (
	"strconv"

	"github.com/soypat/drawbox/glbuild"
	"github.com/soypat/geometry/ms2"
)

// UnsupportedShapeError is returned when a shape kind cannot be rendered by the target programmer.
type UnsupportedShapeError struct {
	Index int
	Kind  Kind
}

func (e *UnsupportedShapeError) Error() string {
	return "shape " + strconv.Itoa(e.Index) + ": unsupported kind " + e.Kind.String()
}

// Primitive returns the shader primitive that renders kind k. ok is false
// for kinds with no primitive.
func (k Kind) Primitive() (prim glbuild.Primitive, ok bool) {
	switch k {
	case KindSquare:
		return glbuild.PrimitiveRectangle, true
	case KindCircle:
		return glbuild.PrimitiveCircle, true
	}
	return 0, false
}

// CheckSupported verifies every shape can be rendered by p. It returns the
// first offending shape as an [*UnsupportedShapeError].
func CheckSupported(shapes []Shape, p *glbuild.Programmer) error {
	for i := range shapes {
		prim, ok := shapes[i].Kind.Primitive()
		if !ok || !p.Supports(prim) {
			return &UnsupportedShapeError{Index: i, Kind: shapes[i].Kind}
		}
	}
	return nil
}

// Compile appends the terms rendering shapes to dst. The capability check runs
// before any term is appended so on error dst is returned unmodified.
func Compile(dst []glbuild.Term, shapes []Shape, p *glbuild.Programmer) ([]glbuild.Term, error) {
	err := CheckSupported(shapes, p)
	if err != nil {
		return dst, err
	}
	for i := range shapes {
		dst = append(dst, shapes[i].Term())
	}
	return dst, nil
}

// Term returns the shader term of s. Kinds without a primitive yield a zero term.
func (s Shape) Term() glbuild.Term {
	t := glbuild.Term{
		Blob:     s.Blend.Blob,
		Spread:   s.Blend.ColorSpread,
		Subtract: s.Blend.Subtract,
	}
	switch s.Kind {
	case KindSquare:
		t.Primitive = glbuild.PrimitiveRectangle
		t.Center = s.Square.Pos
		t.HalfSize = ms2.Scale(0.5, s.Square.Size)
		t.Rounding = s.Square.Radius
		t.Color = s.Square.Color
	case KindCircle:
		t.Primitive = glbuild.PrimitiveCircle
		t.Center = s.Circle.Pos
		t.HalfSize = ms2.Vec{X: s.Circle.Radius, Y: s.Circle.Radius}
		t.Color = s.Circle.Color
	default:
		return glbuild.Term{}
	}
	return t
}

// Canvas describes where the scene is drawn inside a window.
type Canvas struct {
	// Origin is the top left corner in window coordinates.
	Origin ms2.Vec
	// Size in window coordinates. The smallest side normalizes the distance field.
	Size ms2.Vec
	// PixelScale is framebuffer pixels per window coordinate.
	PixelScale float32
	// FramebufferHeight in framebuffer pixels.
	FramebufferHeight float32
}

// MakeFrame compiles shapes into a frame drawn on c with selected outlined
// (-1 for no outline).
func MakeFrame(c Canvas, shapes []Shape, selected int, p *glbuild.Programmer) (glbuild.Frame, error) {
	terms, err := Compile(make([]glbuild.Term, 0, len(shapes)), shapes, p)
	if err != nil {
		return glbuild.Frame{}, err
	}
	return glbuild.Frame{
		Origin:            c.Origin,
		Size:              c.Size,
		PixelScale:        c.PixelScale,
		FramebufferHeight: c.FramebufferHeight,
		Terms:             terms,
		Selected:          selected,
	}, nil
}
