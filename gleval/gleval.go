package gleval

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/drawbox/glbuild"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/glgl/math/ms1"
)

// SDF2 implements a 2D signed distance field in vectorized form.
type SDF2 interface {
	// Evaluate evaluates the signed distance field over pos positions.
	// dist and pos must be of same length. Resulting distances are stored
	// in dist.
	Evaluate(pos []ms2.Vec, dist []float32, userData any) error
	// Bounds returns the SDF's bounding box such that all of the shape is contained within.
	Bounds() ms2.Box
}

// ColorSDF2 is an SDF2 that also shades its positions.
type ColorSDF2 interface {
	SDF2
	// EvaluateColor stores the RGB color at each of pos in col.
	EvaluateColor(pos []ms2.Vec, col [][3]float32, userData any) error
}

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and result buffer length mismatch")
)

// Smin is the polynomial smooth minimum of a and b with softness k.
// It is exact outside the band |a-b| < |k| and undefined for k == 0.
func Smin(a, b, k float32) float32 {
	h := ms1.Clamp(0.5+0.5*(a-b)/k, 0, 1)
	return mixf(a, b, h) - k*h*(1-h)
}

// Rectangle is the rounded rectangle distance at the normalized sample position p.
// position and halfSize are in pixels, radius is a fraction of the smallest half side.
func Rectangle(p, position, halfSize ms2.Vec, radius, minDim float32) float32 {
	r := radius * math32.Min(halfSize.X, halfSize.Y) / minDim
	c := ms2.Sub(ms2.AbsElem(ms2.Sub(p, ms2.Scale(1/minDim, position))), ms2.Scale(1/minDim, halfSize))
	c = ms2.Add(c, ms2.Vec{X: r, Y: r})
	return ms2.Norm(ms2.MaxElem(c, ms2.Vec{})) + math32.Min(math32.Max(c.X, c.Y), 0) - r
}

// Circle is the circle distance at the normalized sample position p.
// position and radius are in pixels.
func Circle(p, position ms2.Vec, radius, minDim float32) float32 {
	return ms2.Norm(ms2.Sub(p, ms2.Scale(1/minDim, position))) - radius/minDim
}

// Weight is the color weight of a term at its own distance d.
func Weight(d, spread float32) float32 {
	return math32.Max(1-(10-10*spread)*d, glbuild.MinWeight)
}

// Sample is the state of the fragment accumulators after all terms.
type Sample struct {
	// Distance is the accumulated distance.
	Distance float32
	// Weight is the sum of term color weights.
	Weight float32
	// Color is the weighted color sum divided by Weight.
	Color [3]float32
	// Selected is the selected term's own distance, +Inf without selection.
	Selected float32
}

// Shade blends the sample over a black background like the generated shader.
func (s Sample) Shade() (col [3]float32) {
	a := 1 - ms1.SmoothStep(0, 0.01, s.Distance*10)
	for i := range col {
		col[i] = mixf(0, s.Color[i], a)
	}
	if !math32.IsInf(s.Selected, 1) {
		o := 1 - ms1.SmoothStep(0, glbuild.OutlineWidth, math32.Abs(s.Selected))
		for i := range col {
			col[i] = mixf(col[i], glbuild.OutlineColor[i], o)
		}
	}
	return col
}

// Field evaluates a [glbuild.Frame] on the CPU. Positions are canvas pixels
// relative to the canvas top left corner.
type Field struct {
	terms    []glbuild.Term
	size     ms2.Vec
	minDim   float32
	selected int
}

var _ ColorSDF2 = (*Field)(nil)

// NewField returns the CPU evaluator of f.
func NewField(f glbuild.Frame) (*Field, error) {
	err := f.Validate()
	if err != nil {
		return nil, err
	}
	for i, t := range f.Terms {
		if t.Primitive != glbuild.PrimitiveRectangle && t.Primitive != glbuild.PrimitiveCircle {
			return nil, fmt.Errorf("term %d: unsupported primitive %s", i, t.Primitive)
		}
	}
	selected := f.Selected
	if !f.HasSelection() {
		selected = -1
	}
	return &Field{
		terms:    append([]glbuild.Term(nil), f.Terms...),
		size:     f.Size,
		minDim:   f.MinDim(),
		selected: selected,
	}, nil
}

// Bounds returns the canvas box.
func (f *Field) Bounds() ms2.Box {
	return ms2.Box{Max: f.size}
}

// Sample runs the accumulation of all terms at canvas point pos.
func (f *Field) Sample(pos ms2.Vec) Sample {
	p := ms2.Scale(1/f.minDim, pos)
	var dcol [4]float32
	d := float32(1)
	sel := math32.Inf(1)
	for i, t := range f.terms {
		di := f.termDistance(p, t)
		if i == 0 {
			d = di
		} else {
			d = Smin(d, t.Sign()*di, glbuild.SafeBlob(t.Blob))
		}
		w := Weight(di, t.Spread)
		dcol[0] += t.Color[0] * w
		dcol[1] += t.Color[1] * w
		dcol[2] += t.Color[2] * w
		dcol[3] += w
		if i == f.selected {
			sel = di
		}
	}
	s := Sample{Distance: d, Weight: dcol[3], Selected: sel}
	if dcol[3] > 0 {
		s.Color = [3]float32{dcol[0] / dcol[3], dcol[1] / dcol[3], dcol[2] / dcol[3]}
	}
	return s
}

func (f *Field) termDistance(p ms2.Vec, t glbuild.Term) float32 {
	if t.Primitive == glbuild.PrimitiveCircle {
		return Circle(p, t.Center, t.HalfSize.X, f.minDim)
	}
	return Rectangle(p, t.Center, t.HalfSize, t.Rounding, f.minDim)
}

// Evaluate stores the accumulated normalized distance at each of pos in dist.
func (f *Field) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	for i, p := range pos {
		dist[i] = f.Sample(p).Distance
	}
	return nil
}

// EvaluateColor stores the shaded color at each of pos in col.
func (f *Field) EvaluateColor(pos []ms2.Vec, col [][3]float32, userData any) error {
	if len(pos) != len(col) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	for i, p := range pos {
		col[i] = f.Sample(p).Shade()
	}
	return nil
}

func mixf(x, y, a float32) float32 {
	return x*(1-a) + y*a
}
