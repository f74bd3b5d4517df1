package glbuild

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/template"

	"github.com/chewxy/math32"
	"github.com/soypat/drawbox/glbuild/glsllib"
	"github.com/soypat/geometry/ms2"
)

const (
	// MinBlob is the smallest smooth minimum softness magnitude emitted. Smaller
	// magnitudes divide by zero inside smin.
	MinBlob float32 = 1e-4
	// MinWeight bounds every color weight from below so the accumulated
	// weight of a non-empty frame is never zero.
	MinWeight float32 = 0.0001
	// OutlineWidth is the half width of the selection outline in normalized units.
	OutlineWidth float32 = 0.003
)

// OutlineColor is the RGB color of the selection outline.
var OutlineColor = [3]float32{1, 0.8, 0.2}

// Primitive is a distance function available in the generated shader.
type Primitive uint8

const (
	PrimitiveRectangle Primitive = iota
	PrimitiveCircle
	numPrimitives
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveRectangle:
		return "rectangle"
	case PrimitiveCircle:
		return "circle"
	}
	return "Primitive(" + strconv.Itoa(int(p)) + ")"
}

// Term is one shape's contribution to the accumulated distance and color.
// Spatial values are canvas pixels.
type Term struct {
	Primitive Primitive
	Center    ms2.Vec
	// HalfSize of a rectangle. Circles use HalfSize.X as radius.
	HalfSize ms2.Vec
	// Rounding is the rectangle corner radius as a fraction of the smallest half side.
	Rounding float32
	Color    [3]float32
	Blob     float32
	Spread   float32
	Subtract bool
}

// Sign returns the factor the term's distance is multiplied by before being combined.
func (t Term) Sign() float32 {
	if t.Subtract {
		return -1
	}
	return 1
}

// Frame is everything needed to generate one fragment shader.
type Frame struct {
	// Origin is the canvas top left corner in window coordinates.
	Origin ms2.Vec
	// Size is the canvas size in window coordinates.
	Size ms2.Vec
	// PixelScale is framebuffer pixels per window coordinate. Zero is taken as 1.
	PixelScale float32
	// FramebufferHeight in framebuffer pixels, used by profiles lacking
	// an upper left fragment coordinate origin.
	FramebufferHeight float32
	Terms             []Term
	// Selected is the index of the outlined term or -1.
	Selected int
}

// MinDim returns the normalization scale of the frame.
func (f Frame) MinDim() float32 {
	return math32.Min(f.Size.X, f.Size.Y)
}

func (f Frame) pixelScale() float32 {
	if f.PixelScale == 0 {
		return 1
	}
	return f.PixelScale
}

// HasSelection reports whether Selected names a term of the frame.
func (f Frame) HasSelection() bool {
	return f.Selected >= 0 && f.Selected < len(f.Terms)
}

// Validate checks the frame can produce a well formed shader.
func (f Frame) Validate() error {
	md := f.MinDim()
	if !(md > 0) || math32.IsInf(md, 0) {
		return fmt.Errorf("%w: size %v", errBadCanvas, f.Size)
	} else if f.PixelScale < 0 || math32.IsNaN(f.PixelScale) {
		return errors.New("negative or NaN pixel scale")
	}
	return nil
}

// SafeBlob returns k with its magnitude raised to at least [MinBlob]. The sign is
// kept and zero maps to +MinBlob.
func SafeBlob(k float32) float32 {
	if math32.Abs(k) >= MinBlob {
		return k
	} else if math32.Signbit(k) {
		return -MinBlob
	}
	return MinBlob
}

var (
	errBadCanvas   = errors.New("canvas minimum dimension must be positive and finite")
	errNoFBHeight  = errors.New("profile requires a positive framebuffer height")
	errUnsupported = errors.New("unsupported primitive")
)

// Profile selects the GLSL dialect of the generated sources.
type Profile uint8

const (
	// ProfileDesktop targets desktop OpenGL 3.3 core.
	ProfileDesktop Profile = iota
	// ProfileES targets OpenGL ES 3.0 / WebGL2.
	ProfileES
)

// VersionHeader returns the #version directive of the profile.
func (p Profile) VersionHeader() string {
	if p == ProfileES {
		return "#version 300 es"
	}
	return "#version 330"
}

func (p Profile) String() string {
	if p == ProfileES {
		return "es"
	}
	return "desktop"
}

// upperLeft reports whether gl_FragCoord can be redeclared with an upper left origin.
func (p Profile) upperLeft() bool { return p != ProfileES }

//go:embed fragment.tmpl
var fragmentTmpl string

//go:embed vertex.tmpl
var vertexTmpl string

var (
	fragmentTemplate = template.Must(template.New("fragment").Parse(fragmentTmpl))
	vertexTemplate   = template.Must(template.New("vertex").Parse(vertexTmpl))
)

// fragmentSlots are the named slots of fragment.tmpl.
type fragmentSlots struct {
	Version   string
	UpperLeft bool
	MinDim    string
	Library   string
	FragCoord string
	Origin    string
	Body      string
	Outline   string
}

// ProgrammerConfig configures a [Programmer].
type ProgrammerConfig struct {
	Profile Profile
	// Disable lists primitives the target cannot render.
	Disable []Primitive
}

// Programmer implements shader generation logic for [Frame]s.
type Programmer struct {
	profile  Profile
	disabled [numPrimitives]bool
	library  []byte
	scratch  []byte
	out      bytes.Buffer
}

// NewDefaultProgrammer returns a Programmer for the build target's profile with every primitive enabled.
func NewDefaultProgrammer() *Programmer {
	return NewProgrammer(ProgrammerConfig{Profile: DefaultProfile})
}

// NewProgrammer returns a Programmer configured by cfg.
func NewProgrammer(cfg ProgrammerConfig) *Programmer {
	p := &Programmer{profile: cfg.Profile}
	for _, prim := range cfg.Disable {
		if prim < numPrimitives {
			p.disabled[prim] = true
		}
	}
	p.library = append(p.library, glsllib.SmoothMin()...)
	if p.Supports(PrimitiveRectangle) {
		p.library = append(p.library, glsllib.Rectangle()...)
	}
	if p.Supports(PrimitiveCircle) {
		p.library = append(p.library, glsllib.Circle()...)
	}
	return p
}

// Profile returns the GLSL dialect the Programmer emits.
func (p *Programmer) Profile() Profile { return p.profile }

// Supports reports whether prim can be emitted by the Programmer.
func (p *Programmer) Supports(prim Primitive) bool {
	return prim < numPrimitives && !p.disabled[prim]
}

// WriteVertex writes the full screen quad vertex shader. It needs no vertex attributes.
func (p *Programmer) WriteVertex(w io.Writer) (int, error) {
	p.out.Reset()
	err := vertexTemplate.Execute(&p.out, struct{ Version string }{p.profile.VersionHeader()})
	if err != nil {
		return 0, err
	}
	return w.Write(p.out.Bytes())
}

// WriteFragment writes the fragment shader that renders f.
func (p *Programmer) WriteFragment(w io.Writer, f Frame) (int, error) {
	err := f.Validate()
	if err != nil {
		return 0, err
	}
	if !p.profile.upperLeft() && !(f.FramebufferHeight > 0) {
		return 0, errNoFBHeight
	}
	body, err := p.AppendFrameBody(p.scratch[:0], f)
	p.scratch = body
	if err != nil {
		return 0, err
	}
	scale := f.pixelScale()
	var slots fragmentSlots
	slots.Version = p.profile.VersionHeader()
	slots.UpperLeft = p.profile.upperLeft()
	slots.Library = string(p.library)
	slots.Body = string(body)
	slots.MinDim = string(AppendFloatDecl(nil, "minDim", f.MinDim()))
	slots.Origin = string(AppendVec2Decl(nil, "origin", f.Origin))
	if slots.UpperLeft {
		slots.FragCoord = "gl_FragCoord.xy/" + string(AppendFloat(nil, '-', '.', scale))
	} else {
		fc := []byte("vec2(gl_FragCoord.x, ")
		fc = AppendFloat(fc, '-', '.', f.FramebufferHeight)
		fc = append(fc, "-gl_FragCoord.y)/"...)
		fc = AppendFloat(fc, '-', '.', scale)
		slots.FragCoord = string(fc)
	}
	if f.HasSelection() {
		slots.Outline = string(appendOutline(nil))
	}
	p.out.Reset()
	err = fragmentTemplate.Execute(&p.out, slots)
	if err != nil {
		return 0, err
	}
	return w.Write(p.out.Bytes())
}

// AppendFrameBody appends the distance and color accumulation statements of
// f's terms to b. The statements expect the declarations of the fragment main function.
func (p *Programmer) AppendFrameBody(b []byte, f Frame) ([]byte, error) {
	for i, t := range f.Terms {
		if !p.Supports(t.Primitive) {
			return b, fmt.Errorf("term %d: %w %s", i, errUnsupported, t.Primitive)
		}
		dvar := "d2"
		if i == 0 {
			dvar = "d"
		}
		b = append(b, '\t')
		b = append(b, dvar...)
		b = append(b, " = "...)
		b = AppendTermDistance(b, t)
		b = append(b, ";\n"...)
		if i > 0 {
			b = append(b, "\td = smin(d, "...)
			b = AppendFloat(b, '-', '.', t.Sign())
			b = append(b, "*d2, "...)
			b = AppendFloat(b, '-', '.', SafeBlob(t.Blob))
			b = append(b, ");\n"...)
		}
		b = append(b, "\tw = max(1.0-(10.0-10.0*"...)
		b = AppendFloat(b, '-', '.', t.Spread)
		b = append(b, ")*"...)
		b = append(b, dvar...)
		b = append(b, ", "...)
		b = AppendFloat(b, '-', '.', MinWeight)
		b = append(b, ");\n"...)
		b = append(b, "\tdcol += vec4("...)
		b = AppendFloats(b, ',', '-', '.', t.Color[0], t.Color[1], t.Color[2], 1)
		b = append(b, ")*w;\n"...)
		if i == f.Selected {
			b = append(b, "\tfloat dsel = "...)
			b = append(b, dvar...)
			b = append(b, ";\n"...)
		}
	}
	return b, nil
}

// AppendTermDistance appends the call expression evaluating t's own distance at p.
func AppendTermDistance(b []byte, t Term) []byte {
	switch t.Primitive {
	case PrimitiveRectangle:
		b = append(b, "rectangle(p, "...)
		b = appendVec2(b, t.Center)
		b = append(b, ", "...)
		b = appendVec2(b, t.HalfSize)
		b = append(b, ", "...)
		b = AppendFloat(b, '-', '.', t.Rounding)
		b = append(b, ')')
	case PrimitiveCircle:
		b = append(b, "circle(p, "...)
		b = appendVec2(b, t.Center)
		b = append(b, ", "...)
		b = AppendFloat(b, '-', '.', t.HalfSize.X)
		b = append(b, ')')
	default:
		panic("unhandled primitive " + t.Primitive.String())
	}
	return b
}

func appendOutline(b []byte) []byte {
	b = append(b, "\tcol = mix(col, vec3("...)
	b = AppendFloats(b, ',', '-', '.', OutlineColor[:]...)
	b = append(b, "), 1.0-smoothstep(0.0, "...)
	b = AppendFloat(b, '-', '.', OutlineWidth)
	b = append(b, ", abs(dsel)));\n"...)
	return b
}

func appendVec2(b []byte, v ms2.Vec) []byte {
	b = append(b, "vec2("...)
	b = AppendFloats(b, ',', '-', '.', v.X, v.Y)
	b = append(b, ')')
	return b
}

// AppendVec2Decl appends a vec2 declaration with v's components as literals.
func AppendVec2Decl(b []byte, vec2Varname string, v ms2.Vec) []byte {
	b = append(b, "vec2 "...)
	b = append(b, vec2Varname...)
	b = append(b, '=')
	b = appendVec2(b, v)
	b = append(b, ';', '\n')
	return b
}

// AppendFloatDecl appends a float declaration with v as a literal.
func AppendFloatDecl(b []byte, floatVarname string, v float32) []byte {
	b = append(b, "float "...)
	b = append(b, floatVarname...)
	b = append(b, '=')
	b = AppendFloat(b, '-', '.', v)
	b = append(b, ';', '\n')
	return b
}

const decimalDigits = 9

// AppendFloat appends v formatted as a GLSL float literal with trailing zeros trimmed.
// neg and decimal replace the minus sign and decimal point characters.
func AppendFloat(b []byte, neg, decimal byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', decimalDigits, 32)
	idx := bytes.IndexByte(b[start:], '.')
	if decimal != '.' && idx >= 0 {
		b[start+idx] = decimal
	}
	if b[start] == '-' {
		b[start] = neg
	}
	// Finally trim zeroes.
	end := len(b)
	for i := len(b) - 1; idx >= 0 && i > idx+start && b[i] == '0'; i-- {
		end--
	}
	return b[:end]
}

// AppendFloats appends each of s with [AppendFloat] separated by sep. A zero sep adds no separator.
func AppendFloats(b []byte, sep, neg, decimal byte, s ...float32) []byte {
	for i, v := range s {
		b = AppendFloat(b, neg, decimal, v)
		if sep != 0 && i != len(s)-1 {
			b = append(b, sep)
		}
	}
	return b
}
