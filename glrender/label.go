package glrender

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"github.com/soypat/geometry/ms2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Label is text centered at a position of the rendered image.
type Label struct {
	Pos  ms2.Vec
	Text string
}

// Annotator draws labels over rendered images.
type Annotator struct {
	face  font.Face
	color color.Color
}

// NewAnnotator parses ttf and returns an annotator drawing text of the given
// size in points at 72 DPI. A nil ttf selects the Go regular font.
func NewAnnotator(ttf []byte, size float64, c color.Color) (*Annotator, error) {
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = color.White
	}
	return &Annotator{
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
		color: c,
	}, nil
}

// Annotate draws every label onto dst. Labels outside of dst are clipped.
func (a *Annotator) Annotate(dst draw.Image, labels []Label) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(a.color),
		Face: a.face,
	}
	m := a.face.Metrics()
	halfHeight := (m.Ascent - m.Descent) / 2
	for _, l := range labels {
		width := d.MeasureString(l.Text)
		d.Dot = fixed.Point26_6{
			X: fixed.I(int(l.Pos.X)) - width/2,
			Y: fixed.I(int(l.Pos.Y)) + halfHeight,
		}
		d.DrawString(l.Text)
	}
}
