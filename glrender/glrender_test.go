package glrender_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/soypat/drawbox/glbuild"
	"github.com/soypat/drawbox/gleval"
	"github.com/soypat/drawbox/glrender"
	"github.com/soypat/geometry/ms2"
)

func whiteSquareField(t *testing.T, size float32) *gleval.Field {
	t.Helper()
	field, err := gleval.NewField(glbuild.Frame{
		Size: ms2.Vec{X: size, Y: size},
		Terms: []glbuild.Term{{
			Primitive: glbuild.PrimitiveRectangle,
			Center:    ms2.Vec{X: size / 2, Y: size / 2},
			HalfSize:  ms2.Vec{X: size / 4, Y: size / 4},
			Color:     [3]float32{1, 1, 1},
			Blob:      1,
			Spread:    0.5,
		}},
		Selected: -1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return field
}

func TestRenderSquare(t *testing.T) {
	const size = 100
	field := whiteSquareField(t, size)
	ir, err := glrender.NewImageRenderer(size, nil)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	err = ir.Render(field, img, nil)
	if err != nil {
		t.Fatal(err)
	}
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	if got := img.RGBAAt(size/2, size/2); got != white {
		t.Errorf("center pixel %v, want %v", got, white)
	}
	if got := img.RGBAAt(2, 2); got != black {
		t.Errorf("corner pixel %v, want %v", got, black)
	}
	_, err = glrender.NewImageRenderer(64, nil)
	if err == nil {
		t.Error("expected error for small evaluation buffer")
	}
	small, _ := glrender.NewImageRenderer(65, nil)
	err = small.Render(field, img, nil)
	if err == nil {
		t.Error("expected error for buffer shorter than image column")
	}
	err = small.RenderDistance(field, img, glrender.DistanceColorIQ(1), nil)
	if err == nil {
		t.Error("expected distance render error for buffer shorter than image column")
	}
}

func TestRGB(t *testing.T) {
	got := glrender.RGB([3]float32{-1, 0.5, 2})
	want := color.RGBA{0, 128, 255, 255}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWritePNGLabels(t *testing.T) {
	const size = 120
	field := whiteSquareField(t, size)
	var plain, labeled bytes.Buffer
	err := glrender.WritePNG(&plain, field, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	a, err := glrender.NewAnnotator(nil, 16, color.RGBA{255, 0, 0, 255})
	if err != nil {
		t.Fatal(err)
	}
	// Label placed over the black background where red text is visible.
	err = glrender.WritePNG(&labeled, field, a, []glrender.Label{{Pos: ms2.Vec{X: 15, Y: 15}, Text: "0"}})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&labeled)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != size || img.Bounds().Dy() != size {
		t.Fatalf("image bounds %v", img.Bounds())
	}
	var reddish int
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			r, g, _, _ := img.At(x, y).RGBA()
			if r > 0x8000 && g < 0x4000 {
				reddish++
			}
		}
	}
	if reddish == 0 {
		t.Error("label was not drawn")
	}
	if bytes.Equal(plain.Bytes(), labeled.Bytes()) {
		t.Error("labeled and plain export are identical")
	}
}

func TestDistanceColorIQ(t *testing.T) {
	conv := glrender.DistanceColorIQ(1. / 3)
	edge := conv(0).(color.RGBA)
	if edge != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("boundary color %v, want white", edge)
	}
	inside := conv(-0.2).(color.RGBA)
	outside := conv(0.2).(color.RGBA)
	if inside.B <= inside.R {
		t.Errorf("inside color %v is not cool", inside)
	}
	if outside.R <= outside.B {
		t.Errorf("outside color %v is not warm", outside)
	}
}

func TestWriteDistancePNG(t *testing.T) {
	const size = 100
	field := whiteSquareField(t, size)
	var buf bytes.Buffer
	err := glrender.WriteDistancePNG(&buf, field, glrender.DistanceColorIQ(1./3))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	// Square center is inside and the corner outside.
	rc, _, bc, _ := img.At(size/2, size/2).RGBA()
	ro, _, bo, _ := img.At(1, 1).RGBA()
	if bc <= rc {
		t.Errorf("center not colored as inside: r=%d b=%d", rc, bc)
	}
	if ro <= bo {
		t.Errorf("corner not colored as outside: r=%d b=%d", ro, bo)
	}
}

func TestAnnotate(t *testing.T) {
	a, err := glrender.NewAnnotator(nil, 12, nil)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	a.Annotate(img, []glrender.Label{{Pos: ms2.Vec{X: 20, Y: 20}, Text: "12"}, {Pos: ms2.Vec{X: -100, Y: -100}, Text: "3"}})
	var lit int
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if img.RGBAAt(x, y).R > 0x80 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no label pixels drawn")
	}
	// Label drawn around the center.
	if img.RGBAAt(1, 1).A != 0 || img.RGBAAt(38, 38).A != 0 {
		t.Error("label drawn into the corners")
	}
}
