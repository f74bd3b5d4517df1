package drawbox_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/soypat/drawbox"
	"github.com/soypat/drawbox/glbuild"
	"github.com/soypat/geometry/ms2"
)

func square(x, y, w, h float32) drawbox.Shape {
	s := drawbox.DefaultSquare()
	s.Square.Pos = ms2.Vec{X: x, Y: y}
	s.Square.Size = ms2.Vec{X: w, Y: h}
	return s
}

func TestDefaults(t *testing.T) {
	sq := drawbox.DefaultSquare()
	if sq.Kind != drawbox.KindSquare || sq.Square.Pos != (ms2.Vec{X: 50, Y: 50}) ||
		sq.Square.Size != (ms2.Vec{X: 100, Y: 100}) || sq.Square.Radius != 0.2 ||
		sq.Square.Color != [3]float32{1, 1, 1} || sq.Blend != (drawbox.Blend{Blob: 0.5, ColorSpread: 0.5}) {
		t.Errorf("unexpected default square %+v", sq)
	}
	c := drawbox.DefaultCircle()
	if c.Kind != drawbox.KindCircle || c.Circle.Pos != (ms2.Vec{}) || c.Circle.Radius != 100 ||
		c.Circle.Color != [3]float32{1, 1, 1} || c.Blend != (drawbox.Blend{}) {
		t.Errorf("unexpected default circle %+v", c)
	}
}

func TestHitTest(t *testing.T) {
	a := square(50, 50, 100, 100)
	b := square(60, 60, 100, 100)
	shapes := []drawbox.Shape{a, b}
	for _, tc := range []struct {
		p        ms2.Vec
		selected int
		want     int
	}{
		// Overlap picks the last shape in order.
		{p: ms2.Vec{X: 55, Y: 55}, selected: -1, want: 1},
		// The selected shape is skipped so overlapping shapes cycle.
		{p: ms2.Vec{X: 55, Y: 55}, selected: 1, want: 0},
		// Only the selected shape contains the point.
		{p: ms2.Vec{X: 5, Y: 5}, selected: 0, want: -1},
		{p: ms2.Vec{X: 5, Y: 5}, selected: -1, want: 0},
		// Edges are outside.
		{p: ms2.Vec{X: 100, Y: 50}, selected: -1, want: 1},
		{p: ms2.Vec{X: 110, Y: 60}, selected: -1, want: -1},
		{p: ms2.Vec{X: 500, Y: 500}, selected: -1, want: -1},
	} {
		got := drawbox.HitTest(shapes, tc.p, tc.selected)
		if got != tc.want {
			t.Errorf("HitTest(%v, selected=%d)=%d, want %d", tc.p, tc.selected, got, tc.want)
		}
	}
}

func TestHitTestCircle(t *testing.T) {
	c := drawbox.DefaultCircle()
	c.Circle.Pos = ms2.Vec{X: 200, Y: 200}
	c.Circle.Radius = 50
	shapes := []drawbox.Shape{c}
	if got := drawbox.HitTest(shapes, ms2.Vec{X: 230, Y: 230}, -1); got != 0 {
		t.Errorf("point inside circle not picked, got %d", got)
	}
	// Inside the bounding box but outside the disk.
	if got := drawbox.HitTest(shapes, ms2.Vec{X: 245, Y: 245}, -1); got != -1 {
		t.Errorf("point outside circle picked, got %d", got)
	}
}

func TestSceneScenario(t *testing.T) {
	scene := drawbox.NewScene()
	if idx := scene.AddSquare(); idx != 0 {
		t.Fatalf("first shape index %d", idx)
	}
	if _, ok := scene.Selected(); ok {
		t.Fatal("new scene has a selection")
	}
	idx, changed := scene.Click(ms2.Vec{X: 50, Y: 50})
	if !changed || idx != 0 {
		t.Fatalf("click selected %d changed=%v", idx, changed)
	}
	if !scene.Drag(ms2.Vec{X: 10}) {
		t.Fatal("drag did not move the selection")
	}
	shapes, sel := scene.Snapshot()
	if sel != 0 || shapes[0].Position() != (ms2.Vec{X: 60, Y: 50}) {
		t.Fatalf("after drag: selected %d position %v", sel, shapes[0].Position())
	}
	removed, ok := scene.DeleteSelected()
	if !ok || removed.Square.Pos != (ms2.Vec{X: 60, Y: 50}) {
		t.Fatalf("delete returned %+v %v", removed, ok)
	}
	if scene.Len() != 0 {
		t.Errorf("scene has %d shapes after delete", scene.Len())
	}
	if _, ok := scene.Selected(); ok {
		t.Error("selection not cleared after delete")
	}
	shapes, sel = scene.Snapshot()
	if shapes != nil || sel != -1 {
		t.Errorf("empty snapshot %v %d", shapes, sel)
	}
	if scene.Drag(ms2.Vec{X: 1}) {
		t.Error("drag without selection succeeded")
	}
}

func TestClickMissKeepsSelection(t *testing.T) {
	var scene drawbox.Scene // Zero value is usable.
	scene.AddSquare()
	scene.Click(ms2.Vec{X: 50, Y: 50})
	idx, changed := scene.Click(ms2.Vec{X: 700, Y: 700})
	if changed || idx != 0 {
		t.Errorf("click on empty canvas returned %d changed=%v, want 0 unchanged", idx, changed)
	}
	// Clicking the selected shape again with nothing under it is not a change.
	idx, changed = scene.Click(ms2.Vec{X: 50, Y: 50})
	if changed || idx != 0 {
		t.Errorf("reclick returned %d changed=%v", idx, changed)
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 1; n < 8; n++ {
		scene := drawbox.NewScene()
		for i := 0; i < n; i++ {
			scene.Add(square(float32(i), 0, 1, 1))
		}
		del := rng.Intn(n)
		scene.Select(del)
		scene.DeleteSelected()
		shapes, sel := scene.Snapshot()
		if len(shapes) != n-1 || (n > 1 && sel != -1) {
			t.Fatalf("n=%d: got %d shapes selected %d", n, len(shapes), sel)
		}
		for i, s := range shapes {
			want := i
			if i >= del {
				want = i + 1
			}
			if s.Square.Pos.X != float32(want) {
				t.Fatalf("n=%d del=%d: shape %d is original %g", n, del, i, s.Square.Pos.X)
			}
		}
	}
}

func TestDragLinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, s := range []drawbox.Shape{drawbox.DefaultSquare(), drawbox.DefaultCircle()} {
		scene := drawbox.NewScene()
		scene.Add(s)
		scene.Select(0)
		var total ms2.Vec
		for i := 0; i < 10; i++ {
			// Integer deltas keep the float sums exact.
			d := ms2.Vec{X: float32(rng.Intn(21) - 10), Y: float32(rng.Intn(21) - 10)}
			total = ms2.Add(total, d)
			scene.Drag(d)
		}
		shapes, _ := scene.Snapshot()
		want := ms2.Add(s.Position(), total)
		if got := shapes[0].Position(); got != want {
			t.Errorf("%s: position after drags %v, want %v", s.Kind, got, want)
		}
	}
}

func TestStaleSelection(t *testing.T) {
	scene := drawbox.NewScene()
	scene.AddSquare()
	scene.Select(5)
	if _, ok := scene.Selected(); ok {
		t.Error("out of range selection accepted")
	}
	if scene.Edit(func(*drawbox.Shape) { t.Error("edit called without selection") }) {
		t.Error("Edit reported success without selection")
	}
	scene.Select(0)
	scene.Edit(func(s *drawbox.Shape) { s.Blend.Subtract = true })
	shapes, _ := scene.Snapshot()
	if !shapes[0].Blend.Subtract {
		t.Error("edit not applied")
	}
	// Snapshots are independent of the scene.
	shapes[0].Square.Pos.X = -1
	again, _ := scene.Snapshot()
	if again[0].Square.Pos.X == -1 {
		t.Error("snapshot aliases scene storage")
	}
}

func TestCompileUnsupported(t *testing.T) {
	shapes := []drawbox.Shape{drawbox.DefaultSquare(), drawbox.DefaultCircle()}
	p := glbuild.NewProgrammer(glbuild.ProgrammerConfig{Disable: []glbuild.Primitive{glbuild.PrimitiveCircle}})
	dst := make([]glbuild.Term, 0, 2)
	got, err := drawbox.Compile(dst, shapes, p)
	var uerr *drawbox.UnsupportedShapeError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedShapeError, got %v", err)
	}
	if uerr.Index != 1 || uerr.Kind != drawbox.KindCircle {
		t.Errorf("unexpected error fields %+v", uerr)
	}
	if len(got) != 0 {
		t.Errorf("terms appended on error: %v", got)
	}
	if !strings.Contains(err.Error(), "circle") {
		t.Errorf("error message %q does not name the kind", err)
	}

	got, err = drawbox.Compile(dst, shapes, glbuild.NewDefaultProgrammer())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Primitive != glbuild.PrimitiveRectangle || got[1].Primitive != glbuild.PrimitiveCircle {
		t.Fatalf("unexpected terms %+v", got)
	}
	if got[0].HalfSize != (ms2.Vec{X: 50, Y: 50}) || got[1].HalfSize.X != 100 {
		t.Errorf("unexpected term sizes %v %v", got[0].HalfSize, got[1].HalfSize)
	}
}

func TestMakeFrameShader(t *testing.T) {
	shapes := []drawbox.Shape{drawbox.DefaultSquare(), square(200, 200, 100, 100)}
	shapes[1].Blend.Subtract = true
	p := glbuild.NewProgrammer(glbuild.ProgrammerConfig{Profile: glbuild.ProfileDesktop})
	frame, err := drawbox.MakeFrame(drawbox.Canvas{
		Origin: ms2.Vec{X: 260},
		Size:   ms2.Vec{X: 800, Y: 800},
	}, shapes, 1, p)
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	_, err = p.WriteFragment(&sb, frame)
	if err != nil {
		t.Fatal(err)
	}
	src := sb.String()
	for _, want := range []string{
		"d = smin(d, -1.*d2, 0.5);",
		"float dsel = d2;",
		"vec2 origin=vec2(260.,0.);",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("fragment missing %q:\n%s", want, src)
		}
	}
}

func TestFieldMatchesHitTest(t *testing.T) {
	shapes := []drawbox.Shape{square(200, 200, 100, 100)}
	shapes[0].Square.Radius = 0
	field, err := drawbox.Field(ms2.Vec{X: 400, Y: 400}, shapes, -1)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []ms2.Vec{{X: 200, Y: 200}, {X: 240, Y: 180}, {X: 260, Y: 200}, {X: 10, Y: 390}} {
		inside := field.Sample(p).Distance < 0
		if inside != shapes[0].Contains(p) {
			t.Errorf("at %v field inside=%v, hit test %v", p, inside, !inside)
		}
	}
}
