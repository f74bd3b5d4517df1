package drawbox

import (
	"sync"

	"github.com/brunoga/deep"
	"github.com/soypat/geometry/ms2"
)

// HitTest returns the index of the shape picked by a click at canvas point p,
// or -1 if none was picked. All shapes are scanned in order and the last match
// wins. The shape at index selected is never picked again.
func HitTest(shapes []Shape, p ms2.Vec, selected int) int {
	hit := -1
	for i := range shapes {
		if i != selected && shapes[i].Contains(p) {
			hit = i
		}
	}
	return hit
}

// Scene owns the ordered shape list and the selection. Its methods are safe
// for concurrent use.
type Scene struct {
	mu     sync.Mutex
	shapes []Shape
	// sel is the selected index plus one. Zero means no selection so the
	// zero value is an empty scene with nothing selected.
	sel int
}

// NewScene returns an empty scene with nothing selected.
func NewScene() *Scene {
	return &Scene{}
}

// Add appends s to the scene and returns its index.
func (sc *Scene) Add(s Shape) int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.shapes = append(sc.shapes, s)
	return len(sc.shapes) - 1
}

// AddSquare appends a [DefaultSquare].
func (sc *Scene) AddSquare() int { return sc.Add(DefaultSquare()) }

// AddCircle appends a [DefaultCircle].
func (sc *Scene) AddCircle() int { return sc.Add(DefaultCircle()) }

// Len returns the number of shapes in the scene.
func (sc *Scene) Len() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.shapes)
}

// Click hit tests the canvas point p and selects the picked shape.
// The selection is left untouched when nothing is picked.
func (sc *Scene) Click(p ms2.Vec) (selected int, changed bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.validate()
	hit := HitTest(sc.shapes, p, sc.sel-1)
	if hit < 0 {
		return sc.sel - 1, false
	}
	sc.sel = hit + 1
	return hit, true
}

// Selected returns the selected index. ok is false when nothing is selected.
func (sc *Scene) Selected() (idx int, ok bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	ok = sc.validate()
	return sc.sel - 1, ok
}

// Select sets the selection to idx. A negative or out of range idx clears it.
func (sc *Scene) Select(idx int) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.sel = max(idx, -1) + 1
	sc.validate()
}

// Drag moves the selected shape by delta. It reports whether a shape was moved.
func (sc *Scene) Drag(delta ms2.Vec) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.validate() {
		return false
	}
	i := sc.sel - 1
	sc.shapes[i] = sc.shapes[i].Translate(delta)
	return true
}

// Edit calls fn with a pointer to the selected shape. fn must not retain the pointer.
// It reports whether fn was called.
func (sc *Scene) Edit(fn func(s *Shape)) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.validate() {
		return false
	}
	fn(&sc.shapes[sc.sel-1])
	return true
}

// DeleteSelected removes the selected shape and clears the selection.
func (sc *Scene) DeleteSelected() (removed Shape, ok bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.validate() {
		return Shape{}, false
	}
	i := sc.sel - 1
	removed = sc.shapes[i]
	sc.shapes = append(sc.shapes[:i], sc.shapes[i+1:]...)
	sc.sel = 0
	return removed, true
}

// Snapshot returns a deep copy of the shapes and the selected index (-1 for none).
// The copy may be read without holding any lock.
func (sc *Scene) Snapshot() (shapes []Shape, selected int) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.validate()
	if len(sc.shapes) == 0 {
		return nil, -1
	}
	return deep.MustCopy(sc.shapes), sc.sel - 1
}

// validate clears a stale selection and reports whether one is set. Called with mu held.
func (sc *Scene) validate() bool {
	if sc.sel <= 0 || sc.sel > len(sc.shapes) {
		sc.sel = 0
		return false
	}
	return true
}
