package ui

import (
	"github.com/soypat/drawbox"
	"github.com/soypat/geometry/ms2"
)

// pointer is the primary mouse button state over the canvas for one frame,
// in window coordinates.
type pointer struct {
	Pos ms2.Vec
	// Hovered is true when Pos is over the canvas and no other widget.
	Hovered  bool
	Pressed  bool
	Released bool
	// Dragging is true once the button moved past the drag threshold
	// while held. Delta is the movement since the previous frame and
	// is only read while Dragging.
	Dragging bool
	Delta    ms2.Vec
}

// canvasInput turns pointer frames into scene edits. A press and release
// over the canvas without dragging is a click that hit tests the release
// point. Dragging moves the selected shape by the pointer motion.
type canvasInput struct {
	origin  ms2.Vec
	held    bool
	dragged bool
}

func (ci *canvasInput) local(p ms2.Vec) ms2.Vec {
	return ms2.Sub(p, ci.origin)
}

// update applies ptr to scene and reports whether the scene changed.
func (ci *canvasInput) update(scene *drawbox.Scene, ptr pointer) (changed bool) {
	if ptr.Pressed && ptr.Hovered {
		ci.held = true
		ci.dragged = false
	}
	if !ci.held {
		return false
	}
	// Only actual motion turns a press into a drag.
	if ptr.Dragging && ptr.Delta != (ms2.Vec{}) {
		ci.dragged = true
		changed = scene.Drag(ptr.Delta)
	}
	if ptr.Released {
		ci.held = false
		if !ci.dragged {
			_, picked := scene.Click(ci.local(ptr.Pos))
			changed = changed || picked
		}
	}
	return changed
}
