// Package drawbox implements the model of a 2D blob shape editor: shapes,
// the scene that owns them and their selection, hit testing and dragging,
// and compilation of the scene into signed distance field shader terms.
//
// Shapes are combined in scene order. The first shape seeds the distance
// field and each following shape is merged into it with a smooth minimum
// whose softness is the shape's blob factor, or carved out of it when the
// shape subtracts.
package drawbox

import (
	"github.com/soypat/drawbox/glbuild"
	"github.com/soypat/drawbox/gleval"
	"github.com/soypat/geometry/ms2"
)

// Field compiles shapes into a CPU evaluable distance field of a canvas of
// the given size, mirroring the generated shader.
func Field(size ms2.Vec, shapes []Shape, selected int) (*gleval.Field, error) {
	frame, err := MakeFrame(Canvas{Size: size}, shapes, selected, cpuProgrammer)
	if err != nil {
		return nil, err
	}
	return gleval.NewField(frame)
}

// cpuProgrammer is only used for capability checks of CPU evaluation, which supports every primitive.
var cpuProgrammer = glbuild.NewDefaultProgrammer()
