//go:build !tinygo && cgo

package glplane

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/drawbox/glbuild"
	"github.com/soypat/drawbox/log"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

// PlaneRenderer compiles and draws frames. The zero value is not usable,
// use [NewPlaneRenderer].
type PlaneRenderer struct {
	programmer *glbuild.Programmer
	reporter   errorReporter
	prog       glgl.Program
	linked     bool
	vao        uint32
	vertex     bytes.Buffer
	fragment   bytes.Buffer
}

// NewPlaneRenderer returns a renderer generating shaders with p. lg may be nil.
func NewPlaneRenderer(p *glbuild.Programmer, lg *log.Logger) *PlaneRenderer {
	return &PlaneRenderer{
		programmer: p,
		reporter:   errorReporter{log: lg},
	}
}

// Create generates, compiles and links the program that draws f. On failure
// the previously linked program is kept and a [*CompileError] is returned
// for driver errors.
func (pr *PlaneRenderer) Create(f glbuild.Frame) error {
	if pr.vertex.Len() == 0 {
		_, err := pr.programmer.WriteVertex(&pr.vertex)
		if err != nil {
			pr.vertex.Reset()
			return fmt.Errorf("generating vertex shader: %w", err)
		}
		pr.vertex.WriteByte(0)
	}
	pr.fragment.Reset()
	_, err := pr.programmer.WriteFragment(&pr.fragment, f)
	if err != nil {
		return fmt.Errorf("generating fragment shader: %w", err)
	}
	pr.fragment.WriteByte(0)
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   pr.vertex.String(),
		Fragment: pr.fragment.String(),
	})
	if err != nil {
		return &CompileError{Err: err, Source: pr.fragment.String()}
	}
	if pr.linked {
		pr.prog.Delete()
	}
	pr.prog = prog
	pr.linked = true
	if pr.vao == 0 {
		// Core profiles refuse to draw without a bound vertex array,
		// even when the vertex shader reads no attributes.
		gl.GenVertexArrays(1, &pr.vao)
	}
	return glgl.Err()
}

// Paint rebuilds the program for f and draws it into the current viewport.
// If the rebuild fails the last linked program is drawn and the error is returned.
func (pr *PlaneRenderer) Paint(f glbuild.Frame) error {
	err := pr.Create(f)
	pr.reporter.report(err)
	if !pr.linked {
		return err
	}
	pr.prog.Bind()
	gl.BindVertexArray(pr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	pr.prog.Unbind()
	if glErr := glgl.Err(); glErr != nil {
		err = errors.Join(err, fmt.Errorf("drawing plane: %w", glErr))
	}
	return err
}

// Destroy releases the program and vertex array. It is safe to call when
// nothing was created and more than once.
func (pr *PlaneRenderer) Destroy() {
	if pr.linked {
		pr.prog.Delete()
		pr.linked = false
	}
	if pr.vao != 0 {
		gl.DeleteVertexArrays(1, &pr.vao)
		pr.vao = 0
	}
}
