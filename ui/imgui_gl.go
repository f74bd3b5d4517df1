//go:build !tinygo && cgo

package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/drawbox/log"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

const imguiVertexShader = `#version 330
uniform mat4 ProjMtx;
layout(location = 0) in vec2 Position;
layout(location = 1) in vec2 UV;
layout(location = 2) in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main() {
	Frag_UV = UV;
	Frag_Color = Color;
	gl_Position = ProjMtx * vec4(Position.xy, 0.0, 1.0);
}
` + "\x00"

const imguiFragmentShader = `#version 330
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main() {
	Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
` + "\x00"

// imguiRenderer draws imgui's draw lists with an OpenGL core profile.
type imguiRenderer struct {
	lg       *log.Logger
	prog     glgl.Program
	locTex   int32
	locProj  int32
	vao      uint32
	vbo, ebo uint32
	fontTex  uint32
}

// newImguiRenderer compiles the imgui program and uploads the font atlas.
// All fonts must be added to imgui before calling it.
func newImguiRenderer(lg *log.Logger) (*imguiRenderer, error) {
	lg.Info("Starting imgui renderer initialization")
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   imguiVertexShader,
		Fragment: imguiFragmentShader,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling imgui program: %w", err)
	}
	r := &imguiRenderer{lg: lg, prog: prog}
	r.locTex, err = prog.UniformLocation("Texture\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	r.locProj, err = prog.UniformLocation("ProjMtx\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	vertexSize, offPos, offUV, offCol := imgui.VertexBufferLayout()
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.EnableVertexAttribArray(0)
	gl.EnableVertexAttribArray(1)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(int(offPos)))
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(int(offUV)))
	gl.VertexAttribPointer(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(int(offCol)))
	gl.BindVertexArray(0)

	fonts := imgui.CurrentIO().Fonts()
	pixels, w, h, bpp := fonts.GetTextureDataAsRGBA32()
	lg.Infof("Fonts texture used %.1f KB", float32(w*h*bpp)/1024)
	gl.GenTextures(1, &r.fontTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	fonts.SetTexID(imgui.TextureID(r.fontTex))

	err = glgl.Err()
	if err != nil {
		r.dispose()
		return nil, fmt.Errorf("imgui renderer setup: %w", err)
	}
	lg.Info("Finished imgui renderer initialization")
	return r, nil
}

func (r *imguiRenderer) dispose() {
	r.prog.Delete()
	gl.DeleteTextures(1, &r.fontTex)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteVertexArrays(1, &r.vao)
}

// render draws the current imgui frame over the whole framebuffer.
func (r *imguiRenderer) render(displaySize, framebufferSize ms2.Vec) {
	drawData := imgui.CurrentDrawData()
	// Avoid rendering when minimized.
	fbWidth, fbHeight := framebufferSize.X, framebufferSize.Y
	if fbWidth <= 0 || fbHeight <= 0 || displaySize.X <= 0 || displaySize.Y <= 0 {
		return
	}
	// Scale coordinates for retina displays (screen coordinates !=
	// framebuffer coordinates)
	drawData.ScaleClipRects(imgui.Vec2{
		X: fbWidth / displaySize.X,
		Y: fbHeight / displaySize.Y,
	})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	// Top left origin orthographic projection of the display.
	w, h := displaySize.X, displaySize.Y
	ortho := [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
	r.prog.Bind()
	gl.Uniform1i(r.locTex, 0)
	gl.UniformMatrix4fv(r.locProj, 1, false, &ortho[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.vao)

	indexSize := imgui.IndexBufferLayout()
	indexType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		indexType = gl.UNSIGNED_INT
	}
	for _, commandList := range drawData.CommandLists() {
		vertexBufferPtr, vertexBufferSizeBytes := commandList.GetVertexBuffer()
		indexBufferPtr, indexBufferSizeBytes := commandList.GetIndexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSizeBytes, vertexBufferPtr, gl.STREAM_DRAW)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSizeBytes, indexBufferPtr, gl.STREAM_DRAW)

		for _, command := range commandList.Commands() {
			if command.HasUserCallback() {
				r.lg.Error("Unexpected user callback in imgui draw list")
				continue
			}
			clipRect := command.ClipRect()
			clipRect.X = max(clipRect.X, 0)
			clipRect.Y = max(clipRect.Y, 0)
			gl.Scissor(int32(clipRect.X), max(int32(fbHeight)-int32(clipRect.W), 0),
				int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))
			gl.BindTexture(gl.TEXTURE_2D, uint32(command.TexID()))
			gl.DrawElements(gl.TRIANGLES, int32(command.ElemCount()), indexType,
				gl.PtrOffset(int(command.IdxOffset())*int(indexSize)))
		}
	}
	gl.BindVertexArray(0)
	r.prog.Unbind()
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
}
