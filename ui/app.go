//go:build !tinygo && cgo

package ui

import (
	"context"
	"image/color"
	"log/slog"
	"strconv"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/browser"
	"github.com/soypat/drawbox"
	"github.com/soypat/drawbox/glbuild"
	"github.com/soypat/drawbox/glplane"
	"github.com/soypat/drawbox/glrender"
	"github.com/soypat/drawbox/log"
	"github.com/soypat/geometry/ms2"
)

type app struct {
	cfg        Config
	scene      *drawbox.Scene
	lg         *log.Logger
	programmer *glbuild.Programmer
	plane      *glplane.PlaneRenderer
	annotator  *glrender.Annotator
	input      canvasInput
	// status is shown at the bottom of the panel.
	status    string
	paintErr  error
	canvasOff ms2.Vec
	canvasSz  ms2.Vec
}

// Run opens the editor window and runs its event loop on the calling
// goroutine, which must be locked to the main OS thread. It returns when
// the window is closed or ctx is done.
func Run(ctx context.Context, cfg Config, scene *drawbox.Scene, lg *log.Logger) (err error) {
	err = cfg.Validate()
	if err != nil {
		return err
	}
	imgui.CreateContext()
	defer imgui.DestroyContext()
	imgui.CurrentIO().SetIniFilename("")
	style := imgui.CurrentStyle()
	style.SetFrameRounding(2.)
	style.SetWindowRounding(4.)

	plat, err := newPlatform(cfg, lg)
	if err != nil {
		return err
	}
	defer plat.dispose()
	rend, err := newImguiRenderer(lg)
	if err != nil {
		return err
	}
	defer rend.dispose()

	a := &app{
		cfg:        cfg,
		scene:      scene,
		lg:         lg,
		programmer: glbuild.NewDefaultProgrammer(),
	}
	a.plane = glplane.NewPlaneRenderer(a.programmer, lg.With("component", "plane"))
	defer a.plane.Destroy()
	a.annotator, err = glrender.NewAnnotator(nil, 18, color.RGBA{R: 255, G: 64, B: 64, A: 255})
	if err != nil {
		lg.Warn("labels disabled for PNG export", slog.Any("err", err))
	}

	for !plat.shouldStop() {
		select {
		case <-ctx.Done():
			lg.Info("Stopping event loop", slog.Any("cause", context.Cause(ctx)))
			return nil
		default:
		}
		plat.processEvents()
		plat.newFrame()
		imgui.NewFrame()

		display := plat.displaySize()
		a.canvasOff, a.canvasSz = cfg.canvasRect(display)
		a.input.origin = a.canvasOff
		a.drawPanel(display)
		a.updateCanvas()
		imgui.Render()

		fb := plat.framebufferSize()
		gl.Disable(gl.SCISSOR_TEST)
		gl.Viewport(0, 0, int32(fb.X), int32(fb.Y))
		gl.ClearColor(0.1, 0.1, 0.1, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		a.paintCanvas(plat.pixelScale(), fb)
		rend.render(display, fb)
		plat.postRender()
	}
	return nil
}

// updateCanvas routes the primary mouse button to the scene when imgui
// does not want the mouse.
func (a *app) updateCanvas() {
	io := imgui.CurrentIO()
	pos := imgui.MousePos()
	ptr := pointer{
		Pos:      ms2.Vec{X: pos.X, Y: pos.Y},
		Pressed:  imgui.IsMouseClickedBool(mouseButtonPrimary),
		Released: imgui.IsMouseReleased(mouseButtonPrimary),
		// Negative threshold uses io.MouseDragThreshold.
		Dragging: imgui.IsMouseDraggingV(mouseButtonPrimary, -1),
	}
	local := a.input.local(ptr.Pos)
	ptr.Hovered = !io.WantCaptureMouse() && local.X >= 0 && local.Y >= 0 &&
		local.X < a.canvasSz.X && local.Y < a.canvasSz.Y
	if ptr.Dragging {
		delta := imgui.MouseDragDeltaV(mouseButtonPrimary, 0.)
		ptr.Delta = ms2.Vec{X: delta.X, Y: delta.Y}
		imgui.ResetMouseDragDeltaV(mouseButtonPrimary)
	}
	a.input.update(a.scene, ptr)
}

// paintCanvas draws the scene inside the canvas rectangle of the framebuffer.
func (a *app) paintCanvas(pixelScale float32, fb ms2.Vec) {
	shapes, selected := a.scene.Snapshot()
	frame, err := drawbox.MakeFrame(drawbox.Canvas{
		Origin:            a.canvasOff,
		Size:              a.canvasSz,
		PixelScale:        pixelScale,
		FramebufferHeight: fb.Y,
	}, shapes, selected, a.programmer)
	if err == nil {
		x := int32(a.canvasOff.X * pixelScale)
		w := int32(a.canvasSz.X * pixelScale)
		h := int32(a.canvasSz.Y * pixelScale)
		y := int32(fb.Y) - int32(a.canvasOff.Y*pixelScale) - h
		gl.Viewport(x, y, w, h)
		err = a.plane.Paint(frame)
		gl.Viewport(0, 0, int32(fb.X), int32(fb.Y))
	}
	a.paintErr = err
}

func (a *app) drawPanel(display ms2.Vec) {
	imgui.SetNextWindowPosV(imgui.Vec2{}, imgui.CondAlways, imgui.Vec2{})
	imgui.SetNextWindowSize(imgui.Vec2{X: panelWidth, Y: display.Y})
	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove | imgui.WindowFlagsNoSavedSettings
	open := true
	imgui.BeginV("Shapes", &open, flags)
	defer imgui.End()

	if imgui.Button("Add Square") {
		idx := a.scene.AddSquare()
		a.lg.Debug("added square", slog.Int("index", idx))
	}
	imgui.SameLine()
	if imgui.Button("Add Circle") {
		idx := a.scene.AddCircle()
		a.lg.Debug("added circle", slog.Int("index", idx))
	}
	imgui.Text(strconv.Itoa(a.scene.Len()) + " shapes")
	imgui.Separator()

	idx, ok := a.scene.Selected()
	if !ok {
		imgui.Text("Click a shape to select it.")
	} else {
		imgui.Text("Selected shape " + strconv.Itoa(idx))
		a.scene.Edit(editShape)
		if imgui.Button("delete") {
			removed, _ := a.scene.DeleteSelected()
			a.lg.Debug("deleted shape", slog.Int("index", idx), slog.String("kind", removed.Kind.String()))
		}
	}
	imgui.Separator()

	if imgui.Button("Export PNG") {
		a.export(exportPNGWithLabels)
	}
	imgui.SameLine()
	if imgui.Button("Export distance") {
		a.export(exportDistance)
	}
	if imgui.Button("Dump scene") {
		shapes, selected := a.scene.Snapshot()
		a.lg.Info("scene dump", slog.String("scene", dumpScene(shapes, selected)))
		a.status = "Scene written to " + a.lg.LogFile
	}
	for _, line := range statusLines(a.status, a.paintErr) {
		textWrapped(line)
	}
}

// textWrapped draws s verbatim wrapped to the window width. Paths and
// driver messages may contain format verbs.
func textWrapped(s string) {
	imgui.PushTextWrapPos()
	imgui.TextUnformatted(s)
	imgui.PopTextWrapPos()
}

type exportKind uint8

const (
	exportPNGWithLabels exportKind = iota
	exportDistance
)

func (a *app) export(kind exportKind) {
	shapes, _ := a.scene.Snapshot()
	var path string
	var err error
	if kind == exportDistance {
		path, err = exportDistancePNG(a.cfg.ExportDir, a.canvasSz, shapes, time.Now())
	} else {
		path, err = exportPNG(a.cfg.ExportDir, a.canvasSz, shapes, a.annotator, time.Now())
	}
	if err != nil {
		a.lg.Error("PNG export failed", slog.Any("err", err))
		a.status = "Export failed: " + err.Error()
		return
	}
	a.lg.Info("exported PNG", slog.String("path", path))
	a.status = "Exported " + path
	if a.cfg.OpenExports {
		err = browser.OpenFile(path)
		if err != nil {
			a.lg.Warn("opening export", slog.Any("err", err))
		}
	}
}

// editShape draws the controls of the selected shape.
func editShape(s *drawbox.Shape) {
	imgui.PushIDStr(s.Kind.String())
	defer imgui.PopID()
	switch s.Kind {
	case drawbox.KindSquare:
		sq := &s.Square
		imgui.SliderFloatV("x", &sq.Pos.X, 0, 1000, "%.1f", 0)
		imgui.SliderFloatV("y", &sq.Pos.Y, 0, 1000, "%.1f", 0)
		imgui.SliderFloatV("width", &sq.Size.X, 0, 1000, "%.1f", 0)
		imgui.SliderFloatV("height", &sq.Size.Y, 0, 1000, "%.1f", 0)
		imgui.SliderFloatV("radius", &sq.Radius, 0, 1, "%.2f", 0)
		imgui.ColorEdit3V("color", &sq.Color, imgui.ColorEditFlagsNoInputs)
	case drawbox.KindCircle:
		c := &s.Circle
		imgui.SliderFloatV("x", &c.Pos.X, 0, 1000, "%.1f", 0)
		imgui.SliderFloatV("y", &c.Pos.Y, 0, 1000, "%.1f", 0)
		imgui.SliderFloatV("radius", &c.Radius, 0, 1000, "%.1f", 0)
		imgui.ColorEdit3V("color", &c.Color, imgui.ColorEditFlagsNoInputs)
	}
	imgui.SliderFloatV("blob", &s.Blend.Blob, -10, 10, "%.2f", 0)
	imgui.SliderFloatV("color spread", &s.Blend.ColorSpread, 0, 1, "%.2f", 0)
	imgui.Checkbox("Subtract", &s.Blend.Subtract)
}
