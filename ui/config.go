// Package ui is the editor's window: a shape panel on the left and the
// distance field canvas drawn with [glplane] on the right.
package ui

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms2"
)

// Config configures the editor window.
type Config struct {
	Title string `json:"title"`
	// Width and Height of the window in screen coordinates.
	Width  int `json:"width"`
	Height int `json:"height"`
	// CanvasSize is the side of the square canvas in screen coordinates.
	CanvasSize float32 `json:"canvas_size"`
	// ExportDir receives PNG exports. Empty means the working directory.
	ExportDir string `json:"export_dir"`
	// OpenExports opens every exported PNG in the system viewer.
	OpenExports bool `json:"open_exports"`
	VSync       bool `json:"vsync"`
}

// DefaultConfig returns the configuration of the stock editor window.
func DefaultConfig() Config {
	return Config{
		Title:      "DrawBox",
		Width:      1100,
		Height:     900,
		CanvasSize: 800,
		VSync:      true,
	}
}

// Validate checks the window can hold the canvas.
func (cfg Config) Validate() error {
	var errs []error
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height))
	}
	if !(cfg.CanvasSize > 0) {
		errs = append(errs, fmt.Errorf("invalid canvas size %g", cfg.CanvasSize))
	}
	return errors.Join(errs...)
}

const panelWidth = 260

// canvasRect returns the canvas origin and size inside a window of the
// given size. The canvas sits right of the panel and shrinks to fit.
func (cfg Config) canvasRect(window ms2.Vec) (origin, size ms2.Vec) {
	side := min(cfg.CanvasSize, window.X-panelWidth, window.Y)
	side = max(side, 1)
	origin = ms2.Vec{X: panelWidth, Y: 0}
	return origin, ms2.Vec{X: side, Y: side}
}
