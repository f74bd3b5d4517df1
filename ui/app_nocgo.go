//go:build tinygo || !cgo

package ui

import (
	"context"
	"errors"

	"github.com/soypat/drawbox"
	"github.com/soypat/drawbox/log"
)

// Run requires cgo for windowing and OpenGL.
func Run(ctx context.Context, cfg Config, scene *drawbox.Scene, lg *log.Logger) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}
	return errors.New("drawbox ui requires cgo")
}
