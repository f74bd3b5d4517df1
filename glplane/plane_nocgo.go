//go:build tinygo || !cgo

package glplane

import (
	"github.com/soypat/drawbox/glbuild"
	"github.com/soypat/drawbox/log"
)

// PlaneRenderer requires cgo. Without it every method returns an error.
type PlaneRenderer struct {
	reporter errorReporter
}

func NewPlaneRenderer(p *glbuild.Programmer, lg *log.Logger) *PlaneRenderer {
	return &PlaneRenderer{reporter: errorReporter{log: lg}}
}

func (pr *PlaneRenderer) Create(f glbuild.Frame) error { return errNoCGO }

func (pr *PlaneRenderer) Paint(f glbuild.Frame) error {
	pr.reporter.report(errNoCGO)
	return errNoCGO
}

func (pr *PlaneRenderer) Destroy() {}
