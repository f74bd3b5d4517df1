// Package glplane draws a [glbuild.Frame] as a full screen plane with a
// generated fragment shader. Programs are rebuilt every paint and the last
// program that linked keeps drawing while the current frame fails to compile.
//
// A PlaneRenderer is not safe for concurrent use and must be used from the
// goroutine that owns the OpenGL context.
package glplane

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soypat/drawbox/log"
)

var errNoCGO = errors.New("glplane requires cgo")

// CompileError is returned when the generated shaders fail to compile or link.
type CompileError struct {
	// Err is the driver diagnostic.
	Err error
	// Source is the fragment shader that failed.
	Source string
}

func (e *CompileError) Error() string {
	return "compiling frame shader: " + e.Err.Error()
}

func (e *CompileError) Unwrap() error { return e.Err }

// NumberedSource returns the fragment source with 1-based line numbers as
// referenced by driver diagnostics.
func (e *CompileError) NumberedSource() string {
	var sb strings.Builder
	for i, line := range strings.Split(strings.TrimRight(e.Source, "\x00\n"), "\n") {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(": ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// errorReporter logs paint errors once per distinct message.
type errorReporter struct {
	log  *log.Logger
	last string
}

// report logs err if its message differs from the previous one. A nil err
// resets the reporter. It returns true when err was logged.
func (r *errorReporter) report(err error) bool {
	if err == nil {
		if r.last != "" {
			r.log.Info("frame shader recovered")
		}
		r.last = ""
		return false
	}
	msg := err.Error()
	if msg == r.last {
		return false
	}
	r.last = msg
	var cerr *CompileError
	if errors.As(err, &cerr) {
		r.log.Warn("frame shader failed to compile", slog.String("err", msg))
		r.log.Debug("frame shader source", slog.String("source", cerr.NumberedSource()))
	} else {
		r.log.Warn("paint failed", slog.String("err", msg))
	}
	return true
}
