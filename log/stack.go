package log

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// StackFrame is one caller of a logging method.
type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// Callstack appends the callers of the function doing the logging to fr[:0].
func Callstack(fr []StackFrame) []StackFrame {
	var callers [16]uintptr
	n := runtime.Callers(3, callers[:]) // skip up to function that is doing logging
	frames := runtime.CallersFrames(callers[:n])

	fr = fr[:0]
	if n == 0 {
		return fr
	}
	for {
		frame, more := frames.Next()
		fn := strings.TrimPrefix(frame.Function, "github.com/soypat/drawbox/")
		fn = strings.TrimPrefix(fn, "main.")
		fr = append(fr, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: fn,
		})
		// Don't keep going up into go runtime stack frames.
		if !more || frame.Function == "main.main" {
			break
		}
	}
	return fr
}

func (f StackFrame) String() string {
	return f.File + ":" + strconv.Itoa(f.Line) + ":" + f.Function
}
