package ui

import (
	"errors"

	"github.com/soypat/drawbox/glplane"
)

// statusLines returns the messages shown under the panel's buttons. Lines
// are displayed verbatim and may contain format verbs.
func statusLines(status string, paintErr error) (lines []string) {
	if status != "" {
		lines = append(lines, status)
	}
	var cerr *glplane.CompileError
	if errors.As(paintErr, &cerr) {
		lines = append(lines, "Shader error, showing last good frame: "+cerr.Err.Error())
	} else if paintErr != nil {
		lines = append(lines, "Paint error: "+paintErr.Error())
	}
	return lines
}
