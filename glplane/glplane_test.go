package glplane

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/soypat/drawbox/log"
)

func TestCompileError(t *testing.T) {
	driver := errors.New("0:3(1): error: syntax error")
	var err error = &CompileError{Err: driver, Source: "#version 330\nvoid main() {\n}\n\x00"}
	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatal("errors.As failed")
	}
	if !errors.Is(err, driver) {
		t.Error("compile error does not unwrap to driver error")
	}
	src := cerr.NumberedSource()
	if !strings.HasPrefix(src, "1: #version 330\n2: void main() {\n3: }\n") {
		t.Errorf("unexpected numbered source:\n%s", src)
	}
	if strings.Contains(src, "\x00") {
		t.Error("numbered source contains NUL terminator")
	}
}

func TestErrorReporterOnce(t *testing.T) {
	var buf bytes.Buffer
	r := errorReporter{log: log.NewWriter(slog.LevelWarn, &buf)}
	errA := &CompileError{Err: errors.New("bad token"), Source: "x"}
	if !r.report(errA) {
		t.Error("first error not reported")
	}
	if r.report(errA) {
		t.Error("repeated error reported twice")
	}
	if !r.report(errors.New("other")) {
		t.Error("distinct error not reported")
	}
	r.report(nil)
	if !r.report(errA) {
		t.Error("error after recovery not reported")
	}
	if n := strings.Count(buf.String(), "bad token"); n != 2 {
		t.Errorf("logged compile error %d times, want 2:\n%s", n, buf.String())
	}
}
