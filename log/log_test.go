package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/soypat/drawbox/log"
)

func TestCallstack(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWriter(slog.LevelDebug, &buf)
	l.Info("shape added", slog.Int("index", 3))
	var rec struct {
		Msg       string
		Index     int
		Callstack []log.StackFrame
	}
	err := json.Unmarshal(buf.Bytes(), &rec)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Msg != "shape added" || rec.Index != 3 {
		t.Errorf("unexpected record %+v", rec)
	}
	if len(rec.Callstack) == 0 {
		t.Fatal("missing callstack")
	}
	if !strings.HasSuffix(rec.Callstack[0].Function, "TestCallstack") {
		t.Errorf("first frame %v, want the test function", rec.Callstack[0])
	}
	if rec.Callstack[0].File != "log_test.go" {
		t.Errorf("first frame file %q", rec.Callstack[0].File)
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWriter(slog.LevelWarn, &buf)
	l.Debug("discarded")
	l.Infof("discarded %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("records below level were written: %s", buf.String())
	}
	l.With("component", "plane").Warnf("compile failed %d times", 2)
	if !strings.Contains(buf.String(), `"component":"plane"`) {
		t.Errorf("missing With attribute: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "compile failed 2 times") {
		t.Errorf("missing formatted message: %s", buf.String())
	}
}

func TestNilLogger(t *testing.T) {
	var l *log.Logger
	l.Debug("nothing")
	l.Info("nothing")
	if l.With("a", 1) != nil {
		t.Error("With on nil logger should be nil")
	}
	if err := l.Close(); err != nil {
		t.Error(err)
	}
}

func TestNew(t *testing.T) {
	_, err := log.New("verbose", t.TempDir())
	if err == nil {
		t.Error("expected invalid level error")
	}
	dir := t.TempDir()
	l, err := log.New("debug", dir)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hello")
	err = l.Close()
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(l.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte(`"msg":"hello"`)) {
		t.Errorf("log file missing record:\n%s", b)
	}
}
