package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goforj/godump"
	"github.com/soypat/drawbox"
	"github.com/soypat/drawbox/glrender"
	"github.com/soypat/geometry/ms2"
)

// exportPNG renders shapes on the CPU to a timestamped PNG inside dir with
// every shape labeled by its index. It returns the written file's path.
func exportPNG(dir string, canvas ms2.Vec, shapes []drawbox.Shape, a *glrender.Annotator, now time.Time) (path string, err error) {
	field, err := drawbox.Field(canvas, shapes, -1)
	if err != nil {
		return "", fmt.Errorf("compiling export: %w", err)
	}
	labels := make([]glrender.Label, len(shapes))
	for i := range shapes {
		labels[i] = glrender.Label{Pos: shapes[i].Position(), Text: strconv.Itoa(i)}
	}
	return writeExport(dir, "drawbox-", now, func(w io.Writer) error {
		return glrender.WritePNG(w, field, a, labels)
	})
}

// exportDistancePNG writes the accumulated distance field of shapes as a
// banded distance visualization.
func exportDistancePNG(dir string, canvas ms2.Vec, shapes []drawbox.Shape, now time.Time) (path string, err error) {
	field, err := drawbox.Field(canvas, shapes, -1)
	if err != nil {
		return "", fmt.Errorf("compiling export: %w", err)
	}
	return writeExport(dir, "drawbox-distance-", now, func(w io.Writer) error {
		return glrender.WriteDistancePNG(w, field, glrender.DistanceColorIQ(1./3))
	})
}

func writeExport(dir, prefix string, now time.Time, write func(io.Writer) error) (path string, err error) {
	if dir == "" {
		dir = "."
	}
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return "", err
	}
	path = filepath.Join(dir, prefix+now.Format("20060102-150405.000")+".png")
	fp, err := os.Create(path)
	if err != nil {
		return "", err
	}
	err = write(fp)
	err = errors.Join(err, fp.Close())
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// dumpScene returns a human readable dump of the scene for the debug log.
func dumpScene(shapes []drawbox.Shape, selected int) string {
	return godump.DumpStr(struct {
		Selected int
		Shapes   []drawbox.Shape
	}{selected, shapes})
}
