// Command drawbox is an editor of smoothly blended 2D shapes rendered with
// signed distance fields on the GPU.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/apenwarr/fixconsole"
	"github.com/soypat/drawbox"
	"github.com/soypat/drawbox/log"
	"github.com/soypat/drawbox/ui"
)

var (
	logLevel    = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "log file directory")
	configFile  = flag.String("config", "", "JSON configuration file")
	width       = flag.Int("width", ui.DefaultConfig().Width, "window width")
	height      = flag.Int("height", ui.DefaultConfig().Height, "window height")
	canvas      = flag.Float64("canvas", float64(ui.DefaultConfig().CanvasSize), "canvas side length")
	exportDir   = flag.String("export-dir", "", "directory of exported PNG images")
	openExports = flag.Bool("open-exports", false, "open exported PNG images in the system viewer")
	vsync       = flag.Bool("vsync", true, "synchronize buffer swaps with the display refresh")
)

func init() {
	// OpenGL and GLFW calls must all come from the main OS thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}
	err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "drawbox:", err)
		os.Exit(1)
	}
}

func run() error {
	lg, err := log.New(*logLevel, *logDir)
	if err != nil {
		return err
	}
	defer lg.Close()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	applyFlags(&cfg, flag.CommandLine)
	lg.Info("Starting drawbox", slog.Any("config", cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = ui.Run(ctx, cfg, drawbox.NewScene(), lg)
	if err != nil {
		lg.Error("ui exited", slog.Any("err", err))
	}
	return err
}
