package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/soypat/drawbox/ui"
)

// loadConfig returns the default configuration overlaid with the JSON file at
// path. An empty path returns the defaults.
func loadConfig(path string) (ui.Config, error) {
	cfg := ui.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer fp.Close()
	d := json.NewDecoder(fp)
	d.DisallowUnknownFields()
	if err := d.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("configuration file %s is corrupt: %w", path, err)
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags explicitly set on fs.
func applyFlags(cfg *ui.Config, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		getter, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		v := getter.Get()
		switch f.Name {
		case "width":
			cfg.Width = v.(int)
		case "height":
			cfg.Height = v.(int)
		case "canvas":
			cfg.CanvasSize = float32(v.(float64))
		case "export-dir":
			cfg.ExportDir = v.(string)
		case "open-exports":
			cfg.OpenExports = v.(bool)
		case "vsync":
			cfg.VSync = v.(bool)
		}
	})
}
