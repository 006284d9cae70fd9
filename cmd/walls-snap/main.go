// Command walls-snap renders frames without a display and saves the last one as a PNG
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/walls3d/config"
	"github.com/lixenwraith/walls3d/display"
	"github.com/lixenwraith/walls3d/logging"
	"github.com/lixenwraith/walls3d/sim"
	"github.com/lixenwraith/walls3d/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		mapRef     = flag.String("map", "", "built-in map name or .toml/.bsp/.bspi file (overrides config)")
		renderer   = flag.String("renderer", "", "bsp or raycast (overrides config)")
		out        = flag.String("out", "frame.png", "output PNG")
		frames     = flag.Int("frames", 1, "frames to render before saving; the dither pattern advances every frame")
		scale      = flag.Int("scale", 0, "pixels per display pixel (default: screen.scale)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("config", "err", err)
	}
	if *mapRef != "" {
		cfg.Map.Path = *mapRef
	}
	if *renderer != "" {
		cfg.Render.Renderer = *renderer
	}
	if *scale > 0 {
		cfg.Screen.Scale = *scale
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("config", "err", err)
	}

	logger, err := logging.New(os.Stderr, logging.Options{Level: cfg.Log.Level, Prefix: "walls-snap"})
	if err != nil {
		log.Fatal("logging", "err", err)
	}
	logging.Propagate(logger)

	if err := snap(cfg, *out, *frames); err != nil {
		logger.Fatal("snapshot", "err", err)
	}
	logger.Info("saved", "file", *out)
}

func snap(cfg config.Config, out string, frames int) error {
	m, err := world.Open(cfg.Map.Path)
	if err != nil {
		return err
	}
	pal, err := display.ParsePalette(cfg.Display.On, cfg.Display.Off)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg, m, nil)
	if err != nil {
		return err
	}

	for i := 0; i < max(frames, 1); i++ {
		s.Frame()
	}
	return display.SavePNG(out, display.Image(s.Framebuffer(), pal, cfg.Screen.Scale))
}
