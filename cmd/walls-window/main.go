// Command walls-window renders a map in a desktop window
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/walls3d/audio"
	"github.com/lixenwraith/walls3d/config"
	"github.com/lixenwraith/walls3d/display"
	"github.com/lixenwraith/walls3d/display/window"
	"github.com/lixenwraith/walls3d/logging"
	"github.com/lixenwraith/walls3d/sim"
	"github.com/lixenwraith/walls3d/world"
)

var (
	configFlag = flag.String("config", "", "TOML configuration file")
	mapFlag    = flag.String("map", "", "built-in map name or .toml/.bsp/.bspi file (overrides config)")
	debugFlag  = flag.Bool("debug", false, "debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal("config", "err", err)
	}
	if *mapFlag != "" {
		cfg.Map.Path = *mapFlag
	}

	opts := logging.Options{Level: cfg.Log.Level, Prefix: "walls-window"}
	if *debugFlag {
		opts.Level = "debug"
	}
	logger, err := logging.New(os.Stderr, opts)
	if err != nil {
		log.Fatal("logging", "err", err)
	}
	logging.Propagate(logger)

	m, err := world.Open(cfg.Map.Path)
	if err != nil {
		logger.Fatal("map", "err", err)
	}
	pal, err := display.ParsePalette(cfg.Display.On, cfg.Display.Off)
	if err != nil {
		logger.Fatal("palette", "err", err)
	}

	var cue *audio.Cue
	if cfg.Audio.Enabled {
		cue = audio.NewCue(audio.Options{
			Frequency: cfg.Audio.Frequency,
			Duration:  time.Duration(cfg.Audio.Duration) * time.Millisecond,
			Volume:    audio.DefaultOptions.Volume,
		})
		if err := cue.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing silent", "err", err)
		}
		defer cue.Cleanup()
	}

	s, err := sim.New(cfg, m, cue)
	if err != nil {
		logger.Fatal("simulator", "err", err)
	}

	g, err := window.New(s, pal, cfg.Screen.Scale)
	if err != nil {
		logger.Fatal("window", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Map.Watch && filepath.Ext(cfg.Map.Path) != "" {
		reloads := make(chan *world.Map, 1)
		w, err := world.NewWatcher(cfg.Map.Path)
		if err != nil {
			logger.Fatal("watch", "err", err)
		}
		go w.Run(ctx, func(m *world.Map, err error) {
			if err != nil {
				logger.Warn("map reload failed, keeping current map", "err", err)
				return
			}
			select {
			case reloads <- m:
			case <-ctx.Done():
			}
		})

		g.Poll = func(s *sim.Sim) {
			select {
			case m := <-reloads:
				if err := s.SetMap(m); err != nil {
					logger.Warn("map rejected, keeping current map", "err", err)
				}
			default:
			}
		}
	}

	logger.Info("started", "map", m.Name, "renderer", s.RendererName())
	if err := window.Run(g, "walls3d - "+m.Name, cfg.Display.FPS); err != nil {
		logger.Fatal("run", "err", err)
	}
	logger.Info("closed", "frames", s.Frames())
}
