// Command walls-sim renders a map in the terminal the way the target display
// would show it, two pixel rows per character cell
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/walls3d/audio"
	"github.com/lixenwraith/walls3d/config"
	"github.com/lixenwraith/walls3d/display"
	"github.com/lixenwraith/walls3d/logging"
	"github.com/lixenwraith/walls3d/sim"
	"github.com/lixenwraith/walls3d/world"
)

var (
	configFlag   = flag.String("config", "", "TOML configuration file")
	mapFlag      = flag.String("map", "", "built-in map name or .toml/.bsp/.bspi file (overrides config)")
	rendererFlag = flag.String("renderer", "", "bsp or raycast (overrides config)")
	debugFlag    = flag.Bool("debug", false, "debug logging to "+filepath.Join(logging.LogDir, logging.LogFileName))
)

type reload struct {
	m   *world.Map
	err error
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "walls-sim: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := setupLogging(cfg, *debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "walls-sim: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logging.Propagate(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("exit", "err", err)
		fmt.Fprintf(os.Stderr, "walls-sim: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return cfg, err
	}
	if *mapFlag != "" {
		cfg.Map.Path = *mapFlag
	}
	if *rendererFlag != "" {
		cfg.Render.Renderer = *rendererFlag
	}
	return cfg, cfg.Validate()
}

// setupLogging keeps the terminal clean: output goes to the configured file,
// to the default log file with -debug, or nowhere
func setupLogging(cfg config.Config, debugMode bool) (*log.Logger, *os.File, error) {
	opts := logging.Options{Level: cfg.Log.Level, Prefix: "walls-sim"}
	path := cfg.Log.File
	if debugMode {
		opts.Level = "debug"
		if path == "" {
			path = filepath.Join(logging.LogDir, logging.LogFileName)
		}
	}
	return logging.Setup(path, opts)
}

func run(cfg config.Config, logger *log.Logger) error {
	m, err := world.Open(cfg.Map.Path)
	if err != nil {
		return err
	}
	pal, err := display.ParsePalette(cfg.Display.On, cfg.Display.Off)
	if err != nil {
		return err
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
		return err
	}

	term, err := display.OpenTerminal(s.Framebuffer(), pal)
	if err != nil {
		return err
	}
	defer term.Fini()

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			term.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mWALLS-SIM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	s.SetHook(term.PushColumn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan reload, 1)
	if cfg.Map.Watch && filepath.Ext(cfg.Map.Path) != "" {
		w, err := world.NewWatcher(cfg.Map.Path)
		if err != nil {
			return err
		}
		go w.Run(ctx, func(m *world.Map, err error) {
			select {
			case reloads <- reload{m, err}:
			case <-ctx.Done():
			}
		})
		logger.Info("watching map", "file", cfg.Map.Path)
	}

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := term.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Display.FPS))
	defer ticker.Stop()

	logger.Info("started", "map", m.Name, "renderer", s.RendererName(), "fps", cfg.Display.FPS)

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a, quit := actionForKey(ev)
				if quit {
					logger.Info("quit", "frames", s.Frames())
					return nil
				}
				s.Apply(a)
			case *tcell.EventResize:
				term.Draw()
			}

		case r := <-reloads:
			if r.err != nil {
				logger.Warn("map reload failed, keeping current map", "err", r.err)
				continue
			}
			if err := s.SetMap(r.m); err != nil {
				logger.Warn("map rejected, keeping current map", "err", err)
			}

		case <-ticker.C:
			s.Frame()
			term.Status(s.Status())
			term.Show()
		}
	}
}
