// Package logging builds the charmbracelet loggers used by the commands and
// hands them to the library packages
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/bsp"
	"github.com/lixenwraith/walls3d/render"
	"github.com/lixenwraith/walls3d/sim"
	"github.com/lixenwraith/walls3d/world"
)

// Default file location for terminal UIs, which cannot log to the screen they draw on
const (
	LogDir      = "logs"
	LogFileName = "walls3d.log"
)

// Options configure a logger
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	Prefix string
	Caller bool
}

// New returns a logger writing to w
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "logging: level %q", opts.Level)
		}
		level = l
	}

	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    opts.Caller,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return l, nil
}

// ToFile opens dir/name for appending, creating dir as needed
func ToFile(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "logging: create log dir")
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "logging: open log file")
	}
	return f, nil
}

// Setup builds a logger for a terminal UI. An empty path discards all output;
// the returned file is nil in that case and must otherwise be closed by the caller
func Setup(path string, opts Options) (*log.Logger, *os.File, error) {
	if path == "" {
		l, err := New(io.Discard, opts)
		return l, nil, err
	}

	f, err := ToFile(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}
	l, err := New(f, opts)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, f, nil
}

// Propagate routes library diagnostics through l, each package under its own prefix
func Propagate(l *log.Logger) {
	bsp.SetLogger(l.WithPrefix("bsp"))
	render.SetLogger(l.WithPrefix("render"))
	world.SetLogger(l.WithPrefix("world"))
	sim.SetLogger(l.WithPrefix("sim"))
}
