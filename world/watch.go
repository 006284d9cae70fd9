package world

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watcher reloads a map file whenever it is written or replaced
type Watcher struct {
	file    string
	fsWatch *fsnotify.Watcher
}

// NewWatcher starts watching file. The containing directory is watched so
// editors that save by rename are still seen
func NewWatcher(file string) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, errors.Wrap(err, "world: watch")
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "world: watch")
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, errors.Wrapf(err, "world: watch %s", file)
	}
	return &Watcher{file: abs, fsWatch: fsWatch}, nil
}

// Run delivers a freshly loaded map, or the load error, to onChange after
// every change until ctx is done. The watcher is closed on return
func (w *Watcher) Run(ctx context.Context, onChange func(*Map, error)) {
	defer w.fsWatch.Close()

	for {
		select {
		case e, ok := <-w.fsWatch.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.file {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			logger.Debug("map changed", "file", e.Name, "op", e.Op)
			onChange(Load(w.file))

		case err, ok := <-w.fsWatch.Errors:
			if !ok {
				return
			}
			logger.Error("map watcher", "err", err)

		case <-ctx.Done():
			return
		}
	}
}

// Watch is NewWatcher followed by Run
func Watch(ctx context.Context, file string, onChange func(*Map, error)) error {
	w, err := NewWatcher(file)
	if err != nil {
		return err
	}
	w.Run(ctx, onChange)
	return nil
}
