package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reloads the config file on change and notifies subscribers
// with the newly parsed Config. One process holds one Watcher, mirroring
// the teacher's own single-watcher-per-resource shape (internal/tail).
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	log     *logrus.Entry
	mu      sync.Mutex
	onApply func(*Config)
}

// NewWatcher builds a Watcher over the config file at path. path is
// typically config.ConfigFilePath()'s result; if the file doesn't exist
// yet, Start still succeeds and simply waits for it to be created.
func NewWatcher(path string, log *logrus.Entry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Watcher{path: path, fsw: fsw, log: log}, nil
}

// Start begins watching path's parent directory (watching the directory
// rather than the file directly survives editors that replace the file
// via rename-on-save) and calls onApply with each successfully
// reparsed Config. Runs until Close is called.
func (w *Watcher) Start(onApply func(*Config)) error {
	dir := parentDir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.mu.Lock()
	w.onApply = onApply
	w.mu.Unlock()

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadFrom(w.path)
			if err != nil {
				w.log.WithError(err).Warn("config reload failed")
				continue
			}
			if err := cfg.Validate(); err != nil {
				w.log.WithError(err).Warn("reloaded config failed validation, keeping previous")
				continue
			}
			w.log.Info("config reloaded")
			w.mu.Lock()
			apply := w.onApply
			w.mu.Unlock()
			if apply != nil {
				apply(cfg)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("config watcher error")
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func parentDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
