package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/codefionn/rechenschnell/internal/consts"
	"github.com/codefionn/rechenschnell/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk and hands the
// new configuration to a callback. The parent directory is watched so that
// editors which replace the file atomically are picked up as well.
type Watcher struct {
	path     string
	onChange func(*Config)
	debounce time.Duration

	watcher  *fsnotify.Watcher
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher starts watching path. onChange is called from the watcher
// goroutine with each successfully loaded configuration.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: consts.ConfigReloadDebounce,
		watcher:  fw,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stop)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		logger.Warn("ignoring invalid config change in %s: %v", w.path, err)
		return
	}
	cfg.ApplyEnv()
	logger.Info("reloaded config from %s", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
