package controls

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// ConfigWatcher reloads a controller's Config whenever its YAML file changes on disk.
// A file that fails to load is reported and the controller keeps its last good settings.
type ConfigWatcher struct {
	path    string
	ctrl    OrbitController
	onError func(error)

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// WatchConfig loads path into ctrl and then reapplies it on every write.
// The parent directory is watched so editors that replace the file atomically are handled.
//
// Parameters:
//   - path: the YAML config file
//   - ctrl: the controller to configure
//   - onError: receives load and watch errors; nil logs them
//
// Returns:
//   - *ConfigWatcher: the running watcher, stop it with Close
//   - error: error if the initial load fails or the file cannot be watched
func WatchConfig(path string, ctrl OrbitController, onError func(error)) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %q", path)
	}
	cfg, err := LoadConfig(abs)
	if err != nil {
		return nil, err
	}
	ctrl.ApplyConfig(cfg)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config watcher")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch %q", filepath.Dir(abs))
	}

	w := &ConfigWatcher{
		path:    abs,
		ctrl:    ctrl,
		onError: onError,
		watcher: watcher,
		done:    make(chan struct{}),
	}
	if w.onError == nil {
		w.onError = func(err error) {
			log.Printf("controls: config reload: %v", err)
		}
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *ConfigWatcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(errors.Wrap(err, "config watcher"))
		}
	}
}

func (w *ConfigWatcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.onError(errors.Wrapf(err, "failed to read controls config %q", w.path))
		return
	}
	// a truncate-then-write save shows up as an empty file first
	if len(data) == 0 {
		return
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		w.onError(errors.Wrapf(err, "controls config %q", w.path))
		return
	}
	w.ctrl.ApplyConfig(cfg)
}

// Close stops watching. It is safe to call more than once.
//
// Returns:
//   - error: error from closing the underlying watcher
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
