package cleaning

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a file-backed Registry whenever its rules file changes.
// The parent directory is watched so editors that save by rename are seen.
type Watcher struct {
	Reloads <-chan error // One value per reload attempt (nil on success)

	registry *Registry
	file     string
	reloads  chan error
	done     chan struct{}
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher for a file-backed registry.
func NewWatcher(r *Registry) (*Watcher, error) {
	if r.Path() == "" {
		return nil, errors.New("registry has no rules file")
	}
	file, err := filepath.Abs(r.Path())
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan error, 4)
	return &Watcher{
		Reloads:  ch,
		registry: r,
		file:     file,
		reloads:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.file)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case now := <-ticker.C:
			if pending.IsZero() || now.Sub(pending) < debounce {
				continue
			}
			pending = time.Time{}
			w.emit(w.registry.Reload())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Rules watcher error", "error", err)
		}
	}
}

// emit reports a reload without blocking when nobody is listening.
func (w *Watcher) emit(err error) {
	select {
	case w.reloads <- err:
	default:
	}
}
