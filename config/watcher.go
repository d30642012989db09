package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default quiet period after the last file event
// before the settings file is reloaded.
const DefaultDebounce = 500 * time.Millisecond

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the reload debounce interval.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets the callback for parse and watch errors. It runs on
// the watcher goroutine.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher reloads a settings file when it changes and delivers the new
// settings on Updates. A file that fails to parse is reported through the
// error handler and the previous settings stay in effect.
type Watcher struct {
	path     string
	abs      string
	base     Settings
	debounce time.Duration
	onError  func(error)
	fsw      *fsnotify.Watcher
	updates  chan Settings
}

// NewWatcher watches the settings file at path. Each reload parses the file
// over base.
func NewWatcher(path string, base Settings, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory so editors that save by rename are seen.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		path:     path,
		abs:      absPath(path),
		base:     base,
		debounce: DefaultDebounce,
		fsw:      fsw,
		updates:  make(chan Settings, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Updates returns the channel of reloaded settings. Only the latest
// undelivered settings are kept. The channel is closed when Run returns.
func (w *Watcher) Updates() <-chan Settings {
	return w.updates
}

// Run watches until ctx is canceled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.updates)
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if absPath(event.Name) != w.abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

// reload parses the file and publishes the result, replacing an
// undelivered update.
func (w *Watcher) reload() {
	s, err := ParseFile(w.path, w.base)
	if err != nil {
		w.report(err)
		return
	}
	select {
	case <-w.updates:
	default:
	}
	w.updates <- s
}

// absPath returns the absolute form of p, or the cleaned p when the
// working directory cannot be determined.
func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
