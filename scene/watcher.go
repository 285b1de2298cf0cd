package scene

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/collide"
)

// DefaultDebounce is how long a scene file must stay quiet before it is
// reloaded.
const DefaultDebounce = 200 * time.Millisecond

// Update is a reloaded scene or the error that prevented loading it.
type Update struct {
	Document Document
	Err      error
}

// Watcher reloads a scene file when it changes on disk. It watches the
// file's directory so editors that replace the file by renaming are seen.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	updates  chan Update
	stopCh   chan struct{}
	doneCh   chan struct{}

	mu      sync.Mutex
	pending time.Time
	known   fileStamp
	closed  bool
}

type fileStamp struct {
	mod  time.Time
	size int64
}

func stamp(path string) fileStamp {
	fi, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{mod: fi.ModTime(), size: fi.Size()}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching the scene file at path. Call Close to stop.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := FormatFor(abs); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		fsw:      fsw,
		updates:  make(chan Update, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		known:    stamp(abs),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	collide.Logger().Debug("scene: watching", "path", abs)
	return w, nil
}

// Updates delivers reloaded documents. It is closed by Close.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// MarkWritten records the file's current state as already known, so a
// save made by the caller does not come back as an update.
func (w *Watcher) MarkWritten() {
	w.mu.Lock()
	w.known = stamp(w.path)
	w.pending = time.Time{}
	w.mu.Unlock()
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	return w.fsw.Close()
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	defer close(w.updates)

	tick := time.NewTicker(tickInterval(w.debounce))
	defer tick.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			collide.Logger().Warn("scene: watch error", "path", w.path, "err", err)

		case now := <-tick.C:
			if u, ok := w.due(now); ok {
				select {
				case w.updates <- u:
				case <-w.stopCh:
					return
				}
			}
		}
	}
}

// tickInterval is how often pending changes are checked: a quarter of the
// debounce, at least a millisecond.
func tickInterval(debounce time.Duration) time.Duration {
	return max(debounce/4, time.Millisecond)
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// due reloads the file once it has been quiet for the debounce period.
func (w *Watcher) due(now time.Time) (Update, bool) {
	w.mu.Lock()
	if w.pending.IsZero() || now.Sub(w.pending) < w.debounce {
		w.mu.Unlock()
		return Update{}, false
	}
	w.pending = time.Time{}
	st := stamp(w.path)
	if st == w.known {
		w.mu.Unlock()
		return Update{}, false
	}
	w.known = st
	w.mu.Unlock()

	if st == (fileStamp{}) {
		// Removed or mid-rename; wait for the next event.
		return Update{}, false
	}
	d, err := Load(w.path)
	if err != nil {
		collide.Logger().Warn("scene: reload failed", "path", w.path, "err", err)
	} else {
		collide.Logger().Info("scene: reloaded", "path", w.path, "obstacles", len(d.Obstacles))
	}
	return Update{Document: d, Err: err}, true
}
