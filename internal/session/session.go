// Package session ties an editor to the scene file it edits.
//
// A Session opens and saves the file, applies reloads from a watcher,
// exports PNG snapshots and interprets the file-level commands typed on
// the viewer's command line. Everything else is passed to the editor.
package session

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
	"github.com/gogpu/collide/render"
	"github.com/gogpu/collide/scene"
)

// ErrNoPath is returned when saving a session that has no file yet.
var ErrNoPath = errors.New("session: no scene file")

const messageDuration = 3 * time.Second

// Session is an editing session on one scene file.
type Session struct {
	ed      *editor.Editor
	path    string
	watch   bool
	watcher *scene.Watcher
	labels  bool

	msg   string
	msgAt time.Time
	now   func() time.Time

	quitWarned bool
	done       bool
}

// Option configures a Session.
type Option func(*Session)

// WithWatch reloads the file when another program changes it.
func WithWatch(on bool) Option {
	return func(s *Session) { s.watch = on }
}

// WithLabels starts with obstacle captions shown.
func WithLabels(on bool) Option {
	return func(s *Session) { s.labels = on }
}

// WithClock replaces time.Now for message expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a session around ed. When path names an existing file it is
// loaded; a missing file is created on the first save.
func New(ed *editor.Editor, path string, opts ...Option) (*Session, error) {
	s := &Session{ed: ed, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); err == nil {
		if err := s.Open(path); err != nil {
			return nil, err
		}
		return s, nil
	}
	if _, err := scene.FormatFor(path); err != nil {
		return nil, err
	}
	s.path = path
	s.notify("New scene " + path)
	return s, nil
}

// Editor returns the session's editor.
func (s *Session) Editor() *editor.Editor { return s.ed }

// Path returns the scene file, empty when none is set.
func (s *Session) Path() string { return s.path }

// Labels reports whether obstacle captions are shown.
func (s *Session) Labels() bool { return s.labels }

// Done reports whether the user asked to quit.
func (s *Session) Done() bool { return s.done }

func (s *Session) notify(msg string) {
	s.msg = msg
	s.msgAt = s.now()
}

// Open loads the scene at path into the editor, replacing its contents.
func (s *Session) Open(path string) error {
	doc, err := scene.Load(path)
	if err != nil {
		s.notify("Open failed: " + err.Error())
		return err
	}
	obstacles, err := doc.Resolve()
	if err != nil {
		s.notify("Open failed: " + err.Error())
		return err
	}
	s.ed.Load(obstacles)
	if err := s.rewatch(path); err != nil {
		collide.Logger().Warn("session: watch failed", "path", path, "err", err)
	}
	s.path = path
	s.notify(fmt.Sprintf("Opened %s (%d obstacles)", path, len(obstacles)))
	return nil
}

// Save writes the editor's scene to path, or to the session file when
// path is empty. Saving to a new path makes it the session file.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if path == "" {
		s.notify("No scene file: use :save <file>")
		return ErrNoPath
	}
	w, h := s.ed.Size()
	doc := scene.FromObstacles(scene.Canvas{Width: w, Height: h, Grid: s.ed.Grid()}, s.ed.Obstacles())
	if err := scene.Save(path, doc); err != nil {
		s.notify("Save failed: " + err.Error())
		return err
	}
	if path != s.path {
		if err := s.rewatch(path); err != nil {
			collide.Logger().Warn("session: watch failed", "path", path, "err", err)
		}
		s.path = path
	}
	if s.watcher != nil {
		s.watcher.MarkWritten()
	}
	s.ed.MarkSaved()
	s.quitWarned = false
	s.notify("Saved " + path)
	return nil
}

// Export writes a PNG snapshot of the scene to path.
func (s *Session) Export(path string) error {
	f, err := os.Create(path)
	if err != nil {
		s.notify("Export failed: " + err.Error())
		return err
	}
	w, h := s.ed.Size()
	doc := scene.FromObstacles(scene.Canvas{Width: w, Height: h, Grid: s.ed.Grid()}, s.ed.Obstacles())
	err = render.RenderPNG(doc, f, render.ExportOptions{
		Detector:   s.ed.Detector(),
		Labels:     s.labels,
		Collisions: true,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.notify("Export failed: " + err.Error())
		return err
	}
	s.notify("Exported " + path)
	return nil
}

func (s *Session) rewatch(path string) error {
	if !s.watch {
		return nil
	}
	if s.watcher != nil && path == s.path {
		return nil
	}
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	w, err := scene.NewWatcher(path)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

// Watch starts watching the session file if watching is enabled and no
// watcher runs yet.
func (s *Session) Watch() error {
	if !s.watch || s.path == "" || s.watcher != nil {
		return nil
	}
	if _, err := os.Stat(s.path); err != nil {
		return nil
	}
	w, err := scene.NewWatcher(s.path)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

// Poll applies any pending reload without blocking.
func (s *Session) Poll() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case u, ok := <-s.watcher.Updates():
			if !ok {
				s.watcher = nil
				return
			}
			s.Apply(u)
		default:
			return
		}
	}
}

// Apply loads a reloaded document into the editor. Unsaved edits are
// replaced.
func (s *Session) Apply(u scene.Update) {
	if u.Err != nil {
		s.notify("Reload failed: " + u.Err.Error())
		return
	}
	obstacles, err := u.Document.Resolve()
	if err != nil {
		s.notify("Reload failed: " + err.Error())
		return
	}
	discarded := s.ed.Dirty()
	s.ed.Load(obstacles)
	if discarded {
		s.notify("Reloaded from disk; unsaved changes discarded")
	} else {
		s.notify("Reloaded from disk")
	}
}

// ToggleLabels shows or hides obstacle captions.
func (s *Session) ToggleLabels() bool {
	s.labels = !s.labels
	if s.labels {
		s.notify("Labels: ON")
	} else {
		s.notify("Labels: OFF")
	}
	return s.labels
}

// Quit asks to end the session. With unsaved changes the first request
// only warns.
func (s *Session) Quit() bool {
	if s.ed.Dirty() && !s.quitWarned {
		s.quitWarned = true
		s.notify("Unsaved changes: :save them or quit again to discard")
		return false
	}
	s.done = true
	return true
}

// Run executes a command line. File commands are handled here:
//
//	save [file] | open <file> | export <file.png> | labels | quit | wq
//
// everything else goes to editor.Exec.
func (s *Session) Run(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]
	arg := strings.Join(args, " ")

	switch verb {
	case "w", "save":
		return s.Save(arg)
	case "e", "open":
		if arg == "" {
			s.notify("Usage: open <file>")
			return fmt.Errorf("%w: usage: open <file>", editor.ErrInvalidValue)
		}
		return s.Open(arg)
	case "export", "png":
		if arg == "" {
			s.notify("Usage: export <file.png>")
			return fmt.Errorf("%w: usage: export <file.png>", editor.ErrInvalidValue)
		}
		return s.Export(arg)
	case "labels":
		s.ToggleLabels()
		return nil
	case "q", "quit":
		s.Quit()
		return nil
	case "q!":
		s.done = true
		return nil
	case "wq":
		if err := s.Save(arg); err != nil {
			return err
		}
		s.done = true
		return nil
	}

	err := s.ed.Exec(line)
	if errors.Is(err, editor.ErrUnknownCommand) {
		s.notify(fmt.Sprintf("Unknown command %q", verb))
	}
	return err
}

// StatusLine returns the text for the status bar: the latest session
// message or editor status, then the tool, snap state, obstacle count,
// pointer position and a marker for unsaved changes.
func (s *Session) StatusLine() string {
	text := s.ed.Status().Text
	if s.msg != "" && s.now().Sub(s.msgAt) < messageDuration {
		text = s.msg
	}

	snap := "off"
	if s.ed.Snap() {
		snap = "on"
	}
	p := s.ed.Pointer()
	parts := []string{
		fmt.Sprintf("Tool: %s", s.ed.Tool()),
		"Snap: " + snap,
		fmt.Sprintf("%d obstacles", len(s.ed.Obstacles())),
		fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y),
	}
	if s.ed.Dirty() {
		parts = append(parts, "modified")
	}
	if text == "" {
		return strings.Join(parts, " | ")
	}
	return text + " | " + strings.Join(parts, " | ")
}

// Title returns the window title for the session.
func (s *Session) Title(base string) string {
	name := s.path
	if name == "" {
		name = "untitled"
	}
	if s.ed.Dirty() {
		name += " *"
	}
	return base + " - " + name
}

// Close stops the watcher.
func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
