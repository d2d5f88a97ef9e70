// Package editor ties one open document to its input dispatcher and undo
// history.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"isoflow/diagram"
	"isoflow/document"
	"isoflow/interaction"
	"isoflow/pathfinding"
	"isoflow/scene"
	"isoflow/store"
)

// ErrNoFile is returned by Save when the session was not opened from a file.
var ErrNoFile = errors.New("session has no backing file")

// Session owns the store, scene and interaction manager of one document.
// Input goes through the Session so that every completed gesture becomes one
// undo step.
type Session struct {
	store   *store.Store
	scene   *scene.Scene
	manager *interaction.Manager
	history *History
	file    *document.FileStore
	logger  *slog.Logger

	recorded uint64 // revision of the newest snapshot
	saved    uint64 // revision last written to file

	capacity int
	router   *pathfinding.Router
	mgrOpts  []interaction.Option
	editor   interaction.EditorMode
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithHistoryCapacity bounds the number of undo steps kept.
func WithHistoryCapacity(n int) Option {
	return func(s *Session) { s.capacity = n }
}

func WithRouter(r *pathfinding.Router) Option {
	return func(s *Session) { s.router = r }
}

// WithFile binds the session to a file for Save.
func WithFile(fs *document.FileStore) Option {
	return func(s *Session) { s.file = fs }
}

// WithEditorMode starts the session in the given editor mode.
func WithEditorMode(em interaction.EditorMode) Option {
	return func(s *Session) { s.editor = em }
}

// WithManagerOptions passes options through to the interaction manager.
func WithManagerOptions(opts ...interaction.Option) Option {
	return func(s *Session) { s.mgrOpts = append(s.mgrOpts, opts...) }
}

// NewSession opens m for editing.
func NewSession(m diagram.Model, opts ...Option) *Session {
	s := &Session{logger: slog.Default(), editor: interaction.EditorEditable}
	for _, opt := range opts {
		opt(s)
	}
	s.store = store.New(m, store.WithLogger(s.logger))
	sceneOpts := []scene.Option{scene.WithLogger(s.logger)}
	if s.router != nil {
		sceneOpts = append(sceneOpts, scene.WithRouter(s.router))
	}
	s.scene = scene.New(s.store, sceneOpts...)

	mgrOpts := append([]interaction.Option{
		interaction.WithLogger(s.logger),
		interaction.WithHistory(s),
	}, s.mgrOpts...)
	s.history = NewHistory(s.capacity)
	s.manager = interaction.NewManager(s.scene, mgrOpts...)
	s.manager.SetEditorMode(s.editor)

	s.snapshot()
	s.saved = s.recorded
	return s
}

// Open loads the document at path, or starts a new one there if the file
// does not exist yet.
func Open(ctx context.Context, path string, opts ...Option) (*Session, error) {
	fs := document.NewFileStore(path)
	m := diagram.NewModel("")
	if fs.Exists() {
		var err error
		if m, err = fs.Load(ctx); err != nil {
			return nil, err
		}
	}
	return NewSession(m, append(opts, WithFile(fs))...), nil
}

func (s *Session) Store() *store.Store { return s.store }
func (s *Session) Scene() *scene.Scene { return s.scene }
func (s *Session) Manager() *interaction.Manager { return s.manager }
func (s *Session) History() *History { return s.history }
func (s *Session) File() *document.FileStore { return s.file }
func (s *Session) Model() diagram.Model { return s.store.Model() }
func (s *Session) Snapshot() scene.Snapshot { return s.scene.Snapshot() }
func (s *Session) UI() *interaction.UiState { return s.manager.UI() }

// Dirty reports whether the model changed since it was opened or saved.
func (s *Session) Dirty() bool {
	return s.store.Revision() != s.saved
}

// HandlePointer forwards a pointer event and records an undo step once the
// gesture that changed the model has finished.
func (s *Session) HandlePointer(ev interaction.PointerEvent) {
	s.manager.HandlePointer(ev)
	s.checkpoint()
}

func (s *Session) HandleTouch(ev interaction.TouchEvent) {
	s.manager.HandleTouch(ev)
	s.checkpoint()
}

func (s *Session) HandleWheel(ev interaction.WheelEvent) {
	s.manager.HandleWheel(ev)
}

func (s *Session) HandleKeyDown(ev interaction.KeyEvent) {
	s.manager.HandleKeyDown(ev)
	s.checkpoint()
}

func (s *Session) HandleKeyUp(ev interaction.KeyEvent) {
	s.manager.HandleKeyUp(ev)
	s.checkpoint()
}

// Edit runs fn against the scene as one undo step, for changes that do not
// come from input events.
func (s *Session) Edit(fn func(*scene.Scene) error) error {
	if err := fn(s.scene); err != nil {
		return err
	}
	s.checkpoint()
	return nil
}

// Commit records an undo step for changes made directly through the
// manager. A text box added with AddTextBox is recorded together with its
// text once editing ends.
func (s *Session) Commit() {
	s.checkpoint()
}

// Undo implements interaction.History.
func (s *Session) Undo() bool {
	s.flush()
	m, ok, err := s.history.Undo()
	return s.restore(m, ok, err)
}

// Redo implements interaction.History.
func (s *Session) Redo() bool {
	m, ok, err := s.history.Redo()
	return s.restore(m, ok, err)
}

// Save writes the model to the bound file.
func (s *Session) Save(ctx context.Context) error {
	if s.file == nil {
		return ErrNoFile
	}
	if err := s.file.Save(ctx, s.store.Model()); err != nil {
		return fmt.Errorf("save %s: %w", s.file.Path(), err)
	}
	s.saved = s.store.Revision()
	s.logger.Info("document saved", "path", s.file.Path(), "revision", s.saved)
	return nil
}

func (s *Session) restore(m diagram.Model, ok bool, err error) bool {
	if err != nil {
		s.logger.Error("history restore failed", "error", err)
		return false
	}
	if !ok {
		return false
	}
	s.store.Load(m)
	s.recorded = s.store.Revision()
	return true
}

// checkpoint snapshots the model when it changed, no button is held and no
// text box is being edited, so a drag or one round of typing becomes a single
// step.
func (s *Session) checkpoint() {
	ui := s.manager.UI()
	if ui.Mouse.Held() || ui.Mode.Kind() == interaction.ModeTextBox {
		return
	}
	s.flush()
}

// flush snapshots any change not yet recorded.
func (s *Session) flush() {
	if s.store.Revision() == s.recorded {
		return
	}
	s.snapshot()
}

func (s *Session) snapshot() {
	if err := s.history.Save(s.store.Model()); err != nil {
		s.logger.Error("history snapshot failed", "error", err)
		return
	}
	s.recorded = s.store.Revision()
}
