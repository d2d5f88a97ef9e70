// Package store owns the canonical document state for one open session and
// exposes whole-value replace operations on it. It never cascades changes
// between entities; that is the scene layer's job.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"isoflow/diagram"
)

var (
	// ErrLastView is returned when deleting the only remaining view.
	ErrLastView = errors.New("cannot delete the last view")
	// ErrUnknownView is returned for a view id that does not exist.
	ErrUnknownView = errors.New("unknown view")
	// ErrNoViews is returned when a replacement would leave the model without views.
	ErrNoViews = errors.New("model must contain at least one view")
)

// Listener is notified after every change with the new revision.
type Listener func(revision uint64)

// Store holds one Model. It is not safe for concurrent use; the editor runs
// on a single event loop.
type Store struct {
	model     diagram.Model
	revision  uint64
	listeners []Listener
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source used to stamp views.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store holding m. A model without views gets a default one.
func New(m diagram.Model, opts ...Option) *Store {
	s := &Store{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.model = normalize(m)
	return s
}

func normalize(m diagram.Model) diagram.Model {
	if len(m.Views) == 0 {
		v := diagram.NewView("", 1)
		m.Views = []diagram.View{v}
	}
	if m.ViewIndex(m.CurrentViewID) < 0 {
		m.CurrentViewID = m.Views[0].ID
	}
	if m.Items == nil {
		m.Items = []diagram.ModelItem{}
	}
	return m
}

// Model returns the current model. Callers treat it as read-only and go
// through the setters to change it.
func (s *Store) Model() diagram.Model {
	return s.model
}

// Revision is a counter bumped on every successful change.
func (s *Store) Revision() uint64 {
	return s.revision
}

// Subscribe registers fn to run after every change.
func (s *Store) Subscribe(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) commit(m diagram.Model) {
	s.model = m
	s.revision++
	for _, fn := range s.listeners {
		fn(s.revision)
	}
}

// Load replaces the whole document.
func (s *Store) Load(m diagram.Model) {
	s.commit(normalize(m))
}

// SetTitle renames the document.
func (s *Store) SetTitle(title string) {
	m := s.model
	m.Title = title
	s.commit(m)
}

// SetDocumentName sets the name the document is stored under.
func (s *Store) SetDocumentName(name string) {
	m := s.model
	m.DocumentName = name
	s.commit(m)
}

// SetItems replaces the model item list.
func (s *Store) SetItems(items []diagram.ModelItem) {
	m := s.model
	m.Items = items
	s.commit(m)
}

// SetColors replaces the palette.
func (s *Store) SetColors(colors []diagram.Color) {
	m := s.model
	m.Colors = colors
	s.commit(m)
}

// SetIcons replaces the icon library.
func (s *Store) SetIcons(icons []diagram.Icon) {
	m := s.model
	m.Icons = icons
	s.commit(m)
}

// SetViews replaces every view. The list must not be empty.
func (s *Store) SetViews(views []diagram.View) error {
	if len(views) == 0 {
		return ErrNoViews
	}
	m := s.model
	m.Views = views
	if m.ViewIndex(m.CurrentViewID) < 0 {
		m.CurrentViewID = views[0].ID
	}
	s.commit(m)
	return nil
}

// ReplaceView swaps in a new value for the view with the same id.
func (s *Store) ReplaceView(v diagram.View) error {
	i := s.model.ViewIndex(v.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownView, v.ID)
	}
	m := s.model
	m.Views = slices.Clone(m.Views)
	m.Views[i] = v
	s.commit(m)
	return nil
}

// Replace swaps items and views in a single change.
func (s *Store) Replace(items []diagram.ModelItem, views []diagram.View) error {
	if len(views) == 0 {
		return ErrNoViews
	}
	m := s.model
	m.Items = items
	m.Views = views
	if m.ViewIndex(m.CurrentViewID) < 0 {
		m.CurrentViewID = views[0].ID
	}
	s.commit(m)
	return nil
}

// SetCurrentView switches the active view.
func (s *Store) SetCurrentView(id string) error {
	if s.model.ViewIndex(id) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownView, id)
	}
	m := s.model
	m.CurrentViewID = id
	s.commit(m)
	return nil
}

// AddView appends an empty view and returns its id. An empty name becomes "View n".
func (s *Store) AddView(name string) string {
	v := diagram.NewView(name, len(s.model.Views)+1)
	v.LastUpdated = diagram.Timestamp(s.now())
	m := s.model
	m.Views = append(slices.Clone(m.Views), v)
	s.commit(m)
	return v.ID
}

// DeleteView removes a view. The last view can never be removed; deleting the
// current view moves the selection to the first remaining one.
func (s *Store) DeleteView(id string) error {
	if len(s.model.Views) <= 1 {
		return ErrLastView
	}
	i := s.model.ViewIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownView, id)
	}
	m := s.model
	m.Views = slices.Delete(slices.Clone(m.Views), i, i+1)
	if m.CurrentViewID == id {
		m.CurrentViewID = m.Views[0].ID
	}
	s.commit(m)
	return nil
}

// UpdateView applies fn to a copy of view id and stores the result. The id
// itself cannot be changed.
func (s *Store) UpdateView(id string, fn func(*diagram.View)) error {
	i := s.model.ViewIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownView, id)
	}
	v := s.model.Views[i].Clone()
	fn(&v)
	v.ID = id
	v.LastUpdated = diagram.Timestamp(s.now())
	return s.ReplaceView(v)
}

// ReorderViews puts the views in the order given by ids, which must be a
// permutation of the existing view ids.
func (s *Store) ReorderViews(ids []string) error {
	if len(ids) != len(s.model.Views) {
		return fmt.Errorf("reorder views: expected %d ids, got %d", len(s.model.Views), len(ids))
	}
	views := make([]diagram.View, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		v, ok := s.model.View(id)
		if !ok || seen[id] {
			return fmt.Errorf("%w: %s", ErrUnknownView, id)
		}
		seen[id] = true
		views = append(views, v)
	}
	m := s.model
	m.Views = views
	s.commit(m)
	return nil
}

// Now returns the store clock, used when stamping view updates.
func (s *Store) Now() time.Time {
	return s.now()
}
