package scene

import (
	"errors"
	"fmt"
	"slices"

	"isoflow/diagram"
)

func (s *Scene) currentViewID() string {
	return s.View().ID
}

func (s *Scene) updateView(fn func(*diagram.View)) error {
	return s.store.UpdateView(s.currentViewID(), fn)
}

// mutateView is updateView for operations that report no error. It only
// fails if the current view vanished during fn, which is logged.
func (s *Scene) mutateView(msg, key, id string, fn func(*diagram.View)) {
	if err := s.updateView(fn); err != nil {
		s.logger.Warn(msg, key, id, "error", err)
	}
}

func (s *Scene) stamp(v *diagram.View) {
	v.LastUpdated = diagram.Timestamp(s.store.Now())
}

func (s *Scene) idInUse(id string) bool {
	m := s.store.Model()
	if _, ok := m.Item(id); ok {
		return true
	}
	v := s.View()
	return v.ItemIndex(id) >= 0 || v.ConnectorIndex(id) >= 0 ||
		v.RectangleIndex(id) >= 0 || v.TextBoxIndex(id) >= 0
}

func clampSize(vi *diagram.ViewItem) {
	switch {
	case vi.Size < diagram.DefaultItemSize:
		vi.Size = diagram.DefaultItemSize
	case vi.Size > diagram.MaxItemSize:
		vi.Size = diagram.MaxItemSize
	}
}

// CreateModelItem adds item to the model.
func (s *Scene) CreateModelItem(item diagram.ModelItem) error {
	if item.ID == "" {
		item.ID = diagram.NewID()
	}
	if _, ok := s.store.Model().Item(item.ID); ok {
		return fmt.Errorf("create model item %s: %w", item.ID, ErrDuplicateID)
	}
	if item.Name == "" {
		item.Name = diagram.DefaultModelItemName
	}
	s.store.SetItems(append(slices.Clone(s.store.Model().Items), item))
	return nil
}

// UpdateModelItem applies fn to model item id. Unknown ids are ignored.
func (s *Scene) UpdateModelItem(id string, fn func(*diagram.ModelItem)) {
	items := slices.Clone(s.store.Model().Items)
	i := slices.IndexFunc(items, func(it diagram.ModelItem) bool { return it.ID == id })
	if i < 0 {
		s.logger.Warn("update of unknown model item", "id", id)
		return
	}
	fn(&items[i])
	items[i].ID = id
	s.store.SetItems(items)
}

// DeleteModelItem removes a model item together with its placement in every
// view, cascading to connector anchors bound to it.
func (s *Scene) DeleteModelItem(id string) error {
	m := s.store.Model()
	i := slices.IndexFunc(m.Items, func(it diagram.ModelItem) bool { return it.ID == id })
	if i < 0 {
		return &UnknownModelItemError{ID: id}
	}
	items := slices.Delete(slices.Clone(m.Items), i, i+1)
	views := make([]diagram.View, len(m.Views))
	for n, v := range m.Views {
		if v.ItemIndex(id) < 0 {
			views[n] = v
			continue
		}
		v = v.Clone()
		removeViewItem(&v, id)
		s.stamp(&v)
		views[n] = v
	}
	return s.store.Replace(items, views)
}

// CreateViewItem places an existing ModelItem on the current view.
func (s *Scene) CreateViewItem(vi diagram.ViewItem) error {
	if _, ok := s.store.Model().Item(vi.ID); !ok {
		return &UnknownModelItemError{ID: vi.ID}
	}
	if s.View().ItemIndex(vi.ID) >= 0 {
		return fmt.Errorf("create view item %s: %w", vi.ID, ErrDuplicateID)
	}
	clampSize(&vi)
	return s.updateView(func(v *diagram.View) {
		v.Items = append(v.Items, vi)
	})
}

// UpdateViewItem applies fn to view item id. Unknown ids are logged and ignored.
func (s *Scene) UpdateViewItem(id string, fn func(*diagram.ViewItem)) {
	if s.View().ItemIndex(id) < 0 {
		s.logger.Warn("update of unknown view item", "id", id)
		return
	}
	s.mutateView("view item update failed", "id", id, func(v *diagram.View) {
		i := v.ItemIndex(id)
		fn(&v.Items[i])
		v.Items[i].ID = id
		clampSize(&v.Items[i])
	})
}

// DeleteViewItem removes view item id. Anchors bound to it are dropped and
// connectors left with fewer than two anchors are deleted.
func (s *Scene) DeleteViewItem(id string) {
	if s.View().ItemIndex(id) < 0 {
		s.logger.Warn("delete of unknown view item", "id", id)
		return
	}
	s.mutateView("view item delete failed", "id", id, func(v *diagram.View) {
		removeViewItem(v, id)
	})
}

// removeViewItem deletes item id from v and cascades to anchors. Anchors that
// reference a removed anchor are removed as well.
func removeViewItem(v *diagram.View, id string) {
	if i := v.ItemIndex(id); i >= 0 {
		v.Items = slices.Delete(v.Items, i, i+1)
	}

	removed := map[string]bool{}
	for changed := true; changed; {
		changed = false
		connectors := v.Connectors[:0]
		for _, c := range v.Connectors {
			anchors := c.Anchors[:0]
			for _, a := range c.Anchors {
				if a.Ref.Item == id || (a.Ref.Anchor != "" && removed[a.Ref.Anchor]) {
					removed[a.ID] = true
					changed = true
					continue
				}
				anchors = append(anchors, a)
			}
			c.Anchors = anchors
			if len(c.Anchors) < 2 {
				for _, a := range c.Anchors {
					removed[a.ID] = true
				}
				changed = true
				continue
			}
			connectors = append(connectors, c)
		}
		v.Connectors = connectors
	}
}

// CreateConnector adds c to the current view after checking that every
// anchor resolves. Anchors without ids are given one.
func (s *Scene) CreateConnector(c diagram.Connector) error {
	if c.ID == "" {
		c.ID = diagram.NewID()
	}
	if s.idInUse(c.ID) {
		return fmt.Errorf("create connector %s: %w", c.ID, ErrDuplicateID)
	}
	c.Anchors = slices.Clone(c.Anchors)
	for i := range c.Anchors {
		if c.Anchors[i].ID == "" {
			c.Anchors[i].ID = diagram.NewID()
		}
	}
	if err := validateConnector(resolver{view: s.View(), pending: []diagram.Connector{c}}, c); err != nil {
		return err
	}
	return s.updateView(func(v *diagram.View) {
		v.Connectors = append(v.Connectors, c)
	})
}

func validateConnector(r resolver, c diagram.Connector) error {
	if len(c.Anchors) < 2 {
		return &InvalidAnchorError{Connector: c.ID, Reason: fmt.Sprintf("need at least 2 anchors, got %d", len(c.Anchors))}
	}
	for _, a := range c.Anchors {
		if _, err := r.tile(c.ID, a); err != nil {
			var invalid *InvalidAnchorError
			if errors.As(err, &invalid) {
				return err
			}
			return &InvalidAnchorError{Connector: c.ID, Anchor: a.ID, Err: err}
		}
	}
	return nil
}

// UpdateConnector applies fn to connector id. The update is dropped if the
// result has fewer than two anchors.
func (s *Scene) UpdateConnector(id string, fn func(*diagram.Connector)) {
	current, ok := s.View().Connector(id)
	if !ok {
		s.logger.Warn("update of unknown connector", "connector", id)
		return
	}
	next := current.Clone()
	fn(&next)
	next.ID = id
	if len(next.Anchors) < 2 {
		s.logger.Warn("connector update would leave fewer than 2 anchors", "connector", id)
		return
	}
	s.mutateView("connector update failed", "connector", id, func(v *diagram.View) {
		v.Connectors[v.ConnectorIndex(id)] = next
	})
}

// SetAnchorRef rebinds anchor id, for example to a new tile while dragging.
func (s *Scene) SetAnchorRef(anchorID string, ref diagram.AnchorRef) {
	c, _, ok := s.View().FindAnchor(anchorID)
	if !ok {
		s.logger.Warn("move of unknown anchor", "anchor", anchorID)
		return
	}
	s.UpdateConnector(c.ID, func(c *diagram.Connector) {
		for i := range c.Anchors {
			if c.Anchors[i].ID == anchorID {
				c.Anchors[i].Ref = ref
			}
		}
	})
}

// DeleteConnector removes connector id.
func (s *Scene) DeleteConnector(id string) {
	if s.View().ConnectorIndex(id) < 0 {
		s.logger.Warn("delete of unknown connector", "connector", id)
		return
	}
	s.mutateView("connector delete failed", "connector", id, func(v *diagram.View) {
		i := v.ConnectorIndex(id)
		v.Connectors = slices.Delete(v.Connectors, i, i+1)
	})
}

// CreateRectangle adds r to the current view.
func (s *Scene) CreateRectangle(r diagram.Rectangle) error {
	if r.ID == "" {
		r.ID = diagram.NewID()
	}
	if r.Degenerate() {
		return fmt.Errorf("create rectangle %s: %w", r.ID, ErrDegenerateGeometry)
	}
	if s.idInUse(r.ID) {
		return fmt.Errorf("create rectangle %s: %w", r.ID, ErrDuplicateID)
	}
	return s.updateView(func(v *diagram.View) {
		v.Rectangles = append(v.Rectangles, r)
	})
}

// UpdateRectangle applies fn to rectangle id. Degenerate results are dropped.
func (s *Scene) UpdateRectangle(id string, fn func(*diagram.Rectangle)) {
	current, ok := s.View().Rectangle(id)
	if !ok {
		s.logger.Warn("update of unknown rectangle", "id", id)
		return
	}
	fn(&current)
	current.ID = id
	if current.Degenerate() {
		s.logger.Warn("rectangle update is degenerate", "id", id)
		return
	}
	s.mutateView("rectangle update failed", "id", id, func(v *diagram.View) {
		v.Rectangles[v.RectangleIndex(id)] = current
	})
}

// DeleteRectangle removes rectangle id.
func (s *Scene) DeleteRectangle(id string) {
	if s.View().RectangleIndex(id) < 0 {
		s.logger.Warn("delete of unknown rectangle", "id", id)
		return
	}
	s.mutateView("rectangle delete failed", "id", id, func(v *diagram.View) {
		i := v.RectangleIndex(id)
		v.Rectangles = slices.Delete(v.Rectangles, i, i+1)
	})
}

// CreateTextBox adds tb to the current view.
func (s *Scene) CreateTextBox(tb diagram.TextBox) error {
	if tb.ID == "" {
		tb.ID = diagram.NewID()
	}
	if s.idInUse(tb.ID) {
		return fmt.Errorf("create text box %s: %w", tb.ID, ErrDuplicateID)
	}
	return s.updateView(func(v *diagram.View) {
		v.TextBoxes = append(v.TextBoxes, tb)
	})
}

// UpdateTextBox applies fn to text box id.
func (s *Scene) UpdateTextBox(id string, fn func(*diagram.TextBox)) {
	if s.View().TextBoxIndex(id) < 0 {
		s.logger.Warn("update of unknown text box", "id", id)
		return
	}
	s.mutateView("text box update failed", "id", id, func(v *diagram.View) {
		i := v.TextBoxIndex(id)
		fn(&v.TextBoxes[i])
		v.TextBoxes[i].ID = id
	})
}

// DeleteTextBox removes text box id.
func (s *Scene) DeleteTextBox(id string) {
	if s.View().TextBoxIndex(id) < 0 {
		s.logger.Warn("delete of unknown text box", "id", id)
		return
	}
	s.mutateView("text box delete failed", "id", id, func(v *diagram.View) {
		i := v.TextBoxIndex(id)
		v.TextBoxes = slices.Delete(v.TextBoxes, i, i+1)
	})
}

// ChangeView makes view id current.
func (s *Scene) ChangeView(id string) error {
	return s.store.SetCurrentView(id)
}

// CreateView appends a view and returns its id.
func (s *Scene) CreateView(name string) string {
	return s.store.AddView(name)
}

// DeleteView removes view id. The last view cannot be removed.
func (s *Scene) DeleteView(id string) error {
	return s.store.DeleteView(id)
}
