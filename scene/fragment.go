package scene

import (
	"fmt"
	"slices"

	"isoflow/diagram"
)

// Fragment is a self-contained group of entities. It is the shape written to
// the clipboard and the unit of paste and duplicate.
type Fragment struct {
	Items      []diagram.ViewItem  `json:"items"`
	ModelItems []diagram.ModelItem `json:"modelItems"`
	Connectors []diagram.Connector `json:"connectors"`
	Rectangles []diagram.Rectangle `json:"rectangles"`
	TextBoxes  []diagram.TextBox   `json:"textBoxes"`
}

// IsEmpty reports whether f holds no view entities.
func (f Fragment) IsEmpty() bool {
	return len(f.Items) == 0 && len(f.Connectors) == 0 &&
		len(f.Rectangles) == 0 && len(f.TextBoxes) == 0
}

// Refs lists the view entities of f: items, rectangles, text boxes, then connectors.
func (f Fragment) Refs() []Ref {
	var refs []Ref
	for _, it := range f.Items {
		refs = append(refs, Ref{Type: RefItem, ID: it.ID})
	}
	for _, r := range f.Rectangles {
		refs = append(refs, Ref{Type: RefRectangle, ID: r.ID})
	}
	for _, tb := range f.TextBoxes {
		refs = append(refs, Ref{Type: RefTextBox, ID: tb.ID})
	}
	for _, c := range f.Connectors {
		refs = append(refs, Ref{Type: RefConnector, ID: c.ID})
	}
	return refs
}

// Extract copies the entities named by refs out of the current view. Items
// bring their ModelItem along. Unknown refs are skipped.
func (s *Scene) Extract(refs []Ref) Fragment {
	var f Fragment
	m := s.store.Model()
	v := s.View()
	for _, ref := range refs {
		switch ref.Type {
		case RefItem:
			vi, ok := v.Item(ref.ID)
			if !ok {
				continue
			}
			f.Items = append(f.Items, vi)
			if mi, ok := m.Item(ref.ID); ok {
				f.ModelItems = append(f.ModelItems, mi)
			}
		case RefConnector:
			if c, ok := v.Connector(ref.ID); ok {
				f.Connectors = append(f.Connectors, c.Clone())
			}
		case RefRectangle:
			if r, ok := v.Rectangle(ref.ID); ok {
				f.Rectangles = append(f.Rectangles, r)
			}
		case RefTextBox:
			if tb, ok := v.TextBox(ref.ID); ok {
				f.TextBoxes = append(f.TextBoxes, tb)
			}
		}
	}
	return f
}

// Insert adds every entity of f to the model and current view in a single
// change. Ids must be fresh. Degenerate rectangles and connectors whose
// anchors do not resolve are dropped with a warning.
func (s *Scene) Insert(f Fragment) error {
	if f.IsEmpty() {
		return nil
	}
	m := s.store.Model()
	view := s.View().Clone()

	items := slices.Clone(m.Items)
	for _, mi := range f.ModelItems {
		if _, ok := m.Item(mi.ID); ok {
			return fmt.Errorf("insert model item %s: %w", mi.ID, ErrDuplicateID)
		}
		if mi.Name == "" {
			mi.Name = diagram.DefaultModelItemName
		}
		items = append(items, mi)
	}
	known := func(id string) bool {
		return slices.ContainsFunc(items, func(it diagram.ModelItem) bool { return it.ID == id })
	}

	for _, vi := range f.Items {
		if !known(vi.ID) {
			return &UnknownModelItemError{ID: vi.ID}
		}
		if view.ItemIndex(vi.ID) >= 0 {
			return fmt.Errorf("insert view item %s: %w", vi.ID, ErrDuplicateID)
		}
		clampSize(&vi)
		view.Items = append(view.Items, vi)
	}
	for _, r := range f.Rectangles {
		if view.RectangleIndex(r.ID) >= 0 {
			return fmt.Errorf("insert rectangle %s: %w", r.ID, ErrDuplicateID)
		}
		if r.Degenerate() {
			s.logger.Warn("dropping degenerate rectangle", "id", r.ID)
			continue
		}
		view.Rectangles = append(view.Rectangles, r)
	}
	for _, tb := range f.TextBoxes {
		if view.TextBoxIndex(tb.ID) >= 0 {
			return fmt.Errorf("insert text box %s: %w", tb.ID, ErrDuplicateID)
		}
		view.TextBoxes = append(view.TextBoxes, tb)
	}
	for _, c := range f.Connectors {
		if view.ConnectorIndex(c.ID) >= 0 {
			return fmt.Errorf("insert connector %s: %w", c.ID, ErrDuplicateID)
		}
	}
	r := resolver{view: view, pending: f.Connectors}
	for _, c := range f.Connectors {
		if err := validateConnector(r, c); err != nil {
			s.logger.Warn("dropping connector", "connector", c.ID, "error", err)
			continue
		}
		view.Connectors = append(view.Connectors, c.Clone())
	}

	s.stamp(&view)
	views := slices.Clone(m.Views)
	views[m.ViewIndex(view.ID)] = view
	return s.store.Replace(items, views)
}

// Delete removes the entities named by refs from the current view, with the
// usual cascade for items.
func (s *Scene) Delete(refs []Ref) {
	for _, ref := range refs {
		switch ref.Type {
		case RefItem:
			s.DeleteViewItem(ref.ID)
		case RefConnector:
			s.DeleteConnector(ref.ID)
		case RefRectangle:
			s.DeleteRectangle(ref.ID)
		case RefTextBox:
			s.DeleteTextBox(ref.ID)
		}
	}
}
