package diagram

import "slices"

// View returns the view with the given id.
func (m Model) View(id string) (View, bool) {
	i := m.ViewIndex(id)
	if i < 0 {
		return View{}, false
	}
	return m.Views[i], true
}

// ViewIndex returns the index of view id or -1.
func (m Model) ViewIndex(id string) int {
	return slices.IndexFunc(m.Views, func(v View) bool { return v.ID == id })
}

// CurrentView resolves CurrentViewID, falling back to the first view.
func (m Model) CurrentView() (View, bool) {
	if v, ok := m.View(m.CurrentViewID); ok {
		return v, true
	}
	if len(m.Views) > 0 {
		return m.Views[0], true
	}
	return View{}, false
}

// Item returns the model item with the given id.
func (m Model) Item(id string) (ModelItem, bool) {
	i := slices.IndexFunc(m.Items, func(it ModelItem) bool { return it.ID == id })
	if i < 0 {
		return ModelItem{}, false
	}
	return m.Items[i], true
}

// Icon returns the icon with the given id.
func (m Model) Icon(id string) (Icon, bool) {
	i := slices.IndexFunc(m.Icons, func(ic Icon) bool { return ic.ID == id })
	if i < 0 {
		return Icon{}, false
	}
	return m.Icons[i], true
}

// Color returns the palette color with the given id.
func (m Model) Color(id string) (Color, bool) {
	i := slices.IndexFunc(m.Colors, func(c Color) bool { return c.ID == id })
	if i < 0 {
		return Color{}, false
	}
	return m.Colors[i], true
}

// ItemIndex returns the index of view item id or -1.
func (v View) ItemIndex(id string) int {
	return slices.IndexFunc(v.Items, func(it ViewItem) bool { return it.ID == id })
}

// Item returns view item id.
func (v View) Item(id string) (ViewItem, bool) {
	if i := v.ItemIndex(id); i >= 0 {
		return v.Items[i], true
	}
	return ViewItem{}, false
}

// ConnectorIndex returns the index of connector id or -1.
func (v View) ConnectorIndex(id string) int {
	return slices.IndexFunc(v.Connectors, func(c Connector) bool { return c.ID == id })
}

// Connector returns connector id.
func (v View) Connector(id string) (Connector, bool) {
	if i := v.ConnectorIndex(id); i >= 0 {
		return v.Connectors[i], true
	}
	return Connector{}, false
}

// RectangleIndex returns the index of rectangle id or -1.
func (v View) RectangleIndex(id string) int {
	return slices.IndexFunc(v.Rectangles, func(r Rectangle) bool { return r.ID == id })
}

// Rectangle returns rectangle id.
func (v View) Rectangle(id string) (Rectangle, bool) {
	if i := v.RectangleIndex(id); i >= 0 {
		return v.Rectangles[i], true
	}
	return Rectangle{}, false
}

// TextBoxIndex returns the index of text box id or -1.
func (v View) TextBoxIndex(id string) int {
	return slices.IndexFunc(v.TextBoxes, func(t TextBox) bool { return t.ID == id })
}

// TextBox returns text box id.
func (v View) TextBox(id string) (TextBox, bool) {
	if i := v.TextBoxIndex(id); i >= 0 {
		return v.TextBoxes[i], true
	}
	return TextBox{}, false
}

// FindAnchor locates an anchor by id across all connectors of the view.
func (v View) FindAnchor(id string) (Connector, Anchor, bool) {
	for _, c := range v.Connectors {
		for _, a := range c.Anchors {
			if a.ID == id {
				return c, a, true
			}
		}
	}
	return Connector{}, Anchor{}, false
}
