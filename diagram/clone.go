package diagram

import "slices"

// Clone creates a deep copy of the model.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	clone := *m
	clone.Colors = slices.Clone(m.Colors)
	clone.Icons = slices.Clone(m.Icons)
	clone.Items = slices.Clone(m.Items)
	clone.Views = make([]View, len(m.Views))
	for i, v := range m.Views {
		clone.Views[i] = v.Clone()
	}
	return &clone
}

// Clone creates a deep copy of the view.
func (v View) Clone() View {
	clone := v
	clone.Items = slices.Clone(v.Items)
	clone.Rectangles = slices.Clone(v.Rectangles)
	clone.TextBoxes = slices.Clone(v.TextBoxes)
	if v.Connectors != nil {
		clone.Connectors = make([]Connector, len(v.Connectors))
		for i, c := range v.Connectors {
			clone.Connectors[i] = c.Clone()
		}
	}
	return clone
}

// Clone creates a deep copy of the connector, including anchor refs.
func (c Connector) Clone() Connector {
	clone := c
	if c.TextFrame != nil {
		frame := *c.TextFrame
		clone.TextFrame = &frame
	}
	if c.TextOffset != nil {
		offset := *c.TextOffset
		clone.TextOffset = &offset
	}
	if c.Anchors != nil {
		clone.Anchors = make([]Anchor, len(c.Anchors))
		for i, a := range c.Anchors {
			clone.Anchors[i] = a.Clone()
		}
	}
	return clone
}

// Clone creates a deep copy of the anchor.
func (a Anchor) Clone() Anchor {
	clone := a
	if a.Ref.Tile != nil {
		tile := *a.Ref.Tile
		clone.Ref.Tile = &tile
	}
	return clone
}
