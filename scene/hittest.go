package scene

import "isoflow/geometry"

// RefType names the kind of entity a Ref points at.
type RefType string

const (
	RefItem            RefType = "ITEM"
	RefTextBox         RefType = "TEXTBOX"
	RefConnector       RefType = "CONNECTOR"
	RefRectangle       RefType = "RECTANGLE"
	RefConnectorAnchor RefType = "CONNECTOR_ANCHOR"
)

// Ref identifies one selectable entity of the current view.
type Ref struct {
	Type RefType `json:"type"`
	ID   string  `json:"id"`
}

// ItemAtTile returns the topmost entity at t. Items win over text boxes,
// text boxes over connectors and connectors over rectangles.
func (s Snapshot) ItemAtTile(t geometry.Tile) (Ref, bool) {
	for _, it := range s.Items {
		if it.Tile == t {
			return Ref{Type: RefItem, ID: it.ID}, true
		}
	}
	for _, tb := range s.TextBoxes {
		if tb.Bounds.Contains(t) {
			return Ref{Type: RefTextBox, ID: tb.TextBox.ID}, true
		}
	}
	for _, c := range s.Connectors {
		if c.Path.Contains(t) {
			return Ref{Type: RefConnector, ID: c.Connector.ID}, true
		}
	}
	for _, r := range s.Rectangles {
		if r.Bounds.Contains(t) {
			return Ref{Type: RefRectangle, ID: r.Rectangle.ID}, true
		}
	}
	return Ref{}, false
}

// AnchorAtTile returns the anchor of connector connectorID resolved to t.
func (s Snapshot) AnchorAtTile(connectorID string, t geometry.Tile) (string, bool) {
	c, ok := s.Connector(connectorID)
	if !ok {
		return "", false
	}
	for i, w := range c.Waypoints {
		if w == t {
			return c.Connector.Anchors[i].ID, true
		}
	}
	return "", false
}

// RectangleCornerAt returns the index into Region.Corners of rectangle id's
// corner at t.
func (s Snapshot) RectangleCornerAt(id string, t geometry.Tile) (int, bool) {
	for _, r := range s.Rectangles {
		if r.Rectangle.ID != id {
			continue
		}
		for i, c := range r.Bounds.Corners() {
			if c == t {
				return i, true
			}
		}
	}
	return 0, false
}

// ItemAtTile hit-tests the current view.
func (s *Scene) ItemAtTile(t geometry.Tile) (Ref, bool) {
	return s.Snapshot().ItemAtTile(t)
}
