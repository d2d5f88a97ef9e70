package scene

import (
	"isoflow/diagram"
	"isoflow/geometry"
)

// resolver turns anchor refs into tiles for one view. pending holds
// connectors that are being validated but are not in the view yet.
type resolver struct {
	view    diagram.View
	pending []diagram.Connector
}

func (r resolver) findAnchor(id string) (diagram.Connector, diagram.Anchor, bool) {
	if c, a, ok := r.view.FindAnchor(id); ok {
		return c, a, true
	}
	for _, c := range r.pending {
		for _, a := range c.Anchors {
			if a.ID == id {
				return c, a, true
			}
		}
	}
	return diagram.Connector{}, diagram.Anchor{}, false
}

// tile resolves a. Item refs win over anchor refs, which win over tiles.
func (r resolver) tile(connectorID string, a diagram.Anchor) (geometry.Tile, error) {
	return r.resolve(connectorID, a, map[string]bool{})
}

func (r resolver) resolve(connectorID string, a diagram.Anchor, visiting map[string]bool) (geometry.Tile, error) {
	switch {
	case a.Ref.Item != "":
		item, ok := r.view.Item(a.Ref.Item)
		if !ok {
			return geometry.Tile{}, &DanglingAnchorError{Connector: connectorID, Anchor: a.ID, Ref: a.Ref.Item}
		}
		return item.Tile, nil
	case a.Ref.Anchor != "":
		if visiting[a.ID] {
			return geometry.Tile{}, &InvalidAnchorError{Connector: connectorID, Anchor: a.ID, Reason: "reference cycle"}
		}
		visiting[a.ID] = true
		owner, target, ok := r.findAnchor(a.Ref.Anchor)
		if !ok {
			return geometry.Tile{}, &DanglingAnchorError{Connector: connectorID, Anchor: a.ID, Ref: a.Ref.Anchor}
		}
		return r.resolve(owner.ID, target, visiting)
	case a.Ref.Tile != nil:
		return *a.Ref.Tile, nil
	default:
		return geometry.Tile{}, &InvalidAnchorError{Connector: connectorID, Anchor: a.ID, Reason: "empty ref"}
	}
}

// waypoints resolves every anchor of c in order.
func (r resolver) waypoints(c diagram.Connector) ([]geometry.Tile, error) {
	out := make([]geometry.Tile, 0, len(c.Anchors))
	for _, a := range c.Anchors {
		t, err := r.tile(c.ID, a)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ResolveAnchor returns the tile anchor id of view v is attached to.
func ResolveAnchor(v diagram.View, anchorID string) (geometry.Tile, error) {
	r := resolver{view: v}
	c, a, ok := v.FindAnchor(anchorID)
	if !ok {
		return geometry.Tile{}, &DanglingAnchorError{Anchor: anchorID, Ref: anchorID}
	}
	return r.tile(c.ID, a)
}
