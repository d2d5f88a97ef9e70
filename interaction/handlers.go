package interaction

import (
	"isoflow/diagram"
	"isoflow/geometry"
	"isoflow/scene"
)

// handler implements one mode. Handlers are stateless; in-progress data
// lives in the Mode value.
type handler interface {
	entry(st *State)
	exit(st *State)
	mouseDown(st *State)
	mouseMove(st *State)
	mouseUp(st *State)
}

// handlerFor returns the handler for kind.
func handlerFor(kind ModeKind) handler {
	switch kind {
	case ModeCursor:
		return cursorHandler{}
	case ModePan:
		return panHandler{}
	case ModePlaceIcon:
		return placeIconHandler{}
	case ModeRectangleDraw:
		return rectangleDrawHandler{}
	case ModeRectangleTransform:
		return rectangleTransformHandler{}
	case ModeConnector:
		return connectorHandler{}
	case ModeDragItems:
		return dragItemsHandler{}
	case ModeTextBox:
		return textBoxHandler{}
	case ModeInteractionsDisabled:
		return noopHandler{}
	default:
		return noopHandler{}
	}
}

type noopHandler struct{}

func (noopHandler) entry(*State) {}
func (noopHandler) exit(*State) {}
func (noopHandler) mouseDown(*State) {}
func (noopHandler) mouseMove(*State) {}
func (noopHandler) mouseUp(*State) {}

// CURSOR

type cursorHandler struct{ noopHandler }

func (cursorHandler) entry(st *State) {
	st.UI.Cursor = CursorDefault
}

func (cursorHandler) mouseDown(st *State) {
	if !st.OnSurface {
		return
	}
	tile := st.Mouse.Position.Tile
	readonly := st.manager.readonly()

	if sel := st.UI.Selection; sel != nil && !readonly {
		switch sel.Type {
		case scene.RefRectangle:
			if corner, ok := st.Snapshot.RectangleCornerAt(sel.ID, tile); ok {
				rect, _ := st.Scene.View().Rectangle(sel.ID)
				st.SetMode(&RectangleTransformMode{ID: sel.ID, Handle: corner, Original: rect})
				return
			}
		case scene.RefConnector:
			if anchorID, ok := st.Snapshot.AnchorAtTile(sel.ID, tile); ok {
				st.SetMode(&DragItemsMode{
					Items:         []scene.Ref{{Type: scene.RefConnectorAnchor, ID: anchorID}},
					MousedownTile: tile,
					LastTile:      tile,
				})
				return
			}
		}
	}

	ref, ok := st.Snapshot.ItemAtTile(tile)
	if !ok {
		st.UI.Selection = nil
		st.UI.ContextMenu = nil
		return
	}
	st.UI.Selection = &ref
	if readonly || ref.Type == scene.RefConnector {
		return
	}
	st.SetMode(&DragItemsMode{Items: []scene.Ref{ref}, MousedownTile: tile, LastTile: tile})
}

// PAN

type panHandler struct{ noopHandler }

func (panHandler) entry(st *State) {
	st.UI.Cursor = CursorGrab
}

func (panHandler) mouseDown(st *State) {
	st.UI.Cursor = CursorGrabbing
}

func (panHandler) mouseMove(st *State) {
	if !st.Mouse.Held() || st.Mouse.Delta == nil {
		return
	}
	st.UI.Scroll = st.UI.Scroll.Add(st.Mouse.Delta.Screen)
}

func (panHandler) mouseUp(st *State) {
	st.UI.Cursor = CursorGrab
}

// PLACE_ICON

type placeIconHandler struct{ noopHandler }

func (placeIconHandler) entry(st *State) {
	st.UI.Cursor = CursorCrosshair
}

func (placeIconHandler) mouseDown(st *State) {
	if !st.OnSurface {
		return
	}
	mode := st.UI.Mode.(*PlaceIconMode)
	id := diagram.NewID()
	if err := st.Scene.CreateModelItem(diagram.ModelItem{ID: id, Name: diagram.DefaultModelItemName, Icon: mode.IconID}); err != nil {
		st.manager.logger.Warn("place icon failed", "error", err)
		return
	}
	if err := st.Scene.CreateViewItem(diagram.NewViewItem(id, st.Mouse.Position.Tile)); err != nil {
		st.manager.logger.Warn("place icon failed", "id", id, "error", err)
		return
	}
	st.UI.Selection = &scene.Ref{Type: scene.RefItem, ID: id}
	st.SetMode(&CursorMode{})
}

// RECTANGLE.DRAW

type rectangleDrawHandler struct{ noopHandler }

func (rectangleDrawHandler) entry(st *State) {
	st.UI.Cursor = CursorCrosshair
}

func (rectangleDrawHandler) mouseDown(st *State) {
	if !st.OnSurface {
		return
	}
	mode := st.UI.Mode.(*RectangleDrawMode)
	id := mode.ID
	if id == "" {
		id = diagram.NewID()
	}
	tile := st.Mouse.Position.Tile
	mode.Preview = &diagram.Rectangle{ID: id, Color: st.Scene.Model().DefaultColorID(), From: tile, To: tile}
}

func (rectangleDrawHandler) mouseMove(st *State) {
	mode := st.UI.Mode.(*RectangleDrawMode)
	if mode.Preview == nil || !st.Mouse.Held() {
		return
	}
	mode.Preview.To = st.Mouse.Position.Tile
}

func (rectangleDrawHandler) mouseUp(st *State) {
	mode := st.UI.Mode.(*RectangleDrawMode)
	if mode.Preview == nil {
		return
	}
	rect := *mode.Preview
	mode.Preview = nil
	if !rect.Degenerate() {
		if err := st.Scene.CreateRectangle(rect); err != nil {
			st.manager.logger.Warn("create rectangle failed", "id", rect.ID, "error", err)
		} else {
			st.UI.Selection = &scene.Ref{Type: scene.RefRectangle, ID: rect.ID}
		}
	}
	st.SetMode(&CursorMode{})
}

// RECTANGLE.TRANSFORM

type rectangleTransformHandler struct{ noopHandler }

func (rectangleTransformHandler) entry(st *State) {
	st.UI.Cursor = CursorCrosshair
}

func (rectangleTransformHandler) mouseMove(st *State) {
	if !st.Mouse.Held() {
		return
	}
	mode := st.UI.Mode.(*RectangleTransformMode)
	fixed := mode.Original.Bounds().Corners()[(mode.Handle+2)%4]
	tile := st.Mouse.Position.Tile
	if tile == fixed {
		return
	}
	st.Scene.UpdateRectangle(mode.ID, func(r *diagram.Rectangle) {
		r.From = fixed
		r.To = tile
	})
}

func (rectangleTransformHandler) mouseUp(st *State) {
	st.SetMode(&CursorMode{})
}

// CONNECTOR

type connectorHandler struct{ noopHandler }

func (connectorHandler) entry(st *State) {
	st.UI.Cursor = CursorCrosshair
}

func (connectorHandler) mouseDown(st *State) {
	if !st.OnSurface {
		return
	}
	mode := st.UI.Mode.(*ConnectorMode)
	tile := st.Mouse.Position.Tile
	ref := diagram.TileRef(tile)
	if hit, ok := st.Snapshot.ItemAtTile(tile); ok && hit.Type == scene.RefItem {
		ref = diagram.ItemRef(hit.ID)
	}

	if n := len(mode.Anchors); n > 0 {
		last := mode.Anchors[n-1]
		lastTile, _ := pendingTile(st.Scene.View(), last)
		if (ref.Item != "" && ref.Item == last.Ref.Item) || (ref.Item == "" && tile == lastTile) {
			// Clicking the last anchor again finishes the chain.
			commitConnector(st, mode)
			return
		}
	}

	mode.Anchors = append(mode.Anchors, diagram.Anchor{ID: diagram.NewID(), Ref: ref})
	if ref.Item != "" && len(mode.Anchors) >= 2 {
		commitConnector(st, mode)
		return
	}
	updateConnectorPreview(st, mode)
}

func (connectorHandler) mouseMove(st *State) {
	mode := st.UI.Mode.(*ConnectorMode)
	if len(mode.Anchors) == 0 {
		return
	}
	updateConnectorPreview(st, mode)
}

// pendingTile resolves an anchor of a connector that is not stored yet.
func pendingTile(v diagram.View, a diagram.Anchor) (geometry.Tile, bool) {
	switch {
	case a.Ref.Item != "":
		it, ok := v.Item(a.Ref.Item)
		return it.Tile, ok
	case a.Ref.Tile != nil:
		return *a.Ref.Tile, true
	case a.Ref.Anchor != "":
		t, err := scene.ResolveAnchor(v, a.Ref.Anchor)
		return t, err == nil
	}
	return geometry.Tile{}, false
}

func updateConnectorPreview(st *State, mode *ConnectorMode) {
	v := st.Scene.View()
	waypoints := make([]geometry.Tile, 0, len(mode.Anchors)+1)
	for _, a := range mode.Anchors {
		if t, ok := pendingTile(v, a); ok {
			waypoints = append(waypoints, t)
		}
	}
	if cur := st.Mouse.Position.Tile; len(waypoints) == 0 || waypoints[len(waypoints)-1] != cur {
		waypoints = append(waypoints, cur)
	}
	path, err := st.Scene.Route(waypoints)
	if err != nil {
		mode.Preview = nil
		return
	}
	mode.Preview = &path
}

// commitConnector stores the chain if it has at least two anchors and returns
// to CURSOR either way.
func commitConnector(st *State, mode *ConnectorMode) {
	defer st.SetMode(&CursorMode{})
	mode.Preview = nil
	if len(mode.Anchors) < 2 {
		return
	}
	id := mode.ID
	if id == "" {
		id = diagram.NewID()
	}
	c := diagram.NewConnector(id, st.Scene.Model().DefaultColorID(), mode.Anchors)
	if err := st.Scene.CreateConnector(c); err != nil {
		st.manager.logger.Warn("create connector failed", "connector", id, "error", err)
		return
	}
	st.UI.Selection = &scene.Ref{Type: scene.RefConnector, ID: id}
}

// DRAG_ITEMS

type dragItemsHandler struct{ noopHandler }

func (dragItemsHandler) entry(st *State) {
	st.UI.Cursor = CursorGrabbing
}

func (dragItemsHandler) mouseMove(st *State) {
	if !st.Mouse.Held() {
		return
	}
	mode := st.UI.Mode.(*DragItemsMode)
	tile := st.Mouse.Position.Tile
	d := tile.Sub(mode.LastTile)
	if d == (geometry.Tile{}) {
		return
	}
	for _, ref := range mode.Items {
		switch ref.Type {
		case scene.RefItem:
			st.Scene.UpdateViewItem(ref.ID, func(vi *diagram.ViewItem) { vi.Tile = vi.Tile.Add(d) })
		case scene.RefRectangle:
			st.Scene.UpdateRectangle(ref.ID, func(r *diagram.Rectangle) {
				r.From = r.From.Add(d)
				r.To = r.To.Add(d)
			})
		case scene.RefTextBox:
			st.Scene.UpdateTextBox(ref.ID, func(tb *diagram.TextBox) { tb.Tile = tb.Tile.Add(d) })
		case scene.RefConnectorAnchor:
			target := diagram.TileRef(tile)
			if hit, ok := st.Scene.ItemAtTile(tile); ok && hit.Type == scene.RefItem {
				target = diagram.ItemRef(hit.ID)
			}
			st.Scene.SetAnchorRef(ref.ID, target)
		}
	}
	mode.LastTile = tile
}

func (dragItemsHandler) mouseUp(st *State) {
	st.SetMode(&CursorMode{})
}

// TEXTBOX

type textBoxHandler struct{ noopHandler }

func (textBoxHandler) entry(st *State) {
	st.UI.FocusedTextBox = st.UI.Mode.(*TextBoxMode).ID
	st.UI.Cursor = CursorText
}

func (textBoxHandler) exit(st *State) {
	st.UI.FocusedTextBox = ""
}

func newTextBox(sc *scene.Scene, tile geometry.Tile) diagram.TextBox {
	tb := diagram.NewTextBox(diagram.NewID(), tile)
	tb.Color = sc.Model().DefaultColorID()
	return tb
}
