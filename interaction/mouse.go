package interaction

import (
	"math"

	"isoflow/geometry"
)

// EventType is one of the three pointer events every input is reduced to.
type EventType int

const (
	MouseMove EventType = iota
	MouseDown
	MouseUp
)

func (t EventType) String() string {
	switch t {
	case MouseMove:
		return "mousemove"
	case MouseDown:
		return "mousedown"
	case MouseUp:
		return "mouseup"
	default:
		return "unknown"
	}
}

// Button is a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerEvent is a normalized mouse event. Client is relative to the
// top-left corner of the rendering surface. OnSurface is false when the
// event target is a child element drawn over the surface.
type PointerEvent struct {
	Type      EventType
	Client    geometry.Point
	Button    Button
	OnSurface bool
}

// TouchPhase is the stage of a single-finger touch.
type TouchPhase int

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
)

// TouchEvent is a single-touch event. Client is ignored for TouchEnd.
type TouchEvent struct {
	Phase     TouchPhase
	Client    geometry.Point
	OnSurface bool
}

// WheelEvent scrolls the zoom level. Positive DeltaY zooms out.
type WheelEvent struct {
	DeltaY float64
}

// Position is a pointer location in screen and tile space.
type Position struct {
	Screen geometry.Point `json:"screen"`
	Tile   geometry.Tile  `json:"tile"`
}

// Delta is the movement since the previous pointer event.
type Delta struct {
	Screen geometry.Point `json:"screen"`
	Tile   geometry.Tile  `json:"tile"`
}

// MouseState is the pointer as seen by mode handlers. Mousedown holds the
// position where the held button went down and is nil when no button is
// held. Delta is nil for the very first event.
type MouseState struct {
	Position  Position  `json:"position"`
	Mousedown *Position `json:"mousedown,omitempty"`
	Delta     *Delta    `json:"delta,omitempty"`
	Button    Button    `json:"button"`
}

// Held reports whether a button is down.
func (m MouseState) Held() bool {
	return m.Mousedown != nil
}

// nextMouse folds ev into the previous state.
func nextMouse(prev MouseState, seen bool, ev PointerEvent, tile geometry.Tile) MouseState {
	pos := Position{Screen: ev.Client, Tile: tile}
	next := MouseState{Position: pos, Mousedown: prev.Mousedown, Button: prev.Button}
	if seen {
		next.Delta = &Delta{
			Screen: pos.Screen.Sub(prev.Position.Screen),
			Tile:   pos.Tile.Sub(prev.Position.Tile),
		}
	}
	switch ev.Type {
	case MouseDown:
		down := pos
		next.Mousedown = &down
		next.Button = ev.Button
	case MouseUp:
		next.Mousedown = nil
		next.Button = ButtonNone
	}
	return next
}

// Projector maps a surface position to the tile under it.
type Projector interface {
	ScreenToTile(screen geometry.Point, vp geometry.Viewport) geometry.Tile
}

// IsometricProjector uses the isometric tile transform.
type IsometricProjector struct{}

func (IsometricProjector) ScreenToTile(screen geometry.Point, vp geometry.Viewport) geometry.Tile {
	return vp.ScreenToTile(screen)
}

// GridProjector treats the surface as an axis-aligned grid of
// CellWidth x CellHeight cells with tile 0,0 at the scroll offset.
// Tile y increases upwards, matching the isometric axes.
type GridProjector struct {
	CellWidth  float64
	CellHeight float64
}

func (g GridProjector) ScreenToTile(screen geometry.Point, vp geometry.Viewport) geometry.Tile {
	p := screen.Sub(vp.Scroll)
	return geometry.Tile{
		X: int(math.Floor(p.X / g.CellWidth)),
		Y: -int(math.Floor(p.Y / g.CellHeight)),
	}
}

// TileToScreen returns the top-left corner of the cell for t.
func (g GridProjector) TileToScreen(t geometry.Tile, vp geometry.Viewport) geometry.Point {
	return geometry.Point{
		X: float64(t.X)*g.CellWidth + vp.Scroll.X,
		Y: float64(-t.Y)*g.CellHeight + vp.Scroll.Y,
	}
}
