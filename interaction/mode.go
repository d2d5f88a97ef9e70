package interaction

import (
	"isoflow/diagram"
	"isoflow/geometry"
	"isoflow/pathfinding"
	"isoflow/scene"
)

// ModeKind identifies an interaction mode
type ModeKind int

const (
	ModeCursor               ModeKind = iota // Selecting and starting drags
	ModePan                                  // Scrolling the viewport
	ModePlaceIcon                            // Placing a new item
	ModeRectangleDraw                        // Drawing a new rectangle
	ModeRectangleTransform                   // Resizing a rectangle by one corner
	ModeConnector                            // Collecting connector anchors
	ModeDragItems                            // Moving the selection
	ModeTextBox                              // Editing a text box
	ModeInteractionsDisabled                 // Ignoring all input
)

// String returns the mode name for display
func (k ModeKind) String() string {
	switch k {
	case ModeCursor:
		return "CURSOR"
	case ModePan:
		return "PAN"
	case ModePlaceIcon:
		return "PLACE_ICON"
	case ModeRectangleDraw:
		return "RECTANGLE.DRAW"
	case ModeRectangleTransform:
		return "RECTANGLE.TRANSFORM"
	case ModeConnector:
		return "CONNECTOR"
	case ModeDragItems:
		return "DRAG_ITEMS"
	case ModeTextBox:
		return "TEXTBOX"
	case ModeInteractionsDisabled:
		return "INTERACTIONS_DISABLED"
	default:
		return "UNKNOWN"
	}
}

// mutates reports whether a mode changes the model while active.
func (k ModeKind) mutates() bool {
	switch k {
	case ModePlaceIcon, ModeRectangleDraw, ModeRectangleTransform, ModeConnector, ModeDragItems, ModeTextBox:
		return true
	default:
		return false
	}
}

// Mode is the active interaction state. Concrete modes carry whatever
// in-progress data their handlers need, so a mode value restored after an
// interruption picks up exactly where it stopped.
type Mode interface {
	Kind() ModeKind
}

// CursorMode selects entities and starts drags.
type CursorMode struct{}

// PanMode scrolls the viewport. Temporary is set when Shift is holding it.
type PanMode struct {
	Temporary bool
}

// PlaceIconMode places one item using IconID.
type PlaceIconMode struct {
	IconID string
}

// RectangleDrawMode holds the rectangle being drawn. Preview is nil until
// the first mousedown.
type RectangleDrawMode struct {
	ID      string
	Preview *diagram.Rectangle
}

// RectangleTransformMode drags Handle, an index into Region.Corners, of
// rectangle ID. Original is the rectangle before the drag started.
type RectangleTransformMode struct {
	ID       string
	Handle   int
	Original diagram.Rectangle
}

// ConnectorMode accumulates anchors for a new connector.
type ConnectorMode struct {
	ID      string
	Anchors []diagram.Anchor
	Preview *pathfinding.Path
}

// DragItemsMode moves Items with the pointer. LastTile is the tile the
// previous move was applied at.
type DragItemsMode struct {
	Items         []scene.Ref
	MousedownTile geometry.Tile
	LastTile      geometry.Tile
}

// TextBoxMode edits text box ID.
type TextBoxMode struct {
	ID string
}

// InteractionsDisabledMode freezes the scene.
type InteractionsDisabledMode struct{}

func (*CursorMode) Kind() ModeKind { return ModeCursor }
func (*PanMode) Kind() ModeKind { return ModePan }
func (*PlaceIconMode) Kind() ModeKind { return ModePlaceIcon }
func (*RectangleDrawMode) Kind() ModeKind { return ModeRectangleDraw }
func (*RectangleTransformMode) Kind() ModeKind { return ModeRectangleTransform }
func (*ConnectorMode) Kind() ModeKind { return ModeConnector }
func (*DragItemsMode) Kind() ModeKind { return ModeDragItems }
func (*TextBoxMode) Kind() ModeKind { return ModeTextBox }
func (*InteractionsDisabledMode) Kind() ModeKind { return ModeInteractionsDisabled }
