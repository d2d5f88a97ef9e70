package interaction

import (
	"isoflow/geometry"
	"isoflow/scene"
)

// EditorMode restricts what the user may do.
type EditorMode string

const (
	EditorEditable       EditorMode = "EDITABLE"
	EditorReadonly       EditorMode = "EXPLORABLE_READONLY"
	EditorNonInteractive EditorMode = "NON_INTERACTIVE"
)

// Dialog is a modal dialog opened by a shortcut.
type Dialog string

const (
	DialogNone         Dialog = ""
	DialogExportImage  Dialog = "EXPORT_IMAGE"
	DialogPublishImage Dialog = "PUBLISH_IMAGE"
)

// CursorStyle is the pointer shape a presentation layer should show.
type CursorStyle string

const (
	CursorDefault   CursorStyle = "default"
	CursorGrab      CursorStyle = "grab"
	CursorGrabbing  CursorStyle = "grabbing"
	CursorCrosshair CursorStyle = "crosshair"
	CursorText      CursorStyle = "text"
	CursorHidden    CursorStyle = "none"
)

// ContextMenu is an open context menu for Item, opened at Tile.
type ContextMenu struct {
	Item scene.Ref     `json:"item"`
	Tile geometry.Tile `json:"tile"`
}

// UiState is the per-session interaction state that is not part of the
// document.
type UiState struct {
	Mode        Mode
	EditorMode  EditorMode
	Mouse       MouseState
	Selection   *scene.Ref
	Zoom        float64
	Scroll      geometry.Point
	SurfaceSize geometry.Size
	Dialog      Dialog
	ContextMenu *ContextMenu
	Cursor      CursorStyle

	// FocusedTextBox is the text box receiving typed input.
	FocusedTextBox string

	// suspended is the mode interrupted by a temporary pan.
	suspended Mode
}

func newUiState() *UiState {
	return &UiState{
		Mode:       &CursorMode{},
		EditorMode: EditorEditable,
		Zoom:       1,
		Cursor:     CursorDefault,
	}
}

// Viewport returns the current surface mapping.
func (u *UiState) Viewport() geometry.Viewport {
	return geometry.Viewport{Zoom: u.Zoom, Scroll: u.Scroll, Size: u.SurfaceSize}
}

// Suspended returns the mode paused by a temporary pan, or nil.
func (u *UiState) Suspended() Mode {
	return u.suspended
}
