package interaction

import (
	"strings"

	"isoflow/diagram"
	"isoflow/scene"
)

// KeyEvent is a key press or release. Key is either a single character or a
// named key such as "Shift", "Escape", "Enter", "Delete" or "Backspace".
type KeyEvent struct {
	Key    string
	Ctrl   bool
	Meta   bool
	Shift  bool
	Repeat bool
}

func (e KeyEvent) modifier() bool {
	return e.Ctrl || e.Meta
}

func (e KeyEvent) letter() string {
	if len(e.Key) == 1 {
		return strings.ToLower(e.Key)
	}
	return ""
}

// HandleKeyDown runs the global shortcuts.
func (m *Manager) HandleKeyDown(ev KeyEvent) {
	if m.disabled() {
		return
	}
	m.settle()

	kind := m.ui.Mode.Kind()
	if ev.Key == "Shift" && !ev.Repeat && kind != ModePan && kind != ModeTextBox && m.ui.Dialog == DialogNone {
		m.ui.suspended = m.ui.Mode
		m.ui.Mode = &PanMode{Temporary: true}
		return
	}
	if m.ui.Dialog != DialogNone {
		return
	}

	if kind == ModeTextBox {
		if ev.Key == "Enter" || ev.Key == "Escape" {
			m.EndTextEdit()
		}
		return
	}

	if ev.modifier() {
		switch ev.letter() {
		case "c":
			m.Copy()
		case "x":
			m.Cut()
		case "v":
			m.Paste()
		case "d":
			m.Duplicate()
		case "t":
			m.FlipSelection()
		case "z":
			if ev.Shift {
				m.Redo()
			} else {
				m.Undo()
			}
		case "y":
			m.Redo()
		case "e":
			m.ui.Dialog = DialogExportImage
		case "p":
			m.ui.Dialog = DialogPublishImage
		}
		return
	}

	switch ev.Key {
	case "Delete", "Backspace":
		m.DeleteSelection()
	case "Escape":
		m.Cancel()
	case "Enter":
		if mode, ok := m.ui.Mode.(*ConnectorMode); ok {
			commitConnector(m.state(true), mode)
		}
	}
}

// HandleKeyUp restores the mode paused by a Shift pan. If the button that
// drove the paused gesture was released during the pan, the gesture is
// finished as if it had seen the release itself.
func (m *Manager) HandleKeyUp(ev KeyEvent) {
	if m.disabled() || ev.Key != "Shift" || m.ui.Dialog != DialogNone {
		return
	}
	m.settle()
	if m.ui.suspended == nil {
		return
	}
	m.ui.Mode = m.ui.suspended
	m.ui.suspended = nil

	switch m.ui.Mode.(type) {
	case *DragItemsMode, *RectangleTransformMode, *RectangleDrawMode:
		if !m.ui.Mouse.Held() {
			m.settle()
			handlerFor(m.ui.Mode.Kind()).mouseUp(m.state(true))
		}
	}
}

// CloseDialog dismisses the open dialog.
func (m *Manager) CloseDialog() {
	m.ui.Dialog = DialogNone
}

// Selected returns the selection plus any items being dragged.
func (m *Manager) Selected() []scene.Ref {
	var refs []scene.Ref
	if m.ui.Selection != nil {
		refs = append(refs, *m.ui.Selection)
	}
	if mode, ok := m.ui.Mode.(*DragItemsMode); ok {
		for _, r := range mode.Items {
			if r.Type != scene.RefConnectorAnchor && (m.ui.Selection == nil || r != *m.ui.Selection) {
				refs = append(refs, r)
			}
		}
	}
	return refs
}

// Copy writes the selection to the clipboard.
func (m *Manager) Copy() {
	refs := m.Selected()
	if len(refs) == 0 {
		return
	}
	text, err := EncodeBundle(m.scene.Extract(refs))
	if err != nil {
		m.logger.Warn("encode clipboard bundle failed", "error", err)
		return
	}
	if err := m.clipboard.WriteText(text); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
	}
}

// Cut copies the selection and deletes it.
func (m *Manager) Cut() {
	if m.readonly() || len(m.Selected()) == 0 {
		return
	}
	m.Copy()
	m.DeleteSelection()
}

// Paste inserts the clipboard bundle, shifted by the paste offset, and
// selects the first pasted entity. Anything that is not a bundle is ignored.
func (m *Manager) Paste() {
	if m.readonly() {
		return
	}
	text, err := m.clipboard.ReadText()
	if err != nil {
		m.logger.Warn("clipboard read failed", "error", err)
		return
	}
	f, ok := DecodeBundle(text)
	if !ok {
		m.logger.Debug("ignoring clipboard contents that are not a bundle")
		return
	}
	m.insert(f)
}

// Duplicate copies the selection in place, shifted by the paste offset,
// without touching the clipboard.
func (m *Manager) Duplicate() {
	if m.readonly() {
		return
	}
	refs := m.Selected()
	if len(refs) == 0 {
		return
	}
	m.insert(m.scene.Extract(refs))
}

func (m *Manager) insert(f scene.Fragment) {
	f = Remap(f, m.offset)
	if err := m.scene.Insert(f); err != nil {
		m.logger.Warn("insert failed", "error", err)
		return
	}
	if refs := f.Refs(); len(refs) > 0 {
		first := refs[0]
		m.ui.Selection = &first
	}
}

// DeleteSelection removes the selected entities.
func (m *Manager) DeleteSelection() {
	if m.readonly() {
		return
	}
	refs := m.Selected()
	if len(refs) == 0 {
		return
	}
	m.scene.Delete(refs)
	m.ui.Selection = nil
	if m.ui.Mode.Kind() == ModeDragItems {
		m.SetMode(&CursorMode{})
	}
}

// FlipSelection toggles horizontal flip on a single selected item.
func (m *Manager) FlipSelection() {
	sel := m.ui.Selection
	if m.readonly() || sel == nil || sel.Type != scene.RefItem {
		return
	}
	m.scene.UpdateViewItem(sel.ID, func(vi *diagram.ViewItem) {
		vi.FlipHorizontal = !vi.FlipHorizontal
	})
}

// Undo steps back through the history, if one is attached.
func (m *Manager) Undo() {
	if m.readonly() || m.history == nil {
		return
	}
	if m.history.Undo() {
		m.afterHistory()
	}
}

// Redo steps forward through the history.
func (m *Manager) Redo() {
	if m.readonly() || m.history == nil {
		return
	}
	if m.history.Redo() {
		m.afterHistory()
	}
}

// afterHistory drops UI references that the restored model may not contain.
func (m *Manager) afterHistory() {
	if sel := m.ui.Selection; sel != nil && m.scene.Extract([]scene.Ref{*sel}).IsEmpty() {
		m.ui.Selection = nil
	}
	m.ui.ContextMenu = nil
	if m.ui.Mode.Kind() != ModeCursor && m.ui.Mode.Kind() != ModePan {
		m.SetMode(&CursorMode{})
	}
}

// Cancel abandons the operation in progress and returns to CURSOR. A
// transform is rolled back to the rectangle it started from.
func (m *Manager) Cancel() {
	switch mode := m.ui.Mode.(type) {
	case *RectangleTransformMode:
		m.scene.UpdateRectangle(mode.ID, func(r *diagram.Rectangle) { *r = mode.Original })
		m.SetMode(&CursorMode{})
	case *RectangleDrawMode, *ConnectorMode, *PlaceIconMode, *DragItemsMode:
		m.SetMode(&CursorMode{})
	case *CursorMode:
		m.ui.Selection = nil
		m.ui.ContextMenu = nil
	}
}
