// Package interaction turns pointer and keyboard input into scene mutations.
//
// A Manager owns the UI state of one editor session. Every event is
// normalized into a MouseState and handed to the handler of the active mode.
// Whenever the active mode kind differs from the one that handled the
// previous event, the old mode's exit hook and the new mode's entry hook run
// before the event's handler. A mode change made by a handler therefore takes
// effect on the next dispatched event, so hooks fire once per activation and
// never re-enter. Calls made outside event dispatch (SetEditorMode,
// AddTextBox, EndTextEdit) settle their mode change immediately.
package interaction

import (
	"log/slog"
	"math"

	"isoflow/geometry"
	"isoflow/scene"
)

// Hook is a mode lifecycle hook.
type Hook string

const (
	HookEntry Hook = "entry"
	HookExit  Hook = "exit"
)

// Transition records one lifecycle hook invocation.
type Transition struct {
	Hook Hook
	Mode ModeKind
}

// History is the undo stack the manager drives from shortcuts.
type History interface {
	Undo() bool
	Redo() bool
}

// ZoomSettings bounds and steps the zoom level.
type ZoomSettings struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultZoom is used when no zoom settings are given.
var DefaultZoom = ZoomSettings{Min: 0.2, Max: 1, Step: 0.2}

// Manager dispatches input for one editor session.
type Manager struct {
	scene     *scene.Scene
	ui        *UiState
	projector Projector
	clipboard Clipboard
	history   History
	logger    *slog.Logger
	zoom      ZoomSettings
	offset    geometry.Tile

	lastKind   ModeKind
	dispatched bool
	seenMouse  bool
	observer   func(Transition)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithProjector replaces the isometric screen-to-tile mapping.
func WithProjector(p Projector) Option {
	return func(m *Manager) { m.projector = p }
}

// WithClipboard sets the clipboard used by copy, cut and paste.
func WithClipboard(c Clipboard) Option {
	return func(m *Manager) { m.clipboard = c }
}

// WithHistory sets the undo stack.
func WithHistory(h History) Option {
	return func(m *Manager) { m.history = h }
}

// WithZoom sets zoom bounds and step.
func WithZoom(z ZoomSettings) Option {
	return func(m *Manager) { m.zoom = z }
}

// WithPasteOffset sets how far pasted and duplicated entities are shifted.
func WithPasteOffset(n int) Option {
	return func(m *Manager) { m.offset = geometry.Tile{X: n, Y: n} }
}

// WithTransitionObserver calls fn for every entry and exit hook.
func WithTransitionObserver(fn func(Transition)) Option {
	return func(m *Manager) { m.observer = fn }
}

// NewManager creates a manager over sc, starting in CURSOR mode.
func NewManager(sc *scene.Scene, opts ...Option) *Manager {
	m := &Manager{
		scene:     sc,
		ui:        newUiState(),
		projector: IsometricProjector{},
		clipboard: &memoryClipboard{},
		logger:    slog.Default(),
		zoom:      DefaultZoom,
		offset:    geometry.Tile{X: 1, Y: 1},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// UI returns the live UI state.
func (m *Manager) UI() *UiState {
	return m.ui
}

// Scene returns the scene the manager mutates.
func (m *Manager) Scene() *scene.Scene {
	return m.scene
}

// Mode returns the active mode.
func (m *Manager) Mode() Mode {
	return m.ui.Mode
}

// SetMode activates mode, subject to the editor mode. Lifecycle hooks run on
// the next dispatched event.
func (m *Manager) SetMode(mode Mode) {
	switch m.ui.EditorMode {
	case EditorNonInteractive:
		mode = &InteractionsDisabledMode{}
	case EditorReadonly:
		if mode.Kind().mutates() {
			m.logger.Debug("mode not available in readonly editor", "mode", mode.Kind())
			return
		}
	}
	m.ui.Mode = mode
}

// SetEditorMode changes what the user may do, leaving any mode the new
// editor mode does not permit.
func (m *Manager) SetEditorMode(em EditorMode) {
	m.ui.EditorMode = em
	m.ui.suspended = nil
	switch {
	case em == EditorNonInteractive:
		m.ui.Mode = &InteractionsDisabledMode{}
	case m.ui.Mode.Kind() == ModeInteractionsDisabled,
		em == EditorReadonly && m.ui.Mode.Kind().mutates():
		m.ui.Mode = &CursorMode{}
	}
	m.settle()
}

// SetSurfaceSize records the renderer's pixel size.
func (m *Manager) SetSurfaceSize(size geometry.Size) {
	m.ui.SurfaceSize = size
}

// Select sets the selection. A nil ref clears it.
func (m *Manager) Select(ref *scene.Ref) {
	m.ui.Selection = ref
}

func (m *Manager) readonly() bool {
	return m.ui.EditorMode != EditorEditable
}

func (m *Manager) disabled() bool {
	return m.ui.Mode.Kind() == ModeInteractionsDisabled
}

// State is what a mode handler sees for one event.
type State struct {
	Mouse     MouseState
	Scene     *scene.Scene
	Snapshot  scene.Snapshot
	UI        *UiState
	OnSurface bool
	manager   *Manager
}

// SetMode changes the active mode from within a handler.
func (s *State) SetMode(mode Mode) {
	s.manager.SetMode(mode)
}

func (m *Manager) state(onSurface bool) *State {
	return &State{
		Mouse:     m.ui.Mouse,
		Scene:     m.scene,
		Snapshot:  m.scene.Snapshot(),
		UI:        m.ui,
		OnSurface: onSurface,
		manager:   m,
	}
}

// settle runs exit and entry hooks if the mode kind changed since the last
// settle. The first call runs the entry hook of the initial mode.
func (m *Manager) settle() {
	kind := m.ui.Mode.Kind()
	if m.dispatched && kind == m.lastKind {
		return
	}
	st := m.state(true)
	if m.dispatched {
		handlerFor(m.lastKind).exit(st)
		m.observe(HookExit, m.lastKind)
	}
	handlerFor(kind).entry(st)
	m.observe(HookEntry, kind)
	m.lastKind = kind
	m.dispatched = true
}

func (m *Manager) observe(h Hook, k ModeKind) {
	if m.observer != nil {
		m.observer(Transition{Hook: h, Mode: k})
	}
}

// HandlePointer dispatches a mouse event to the active mode.
func (m *Manager) HandlePointer(ev PointerEvent) {
	if m.disabled() {
		return
	}
	m.settle()
	tile := m.projector.ScreenToTile(ev.Client, m.ui.Viewport())

	if ev.Button == ButtonRight || ev.Button == ButtonMiddle {
		// Only the position is tracked for secondary buttons.
		m.ui.Mouse = nextMouse(m.ui.Mouse, m.seenMouse, PointerEvent{Type: MouseMove, Client: ev.Client}, tile)
		m.seenMouse = true
		if ev.Type == MouseDown && ev.Button == ButtonRight {
			m.HandleContextMenu()
		}
		return
	}

	m.ui.Mouse = nextMouse(m.ui.Mouse, m.seenMouse, ev, tile)
	m.seenMouse = true

	st := m.state(ev.OnSurface)
	h := handlerFor(m.ui.Mode.Kind())
	switch ev.Type {
	case MouseDown:
		h.mouseDown(st)
	case MouseMove:
		h.mouseMove(st)
	case MouseUp:
		h.mouseUp(st)
	}
}

// HandleTouch translates a single-finger touch into a pointer event. A touch
// end is reported at the last known position.
func (m *Manager) HandleTouch(ev TouchEvent) {
	pe := PointerEvent{Client: ev.Client, Button: ButtonLeft, OnSurface: ev.OnSurface}
	switch ev.Phase {
	case TouchStart:
		pe.Type = MouseDown
	case TouchMove:
		pe.Type = MouseMove
	case TouchEnd:
		pe.Type = MouseUp
		pe.Client = m.ui.Mouse.Position.Screen
	}
	m.HandlePointer(pe)
}

// HandleWheel zooms in for negative deltas and out otherwise.
func (m *Manager) HandleWheel(ev WheelEvent) {
	if m.disabled() {
		return
	}
	m.settle()
	if ev.DeltaY > 0 {
		m.ZoomOut()
	} else {
		m.ZoomIn()
	}
}

// ZoomIn increases zoom by one step.
func (m *Manager) ZoomIn() {
	m.setZoom(m.ui.Zoom + m.zoom.Step)
}

// ZoomOut decreases zoom by one step.
func (m *Manager) ZoomOut() {
	m.setZoom(m.ui.Zoom - m.zoom.Step)
}

func (m *Manager) setZoom(z float64) {
	z = math.Round(z*100) / 100
	m.ui.Zoom = geometry.Clamp(z, m.zoom.Min, m.zoom.Max)
}

// FitToView centres the current view and zooms so it fits the surface.
func (m *Manager) FitToView() {
	bounds, ok := m.scene.Snapshot().Bounds()
	if !ok {
		m.ui.Zoom = geometry.Clamp(1, m.zoom.Min, m.zoom.Max)
		m.ui.Scroll = geometry.Point{}
		return
	}
	vp := geometry.FitToView(bounds, m.ui.SurfaceSize, m.zoom.Min, m.zoom.Max)
	m.ui.Zoom = vp.Zoom
	m.ui.Scroll = vp.Scroll
}

// HandleContextMenu opens the context menu for a rectangle under the
// pointer, and closes it anywhere else.
func (m *Manager) HandleContextMenu() {
	tile := m.ui.Mouse.Position.Tile
	if ref, ok := m.scene.ItemAtTile(tile); ok && ref.Type == scene.RefRectangle {
		m.ui.ContextMenu = &ContextMenu{Item: ref, Tile: tile}
		return
	}
	m.ui.ContextMenu = nil
}

// AddTextBox creates a text box at tile and starts editing it.
func (m *Manager) AddTextBox(tile geometry.Tile) (string, bool) {
	if m.readonly() || m.disabled() {
		return "", false
	}
	tb := newTextBox(m.scene, tile)
	if err := m.scene.CreateTextBox(tb); err != nil {
		m.logger.Warn("create text box failed", "error", err)
		return "", false
	}
	m.ui.Selection = &scene.Ref{Type: scene.RefTextBox, ID: tb.ID}
	m.SetMode(&TextBoxMode{ID: tb.ID})
	m.settle()
	return tb.ID, true
}

// EndTextEdit leaves TEXTBOX mode.
func (m *Manager) EndTextEdit() {
	if m.ui.Mode.Kind() != ModeTextBox {
		return
	}
	m.SetMode(&CursorMode{})
	m.settle()
}
