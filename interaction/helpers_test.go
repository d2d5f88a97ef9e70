package interaction

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"isoflow/diagram"
	"isoflow/geometry"
	"isoflow/scene"
	"isoflow/store"
)

const cell = 10

type harness struct {
	t           *testing.T
	m           *Manager
	sc          *scene.Scene
	clip        *memoryClipboard
	transitions []Transition
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sc := scene.New(store.New(diagram.NewModel("test"), store.WithLogger(logger)), scene.WithLogger(logger))
	h := &harness{t: t, sc: sc, clip: &memoryClipboard{}}
	base := []Option{
		WithLogger(logger),
		WithProjector(GridProjector{CellWidth: cell, CellHeight: cell}),
		WithClipboard(h.clip),
		WithTransitionObserver(func(tr Transition) { h.transitions = append(h.transitions, tr) }),
	}
	h.m = NewManager(sc, append(base, opts...)...)
	return h
}

// at returns the screen point at the centre of tile x,y.
func (h *harness) at(x, y int) geometry.Point {
	s := h.m.UI().Scroll
	return geometry.Point{X: float64(x*cell) + cell/2 + s.X, Y: float64(-y*cell) + cell/2 + s.Y}
}

func (h *harness) pointer(typ EventType, x, y int) {
	h.m.HandlePointer(PointerEvent{Type: typ, Client: h.at(x, y), Button: ButtonLeft, OnSurface: true})
}

func (h *harness) down(x, y int) { h.pointer(MouseDown, x, y) }
func (h *harness) move(x, y int) { h.pointer(MouseMove, x, y) }
func (h *harness) up(x, y int) { h.pointer(MouseUp, x, y) }

func (h *harness) click(x, y int) {
	h.down(x, y)
	h.up(x, y)
}

func (h *harness) ctrl(key string) {
	h.m.HandleKeyDown(KeyEvent{Key: key, Ctrl: true})
}

func (h *harness) press(key string) {
	h.m.HandleKeyDown(KeyEvent{Key: key})
}

func (h *harness) place(id string, x, y int) {
	h.t.Helper()
	require.NoError(h.t, h.sc.CreateModelItem(diagram.ModelItem{ID: id, Name: id}))
	require.NoError(h.t, h.sc.CreateViewItem(diagram.NewViewItem(id, geometry.Tile{X: x, Y: y})))
}

func (h *harness) itemTile(id string) geometry.Tile {
	h.t.Helper()
	vi, ok := h.sc.View().Item(id)
	require.True(h.t, ok, "item %s", id)
	return vi.Tile
}

func (h *harness) kind() ModeKind {
	return h.m.Mode().Kind()
}

func tile(x, y int) geometry.Tile {
	return geometry.Tile{X: x, Y: y}
}
