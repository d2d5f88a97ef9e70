package editor

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isoflow/clipboard"
	"isoflow/diagram"
	"isoflow/document"
	"isoflow/geometry"
	"isoflow/interaction"
	"isoflow/scene"
)

const cell = 10

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := []Option{
		WithLogger(logger),
		WithManagerOptions(
			interaction.WithProjector(interaction.GridProjector{CellWidth: cell, CellHeight: cell}),
			interaction.WithClipboard(&clipboard.Memory{}),
		),
	}
	return NewSession(diagram.NewModel("test"), append(base, opts...)...)
}

func screen(x, y int) geometry.Point {
	return geometry.Point{X: float64(x*cell) + cell/2, Y: float64(-y*cell) + cell/2}
}

func pointer(s *Session, typ interaction.EventType, x, y int) {
	s.HandlePointer(interaction.PointerEvent{Type: typ, Client: screen(x, y), Button: interaction.ButtonLeft, OnSurface: true})
}

func place(t *testing.T, s *Session, x, y int) string {
	t.Helper()
	s.Manager().SetMode(&interaction.PlaceIconMode{IconID: "server"})
	pointer(s, interaction.MouseDown, x, y)
	pointer(s, interaction.MouseUp, x, y)
	items := s.Model().Views[0].Items
	require.NotEmpty(t, items)
	return items[len(items)-1].ID
}

func TestSessionDragIsOneUndoStep(t *testing.T) {
	s := newSession(t)
	id := place(t, s, 0, 0)
	_, total := s.History().Stats()
	require.Equal(t, 2, total)

	pointer(s, interaction.MouseDown, 0, 0)
	for x := 1; x <= 4; x++ {
		pointer(s, interaction.MouseMove, x, 0)
	}
	_, total = s.History().Stats()
	assert.Equal(t, 2, total, "no snapshot while the button is held")
	pointer(s, interaction.MouseUp, 4, 0)
	_, total = s.History().Stats()
	assert.Equal(t, 3, total)

	s.HandleKeyDown(interaction.KeyEvent{Key: "z", Ctrl: true})
	vi, ok := s.Model().Views[0].Item(id)
	require.True(t, ok)
	assert.Equal(t, geometry.Tile{X: 0, Y: 0}, vi.Tile)

	s.HandleKeyDown(interaction.KeyEvent{Key: "z", Ctrl: true})
	assert.Empty(t, s.Model().Views[0].Items)
	assert.Nil(t, s.UI().Selection, "selection of a vanished item is cleared")

	s.HandleKeyDown(interaction.KeyEvent{Key: "y", Ctrl: true})
	s.HandleKeyDown(interaction.KeyEvent{Key: "Z", Ctrl: true, Shift: true})
	vi, ok = s.Model().Views[0].Item(id)
	require.True(t, ok)
	assert.Equal(t, geometry.Tile{X: 4, Y: 0}, vi.Tile)
	assert.False(t, s.History().CanRedo())
}

func TestSessionEditAfterUndoDropsRedo(t *testing.T) {
	s := newSession(t)
	place(t, s, 0, 0)
	require.True(t, s.Undo())
	require.True(t, s.History().CanRedo())

	place(t, s, 2, 2)
	assert.False(t, s.History().CanRedo())
	assert.False(t, s.Redo())
}

func TestSessionEdit(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Edit(func(sc *scene.Scene) error {
		return sc.CreateRectangle(diagram.Rectangle{ID: "r", From: geometry.Tile{X: 0, Y: 0}, To: geometry.Tile{X: 2, Y: 2}})
	}))
	require.Len(t, s.Model().Views[0].Rectangles, 1)
	require.True(t, s.Undo())
	assert.Empty(t, s.Model().Views[0].Rectangles)
}

func TestSessionTextEditIsOneUndoStep(t *testing.T) {
	s := newSession(t)
	_, before := s.History().Stats()

	id, ok := s.Manager().AddTextBox(geometry.Tile{X: 1, Y: 1})
	require.True(t, ok)
	s.Commit()
	for _, text := range []string{"h", "hi", "hi!"} {
		require.NoError(t, s.Edit(func(sc *scene.Scene) error {
			sc.UpdateTextBox(id, func(tb *diagram.TextBox) { tb.Content = text })
			return nil
		}))
	}
	_, total := s.History().Stats()
	assert.Equal(t, before, total, "no snapshot while the text box is edited")

	s.HandleKeyDown(interaction.KeyEvent{Key: "Enter"})
	assert.Equal(t, interaction.ModeCursor, s.UI().Mode.Kind())
	_, total = s.History().Stats()
	assert.Equal(t, before+1, total)
	require.Len(t, s.Model().Views[0].TextBoxes, 1)
	assert.Equal(t, "hi!", s.Model().Views[0].TextBoxes[0].Content)

	require.True(t, s.Undo())
	assert.Empty(t, s.Model().Views[0].TextBoxes)
}

func TestSessionUndoWhileEditingText(t *testing.T) {
	s := newSession(t)
	id, ok := s.Manager().AddTextBox(geometry.Tile{X: 1, Y: 1})
	require.True(t, ok)
	require.NoError(t, s.Edit(func(sc *scene.Scene) error {
		sc.UpdateTextBox(id, func(tb *diagram.TextBox) { tb.Content = "draft" })
		return nil
	}))

	require.True(t, s.Undo())
	assert.Empty(t, s.Model().Views[0].TextBoxes)
	require.True(t, s.Redo())
	require.Len(t, s.Model().Views[0].TextBoxes, 1)
	assert.Equal(t, "draft", s.Model().Views[0].TextBoxes[0].Content)
}

func TestSessionReadonly(t *testing.T) {
	s := newSession(t, WithEditorMode(interaction.EditorReadonly))
	s.Manager().SetMode(&interaction.PlaceIconMode{IconID: "server"})
	pointer(s, interaction.MouseDown, 0, 0)
	pointer(s, interaction.MouseUp, 0, 0)
	assert.Empty(t, s.Model().Views[0].Items)
	assert.False(t, s.Dirty())
}

func TestSessionSaveAndOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "diagram.json")

	s, err := Open(ctx, path, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	assert.False(t, s.Dirty())

	require.NoError(t, s.Edit(func(sc *scene.Scene) error {
		return sc.CreateTextBox(diagram.NewTextBox("t", geometry.Tile{X: 1, Y: 1}))
	}))
	assert.True(t, s.Dirty())
	require.NoError(t, s.Save(ctx))
	assert.False(t, s.Dirty())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	require.Len(t, reopened.Model().Views[0].TextBoxes, 1)
	assert.Equal(t, "Text", reopened.Model().Views[0].TextBoxes[0].Content)

	_, err = document.NewFileStore(path).Load(ctx)
	assert.NoError(t, err)
}

func TestSessionSaveWithoutFile(t *testing.T) {
	s := newSession(t)
	assert.ErrorIs(t, s.Save(context.Background()), ErrNoFile)
}
