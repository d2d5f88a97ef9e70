package terminal

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isoflow/clipboard"
	"isoflow/diagram"
	"isoflow/document"
	"isoflow/editor"
	"isoflow/geometry"
	"isoflow/interaction"
)

type fixture struct {
	t      *testing.T
	screen tcell.SimulationScreen
	app    *App
	s      *editor.Session
}

func newFixture(t *testing.T, opts ...editor.Option) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := []editor.Option{
		editor.WithLogger(logger),
		editor.WithManagerOptions(
			interaction.WithProjector(Grid()),
			interaction.WithClipboard(&clipboard.Memory{}),
		),
	}
	s := editor.NewSession(diagram.NewModel("term"), append(base, opts...)...)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	app := New(screen, s, WithLogger(logger))
	app.Resize()
	return &fixture{t: t, screen: screen, app: app, s: s}
}

// centre returns the screen cell in the middle of tile x,y.
func centre(x, y int) (int, int) {
	return x*CellWidth + CellWidth/2, -y*CellHeight + CellHeight/2
}

func (f *fixture) mouse(x, y int, buttons tcell.ButtonMask, mods tcell.ModMask) {
	cx, cy := centre(x, y)
	f.app.HandleEvent(tcell.NewEventMouse(cx, cy, buttons, mods))
}

func (f *fixture) click(x, y int) {
	f.mouse(x, y, tcell.Button1, tcell.ModNone)
	f.mouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func (f *fixture) rune(r rune) bool {
	return f.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func (f *fixture) key(k tcell.Key) bool {
	return f.app.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

// row returns the text on screen row y after a redraw.
func (f *fixture) row(y int) string {
	f.app.Draw()
	w, _ := f.screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := f.screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func (f *fixture) kind() interaction.ModeKind {
	return f.s.Manager().Mode().Kind()
}

func TestPlaceDragAndUndo(t *testing.T) {
	f := newFixture(t)
	f.rune('i')
	require.Equal(t, interaction.ModePlaceIcon, f.kind())
	f.click(1, -1)

	items := f.s.Model().Views[0].Items
	require.Len(t, items, 1)
	assert.Equal(t, geometry.Tile{X: 1, Y: -1}, items[0].Tile)
	assert.Equal(t, interaction.ModeCursor, f.kind())
	_, cy := centre(1, -1)
	assert.Contains(t, f.row(cy), "Untit…")

	f.mouse(1, -1, tcell.Button1, tcell.ModNone)
	f.mouse(3, -2, tcell.Button1, tcell.ModNone)
	f.mouse(3, -2, tcell.ButtonNone, tcell.ModNone)
	assert.Equal(t, geometry.Tile{X: 3, Y: -2}, f.s.Model().Views[0].Items[0].Tile)

	f.key(tcell.KeyCtrlZ)
	assert.Equal(t, geometry.Tile{X: 1, Y: -1}, f.s.Model().Views[0].Items[0].Tile)
}

func TestConnectTwoItems(t *testing.T) {
	f := newFixture(t)
	for _, x := range []int{0, 4} {
		f.rune('i')
		f.click(x, -1)
	}
	f.rune('c')
	f.click(0, -1)
	f.click(4, -1)

	snap := f.s.Snapshot()
	require.Len(t, snap.Connectors, 1)
	assert.Len(t, snap.Connectors[0].Path.Tiles, 5)

	_, cy := centre(0, -1)
	line := f.row(cy)
	assert.Contains(t, line, "─")
	assert.Contains(t, line, "▶")
}

func TestShiftDragPans(t *testing.T) {
	f := newFixture(t)
	f.mouse(2, -2, tcell.ButtonNone, tcell.ModShift)
	assert.Equal(t, interaction.ModePan, f.kind())

	f.mouse(2, -2, tcell.Button1, tcell.ModShift)
	f.mouse(4, -2, tcell.Button1, tcell.ModShift)
	assert.Equal(t, geometry.Point{X: 2 * CellWidth, Y: 0}, f.s.UI().Scroll)

	f.mouse(4, -2, tcell.ButtonNone, tcell.ModNone)
	assert.Equal(t, interaction.ModeCursor, f.kind())
}

func TestTextBoxTyping(t *testing.T) {
	f := newFixture(t)
	_, before := f.s.History().Stats()
	f.mouse(2, -3, tcell.ButtonNone, tcell.ModNone)
	f.rune('t')
	require.Equal(t, interaction.ModeTextBox, f.kind())

	for _, r := range "hi!" {
		f.rune(r)
	}
	f.key(tcell.KeyBackspace2)
	tbs := f.s.Model().Views[0].TextBoxes
	require.Len(t, tbs, 1)
	assert.Equal(t, "hi", tbs[0].Content)
	assert.Equal(t, geometry.Tile{X: 2, Y: -3}, tbs[0].Tile)

	f.key(tcell.KeyEnter)
	assert.Equal(t, interaction.ModeCursor, f.kind())
	_, cy := centre(2, -3)
	assert.Contains(t, f.row(cy), "hi")
	_, total := f.s.History().Stats()
	assert.Equal(t, before+1, total, "creating and typing is one undo step")

	f.key(tcell.KeyCtrlZ)
	assert.Empty(t, f.s.Model().Views[0].TextBoxes)
}

func TestRectangleTool(t *testing.T) {
	f := newFixture(t)
	f.rune('r')
	f.mouse(0, -1, tcell.Button1, tcell.ModNone)
	f.mouse(2, -3, tcell.Button1, tcell.ModNone)
	f.mouse(2, -3, tcell.ButtonNone, tcell.ModNone)

	rects := f.s.Model().Views[0].Rectangles
	require.Len(t, rects, 1)
	assert.Equal(t, geometry.Region{From: geometry.Tile{X: 0, Y: -3}, To: geometry.Tile{X: 2, Y: -1}}, rects[0].Bounds())

	f.key(tcell.KeyDelete)
	assert.Empty(t, f.s.Model().Views[0].Rectangles)
}

func TestWheelZoomAndStatus(t *testing.T) {
	f := newFixture(t)
	f.mouse(0, 0, tcell.WheelDown, tcell.ModNone)
	assert.InDelta(t, 0.8, f.s.UI().Zoom, 1e-9)
	status := f.row(24)
	assert.Contains(t, status, "CURSOR")
	assert.Contains(t, status, "80%")
}

func TestSaveAndQuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "term.json")
	f := newFixture(t, editor.WithFile(document.NewFileStore(path)))
	f.rune('i')
	f.click(0, -1)

	assert.False(t, f.key(tcell.KeyCtrlS))
	assert.Contains(t, f.app.Message(), "saved")
	assert.False(t, f.s.Dirty())

	assert.True(t, f.key(tcell.KeyCtrlQ))
}

func TestSaveWithoutFile(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyCtrlS)
	assert.Equal(t, "no file to save to", f.app.Message())
}

func TestTabCyclesViews(t *testing.T) {
	f := newFixture(t)
	second := f.s.Scene().CreateView("Second")
	first := f.s.Model().Views[0].ID

	f.key(tcell.KeyTab)
	assert.Equal(t, second, f.s.Model().CurrentViewID)
	f.key(tcell.KeyTab)
	assert.Equal(t, first, f.s.Model().CurrentViewID)
}

func TestArrowRune(t *testing.T) {
	assert.Equal(t, '▶', arrowRune(90))
	assert.Equal(t, '◀', arrowRune(-90))
	assert.Equal(t, '▲', arrowRune(180))
	assert.Equal(t, '▼', arrowRune(0))
	assert.Equal(t, '▼', arrowRune(360))
}
