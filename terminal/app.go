// Package terminal runs an editing session in a terminal. Tiles are drawn
// top-down as a grid of character cells; mouse and keys are translated into
// the editor's pointer and key events.
package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"isoflow/editor"
	"isoflow/geometry"
	"isoflow/interaction"
)

const (
	CellWidth  = 8
	CellHeight = 3
)

// Grid is the projector a session driven by this package must use.
func Grid() interaction.GridProjector {
	return interaction.GridProjector{CellWidth: CellWidth, CellHeight: CellHeight}
}

// App owns the screen for one session.
type App struct {
	screen  tcell.Screen
	session *editor.Session
	logger  *slog.Logger

	buttons tcell.ButtonMask
	shift   bool
	message string
	// freshText is the text box whose default content the next typed
	// character replaces.
	freshText string
}

// Option configures an App.
type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// New creates an App drawing on screen. The screen must already be
// initialised; Run does that for real terminals.
func New(screen tcell.Screen, s *editor.Session, opts ...Option) *App {
	a := &App{screen: screen, session: s, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Message is the text currently shown in the status line.
func (a *App) Message() string {
	return a.message
}

// Run initialises the screen and processes events until the user quits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer a.screen.Fini()
	a.screen.EnableMouse()
	a.screen.Clear()
	a.Resize()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		if a.HandleEvent(ev) {
			return nil
		}
	}
}

// Resize tells the session how large the drawing surface is.
func (a *App) Resize() {
	w, h := a.screen.Size()
	a.session.Manager().SetSurfaceSize(geometry.Size{Width: float64(w), Height: float64(h - 1)})
}

// HandleEvent processes one terminal event and reports whether to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.Resize()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	_, h := a.screen.Size()
	a.trackShift(ev.Modifiers()&tcell.ModShift != 0)

	buttons := ev.Buttons()
	prev := a.buttons
	a.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	switch {
	case buttons&tcell.WheelUp != 0:
		a.session.HandleWheel(interaction.WheelEvent{DeltaY: -1})
		return
	case buttons&tcell.WheelDown != 0:
		a.session.HandleWheel(interaction.WheelEvent{DeltaY: 1})
		return
	}

	pe := interaction.PointerEvent{
		Type:      interaction.MouseMove,
		Client:    geometry.Point{X: float64(x), Y: float64(y)},
		OnSurface: y < h-1,
	}
	pressed := buttons &^ prev
	released := prev &^ buttons
	switch {
	case pressed&tcell.Button1 != 0:
		pe.Type, pe.Button = interaction.MouseDown, interaction.ButtonLeft
	case released&tcell.Button1 != 0:
		pe.Type, pe.Button = interaction.MouseUp, interaction.ButtonLeft
	case pressed&tcell.Button2 != 0:
		pe.Type, pe.Button = interaction.MouseDown, interaction.ButtonRight
	case released&tcell.Button2 != 0:
		pe.Type, pe.Button = interaction.MouseUp, interaction.ButtonRight
	case pressed&tcell.Button3 != 0:
		pe.Type, pe.Button = interaction.MouseDown, interaction.ButtonMiddle
	case released&tcell.Button3 != 0:
		pe.Type, pe.Button = interaction.MouseUp, interaction.ButtonMiddle
	}
	a.session.HandlePointer(pe)
}

// trackShift turns the shift modifier reported with mouse events into key
// events, since terminals do not report Shift on its own.
func (a *App) trackShift(held bool) {
	switch {
	case held && !a.shift:
		a.session.HandleKeyDown(interaction.KeyEvent{Key: "Shift", Shift: true})
	case !held && a.shift:
		a.session.HandleKeyUp(interaction.KeyEvent{Key: "Shift"})
	}
	a.shift = held
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	mgr := a.session.Manager()
	shift := ev.Modifiers()&tcell.ModShift != 0
	a.message = ""

	if named, ok := namedKeys[ev.Key()]; ok {
		if mgr.Mode().Kind() == interaction.ModeTextBox && named == "Backspace" {
			a.eraseText()
			return false
		}
		if named == "Tab" {
			a.nextView()
			return false
		}
		a.session.HandleKeyDown(interaction.KeyEvent{Key: named, Shift: shift})
		return false
	}

	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		letter := string(rune('a' + int(ev.Key()-tcell.KeyCtrlA)))
		switch letter {
		case "q":
			return true
		case "s":
			a.save()
			return false
		}
		a.session.HandleKeyDown(interaction.KeyEvent{Key: letter, Ctrl: true, Shift: shift})
		return false
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}
	r := ev.Rune()
	if ev.Modifiers()&(tcell.ModAlt|tcell.ModMeta) != 0 {
		a.session.HandleKeyDown(interaction.KeyEvent{Key: string(r), Meta: true, Shift: shift})
		return false
	}
	if mgr.Mode().Kind() == interaction.ModeTextBox {
		a.typeText(r)
		return false
	}
	a.tool(r)
	return false
}

var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Escape",
	tcell.KeyDelete:     "Delete",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyTab:        "Tab",
}

// tool handles the single-key tool shortcuts.
func (a *App) tool(r rune) {
	mgr := a.session.Manager()
	switch r {
	case 'v':
		mgr.SetMode(&interaction.CursorMode{})
	case 'h':
		mgr.SetMode(&interaction.PanMode{})
	case 'i':
		mgr.SetMode(&interaction.PlaceIconMode{IconID: a.defaultIcon()})
	case 'r':
		mgr.SetMode(&interaction.RectangleDrawMode{})
	case 'c':
		mgr.SetMode(&interaction.ConnectorMode{})
	case 't':
		if id, ok := mgr.AddTextBox(mgr.UI().Mouse.Position.Tile); ok {
			a.freshText = id
		}
	case 'f':
		mgr.FitToView()
	case '+', '=':
		mgr.ZoomIn()
	case '-':
		mgr.ZoomOut()
	default:
		return
	}
	a.session.Commit()
}

func (a *App) defaultIcon() string {
	if icons := a.session.Model().Icons; len(icons) > 0 {
		return icons[0].ID
	}
	return ""
}
