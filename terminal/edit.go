package terminal

import (
	"context"
	"errors"
	"unicode/utf8"

	"isoflow/diagram"
	"isoflow/editor"
	"isoflow/scene"
)

func (a *App) typeText(r rune) {
	id := a.session.UI().FocusedTextBox
	if id == "" {
		return
	}
	fresh := a.freshText == id
	a.freshText = ""
	_ = a.session.Edit(func(sc *scene.Scene) error {
		sc.UpdateTextBox(id, func(tb *diagram.TextBox) {
			if fresh && tb.Content == diagram.DefaultTextBoxContent {
				tb.Content = ""
			}
			tb.Content += string(r)
		})
		return nil
	})
}

func (a *App) eraseText() {
	id := a.session.UI().FocusedTextBox
	if id == "" {
		return
	}
	a.freshText = ""
	_ = a.session.Edit(func(sc *scene.Scene) error {
		sc.UpdateTextBox(id, func(tb *diagram.TextBox) {
			if _, size := utf8.DecodeLastRuneInString(tb.Content); size > 0 {
				tb.Content = tb.Content[:len(tb.Content)-size]
			}
		})
		return nil
	})
}

// nextView cycles through the document's views.
func (a *App) nextView() {
	m := a.session.Model()
	if len(m.Views) < 2 {
		return
	}
	i := (m.ViewIndex(m.CurrentViewID) + 1) % len(m.Views)
	_ = a.session.Edit(func(sc *scene.Scene) error {
		return sc.ChangeView(m.Views[i].ID)
	})
	a.session.Manager().Select(nil)
	a.message = "view: " + m.Views[i].Name
}

func (a *App) save() {
	err := a.session.Save(context.Background())
	switch {
	case errors.Is(err, editor.ErrNoFile):
		a.message = "no file to save to"
	case err != nil:
		a.logger.Error("save failed", "error", err)
		a.message = "save failed: " + err.Error()
	default:
		a.message = "saved " + a.session.File().Path()
	}
}
