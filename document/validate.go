package document

import (
	"errors"
	"fmt"

	"isoflow/diagram"
	"isoflow/scene"
)

// ValidationError is one problem found in a document.
type ValidationError struct {
	// Path locates the offending value, e.g. "views[0].connectors[c1]".
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks that m can be loaded. All problems are reported together,
// joined with errors.Join; each is a *ValidationError.
func Validate(m diagram.Model) error {
	v := &validator{}
	v.model(m)
	return errors.Join(v.errs...)
}

// Problems flattens the result of Validate back into its parts.
func Problems(err error) []*ValidationError {
	if err == nil {
		return nil
	}
	var out []*ValidationError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, Problems(e)...)
		}
		return out
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		out = append(out, ve)
	}
	return out
}

type validator struct {
	errs []error
}

func (v *validator) fail(path, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) model(m diagram.Model) {
	if len(m.Views) == 0 {
		v.fail("views", "document must have at least one view")
	}
	if m.CurrentViewID != "" && m.ViewIndex(m.CurrentViewID) < 0 {
		v.fail("currentViewId", "unknown view %q", m.CurrentViewID)
	}

	// Palette and icon ids live in their own namespaces; everything placed
	// on a view shares one.
	unique := v.namespace()
	colors, icons := v.namespace(), v.namespace()
	for _, c := range m.Colors {
		colors("colors["+c.ID+"]", c.ID)
	}
	for _, ic := range m.Icons {
		icons("icons["+ic.ID+"]", ic.ID)
	}
	for _, mi := range m.Items {
		path := "items[" + mi.ID + "]"
		unique(path, mi.ID)
		if mi.Icon != "" {
			if _, ok := m.Icon(mi.Icon); !ok {
				v.fail(path, "unknown icon %q", mi.Icon)
			}
		}
	}
	for i, view := range m.Views {
		unique(fmt.Sprintf("views[%d]", i), view.ID)
		v.view(m, i, view, unique)
	}
}

func (v *validator) namespace() func(path, id string) {
	ids := map[string]string{}
	return func(path, id string) {
		if id == "" {
			v.fail(path, "missing id")
			return
		}
		if prev, ok := ids[id]; ok {
			v.fail(path, "id %q already used by %s", id, prev)
			return
		}
		ids[id] = path
	}
}

func (v *validator) view(m diagram.Model, i int, view diagram.View, unique func(path, id string)) {
	prefix := fmt.Sprintf("views[%d]", i)
	seen := map[string]bool{}
	for _, vi := range view.Items {
		path := prefix + ".items[" + vi.ID + "]"
		if seen[vi.ID] {
			v.fail(path, "item placed twice")
		}
		seen[vi.ID] = true
		if _, ok := m.Item(vi.ID); !ok {
			v.fail(path, "no model item %q", vi.ID)
		}
		if vi.Size < 0 || vi.Size > diagram.MaxItemSize {
			v.fail(path, "size %d out of range", vi.Size)
		}
	}
	for _, r := range view.Rectangles {
		path := prefix + ".rectangles[" + r.ID + "]"
		unique(path, r.ID)
		if r.Degenerate() {
			v.fail(path, "rectangle collapses onto a single tile")
		}
		v.color(m, path, r.Color)
	}
	for _, tb := range view.TextBoxes {
		unique(prefix+".textBoxes["+tb.ID+"]", tb.ID)
	}
	for _, c := range view.Connectors {
		path := prefix + ".connectors[" + c.ID + "]"
		unique(path, c.ID)
		v.color(m, path, c.Color)
		if len(c.Anchors) < 2 {
			v.fail(path, "connector needs at least two anchors, has %d", len(c.Anchors))
		}
		if c.Style != "" && !c.Style.Valid() {
			v.fail(path, "unknown style %q", c.Style)
		}
		if c.Arrows != "" && !c.Arrows.Valid() {
			v.fail(path, "unknown arrows %q", c.Arrows)
		}
		for _, a := range c.Anchors {
			unique(path+".anchors["+a.ID+"]", a.ID)
			if _, err := scene.ResolveAnchor(view, a.ID); err != nil {
				v.fail(path+".anchors["+a.ID+"]", "%v", err)
			}
		}
	}
}

func (v *validator) color(m diagram.Model, path, id string) {
	if id == "" {
		return
	}
	if _, ok := m.Color(id); !ok {
		v.fail(path, "unknown color %q", id)
	}
}
