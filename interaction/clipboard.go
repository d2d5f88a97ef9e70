package interaction

import (
	"encoding/json"

	"isoflow/diagram"
	"isoflow/geometry"
	"isoflow/scene"
)

// Clipboard is an opaque text store, usually the system clipboard.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

type memoryClipboard struct {
	text string
}

func (c *memoryClipboard) ReadText() (string, error) { return c.text, nil }

func (c *memoryClipboard) WriteText(text string) error {
	c.text = text
	return nil
}

// EncodeBundle serializes f for the clipboard.
func EncodeBundle(f scene.Fragment) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeBundle parses clipboard text. ok is false for anything that is not a
// bundle holding at least one view entity.
func DecodeBundle(text string) (f scene.Fragment, ok bool) {
	if err := json.Unmarshal([]byte(text), &f); err != nil {
		return scene.Fragment{}, false
	}
	return f, !f.IsEmpty()
}

// Remap gives every entity of f a fresh id and shifts it by offset. Anchor
// refs are rewritten through the id map so pasted connectors stay attached
// to pasted items; refs to entities outside f are kept. View items are
// paired with their model item by id, and get a default one if the bundle
// lacks it.
func Remap(f scene.Fragment, offset geometry.Tile) scene.Fragment {
	ids := map[string]string{}
	fresh := func(old string) string {
		id := diagram.NewID()
		ids[old] = id
		return id
	}

	modelItems := make(map[string]diagram.ModelItem, len(f.ModelItems))
	for _, mi := range f.ModelItems {
		modelItems[mi.ID] = mi
	}

	var out scene.Fragment
	for _, vi := range f.Items {
		mi, ok := modelItems[vi.ID]
		if !ok {
			mi = diagram.ModelItem{Name: diagram.DefaultModelItemName}
		}
		vi.ID = fresh(vi.ID)
		vi.Tile = vi.Tile.Add(offset)
		mi.ID = vi.ID
		out.Items = append(out.Items, vi)
		out.ModelItems = append(out.ModelItems, mi)
	}
	for _, r := range f.Rectangles {
		r.ID = fresh(r.ID)
		r.From = r.From.Add(offset)
		r.To = r.To.Add(offset)
		out.Rectangles = append(out.Rectangles, r)
	}
	for _, tb := range f.TextBoxes {
		tb.ID = fresh(tb.ID)
		tb.Tile = tb.Tile.Add(offset)
		out.TextBoxes = append(out.TextBoxes, tb)
	}

	anchors := map[string]string{}
	for _, c := range f.Connectors {
		for _, a := range c.Anchors {
			anchors[a.ID] = diagram.NewID()
		}
	}
	for _, c := range f.Connectors {
		c = c.Clone()
		c.ID = fresh(c.ID)
		for i, a := range c.Anchors {
			a.ID = anchors[a.ID]
			if id, ok := ids[a.Ref.Item]; ok {
				a.Ref.Item = id
			}
			if id, ok := anchors[a.Ref.Anchor]; ok {
				a.Ref.Anchor = id
			}
			if a.Ref.Tile != nil {
				t := a.Ref.Tile.Add(offset)
				a.Ref.Tile = &t
			}
			c.Anchors[i] = a
		}
		out.Connectors = append(out.Connectors, c)
	}
	return out
}
