package diagram

import (
	"fmt"
	"time"

	"isoflow/geometry"
)

const (
	// Version is written into new documents.
	Version = "1"

	DefaultItemSize       = 1
	MaxItemSize           = 3
	DefaultLabelHeight    = 80
	DefaultLabelSize      = 1
	DefaultConnectorWidth = 10
	DefaultTextSize       = 1
	DefaultTextOffset     = 0.5
	DefaultTextBoxWidth   = 1
	DefaultTextBoxContent = "Text"
	DefaultModelItemName  = "Untitled"
	DefaultTitle          = "Untitled"
)

// DefaultColors is the palette a fresh document starts with.
var DefaultColors = []Color{
	{ID: "color1", Value: "#a5b8f3"},
	{ID: "color2", Value: "#bbadfb"},
	{ID: "color3", Value: "#f4eb8e"},
	{ID: "color4", Value: "#f0aca9"},
	{ID: "color5", Value: "#fad6ac"},
	{ID: "color6", Value: "#a8dc9d"},
	{ID: "color7", Value: "#b3e5e3"},
}

// Timestamp formats t the way views record lastUpdated.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NewView returns an empty view. An empty name is replaced by "View n".
func NewView(name string, n int) View {
	if name == "" {
		name = fmt.Sprintf("View %d", n)
	}
	return View{
		ID:          NewID(),
		Name:        name,
		LastUpdated: Timestamp(time.Now()),
		Items:       []ViewItem{},
	}
}

// NewModel returns a document holding a single empty view.
func NewModel(title string) Model {
	if title == "" {
		title = DefaultTitle
	}
	view := NewView("", 1)
	colors := make([]Color, len(DefaultColors))
	copy(colors, DefaultColors)
	return Model{
		Version:       Version,
		Title:         title,
		Colors:        colors,
		Icons:         []Icon{},
		Items:         []ModelItem{},
		Views:         []View{view},
		CurrentViewID: view.ID,
	}
}

// NewViewItem places item id at tile with default sizing.
func NewViewItem(id string, tile geometry.Tile) ViewItem {
	return ViewItem{
		ID:          id,
		Tile:        tile,
		Size:        DefaultItemSize,
		LabelHeight: DefaultLabelHeight,
		LabelSize:   DefaultLabelSize,
	}
}

// NewConnector returns a connector with default styling over anchors.
func NewConnector(id, color string, anchors []Anchor) Connector {
	return Connector{
		ID:       id,
		Color:    color,
		Width:    DefaultConnectorWidth,
		Style:    StyleSolid,
		Arrows:   ArrowsTo,
		TextSize: DefaultTextSize,
		Anchors:  anchors,
	}
}

// NewTextBox returns a text box at tile with default content.
func NewTextBox(id string, tile geometry.Tile) TextBox {
	return TextBox{
		ID:          id,
		Tile:        tile,
		Size:        TextBoxSize{Width: DefaultTextBoxWidth},
		Content:     DefaultTextBoxContent,
		Orientation: OrientationX,
	}
}

// DefaultColorID returns the first palette entry, or "" for an empty palette.
func (m Model) DefaultColorID() string {
	if len(m.Colors) == 0 {
		return ""
	}
	return m.Colors[0].ID
}
