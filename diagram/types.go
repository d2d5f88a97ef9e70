// Package diagram contains the serializable document model: items, views and
// the connectors, rectangles and text boxes placed in each view.
package diagram

import "isoflow/geometry"

// ConnectorStyle is the stroke style of a connector.
type ConnectorStyle string

const (
	StyleSolid  ConnectorStyle = "SOLID"
	StyleDotted ConnectorStyle = "DOTTED"
	StyleDashed ConnectorStyle = "DASHED"
)

// Valid reports whether s is a known style.
func (s ConnectorStyle) Valid() bool {
	switch s {
	case StyleSolid, StyleDotted, StyleDashed:
		return true
	}
	return false
}

// ArrowStyle says which ends of a connector carry an arrow head.
type ArrowStyle string

const (
	ArrowsTo   ArrowStyle = "to"
	ArrowsFrom ArrowStyle = "from"
	ArrowsBoth ArrowStyle = "both"
	ArrowsNone ArrowStyle = "none"
)

// Valid reports whether a is a known arrow style.
func (a ArrowStyle) Valid() bool {
	switch a {
	case ArrowsTo, ArrowsFrom, ArrowsBoth, ArrowsNone:
		return true
	}
	return false
}

// Orientation is the axis a text box runs along.
type Orientation string

const (
	OrientationX Orientation = "X"
	OrientationY Orientation = "Y"
)

// Icon is an image that model items can reference.
type Icon struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Collection  string `json:"collection,omitempty" yaml:"collection,omitempty"`
	IsIsometric bool   `json:"isIsometric,omitempty" yaml:"isIsometric,omitempty"`
}

// Color is a named palette entry.
type Color struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// ModelItem is a placeable concept, shared by every view that shows it.
type ModelItem struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// ViewItem places a ModelItem on one view. Its ID equals the ModelItem ID.
type ViewItem struct {
	ID             string        `json:"id" yaml:"id"`
	Tile           geometry.Tile `json:"tile" yaml:"tile"`
	Size           int           `json:"size,omitempty" yaml:"size,omitempty"`
	LabelHeight    int           `json:"labelHeight,omitempty" yaml:"labelHeight,omitempty"`
	LabelSize      int           `json:"labelSize,omitempty" yaml:"labelSize,omitempty"`
	FlipHorizontal bool          `json:"flipHorizontal,omitempty" yaml:"flipHorizontal,omitempty"`
	LabelOnly      bool          `json:"labelOnly,omitempty" yaml:"labelOnly,omitempty"`
}

// AnchorRef binds an anchor to exactly one of: an item, another anchor, or a fixed tile.
type AnchorRef struct {
	Item   string         `json:"item,omitempty" yaml:"item,omitempty"`
	Anchor string         `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	Tile   *geometry.Tile `json:"tile,omitempty" yaml:"tile,omitempty"`
}

// IsZero reports whether the ref points at nothing.
func (r AnchorRef) IsZero() bool {
	return r.Item == "" && r.Anchor == "" && r.Tile == nil
}

// TileRef builds a ref bound to a fixed tile.
func TileRef(t geometry.Tile) AnchorRef {
	return AnchorRef{Tile: &t}
}

// ItemRef builds a ref bound to a view item.
func ItemRef(id string) AnchorRef {
	return AnchorRef{Item: id}
}

// Anchor is a connector endpoint or waypoint.
type Anchor struct {
	ID  string    `json:"id" yaml:"id"`
	Ref AnchorRef `json:"ref" yaml:"ref"`
}

// Connector routes between two or more anchors; the first anchor is the
// "from" end and the last the "to" end.
type Connector struct {
	ID          string         `json:"id" yaml:"id"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string         `json:"color,omitempty" yaml:"color,omitempty"`
	Width       int            `json:"width,omitempty" yaml:"width,omitempty"`
	Style       ConnectorStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Arrows      ArrowStyle     `json:"arrows,omitempty" yaml:"arrows,omitempty"`
	ArrowOffset float64        `json:"arrowOffset,omitempty" yaml:"arrowOffset,omitempty"`
	TextSize    int            `json:"textSize,omitempty" yaml:"textSize,omitempty"`
	TextFrame   *bool          `json:"textFrame,omitempty" yaml:"textFrame,omitempty"`
	TextOffset  *float64       `json:"textOffset,omitempty" yaml:"textOffset,omitempty"`
	Anchors     []Anchor       `json:"anchors" yaml:"anchors"`
}

// ShowTextFrame reports whether the label is drawn inside a frame (default true).
func (c Connector) ShowTextFrame() bool {
	return c.TextFrame == nil || *c.TextFrame
}

// LabelOffset is the fractional position of the label along the path (default 0.5).
func (c Connector) LabelOffset() float64 {
	if c.TextOffset == nil {
		return DefaultTextOffset
	}
	return *c.TextOffset
}

// ArrowStyle returns the configured arrows, defaulting to "to".
func (c Connector) ArrowStyle() ArrowStyle {
	if c.Arrows == "" {
		return ArrowsTo
	}
	return c.Arrows
}

// Rectangle is an area on the grid; From and To are opposite corners in any order.
type Rectangle struct {
	ID    string        `json:"id" yaml:"id"`
	Color string        `json:"color,omitempty" yaml:"color,omitempty"`
	From  geometry.Tile `json:"from" yaml:"from"`
	To    geometry.Tile `json:"to" yaml:"to"`
}

// Bounds returns the normalized region covered by the rectangle.
func (r Rectangle) Bounds() geometry.Region {
	return geometry.NormalizeRegion(r.From, r.To)
}

// Degenerate reports whether the rectangle collapses onto a single tile.
func (r Rectangle) Degenerate() bool {
	return r.From == r.To
}

// TextBoxSize is the extent of a text box along its orientation.
type TextBoxSize struct {
	Width int `json:"width" yaml:"width"`
}

// TextBox is a free-floating label.
type TextBox struct {
	ID          string        `json:"id" yaml:"id"`
	Tile        geometry.Tile `json:"tile" yaml:"tile"`
	Size        TextBoxSize   `json:"size" yaml:"size"`
	Content     string        `json:"content" yaml:"content"`
	Color       string        `json:"color,omitempty" yaml:"color,omitempty"`
	Orientation Orientation   `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	TextOutline bool          `json:"textOutline,omitempty" yaml:"textOutline,omitempty"`
}

// EndTile is the tile at the far end of the box along its orientation.
func (t TextBox) EndTile() geometry.Tile {
	if t.Orientation == OrientationY {
		return geometry.Tile{X: t.Tile.X, Y: t.Tile.Y - t.Size.Width}
	}
	return geometry.Tile{X: t.Tile.X + t.Size.Width, Y: t.Tile.Y}
}

// Bounds covers the tiles spanned by the box.
func (t TextBox) Bounds() geometry.Region {
	return geometry.NormalizeRegion(t.Tile, t.EndTile())
}

// View is one arrangement of the model.
type View struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	LastUpdated string      `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	Items       []ViewItem  `json:"items" yaml:"items"`
	Connectors  []Connector `json:"connectors,omitempty" yaml:"connectors,omitempty"`
	Rectangles  []Rectangle `json:"rectangles,omitempty" yaml:"rectangles,omitempty"`
	TextBoxes   []TextBox   `json:"textBoxes,omitempty" yaml:"textBoxes,omitempty"`
}

// Model is the whole document.
type Model struct {
	Version       string      `json:"version,omitempty" yaml:"version,omitempty"`
	Title         string      `json:"title" yaml:"title"`
	Description   string      `json:"description,omitempty" yaml:"description,omitempty"`
	DocumentName  string      `json:"documentName,omitempty" yaml:"documentName,omitempty"`
	Colors        []Color     `json:"colors" yaml:"colors"`
	Icons         []Icon      `json:"icons" yaml:"icons"`
	Items         []ModelItem `json:"items" yaml:"items"`
	Views         []View      `json:"views" yaml:"views"`
	CurrentViewID string      `json:"currentViewId,omitempty" yaml:"currentViewId,omitempty"`
}
