package geometry

import "math"

// UnprojectedTileSize is the edge length of a tile before projection, in pixels.
const UnprojectedTileSize = 100.0

// ProjectedTileSize is the pixel footprint of one tile after the isometric transform.
var ProjectedTileSize = Size{
	Width:  UnprojectedTileSize * 1.415,
	Height: UnprojectedTileSize * 1.415 * 0.571,
}

// Point is a position in projected pixel space or fractional tile space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p-o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale multiplies both components by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Size is a pixel extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TileToProjected returns the pixel position of the centre of tile relative
// to the projection origin (tile 0,0). Increasing x walks right and up the
// screen, increasing y walks left and up.
func TileToProjected(t Tile) Point {
	halfW := ProjectedTileSize.Width / 2
	halfH := ProjectedTileSize.Height / 2
	return Point{
		X: halfW*float64(t.X) - halfW*float64(t.Y),
		Y: -(halfH*float64(t.X) + halfH*float64(t.Y)),
	}
}

// ProjectedToTile is the inverse of TileToProjected, snapping to the tile
// whose diamond contains p.
func ProjectedToTile(p Point) Tile {
	u := p.X / (ProjectedTileSize.Width / 2)
	v := -p.Y / (ProjectedTileSize.Height / 2)
	return Tile{
		X: int(math.Round((u + v) / 2)),
		Y: int(math.Round((v - u) / 2)),
	}
}

// Viewport describes how projected space is mapped onto the renderer surface.
type Viewport struct {
	Zoom   float64
	Scroll Point
	Size   Size
}

// ScreenToTile converts a pointer position on the renderer surface into the
// tile under it. The projection origin sits at the surface centre plus scroll.
func (v Viewport) ScreenToTile(screen Point) Tile {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	projected := Point{
		X: screen.X - v.Size.Width/2 - v.Scroll.X,
		Y: screen.Y - v.Size.Height/2 - v.Scroll.Y,
	}
	return ProjectedToTile(projected.Scale(1 / zoom))
}

// TileToScreen converts a tile centre into renderer surface pixels.
func (v Viewport) TileToScreen(t Tile) Point {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	p := TileToProjected(t).Scale(zoom)
	return Point{
		X: p.X + v.Size.Width/2 + v.Scroll.X,
		Y: p.Y + v.Size.Height/2 + v.Scroll.Y,
	}
}

// ProjectedBounds is a pixel rectangle in projected space.
type ProjectedBounds struct {
	Min, Max Point
}

// Width of the bounds.
func (b ProjectedBounds) Width() float64 { return b.Max.X - b.Min.X }

// Height of the bounds.
func (b ProjectedBounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Center of the bounds.
func (b ProjectedBounds) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// ProjectRegion returns the projected pixel bounds of a tile region,
// including the half-tile margin around the corner tiles.
func ProjectRegion(r Region) ProjectedBounds {
	halfW := ProjectedTileSize.Width / 2
	halfH := ProjectedTileSize.Height / 2
	b := ProjectedBounds{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, c := range r.Corners() {
		p := TileToProjected(c)
		b.Min.X = math.Min(b.Min.X, p.X-halfW)
		b.Min.Y = math.Min(b.Min.Y, p.Y-halfH)
		b.Max.X = math.Max(b.Max.X, p.X+halfW)
		b.Max.Y = math.Max(b.Max.Y, p.Y+halfH)
	}
	return b
}

// FitToView picks a zoom in [minZoom,maxZoom] and a scroll offset such that
// region is centred and fully visible on a surface of the given size.
func FitToView(r Region, surface Size, minZoom, maxZoom float64) Viewport {
	b := ProjectRegion(r)
	zoom := maxZoom
	if b.Width() > 0 && b.Height() > 0 {
		zoom = math.Min(surface.Width/b.Width(), surface.Height/b.Height())
	}
	zoom = Clamp(zoom, minZoom, maxZoom)
	c := b.Center().Scale(zoom)
	return Viewport{
		Zoom:   zoom,
		Scroll: Point{X: -c.X, Y: -c.Y},
		Size:   surface,
	}
}
