// Package geometry holds the tile grid and isometric projection math shared by
// the model, the scene and the interaction layer.
package geometry

import "fmt"

// Tile is an integer coordinate on the unprojected diagram grid.
type Tile struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// String renders the tile as "(x,y)".
func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// Add returns t+o.
func (t Tile) Add(o Tile) Tile {
	return Tile{X: t.X + o.X, Y: t.Y + o.Y}
}

// Sub returns t-o.
func (t Tile) Sub(o Tile) Tile {
	return Tile{X: t.X - o.X, Y: t.Y - o.Y}
}

// Equal reports value equality.
func (t Tile) Equal(o Tile) bool {
	return t == o
}

// AddTiles sums a list of tiles.
func AddTiles(tiles ...Tile) Tile {
	var sum Tile
	for _, t := range tiles {
		sum = sum.Add(t)
	}
	return sum
}

// SubtractTiles returns a-b.
func SubtractTiles(a, b Tile) Tile {
	return a.Sub(b)
}

// TilesEqual reports whether a and b are the same tile.
func TilesEqual(a, b Tile) bool {
	return a == b
}

// Region is an axis-aligned inclusive tile rectangle. From holds the minimum
// corner and To the maximum corner once normalized.
type Region struct {
	From Tile `json:"from" yaml:"from"`
	To   Tile `json:"to" yaml:"to"`
}

// NormalizeRegion orders two arbitrary opposite corners into a Region.
func NormalizeRegion(a, b Tile) Region {
	return Region{
		From: Tile{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		To:   Tile{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// BoundingRegion returns the min/max region covering every tile. An empty
// input yields the zero region.
func BoundingRegion(tiles []Tile) Region {
	if len(tiles) == 0 {
		return Region{}
	}
	r := Region{From: tiles[0], To: tiles[0]}
	for _, t := range tiles[1:] {
		r.From.X = min(r.From.X, t.X)
		r.From.Y = min(r.From.Y, t.Y)
		r.To.X = max(r.To.X, t.X)
		r.To.Y = max(r.To.Y, t.Y)
	}
	return r
}

// Contains reports whether t lies inside the region, edges included.
func (r Region) Contains(t Tile) bool {
	return t.X >= r.From.X && t.X <= r.To.X &&
		t.Y >= r.From.Y && t.Y <= r.To.Y
}

// Width is the number of tiles covered on the x axis.
func (r Region) Width() int {
	return r.To.X - r.From.X + 1
}

// Height is the number of tiles covered on the y axis.
func (r Region) Height() int {
	return r.To.Y - r.From.Y + 1
}

// Corners returns the four corners in the order from, (to.x,from.y), to, (from.x,to.y).
func (r Region) Corners() [4]Tile {
	return [4]Tile{
		r.From,
		{X: r.To.X, Y: r.From.Y},
		r.To,
		{X: r.From.X, Y: r.To.Y},
	}
}

// Union returns the smallest region covering both r and o.
func (r Region) Union(o Region) Region {
	return BoundingRegion([]Tile{r.From, r.To, o.From, o.To})
}

// Offset translates the region by d.
func (r Region) Offset(d Tile) Region {
	return Region{From: r.From.Add(d), To: r.To.Add(d)}
}
