// Package pathfinding computes connector routes across the tile grid.
//
// Routes are not obstacle aware: a connector may cross items. Each pair of
// consecutive waypoints is joined with an L-shaped walk whose axis order is
// fixed by the router strategy, so the same waypoints always give the same
// tiles.
package pathfinding

import (
	"errors"
	"fmt"

	"isoflow/geometry"
)

// ErrNoWaypoints is returned when Route is called without any waypoint.
var ErrNoWaypoints = errors.New("route needs at least one waypoint")

// RoutingStrategy defines the axis order of each L-shaped segment.
type RoutingStrategy int

const (
	// HorizontalFirst walks along x, then along y.
	HorizontalFirst RoutingStrategy = iota
	// VerticalFirst walks along y, then along x.
	VerticalFirst
)

// String returns the strategy name used in configuration.
func (s RoutingStrategy) String() string {
	switch s {
	case HorizontalFirst:
		return "horizontal"
	case VerticalFirst:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a configuration string into a RoutingStrategy.
func ParseStrategy(s string) (RoutingStrategy, error) {
	switch s {
	case "", "horizontal", "horizontal-first":
		return HorizontalFirst, nil
	case "vertical", "vertical-first":
		return VerticalFirst, nil
	default:
		return HorizontalFirst, fmt.Errorf("unknown routing strategy: %q", s)
	}
}

// Path is a routed connector: every tile it passes through, in order, plus
// the bounding region used to size its drawing surface.
type Path struct {
	Tiles     []geometry.Tile `json:"tiles"`
	Rectangle geometry.Region `json:"rectangle"`
}

// Length returns the number of tiles in the path.
func (p Path) Length() int {
	return len(p.Tiles)
}

// IsEmpty returns true if the path has no tiles.
func (p Path) IsEmpty() bool {
	return len(p.Tiles) == 0
}

// Contains reports whether the path passes through t.
func (p Path) Contains(t geometry.Tile) bool {
	if !p.Rectangle.Contains(t) {
		return false
	}
	for _, pt := range p.Tiles {
		if pt == t {
			return true
		}
	}
	return false
}

// Relative returns the tiles translated so that Rectangle.From is the origin.
func (p Path) Relative() []geometry.Tile {
	out := make([]geometry.Tile, len(p.Tiles))
	for i, t := range p.Tiles {
		out[i] = t.Sub(p.Rectangle.From)
	}
	return out
}

// Router joins waypoints into paths.
type Router struct {
	strategy RoutingStrategy
	cache    *PathCache
}

// NewRouter creates a router. A cacheSize of zero disables caching.
func NewRouter(strategy RoutingStrategy, cacheSize int) *Router {
	r := &Router{strategy: strategy}
	if cacheSize > 0 {
		r.cache = NewPathCache(cacheSize)
	}
	return r
}

// Strategy returns the configured strategy.
func (r *Router) Strategy() RoutingStrategy {
	return r.strategy
}

// Cache returns the router's path cache, or nil when caching is off.
func (r *Router) Cache() *PathCache {
	return r.cache
}

// Route walks the waypoints in order. Shared joints between segments appear
// once in the result.
func (r *Router) Route(waypoints []geometry.Tile) (Path, error) {
	if len(waypoints) == 0 {
		return Path{}, ErrNoWaypoints
	}
	if r.cache != nil {
		if p, ok := r.cache.Get(r.strategy, waypoints); ok {
			return p, nil
		}
	}

	tiles := []geometry.Tile{waypoints[0]}
	for i := 1; i < len(waypoints); i++ {
		seg := r.Segment(waypoints[i-1], waypoints[i])
		tiles = append(tiles, seg[1:]...)
	}
	p := Path{Tiles: tiles, Rectangle: geometry.BoundingRegion(tiles)}

	if r.cache != nil {
		r.cache.Put(r.strategy, waypoints, p)
	}
	return p, nil
}

// Segment returns every tile from start to end inclusive.
func (r *Router) Segment(start, end geometry.Tile) []geometry.Tile {
	if start == end {
		return []geometry.Tile{start}
	}

	var corner geometry.Tile
	switch r.strategy {
	case VerticalFirst:
		corner = geometry.Tile{X: start.X, Y: end.Y}
	default:
		corner = geometry.Tile{X: end.X, Y: start.Y}
	}

	tiles := straightLine(start, corner)
	return append(tiles, straightLine(corner, end)[1:]...)
}

// straightLine steps one tile at a time from start to end. Callers pass
// points that share an axis.
func straightLine(start, end geometry.Tile) []geometry.Tile {
	points := []geometry.Tile{start}

	dx := geometry.Sign(end.X - start.X)
	dy := geometry.Sign(end.Y - start.Y)

	current := start
	for current != end {
		if current.X != end.X {
			current.X += dx
		} else {
			current.Y += dy
		}
		points = append(points, current)
	}
	return points
}
