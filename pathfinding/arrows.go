package pathfinding

import (
	"math"

	"isoflow/diagram"
	"isoflow/geometry"
)

// Arrow ends.
const (
	ArrowTo   = "to"
	ArrowFrom = "from"
)

// ArrowPlacement is a rendered arrow head: a fractional tile position on the
// path and a rotation in degrees where 0 points towards negative y.
type ArrowPlacement struct {
	ID       string         `json:"id"`
	Position geometry.Point `json:"position"`
	Rotation float64        `json:"rotation"`
}

// PlaceArrows positions the arrow heads requested by style along the path.
// offset is measured in tiles from the respective end. Paths shorter than two
// tiles carry no arrows.
func PlaceArrows(path []geometry.Tile, style diagram.ArrowStyle, offset float64) []ArrowPlacement {
	if len(path) < 2 || style == diagram.ArrowsNone {
		return nil
	}

	var out []ArrowPlacement
	if style == diagram.ArrowsFrom || style == diagram.ArrowsBoth {
		out = append(out, placeArrow(ArrowFrom, path, offset))
	}
	if style == diagram.ArrowsTo || style == diagram.ArrowsBoth {
		out = append(out, placeArrow(ArrowTo, path, offset))
	}
	return out
}

func placeArrow(id string, path []geometry.Tile, offset float64) ArrowPlacement {
	if offset <= 0 {
		return endpointArrow(id, path)
	}

	total := pathLength(path)
	target := offset
	if id == ArrowTo {
		target = total - offset
	}
	if target <= 0 || target >= total {
		return endpointArrow(id, path)
	}

	walked := 0.0
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		seg := tileDistance(a, b)
		if walked+seg >= target {
			t := (target - walked) / seg
			pos := geometry.Point{
				X: float64(a.X) + float64(b.X-a.X)*t,
				Y: float64(a.Y) + float64(b.Y-a.Y)*t,
			}
			rot := rotation(b.X-a.X, b.Y-a.Y)
			if id == ArrowFrom {
				rot = math.Mod(rot+180, 360)
			}
			return ArrowPlacement{ID: id, Position: pos, Rotation: rot}
		}
		walked += seg
	}
	return endpointArrow(id, path)
}

// endpointArrow sits on the tile next to the end and points at it.
func endpointArrow(id string, path []geometry.Tile) ArrowPlacement {
	var at, toward geometry.Tile
	if id == ArrowFrom {
		at, toward = path[1], path[0]
	} else {
		at, toward = path[len(path)-2], path[len(path)-1]
	}
	return ArrowPlacement{
		ID:       id,
		Position: geometry.Point{X: float64(at.X), Y: float64(at.Y)},
		Rotation: rotation(toward.X-at.X, toward.Y-at.Y),
	}
}

func rotation(dx, dy int) float64 {
	switch {
	case dx > 0 && dy > 0:
		return 135
	case dx > 0 && dy < 0:
		return 45
	case dx > 0:
		return 90
	case dx < 0 && dy > 0:
		return -135
	case dx < 0 && dy < 0:
		return -45
	case dx < 0:
		return -90
	case dy > 0:
		return 180
	case dy < 0:
		return 0
	default:
		return -90
	}
}

func tileDistance(a, b geometry.Tile) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

func pathLength(path []geometry.Tile) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += tileDistance(path[i-1], path[i])
	}
	return total
}
