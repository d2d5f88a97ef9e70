// Package scene derives render geometry for the current view and provides
// the mutation entry points that keep views consistent with the model.
//
// Every mutation validates first and then hands a complete replacement to
// the store, so a rejected operation never leaves partial state behind.
package scene

import (
	"log/slog"
	"math"

	"isoflow/diagram"
	"isoflow/geometry"
	"isoflow/pathfinding"
	"isoflow/store"
)

// ConnectorScene is a connector with its anchors resolved and routed.
type ConnectorScene struct {
	Connector diagram.Connector            `json:"connector"`
	Waypoints []geometry.Tile              `json:"waypoints"`
	Path      pathfinding.Path             `json:"path"`
	Arrows    []pathfinding.ArrowPlacement `json:"arrows,omitempty"`
	LabelTile geometry.Tile                `json:"labelTile"`
}

// RectangleScene is a rectangle with normalized bounds.
type RectangleScene struct {
	Rectangle diagram.Rectangle `json:"rectangle"`
	Bounds    geometry.Region   `json:"bounds"`
}

// TextBoxScene is a text box with the region it spans.
type TextBoxScene struct {
	TextBox diagram.TextBox `json:"textBox"`
	Bounds  geometry.Region `json:"bounds"`
}

// Snapshot is the read-only resolved geometry of one view.
type Snapshot struct {
	ViewID     string             `json:"viewId"`
	Items      []diagram.ViewItem `json:"items"`
	Connectors []ConnectorScene   `json:"connectors"`
	Rectangles []RectangleScene   `json:"rectangles"`
	TextBoxes  []TextBoxScene     `json:"textBoxes"`
}

// Connector returns the derived connector id.
func (s Snapshot) Connector(id string) (ConnectorScene, bool) {
	for _, c := range s.Connectors {
		if c.Connector.ID == id {
			return c, true
		}
	}
	return ConnectorScene{}, false
}

// Bounds covers every entity in the snapshot. ok is false for an empty view.
func (s Snapshot) Bounds() (r geometry.Region, ok bool) {
	add := func(o geometry.Region) {
		if !ok {
			r, ok = o, true
			return
		}
		r = r.Union(o)
	}
	for _, it := range s.Items {
		add(geometry.Region{From: it.Tile, To: it.Tile})
	}
	for _, c := range s.Connectors {
		add(c.Path.Rectangle)
	}
	for _, rect := range s.Rectangles {
		add(rect.Bounds)
	}
	for _, tb := range s.TextBoxes {
		add(tb.Bounds)
	}
	return r, ok
}

// Derive resolves view v. Connectors whose anchors cannot be resolved are
// logged and left out.
func Derive(v diagram.View, router *pathfinding.Router, logger *slog.Logger) Snapshot {
	snap := Snapshot{
		ViewID:     v.ID,
		Items:      v.Items,
		Connectors: make([]ConnectorScene, 0, len(v.Connectors)),
		Rectangles: make([]RectangleScene, 0, len(v.Rectangles)),
		TextBoxes:  make([]TextBoxScene, 0, len(v.TextBoxes)),
	}

	r := resolver{view: v}
	for _, c := range v.Connectors {
		cs, err := deriveConnector(r, router, c)
		if err != nil {
			logger.Warn("skipping connector", "connector", c.ID, "error", err)
			continue
		}
		snap.Connectors = append(snap.Connectors, cs)
	}
	for _, rect := range v.Rectangles {
		snap.Rectangles = append(snap.Rectangles, RectangleScene{Rectangle: rect, Bounds: rect.Bounds()})
	}
	for _, tb := range v.TextBoxes {
		snap.TextBoxes = append(snap.TextBoxes, TextBoxScene{TextBox: tb, Bounds: tb.Bounds()})
	}
	return snap
}

func deriveConnector(r resolver, router *pathfinding.Router, c diagram.Connector) (ConnectorScene, error) {
	waypoints, err := r.waypoints(c)
	if err != nil {
		return ConnectorScene{}, err
	}
	path, err := router.Route(waypoints)
	if err != nil {
		return ConnectorScene{}, err
	}
	return ConnectorScene{
		Connector: c,
		Waypoints: waypoints,
		Path:      path,
		Arrows:    pathfinding.PlaceArrows(path.Tiles, c.ArrowStyle(), c.ArrowOffset),
		LabelTile: labelTile(path.Tiles, c.LabelOffset()),
	}, nil
}

func labelTile(tiles []geometry.Tile, offset float64) geometry.Tile {
	if len(tiles) == 0 {
		return geometry.Tile{}
	}
	i := int(math.Floor(float64(len(tiles)-1) * geometry.Clamp(offset, 0, 1)))
	return tiles[i]
}

// Scene wraps a store and caches the derived snapshot of its current view.
type Scene struct {
	store  *store.Store
	router *pathfinding.Router
	logger *slog.Logger

	snap    Snapshot
	snapRev uint64
	valid   bool
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for recoverable warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) { s.logger = l }
}

// WithRouter replaces the default horizontal-first router.
func WithRouter(r *pathfinding.Router) Option {
	return func(s *Scene) { s.router = r }
}

// New creates a scene over st.
func New(st *store.Store, opts ...Option) *Scene {
	s := &Scene{
		store:  st,
		router: pathfinding.NewRouter(pathfinding.HorizontalFirst, 0),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying model store.
func (s *Scene) Store() *store.Store {
	return s.store
}

// Router returns the router used for connector paths.
func (s *Scene) Router() *pathfinding.Router {
	return s.router
}

// Model returns the current model.
func (s *Scene) Model() diagram.Model {
	return s.store.Model()
}

// View returns the current view.
func (s *Scene) View() diagram.View {
	v, _ := s.store.Model().CurrentView()
	return v
}

// Snapshot returns the derived geometry of the current view, recomputing it
// only when the store has changed.
func (s *Scene) Snapshot() Snapshot {
	if rev := s.store.Revision(); !s.valid || rev != s.snapRev {
		s.snap = Derive(s.View(), s.router, s.logger)
		s.snapRev = rev
		s.valid = true
	}
	return s.snap
}

// Route computes a path through waypoints, used for previews of connectors
// that are still being drawn.
func (s *Scene) Route(waypoints []geometry.Tile) (pathfinding.Path, error) {
	return s.router.Route(waypoints)
}
