package export

import (
	"fmt"

	"isoflow/diagram"
)

// edge is a connector whose two ends sit on view items.
type edge struct {
	from, to int
	label    string
	style    diagram.ConnectorStyle
	arrows   diagram.ArrowStyle
}

// graph reduces a view to its items and the connectors that join two of
// them. Connectors with an end on a bare tile have no graph equivalent and
// are left out.
type graph struct {
	names []string
	edges []edge
}

func buildGraph(m diagram.Model, v diagram.View) graph {
	var g graph
	index := make(map[string]int, len(v.Items))
	for i, vi := range v.Items {
		index[vi.ID] = i
		name := diagram.DefaultModelItemName
		if mi, ok := m.Item(vi.ID); ok && mi.Name != "" {
			name = mi.Name
		}
		g.names = append(g.names, name)
	}
	for _, c := range v.Connectors {
		if len(c.Anchors) < 2 {
			continue
		}
		from, ok := index[anchorItem(v, c.Anchors[0])]
		if !ok {
			continue
		}
		to, ok := index[anchorItem(v, c.Anchors[len(c.Anchors)-1])]
		if !ok {
			continue
		}
		g.edges = append(g.edges, edge{
			from:   from,
			to:     to,
			label:  c.Description,
			style:  c.Style,
			arrows: c.ArrowStyle(),
		})
	}
	return g
}

// anchorItem follows anchor references to the item the anchor sits on, or
// returns "" for tile anchors, dangling refs and cycles.
func anchorItem(v diagram.View, a diagram.Anchor) string {
	seen := map[string]bool{}
	for a.Ref.Item == "" && a.Ref.Anchor != "" && !seen[a.ID] {
		seen[a.ID] = true
		_, next, ok := v.FindAnchor(a.Ref.Anchor)
		if !ok {
			return ""
		}
		a = next
	}
	return a.Ref.Item
}

func nodeID(i int) string {
	return fmt.Sprintf("N%d", i)
}
