package export

import (
	"fmt"
	"strings"

	"isoflow/diagram"
)

// DOTExporter exports a view to Graphviz DOT syntax.
type DOTExporter struct{}

// NewDOTExporter creates a new Graphviz exporter.
func NewDOTExporter() *DOTExporter {
	return &DOTExporter{}
}

func (e *DOTExporter) Export(m diagram.Model, viewID string) ([]byte, error) {
	v, err := pickView(m, viewID)
	if err != nil {
		return nil, err
	}
	if len(v.Items) == 0 {
		return nil, fmt.Errorf("view %q has no items", v.Name)
	}
	g := buildGraph(m, v)

	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n\n")
	for i, name := range g.names {
		fmt.Fprintf(&sb, "  %s [label=%q];\n", nodeID(i), name)
	}
	if len(g.edges) > 0 {
		sb.WriteString("\n")
	}
	for _, ed := range g.edges {
		if attrs := e.edgeAttributes(ed); attrs != "" {
			fmt.Fprintf(&sb, "  %s -> %s [%s];\n", nodeID(ed.from), nodeID(ed.to), attrs)
		} else {
			fmt.Fprintf(&sb, "  %s -> %s;\n", nodeID(ed.from), nodeID(ed.to))
		}
	}
	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func (e *DOTExporter) edgeAttributes(ed edge) string {
	var attrs []string
	if ed.label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", ed.label))
	}
	switch ed.style {
	case diagram.StyleDashed:
		attrs = append(attrs, "style=dashed")
	case diagram.StyleDotted:
		attrs = append(attrs, "style=dotted")
	}
	switch ed.arrows {
	case diagram.ArrowsFrom:
		attrs = append(attrs, "dir=back")
	case diagram.ArrowsBoth:
		attrs = append(attrs, "dir=both")
	case diagram.ArrowsNone:
		attrs = append(attrs, "dir=none")
	}
	return strings.Join(attrs, ", ")
}

func (e *DOTExporter) FileExtension() string {
	return ".dot"
}

func (e *DOTExporter) FormatName() string {
	return "Graphviz DOT"
}
