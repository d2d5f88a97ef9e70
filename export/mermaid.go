package export

import (
	"fmt"
	"strings"

	"isoflow/diagram"
)

// MermaidExporter exports a view to a Mermaid flowchart.
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter.
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

func (e *MermaidExporter) Export(m diagram.Model, viewID string) ([]byte, error) {
	v, err := pickView(m, viewID)
	if err != nil {
		return nil, err
	}
	if len(v.Items) == 0 {
		return nil, fmt.Errorf("view %q has no items", v.Name)
	}
	g := buildGraph(m, v)

	var sb strings.Builder
	sb.WriteString("graph LR\n")
	for i, name := range g.names {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", nodeID(i), e.escapeLabel(name))
	}
	if len(g.edges) > 0 {
		sb.WriteString("\n")
	}
	for _, ed := range g.edges {
		from, to := ed.from, ed.to
		if ed.arrows == diagram.ArrowsFrom {
			from, to = to, from
		}
		link := e.link(ed)
		if ed.label != "" {
			fmt.Fprintf(&sb, "    %s %s|%s| %s\n", nodeID(from), link, e.escapeLabel(ed.label), nodeID(to))
		} else {
			fmt.Fprintf(&sb, "    %s %s %s\n", nodeID(from), link, nodeID(to))
		}
	}
	return []byte(sb.String()), nil
}

func (e *MermaidExporter) link(ed edge) string {
	dashed := ed.style == diagram.StyleDashed || ed.style == diagram.StyleDotted
	switch ed.arrows {
	case diagram.ArrowsNone:
		if dashed {
			return "-.-"
		}
		return "---"
	case diagram.ArrowsBoth:
		if dashed {
			return "<-.->"
		}
		return "<-->"
	default:
		if dashed {
			return "-.->"
		}
		return "-->"
	}
}

// escapeLabel escapes characters Mermaid treats as syntax inside labels.
func (e *MermaidExporter) escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `"`, "#quot;")
	label = strings.ReplaceAll(label, "|", "#124;")
	return strings.ReplaceAll(label, "\n", "<br/>")
}

func (e *MermaidExporter) FileExtension() string {
	return ".mmd"
}

func (e *MermaidExporter) FormatName() string {
	return "Mermaid"
}
