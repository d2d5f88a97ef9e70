// Package export renders a view of a document to image and text formats.
package export

import (
	"fmt"
	"log/slog"
	"strings"

	"isoflow/diagram"
	"isoflow/pathfinding"
	"isoflow/scene"
)

// Format represents an export format.
type Format string

const (
	FormatPNG     Format = "png"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMermaid Format = "mermaid"
	FormatDOT     Format = "dot"
)

// Exporter renders one view of a model.
type Exporter interface {
	// Export renders view viewID; an empty id means the current view.
	Export(m diagram.Model, viewID string) ([]byte, error)
	// FileExtension returns the recommended file extension, with the dot.
	FileExtension() string
	// FormatName returns a human-readable name for the format.
	FormatName() string
}

// Options are shared by the exporters that lay out geometry.
type Options struct {
	Padding float64
	Scale   float64
	Router  *pathfinding.Router
	Logger  *slog.Logger
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{Padding: 40, Scale: 1}
}

func (o Options) router() *pathfinding.Router {
	if o.Router != nil {
		return o.Router
	}
	return pathfinding.NewRouter(pathfinding.HorizontalFirst, 0)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// NewExporter creates an exporter for the specified format.
func NewExporter(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatPNG:
		return NewPNGExporter(opts), nil
	case FormatJSON, FormatYAML:
		return NewDocumentExporter(format), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatDOT:
		return NewDOTExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png", "image":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "dot", "graphviz", "gv":
		return FormatDOT, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats lists every export format.
func AvailableFormats() []Format {
	return []Format{FormatPNG, FormatJSON, FormatYAML, FormatMermaid, FormatDOT}
}

// FormatDescriptions returns human-readable descriptions of all formats.
func FormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatPNG:     "PNG image of the isometric view",
		FormatJSON:    "isoflow document (JSON)",
		FormatYAML:    "isoflow document (YAML)",
		FormatMermaid: "Mermaid flowchart of items and connectors",
		FormatDOT:     "Graphviz DOT graph of items and connectors",
	}
}

func pickView(m diagram.Model, viewID string) (diagram.View, error) {
	if viewID == "" {
		viewID = m.CurrentViewID
	}
	if v, ok := m.View(viewID); ok {
		return v, nil
	}
	if viewID == "" && len(m.Views) > 0 {
		return m.Views[0], nil
	}
	return diagram.View{}, fmt.Errorf("unknown view %q", viewID)
}

func derive(m diagram.Model, viewID string, opts Options) (diagram.View, scene.Snapshot, error) {
	v, err := pickView(m, viewID)
	if err != nil {
		return diagram.View{}, scene.Snapshot{}, err
	}
	return v, scene.Derive(v, opts.router(), opts.logger()), nil
}
