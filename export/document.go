package export

import (
	"isoflow/diagram"
	"isoflow/document"
)

// DocumentExporter writes the whole document with the chosen view made current.
type DocumentExporter struct {
	format Format
}

// NewDocumentExporter creates a JSON or YAML document exporter.
func NewDocumentExporter(format Format) *DocumentExporter {
	return &DocumentExporter{format: format}
}

func (e *DocumentExporter) Export(m diagram.Model, viewID string) ([]byte, error) {
	v, err := pickView(m, viewID)
	if err != nil {
		return nil, err
	}
	m.CurrentViewID = v.ID
	if e.format == FormatYAML {
		return document.EncodeBytes(m, document.FormatYAML)
	}
	return document.EncodeBytes(m, document.FormatJSON)
}

func (e *DocumentExporter) FileExtension() string {
	if e.format == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

func (e *DocumentExporter) FormatName() string {
	if e.format == FormatYAML {
		return "YAML"
	}
	return "JSON"
}
