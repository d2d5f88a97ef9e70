// Package document reads, validates and writes isoflow documents.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"isoflow/diagram"
)

// Format is an on-disk encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown document format: %s", s)
	}
}

// FormatForPath picks the encoding from the file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a document and fills in defaults the format may omit. It does
// not validate; see Validate.
func Decode(r io.Reader, format Format) (diagram.Model, error) {
	var m diagram.Model
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&m); err != nil {
			return diagram.Model{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return diagram.Model{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return diagram.Model{}, fmt.Errorf("unknown document format: %s", format)
	}
	normalize(&m)
	return m, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte, format Format) (diagram.Model, error) {
	return Decode(bytes.NewReader(data), format)
}

// Encode writes m in the given format.
func Encode(w io.Writer, m diagram.Model, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown document format: %s", format)
	}
}

// EncodeBytes is Encode into a byte slice.
func EncodeBytes(m diagram.Model, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func normalize(m *diagram.Model) {
	if m.Version == "" {
		m.Version = diagram.Version
	}
	if m.Title == "" {
		m.Title = diagram.DefaultTitle
	}
	if m.Colors == nil {
		m.Colors = append([]diagram.Color(nil), diagram.DefaultColors...)
	}
	if m.Icons == nil {
		m.Icons = []diagram.Icon{}
	}
	if m.Items == nil {
		m.Items = []diagram.ModelItem{}
	}
	for i := range m.Views {
		v := &m.Views[i]
		if v.Items == nil {
			v.Items = []diagram.ViewItem{}
		}
		for j := range v.Items {
			if v.Items[j].Size == 0 {
				v.Items[j].Size = diagram.DefaultItemSize
			}
		}
		for j := range v.TextBoxes {
			tb := &v.TextBoxes[j]
			if tb.Orientation == "" {
				tb.Orientation = diagram.OrientationX
			}
			if tb.Size.Width == 0 {
				tb.Size.Width = diagram.DefaultTextBoxWidth
			}
		}
	}
	if m.CurrentViewID == "" && len(m.Views) > 0 {
		m.CurrentViewID = m.Views[0].ID
	}
	diagram.EnsureAnchorIDs(m)
}
