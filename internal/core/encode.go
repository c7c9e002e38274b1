package core

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the rendering of a report document.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a user-supplied format name. An empty name yields def.
func ParseFormat(name string, def Format) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return def, nil
	case FormatXML, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use xml, json or yaml)", ErrUnknownFormat, name)
	}
}

// ContentType returns the MIME type of documents rendered in f.
func (f Format) ContentType() string {
	switch f {
	case FormatXML:
		return "application/xml; charset=utf-8"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// render encodes a report. xmlDoc carries the root element for XML; items is
// the bare list used for JSON and YAML. Output has no trailing newline.
func render(f Format, xmlDoc any, items any) (string, error) {
	var buf bytes.Buffer

	switch f {
	case FormatXML:
		buf.WriteString(xml.Header)
		enc := xml.NewEncoder(&buf)
		enc.Indent("", "  ")
		if err := enc.Encode(xmlDoc); err != nil {
			return "", fmt.Errorf("encoding XML: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(items); err != nil {
			return "", fmt.Errorf("encoding JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return "", fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encoding YAML: %w", err)
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
