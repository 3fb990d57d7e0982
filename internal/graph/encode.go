package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	axonerrors "github.com/toyz/axonmeta/internal/errors"
)

// Format is an output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported encodings
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat normalizes a format name; "yml" is accepted for yaml
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", axonerrors.Newf(axonerrors.ConfigurationErrorCode, "unsupported format: %s", s).
			WithSuggestions("Use one of json, yaml or toml")
	}
}

// Marshal encodes doc in format
func Marshal(doc *Document, format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	case FormatTOML:
		data, err = toml.Marshal(doc)
	default:
		return nil, axonerrors.Newf(axonerrors.ConfigurationErrorCode, "unsupported format: %s", format)
	}
	if err != nil {
		return nil, axonerrors.WrapOutputError(string(format), "memory", err)
	}
	return data, nil
}

// Write encodes doc and writes it to w
func Write(w io.Writer, doc *Document, format Format) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return axonerrors.WrapOutputError(string(format), "writer", err)
	}
	return nil
}

// WriteFile encodes doc into path, or to stdout when path is empty or "-"
func WriteFile(path string, doc *Document, format Format) error {
	if path == "" || path == "-" {
		return Write(os.Stdout, doc, format)
	}

	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return axonerrors.WrapOutputError(string(format), path, err)
	}
	return nil
}

// String returns the format name
func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension for the format, with the dot
func (f Format) Extension() string {
	return fmt.Sprintf(".%s", string(f))
}
