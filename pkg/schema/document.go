package schema

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
)

// Format names the serialization a stored schema uses.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document wraps a raw serialized schema and its origin.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// NewDocumentWithFormat is NewDocument for callers that already know the
// serialization, for example from an HTTP Content-Type header. An empty format
// keeps the guessing behaviour of Format.
func NewDocumentWithFormat(src Source, raw []byte, format Format) (Document, error) {
	switch format {
	case "", FormatJSON, FormatYAML:
	default:
		return Document{}, fmt.Errorf("schema: unknown format %q", format)
	}
	doc, err := NewDocument(src, raw)
	if err != nil {
		return Document{}, err
	}
	doc.format = format
	return doc, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Format returns the declared serialization when the document was built with
// one. Otherwise it guesses from the location extension, falling back to
// sniffing the payload.
func (d Document) Format() Format {
	if d.format != "" {
		return d.format
	}
	if format := FormatForPath(d.Location()); format != "" {
		return format
	}
	return DetectFormat(d.raw)
}

// FormatForPath maps a file extension to a Format and returns "" for anything
// else.
func FormatForPath(location string) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return ""
}

// DetectFormat reports FormatJSON when the payload starts like a JSON value
// and FormatYAML otherwise.
func DetectFormat(raw []byte) Format {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return FormatJSON
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return FormatJSON
	}
	return FormatYAML
}
