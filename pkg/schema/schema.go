package schema

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Type is the JSON Schema primitive a property declares.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Types lists the property types the editor offers, in menu order.
var Types = []Type{TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray, TypeObject}

// Valid reports whether t is one of the supported property types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// PropertySpec describes a single flat property. Items is read when present
// but the editor never writes it back.
type PropertySpec struct {
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Type        Type          `json:"type" yaml:"type"`
	Items       *PropertySpec `json:"items,omitempty" yaml:"items,omitempty"`
}

// Schema is the persisted object schema. Properties keep document order when
// decoded and insertion order when built, so the serialized form carries the
// order the user edited properties in.
type Schema struct {
	Type       Type       `json:"type" yaml:"type"`
	Properties Properties `json:"properties" yaml:"properties"`
	Required   []string   `json:"required" yaml:"required"`
}

// New returns an empty object schema.
func New() Schema {
	return Schema{Type: TypeObject, Required: []string{}}
}

// Require adds key to the required set. Repeated keys are ignored.
func (s *Schema) Require(key string) {
	if s.IsRequired(key) {
		return
	}
	s.Required = append(s.Required, key)
}

// IsRequired reports whether key is in the required set.
func (s Schema) IsRequired(key string) bool {
	for _, name := range s.Required {
		if name == key {
			return true
		}
	}
	return false
}

type wireSchema Schema

// MarshalJSON always emits the object type and a required array, even when
// empty, so stored schemas stay valid JSON Schema.
func (s Schema) MarshalJSON() ([]byte, error) {
	out := wireSchema(s)
	if out.Type == "" {
		out.Type = TypeObject
	}
	if out.Required == nil {
		out.Required = []string{}
	}
	return json.Marshal(out)
}

// MarshalYAML mirrors MarshalJSON.
func (s Schema) MarshalYAML() (any, error) {
	out := wireSchema(s)
	if out.Type == "" {
		out.Type = TypeObject
	}
	if out.Required == nil {
		out.Required = []string{}
	}
	return out, nil
}

// Parse decodes a JSON serialized schema.
func Parse(raw []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Schema{}, errors.New("schema: raw schema is empty")
	}
	if trimmed[0] != '{' {
		return Schema{}, errors.New("schema: schema must be a JSON object")
	}
	var out Schema
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return Schema{}, fmt.Errorf("schema: parse json: %w", err)
	}
	return out, nil
}

// ParseYAML decodes a YAML serialized schema.
func ParseYAML(raw []byte) (Schema, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Schema{}, errors.New("schema: raw schema is empty")
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return Schema{}, fmt.Errorf("schema: parse yaml: %w", err)
	}
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return Schema{}, errors.New("schema: schema must be a YAML mapping")
	}
	var out Schema
	if err := node.Content[0].Decode(&out); err != nil {
		return Schema{}, fmt.Errorf("schema: parse yaml: %w", err)
	}
	return out, nil
}

// Decode parses a document in the format reported by doc.Format.
func Decode(doc Document) (Schema, error) {
	if doc.Format() == FormatYAML {
		return ParseYAML(doc.Raw())
	}
	return Parse(doc.Raw())
}

// Encode serializes s in the requested format. JSON output is indented.
func Encode(s Schema, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatJSON, "":
		return json.MarshalIndent(s, "", "  ")
	default:
		return nil, fmt.Errorf("schema: unsupported format %q", format)
	}
}
