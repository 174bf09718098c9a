package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Properties is an insertion-ordered mapping of property key to spec. The zero
// value is empty and ready to use.
type Properties struct {
	keys   []string
	values map[string]PropertySpec
}

// Set stores spec under key. New keys are appended; existing keys keep their
// position and have their spec replaced.
func (p *Properties) Set(key string, spec PropertySpec) {
	if p.values == nil {
		p.values = make(map[string]PropertySpec)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = spec
}

// Get returns the spec stored under key.
func (p Properties) Get(key string) (PropertySpec, bool) {
	spec, ok := p.values[key]
	return spec, ok
}

// Has reports whether key is present.
func (p Properties) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Delete removes key, reporting whether it was present.
func (p *Properties) Delete(key string) bool {
	if _, ok := p.values[key]; !ok {
		return false
	}
	delete(p.values, key)
	for i, existing := range p.keys {
		if existing == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in order.
func (p Properties) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of properties.
func (p Properties) Len() int {
	return len(p.keys)
}

// Equal reports whether both mappings hold the same specs in the same order.
func (p Properties) Equal(other Properties) bool {
	if len(p.keys) != len(other.keys) {
		return false
	}
	for i, key := range p.keys {
		if other.keys[i] != key {
			return false
		}
		if !specEqual(p.values[key], other.values[key]) {
			return false
		}
	}
	return true
}

func specEqual(a, b PropertySpec) bool {
	if a.Title != b.Title || a.Description != b.Description || a.Type != b.Type {
		return false
	}
	switch {
	case a.Items == nil && b.Items == nil:
		return true
	case a.Items == nil || b.Items == nil:
		return false
	default:
		return specEqual(*a.Items, *b.Items)
	}
}

// MarshalJSON writes the properties as a JSON object in key order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.values[key])
		if err != nil {
			return nil, fmt.Errorf("schema: encode property %q: %w", key, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping document key order. When a key
// repeats, the last value wins and the first position is kept.
func (p *Properties) UnmarshalJSON(data []byte) error {
	*p = Properties{}
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var values map[string]PropertySpec
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return err
	}
	order, err := objectKeys(trimmed)
	if err != nil {
		return err
	}
	for _, key := range order {
		p.Set(key, values[key])
	}
	return nil
}

// objectKeys walks the top level of a JSON object and returns its keys in
// document order.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("schema: properties must be an object")
	}

	var keys []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return keys, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("schema: unexpected token %v in properties", tok)
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
}

func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}

// MarshalYAML emits a mapping node in key order.
func (p Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range p.keys {
		value := &yaml.Node{}
		if err := value.Encode(p.values[key]); err != nil {
			return nil, fmt.Errorf("schema: encode property %q: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping node keeping document key order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	*p = Properties{}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema: properties must be a mapping (line %d)", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var spec PropertySpec
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return fmt.Errorf("schema: property %q: %w", node.Content[i].Value, err)
		}
		p.Set(node.Content[i].Value, spec)
	}
	return nil
}
