package openapi

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const defaultOpenAPIVersion = "3.0.3"

// ErrComponentNotFound is returned when a document lacks the named schema.
var ErrComponentNotFound = errors.New("openapi: component schema not found")

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Components lists the component schema names declared by raw, sorted.
func Components(ctx context.Context, raw []byte) ([]string, error) {
	doc, err := load(ctx, raw)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0)
	if doc.Components != nil {
		for name := range doc.Components.Schemas {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ImportComponent converts components.schemas[name] of an OpenAPI document
// into a flat schema. Property keys are sorted since OpenAPI mappings carry
// no order. Nested sub-schemas are reduced to their own type, array items to
// their leaf type. Descriptions are stripped of markup.
func ImportComponent(ctx context.Context, raw []byte, name string) (schema.Schema, error) {
	doc, err := load(ctx, raw)
	if err != nil {
		return schema.Schema{}, err
	}
	if doc.Components == nil {
		return schema.Schema{}, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return schema.Schema{}, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	component := ref.Value
	if typ := typeOf(component); typ != schema.TypeObject {
		return schema.Schema{}, fmt.Errorf("openapi: component %q must be an object schema, got %q", name, typ)
	}

	keys := make([]string, 0, len(component.Properties))
	for key := range component.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := schema.New()
	for _, key := range keys {
		propRef := component.Properties[key]
		if propRef == nil || propRef.Value == nil {
			continue
		}
		prop := propRef.Value
		typ := typeOf(prop)
		if !typ.Valid() {
			return schema.Schema{}, fmt.Errorf("openapi: property %q has unsupported type %q", key, typ)
		}
		title := strings.TrimSpace(prop.Title)
		if title == "" {
			title = model.Label(key)
		}
		spec := schema.PropertySpec{
			Title:       title,
			Description: plainText(prop.Description),
			Type:        typ,
		}
		if typ == schema.TypeArray && prop.Items != nil && prop.Items.Value != nil {
			if itemType := typeOf(prop.Items.Value); itemType.Valid() {
				spec.Items = &schema.PropertySpec{Type: itemType}
			}
		}
		out.Properties.Set(key, spec)
	}
	for _, key := range component.Required {
		if out.Properties.Has(key) {
			out.Require(key)
		}
	}
	return out, nil
}

// ExportComponent wraps s as components.schemas[name] of a new OpenAPI
// document and returns it as indented JSON.
func ExportComponent(ctx context.Context, s schema.Schema, name, title string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("openapi: component name is required")
	}
	if strings.TrimSpace(title) == "" {
		title = name
	}

	component := &openapi3.Schema{
		Type:       &openapi3.Types{string(schema.TypeObject)},
		Properties: openapi3.Schemas{},
	}
	for _, key := range s.Properties.Keys() {
		spec, _ := s.Properties.Get(key)
		prop := &openapi3.Schema{
			Type:        &openapi3.Types{string(spec.Type)},
			Title:       spec.Title,
			Description: spec.Description,
		}
		if spec.Type == schema.TypeArray {
			// OpenAPI requires items on arrays; an empty schema accepts anything.
			items := &openapi3.Schema{}
			if spec.Items != nil && spec.Items.Type.Valid() {
				items.Type = &openapi3.Types{string(spec.Items.Type)}
			}
			prop.Items = &openapi3.SchemaRef{Value: items}
		}
		component.Properties[key] = &openapi3.SchemaRef{Value: prop}
	}
	if len(s.Required) > 0 {
		component.Required = append([]string(nil), s.Required...)
	}

	doc := &openapi3.T{
		OpenAPI: defaultOpenAPIVersion,
		Info:    &openapi3.Info{Title: title, Version: "1.0.0"},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{name: &openapi3.SchemaRef{Value: component}},
		},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate export: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	return data, nil
}

func load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

// typeOf returns the first declared type, inferring object for schemas that
// only declare properties.
func typeOf(s *openapi3.Schema) schema.Type {
	if s.Type != nil {
		for _, typ := range s.Type.Slice() {
			if typ != "null" {
				return schema.Type(typ)
			}
		}
	}
	if len(s.Properties) > 0 {
		return schema.TypeObject
	}
	return ""
}

func plainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(trimmed)))
}
