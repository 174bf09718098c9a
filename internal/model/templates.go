package model

import (
	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// EmptyModel returns a model with no properties.
func EmptyModel() Model {
	return Model{Properties: []Property{}}
}

// EmptySchema returns an object schema with no properties.
func EmptySchema() schema.Schema {
	return schema.New()
}

// ExampleModel returns a starter model with one required string property.
// The id is left empty so the key is derived from the localized title.
func ExampleModel(messages i18n.MessageSource) Model {
	return Model{Properties: []Property{{
		Title:       messages.Message(i18n.CodeExamplePropertyTitle, nil),
		Description: messages.Message(i18n.CodeExamplePropertyDescription, nil),
		Type:        PropertyTypeString,
		Required:    true,
	}}}
}
