package model

import (
	"github.com/goliatone/go-schemaform/internal/model"
	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Builder converts schemas to models and back.
type Builder interface {
	FromSchema(s schema.Schema) Model
	FromSchemaBytes(raw []byte) (Model, error)
	FromSchemaYAML(raw []byte) (Model, error)
	FromDocument(doc schema.Document) (Model, error)
	ToSchema(m Model, creating bool) (schema.Schema, error)
	Messages() i18n.MessageSource
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	messages i18n.MessageSource
	labeler  func(string) string
}

// WithMessages sets the message source used for error text.
func WithMessages(messages i18n.MessageSource) BuilderOption {
	return func(opts *builderOptions) {
		opts.messages = messages
	}
}

// WithLabeler overrides how titles are filled for properties stored without
// one. The default keeps the property id.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return model.New(model.Options{
		Messages: cfg.messages,
		Labeler:  cfg.labeler,
	})
}

// FromSchema converts s with the default builder.
func FromSchema(s schema.Schema) Model {
	return NewBuilder().FromSchema(s)
}

// FromSchemaBytes parses JSON and converts it with the default builder.
func FromSchemaBytes(raw []byte) (Model, error) {
	return NewBuilder().FromSchemaBytes(raw)
}

// FromSchemaString is FromSchemaBytes for string input.
func FromSchemaString(raw string) (Model, error) {
	return NewBuilder().FromSchemaBytes([]byte(raw))
}

// FromSchemaYAML parses YAML and converts it with the default builder.
func FromSchemaYAML(raw []byte) (Model, error) {
	return NewBuilder().FromSchemaYAML(raw)
}

// ToSchema serializes m with the default builder.
func ToSchema(m Model, creating bool) (schema.Schema, error) {
	return NewBuilder().ToSchema(m, creating)
}

// EmptySchema returns an object schema with no properties.
func EmptySchema() schema.Schema { return model.EmptySchema() }

// ExampleModel returns the starter model with localized texts.
func ExampleModel(messages i18n.MessageSource) Model {
	if messages == nil {
		messages = i18n.Default()
	}
	return model.ExampleModel(messages)
}
