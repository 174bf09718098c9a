package model

import (
	"strings"

	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// Builder converts between persisted schemas and editable models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Messages != nil {
		opts.Messages = options.Messages
	}
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Messages exposes the message source used for errors.
func (b *Builder) Messages() i18n.MessageSource {
	return b.opts.Messages
}

// FromSchema produces one property per schema entry, in the schema's property
// order. Properties without a title fall back to the labeler output for their
// id.
func (b *Builder) FromSchema(s schema.Schema) Model {
	keys := s.Properties.Keys()
	out := Model{Properties: make([]Property, 0, len(keys))}
	for _, key := range keys {
		spec, _ := s.Properties.Get(key)
		title := spec.Title
		if title == "" {
			title = b.opts.Labeler(key)
		}
		out.Properties = append(out.Properties, Property{
			ID:          key,
			Title:       title,
			Description: spec.Description,
			Type:        spec.Type,
			Required:    s.IsRequired(key),
		})
	}
	return out
}

// FromSchemaBytes parses a JSON schema before converting it. Malformed input
// is reported as *validation.ParseError.
func (b *Builder) FromSchemaBytes(raw []byte) (Model, error) {
	s, err := schema.Parse(raw)
	if err != nil {
		return Model{}, validation.NewParseError(b.opts.Messages, err)
	}
	return b.FromSchema(s), nil
}

// FromSchemaYAML is FromSchemaBytes for YAML documents.
func (b *Builder) FromSchemaYAML(raw []byte) (Model, error) {
	s, err := schema.ParseYAML(raw)
	if err != nil {
		return Model{}, validation.NewParseError(b.opts.Messages, err)
	}
	return b.FromSchema(s), nil
}

// FromDocument decodes doc according to its format.
func (b *Builder) FromDocument(doc schema.Document) (Model, error) {
	s, err := schema.Decode(doc)
	if err != nil {
		return Model{}, validation.NewParseError(b.opts.Messages, err)
	}
	return b.FromSchema(s), nil
}

// ToSchema serializes m. When creating is true keys are always derived from
// titles; otherwise existing ids are kept and only empty ids are derived.
// Any invalid property aborts the conversion and no schema is returned.
func (b *Builder) ToSchema(m Model, creating bool) (schema.Schema, error) {
	keys := make([]string, len(m.Properties))
	for idx, prop := range m.Properties {
		if prop.Title == "" {
			return schema.Schema{}, b.invalid("", i18n.CodePropertyEmpty, nil)
		}
		safe := DeriveKey(prop.Title)
		if safe == "" {
			return schema.Schema{}, b.invalid(prop.ID, i18n.CodePropertySpecialChars, i18n.Params{"name": prop.Title})
		}
		switch {
		case creating, prop.ID == "":
			keys[idx] = safe
		default:
			keys[idx] = prop.ID
		}
	}

	if err := b.checkDuplicates(m, keys); err != nil {
		return schema.Schema{}, err
	}

	out := schema.New()
	for idx, prop := range m.Properties {
		out.Properties.Set(keys[idx], schema.PropertySpec{
			Title:       prop.Title,
			Description: prop.Description,
			Type:        prop.Type,
		})
		if prop.Required {
			out.Require(keys[idx])
		}
	}
	return out, nil
}

func (b *Builder) checkDuplicates(m Model, keys []string) error {
	titles := make(map[string][]string, len(keys))
	order := make([]string, 0, len(keys))
	for idx, key := range keys {
		if _, seen := titles[key]; !seen {
			order = append(order, key)
		}
		titles[key] = append(titles[key], m.Properties[idx].Title)
	}
	for _, key := range order {
		if len(titles[key]) < 2 {
			continue
		}
		quoted := make([]string, len(titles[key]))
		for idx, title := range titles[key] {
			quoted[idx] = `"` + title + `"`
		}
		return &validation.DuplicateKeyError{
			Key:    key,
			Titles: titles[key],
			Message: b.opts.Messages.Message(i18n.CodePropertyDuplicateKey, i18n.Params{
				"key":  key,
				"name": strings.Join(quoted, ", "),
			}),
		}
	}
	return nil
}

func (b *Builder) invalid(property, code string, params i18n.Params) error {
	issue := validation.NewIssue(b.opts.Messages, property, code, params)
	return &validation.ValidationError{Message: issue.Message, Issues: []validation.Issue{issue}}
}
