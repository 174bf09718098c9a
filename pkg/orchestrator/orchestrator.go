package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	internalLoader "github.com/goliatone/go-schemaform/internal/schema/loader"
	"github.com/goliatone/go-schemaform/pkg/coerce"
	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// ErrNoStore is returned by OpenModel and SaveModel when no repository is
// configured.
var ErrNoStore = errors.New("orchestrator: store is not configured")

// Orchestrator coordinates load, convert, coerce and save. Missing
// dependencies are initialised with the built-in implementations.
type Orchestrator struct {
	loader     schema.Loader
	repo       Repository
	builder    model.Builder
	messages   i18n.MessageSource
	logger     *slog.Logger
	strict     bool
	decorators []model.Decorator
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.messages == nil {
		o.messages = i18n.Default()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.builder = model.NewBuilder(model.WithMessages(o.messages))
	return o
}

// Messages returns the message source errors are rendered with.
func (o *Orchestrator) Messages() i18n.MessageSource {
	return o.messages
}

// LoadModel loads src and converts it into an editable model.
func (o *Orchestrator) LoadModel(ctx context.Context, src schema.Source) (model.Model, error) {
	if src == nil {
		return model.Model{}, errors.New("orchestrator: source is required")
	}
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return model.Model{}, fmt.Errorf("orchestrator: load %s: %w", src.Location(), err)
	}

	if o.strict {
		if result := validation.ValidateSchemaDocument(doc, o.messages); !result.Valid {
			o.logger.Debug("schema outside supported subset", "location", doc.Location(), "issues", len(result.Issues))
			return model.Model{}, o.subsetError(result)
		}
	}

	m, err := o.builder.FromDocument(doc)
	if err != nil {
		o.logger.Debug("schema parse failed", "location", doc.Location(), "error", err)
		return model.Model{}, err
	}
	if err := o.decorate(&m); err != nil {
		return model.Model{}, err
	}
	o.logger.Debug("schema loaded", "location", doc.Location(), "properties", len(m.Properties))
	return m, nil
}

// OpenModel reads the schema stored under name and converts it.
func (o *Orchestrator) OpenModel(ctx context.Context, name string) (model.Model, error) {
	if o.repo == nil {
		return model.Model{}, ErrNoStore
	}
	s, err := o.repo.Get(ctx, name)
	if err != nil {
		return model.Model{}, fmt.Errorf("orchestrator: open %q: %w", name, err)
	}
	m := o.builder.FromSchema(s)
	if err := o.decorate(&m); err != nil {
		return model.Model{}, err
	}
	o.logger.Debug("schema opened", "name", name, "properties", len(m.Properties))
	return m, nil
}

// Submit coerces raw form input against m. In strict mode the typed values
// are also validated against the schema m serializes to.
func (o *Orchestrator) Submit(ctx context.Context, m model.Model, raw map[string]string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values, err := coerce.Coerce(m, raw, coerce.WithMessages(o.messages))
	if err != nil {
		if verr, ok := validation.AsValidationError(err); ok {
			o.logger.Debug("submission rejected", "issues", len(verr.Issues), "codes", verr.Codes())
		} else {
			o.logger.Debug("submission aborted", "error", err)
		}
		return nil, err
	}

	if o.strict {
		s, err := o.builder.ToSchema(m, false)
		if err != nil {
			return nil, err
		}
		result, err := validation.ValidateDocument(s, values, o.messages)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: validate submission: %w", err)
		}
		if !result.Valid {
			o.logger.Debug("coerced values failed document validation", "issues", len(result.Issues))
			return nil, o.subsetError(result)
		}
	}

	o.logger.Debug("submission accepted", "fields", len(values))
	return values, nil
}

// SaveModel serializes m and stores it under name. The stored schema is
// returned.
func (o *Orchestrator) SaveModel(ctx context.Context, name string, m model.Model, creating bool) (schema.Schema, error) {
	if o.repo == nil {
		return schema.Schema{}, ErrNoStore
	}
	if strings.TrimSpace(name) == "" {
		return schema.Schema{}, errors.New("orchestrator: schema name is required")
	}
	if err := m.Validate(); err != nil {
		return schema.Schema{}, err
	}
	s, err := o.builder.ToSchema(m, creating)
	if err != nil {
		o.logger.Debug("model rejected", "name", name, "error", err)
		return schema.Schema{}, err
	}
	if err := o.repo.Put(ctx, name, s); err != nil {
		return schema.Schema{}, fmt.Errorf("orchestrator: save %q: %w", name, err)
	}
	o.logger.Info("schema saved", "name", name, "properties", s.Properties.Len(), "creating", creating)
	return s, nil
}

func (o *Orchestrator) decorate(m *model.Model) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(m); err != nil {
			return fmt.Errorf("orchestrator: decorate model: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) subsetError(result validation.SchemaValidationResult) error {
	issues := make([]validation.Issue, 0, len(result.Issues))
	for _, item := range result.Issues {
		issues = append(issues, validation.Issue{
			Code:     item.Code,
			Property: item.Field,
			Params:   item.Params,
			Message:  item.Message,
		})
	}
	return &validation.ValidationError{
		Message: o.messages.Message(i18n.CodeSchemaValidationFailed, nil),
		Issues:  issues,
	}
}
