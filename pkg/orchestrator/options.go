package orchestrator

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Repository persists schemas by name. *store.Store satisfies it.
type Repository interface {
	Get(ctx context.Context, name string) (schema.Schema, error)
	Put(ctx context.Context, name string, value schema.Schema) error
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithStore injects the repository used by OpenModel and SaveModel.
func WithStore(repo Repository) Option {
	return func(o *Orchestrator) {
		o.repo = repo
	}
}

// WithMessages sets the message source for every produced error.
func WithMessages(messages i18n.MessageSource) Option {
	return func(o *Orchestrator) {
		o.messages = messages
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithStrict enables subset checks on loaded schemas and a full JSON Schema
// validation of coerced values.
func WithStrict(strict bool) Option {
	return func(o *Orchestrator) {
		o.strict = strict
	}
}

// WithDecorators registers decorators applied to every loaded model.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}
