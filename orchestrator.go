package schemaform

import (
	"context"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// LoadModel loads src and returns its editable model. It is the simplest
// entry point for callers that just want to render a form.
func LoadModel(ctx context.Context, src schema.Source, options ...orchestrator.Option) (model.Model, error) {
	return orchestrator.New(options...).LoadModel(ctx, src)
}

// Submit coerces raw form input against m using a default orchestrator.
func Submit(ctx context.Context, m model.Model, raw map[string]string, options ...orchestrator.Option) (map[string]any, error) {
	return orchestrator.New(options...).Submit(ctx, m, raw)
}
