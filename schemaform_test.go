package schemaform_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	schemaform "github.com/goliatone/go-schemaform"
	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

func TestLoadModelAndSubmit(t *testing.T) {
	files := fstest.MapFS{
		"age.json": {Data: []byte(`{"type":"object","properties":{"age":{"title":"Age","type":"integer"}},"required":["age"]}`)},
	}
	loader := schemaform.NewLoader(schema.WithFileSystem(files))
	ctx := context.Background()

	m, err := schemaform.LoadModel(ctx, schema.SourceFromFS("age.json"), orchestrator.WithLoader(loader))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	if len(m.Properties) != 1 || m.Properties[0].ID != "age" || !m.Properties[0].Required {
		t.Fatalf("unexpected model %+v", m)
	}

	got, err := schemaform.Submit(ctx, m, map[string]string{"age": "36"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"age": int64(36)}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	_, err = schemaform.Submit(ctx, m, map[string]string{"age": "abc"})
	verr, ok := validation.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if diff := cmp.Diff([]string{i18n.CodeIntegerInvalid}, verr.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLoaderRejectsHTTPByDefault(t *testing.T) {
	src, err := schema.ParseSource("https://example.com/schema.json")
	if err != nil {
		t.Fatalf("parse source: %v", err)
	}
	if _, err := schemaform.NewLoader().Load(context.Background(), src); err == nil {
		t.Fatalf("expected http source to be rejected without fallback")
	}
}
