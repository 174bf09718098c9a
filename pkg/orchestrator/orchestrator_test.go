package orchestrator_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	internalLoader "github.com/goliatone/go-schemaform/internal/schema/loader"
	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/store"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

type memoryRepo map[string]schema.Schema

func (r memoryRepo) Get(_ context.Context, name string) (schema.Schema, error) {
	s, ok := r[name]
	if !ok {
		return schema.Schema{}, store.ErrNotFound
	}
	return s, nil
}

func (r memoryRepo) Put(_ context.Context, name string, value schema.Schema) error {
	r[name] = value
	return nil
}

var files = fstest.MapFS{
	"profile.json": {Data: []byte(`{"type":"object","properties":{"age":{"title":"Age","type":"integer","description":""},"nick":{"title":"","type":"string"}},"required":["age"]}`)},
	"enum.yaml":    {Data: []byte("type: object\nproperties:\n  status:\n    title: Status\n    type: string\n    enum: [a, b]\n")},
	"broken.json":  {Data: []byte(`{"type":`)},
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrchestrator(opts ...orchestrator.Option) *orchestrator.Orchestrator {
	base := []orchestrator.Option{
		orchestrator.WithLoader(internalLoader.New(schema.NewLoaderOptions(schema.WithFileSystem(files)))),
		orchestrator.WithLogger(quietLogger()),
	}
	return orchestrator.New(append(base, opts...)...)
}

func TestLoadModel_AppliesDecorators(t *testing.T) {
	o := newOrchestrator(orchestrator.WithDecorators(model.LabelTitles))

	got, err := o.LoadModel(context.Background(), schema.SourceFromFS("profile.json"))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	want := model.Model{Properties: []model.Property{
		{ID: "age", Title: "Age", Type: model.PropertyTypeInteger, Required: true},
		{ID: "nick", Title: "Nick", Type: model.PropertyTypeString},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadModel_ParseError(t *testing.T) {
	o := newOrchestrator()
	_, err := o.LoadModel(context.Background(), schema.SourceFromFS("broken.json"))
	var parseErr *validation.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T %v", err, err)
	}
}

func TestLoadModel_StrictRejectsUnsupportedKeywords(t *testing.T) {
	lenient := newOrchestrator()
	if _, err := lenient.LoadModel(context.Background(), schema.SourceFromFS("enum.yaml")); err != nil {
		t.Fatalf("lenient load: %v", err)
	}

	strict := newOrchestrator(orchestrator.WithStrict(true))
	_, err := strict.LoadModel(context.Background(), schema.SourceFromFS("enum.yaml"))
	verr, ok := validation.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T %v", err, err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].Property != "status.enum" {
		t.Fatalf("unexpected issues %#v", verr.Issues)
	}
	want := validation.Issue{
		Code:     i18n.CodeSubsetKeywordUnsupported,
		Property: "status.enum",
		Params:   i18n.Params{"keyword": "enum"},
		Message:  `Keyword "enum" is not supported`,
	}
	if diff := cmp.Diff(want, verr.Issues[0]); diff != "" {
		t.Fatalf("issue mismatch (-want +got):\n%s", diff)
	}

	french := newOrchestrator(orchestrator.WithStrict(true), orchestrator.WithMessages(i18n.ForLocale("fr")))
	_, err = french.LoadModel(context.Background(), schema.SourceFromFS("enum.yaml"))
	if diff := cmp.Diff([]string{`Le mot-clé "enum" n'est pas pris en charge`}, validation.Messages(err)); diff != "" {
		t.Fatalf("localized messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit(t *testing.T) {
	o := newOrchestrator(orchestrator.WithStrict(true))
	m, err := o.LoadModel(context.Background(), schema.SourceFromFS("profile.json"))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}

	values, err := o.Submit(context.Background(), m, map[string]string{"age": "41", "nick": ""})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"age": int64(41), "nick": ""}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	_, err = o.Submit(context.Background(), m, map[string]string{"age": "4.5"})
	if diff := cmp.Diff([]string{`Property "age" must be an integer. Got "4.5"`}, validation.Messages(err)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_RejectionsStayBelowWarn(t *testing.T) {
	var logs bytes.Buffer
	o := orchestrator.New(orchestrator.WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))))
	m := model.Model{Properties: []model.Property{{ID: "age", Title: "Age", Type: model.PropertyTypeInteger, Required: true}}}

	var unknown *validation.UnknownPropertyError
	if _, err := o.Submit(context.Background(), m, map[string]string{"age": "1", "extra": "2"}); !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownPropertyError, got %v", err)
	}
	if _, err := o.Submit(context.Background(), m, map[string]string{"age": "x"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if logs.Len() != 0 {
		t.Fatalf("rejected input should only be logged at debug level, got %q", logs.String())
	}
}

func TestSubmit_LocalizedMessages(t *testing.T) {
	o := newOrchestrator(orchestrator.WithMessages(i18n.ForLocale("fr")))
	m := model.Model{Properties: []model.Property{{ID: "age", Title: "Age", Type: model.PropertyTypeInteger, Required: true}}}

	_, err := o.Submit(context.Background(), m, map[string]string{})
	english := i18n.Default().Message(i18n.CodeRequiredPropertyMissing, i18n.Params{"property": "age"})
	if err == nil || err.Error() == english || !strings.Contains(err.Error(), "age") {
		t.Fatalf("expected french message naming age, got %v", err)
	}
}

func TestSaveAndOpenModel(t *testing.T) {
	var logs bytes.Buffer
	repo := memoryRepo{}
	o := orchestrator.New(
		orchestrator.WithStore(repo),
		orchestrator.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	m := model.Model{Properties: []model.Property{
		{Title: "Display Name", Type: model.PropertyTypeString, Required: true},
		{Title: "Score", Type: model.PropertyTypeNumber},
	}}
	saved, err := o.SaveModel(context.Background(), "player", m, true)
	if err != nil {
		t.Fatalf("save model: %v", err)
	}
	if diff := cmp.Diff([]string{"display_name", "score"}, saved.Properties.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "schema saved") {
		t.Fatalf("expected save to be logged, got %q", logs.String())
	}

	opened, err := o.OpenModel(context.Background(), "player")
	if err != nil {
		t.Fatalf("open model: %v", err)
	}
	opened.Properties[0].Title = "Public Name"
	resaved, err := o.SaveModel(context.Background(), "player", opened, false)
	if err != nil {
		t.Fatalf("resave model: %v", err)
	}
	if diff := cmp.Diff([]string{"display_name", "score"}, resaved.Properties.Keys()); diff != "" {
		t.Fatalf("ids changed on edit (-want +got):\n%s", diff)
	}

	if _, err := o.OpenModel(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveModel_RejectsInvalidModels(t *testing.T) {
	o := orchestrator.New(orchestrator.WithStore(memoryRepo{}), orchestrator.WithLogger(quietLogger()))

	dup := model.Model{Properties: []model.Property{{ID: "a", Title: "A"}, {ID: "a", Title: "B"}}}
	if _, err := o.SaveModel(context.Background(), "x", dup, false); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	if _, err := o.SaveModel(context.Background(), "x", model.Model{Properties: []model.Property{{Title: ""}}}, true); err == nil {
		t.Fatalf("expected empty title error")
	}

	if _, err := orchestrator.New().SaveModel(context.Background(), "x", model.EmptyModel(), true); !errors.Is(err, orchestrator.ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestSaveModel_WithBoltStore(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "schemas.bolt"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer db.Close()

	o := orchestrator.New(orchestrator.WithStore(db), orchestrator.WithLogger(quietLogger()))
	if _, err := o.SaveModel(context.Background(), "example", model.ExampleModel(nil), true); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := o.OpenModel(context.Background(), "example")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(got.Properties) != 1 || got.Properties[0].ID != "example_property" || !got.Properties[0].Required {
		t.Fatalf("unexpected model %#v", got)
	}
}
