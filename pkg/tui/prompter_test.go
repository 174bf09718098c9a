package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/model"
)

type stubDriver struct {
	inputs         []string
	selectIdx      []int
	confirm        []bool
	textAreas      []string
	infoMessages   []string
	inputConfigs   []InputConfig
	selectConfigs  []SelectConfig
	confirmConfigs []ConfirmConfig
	textConfigs    []TextAreaConfig
	inputPos       int
	selectPos      int
	confirmPos     int
	textPos        int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.confirmConfigs = append(s.confirmConfigs, cfg)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selectConfigs = append(s.selectConfigs, cfg)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	s.textConfigs = append(s.textConfigs, cfg)
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func profileModel() model.Model {
	return model.Model{Properties: []model.Property{
		{ID: "name", Title: "Name", Type: model.PropertyTypeString, Required: true},
		{ID: "age", Title: "Age", Type: model.PropertyTypeInteger},
		{ID: "active", Title: "Active", Type: model.PropertyTypeBoolean},
		{ID: "tags", Title: "Tags", Type: model.PropertyTypeArray},
	}}
}

func TestFillForm_Success(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "36"},
		selectIdx: []int{0},
		textAreas: []string{`["math"]`},
	}
	p := New(WithPromptDriver(driver))

	got, err := p.FillForm(context.Background(), profileModel())
	if err != nil {
		t.Fatalf("fill form: %v", err)
	}
	want := map[string]any{"name": "Ada", "age": int64(36), "active": true, "tags": []any{"math"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("unexpected info messages %v", driver.infoMessages)
	}
}

func TestFillForm_ReportsErrorsAndReprompts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "3.5", "Ada", "3"},
		selectIdx: []int{2, 2},
		textAreas: []string{"", ""},
	}
	p := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	got, err := p.FillForm(context.Background(), profileModel())
	if err != nil {
		t.Fatalf("fill form: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Ada", "age": int64(3)}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"2 problem(s) found, please correct them",
		`! Property "age" must be an integer. Got "3.5"`,
		`! Required property "name" is missing`,
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if driver.inputConfigs[3].Default != "3.5" {
		t.Fatalf("expected previous answer as default, got %q", driver.inputConfigs[3].Default)
	}
	if driver.inputConfigs[0].Message != "Name *" {
		t.Fatalf("expected required marker, got %q", driver.inputConfigs[0].Message)
	}
}

func TestFillForm_MaxAttempts(t *testing.T) {
	m := model.Model{Properties: []model.Property{{ID: "n", Title: "N", Type: model.PropertyTypeNumber}}}
	driver := &stubDriver{inputs: []string{"x", "y"}}
	p := New(WithPromptDriver(driver), WithMaxAttempts(2))

	_, err := p.FillForm(context.Background(), m)
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	var verr interface{ Messages() []string }
	if !errors.As(err, &verr) {
		t.Fatalf("expected wrapped validation error, got %v", err)
	}
}

func TestFillForm_PropagatesAbort(t *testing.T) {
	p := New(WithPromptDriver(abortingDriver{&stubDriver{}}))
	if _, err := p.FillForm(context.Background(), profileModel()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortingDriver struct{ *stubDriver }

func (abortingDriver) Input(context.Context, InputConfig) (string, error) { return "", ErrAborted }

func TestEditModel(t *testing.T) {
	start := model.Model{Properties: []model.Property{
		{ID: "a", Title: "A", Type: model.PropertyTypeString},
		{ID: "b", Title: "B", Type: model.PropertyTypeString},
	}}
	driver := &stubDriver{
		// add (type integer), move "Count" to first, remove "B", done
		selectIdx: []int{actionAdd, 2, actionMove, 2, 0, actionRemove, 2, actionDone},
		inputs:    []string{"Count"},
		textAreas: []string{"How many"},
		confirm:   []bool{true},
	}
	p := New(WithPromptDriver(driver))

	got, err := p.EditModel(context.Background(), start)
	if err != nil {
		t.Fatalf("edit model: %v", err)
	}
	want := model.Model{Properties: []model.Property{
		{Title: "Count", Description: "How many", Type: model.PropertyTypeInteger, Required: true},
		{ID: "a", Title: "A", Type: model.PropertyTypeString},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	if len(start.Properties) != 2 {
		t.Fatalf("input model must not be modified")
	}

	s, err := model.ToSchema(got, false)
	if err != nil {
		t.Fatalf("to schema: %v", err)
	}
	if diff := cmp.Diff([]string{"count", "a"}, s.Properties.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestEditModel_EditsPropertyInPlace(t *testing.T) {
	start := model.Model{Properties: []model.Property{
		{ID: "a", Title: "A", Type: model.PropertyTypeString},
		{ID: "zip_code", Title: "Zip Code", Description: "Postal", Type: model.PropertyTypeInteger, Required: true},
		{Title: "Draft", Type: model.PropertyTypeBoolean},
	}}
	driver := &stubDriver{
		// edit "Zip Code" (type string), edit "Draft" (type number), done
		selectIdx: []int{actionEdit, 1, 0, actionEdit, 2, 1, actionDone},
		inputs:    []string{"Postal Code", "Final"},
		textAreas: []string{"Postal or ZIP", ""},
		confirm:   []bool{false, true},
	}
	p := New(WithPromptDriver(driver))

	got, err := p.EditModel(context.Background(), start)
	if err != nil {
		t.Fatalf("edit model: %v", err)
	}
	want := model.Model{Properties: []model.Property{
		{ID: "a", Title: "A", Type: model.PropertyTypeString},
		{ID: "zip_code", Title: "Postal Code", Description: "Postal or ZIP", Type: model.PropertyTypeString},
		{Title: "Final", Type: model.PropertyTypeNumber, Required: true},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	if start.Properties[1].Title != "Zip Code" || !start.Properties[1].Required {
		t.Fatalf("input model must not be modified: %#v", start.Properties[1])
	}

	// The first edit offers the current values as defaults.
	if driver.inputConfigs[0].Default != "Zip Code" {
		t.Fatalf("unexpected title default %q", driver.inputConfigs[0].Default)
	}
	if driver.textConfigs[0].Default != "Postal" {
		t.Fatalf("unexpected description default %q", driver.textConfigs[0].Default)
	}
	if !driver.confirmConfigs[0].Default {
		t.Fatalf("expected required default to be true")
	}
	typeCfg := driver.selectConfigs[2]
	if typeCfg.Options[typeCfg.DefaultIndex] != string(model.PropertyTypeInteger) {
		t.Fatalf("unexpected type default %q", typeCfg.Options[typeCfg.DefaultIndex])
	}
	actionCfg := driver.selectConfigs[0]
	if actionCfg.Options[actionEdit] != "Edit property" {
		t.Fatalf("unexpected edit label %q", actionCfg.Options[actionEdit])
	}

	// The edited model still derives the existing key and a new one for the
	// unsaved property.
	s, err := model.ToSchema(got, false)
	if err != nil {
		t.Fatalf("to schema: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "zip_code", "final"}, s.Properties.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateTitle(t *testing.T) {
	p := New(WithPromptDriver(&stubDriver{}), WithMessages(i18n.MessageFunc(func(code string, _ i18n.Params) string { return code })))
	if err := p.validateTitle(""); err == nil || err.Error() != i18n.CodePropertyEmpty {
		t.Fatalf("unexpected error %v", err)
	}
	if err := p.validateTitle("***"); err == nil || err.Error() != i18n.CodePropertySpecialChars {
		t.Fatalf("unexpected error %v", err)
	}
	if err := p.validateTitle("Fine"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
