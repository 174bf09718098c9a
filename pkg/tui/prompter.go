// Package tui fills and edits schema-backed forms in a terminal. Input is
// collected as raw strings and coerced by pkg/coerce, so the terminal and a
// web form share the same validation and messages.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-schemaform/pkg/coerce"
	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// Prompter runs interactive fill and edit flows.
type Prompter struct {
	driver      PromptDriver
	messages    i18n.MessageSource
	theme       Theme
	maxAttempts int
}

// New constructs a Prompter. The survey driver is used unless another is
// supplied.
func New(options ...Option) *Prompter {
	p := &Prompter{
		messages: i18n.Default(),
		theme:    Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(nil)
	}
	return p
}

// FillForm asks for every property of m in order and coerces the answers.
// When coercion fails every message is shown and the form is asked again
// with the previous answers as defaults.
func (p *Prompter) FillForm(ctx context.Context, m model.Model) (map[string]any, error) {
	answers := make(map[string]string, len(m.Properties))
	for attempt := 1; ; attempt++ {
		raw, err := p.collect(ctx, m, answers)
		if err != nil {
			return nil, err
		}
		answers = raw

		values, err := coerce.Coerce(m, raw, coerce.WithMessages(p.messages))
		if err == nil {
			return values, nil
		}
		verr, ok := validation.AsValidationError(err)
		if !ok {
			return nil, err
		}
		if err := p.report(ctx, verr); err != nil {
			return nil, err
		}
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return nil, fmt.Errorf("%w: %w", ErrTooManyAttempts, verr)
		}
	}
}

func (p *Prompter) collect(ctx context.Context, m model.Model, previous map[string]string) (map[string]string, error) {
	raw := make(map[string]string, len(m.Properties))
	for _, prop := range m.Properties {
		if _, done := raw[prop.ID]; done {
			continue
		}
		value, skip, err := p.ask(ctx, prop, previous)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		raw[prop.ID] = value
	}
	return raw, nil
}

// ask returns the raw answer for prop. Empty answers for non-string
// properties are reported as skipped so they count as absent.
func (p *Prompter) ask(ctx context.Context, prop model.Property, previous map[string]string) (string, bool, error) {
	label := prop.Title
	if prop.Required {
		label += " *"
	}
	prior, hadPrior := previous[prop.ID]

	switch prop.Type {
	case model.PropertyTypeBoolean:
		options := []string{"true", "false"}
		if !prop.Required {
			options = append(options, p.msg(i18n.CodePromptSkip, nil))
		}
		defaultIndex := len(options) - 1
		if hadPrior {
			if idx := indexOf(options, prior); idx >= 0 {
				defaultIndex = idx
			}
		}
		idx, err := p.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: defaultIndex,
			Help:         prop.Description,
		})
		if err != nil {
			return "", false, err
		}
		if idx < 0 || idx >= 2 {
			return "", true, nil
		}
		return options[idx], false, nil
	case model.PropertyTypeArray, model.PropertyTypeObject:
		value, err := p.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: prior,
			Help:    prop.Description,
		})
		if err != nil {
			return "", false, err
		}
		return value, value == "", nil
	default:
		value, err := p.driver.Input(ctx, InputConfig{
			Message: label,
			Default: prior,
			Help:    prop.Description,
		})
		if err != nil {
			return "", false, err
		}
		if value == "" && prop.Type != model.PropertyTypeString {
			return "", true, nil
		}
		return value, false, nil
	}
}

func (p *Prompter) report(ctx context.Context, verr *validation.ValidationError) error {
	if err := p.driver.Info(ctx, p.theme.InfoPrefix+p.msg(i18n.CodePromptFixErrors, i18n.Params{"count": len(verr.Issues)})); err != nil {
		return err
	}
	for _, msg := range verr.Messages() {
		if err := p.driver.Info(ctx, p.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	return nil
}

// Editor actions in the order they are offered.
const (
	actionAdd = iota
	actionRemove
	actionMove
	actionEdit
	actionDone
)

// EditModel lets the user add, remove, reorder and edit properties until
// done. Added properties get an empty id so their key is derived on save;
// editing keeps the id of an existing property. m itself is never modified.
func (p *Prompter) EditModel(ctx context.Context, m model.Model) (model.Model, error) {
	out := m
	for {
		actions := []string{
			actionAdd:    p.msg(i18n.CodePromptAdd, nil),
			actionRemove: p.msg(i18n.CodePromptRemove, nil),
			actionMove:   p.msg(i18n.CodePromptMove, nil),
			actionEdit:   p.msg(i18n.CodePromptEdit, nil),
			actionDone:   p.msg(i18n.CodePromptDone, nil),
		}
		choice, err := p.driver.Select(ctx, SelectConfig{
			Message: p.msg(i18n.CodePromptAction, nil),
			Options: actions,
		})
		if err != nil {
			return model.Model{}, err
		}

		switch choice {
		case actionAdd:
			prop, err := p.askProperty(ctx, model.Property{})
			if err != nil {
				return model.Model{}, err
			}
			if err := out.Add(prop); err != nil {
				return model.Model{}, err
			}
		case actionRemove:
			idx, err := p.pickProperty(ctx, out, p.msg(i18n.CodePromptRemove, nil))
			if err != nil {
				return model.Model{}, err
			}
			if idx < 0 {
				continue
			}
			if err := out.RemoveAt(idx); err != nil {
				return model.Model{}, err
			}
		case actionEdit:
			idx, err := p.pickProperty(ctx, out, p.msg(i18n.CodePromptEdit, nil))
			if err != nil {
				return model.Model{}, err
			}
			if idx < 0 {
				continue
			}
			prop, err := p.askProperty(ctx, out.Properties[idx])
			if err != nil {
				return model.Model{}, err
			}
			if err := out.UpdateAt(idx, prop); err != nil {
				return model.Model{}, err
			}
		case actionMove:
			idx, err := p.pickProperty(ctx, out, p.msg(i18n.CodePromptMove, nil))
			if err != nil {
				return model.Model{}, err
			}
			if idx < 0 {
				continue
			}
			positions := make([]string, len(out.Properties))
			for i := range positions {
				positions[i] = strconv.Itoa(i + 1)
			}
			to, err := p.driver.Select(ctx, SelectConfig{
				Message:      p.msg(i18n.CodePromptPosition, i18n.Params{"title": out.Properties[idx].Title}),
				Options:      positions,
				DefaultIndex: idx,
			})
			if err != nil {
				return model.Model{}, err
			}
			if err := out.Move(idx, to); err != nil {
				return model.Model{}, err
			}
		default:
			return out, nil
		}
	}
}

// askProperty prompts for every editable field, offering current as the
// defaults.
func (p *Prompter) askProperty(ctx context.Context, current model.Property) (model.Property, error) {
	title, err := p.driver.Input(ctx, InputConfig{
		Message:   p.msg(i18n.CodePromptTitle, nil),
		Default:   current.Title,
		Validator: p.validateTitle,
	})
	if err != nil {
		return model.Property{}, err
	}
	if err := p.validateTitle(title); err != nil {
		return model.Property{}, err
	}
	description, err := p.driver.TextArea(ctx, TextAreaConfig{
		Message: p.msg(i18n.CodePromptDescription, nil),
		Default: current.Description,
	})
	if err != nil {
		return model.Property{}, err
	}

	types := make([]string, len(schema.Types))
	currentType := 0
	for i, typ := range schema.Types {
		types[i] = string(typ)
		if typ == current.Type {
			currentType = i
		}
	}
	typeIdx, err := p.driver.Select(ctx, SelectConfig{
		Message:      p.msg(i18n.CodePromptType, nil),
		Options:      types,
		DefaultIndex: currentType,
	})
	if err != nil {
		return model.Property{}, err
	}
	if typeIdx < 0 || typeIdx >= len(schema.Types) {
		typeIdx = 0
	}
	required, err := p.driver.Confirm(ctx, ConfirmConfig{
		Message: p.msg(i18n.CodePromptRequired, nil),
		Default: current.Required,
	})
	if err != nil {
		return model.Property{}, err
	}

	return model.Property{
		ID:          current.ID,
		Title:       title,
		Description: description,
		Type:        schema.Types[typeIdx],
		Required:    required,
	}, nil
}

func (p *Prompter) pickProperty(ctx context.Context, m model.Model, message string) (int, error) {
	if len(m.Properties) == 0 {
		return -1, nil
	}
	titles := make([]string, len(m.Properties))
	for i, prop := range m.Properties {
		titles[i] = prop.Title
	}
	idx, err := p.driver.Select(ctx, SelectConfig{Message: message, Options: titles})
	if err != nil {
		return -1, err
	}
	if idx < 0 || idx >= len(m.Properties) {
		return -1, nil
	}
	return idx, nil
}

func (p *Prompter) validateTitle(title string) error {
	if title == "" {
		return errors.New(p.msg(i18n.CodePropertyEmpty, nil))
	}
	if model.DeriveKey(title) == "" {
		return errors.New(p.msg(i18n.CodePropertySpecialChars, i18n.Params{"name": title}))
	}
	return nil
}

func (p *Prompter) msg(code string, params i18n.Params) string {
	return p.messages.Message(code, params)
}
