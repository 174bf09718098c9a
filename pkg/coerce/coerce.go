// Package coerce turns raw form input, one string per property id, into typed
// JSON values according to a model. Every per-field problem is collected
// before the call fails so a form can show all of them at once.
package coerce

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// Coerce validates raw against m and returns the typed values.
//
// A key that names no property fails immediately with
// *validation.UnknownPropertyError. Field problems and missing required
// properties are aggregated into a single *validation.ValidationError. On
// failure the returned map is always nil.
func Coerce(m model.Model, raw map[string]string, opts ...Option) (map[string]any, error) {
	cfg := newConfig(opts)

	props := make(map[string]model.Property, len(m.Properties))
	for _, prop := range m.Properties {
		if _, seen := props[prop.ID]; !seen {
			props[prop.ID] = prop
		}
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := props[key]; !ok {
			return nil, &validation.UnknownPropertyError{
				Property: key,
				Message:  cfg.messages.Message(i18n.CodePropertyNotAllowed, i18n.Params{"property": key}),
			}
		}
	}

	c := coercer{messages: cfg.messages, out: make(map[string]any, len(raw))}
	visited := make(map[string]struct{}, len(m.Properties))
	for _, prop := range m.Properties {
		if _, done := visited[prop.ID]; done {
			continue
		}
		visited[prop.ID] = struct{}{}
		value, ok := raw[prop.ID]
		if !ok {
			continue
		}
		c.field(prop, value)
	}

	for _, prop := range m.Properties {
		if !prop.Required {
			continue
		}
		if value, ok := c.out[prop.ID]; !ok || value == "" {
			c.issue(prop.ID, i18n.CodeRequiredPropertyMissing, i18n.Params{"property": prop.ID})
		}
	}

	if len(c.issues) > 0 {
		return nil, &validation.ValidationError{
			Message: cfg.messages.Message(i18n.CodeSchemaValidationFailed, nil),
			Issues:  c.issues,
		}
	}
	return c.out, nil
}

type coercer struct {
	messages i18n.MessageSource
	out      map[string]any
	issues   []validation.Issue
}

func (c *coercer) issue(property, code string, params i18n.Params) {
	c.issues = append(c.issues, validation.NewIssue(c.messages, property, code, params))
}

// field records the typed value for prop. A value that was supplied but failed
// to parse as a scalar is still recorded so the required sweep does not report
// it a second time; the map is discarded whenever an issue exists.
func (c *coercer) field(prop model.Property, value string) {
	id := prop.ID
	if prop.Type == model.PropertyTypeString {
		c.out[id] = value
		return
	}
	if value == "" {
		c.issue(id, i18n.CodeEmptyStringNonString, i18n.Params{"property": id})
		return
	}

	switch prop.Type {
	case model.PropertyTypeNumber:
		number, ok := parseNumber(value)
		if !ok {
			c.issue(id, i18n.CodeNumberInvalid, i18n.Params{"property": id, "value": value})
			c.out[id] = value
			return
		}
		c.out[id] = number
	case model.PropertyTypeBoolean:
		if value != "true" && value != "false" {
			c.issue(id, i18n.CodeBooleanInvalid, i18n.Params{"property": id})
		}
		c.out[id] = value == "true"
	case model.PropertyTypeInteger:
		number, ok := parseNumber(value)
		if !ok || number != math.Trunc(number) {
			c.issue(id, i18n.CodeIntegerInvalid, i18n.Params{"property": id, "value": value})
			if ok {
				c.out[id] = number
			} else {
				c.out[id] = value
			}
			return
		}
		c.out[id] = integerValue(number)
	case model.PropertyTypeArray:
		parsed, err := parseJSON(value)
		if err != nil {
			c.issue(id, i18n.CodeArrayJSONInvalid, i18n.Params{"property": id, "value": value})
			return
		}
		if _, ok := parsed.([]any); !ok {
			c.issue(id, i18n.CodeArrayInvalid, i18n.Params{"property": id, "value": value})
		}
		c.out[id] = parsed
	case model.PropertyTypeObject:
		parsed, err := parseJSON(value)
		if err != nil {
			c.issue(id, i18n.CodeObjectJSONInvalid, i18n.Params{"property": id, "value": value})
			return
		}
		if _, ok := parsed.(map[string]any); !ok {
			c.issue(id, i18n.CodeObjectInvalid, i18n.Params{"property": id, "value": value})
		}
		c.out[id] = parsed
	default:
		c.issue(id, i18n.CodeUnsupportedType, i18n.Params{"type": string(prop.Type), "property": id})
	}
}

// parseNumber accepts decimal and exponent notation. NaN and infinities are
// not JSON numbers and are rejected.
func parseNumber(value string) (float64, bool) {
	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

func integerValue(number float64) any {
	if number >= math.MinInt64 && number < math.MaxInt64 {
		return int64(number)
	}
	return number
}

func parseJSON(value string) (any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}
