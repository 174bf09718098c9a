package validation

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string      `json:"path,omitempty"`
	Field   string      `json:"field,omitempty"`
	Code    string      `json:"code"`
	Params  i18n.Params `json:"params,omitempty"`
	Message string      `json:"message"`
}

// SchemaValidationResult captures validation outcomes for editor previews and
// the CLI.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

type subsetChecker struct {
	messages i18n.MessageSource
	result   SchemaValidationResult
}

func newSubsetChecker(messages i18n.MessageSource) *subsetChecker {
	if messages == nil {
		messages = i18n.Default()
	}
	return &subsetChecker{messages: messages, result: SchemaValidationResult{Valid: true}}
}

func (c *subsetChecker) add(pointer, code string, params i18n.Params) {
	c.result.Valid = false
	c.result.Issues = append(c.result.Issues, SchemaIssue{
		Path:    pointer,
		Field:   fieldPathFromPointer(pointer),
		Code:    code,
		Params:  params,
		Message: c.messages.Message(code, params),
	})
}

func (c *subsetChecker) parseFailed(err error) SchemaValidationResult {
	c.add("", i18n.CodeSubsetParseFailed, i18n.Params{"error": err.Error()})
	return c.result
}

var rootKeywords = map[string]struct{}{
	"$schema":              {},
	"$id":                  {},
	"title":                {},
	"description":          {},
	"type":                 {},
	"properties":           {},
	"required":             {},
	"additionalProperties": {},
}

var propertyKeywords = map[string]struct{}{
	"title":       {},
	"description": {},
	"type":        {},
	"items":       {},
}

// ValidateJSONSchema checks that a stored schema stays inside the supported
// subset: an object root with flat, typed leaf properties. Keywords the editor
// would silently drop on the next save are reported so callers can refuse to
// open such schemas. Issue messages come from messages, or the default English
// catalog when it is nil.
func ValidateJSONSchema(raw []byte, messages i18n.MessageSource) SchemaValidationResult {
	c := newSubsetChecker(messages)

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(raw), &payload); err != nil {
		return c.parseFailed(err)
	}
	if payload == nil {
		c.add("", i18n.CodeSubsetNullSchema, nil)
		return c.result
	}

	for _, key := range sortedKeys(payload) {
		if _, ok := rootKeywords[key]; !ok {
			c.add("#/"+escapePointer(key), i18n.CodeSubsetKeywordUnsupported, i18n.Params{"keyword": key})
		}
	}

	if typ, ok := payload["type"].(string); !ok || typ != string(schema.TypeObject) {
		c.add("#/type", i18n.CodeSubsetRootType, i18n.Params{"type": string(schema.TypeObject)})
	}

	declared := make(map[string]struct{})
	switch props := payload["properties"].(type) {
	case nil:
	case map[string]any:
		for _, name := range sortedKeys(props) {
			declared[name] = struct{}{}
			c.property("#/properties/"+escapePointer(name), props[name], false)
		}
	default:
		c.add("#/properties", i18n.CodeSubsetPropertiesNotObject, nil)
	}

	switch required := payload["required"].(type) {
	case nil:
	case []any:
		for idx, item := range required {
			pointer := fmt.Sprintf("#/required/%d", idx)
			name, ok := item.(string)
			if !ok {
				c.add(pointer, i18n.CodeSubsetRequiredNotString, nil)
				continue
			}
			if _, ok := declared[name]; !ok {
				c.add(pointer, i18n.CodeSubsetRequiredUndeclared, i18n.Params{"property": name})
			}
		}
	default:
		c.add("#/required", i18n.CodeSubsetRequiredNotArray, nil)
	}

	return c.result
}

func (c *subsetChecker) property(pointer string, node any, nested bool) {
	spec, ok := node.(map[string]any)
	if !ok {
		c.add(pointer, i18n.CodeSubsetPropertyNotObject, nil)
		return
	}
	for _, key := range sortedKeys(spec) {
		if _, ok := propertyKeywords[key]; !ok {
			c.add(pointer+"/"+escapePointer(key), i18n.CodeSubsetKeywordUnsupported, i18n.Params{"keyword": key})
		}
	}

	typ, _ := spec["type"].(string)
	if !schema.Type(typ).Valid() {
		c.add(pointer+"/type", i18n.CodeSubsetTypeUnsupported, i18n.Params{"type": typ})
	}
	for _, key := range []string{"title", "description"} {
		if value, exists := spec[key]; exists {
			if _, ok := value.(string); !ok {
				c.add(pointer+"/"+key, i18n.CodeSubsetKeywordNotString, i18n.Params{"keyword": key})
			}
		}
	}

	items, hasItems := spec["items"]
	if !hasItems {
		return
	}
	if nested {
		c.add(pointer+"/items", i18n.CodeSubsetNestedItems, nil)
		return
	}
	if typ != string(schema.TypeArray) {
		c.add(pointer+"/items", i18n.CodeSubsetItemsNotArray, nil)
		return
	}
	c.property(pointer+"/items", items, true)
}

// ValidateDocument validates typed values against s with a full JSON Schema
// validator. Coerced form values are expected to pass; the check guards
// hand-written documents and values produced outside the coercer. Type,
// required and unknown-property failures are reported through messages; any
// other failure keeps the validator's description as the "detail" param.
func ValidateDocument(s schema.Schema, values any, messages i18n.MessageSource) (SchemaValidationResult, error) {
	if messages == nil {
		messages = i18n.Default()
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return SchemaValidationResult{}, fmt.Errorf("validation: encode schema: %w", err)
	}

	outcome, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(raw), gojsonschema.NewGoLoader(values))
	if err != nil {
		return SchemaValidationResult{}, fmt.Errorf("validation: validate document: %w", err)
	}

	result := SchemaValidationResult{Valid: outcome.Valid()}
	for _, resultErr := range outcome.Errors() {
		field := resultErr.Field()
		if field == "(root)" {
			field = ""
		}
		details := resultErr.Details()

		var (
			code   string
			params i18n.Params
		)
		switch resultErr.Type() {
		case "invalid_type":
			code = i18n.CodeDocumentInvalidType
			params = i18n.Params{"field": field, "expected": details["expected"], "given": details["given"]}
		case "required":
			property, _ := details["property"].(string)
			field = joinField(field, property)
			code = i18n.CodeDocumentRequired
			params = i18n.Params{"property": property}
		case "additional_property_not_allowed":
			property, _ := details["property"].(string)
			field = joinField(field, property)
			code = i18n.CodeDocumentNotAllowed
			params = i18n.Params{"property": property}
		default:
			code = i18n.CodeDocumentInvalid
			params = i18n.Params{"field": field, "detail": resultErr.Description()}
		}

		pointer := ""
		if field != "" {
			pointer = "#/" + strings.ReplaceAll(field, ".", "/")
		}
		result.Issues = append(result.Issues, SchemaIssue{
			Path:    pointer,
			Field:   field,
			Code:    code,
			Params:  params,
			Message: messages.Message(code, params),
		})
	}
	return result, nil
}

// joinField appends name to the object path parent unless the validator
// already reported the property itself as the field.
func joinField(parent, name string) string {
	switch {
	case parent == "":
		return name
	case name == "" || parent == name || strings.HasSuffix(parent, "."+name):
		return parent
	}
	return parent + "." + name
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func escapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~", "~0")
	return strings.ReplaceAll(segment, "/", "~1")
}

func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := strings.ReplaceAll(parts[idx], "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		switch segment {
		case "properties":
			if idx+1 < len(parts) {
				next := strings.ReplaceAll(parts[idx+1], "~1", "/")
				next = strings.ReplaceAll(next, "~0", "~")
				out = append(out, next)
				idx++
			}
		case "":
			continue
		default:
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}

// ValidateSchema checks an in-memory schema against the supported subset.
func ValidateSchema(s schema.Schema, messages i18n.MessageSource) SchemaValidationResult {
	raw, err := json.Marshal(s)
	if err != nil {
		return newSubsetChecker(messages).parseFailed(err)
	}
	return ValidateJSONSchema(raw, messages)
}

// ValidateSchemaDocument checks a stored document before it is decoded, so
// keywords that decoding would drop are still reported. YAML documents are
// converted to JSON first.
func ValidateSchemaDocument(doc schema.Document, messages i18n.MessageSource) SchemaValidationResult {
	raw := doc.Raw()
	if doc.Format() != schema.FormatYAML {
		return ValidateJSONSchema(raw, messages)
	}

	var payload any
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return newSubsetChecker(messages).parseFailed(err)
	}
	converted, err := json.Marshal(payload)
	if err != nil {
		return newSubsetChecker(messages).parseFailed(err)
	}
	return ValidateJSONSchema(converted, messages)
}
