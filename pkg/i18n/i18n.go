// Package i18n is the localized message boundary. Core packages never build
// user-facing text themselves: they ask a MessageSource for a message code plus
// named parameters, and the source renders locale text.
package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Translator resolves a message key for a locale. The optional args carry the
// interpolation parameters; catalogs in this package expect a single Params
// (or map[string]any) argument.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler renders a message when a translator is absent or
// fails to resolve key.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("i18n: translator is not configured")

// ErrMissingTranslation is returned by catalogs when a key has no message in
// the requested locale or its fallbacks.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// Params are the named values interpolated into a message.
type Params map[string]any

// MessageSource produces display text for a message code.
type MessageSource interface {
	Message(code string, params Params) string
}

// MessageFunc adapts a function to MessageSource.
type MessageFunc func(code string, params Params) string

// Message implements MessageSource.
func (f MessageFunc) Message(code string, params Params) string {
	return f(code, params)
}

// Localizer binds a locale to a Translator.
type Localizer struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Message implements MessageSource. Failed lookups go through OnMissing, which
// defaults to echoing the code and its parameters.
func (l Localizer) Message(code string, params Params) string {
	onMissing := l.OnMissing
	if onMissing == nil {
		onMissing = MissingTranslationDefault
	}

	code = strings.TrimSpace(code)
	args := []any{params}
	if l.Translator == nil {
		return onMissing(l.Locale, code, args, ErrMissingTranslator)
	}

	msg, err := l.Translator.Translate(l.Locale, code, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(l.Locale, code, args, err)
	}
	return msg
}

// MissingTranslationDefault returns the key followed by its parameters in
// sorted order, e.g. "json_schema.errors.integer_invalid (property=age, value=7.5)".
func MissingTranslationDefault(_ string, key string, args []any, _ error) string {
	params := paramsFromArgs(args)
	if len(params) == 0 {
		return key
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, params[name]))
	}
	return key + " (" + strings.Join(parts, ", ") + ")"
}

func paramsFromArgs(args []any) Params {
	for _, arg := range args {
		switch typed := arg.(type) {
		case Params:
			if typed != nil {
				return typed
			}
		case map[string]any:
			if typed != nil {
				return Params(typed)
			}
		case map[string]string:
			out := make(Params, len(typed))
			for k, v := range typed {
				out[k] = v
			}
			return out
		}
	}
	return nil
}
