package validation

import (
	"errors"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/i18n"
)

// Issue is one localized validation problem.
type Issue struct {
	Code     string      `json:"code"`
	Property string      `json:"property,omitempty"`
	Params   i18n.Params `json:"params,omitempty"`
	Message  string      `json:"message"`
}

// NewIssue renders code through messages and records the parameters used.
func NewIssue(messages i18n.MessageSource, property, code string, params i18n.Params) Issue {
	return Issue{
		Code:     code,
		Property: property,
		Params:   params,
		Message:  messages.Message(code, params),
	}
}

// ParseError reports a serialized schema that is not valid structured data.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "schema parse error"
}

func (e *ParseError) Unwrap() error { return e.Cause }

// NewParseError wraps cause with the localized parse failure message.
func NewParseError(messages i18n.MessageSource, cause error) *ParseError {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	return &ParseError{
		Message: messages.Message(i18n.CodeSchemaParseFailed, i18n.Params{"error": detail}),
		Cause:   cause,
	}
}

// ValidationError carries one or more semantic violations. When Issues is
// non-empty the display text is built from them, otherwise Message is used.
type ValidationError struct {
	Message string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) > 0 {
		return strings.Join(e.Messages(), ".\n")
	}
	return e.Message
}

// Messages returns every issue message, or the single error text when the
// error carries no issues.
func (e *ValidationError) Messages() []string {
	if len(e.Issues) == 0 {
		return []string{e.Message}
	}
	out := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue.Message)
	}
	return out
}

// Codes returns the issue codes in order.
func (e *ValidationError) Codes() []string {
	out := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue.Code)
	}
	return out
}

// UnknownPropertyError reports input keyed by a property the model does not
// declare. It signals an integration bug, not bad user input.
type UnknownPropertyError struct {
	Property string
	Message  string
}

func (e *UnknownPropertyError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unknown property " + e.Property
}

// DuplicateKeyError reports several properties resolving to the same key.
type DuplicateKeyError struct {
	Key     string
	Titles  []string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "duplicate property key " + e.Key
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// Wrap normalizes any error into display form. Errors defined in this package
// pass through untouched; anything else becomes a ValidationError with the
// localized "unexpected error" text, and nil becomes "unknown error".
func Wrap(err error, messages i18n.MessageSource) error {
	if err == nil {
		return &ValidationError{Message: messages.Message(i18n.CodeUnknownError, nil)}
	}

	var (
		validationErr *ValidationError
		parseErr      *ParseError
		unknownErr    *UnknownPropertyError
		duplicateErr  *DuplicateKeyError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr
	case errors.As(err, &parseErr):
		return parseErr
	case errors.As(err, &unknownErr):
		return unknownErr
	case errors.As(err, &duplicateErr):
		return duplicateErr
	}

	detail := strings.TrimSpace(err.Error())
	if detail == "" {
		return &ValidationError{Message: messages.Message(i18n.CodeUnknownError, nil)}
	}
	return &ValidationError{Message: messages.Message(i18n.CodeUnexpectedError, i18n.Params{"error": detail})}
}

// Messages returns the display messages for any error, following the same
// rules as ValidationError.Messages.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	if validationErr, ok := AsValidationError(err); ok {
		return validationErr.Messages()
	}
	return []string{err.Error()}
}
