package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/i18n"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestDefaultCatalog_InterpolatesParams(t *testing.T) {
	loc := i18n.Default()

	got := loc.Message(i18n.CodeIntegerInvalid, i18n.Params{"property": "age", "value": "7.5"})
	want := `Property "age" must be an integer. Got "7.5"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDefaultCatalog_DoesNotEscapeRawInput(t *testing.T) {
	loc := i18n.Default()

	got := loc.Message(i18n.CodeArrayInvalid, i18n.Params{"property": "tags", "value": `{"a":"<b>"}`})
	want := `Property "tags" must be a JSON array. Got "{"a":"<b>"}"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDefaultCatalog_EveryCodeTranslatedInEverySupportedLocale(t *testing.T) {
	codes := []string{
		i18n.CodePropertyEmpty,
		i18n.CodePropertySpecialChars,
		i18n.CodePropertyDuplicateKey,
		i18n.CodePropertyNotAllowed,
		i18n.CodeEmptyStringNonString,
		i18n.CodeNumberInvalid,
		i18n.CodeBooleanInvalid,
		i18n.CodeIntegerInvalid,
		i18n.CodeArrayInvalid,
		i18n.CodeArrayJSONInvalid,
		i18n.CodeObjectInvalid,
		i18n.CodeObjectJSONInvalid,
		i18n.CodeUnsupportedType,
		i18n.CodeRequiredPropertyMissing,
		i18n.CodeSchemaValidationFailed,
		i18n.CodeSchemaParseFailed,
		i18n.CodeExamplePropertyTitle,
		i18n.CodeExamplePropertyDescription,
		i18n.CodeSubsetParseFailed,
		i18n.CodeSubsetNullSchema,
		i18n.CodeSubsetKeywordUnsupported,
		i18n.CodeSubsetRootType,
		i18n.CodeSubsetPropertiesNotObject,
		i18n.CodeSubsetRequiredNotArray,
		i18n.CodeSubsetRequiredNotString,
		i18n.CodeSubsetRequiredUndeclared,
		i18n.CodeSubsetPropertyNotObject,
		i18n.CodeSubsetTypeUnsupported,
		i18n.CodeSubsetKeywordNotString,
		i18n.CodeSubsetNestedItems,
		i18n.CodeSubsetItemsNotArray,
		i18n.CodeDocumentInvalidType,
		i18n.CodeDocumentRequired,
		i18n.CodeDocumentNotAllowed,
		i18n.CodeDocumentInvalid,
		i18n.CodeUnknownError,
		i18n.CodeUnexpectedError,
		i18n.CodePromptAction,
		i18n.CodePromptAdd,
		i18n.CodePromptRemove,
		i18n.CodePromptMove,
		i18n.CodePromptEdit,
		i18n.CodePromptDone,
		i18n.CodePromptTitle,
		i18n.CodePromptDescription,
		i18n.CodePromptType,
		i18n.CodePromptRequired,
		i18n.CodePromptProperty,
		i18n.CodePromptPosition,
		i18n.CodePromptSkip,
		i18n.CodePromptFixErrors,
	}
	catalog := i18n.DefaultCatalog()
	params := i18n.Params{"property": "p", "value": "v", "name": "n", "key": "k", "type": "t", "error": "e", "title": "x", "count": 2, "keyword": "w", "field": "f", "expected": "integer", "given": "string", "detail": "d"}
	for _, locale := range i18n.SupportedLocales {
		for _, code := range codes {
			msg, err := catalog.Translate(locale, code, params)
			if err != nil || msg == "" {
				t.Errorf("%s/%s: got %q, %v", locale, code, msg, err)
			}
		}
	}
}

func TestCatalog_FallsBackToBaseLanguageThenDefault(t *testing.T) {
	catalog := i18n.NewCatalog("en")
	if err := catalog.Add("en", []byte("greeting: Hello\nfarewell: Bye\n")); err != nil {
		t.Fatalf("add en: %v", err)
	}
	if err := catalog.Add("fr", []byte("greeting: Bonjour\n")); err != nil {
		t.Fatalf("add fr: %v", err)
	}

	cases := []struct {
		locale, key, want string
	}{
		{"fr-CA", "greeting", "Bonjour"},
		{"fr", "farewell", "Bye"},
		{"de", "greeting", "Hello"},
	}
	for _, tc := range cases {
		got, err := catalog.Translate(tc.locale, tc.key)
		if err != nil {
			t.Fatalf("%s/%s: %v", tc.locale, tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("%s/%s: got %q, want %q", tc.locale, tc.key, got, tc.want)
		}
	}

	if _, err := catalog.Translate("fr", "missing"); !errors.Is(err, i18n.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestLoadCatalog_FromFS(t *testing.T) {
	files := fstest.MapFS{
		"catalogs/en.yaml":  {Data: []byte("form:\n  saved: \"Saved {{ count }} values\"\n")},
		"catalogs/notes.md": {Data: []byte("ignored")},
	}
	catalog, err := i18n.LoadCatalog(files, "catalogs")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	got, err := catalog.Translate("en", "form.saved", i18n.Params{"count": 3})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Saved 3 values" {
		t.Fatalf("got %q", got)
	}
}

func TestLocalizer_MissingTranslationFallbacks(t *testing.T) {
	loc := i18n.Localizer{Locale: "es", Translator: stubTranslator{"known": "Conocido"}}
	if got := loc.Message("known", nil); got != "Conocido" {
		t.Fatalf("expected translated message, got %q", got)
	}

	got := loc.Message("json_schema.errors.integer_invalid", i18n.Params{"value": "x", "property": "age"})
	want := "json_schema.errors.integer_invalid (property=age, value=x)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	var calls []string
	loc = i18n.Localizer{
		Locale: "es",
		OnMissing: func(locale, key string, _ []any, err error) string {
			if !errors.Is(err, i18n.ErrMissingTranslator) {
				t.Fatalf("expected ErrMissingTranslator, got %v", err)
			}
			calls = append(calls, locale+":"+key)
			return "fallback"
		},
	}
	if got := loc.Message("any.key", nil); got != "fallback" {
		t.Fatalf("expected handler output, got %q", got)
	}
	if diff := cmp.Diff([]string{"es:any.key"}, calls); diff != "" {
		t.Fatalf("handler calls mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveLocale(t *testing.T) {
	cases := []struct {
		stored, preferred, want string
	}{
		{"ja", "fr-FR", "ja"},
		{"de", "fr-FR", "fr"},
		{"", "zh-TW", "zh-CN"},
		{"", "ja_JP.UTF-8", "ja"},
		{"", "ru-RU,ru;q=0.9", "ru"},
		{"", "de-DE", "en"},
		{"", "", "en"},
	}
	for _, tc := range cases {
		if got := i18n.ResolveLocale(tc.stored, tc.preferred); got != tc.want {
			t.Errorf("ResolveLocale(%q, %q) = %q, want %q", tc.stored, tc.preferred, got, tc.want)
		}
	}
}
