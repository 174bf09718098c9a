package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog is a Translator backed by per-locale message trees. Messages may
// interpolate parameters with template syntax, e.g. "{{ property }}".
type Catalog struct {
	fallback string

	mu        sync.RWMutex
	messages  map[string]map[string]string
	templates map[string]*pongo2.Template
}

var _ Translator = (*Catalog)(nil)

// NewCatalog returns an empty catalog that falls back to the given locale.
func NewCatalog(fallback string) *Catalog {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = DefaultLocale
	}
	return &Catalog{
		fallback:  fallback,
		messages:  make(map[string]map[string]string),
		templates: make(map[string]*pongo2.Template),
	}
}

// LoadCatalog reads every *.yaml / *.yml file in dir; the file name (without
// extension) is the locale.
func LoadCatalog(files fs.FS, dir string) (*Catalog, error) {
	catalog := NewCatalog(DefaultLocale)
	if err := catalog.LoadFS(files, dir); err != nil {
		return nil, err
	}
	return catalog, nil
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the catalog built from the embedded locales.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		catalog, err := LoadCatalog(embeddedLocales, "locales")
		if err != nil {
			panic(fmt.Sprintf("i18n: embedded locales: %v", err))
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// Default returns a localizer for the default locale over DefaultCatalog.
func Default() Localizer {
	return ForLocale(DefaultLocale)
}

// ForLocale returns a localizer for locale over DefaultCatalog.
func ForLocale(locale string) Localizer {
	return Localizer{Locale: locale, Translator: DefaultCatalog()}
}

// LoadFS merges the locale files found in dir.
func (c *Catalog) LoadFS(files fs.FS, dir string) error {
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return fmt.Errorf("i18n: read catalog dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		raw, err := fs.ReadFile(files, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", entry.Name(), err)
		}
		if err := c.Add(strings.TrimSuffix(entry.Name(), ext), raw); err != nil {
			return err
		}
	}
	return nil
}

// Add merges a YAML message tree for locale. Nested keys are flattened with
// dots, so {json_schema: {errors: {property_empty: ...}}} becomes
// "json_schema.errors.property_empty".
func (c *Catalog) Add(locale string, raw []byte) error {
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("i18n: parse %s catalog: %w", locale, err)
	}

	flat := make(map[string]string)
	if err := flatten("", tree, flat); err != nil {
		return fmt.Errorf("i18n: %s catalog: %w", locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	existing := c.messages[locale]
	if existing == nil {
		existing = make(map[string]string, len(flat))
		c.messages[locale] = existing
	}
	for key, msg := range flat {
		existing[key] = msg
		delete(c.templates, locale+"\x00"+key)
	}
	return nil
}

// Locales lists the locales that have at least one message.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	return out
}

// Translate implements Translator. Lookups try the exact locale, its base
// language, and then the fallback locale.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	resolved, msg, ok := c.lookup(locale, key)
	if !ok {
		return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
	}
	if !strings.Contains(msg, "{{") && !strings.Contains(msg, "{%") {
		return msg, nil
	}

	tpl, err := c.template(resolved, key, msg)
	if err != nil {
		return "", err
	}
	ctx := pongo2.Context{}
	for name, value := range paramsFromArgs(args) {
		ctx[name] = value
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("i18n: render %s: %w", key, err)
	}
	return out, nil
}

func (c *Catalog) lookup(locale, key string) (string, string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range localeChain(locale, c.fallback) {
		if msg, ok := c.messages[candidate][key]; ok {
			return candidate, msg, true
		}
	}
	return "", "", false
}

func (c *Catalog) template(locale, key, msg string) (*pongo2.Template, error) {
	cacheKey := locale + "\x00" + key

	c.mu.RLock()
	tpl, ok := c.templates[cacheKey]
	c.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	// Parameters carry raw user input; it is rendered as-is.
	tpl, err := pongo2.FromString("{% autoescape off %}" + msg + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("i18n: compile %s: %w", key, err)
	}

	c.mu.Lock()
	c.templates[cacheKey] = tpl
	c.mu.Unlock()
	return tpl, nil
}

func localeChain(locale, fallback string) []string {
	locale = strings.TrimSpace(locale)
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if base, _, found := strings.Cut(locale, "-"); found && base != "" {
			chain = append(chain, base)
		}
	}
	if fallback != "" && fallback != locale {
		chain = append(chain, fallback)
	}
	return chain
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch typed := value.(type) {
		case string:
			out[full] = typed
		case map[string]any:
			if err := flatten(full, typed, out); err != nil {
				return err
			}
		case nil:
			continue
		default:
			out[full] = fmt.Sprint(typed)
		}
	}
	return nil
}
