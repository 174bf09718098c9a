package i18n

import "strings"

// DefaultLocale is used when nothing better can be resolved.
const DefaultLocale = "en"

// SupportedLocales lists the locales shipped in the embedded catalog.
var SupportedLocales = []string{"en", "zh-CN", "ja", "fr", "ru"}

// IsSupported reports whether locale is one of SupportedLocales.
func IsSupported(locale string) bool {
	for _, known := range SupportedLocales {
		if known == locale {
			return true
		}
	}
	return false
}

// ResolveLocale picks the locale for a session. A stored preference wins when
// it is supported; otherwise the preferred language (e.g. an Accept-Language
// or LANG value) is matched by prefix; otherwise DefaultLocale.
func ResolveLocale(stored, preferred string) string {
	stored = strings.TrimSpace(stored)
	if stored != "" && IsSupported(stored) {
		return stored
	}

	lang := normalizeLanguage(preferred)
	switch {
	case strings.HasPrefix(lang, "zh"):
		return "zh-CN"
	case strings.HasPrefix(lang, "ja"):
		return "ja"
	case strings.HasPrefix(lang, "fr"):
		return "fr"
	case strings.HasPrefix(lang, "ru"):
		return "ru"
	}
	return DefaultLocale
}

// normalizeLanguage turns "fr_FR.UTF-8" or "ja-JP,ja;q=0.9" into a lower-case
// language tag.
func normalizeLanguage(raw string) string {
	lang := strings.TrimSpace(raw)
	if idx := strings.IndexAny(lang, ",;."); idx >= 0 {
		lang = lang[:idx]
	}
	lang = strings.ReplaceAll(lang, "_", "-")
	return strings.ToLower(lang)
}
