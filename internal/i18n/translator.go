// Package i18n resolves the message keys used for token titles and
// duration unit labels. Catalogs are flat-keyed YAML files; nested maps
// flatten with dots ("duration.days"). English ships embedded as the
// fallback catalog and a locales dir can override or extend it.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"elapse/internal/logger"
)

//go:embed locales/*.yaml
var embedded embed.FS

const fallbackLocale = "en"

// Translator looks up localized strings for a single locale with an
// English fallback. Zero-value lookups return the key unchanged so a
// missing catalog entry degrades visibly instead of breaking titles.
type Translator struct {
	locale   string
	catalog  map[string]string
	fallback map[string]string
}

// Load builds a Translator for locale. When dir is non-empty, catalogs
// are read from <dir>/<locale>.yaml; otherwise from the embedded set.
// An unknown locale falls back to English entirely.
func Load(dir, locale string) (*Translator, error) {
	locale = normalizeLocale(locale)
	fallback, err := readCatalog(dir, fallbackLocale)
	if err != nil {
		return nil, fmt.Errorf("i18n: fallback catalog: %w", err)
	}
	catalog := fallback
	if locale != fallbackLocale {
		catalog, err = readCatalog(dir, locale)
		if err != nil {
			logger.Warnf("i18n: no catalog for %q, falling back to %s", locale, fallbackLocale)
			catalog = fallback
			locale = fallbackLocale
		}
	}
	return &Translator{locale: locale, catalog: catalog, fallback: fallback}, nil
}

// T resolves key against the active catalog, then the fallback, then
// returns the key itself.
func (t *Translator) T(key string) string {
	if t != nil {
		if v, ok := t.catalog[key]; ok {
			return v
		}
		if v, ok := t.fallback[key]; ok {
			return v
		}
	}
	return key
}

// Translate implements host.Translator.
func (t *Translator) Translate(key string) string { return t.T(key) }

// Locale returns the BCP 47 identifier declared by the catalog's
// "locale" entry, or the catalog name when absent.
func (t *Translator) Locale() string {
	if t == nil {
		return fallbackLocale
	}
	if v, ok := t.catalog["locale"]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return t.locale
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return fallbackLocale
	}
	// "nl-NL" selects the "nl" catalog.
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return locale
}

func readCatalog(dir, locale string) (map[string]string, error) {
	var (
		raw []byte
		err error
	)
	if strings.TrimSpace(dir) != "" {
		raw, err = os.ReadFile(filepath.Join(dir, locale+".yaml"))
	} else {
		raw, err = embedded.ReadFile("locales/" + locale + ".yaml")
	}
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parsing %s catalog failed: %w", locale, err)
	}
	out := make(map[string]string)
	flattenCatalog("", tree, out)
	return out, nil
}

func flattenCatalog(prefix string, node any, dest map[string]string) {
	switch val := node.(type) {
	case map[string]any:
		for k, v := range val {
			key := strings.TrimSpace(k)
			if key == "" {
				continue
			}
			if prefix != "" {
				key = prefix + "." + key
			}
			flattenCatalog(key, v, dest)
		}
	case string:
		if prefix != "" {
			dest[prefix] = val
		}
	case nil:
		// skip empty entries
	default:
		if prefix != "" {
			dest[prefix] = fmt.Sprintf("%v", val)
		}
	}
}
