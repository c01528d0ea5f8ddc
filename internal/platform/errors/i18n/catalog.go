// Package i18n provides localized user-facing messages for error codes.
//
// Message catalogs are embedded YAML files keyed by error code. Locale
// resolution uses golang.org/x/text language matching with en-US as the
// base locale.
package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// Code is a machine-readable error code (duplicated from the errors package
// to avoid an import cycle).
type Code = string

//go:embed locales/*.yaml
var embeddedFS embed.FS

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Bundle holds all loaded locale catalogs plus a language matcher.
type Bundle struct {
	catalogs map[string]*Catalog
	matcher  language.Matcher
	tags     []language.Tag
	locales  []string
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
	defaultErr    error
)

// Default returns the process-wide bundle built from embedded catalogs.
func Default() *Bundle {
	defaultOnce.Do(func() {
		defaultBundle, defaultErr = LoadFromFS(embeddedFS)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("load embedded error catalogs: %v", defaultErr))
	}
	return defaultBundle
}

// LoadFromFS loads locale catalogs from YAML files under locales/.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{catalogs: map[string]*Catalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		locale := strings.TrimSuffix(path.Base(p), ".yaml")
		messages := map[Code]string{}
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", locale, err)
		}
		bundle.catalogs[locale] = &Catalog{locale: locale, messages: messages}
		bundle.tags = append(bundle.tags, tag)
		bundle.locales = append(bundle.locales, locale)
	}

	if _, ok := bundle.catalogs[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s catalog is missing", BaseLocale)
	}

	// The matcher prefers the base locale, then the remaining catalogs in
	// file order.
	ordered := make([]language.Tag, 0, len(bundle.tags))
	orderedLocales := make([]string, 0, len(bundle.locales))
	for i, locale := range bundle.locales {
		if locale == BaseLocale {
			ordered = append([]language.Tag{bundle.tags[i]}, ordered...)
			orderedLocales = append([]string{locale}, orderedLocales...)
			continue
		}
		ordered = append(ordered, bundle.tags[i])
		orderedLocales = append(orderedLocales, locale)
	}
	bundle.tags = ordered
	bundle.locales = orderedLocales
	bundle.matcher = language.NewMatcher(ordered)
	return bundle, nil
}

// Resolve returns the catalog best matching the requested locale,
// falling back to the base locale.
func (b *Bundle) Resolve(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		return b.catalogs[BaseLocale]
	}
	if c, ok := b.catalogs[requested]; ok {
		return c
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return b.catalogs[BaseLocale]
	}
	_, index, confidence := b.matcher.Match(tag)
	if confidence == language.No {
		return b.catalogs[BaseLocale]
	}
	return b.catalogs[b.locales[index]]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template for code with the given metadata.
// Falls back to the error code itself when no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}
	parsed, err := template.New(code).Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
