package i18n

import (
	"strings"
	"testing"
)

func TestResolveFallsBackToBaseLocale(t *testing.T) {
	bundle := Default()

	base := bundle.Resolve("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	if base.Locale() != BaseLocale {
		t.Fatalf("expected base locale, got %q", base.Locale())
	}

	fallback := bundle.Resolve("ja-JP")
	if fallback.Locale() != BaseLocale {
		t.Fatalf("expected fallback to base locale, got %q", fallback.Locale())
	}

	empty := bundle.Resolve("")
	if empty.Locale() != BaseLocale {
		t.Fatalf("expected empty locale to resolve to base, got %q", empty.Locale())
	}
}

func TestResolveMatchesRegionalVariant(t *testing.T) {
	bundle := Default()

	// A Spanish request without an exact catalog should match es-MX.
	resolved := bundle.Resolve("es")
	if resolved.Locale() != "es-MX" {
		t.Fatalf("expected es to resolve to es-MX, got %q", resolved.Locale())
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	bundle := Default()
	catalog := bundle.Resolve("en-US")

	message := catalog.Format("SKILL_INSUFFICIENT_POINTS", map[string]string{
		"required":  "3",
		"available": "1",
	})
	if !strings.Contains(message, "3") || !strings.Contains(message, "1") {
		t.Fatalf("expected metadata in message, got %q", message)
	}
}

func TestFormatFallsBackToCode(t *testing.T) {
	bundle := Default()
	catalog := bundle.Resolve("en-US")

	message := catalog.Format("NOT_A_REAL_CODE", nil)
	if message != "NOT_A_REAL_CODE" {
		t.Fatalf("expected code fallback, got %q", message)
	}
}

func TestAllLocalesCoverBaseCodes(t *testing.T) {
	bundle := Default()
	base := bundle.Resolve(BaseLocale)

	for _, locale := range bundle.locales {
		catalog := bundle.catalogs[locale]
		for code := range base.messages {
			if _, ok := catalog.messages[code]; !ok {
				t.Errorf("locale %s is missing code %s", locale, code)
			}
		}
	}
}
