package i18n_test

import (
	"testing"

	"github.com/luannguen/vrc-cms/internal/document"
	"github.com/luannguen/vrc-cms/internal/i18n"
)

func testConfig() i18n.Config {
	return i18n.Config{
		Default: "vi",
		Locales: []string{"vi", "en", "tr"},
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	resolver := i18n.NewResolver(testConfig())
	doc := &document.Document{
		Localized: map[string]document.LocalizedValue{
			"title": {"vi": "Điều hòa"},
		},
	}

	got := resolver.Resolve(doc, "title", "en")
	if got.Kind != i18n.KindFound {
		t.Fatalf("expected found, got kind %d", got.Kind)
	}
	if got.Value != "Điều hòa" {
		t.Fatalf("expected default-locale value, got %v", got.Value)
	}
	if got.Locale != "vi" {
		t.Fatalf("expected resolution locale vi, got %q", got.Locale)
	}
}

func TestResolvePrefersRequestedLocale(t *testing.T) {
	resolver := i18n.NewResolver(testConfig())
	doc := &document.Document{
		Localized: map[string]document.LocalizedValue{
			"title": {"vi": "Điều hòa", "en": "Air conditioner"},
		},
	}

	got := resolver.Resolve(doc, "title", "en")
	if got.Value != "Air conditioner" {
		t.Fatalf("expected en value, got %v", got.Value)
	}
	if got.Locale != "en" {
		t.Fatalf("expected resolution locale en, got %q", got.Locale)
	}
}

func TestResolveInvalidLocaleDegradesToDefault(t *testing.T) {
	resolver := i18n.NewResolver(testConfig())
	doc := &document.Document{
		Localized: map[string]document.LocalizedValue{
			"title": {"vi": "Dịch vụ"},
		},
	}

	got := resolver.Resolve(doc, "title", "fr")
	if got.Kind != i18n.KindFound || got.Value != "Dịch vụ" {
		t.Fatalf("expected default-locale value for unsupported locale, got %+v", got)
	}
}

func TestResolveDistinguishesEmptyFromMissingField(t *testing.T) {
	resolver := i18n.NewResolver(testConfig())
	doc := &document.Document{
		Localized: map[string]document.LocalizedValue{
			"summary": {"vi": nil, "en": nil},
		},
	}

	if got := resolver.Resolve(doc, "summary", "tr"); got.Kind != i18n.KindEmpty {
		t.Fatalf("expected empty kind, got %d", got.Kind)
	}
	if got := resolver.Resolve(doc, "body", "tr"); got.Kind != i18n.KindNoField {
		t.Fatalf("expected no-field kind, got %d", got.Kind)
	}
}

func TestResolveLegacyPlainField(t *testing.T) {
	resolver := i18n.NewResolver(testConfig())
	doc := &document.Document{
		Fields: map[string]any{"title": "Legacy title"},
	}

	got := resolver.Resolve(doc, "title", "en")
	if got.Kind != i18n.KindFound || got.Value != "Legacy title" {
		t.Fatalf("expected legacy value, got %+v", got)
	}
}

func TestResolveDocumentNeverLeaksLocaleMap(t *testing.T) {
	resolver := i18n.NewResolver(testConfig())
	doc := &document.Document{
		Fields: map[string]any{"sortOrder": 3},
		Localized: map[string]document.LocalizedValue{
			"title":   {"vi": "Sản phẩm", "tr": "Ürün"},
			"summary": {"vi": nil},
		},
	}

	flat := resolver.ResolveDocument(doc, "tr")
	if flat["title"] != "Ürün" {
		t.Fatalf("expected tr title, got %v", flat["title"])
	}
	if flat["sortOrder"] != 3 {
		t.Fatalf("expected plain field preserved, got %v", flat["sortOrder"])
	}
	if value, ok := flat["summary"]; !ok || value != nil {
		t.Fatalf("expected explicit nil for untranslated summary, got %v ok=%v", value, ok)
	}
	if _, isMap := flat["title"].(map[string]any); isMap {
		t.Fatal("resolved document leaked a raw locale map")
	}
}

func TestChainEndsAtDefault(t *testing.T) {
	cfg := i18n.Config{
		Default:   "vi",
		Locales:   []string{"vi", "en", "tr"},
		Fallbacks: map[string][]string{"tr": {"en"}},
	}

	got := cfg.Chain("tr")
	want := []string{"tr", "en", "vi"}
	if len(got) != len(want) {
		t.Fatalf("expected chain %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected chain %v, got %v", want, got)
		}
	}

	if chain := cfg.Chain("vi"); len(chain) != 1 || chain[0] != "vi" {
		t.Fatalf("expected default chain [vi], got %v", chain)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (i18n.Config{Locales: []string{"vi"}}).Validate(); err == nil {
		t.Fatal("expected error for missing default")
	}
	if err := (i18n.Config{Default: "vi"}).Validate(); err == nil {
		t.Fatal("expected error for empty locale set")
	}
	if err := (i18n.Config{Default: "vi", Locales: []string{"en"}}).Validate(); err == nil {
		t.Fatal("expected error when default is not listed")
	}
	cfg := i18n.Config{
		Default:   "vi",
		Locales:   []string{"vi", "en"},
		Fallbacks: map[string][]string{"en": {"de"}},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown fallback locale")
	}
	if err := i18n.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
