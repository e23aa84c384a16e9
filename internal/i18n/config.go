package i18n

import (
	"errors"
	"strings"
)

var (
	ErrDefaultLocaleRequired = errors.New("i18n: default locale is required")
	ErrNoLocales             = errors.New("i18n: at least one locale is required")
	ErrDefaultNotListed      = errors.New("i18n: default locale must be part of the locale set")
	ErrFallbackUnknown       = errors.New("i18n: fallback chain references an unknown locale")
)

// Config is the immutable locale configuration injected into the resolver
// and the aggregator. It is a value type on purpose: tests can build a
// different locale set without touching shared state.
type Config struct {
	// Default is the fallback root. Resolution always terminates here.
	Default string
	// Locales is the full supported set, default included.
	Locales []string
	// Fallbacks optionally overrides the chain per locale. When a locale has
	// no entry the chain is [locale, Default].
	Fallbacks map[string][]string
}

// DefaultConfig returns the canonical three-locale deployment: Vietnamese
// as the fallback root with English and Turkish falling back to it.
func DefaultConfig() Config {
	return Config{
		Default: "vi",
		Locales: []string{"vi", "en", "tr"},
	}
}

// Validate checks internal consistency of the locale set and fallback chains.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Default) == "" {
		return ErrDefaultLocaleRequired
	}
	if len(c.Locales) == 0 {
		return ErrNoLocales
	}
	if !c.Supported(c.Default) {
		return ErrDefaultNotListed
	}
	for _, chain := range c.Fallbacks {
		for _, code := range chain {
			if !c.Supported(code) {
				return ErrFallbackUnknown
			}
		}
	}
	return nil
}

// Supported reports whether the locale code belongs to the configured set.
// Matching is case-insensitive.
func (c Config) Supported(code string) bool {
	code = normalizeCode(code)
	if code == "" {
		return false
	}
	for _, candidate := range c.Locales {
		if normalizeCode(candidate) == code {
			return true
		}
	}
	return false
}

// Normalize maps an arbitrary caller-supplied locale onto the supported set,
// substituting the default for unknown or empty input. A bad locale query
// parameter must degrade, never fail the request.
func (c Config) Normalize(code string) string {
	if c.Supported(code) {
		return normalizeCode(code)
	}
	return normalizeCode(c.Default)
}

// Chain returns the fallback order for the requested locale: the locale
// itself first, then any configured fallbacks, ending at the default. The
// default locale's chain is just itself.
func (c Config) Chain(code string) []string {
	code = c.Normalize(code)
	def := normalizeCode(c.Default)
	if code == def {
		return []string{def}
	}

	chain := []string{code}
	seen := map[string]struct{}{code: {}}
	for _, next := range c.Fallbacks[code] {
		next = normalizeCode(next)
		if _, ok := seen[next]; ok || next == "" {
			continue
		}
		chain = append(chain, next)
		seen[next] = struct{}{}
	}
	if _, ok := seen[def]; !ok {
		chain = append(chain, def)
	}
	return chain
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
