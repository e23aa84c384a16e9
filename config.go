package cms

import (
	"time"

	"github.com/luannguen/vrc-cms/internal/document"
	"github.com/luannguen/vrc-cms/internal/i18n"
	"github.com/luannguen/vrc-cms/pkg/interfaces"
)

// Config aggregates locale settings and adapter bindings for the module.
// Fields use simple types so host applications can extend them later.
type Config struct {
	// DefaultLocale is the locale untranslated content falls back to.
	DefaultLocale string
	// Locales lists every supported locale code. DefaultLocale must be
	// among them.
	Locales []string
	// Fallbacks optionally customises the per-locale fallback chains.
	Fallbacks map[string][]string

	// Repository is the document store. When nil the module runs on an
	// in-memory store, which suits tests and demos.
	Repository document.Repository

	// LoggerProvider supplies module-scoped loggers. Nil disables logging.
	LoggerProvider interfaces.LoggerProvider

	// BulkPoolSize bounds concurrent deletions per bulk request.
	BulkPoolSize int
	// SectionTimeout bounds each homepage section resolution.
	SectionTimeout time.Duration
}

// DefaultConfig returns a configuration with the standard locale set and
// conservative concurrency limits.
func DefaultConfig() Config {
	locales := i18n.DefaultConfig()
	return Config{
		DefaultLocale:  locales.Default,
		Locales:        locales.Locales,
		Fallbacks:      locales.Fallbacks,
		BulkPoolSize:   16,
		SectionTimeout: 3 * time.Second,
	}
}

func (c Config) localeConfig() (i18n.Config, error) {
	if c.DefaultLocale == "" && len(c.Locales) == 0 {
		return i18n.DefaultConfig(), nil
	}
	cfg := i18n.Config{
		Default:   c.DefaultLocale,
		Locales:   c.Locales,
		Fallbacks: c.Fallbacks,
	}
	if err := cfg.Validate(); err != nil {
		return i18n.Config{}, err
	}
	return cfg, nil
}
