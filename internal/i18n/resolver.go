package i18n

import (
	"github.com/luannguen/vrc-cms/internal/document"
)

// Kind classifies a resolution outcome. Callers need to tell "no content
// yet" apart from "no such field", so the resolver never collapses the two
// into a bare nil.
type Kind int

const (
	// KindFound means a non-nil value was located along the fallback chain.
	KindFound Kind = iota
	// KindEmpty means the field exists but no locale in the chain has a value.
	KindEmpty
	// KindNoField means the document does not carry the field at all.
	KindNoField
)

// Resolution is the outcome of resolving one localized field.
type Resolution struct {
	Value  any
	Locale string
	Kind   Kind
}

// Resolver walks the configured fallback chain over a document's localized
// fields. It is a pure reader: no side effects, safe for concurrent use.
type Resolver struct {
	config Config
}

// NewResolver builds a resolver bound to an immutable locale configuration.
func NewResolver(config Config) *Resolver {
	return &Resolver{config: config}
}

// Config exposes the locale configuration the resolver was built with.
func (r *Resolver) Config() Config {
	return r.config
}

// Resolve returns the best available value for the field in the requested
// locale. Invalid locales degrade to the default rather than failing.
// Legacy documents that still hold the value as a plain field resolve to
// that value so reads keep working mid-migration.
func (r *Resolver) Resolve(doc *document.Document, field, locale string) Resolution {
	if doc == nil {
		return Resolution{Kind: KindNoField}
	}

	values, ok := doc.Localized[field]
	if !ok {
		if legacy, present := doc.Field(field); present {
			if legacy == nil {
				return Resolution{Kind: KindEmpty}
			}
			return Resolution{Value: legacy, Locale: r.config.Normalize(""), Kind: KindFound}
		}
		return Resolution{Kind: KindNoField}
	}

	for _, code := range r.config.Chain(locale) {
		if value, present := values[code]; present && value != nil {
			return Resolution{Value: value, Locale: code, Kind: KindFound}
		}
	}
	return Resolution{Kind: KindEmpty}
}

// ResolveDocument flattens every localized field of the document for the
// requested locale, merging the result over the plain fields. Consumers of
// the returned map never see a raw locale map.
func (r *Resolver) ResolveDocument(doc *document.Document, locale string) map[string]any {
	if doc == nil {
		return nil
	}

	out := make(map[string]any, len(doc.Fields)+len(doc.Localized))
	for name, value := range doc.Fields {
		if _, localized := doc.Localized[name]; localized {
			// The migrated value wins over any legacy leftover.
			continue
		}
		out[name] = value
	}
	for name := range doc.Localized {
		resolved := r.Resolve(doc, name, locale)
		if resolved.Kind == KindFound {
			out[name] = resolved.Value
		} else {
			out[name] = nil
		}
	}
	return out
}
