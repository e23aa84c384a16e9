package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/luannguen/vrc-cms/internal/domain"
)

// LocalizedValue maps a locale code to the value stored for that locale.
// A missing or nil entry means "not yet translated".
type LocalizedValue map[string]any

// Document is a record belonging to a named collection or a singleton
// global. Plain attributes (status, scheduling window, relationship
// references, sort order) live in Fields; translatable attributes live in
// Localized keyed by field name. Legacy records carry translatable values
// directly in Fields with no Localized entry; the migration engine moves
// them under the default locale.
type Document struct {
	ID         uuid.UUID      `json:"id"`
	Collection string         `json:"collection"`
	Status     domain.Status  `json:"status"`
	Fields     map[string]any `json:"fields,omitempty"`
	Localized  map[string]LocalizedValue `json:"localized,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Clone returns a deep copy so repository implementations can hand out
// records without aliasing their internal state.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	copied := *d
	copied.Fields = cloneMap(d.Fields)
	if d.Localized != nil {
		copied.Localized = make(map[string]LocalizedValue, len(d.Localized))
		for field, values := range d.Localized {
			copied.Localized[field] = LocalizedValue(cloneMap(map[string]any(values)))
		}
	}
	return &copied
}

// Field returns the plain attribute stored under name.
func (d *Document) Field(name string) (any, bool) {
	if d == nil || d.Fields == nil {
		return nil, false
	}
	value, ok := d.Fields[name]
	return value, ok
}

// TimeField interprets the named plain attribute as a timestamp. It accepts
// time.Time values and RFC3339 strings, matching how scheduling windows
// arrive from JSON payloads.
func (d *Document) TimeField(name string) (time.Time, bool) {
	raw, ok := d.Field(name)
	if !ok || raw == nil {
		return time.Time{}, false
	}
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

// ActiveAt evaluates the optional scheduling window against the supplied
// instant: active iff startDate is absent or <= now and endDate is absent
// or >= now.
func (d *Document) ActiveAt(now time.Time) bool {
	if start, ok := d.TimeField("startDate"); ok && start.After(now) {
		return false
	}
	if end, ok := d.TimeField("endDate"); ok && end.Before(now) {
		return false
	}
	return true
}

// SetLocalized records a value for field under the given locale, creating
// the locale map lazily.
func (d *Document) SetLocalized(field, locale string, value any) {
	if d.Localized == nil {
		d.Localized = map[string]LocalizedValue{}
	}
	values := d.Localized[field]
	if values == nil {
		values = LocalizedValue{}
		d.Localized[field] = values
	}
	values[locale] = value
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
