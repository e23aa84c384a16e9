package migration

import "github.com/luannguen/vrc-cms/internal/document"

// FieldSpec names the translatable fields of one collection. Required
// fields must end up with a non-nil default-locale value; optional fields
// are moved under the default locale only when a legacy value exists.
type FieldSpec struct {
	Required []string
	Optional []string
}

// Fields returns every named field, required first.
func (s FieldSpec) Fields() []string {
	out := make([]string, 0, len(s.Required)+len(s.Optional))
	out = append(out, s.Required...)
	out = append(out, s.Optional...)
	return out
}

// IsMigrated is the structural idempotency predicate: a document counts as
// migrated when every required field already carries a non-nil value under
// the default locale in the multi-locale shape. The check reads the document
// shape, not a mutable flag, so re-running after a crash never double-writes.
func IsMigrated(doc *document.Document, spec FieldSpec, defaultLocale string) bool {
	if doc == nil {
		return false
	}
	for _, field := range spec.Required {
		values, ok := doc.Localized[field]
		if !ok {
			return false
		}
		if value, present := values[defaultLocale]; !present || value == nil {
			return false
		}
	}
	return true
}
