package domain

// Status represents lifecycle states for managed documents
type Status string

const (
	// StatusDraft indicates content still under preparation
	StatusDraft Status = "draft"
	// StatusPublished identifies content available to consumers
	StatusPublished Status = "published"
	// StatusArchived marks content retained for history but not publicly visible
	StatusArchived Status = "archived"
)

// Known reports whether the status is one of the recognised lifecycle states.
func (s Status) Known() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}
