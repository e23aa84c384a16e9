package migratecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	migrateCollectionMessageType = "vrc.migrate.collection"
	migrateGlobalMessageType     = "vrc.migrate.global"
)

// MigrateCollectionCommand requests a locale backfill over one collection.
// Required fields must end up with a default-locale value on every document;
// optional fields are backfilled when present but may stay absent.
type MigrateCollectionCommand struct {
	Collection string   `json:"collection"`
	Required   []string `json:"required,omitempty"`
	Optional   []string `json:"optional,omitempty"`
}

// Type implements command.Message.
func (MigrateCollectionCommand) Type() string { return migrateCollectionMessageType }

// Validate ensures the command names a collection and at least one field.
func (m MigrateCollectionCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Collection) == "" {
		errs["collection"] = validation.NewError("vrc.migrate.collection_required", "collection is required")
	}
	if len(m.Required)+len(m.Optional) == 0 {
		errs["fields"] = validation.NewError("vrc.migrate.fields_required", "at least one field is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MigrateGlobalCommand requests a locale backfill over one global document.
type MigrateGlobalCommand struct {
	Slug     string   `json:"slug"`
	Required []string `json:"required,omitempty"`
	Optional []string `json:"optional,omitempty"`
}

// Type implements command.Message.
func (MigrateGlobalCommand) Type() string { return migrateGlobalMessageType }

// Validate ensures the command names a global slug and at least one field.
func (m MigrateGlobalCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Slug) == "" {
		errs["slug"] = validation.NewError("vrc.migrate.slug_required", "slug is required")
	}
	if len(m.Required)+len(m.Optional) == 0 {
		errs["fields"] = validation.NewError("vrc.migrate.fields_required", "at least one field is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
