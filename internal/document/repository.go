package document

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luannguen/vrc-cms/internal/domain"
)

// Filter narrows Find results. Zero values are ignored.
type Filter struct {
	// IDs restricts the result to the given identifiers.
	IDs []uuid.UUID
	// Status restricts the result to documents in the given lifecycle state.
	Status domain.Status
	// ActiveAt additionally requires the document's scheduling window to
	// contain the given instant.
	ActiveAt *time.Time
}

// Sort orders Find results by a plain attribute.
type Sort struct {
	Field string
	Desc  bool
}

// FindOptions carries paging and ordering for Find calls.
type FindOptions struct {
	Sort  *Sort
	Page  int
	Limit int
}

// Page is the standard paged result envelope.
type Page struct {
	Docs       []*Document
	TotalDocs  int
	Page       int
	TotalPages int
}

// WriteOptions qualifies create/update calls. Locale makes the write
// explicit about which locale partition the localized values target, so a
// store that partitions per locale applies them consistently.
type WriteOptions struct {
	Locale string
}

// Repository is the abstract document store the core operates against.
// Implementations must be safe for concurrent use.
type Repository interface {
	Find(ctx context.Context, collection string, filter Filter, opts FindOptions) (*Page, error)
	FindByID(ctx context.Context, collection string, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, collection string, doc *Document, opts WriteOptions) (*Document, error)
	Update(ctx context.Context, collection string, doc *Document, opts WriteOptions) (*Document, error)
	Delete(ctx context.Context, collection string, id uuid.UUID) error
	FindGlobal(ctx context.Context, slug string) (*Document, error)
	UpdateGlobal(ctx context.Context, slug string, doc *Document, opts WriteOptions) (*Document, error)
}
