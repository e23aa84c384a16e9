package document

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists documents and globals through bun. Collection rows
// share one table with the payload stored as JSON; filters that reach into
// the payload (scheduling window, payload-field ordering) are applied in
// memory after the SQL scan, which is acceptable because homepage reference
// sets are small.
type BunRepository struct {
	db      *bun.DB
	docs    repository.Repository[*DocumentRecord]
	globals repository.Repository[*GlobalRecord]
}

// NewBunRepository constructs a Repository backed by bun without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a Repository backed by bun with
// optional read-through caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		db:      db,
		docs:    wrapWithCache(newDocumentRecordRepository(db), cacheService, keySerializer),
		globals: wrapWithCache(newGlobalRecordRepository(db), cacheService, keySerializer),
	}
}

// EnsureSchema creates the backing tables when they do not exist yet.
func (r *BunRepository) EnsureSchema(ctx context.Context) error {
	for _, model := range []any{(*DocumentRecord)(nil), (*GlobalRecord)(nil)} {
		if _, err := r.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return &RepositoryError{Op: "ensure schema", Err: err}
		}
	}
	return nil
}

func (r *BunRepository) Find(ctx context.Context, collection string, filter Filter, opts FindOptions) (*Page, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}

	criteria := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.collection = ?", collection)
		}),
	}
	if filter.Status != "" {
		status := string(filter.Status)
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.status = ?", status)
		}))
	}
	if len(filter.IDs) > 0 {
		ids := make([]string, 0, len(filter.IDs))
		for _, id := range filter.IDs {
			ids = append(ids, id.String())
		}
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id IN (?)", bun.In(ids))
		}))
	}

	records, _, err := r.docs.List(ctx, criteria...)
	if err != nil {
		return nil, mapRepositoryError(err, collection, "list")
	}

	docs := make([]*Document, 0, len(records))
	for _, record := range records {
		doc := documentFromRecord(record)
		if filter.ActiveAt != nil && !doc.ActiveAt(*filter.ActiveAt) {
			continue
		}
		docs = append(docs, doc)
	}

	sortDocuments(docs, opts.Sort)
	return paginate(docs, opts.Page, opts.Limit), nil
}

func (r *BunRepository) FindByID(ctx context.Context, collection string, id uuid.UUID) (*Document, error) {
	record, err := r.docs.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, collection, id.String())
	}
	if record.Collection != collection {
		return nil, &NotFoundError{Resource: collection, Key: id.String()}
	}
	return documentFromRecord(record), nil
}

func (r *BunRepository) Create(ctx context.Context, collection string, doc *Document, _ WriteOptions) (*Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	record := recordFromDocument(doc)
	record.Collection = collection
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	created, err := r.docs.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, collection, record.ID.String())
	}
	return documentFromRecord(created), nil
}

func (r *BunRepository) Update(ctx context.Context, collection string, doc *Document, _ WriteOptions) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	record := recordFromDocument(doc)
	record.Collection = collection
	updated, err := r.docs.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, collection, record.ID.String())
	}
	return documentFromRecord(updated), nil
}

func (r *BunRepository) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	if _, err := r.FindByID(ctx, collection, id); err != nil {
		return err
	}
	if err := r.docs.Delete(ctx, &DocumentRecord{ID: id}); err != nil {
		return mapRepositoryError(err, collection, id.String())
	}
	return nil
}

func (r *BunRepository) FindGlobal(ctx context.Context, slug string) (*Document, error) {
	record, err := r.globals.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "global", slug)
	}
	return documentFromGlobal(record), nil
}

func (r *BunRepository) UpdateGlobal(ctx context.Context, slug string, doc *Document, _ WriteOptions) (*Document, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, ErrGlobalSlugRequired
	}
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	record := globalFromDocument(slug, doc)
	existing, err := r.globals.GetByIdentifier(ctx, slug)
	switch {
	case err == nil:
		record.ID = existing.ID
		updated, updateErr := r.globals.Update(ctx, record)
		if updateErr != nil {
			return nil, mapRepositoryError(updateErr, "global", slug)
		}
		return documentFromGlobal(updated), nil
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		created, createErr := r.globals.Create(ctx, record)
		if createErr != nil {
			return nil, mapRepositoryError(createErr, "global", slug)
		}
		return documentFromGlobal(created), nil
	default:
		return nil, mapRepositoryError(err, "global", slug)
	}
}

func newDocumentRecordRepository(db *bun.DB) repository.Repository[*DocumentRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*DocumentRecord]{
		NewRecord: func() *DocumentRecord { return &DocumentRecord{} },
		GetID: func(d *DocumentRecord) uuid.UUID {
			return d.ID
		},
		SetID: func(d *DocumentRecord, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(d *DocumentRecord) string {
			if d == nil {
				return ""
			}
			return d.ID.String()
		},
	})
}

func newGlobalRecordRepository(db *bun.DB) repository.Repository[*GlobalRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*GlobalRecord]{
		NewRecord: func() *GlobalRecord { return &GlobalRecord{} },
		GetID: func(g *GlobalRecord) uuid.UUID {
			return g.ID
		},
		SetID: func(g *GlobalRecord, id uuid.UUID) {
			g.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(g *GlobalRecord) string {
			if g == nil {
				return ""
			}
			return g.Slug
		},
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return &RepositoryError{Op: resource + " " + key, Err: err}
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
