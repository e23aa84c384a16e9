package document

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository for scaffolding and tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	collections map[string]map[uuid.UUID]*Document
	globals     map[string]*Document
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		collections: make(map[string]map[uuid.UUID]*Document),
		globals:     make(map[string]*Document),
	}
}

// Put inserts or replaces a document without write-option bookkeeping.
// Test fixtures use it to seed state directly.
func (m *MemoryRepository) Put(doc *Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket := m.collections[doc.Collection]
	if bucket == nil {
		bucket = make(map[uuid.UUID]*Document)
		m.collections[doc.Collection] = bucket
	}
	bucket[doc.ID] = doc.Clone()
}

// PutGlobal inserts or replaces a singleton global.
func (m *MemoryRepository) PutGlobal(slug string, doc *Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.globals[slug] = doc.Clone()
}

// Find returns documents matching the filter, paged and ordered.
func (m *MemoryRepository) Find(_ context.Context, collection string, filter Filter, opts FindOptions) (*Page, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var wanted map[uuid.UUID]struct{}
	if len(filter.IDs) > 0 {
		wanted = make(map[uuid.UUID]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			wanted[id] = struct{}{}
		}
	}

	matched := make([]*Document, 0)
	for _, doc := range m.collections[collection] {
		if wanted != nil {
			if _, ok := wanted[doc.ID]; !ok {
				continue
			}
		}
		if filter.Status != "" && doc.Status != filter.Status {
			continue
		}
		if filter.ActiveAt != nil && !doc.ActiveAt(*filter.ActiveAt) {
			continue
		}
		matched = append(matched, doc.Clone())
	}

	sortDocuments(matched, opts.Sort)
	return paginate(matched, opts.Page, opts.Limit), nil
}

// FindByID retrieves a document by identifier.
func (m *MemoryRepository) FindByID(_ context.Context, collection string, id uuid.UUID) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, &NotFoundError{Resource: collection, Key: id.String()}
	}
	return doc.Clone(), nil
}

// Create inserts the supplied document.
func (m *MemoryRepository) Create(_ context.Context, collection string, doc *Document, _ WriteOptions) (*Document, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := doc.Clone()
	copied.Collection = collection
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	bucket := m.collections[collection]
	if bucket == nil {
		bucket = make(map[uuid.UUID]*Document)
		m.collections[collection] = bucket
	}
	bucket[copied.ID] = copied
	return copied.Clone(), nil
}

// Update replaces an existing document.
func (m *MemoryRepository) Update(_ context.Context, collection string, doc *Document, _ WriteOptions) (*Document, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bucket := m.collections[collection]
	if _, ok := bucket[doc.ID]; !ok {
		return nil, &NotFoundError{Resource: collection, Key: doc.ID.String()}
	}
	copied := doc.Clone()
	copied.Collection = collection
	bucket[doc.ID] = copied
	return copied.Clone(), nil
}

// Delete removes a document, reporting NotFoundError when absent.
func (m *MemoryRepository) Delete(_ context.Context, collection string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket := m.collections[collection]
	if _, ok := bucket[id]; !ok {
		return &NotFoundError{Resource: collection, Key: id.String()}
	}
	delete(bucket, id)
	return nil
}

// FindGlobal retrieves a singleton global by slug.
func (m *MemoryRepository) FindGlobal(_ context.Context, slug string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.globals[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "global", Key: slug}
	}
	return doc.Clone(), nil
}

// UpdateGlobal replaces a singleton global, creating it when absent.
func (m *MemoryRepository) UpdateGlobal(_ context.Context, slug string, doc *Document, _ WriteOptions) (*Document, error) {
	if slug == "" {
		return nil, ErrGlobalSlugRequired
	}
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := doc.Clone()
	m.globals[slug] = copied
	return copied.Clone(), nil
}

func sortDocuments(docs []*Document, by *Sort) {
	if by == nil || by.Field == "" {
		sort.Slice(docs, func(i, j int) bool {
			return docs[i].ID.String() < docs[j].ID.String()
		})
		return
	}
	field := by.Field
	sort.SliceStable(docs, func(i, j int) bool {
		if by.Desc {
			return compareFieldValues(sortKey(docs[j], field), sortKey(docs[i], field))
		}
		return compareFieldValues(sortKey(docs[i], field), sortKey(docs[j], field))
	})
}

func sortKey(doc *Document, field string) any {
	switch field {
	case "createdAt":
		return doc.CreatedAt
	case "updatedAt":
		return doc.UpdatedAt
	}
	return doc.Fields[field]
}

func compareFieldValues(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af < bf
	}
	at, aok := asTime(a)
	bt, bok := asTime(b)
	if aok && bok {
		return at.Before(bt)
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	return false
}

func paginate(docs []*Document, page, limit int) *Page {
	total := len(docs)
	if limit <= 0 {
		return &Page{Docs: docs, TotalDocs: total, Page: 1, TotalPages: 1}
	}
	if page <= 0 {
		page = 1
	}
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start >= total {
		return &Page{Docs: []*Document{}, TotalDocs: total, Page: page, TotalPages: totalPages}
	}
	end := start + limit
	if end > total {
		end = total
	}
	return &Page{Docs: docs[start:end], TotalDocs: total, Page: page, TotalPages: totalPages}
}
