package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DocumentRecord is the bun model backing collection documents. Plain and
// localized fields are persisted as JSON payloads so every collection shares
// one table.
type DocumentRecord struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID         uuid.UUID                 `bun:",pk,type:uuid"                    json:"id"`
	Collection string                    `bun:"collection,notnull"               json:"collection"`
	Status     string                    `bun:"status,notnull,default:'draft'"   json:"status"`
	Fields     map[string]any            `bun:"fields,type:jsonb"                json:"fields,omitempty"`
	Localized  map[string]map[string]any `bun:"localized,type:jsonb"             json:"localized,omitempty"`
	CreatedAt  time.Time                 `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time                 `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// GlobalRecord is the bun model backing singleton globals such as
// homepage-settings and company-info.
type GlobalRecord struct {
	bun.BaseModel `bun:"table:globals,alias:g"`

	ID        uuid.UUID                 `bun:",pk,type:uuid"        json:"id"`
	Slug      string                    `bun:"slug,notnull,unique"  json:"slug"`
	Fields    map[string]any            `bun:"fields,type:jsonb"    json:"fields,omitempty"`
	Localized map[string]map[string]any `bun:"localized,type:jsonb" json:"localized,omitempty"`
	UpdatedAt time.Time                 `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func recordFromDocument(doc *Document) *DocumentRecord {
	record := &DocumentRecord{
		ID:         doc.ID,
		Collection: doc.Collection,
		Status:     string(doc.Status),
		Fields:     cloneMap(doc.Fields),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
	if doc.Localized != nil {
		record.Localized = make(map[string]map[string]any, len(doc.Localized))
		for field, values := range doc.Localized {
			record.Localized[field] = cloneMap(map[string]any(values))
		}
	}
	return record
}

func documentFromRecord(record *DocumentRecord) *Document {
	doc := &Document{
		ID:         record.ID,
		Collection: record.Collection,
		Status:     statusFromString(record.Status),
		Fields:     cloneMap(record.Fields),
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
	if record.Localized != nil {
		doc.Localized = make(map[string]LocalizedValue, len(record.Localized))
		for field, values := range record.Localized {
			doc.Localized[field] = LocalizedValue(cloneMap(values))
		}
	}
	return doc
}

func globalFromDocument(slug string, doc *Document) *GlobalRecord {
	record := &GlobalRecord{
		ID:        doc.ID,
		Slug:      slug,
		Fields:    cloneMap(doc.Fields),
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.Localized != nil {
		record.Localized = make(map[string]map[string]any, len(doc.Localized))
		for field, values := range doc.Localized {
			record.Localized[field] = cloneMap(map[string]any(values))
		}
	}
	return record
}

func documentFromGlobal(record *GlobalRecord) *Document {
	doc := &Document{
		ID:         record.ID,
		Collection: record.Slug,
		UpdatedAt:  record.UpdatedAt,
		Fields:     cloneMap(record.Fields),
	}
	if record.Localized != nil {
		doc.Localized = make(map[string]LocalizedValue, len(record.Localized))
		for field, values := range record.Localized {
			doc.Localized[field] = LocalizedValue(cloneMap(values))
		}
	}
	return doc
}
