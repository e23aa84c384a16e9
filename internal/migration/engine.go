package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/luannguen/vrc-cms/internal/document"
	"github.com/luannguen/vrc-cms/internal/i18n"
	"github.com/luannguen/vrc-cms/internal/logging"
	"github.com/luannguen/vrc-cms/pkg/interfaces"
)

const defaultPageSize = 100

var (
	ErrCollectionRequired = errors.New("migration: collection is required")
	ErrGlobalSlugRequired = errors.New("migration: global slug is required")
	ErrNoFields           = errors.New("migration: field spec names no fields")
	ErrRequiredFieldEmpty = errors.New("migration: required field has no legacy value")
)

// Failure records one document that could not be migrated, with enough
// context for a manual retry.
type Failure struct {
	ID    uuid.UUID `json:"id"`
	Field string    `json:"field,omitempty"`
	Err   string    `json:"error"`
}

// Report summarises a migration run.
type Report struct {
	Scanned  int       `json:"scanned"`
	Migrated int       `json:"migrated"`
	Skipped  int       `json:"skipped"`
	Failed   []Failure `json:"failed,omitempty"`
}

// Engine backfills legacy single-locale documents into the multi-locale
// shape, exactly once per document. Runs are sequential and resumable:
// already-migrated documents are detected structurally and skipped, so an
// operator can retry a crashed run without double-applying.
type Engine struct {
	repo     document.Repository
	locales  i18n.Config
	logger   interfaces.Logger
	pageSize int
}

// Option configures the engine at construction time.
type Option func(*Engine)

// WithPageSize bounds how many documents one repository read returns.
func WithPageSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.pageSize = size
		}
	}
}

// WithLoggerProvider wires module-scoped logging into the engine.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(e *Engine) {
		e.logger = logging.MigrationLogger(provider)
	}
}

// NewEngine constructs a migration engine over the supplied repository and
// locale configuration.
func NewEngine(repo document.Repository, locales i18n.Config, opts ...Option) *Engine {
	e := &Engine{
		repo:     repo,
		locales:  locales,
		logger:   logging.NoOp(),
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MigrateCollection walks the collection page by page and backfills every
// document that is not yet in the multi-locale shape. One document failing
// is recorded and the scan continues; a repository failure on a page read
// aborts the run.
func (e *Engine) MigrateCollection(ctx context.Context, collection string, spec FieldSpec) (*Report, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}
	if len(spec.Fields()) == 0 {
		return nil, ErrNoFields
	}

	report := &Report{}
	logger := logging.WithFields(e.logger, map[string]any{"collection": collection})
	logger.Info("migration.collection.start")

	for page := 1; ; page++ {
		result, err := e.repo.Find(ctx, collection, document.Filter{}, document.FindOptions{
			Page:  page,
			Limit: e.pageSize,
		})
		if err != nil {
			logger.Error("migration.collection.page_failed", "page", page, "error", err)
			return report, err
		}

		for _, doc := range result.Docs {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			e.migrateDocument(ctx, collection, doc, spec, report, logger)
		}

		if page >= result.TotalPages || len(result.Docs) == 0 {
			break
		}
	}

	logger.Info("migration.collection.done",
		"scanned", report.Scanned,
		"migrated", report.Migrated,
		"skipped", report.Skipped,
		"failed", len(report.Failed),
	)
	return report, nil
}

// MigrateGlobal applies the same backfill to one singleton global.
func (e *Engine) MigrateGlobal(ctx context.Context, slug string, spec FieldSpec) (*Report, error) {
	if slug == "" {
		return nil, ErrGlobalSlugRequired
	}
	if len(spec.Fields()) == 0 {
		return nil, ErrNoFields
	}

	report := &Report{}
	logger := logging.WithFields(e.logger, map[string]any{"global": slug})

	doc, err := e.repo.FindGlobal(ctx, slug)
	if err != nil {
		return report, err
	}

	report.Scanned++
	defaultLocale := e.locales.Normalize("")
	if IsMigrated(doc, spec, defaultLocale) {
		report.Skipped++
		return report, nil
	}

	if failure := e.backfill(doc, spec, defaultLocale); failure != nil {
		report.Failed = append(report.Failed, *failure)
		return report, nil
	}
	if _, err := e.repo.UpdateGlobal(ctx, slug, doc, document.WriteOptions{Locale: defaultLocale}); err != nil {
		report.Failed = append(report.Failed, Failure{ID: doc.ID, Err: err.Error()})
		return report, nil
	}
	report.Migrated++
	logger.Info("migration.global.migrated")
	return report, nil
}

func (e *Engine) migrateDocument(ctx context.Context, collection string, doc *document.Document, spec FieldSpec, report *Report, logger interfaces.Logger) {
	report.Scanned++
	defaultLocale := e.locales.Normalize("")

	if IsMigrated(doc, spec, defaultLocale) {
		report.Skipped++
		return
	}

	if failure := e.backfill(doc, spec, defaultLocale); failure != nil {
		report.Failed = append(report.Failed, *failure)
		logger.Warn("migration.document.failed", "id", doc.ID, "field", failure.Field, "error", failure.Err)
		return
	}

	// The write names the default locale explicitly so a locale-partitioned
	// store files the backfilled values consistently.
	if _, err := e.repo.Update(ctx, collection, doc, document.WriteOptions{Locale: defaultLocale}); err != nil {
		report.Failed = append(report.Failed, Failure{ID: doc.ID, Err: err.Error()})
		logger.Warn("migration.document.update_failed", "id", doc.ID, "error", err)
		return
	}
	report.Migrated++
}

// backfill moves legacy values under the default locale. The legacy value
// is copied verbatim; non-default locales are left nil, meaning "not yet
// translated". Existing translations are never touched.
func (e *Engine) backfill(doc *document.Document, spec FieldSpec, defaultLocale string) *Failure {
	for _, field := range spec.Required {
		if hasDefaultValue(doc, field, defaultLocale) {
			continue
		}
		legacy, ok := doc.Field(field)
		if !ok || legacy == nil {
			return &Failure{
				ID:    doc.ID,
				Field: field,
				Err:   fmt.Sprintf("%v: %s", ErrRequiredFieldEmpty, field),
			}
		}
		doc.SetLocalized(field, defaultLocale, legacy)
		delete(doc.Fields, field)
	}

	for _, field := range spec.Optional {
		if hasDefaultValue(doc, field, defaultLocale) {
			continue
		}
		legacy, ok := doc.Field(field)
		if !ok || legacy == nil {
			continue
		}
		doc.SetLocalized(field, defaultLocale, legacy)
		delete(doc.Fields, field)
	}
	return nil
}

func hasDefaultValue(doc *document.Document, field, defaultLocale string) bool {
	values, ok := doc.Localized[field]
	if !ok {
		return false
	}
	value, present := values[defaultLocale]
	return present && value != nil
}
