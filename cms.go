package cms

import (
	"github.com/luannguen/vrc-cms/internal/api"
	"github.com/luannguen/vrc-cms/internal/bulk"
	"github.com/luannguen/vrc-cms/internal/document"
	"github.com/luannguen/vrc-cms/internal/homepage"
	"github.com/luannguen/vrc-cms/internal/i18n"
	"github.com/luannguen/vrc-cms/internal/migration"
)

// Repository exports the document store contract for consumers of the cms package.
type Repository = document.Repository

// Document exports the stored document type.
type Document = document.Document

// HomepageService exports the homepage aggregation service.
type HomepageService = homepage.Service

// MigrationEngine exports the locale migration engine.
type MigrationEngine = migration.Engine

// MigrationReport exports the migration run summary.
type MigrationReport = migration.Report

// FieldSpec exports the migration field specification.
type FieldSpec = migration.FieldSpec

// BulkDeleter exports the batch deletion service.
type BulkDeleter = bulk.Deleter

// Module is the top level runtime façade. It wires the locale resolver,
// the document store and every service around them.
type Module struct {
	config    Config
	locales   i18n.Config
	resolver  *i18n.Resolver
	repo      document.Repository
	homepage  *homepage.Service
	migration *migration.Engine
	deleter   *bulk.Deleter
	server    *api.Server
}

// New constructs a module from the provided configuration.
func New(cfg Config) (*Module, error) {
	locales, err := cfg.localeConfig()
	if err != nil {
		return nil, err
	}

	repo := cfg.Repository
	if repo == nil {
		repo = document.NewMemoryRepository()
	}

	resolver := i18n.NewResolver(locales)

	homepageOpts := []homepage.Option{
		homepage.WithLoggerProvider(cfg.LoggerProvider),
	}
	if cfg.SectionTimeout > 0 {
		homepageOpts = append(homepageOpts, homepage.WithSectionTimeout(cfg.SectionTimeout))
	}
	homepageSvc := homepage.NewService(repo, resolver, homepageOpts...)

	engine := migration.NewEngine(repo, locales,
		migration.WithLoggerProvider(cfg.LoggerProvider),
	)

	deleter, err := bulk.NewDeleter(repo, cfg.BulkPoolSize,
		bulk.WithLoggerProvider(cfg.LoggerProvider),
	)
	if err != nil {
		return nil, err
	}

	server := api.NewServer(homepageSvc, deleter,
		api.WithLoggerProvider(cfg.LoggerProvider),
	)

	return &Module{
		config:    cfg,
		locales:   locales,
		resolver:  resolver,
		repo:      repo,
		homepage:  homepageSvc,
		migration: engine,
		deleter:   deleter,
		server:    server,
	}, nil
}

// Close releases pooled resources.
func (m *Module) Close() {
	if m == nil || m.deleter == nil {
		return
	}
	m.deleter.Close()
}

// Repository returns the document store backing the module.
func (m *Module) Repository() Repository {
	return m.repo
}

// Locales returns the validated locale configuration.
func (m *Module) Locales() i18n.Config {
	return m.locales
}

// Resolver returns the locale fallback resolver.
func (m *Module) Resolver() *i18n.Resolver {
	return m.resolver
}

// Homepage returns the homepage aggregation service.
func (m *Module) Homepage() *HomepageService {
	return m.homepage
}

// Migration returns the locale migration engine.
func (m *Module) Migration() *MigrationEngine {
	return m.migration
}

// Bulk returns the batch deletion service.
func (m *Module) Bulk() *BulkDeleter {
	return m.deleter
}

// Server returns the HTTP API facade.
func (m *Module) Server() *api.Server {
	return m.server
}
