// Package main backfills legacy single-locale content into the localized
// storage shape. Runs are idempotent, so re-running after a partial failure
// is safe.
//
// Usage:
//
//	migrate -collection products -required name -required description
//	migrate -global company-info -required companyName -optional address
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/luannguen/vrc-cms/internal/commands"
	"github.com/luannguen/vrc-cms/internal/commands/migratecmd"
	"github.com/luannguen/vrc-cms/internal/config"
	"github.com/luannguen/vrc-cms/internal/document"
	"github.com/luannguen/vrc-cms/internal/logging/gologger"
	"github.com/luannguen/vrc-cms/internal/migration"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type stringList []string

func (l *stringList) String() string { return fmt.Sprint(*l) }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		collection string
		global     string
		required   stringList
		optional   stringList
	)
	flag.StringVar(&collection, "collection", "", "collection to migrate")
	flag.StringVar(&global, "global", "", "global slug to migrate")
	flag.Var(&required, "required", "field that must have a value (repeatable)")
	flag.Var(&optional, "optional", "field migrated when present (repeatable)")
	flag.Parse()

	if (collection == "") == (global == "") {
		return fmt.Errorf("exactly one of -collection or -global is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	repo := document.NewBunRepository(db)

	ctx := context.Background()
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	locales, err := cfg.Locales.I18n()
	if err != nil {
		return fmt.Errorf("locale config: %w", err)
	}

	engine := migration.NewEngine(repo, locales,
		migration.WithLoggerProvider(provider),
	)

	var report *migration.Report
	sink := func(r *migration.Report) { report = r }
	logger := commands.CommandLogger(provider, "migrate")

	if collection != "" {
		handler := migratecmd.NewMigrateCollectionHandler(engine, logger, sink)
		err = handler.Execute(ctx, migratecmd.MigrateCollectionCommand{
			Collection: collection,
			Required:   required,
			Optional:   optional,
		})
	} else {
		handler := migratecmd.NewMigrateGlobalHandler(engine, logger, sink)
		err = handler.Execute(ctx, migratecmd.MigrateGlobalCommand{
			Slug:     global,
			Required: required,
			Optional: optional,
		})
	}

	printReport(report)
	return err
}

func printReport(report *migration.Report) {
	if report == nil {
		return
	}
	fmt.Printf("scanned:  %d\n", report.Scanned)
	fmt.Printf("migrated: %d\n", report.Migrated)
	fmt.Printf("skipped:  %d\n", report.Skipped)
	if len(report.Failed) > 0 {
		fmt.Printf("failed:   %d\n", len(report.Failed))
		for _, failure := range report.Failed {
			fmt.Printf("  %s field=%s: %v\n", failure.ID, failure.Field, failure.Err)
		}
	}
}

func openDatabase(cfg config.DatabaseConfig) (*bun.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
