package migratecmd

import (
	"context"
	"strings"

	"github.com/luannguen/vrc-cms/internal/commands"
	"github.com/luannguen/vrc-cms/internal/logging"
	"github.com/luannguen/vrc-cms/internal/migration"
	"github.com/luannguen/vrc-cms/pkg/interfaces"
)

// ReportSink receives the migration report once a run completes. Binaries
// use it to print the outcome; services can feed it into metrics.
type ReportSink func(*migration.Report)

// MigrateCollectionHandler backfills a collection via the migration engine
// using the shared command handler foundation.
type MigrateCollectionHandler struct {
	inner *commands.Handler[MigrateCollectionCommand]
}

// NewMigrateCollectionHandler constructs a handler wired to the provided engine.
func NewMigrateCollectionHandler(engine *migration.Engine, logger interfaces.Logger, sink ReportSink, opts ...commands.HandlerOption[MigrateCollectionCommand]) *MigrateCollectionHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg MigrateCollectionCommand) error {
		report, err := engine.MigrateCollection(ctx, msg.Collection, migration.FieldSpec{
			Required: msg.Required,
			Optional: msg.Optional,
		})
		if report != nil && sink != nil {
			sink(report)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[MigrateCollectionCommand]{
		commands.WithLogger[MigrateCollectionCommand](baseLogger),
		commands.WithOperation[MigrateCollectionCommand]("migrate.collection"),
		commands.WithMessageFields(func(msg MigrateCollectionCommand) map[string]any {
			fields := map[string]any{}
			if trimmed := strings.TrimSpace(msg.Collection); trimmed != "" {
				fields["collection"] = trimmed
			}
			if len(msg.Required) > 0 {
				fields["required_fields"] = len(msg.Required)
			}
			if len(msg.Optional) > 0 {
				fields["optional_fields"] = len(msg.Optional)
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MigrateCollectionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[MigrateCollectionCommand].Execute.
func (h *MigrateCollectionHandler) Execute(ctx context.Context, msg MigrateCollectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MigrateGlobalHandler backfills a single global document.
type MigrateGlobalHandler struct {
	inner *commands.Handler[MigrateGlobalCommand]
}

// NewMigrateGlobalHandler constructs a handler wired to the provided engine.
func NewMigrateGlobalHandler(engine *migration.Engine, logger interfaces.Logger, sink ReportSink, opts ...commands.HandlerOption[MigrateGlobalCommand]) *MigrateGlobalHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg MigrateGlobalCommand) error {
		report, err := engine.MigrateGlobal(ctx, msg.Slug, migration.FieldSpec{
			Required: msg.Required,
			Optional: msg.Optional,
		})
		if report != nil && sink != nil {
			sink(report)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[MigrateGlobalCommand]{
		commands.WithLogger[MigrateGlobalCommand](baseLogger),
		commands.WithOperation[MigrateGlobalCommand]("migrate.global"),
		commands.WithMessageFields(func(msg MigrateGlobalCommand) map[string]any {
			if trimmed := strings.TrimSpace(msg.Slug); trimmed != "" {
				return map[string]any{"slug": trimmed}
			}
			return nil
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MigrateGlobalHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[MigrateGlobalCommand].Execute.
func (h *MigrateGlobalHandler) Execute(ctx context.Context, msg MigrateGlobalCommand) error {
	return h.inner.Execute(ctx, msg)
}
