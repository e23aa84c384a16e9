package document_test

import (
	"context"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/luannguen/vrc-cms/internal/document"
	"github.com/luannguen/vrc-cms/internal/domain"
	"github.com/luannguen/vrc-cms/pkg/testsupport"
)

func newBunRepository(t *testing.T) *document.BunRepository {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	repo := document.NewBunRepository(bunDB)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestBunRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newBunRepository(t)

	doc := &document.Document{
		ID:         uuid.New(),
		Collection: "products",
		Status:     domain.StatusPublished,
		Fields:     map[string]any{"sortOrder": 2},
		Localized: map[string]document.LocalizedValue{
			"name": {"vi": "Điều hòa", "en": "Air conditioner"},
		},
	}

	created, err := repo.Create(ctx, "products", doc, document.WriteOptions{})
	require.NoError(t, err)
	require.Equal(t, doc.ID, created.ID)

	fetched, err := repo.FindByID(ctx, "products", doc.ID)
	require.NoError(t, err)
	require.Equal(t, "Điều hòa", fetched.Localized["name"]["vi"])
	require.Equal(t, domain.StatusPublished, fetched.Status)

	fetched.SetLocalized("name", "tr", "Klima")
	updated, err := repo.Update(ctx, "products", fetched, document.WriteOptions{})
	require.NoError(t, err)
	require.Equal(t, "Klima", updated.Localized["name"]["tr"])

	require.NoError(t, repo.Delete(ctx, "products", doc.ID))
	_, err = repo.FindByID(ctx, "products", doc.ID)
	require.True(t, document.IsNotFound(err))
}

func TestBunRepositoryFindFilters(t *testing.T) {
	ctx := context.Background()
	repo := newBunRepository(t)

	published := &document.Document{
		ID:         uuid.New(),
		Collection: "banners",
		Status:     domain.StatusPublished,
		Fields: map[string]any{
			"sortOrder": 1,
			"endDate":   time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		},
	}
	draft := &document.Document{
		ID:         uuid.New(),
		Collection: "banners",
		Status:     domain.StatusDraft,
		Fields:     map[string]any{"sortOrder": 2},
	}
	expired := &document.Document{
		ID:         uuid.New(),
		Collection: "banners",
		Status:     domain.StatusPublished,
		Fields: map[string]any{
			"sortOrder": 3,
			"endDate":   time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
		},
	}
	require.NoError(t, testsupport.SeedDocuments(ctx, repo, published, draft, expired))

	now := time.Now()
	page, err := repo.Find(ctx, "banners", document.Filter{
		Status:   domain.StatusPublished,
		ActiveAt: &now,
	}, document.FindOptions{})
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	require.Equal(t, published.ID, page.Docs[0].ID)
}

func TestBunRepositoryCollectionIsolation(t *testing.T) {
	ctx := context.Background()
	repo := newBunRepository(t)

	doc := &document.Document{
		ID:         uuid.New(),
		Collection: "posts",
		Status:     domain.StatusPublished,
	}
	_, err := repo.Create(ctx, "posts", doc, document.WriteOptions{})
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, "products", doc.ID)
	require.True(t, document.IsNotFound(err))
}

func TestBunRepositoryGlobals(t *testing.T) {
	ctx := context.Background()
	repo := newBunRepository(t)

	_, err := repo.FindGlobal(ctx, "company-info")
	require.True(t, document.IsNotFound(err))

	doc := &document.Document{
		ID:     uuid.New(),
		Status: domain.StatusPublished,
		Fields: map[string]any{"hotline": "1900 1234"},
	}
	saved, err := repo.UpdateGlobal(ctx, "company-info", doc, document.WriteOptions{})
	require.NoError(t, err)
	require.Equal(t, "1900 1234", saved.Fields["hotline"])

	saved.Fields["hotline"] = "1900 5678"
	again, err := repo.UpdateGlobal(ctx, "company-info", saved, document.WriteOptions{})
	require.NoError(t, err)
	require.Equal(t, "1900 5678", again.Fields["hotline"])

	fetched, err := repo.FindGlobal(ctx, "company-info")
	require.NoError(t, err)
	require.Equal(t, "1900 5678", fetched.Fields["hotline"])
}

func TestBunRepositoryWithCache(t *testing.T) {
	ctx := context.Background()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	require.NoError(t, err)

	repo := document.NewBunRepositoryWithCache(bunDB, cacheSvc, repocache.NewDefaultKeySerializer())
	require.NoError(t, repo.EnsureSchema(ctx))

	doc := &document.Document{
		ID:         uuid.New(),
		Collection: "services",
		Status:     domain.StatusPublished,
		Fields:     map[string]any{"title": "Bảo trì"},
	}
	_, err = repo.Create(ctx, "services", doc, document.WriteOptions{})
	require.NoError(t, err)

	first, err := repo.FindByID(ctx, "services", doc.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, "services", doc.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}
