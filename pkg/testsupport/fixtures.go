package testsupport

import (
	"context"

	"github.com/luannguen/vrc-cms/internal/document"
)

// SeedDocuments writes the given documents through the repository so
// storage tests exercise the real create path instead of poking state.
func SeedDocuments(ctx context.Context, repo document.Repository, docs ...*document.Document) error {
	for _, doc := range docs {
		if _, err := repo.Create(ctx, doc.Collection, doc, document.WriteOptions{}); err != nil {
			return err
		}
	}
	return nil
}
