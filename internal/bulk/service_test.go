package bulk

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/luannguen/vrc-cms/internal/document"
	"github.com/luannguen/vrc-cms/internal/domain"
)

// faultyRepository fails deletions for a chosen set of IDs while delegating
// everything else to the wrapped store.
type faultyRepository struct {
	document.Repository
	failIDs map[uuid.UUID]error
}

func (f *faultyRepository) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	if err, ok := f.failIDs[id]; ok {
		return err
	}
	return f.Repository.Delete(ctx, collection, id)
}

func seedProducts(t *testing.T, repo *document.MemoryRepository, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		doc := &document.Document{
			ID:         uuid.New(),
			Collection: "products",
			Status:     domain.StatusPublished,
			Fields:     map[string]any{"title": "product"},
		}
		repo.Put(doc)
		ids = append(ids, doc.ID)
	}
	return ids
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func TestBulkDeleteAllSucceed(t *testing.T) {
	repo := document.NewMemoryRepository()
	ids := seedProducts(t, repo, 3)

	deleter, err := NewDeleter(repo, 4)
	if err != nil {
		t.Fatalf("new deleter: %v", err)
	}
	defer deleter.Close()

	result, err := deleter.BulkDelete(context.Background(), "products", idStrings(ids))
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if result.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", result.Status)
	}
	if result.SuccessCount() != 3 || result.FailureCount() != 0 {
		t.Fatalf("expected 3 successes and 0 failures, got %d/%d", result.SuccessCount(), result.FailureCount())
	}

	for _, id := range ids {
		if _, err := repo.FindByID(context.Background(), "products", id); !document.IsNotFound(err) {
			t.Fatalf("expected %s to be deleted, got err %v", id, err)
		}
	}
}

func TestBulkDeletePartialFailure(t *testing.T) {
	repo := document.NewMemoryRepository()
	ids := seedProducts(t, repo, 3)

	faulty := &faultyRepository{
		Repository: repo,
		failIDs:    map[uuid.UUID]error{ids[1]: errors.New("constraint violation")},
	}

	deleter, err := NewDeleter(faulty, 4)
	if err != nil {
		t.Fatalf("new deleter: %v", err)
	}
	defer deleter.Close()

	result, err := deleter.BulkDelete(context.Background(), "products", idStrings(ids))
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if result.Status != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", result.Status)
	}
	if result.SuccessCount() != 2 {
		t.Fatalf("expected 2 successes, got %d", result.SuccessCount())
	}
	if result.FailureCount() != 1 {
		t.Fatalf("expected 1 failure, got %d", result.FailureCount())
	}
	if result.Failed[0].ID != ids[1].String() {
		t.Fatalf("expected failure for %s, got %s", ids[1], result.Failed[0].ID)
	}
	if result.Failed[0].Reason != "constraint violation" {
		t.Fatalf("unexpected failure reason %q", result.Failed[0].Reason)
	}
}

func TestBulkDeleteAllFail(t *testing.T) {
	repo := document.NewMemoryRepository()
	ids := seedProducts(t, repo, 2)

	faulty := &faultyRepository{
		Repository: repo,
		failIDs: map[uuid.UUID]error{
			ids[0]: errors.New("disk full"),
			ids[1]: errors.New("disk full"),
		},
	}

	deleter, err := NewDeleter(faulty, 4)
	if err != nil {
		t.Fatalf("new deleter: %v", err)
	}
	defer deleter.Close()

	result, err := deleter.BulkDelete(context.Background(), "products", idStrings(ids))
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if result.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", result.Status)
	}
	if result.SuccessCount() != 0 || result.FailureCount() != 2 {
		t.Fatalf("expected 0/2, got %d/%d", result.SuccessCount(), result.FailureCount())
	}
}

func TestBulkDeleteNoIDs(t *testing.T) {
	deleter, err := NewDeleter(document.NewMemoryRepository(), 4)
	if err != nil {
		t.Fatalf("new deleter: %v", err)
	}
	defer deleter.Close()

	result, err := deleter.BulkDelete(context.Background(), "products", nil)
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if result.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", result.Status)
	}
}

func TestBulkDeleteNothingToDelete(t *testing.T) {
	deleter, err := NewDeleter(document.NewMemoryRepository(), 4)
	if err != nil {
		t.Fatalf("new deleter: %v", err)
	}
	defer deleter.Close()

	result, err := deleter.BulkDelete(context.Background(), "products", []string{
		uuid.NewString(),
		"not-a-uuid",
	})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if result.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", result.Status)
	}
	if result.SuccessCount() != 0 || result.FailureCount() != 0 {
		t.Fatalf("expected empty result, got %d/%d", result.SuccessCount(), result.FailureCount())
	}
}

func TestBulkDeleteSkipsUnknownIDs(t *testing.T) {
	repo := document.NewMemoryRepository()
	ids := seedProducts(t, repo, 1)

	deleter, err := NewDeleter(repo, 4)
	if err != nil {
		t.Fatalf("new deleter: %v", err)
	}
	defer deleter.Close()

	raw := append(idStrings(ids), uuid.NewString(), "garbage")
	result, err := deleter.BulkDelete(context.Background(), "products", raw)
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if result.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", result.Status)
	}
	if result.SuccessCount() != 1 {
		t.Fatalf("expected exactly the seeded doc deleted, got %d", result.SuccessCount())
	}
}

func TestBulkDeleteMissingCollection(t *testing.T) {
	deleter, err := NewDeleter(document.NewMemoryRepository(), 4)
	if err != nil {
		t.Fatalf("new deleter: %v", err)
	}
	defer deleter.Close()

	if _, err := deleter.BulkDelete(context.Background(), "", []string{uuid.NewString()}); !errors.Is(err, ErrCollectionRequired) {
		t.Fatalf("expected ErrCollectionRequired, got %v", err)
	}
}
