package bulk

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/luannguen/vrc-cms/internal/document"
	"github.com/luannguen/vrc-cms/internal/logging"
	"github.com/luannguen/vrc-cms/pkg/interfaces"
)

const defaultPoolSize = 16

var ErrCollectionRequired = errors.New("bulk: collection is required")

// Deleter performs bulk deletions with per-ID failure isolation. Deletes
// run concurrently through a bounded worker pool; every attempted ID is
// reported exactly once whether it succeeded or failed.
type Deleter struct {
	repo   document.Repository
	pool   *ants.Pool
	logger interfaces.Logger
}

// Option configures the deleter at construction time.
type Option func(*Deleter)

// WithLoggerProvider wires module-scoped logging into the deleter.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *Deleter) {
		d.logger = logging.BulkLogger(provider)
	}
}

// NewDeleter constructs a Deleter with a worker pool of the given size.
func NewDeleter(repo document.Repository, poolSize int, opts ...Option) (*Deleter, error) {
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	d := &Deleter{
		repo:   repo,
		pool:   pool,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Close releases the worker pool.
func (d *Deleter) Close() {
	if d.pool != nil {
		d.pool.Release()
	}
}

// BulkDelete deletes the requested IDs from the collection. Only IDs that
// exist are attempted; missing or unparseable IDs are excluded silently.
// The returned Result distinguishes all-succeeded (200), partial (207),
// all-failed (500), nothing-to-delete (200) and no-IDs-supplied (400).
// The error return is reserved for top-level repository failures.
func (d *Deleter) BulkDelete(ctx context.Context, collection string, rawIDs []string) (*Result, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}

	if len(rawIDs) == 0 {
		return validationResult("no IDs supplied"), nil
	}

	requested := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			// Malformed tokens cannot match a stored document; treat them
			// like non-existent IDs rather than failing the batch.
			continue
		}
		requested = append(requested, id)
	}

	verified, err := d.verify(ctx, collection, requested)
	if err != nil {
		return nil, err
	}
	if len(verified) == 0 {
		return &Result{Status: http.StatusOK, Message: "nothing to delete"}, nil
	}

	succeeded, failed := d.deleteAll(ctx, collection, verified)

	result := &Result{Succeeded: succeeded, Failed: failed}
	switch {
	case len(failed) == 0:
		result.Status = http.StatusOK
		result.Message = "deleted"
	case len(succeeded) == 0:
		result.Status = http.StatusInternalServerError
		result.Message = "all deletions failed"
	default:
		result.Status = http.StatusMultiStatus
		result.Message = "partially deleted"
	}

	d.logger.Info("bulk.delete.done",
		"collection", collection,
		"requested", len(rawIDs),
		"attempted", len(verified),
		"succeeded", len(succeeded),
		"failed", len(failed),
	)
	return result, nil
}

// verify returns the subset of requested IDs that exist in the collection.
func (d *Deleter) verify(ctx context.Context, collection string, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	page, err := d.repo.Find(ctx, collection, document.Filter{IDs: ids}, document.FindOptions{})
	if err != nil {
		return nil, err
	}
	existing := make(map[uuid.UUID]struct{}, len(page.Docs))
	for _, doc := range page.Docs {
		existing[doc.ID] = struct{}{}
	}
	verified := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := existing[id]; ok {
			verified = append(verified, id)
		}
	}
	return verified, nil
}

// deleteAll issues one delete per ID through the pool and waits for every
// outcome. Settle-all semantics: one failure never cancels the rest.
func (d *Deleter) deleteAll(ctx context.Context, collection string, ids []uuid.UUID) ([]string, []FailureDetail) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		succeeded []string
		failed    []FailureDetail
	)

	for _, id := range ids {
		wg.Add(1)
		task := func() {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				mu.Lock()
				failed = append(failed, FailureDetail{ID: id.String(), Reason: "deadline exceeded"})
				mu.Unlock()
				return
			}

			err := d.repo.Delete(ctx, collection, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, FailureDetail{ID: id.String(), Reason: err.Error()})
				return
			}
			succeeded = append(succeeded, id.String())
		}
		if err := d.pool.Submit(task); err != nil {
			// Pool saturated or closed: run inline so the ID is still
			// attempted and reported.
			task()
		}
	}
	wg.Wait()

	sort.Strings(succeeded)
	sort.Slice(failed, func(i, j int) bool { return failed[i].ID < failed[j].ID })
	return succeeded, failed
}
