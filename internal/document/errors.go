package document

import (
	"errors"
	"fmt"
)

var (
	ErrCollectionRequired = errors.New("document: collection is required")
	ErrDocumentRequired   = errors.New("document: document is required")
	ErrGlobalSlugRequired = errors.New("document: global slug is required")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a repository not-found outcome.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// RepositoryError wraps unexpected store failures. Callers treat it as
// fatal for the unit of work it surfaced from; retries are a caller policy.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("document repository: %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// IsRepositoryError reports whether err is an unexpected store failure.
func IsRepositoryError(err error) bool {
	var repoErr *RepositoryError
	return errors.As(err, &repoErr)
}
