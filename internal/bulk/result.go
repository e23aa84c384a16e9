package bulk

import "net/http"

// CallerClass selects which of the two response shapes a caller expects.
type CallerClass int

const (
	// CallerAPI is a generic API consumer expecting the
	// {success, message, docs, totalDocs, errors?} envelope.
	CallerAPI CallerClass = iota
	// CallerAdmin is the admin UI expecting the {docs, errors} envelope.
	CallerAdmin
)

// FailureDetail records one ID whose deletion failed, with a reason the
// caller can act on.
type FailureDetail struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Result is the canonical outcome of one bulk mutation. It is constructed
// fresh per request and never persisted; both response shapes render from
// it so the batch logic exists exactly once.
type Result struct {
	Status    int
	Message   string
	Succeeded []string
	Failed    []FailureDetail
}

// SuccessCount reports how many deletions completed.
func (r *Result) SuccessCount() int { return len(r.Succeeded) }

// FailureCount reports how many deletions failed.
func (r *Result) FailureCount() int { return len(r.Failed) }

// validationResult builds the 400 outcome for requests carrying no IDs.
func validationResult(message string) *Result {
	return &Result{Status: http.StatusBadRequest, Message: message}
}

// Render produces the response body for the given caller class. Every
// branch, error branches included, yields a structurally valid body for
// that class.
func (r *Result) Render(class CallerClass) (int, map[string]any) {
	if class == CallerAdmin {
		body := map[string]any{
			"docs":   docRefs(r.Succeeded),
			"errors": errorList(r),
		}
		return r.Status, body
	}

	body := map[string]any{
		"success":   r.Status < http.StatusBadRequest || r.Status == http.StatusMultiStatus,
		"message":   r.Message,
		"docs":      docRefs(r.Succeeded),
		"totalDocs": len(r.Succeeded),
	}
	if len(r.Failed) > 0 || r.Status >= http.StatusBadRequest {
		body["errors"] = errorList(r)
	}
	return r.Status, body
}

func docRefs(ids []string) []map[string]any {
	docs := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, map[string]any{"id": id})
	}
	return docs
}

func errorList(r *Result) []map[string]any {
	errs := make([]map[string]any, 0, len(r.Failed)+1)
	for _, failure := range r.Failed {
		errs = append(errs, map[string]any{"id": failure.ID, "message": failure.Reason})
	}
	if len(errs) == 0 && r.Status >= http.StatusBadRequest && r.Status != http.StatusMultiStatus {
		errs = append(errs, map[string]any{"message": r.Message})
	}
	return errs
}
