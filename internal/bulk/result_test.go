package bulk

import (
	"net/http"
	"testing"
)

func TestRenderAdminShape(t *testing.T) {
	result := &Result{
		Status:    http.StatusMultiStatus,
		Message:   "partially deleted",
		Succeeded: []string{"a", "b"},
		Failed:    []FailureDetail{{ID: "c", Reason: "boom"}},
	}

	status, body := result.Render(CallerAdmin)
	if status != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", status)
	}
	if _, ok := body["success"]; ok {
		t.Fatal("admin shape must not carry a success flag")
	}
	docs, ok := body["docs"].([]map[string]any)
	if !ok || len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %v", body["docs"])
	}
	errs, ok := body["errors"].([]map[string]any)
	if !ok || len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", body["errors"])
	}
	if errs[0]["id"] != "c" || errs[0]["message"] != "boom" {
		t.Fatalf("unexpected error entry %v", errs[0])
	}
}

func TestRenderAPIShapeSuccess(t *testing.T) {
	result := &Result{
		Status:    http.StatusOK,
		Message:   "deleted",
		Succeeded: []string{"a"},
	}

	status, body := result.Render(CallerAPI)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body["success"])
	}
	if body["message"] != "deleted" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if body["totalDocs"] != 1 {
		t.Fatalf("expected totalDocs 1, got %v", body["totalDocs"])
	}
	if _, ok := body["errors"]; ok {
		t.Fatal("clean success must omit errors")
	}
}

func TestRenderAPIShapePartial(t *testing.T) {
	result := &Result{
		Status:    http.StatusMultiStatus,
		Message:   "partially deleted",
		Succeeded: []string{"a"},
		Failed:    []FailureDetail{{ID: "b", Reason: "boom"}},
	}

	status, body := result.Render(CallerAPI)
	if status != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", status)
	}
	if body["success"] != true {
		t.Fatalf("partial delete still reports success, got %v", body["success"])
	}
	errs, ok := body["errors"].([]map[string]any)
	if !ok || len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", body["errors"])
	}
}

func TestRenderAPIShapeValidation(t *testing.T) {
	result := validationResult("no IDs supplied")

	status, body := result.Render(CallerAPI)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["success"] != false {
		t.Fatalf("expected success false, got %v", body["success"])
	}
	errs, ok := body["errors"].([]map[string]any)
	if !ok || len(errs) != 1 {
		t.Fatalf("expected synthesized error entry, got %v", body["errors"])
	}
	if errs[0]["message"] != "no IDs supplied" {
		t.Fatalf("unexpected message %v", errs[0]["message"])
	}
}

func TestRenderAdminShapeValidation(t *testing.T) {
	status, body := validationResult("no IDs supplied").Render(CallerAdmin)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	docs, ok := body["docs"].([]map[string]any)
	if !ok || len(docs) != 0 {
		t.Fatalf("expected empty docs, got %v", body["docs"])
	}
	errs, ok := body["errors"].([]map[string]any)
	if !ok || len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", body["errors"])
	}
}
