package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

type noteMessage struct {
	Note string
}

func (noteMessage) Type() string { return "vrc.test.note" }

func (m noteMessage) Validate() error {
	if m.Note == "" {
		return validation.Errors{
			"note": validation.NewError("vrc.test.note_required", "note is required"),
		}
	}
	return nil
}

func TestHandlerExecutesFunction(t *testing.T) {
	var got string
	handler := NewHandler(func(_ context.Context, msg noteMessage) error {
		got = msg.Note
		return nil
	})

	if err := handler.Execute(context.Background(), noteMessage{Note: "hello"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected handler to receive message, got %q", got)
	}
}

func TestHandlerWrapsValidationFailure(t *testing.T) {
	handler := NewHandler(func(context.Context, noteMessage) error {
		t.Fatal("exec must not run on invalid message")
		return nil
	})

	err := handler.Execute(context.Background(), noteMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestHandlerWrapsExecutionFailure(t *testing.T) {
	boom := errors.New("boom")
	handler := NewHandler(func(context.Context, noteMessage) error {
		return boom
	})

	err := handler.Execute(context.Background(), noteMessage{Note: "x"})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerHonoursTimeout(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, _ noteMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return errors.New("timeout never fired")
		}
	}, WithTimeout[noteMessage](10*time.Millisecond))

	err := handler.Execute(context.Background(), noteMessage{Note: "slow"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
