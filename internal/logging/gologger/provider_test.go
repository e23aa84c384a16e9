package gologger

import (
	"testing"

	"github.com/luannguen/vrc-cms/pkg/interfaces"
)

func TestNewProviderRejectsUnknownLevel(t *testing.T) {
	if _, err := NewProvider(Config{Level: "verbose"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewProviderAcceptsKnownSettings(t *testing.T) {
	provider, err := NewProvider(Config{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	logger := provider.GetLogger("vrc.test")
	if logger == nil {
		t.Fatal("expected a logger")
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		t.Fatal("expected the adapter to support structured fields")
	}
	scoped := fieldsLogger.WithFields(map[string]any{"component": "test"})
	if scoped == nil {
		t.Fatal("expected a scoped logger")
	}
}

func TestNilProviderYieldsNoOp(t *testing.T) {
	var provider *Provider
	logger := provider.GetLogger("vrc.test")
	if logger == nil {
		t.Fatal("nil provider must still yield a usable logger")
	}
	logger.Info("noop")
}
