package btcfg

import (
	"strings"
	"testing"
)

func TestFunctionRegistryRejectsDuplicate(t *testing.T) {
	registry := NewFunctionRegistry()
	fn := func(args ...any) (any, error) { return nil, nil }

	if err := registry.Register("dup", fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := registry.Register("dup", fn)
	if err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("expected duplicate error, got %q", err.Error())
	}
}

func TestFunctionRegistrySetOverwrites(t *testing.T) {
	registry := NewFunctionRegistry()
	registry.Set("which", func(args ...any) (any, error) { return "first", nil })
	registry.Set("which", func(args ...any) (any, error) { return "second", nil })

	got, err := registry.Call("which")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "second" {
		t.Errorf("expected later registration to win, got %v", got)
	}
}

func TestWithFunctionLastWins(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.js", "var tag = which();")

	loader := New(
		WithFunction("which", func(args ...any) (any, error) { return "first", nil }),
		WithFunction("which", func(args ...any) (any, error) { return "second", nil }),
	)

	got, err := loader.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["tag"] != "second" {
		t.Errorf("expected later registration to win, got %v", got["tag"])
	}
}
