package btcfg

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeInstancesDescriptor(t *testing.T) {
	input := map[string]any{
		"type": "pkg.mod.ClassName",
		"a":    1,
		"b": map[string]any{
			"type": "X",
			"c":    2,
		},
	}

	got, ok := NormalizeInstances(input).(*Descriptor)
	if !ok {
		t.Fatalf("expected Descriptor, got %T", NormalizeInstances(input))
	}
	if got.Class != "ClassName" || got.ModulePath != "pkg.mod" {
		t.Errorf("unexpected descriptor identity: %q %q", got.Class, got.ModulePath)
	}
	if got.Kwargs["a"] != 1 {
		t.Errorf("expected kwarg a=1, got %v", got.Kwargs["a"])
	}

	nested, ok := got.Kwargs["b"].(*Descriptor)
	if !ok {
		t.Fatalf("expected nested Descriptor, got %T", got.Kwargs["b"])
	}
	if nested.Class != "X" || nested.ModulePath != "" {
		t.Errorf("unexpected nested descriptor identity: %q %q", nested.Class, nested.ModulePath)
	}
	if nested.Kwargs["c"] != 2 {
		t.Errorf("expected nested kwarg c=2, got %v", nested.Kwargs["c"])
	}
}

func TestNormalizeInstancesPlainMapping(t *testing.T) {
	input := map[string]any{
		"outer": map[string]any{"type": "pkg.Thing", "n": 1},
		"plain": "value",
	}

	got, ok := NormalizeInstances(input).(map[string]any)
	if !ok {
		t.Fatalf("expected mapping, got %T", NormalizeInstances(input))
	}
	if got["plain"] != "value" {
		t.Errorf("expected untouched scalar, got %v", got["plain"])
	}
	if _, ok := got["outer"].(*Descriptor); !ok {
		t.Errorf("expected nested value normalized to Descriptor, got %T", got["outer"])
	}
}

func TestNormalizeInstancesSequences(t *testing.T) {
	input := []any{
		map[string]any{"type": "A"},
		"scalar",
		Tuple{map[string]any{"type": "B"}, 7},
	}

	got, ok := NormalizeInstances(input).([]any)
	if !ok {
		t.Fatalf("expected slice, got %T", NormalizeInstances(input))
	}
	if _, ok := got[0].(*Descriptor); !ok {
		t.Errorf("expected first element normalized, got %T", got[0])
	}
	if got[1] != "scalar" {
		t.Errorf("expected order preserved, got %v", got[1])
	}
	frozen, ok := got[2].(Tuple)
	if !ok {
		t.Fatalf("expected tuple kind preserved, got %T", got[2])
	}
	if _, ok := frozen[0].(*Descriptor); !ok {
		t.Errorf("expected tuple element normalized, got %T", frozen[0])
	}
	if frozen[1] != 7 {
		t.Errorf("expected tuple scalar preserved, got %v", frozen[1])
	}
}

func TestNormalizeInstancesScalarIdentity(t *testing.T) {
	for _, value := range []any{nil, 1, 2.5, "text", true} {
		if got := NormalizeInstances(value); got != value {
			t.Errorf("expected identity for %v, got %v", value, got)
		}
	}
}

func TestNormalizeInstancesNonStringType(t *testing.T) {
	input := map[string]any{"type": 3, "a": 1}

	got, ok := NormalizeInstances(input).(map[string]any)
	if !ok {
		t.Fatalf("expected plain mapping for non-string type, got %T", NormalizeInstances(input))
	}
	if !reflect.DeepEqual(input, got) {
		t.Errorf("mapping mismatch:\nwant: %#v\n got: %#v", input, got)
	}
}

func TestDescriptorSerialization(t *testing.T) {
	descriptor := NormalizeInstances(map[string]any{"type": "pkg.Widget", "size": 3})

	data, err := json.Marshal(descriptor)
	if err != nil {
		t.Fatalf("marshal descriptor: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal descriptor: %v", err)
	}
	if doc["class"] != "Widget" || doc["module_path"] != "pkg" {
		t.Errorf("unexpected serialized identity: %v", doc)
	}
	kwargs, ok := doc["kwargs"].(map[string]any)
	if !ok || kwargs["size"] != float64(3) {
		t.Errorf("unexpected serialized kwargs: %v", doc["kwargs"])
	}
}
