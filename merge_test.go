package btcfg

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type mergeFixture struct {
	Description string             `json:"description"`
	Cases       []mergeFixtureCase `json:"cases"`
}

type mergeFixtureCase struct {
	Name    string         `json:"name"`
	Overlay map[string]any `json:"overlay"`
	Base    map[string]any `json:"base"`
	Expect  map[string]any `json:"expect"`
}

func loadMergeFixture(t *testing.T, name string) mergeFixture {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	var fx mergeFixture
	if err := json.Unmarshal(data, &fx); err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return fx
}

func TestMergeFromFixture(t *testing.T) {
	fx := loadMergeFixture(t, "merge_cases.json")

	for _, tc := range fx.Cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			got := Merge(tc.Overlay, tc.Base)
			if !reflect.DeepEqual(tc.Expect, got) {
				t.Errorf("merged mapping mismatch:\nwant: %#v\n got: %#v", tc.Expect, got)
			}
		})
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	overlay := map[string]any{"y": map[string]any{"q": 2, DeleteKey: false}}
	base := map[string]any{"x": 1, "y": map[string]any{"p": 1}}

	wantOverlay := map[string]any{"y": map[string]any{"q": 2, DeleteKey: false}}
	wantBase := map[string]any{"x": 1, "y": map[string]any{"p": 1}}

	got := Merge(overlay, base)

	if !reflect.DeepEqual(wantOverlay, overlay) {
		t.Errorf("overlay mutated: %#v", overlay)
	}
	if !reflect.DeepEqual(wantBase, base) {
		t.Errorf("base mutated: %#v", base)
	}

	want := map[string]any{"x": 1, "y": map[string]any{"p": 1, "q": 2}}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("merged mapping mismatch:\nwant: %#v\n got: %#v", want, got)
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %#v", got)
	}
	if got := Merge(map[string]any{"a": 1}, nil); !reflect.DeepEqual(map[string]any{"a": 1}, got) {
		t.Fatalf("expected overlay-only result, got %#v", got)
	}
	if got := Merge(nil, map[string]any{"b": 2}); !reflect.DeepEqual(map[string]any{"b": 2}, got) {
		t.Fatalf("expected base-only result, got %#v", got)
	}
}
