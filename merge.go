package btcfg

// DeleteKey marks an overlay mapping as a replacement rather than a merge
// target. When a nested overlay mapping carries a truthy DeleteKey entry, the
// base's value for that key is discarded instead of being merged beneath it.
const DeleteKey = "_delete_"

// Merge deep-merges overlay onto base and returns a new mapping. Nested
// mappings present on both sides are merged key-by-key with overlay winning
// scalar conflicts; every other overlay value replaces the base entry. Base
// keys absent from overlay are preserved. Neither input is mutated.
func Merge(overlay, base map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}

	for key, value := range overlay {
		nested, ok := value.(map[string]any)
		if !ok {
			merged[key] = stripDeleteMarkers(value)
			continue
		}

		replace := truthy(nested[DeleteKey])
		if existing, ok := merged[key].(map[string]any); ok && !replace {
			merged[key] = Merge(withoutKey(nested, DeleteKey), existing)
			continue
		}
		merged[key] = stripDeleteMarkers(nested)
	}
	return merged
}

// stripDeleteMarkers removes DeleteKey entries from an overlay subtree that is
// adopted into the result wholesale, so markers never reach merged output even
// when there is no base value to merge against.
func stripDeleteMarkers(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			if key == DeleteKey {
				continue
			}
			out[key] = stripDeleteMarkers(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = stripDeleteMarkers(item)
		}
		return out
	default:
		return value
	}
}

func withoutKey(m map[string]any, key string) map[string]any {
	if _, ok := m[key]; !ok {
		return m
	}
	out := make(map[string]any, len(m)-1)
	for k, v := range m {
		if k == key {
			continue
		}
		out[k] = v
	}
	return out
}

// truthy mirrors the loose boolean coercion base configs use for markers.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
