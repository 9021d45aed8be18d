package btcfg

import "strings"

// TypeKey tags a mapping as an instantiation descriptor. Its value is a
// dotted class path such as "pkg.mod.ClassName".
const TypeKey = "type"

// Descriptor describes how to construct an object: the class name, the module
// path that provides it, and recursively normalized keyword arguments. It
// serializes as {class, module_path, kwargs} for the external constructor.
type Descriptor struct {
	Class      string         `json:"class" yaml:"class"`
	ModulePath string         `json:"module_path" yaml:"module_path"`
	Kwargs     map[string]any `json:"kwargs" yaml:"kwargs"`
}

// NormalizeInstances walks value and rewrites every mapping carrying a string
// `type` key into a Descriptor, splitting the type name on its last dot into
// module path and class (no dot means an empty module path). Mappings with a
// non-string `type` are left as plain mappings. Sequences are rebuilt with
// normalized elements and their kind preserved; scalars pass through
// unchanged.
func NormalizeInstances(value any) any {
	switch v := value.(type) {
	case map[string]any:
		typeName, ok := v[TypeKey].(string)
		if !ok {
			out := make(map[string]any, len(v))
			for key, item := range v {
				out[key] = NormalizeInstances(item)
			}
			return out
		}

		modulePath, className := splitTypeName(typeName)
		kwargs := make(map[string]any, len(v)-1)
		for key, item := range v {
			if key == TypeKey {
				continue
			}
			kwargs[key] = NormalizeInstances(item)
		}
		return &Descriptor{
			Class:      className,
			ModulePath: modulePath,
			Kwargs:     kwargs,
		}
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = NormalizeInstances(item)
		}
		return out
	case Tuple:
		out := make(Tuple, len(v))
		for i, item := range v {
			out[i] = NormalizeInstances(item)
		}
		return out
	default:
		return value
	}
}

func splitTypeName(name string) (modulePath, className string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}
