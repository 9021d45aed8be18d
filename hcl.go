package btcfg

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// loadHCL parses an attribute-only HCL document into a configuration mapping.
func loadHCL(path string) (map[string]any, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapLoadError("hcl", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, wrapLoadError("hcl", path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, wrapLoadError("hcl", path, diags)
	}

	config := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, wrapLoadError("hcl", path, diags)
		}
		native, err := ctyToNative(value)
		if err != nil {
			return nil, wrapLoadError("hcl", path, fmt.Errorf("attribute %q: %w", name, err))
		}
		config[name] = native
	}
	return config, nil
}

// ctyToNative recursively converts a cty.Value into its plain Go counterpart
// so HCL configs merge and normalize like every other format.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("convert number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, fmt.Errorf("convert bool: %w", err)
		}
		return b, nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, item := it.Element()
			native, err := ctyToNative(item)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		mapped := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, item := it.Element()
			native, err := ctyToNative(item)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", key.AsString(), err)
			}
			mapped[key.AsString()] = native
		}
		return mapped, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
