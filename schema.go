package btcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// WithSchema validates every assembled configuration against schema.
func WithSchema(schema *jsonschema.Schema) Option {
	return func(cfg *loaderConfig) {
		cfg.schema = schema
	}
}

// CompileSchema compiles the JSON Schema document at path for use with
// WithSchema.
func CompileSchema(path string) (*jsonschema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("btcfg: read schema %q: %w", path, err)
	}
	return CompileSchemaString(filepath.Base(path), string(data))
}

// CompileSchemaString compiles a JSON Schema document from source.
func CompileSchemaString(name, source string) (*jsonschema.Schema, error) {
	if name == "" {
		name = "schema.json"
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("btcfg: invalid schema: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("btcfg: invalid schema: %w", err)
	}
	return schema, nil
}

// validateSchema checks config against schema. The mapping is round-tripped
// through JSON so tuples and numeric values take the shapes the validator
// understands.
func validateSchema(schema *jsonschema.Schema, config map[string]any) error {
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("btcfg: encode config for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("btcfg: decode config for validation: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("btcfg: config failed schema validation: %w", err)
	}
	return nil
}
