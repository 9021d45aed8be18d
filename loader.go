package btcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// BaseKey is the reserved key naming one or more parent configuration files.
// Paths are resolved relative to the directory of the including file and the
// key is removed from the result after resolution.
const BaseKey = "_base_"

// Option configures a Loader.
type Option func(*loaderConfig)

type loaderConfig struct {
	logger       LoadLogger
	functions    *FunctionRegistry
	cache        ProgramCache
	interpolator Evaluator
	schema       *jsonschema.Schema
}

// Loader resolves configuration files into plain nested mappings.
type Loader struct {
	cfg loaderConfig
}

// New constructs a Loader with the provided options.
func New(opts ...Option) *Loader {
	cfg := loaderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Loader{cfg: cfg}
}

// Load resolves path with a default Loader.
func Load(path string) (map[string]any, error) {
	return New().Load(path)
}

// Assemble resolves path and applies backtest defaults with a default Loader.
func Assemble(path string) (map[string]any, error) {
	return New().Assemble(path)
}

func (l *Loader) logger() LoadLogger {
	if l.cfg.logger != nil {
		return l.cfg.logger
	}
	return noopLoadLogger{}
}

// Load reads the configuration at path, resolves its `_base_` chain
// depth-first, and returns the merged mapping. The file's own keys win over
// every base; earlier bases win over later ones.
func (l *Loader) Load(path string) (map[string]any, error) {
	config, err := l.load(path, nil)
	if err != nil {
		return nil, err
	}
	if l.cfg.interpolator != nil {
		return l.interpolateConfig(config)
	}
	return config, nil
}

func (l *Loader) load(path string, stack []string) (config map[string]any, err error) {
	start := time.Now()
	event := LoadEvent{ID: uuid.NewString(), Path: path}
	defer func() {
		event.Duration = time.Since(start)
		event.Err = err
		l.logger().LogLoad(event)
	}()

	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		err = fmt.Errorf("btcfg: resolve path %q: %w", path, absErr)
		return nil, err
	}
	event.Path = abs

	info, statErr := os.Stat(abs)
	switch {
	case statErr != nil && os.IsNotExist(statErr):
		err = &NotFoundError{Path: abs}
		return nil, err
	case statErr != nil:
		err = fmt.Errorf("btcfg: stat config %q: %w", abs, statErr)
		return nil, err
	case !info.Mode().IsRegular():
		err = &NotFoundError{Path: abs}
		return nil, err
	}

	for _, seen := range stack {
		if seen == abs {
			err = &CycleError{Chain: append(append([]string{}, stack...), abs)}
			return nil, err
		}
	}
	stack = append(stack, abs)

	ext := filepath.Ext(abs)
	event.Format = formatName(ext)
	switch ext {
	case ".js":
		config, err = l.loadScript(abs)
	case ".json":
		config, err = loadJSON(abs)
	case ".yaml", ".yml":
		config, err = loadYAML(abs)
	case ".hcl":
		config, err = loadHCL(abs)
	default:
		err = &UnsupportedFormatError{Path: abs, Ext: ext}
	}
	if err != nil {
		return nil, err
	}

	raw, ok := config[BaseKey]
	if !ok {
		return config, nil
	}
	delete(config, BaseKey)

	bases, baseErr := basePaths(raw)
	if baseErr != nil {
		err = baseErr
		return nil, err
	}

	dir := filepath.Dir(abs)
	for _, base := range bases {
		event.Bases = append(event.Bases, base)
		parent, loadErr := l.load(filepath.Join(dir, base), stack)
		if loadErr != nil {
			err = loadErr
			return nil, err
		}
		config = Merge(config, parent)
	}
	return config, nil
}

func basePaths(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		paths := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("btcfg: %s entries must be strings, got %T", BaseKey, item)
			}
			paths = append(paths, s)
		}
		return paths, nil
	default:
		return nil, fmt.Errorf("btcfg: %s must be a string or list of strings, got %T", BaseKey, value)
	}
}

func loadJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapLoadError("json", path, err)
	}
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, wrapLoadError("json", path, err)
	}
	if config == nil {
		config = map[string]any{}
	}
	return config, nil
}

func loadYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapLoadError("yaml", path, err)
	}
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, wrapLoadError("yaml", path, err)
	}
	if config == nil {
		config = map[string]any{}
	}
	return config, nil
}

func formatName(ext string) string {
	switch ext {
	case ".js":
		return "script"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".hcl":
		return "hcl"
	default:
		return ext
	}
}
