package btcfg

import (
	"fmt"
	"sort"
	"sync"
)

// HostFunc is a host function exposed to script configs and interpolation
// expressions.
type HostFunc func(args ...any) (any, error)

// FunctionRegistry stores host functions keyed by name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]HostFunc
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]HostFunc),
	}
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn HostFunc) error {
	if fn == nil {
		return fmt.Errorf("btcfg: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("btcfg: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]HostFunc)
	}
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("btcfg: function %q already registered", name)
	}
	r.functions[name] = fn
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]HostFunc, len(r.functions)),
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Set stores fn under name, replacing any existing registration. Nil
// functions and empty names are ignored.
func (r *FunctionRegistry) Set(name string, fn HostFunc) {
	if r == nil || fn == nil || name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]HostFunc)
	}
	r.functions[name] = fn
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("btcfg: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[name]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("btcfg: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithFunctions configures the Loader to expose registry to script configs
// and interpolation expressions.
func WithFunctions(registry *FunctionRegistry) Option {
	return func(cfg *loaderConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithFunction registers fn under name on the Loader. Repeated options for
// the same name overwrite earlier ones, last registration winning; use
// WithFunctions with an explicit registry when a duplicate name should be an
// error.
func WithFunction(name string, fn HostFunc) Option {
	return func(cfg *loaderConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		cfg.functions.Set(name, fn)
	}
}
