package btcfg

import "sync"

// ProgramCache stores compiled script and expression programs keyed by their
// source text.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache on the Loader. The same cache is
// handed to the script runtime so repeated loads of an unchanged script skip
// recompilation.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *loaderConfig) {
		cfg.cache = cache
	}
}

// MemoryProgramCache is a ProgramCache backed by an in-process map. Safe for
// concurrent use.
type MemoryProgramCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

// NewMemoryProgramCache constructs an empty in-memory cache.
func NewMemoryProgramCache() *MemoryProgramCache {
	return &MemoryProgramCache{programs: make(map[string]any)}
}

// Get implements ProgramCache.
func (c *MemoryProgramCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.programs[key]
	return value, ok
}

// Set implements ProgramCache.
func (c *MemoryProgramCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.programs == nil {
		c.programs = make(map[string]any)
	}
	c.programs[key] = value
}
