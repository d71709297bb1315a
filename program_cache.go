package faker

import (
	"strings"
	"sync"
)

// ProgramCache stores compiled expression programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MapProgramCache is an unbounded ProgramCache safe for concurrent use.
type MapProgramCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

// NewMapProgramCache returns an empty cache.
func NewMapProgramCache() *MapProgramCache {
	return &MapProgramCache{programs: map[string]any{}}
}

// Get implements ProgramCache.
func (c *MapProgramCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	program, ok := c.programs[key]
	return program, ok
}

// Set implements ProgramCache.
func (c *MapProgramCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.programs == nil {
		c.programs = map[string]any{}
	}
	c.programs[key] = value
}

// Len reports the number of cached programs.
func (c *MapProgramCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.programs)
}

// WithProgramCache shares compiled programs across evaluations of the default
// evaluator.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *config) {
		cfg.programCache = cache
	}
}

// programKey namespaces a cached program by engine and by the function set it
// was compiled against, so one cache can serve every evaluator. Engines that
// read functions from the run-time env key by names only.
func programKey(engine, expression string, registry *FunctionRegistry) string {
	return engine + ":" + strings.Join(registry.Names(), ",") + ":" + expression
}

// boundProgramKey keys programs that capture their functions at compile time,
// so a program is never reused with another registration's closures.
func boundProgramKey(engine, expression string, registry *FunctionRegistry) string {
	return engine + ":" + registry.bindingKey() + ":" + expression
}
