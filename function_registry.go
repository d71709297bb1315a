package faker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
)

// Function represents a callable exposed to expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom functions keyed by lower-cased name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]boundFunction
}

// boundFunction pairs a function with the identity it received at
// registration. Clones and overlays keep the identity.
type boundFunction struct {
	fn Function
	id uint64
}

var functionIDs atomic.Uint64

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]boundFunction),
	}
}

// Register stores fn under name. Names are matched case-insensitively and
// must be valid identifiers in the expression languages: a letter or
// underscore followed by letters, digits or underscores.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("faker: function %q is nil", name)
	}
	if err := validateFunctionName(name); err != nil {
		return err
	}
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]boundFunction)
	}
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("faker: function %q already registered", name)
	}
	r.functions[key] = boundFunction{fn: fn, id: functionIDs.Add(1)}
	return nil
}

func validateFunctionName(name string) error {
	if name == "" {
		return fmt.Errorf("faker: function name must not be empty")
	}
	for i, ch := range name {
		switch {
		case ch == '_', unicode.IsLetter(ch):
		case unicode.IsDigit(ch) && i > 0:
		default:
			return fmt.Errorf("faker: function name %q is not an identifier", name)
		}
	}
	return nil
}

// Has reports whether name is registered.
func (r *FunctionRegistry) Has(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.functions[strings.ToLower(name)]
	return ok
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]boundFunction, len(r.functions)),
	}
	for name, bound := range r.functions {
		clone.functions[name] = bound
	}
	return clone
}

// Overlay returns a new registry holding r's functions replaced or extended by
// those of top. Either side may be nil.
func (r *FunctionRegistry) Overlay(top *FunctionRegistry) *FunctionRegistry {
	merged := r.Clone()
	if merged == nil {
		merged = NewFunctionRegistry()
	}
	if top == nil {
		return merged
	}
	top.mu.RLock()
	defer top.mu.RUnlock()
	for name, bound := range top.functions {
		merged.functions[name] = bound
	}
	return merged
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("faker: function registry is nil")
	}
	r.mu.RLock()
	bound, ok := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("faker: function %q not registered", name)
	}
	return bound.fn(args...)
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

// bindingKey identifies the exact functions held, not just their names. Two
// registries share a key only when every name maps to the same registration.
func (r *FunctionRegistry) bindingKey() string {
	if r == nil {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	parts := make([]string, 0, len(r.functions))
	for name, bound := range r.functions {
		parts = append(parts, name+"#"+strconv.FormatUint(bound.id, 10))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// WithFunctionRegistry exposes registry's functions to expressions alongside
// the built-ins. Entries with a built-in name replace it.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *config) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

// scopedFunctions joins evaluator-level functions with the per-call ones
// carried by ctx; the latter win.
func scopedFunctions(base *FunctionRegistry, ctx RuleContext) *FunctionRegistry {
	if base == nil && ctx.Functions == nil {
		return nil
	}
	if ctx.Functions == nil {
		return base
	}
	if base == nil {
		return ctx.Functions
	}
	return base.Overlay(ctx.Functions)
}

// expressionEnv builds the globals seen by expr and JS expressions. Each
// registered function gets its own entry next to the call(name, ...) helper.
func expressionEnv(ctx RuleContext, registry *FunctionRegistry) map[string]any {
	env := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
	if registry == nil {
		return env
	}
	env["call"] = func(name string, arguments ...any) (any, error) {
		return registry.Call(name, arguments...)
	}
	for _, name := range registry.Names() {
		fn := name
		env[fn] = func(arguments ...any) (any, error) {
			return registry.Call(fn, arguments...)
		}
	}
	return env
}
