package faker

import (
	"time"

	"github.com/goliatone/go-faker/mersenne"
	"github.com/goliatone/go-faker/pkg/activity"
)

// DefaultLocale is used for both the active and the fallback locale when no
// option overrides them.
const DefaultLocale = "en"

// RuleContext carries inputs needed when evaluating an expression.
type RuleContext struct {
	Locale    string
	Now       *time.Time
	Args      map[string]any
	Metadata  map[string]any
	Functions *FunctionRegistry
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx RuleContext) localeLabel() string {
	if ctx.Locale != "" {
		return ctx.Locale
	}
	return "unknown"
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct {
	functions *FunctionRegistry
}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// CompileWithFunctions binds registry into the compiled rule on top of the
// evaluator's own functions. Functions passed at evaluation still win.
func CompileWithFunctions(registry *FunctionRegistry) CompileOption {
	return compileOptionFunc(func(cfg *compileConfig) {
		cfg.functions = registry.Clone()
	})
}

func applyCompileOptions(opts []CompileOption) compileConfig {
	var cfg compileConfig
	for _, opt := range opts {
		if opt != nil {
			opt.applyCompileOption(&cfg)
		}
	}
	return cfg
}

// compileFunctions returns the functions a rule compiled from base with opts
// should see.
func compileFunctions(base *FunctionRegistry, opts []CompileOption) *FunctionRegistry {
	cfg := applyCompileOptions(opts)
	if cfg.functions == nil {
		return base
	}
	return base.Overlay(cfg.functions)
}

// Option configures a Faker or a Resolver.
type Option func(*config)

type config struct {
	locale         string
	fallbackLocale string
	strictLocales  bool
	seed           *mersenne.Seed
	schema         map[Category][]string
	evaluator      Evaluator
	evaluatorName  string
	programCache   ProgramCache
	functions      *FunctionRegistry
	logger         EvaluatorLogger
	resolveLogger  ResolveLogger
	activityHooks  activity.Hooks
	activityConfig activity.Config
}

func applyOptions(opts []Option) config {
	cfg := config{
		locale:         DefaultLocale,
		fallbackLocale: DefaultLocale,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLocale selects the initial active locale.
func WithLocale(code string) Option {
	return func(cfg *config) {
		if code != "" {
			cfg.locale = code
		}
	}
}

// WithFallbackLocale selects the locale consulted when the active one lacks a
// definition. Its pack must be complete over the registered schema.
func WithFallbackLocale(code string) Option {
	return func(cfg *config) {
		if code != "" {
			cfg.fallbackLocale = code
		}
	}
}

// WithStrictLocales makes SetLocale reject codes without a loaded pack.
func WithStrictLocales(strict bool) Option {
	return func(cfg *config) {
		cfg.strictLocales = strict
	}
}

// WithSeed seeds the engine deterministically. Without it the engine is seeded
// from system entropy.
func WithSeed(seed mersenne.Seed) Option {
	return func(cfg *config) {
		s := seed
		cfg.seed = &s
	}
}

// WithSchema replaces the declared schema registered by New. Properties are
// copied.
func WithSchema(schema map[Category][]string) Option {
	return func(cfg *config) {
		if schema == nil {
			cfg.schema = nil
			return
		}
		cfg.schema = make(map[Category][]string, len(schema))
		for category, properties := range schema {
			cfg.schema[category] = append([]string(nil), properties...)
		}
	}
}

// WithEvaluator configures the expression engine used by Fake and Evaluate.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = e
	}
}

func (cfg config) evaluatorLogger() EvaluatorLogger {
	if cfg.logger != nil {
		return cfg.logger
	}
	return noopEvaluatorLogger{}
}

func (cfg config) resolveLoggerOrNoop() ResolveLogger {
	if cfg.resolveLogger != nil {
		return cfg.resolveLogger
	}
	return noopResolveLogger{}
}
