//go:build js_eval

package faker

import (
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// ErrJSTimeout indicates a JS expression interrupted after its time budget.
var ErrJSTimeout = errors.New("faker: js evaluation timed out")

type jsEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
	timeout  time.Duration
}

// NewJSEvaluator constructs an Evaluator backed by goja. Each evaluation runs
// in a fresh runtime, interrupted once the configured timeout elapses.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	cfg := applyJSEvaluatorOptions(opts)
	return &jsEvaluator{
		cache:    cfg.cache,
		registry: cfg.registry,
		timeout:  cfg.timeout,
	}
}

func (e *jsEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	rule, err := e.compile(expression, e.registry)
	if err != nil {
		return nil, wrapEvaluationError(EngineJS, expression, ctx.localeLabel(), err)
	}
	return rule.Evaluate(ctx)
}

func (e *jsEvaluator) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	rule, err := e.compile(expression, compileFunctions(e.registry, opts))
	if err != nil {
		return nil, wrapEvaluationError(EngineJS, expression, "", err)
	}
	return rule, nil
}

func (e *jsEvaluator) compile(expression string, registry *FunctionRegistry) (*jsCompiledRule, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	key := programKey(EngineJS, expression, nil)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(*goja.Program); ok {
				return &jsCompiledRule{evaluator: e, registry: registry, expression: expression, program: program}, nil
			}
		}
	}
	program, err := goja.Compile("", fmt.Sprintf("(function(){ return (%s); })()", expression), false)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return &jsCompiledRule{evaluator: e, registry: registry, expression: expression, program: program}, nil
}

type jsCompiledRule struct {
	evaluator  *jsEvaluator
	registry   *FunctionRegistry
	expression string
	program    *goja.Program
}

func (r *jsCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	ctx = ctx.withDefaults()
	vm := goja.New()
	for name, value := range expressionEnv(ctx, scopedFunctions(r.registry, ctx)) {
		if err := vm.Set(name, value); err != nil {
			return nil, wrapEvaluationError(EngineJS, r.expression, ctx.localeLabel(), err)
		}
	}
	if r.evaluator.timeout > 0 {
		timer := time.AfterFunc(r.evaluator.timeout, func() {
			vm.Interrupt(ErrJSTimeout)
		})
		defer timer.Stop()
	}

	value, err := vm.RunProgram(r.program)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			err = ErrJSTimeout
		}
		return nil, wrapEvaluationError(EngineJS, r.expression, ctx.localeLabel(), err)
	}
	return value.Export(), nil
}

func jsEvaluatorAvailable() bool {
	return true
}

func isJSEvaluator(e Evaluator) bool {
	_, ok := e.(*jsEvaluator)
	return ok
}
