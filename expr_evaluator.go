package faker

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprEvaluatorOption configures an expr evaluator instance.
type ExprEvaluatorOption func(*exprEvaluator)

// ExprWithProgramCache wires a ProgramCache into the expr evaluator.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr evaluator.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

// exprEvaluator runs expressions with github.com/expr-lang/expr. Registered
// functions are exposed as variadic env entries plus a call(name, ...) helper.
type exprEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprEvaluator constructs an Evaluator backed by expr-lang/expr.
func NewExprEvaluator(opts ...ExprEvaluatorOption) Evaluator {
	e := &exprEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Evaluate compiles and runs expression with the functions of the evaluator
// and of ctx in scope.
func (e *exprEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError(EngineExpr, fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	registry := scopedFunctions(e.registry, ctx)
	env := expressionEnv(ctx, registry)
	program, err := e.program(expression, registry, env)
	if err != nil {
		return nil, err
	}
	return runExpr(program, env, expression, ctx)
}

// Compile type-checks expression against the evaluator's own functions plus
// any bound with CompileWithFunctions. Functions supplied later through
// RuleContext must share those names.
func (e *exprEvaluator) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError(EngineExpr, fmt.Errorf("expression must not be empty"))
	}
	registry := compileFunctions(e.registry, opts)
	env := expressionEnv(RuleContext{}.withDefaults(), registry)
	program, err := e.program(expression, registry, env)
	if err != nil {
		return nil, err
	}
	return &exprCompiledRule{registry: registry, program: program, expression: expression}, nil
}

func (e *exprEvaluator) program(expression string, registry *FunctionRegistry, env map[string]any) (*exprvm.Program, error) {
	key := programKey(EngineExpr, expression, registry)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	program, err := exprlang.Compile(expression, exprlang.Env(env), exprlang.AllowUndefinedVariables())
	if err != nil {
		return nil, wrapEvaluationError(EngineExpr, expression, "", err)
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return program, nil
}

func runExpr(program *exprvm.Program, env map[string]any, expression string, ctx RuleContext) (any, error) {
	result, err := exprlang.Run(program, env)
	if err != nil {
		return nil, wrapEvaluationError(EngineExpr, expression, ctx.localeLabel(), err)
	}
	return result, nil
}

type exprCompiledRule struct {
	registry   *FunctionRegistry
	program    *exprvm.Program
	expression string
}

func (r *exprCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	if r.program == nil {
		return nil, wrapEvaluatorError(EngineExpr, fmt.Errorf("compiled rule missing program"))
	}
	ctx = ctx.withDefaults()
	env := expressionEnv(ctx, scopedFunctions(r.registry, ctx))
	return runExpr(r.program, env, r.expression, ctx)
}
