package faker

import (
	"fmt"
	"reflect"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

// celMaxArity bounds the overloads declared per registered function.
const celMaxArity = 3

var anySliceType = reflect.TypeOf([]any{})

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL evaluator.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go. Registered
// functions are declared with dynamic arguments for up to three parameters.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	return e.evaluate(ctx, expression, e.registry)
}

func (e *celEvaluator) evaluate(ctx RuleContext, expression string, base *FunctionRegistry) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	registry := scopedFunctions(base, ctx)
	program, err := e.loadOrCompile(expression, registry)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.localeLabel(), err)
	}
	out, _, err := program.Eval(celActivation(ctx))
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.localeLabel(), err)
	}
	return out.Value(), nil
}

func (e *celEvaluator) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	registry := compileFunctions(e.registry, opts)
	if _, err := e.loadOrCompile(expression, registry); err != nil {
		return nil, wrapEvaluationError("cel", expression, "", err)
	}
	return &celCompiledRule{
		evaluator:  e,
		registry:   registry,
		expression: expression,
	}, nil
}

func (e *celEvaluator) loadOrCompile(expression string, registry *FunctionRegistry) (celgo.Program, error) {
	key := boundProgramKey(EngineCEL, expression, registry)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}

	env, err := buildCELEnv(registry)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return program, nil
}

func buildCELEnv(registry *FunctionRegistry) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.MapType(celgo.StringType, celgo.DynType)),
		celgo.Variable("metadata", celgo.MapType(celgo.StringType, celgo.DynType)),
	}
	if registry != nil {
		for _, name := range registry.Names() {
			opts = append(opts, celgo.Function(name, celOverloads(registry, name)...))
		}
		opts = append(opts, celgo.Function("call", celCallOverloads(registry)...))
	}
	return celgo.NewEnv(opts...)
}

func celOverloads(registry *FunctionRegistry, name string) []celgo.FunctionOpt {
	call := func(values ...ref.Val) ref.Val {
		return celInvoke(registry, name, values)
	}
	overloads := make([]celgo.FunctionOpt, 0, celMaxArity+1)
	for arity := 0; arity <= celMaxArity; arity++ {
		overloads = append(overloads, celgo.Overload(
			fmt.Sprintf("faker_%s_%d", name, arity),
			dynArgs(arity),
			celgo.DynType,
			celBinding(arity, call),
		))
	}
	return overloads
}

func celCallOverloads(registry *FunctionRegistry) []celgo.FunctionOpt {
	call := func(values ...ref.Val) ref.Val {
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("faker: call name must be string")
		}
		return celInvoke(registry, name, values[1:])
	}
	overloads := make([]celgo.FunctionOpt, 0, celMaxArity+1)
	for arity := 0; arity <= celMaxArity; arity++ {
		args := append([]*celgo.Type{celgo.StringType}, dynArgs(arity)...)
		overloads = append(overloads, celgo.Overload(
			fmt.Sprintf("faker_call_%d", arity),
			args,
			celgo.DynType,
			celBinding(arity+1, call),
		))
	}
	return overloads
}

func dynArgs(arity int) []*celgo.Type {
	args := make([]*celgo.Type, arity)
	for i := range args {
		args[i] = celgo.DynType
	}
	return args
}

func celBinding(arity int, call func(values ...ref.Val) ref.Val) celgo.OverloadOpt {
	switch arity {
	case 1:
		return celgo.UnaryBinding(func(value ref.Val) ref.Val {
			return call(value)
		})
	case 2:
		return celgo.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
			return call(lhs, rhs)
		})
	default:
		return celgo.FunctionBinding(call)
	}
}

func celInvoke(registry *FunctionRegistry, name string, values []ref.Val) ref.Val {
	args := make([]any, 0, len(values))
	for _, value := range values {
		args = append(args, celNative(value))
	}
	result, err := registry.Call(name, args...)
	if err != nil {
		return types.NewErr("%s", err.Error())
	}
	if result == nil {
		return types.NullValue
	}
	return types.DefaultTypeAdapter.NativeToValue(result)
}

func celNative(value ref.Val) any {
	if list, ok := value.(traits.Lister); ok {
		if native, err := list.ConvertToNative(anySliceType); err == nil {
			return native
		}
	}
	return value.Value()
}

func celActivation(ctx RuleContext) map[string]any {
	return map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
}

type celCompiledRule struct {
	evaluator  *celEvaluator
	registry   *FunctionRegistry
	expression string
}

func (r *celCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	if r.evaluator == nil {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("compiled rule missing evaluator"))
	}
	return r.evaluator.evaluate(ctx, r.expression, r.registry)
}
