package faker

import (
	"fmt"
	"strings"
	"time"
)

// Evaluator engine names accepted by EvaluatorByName.
const (
	EngineExpr = "expr"
	EngineCEL  = "cel"
	EngineJS   = "js"
)

// Fake evaluates a composition expression and renders the result as a
// string, e.g. `pick("name", "first_name") + " " + pick("name", "last_name")`.
func (f *Faker) Fake(expression string) (string, error) {
	value, err := f.Evaluate(expression)
	if err != nil {
		return "", err
	}
	if text, ok := value.(string); ok {
		return text, nil
	}
	return fmt.Sprint(value), nil
}

// Evaluate executes expression with the faker built-ins in scope.
func (f *Faker) Evaluate(expression string) (any, error) {
	return f.FakeWith(RuleContext{}, expression)
}

// FakeWith executes expression using ctx. The active locale and the faker
// functions are filled in when ctx leaves them unset; ctx functions take
// precedence over the built-ins.
func (f *Faker) FakeWith(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("faker: expression must not be empty")
	}
	evaluator, err := f.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	if ctx.Locale == "" {
		ctx.Locale = f.Locale()
	}
	ctx.Functions = f.functions.Overlay(ctx.Functions)
	ctx = ctx.withDefaults()

	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expression)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expression, ctx.localeLabel(), evalErr)
	f.cfg.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expression,
		Locale:   ctx.localeLabel(),
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

// Compile prepares expression for repeated evaluation with the faker
// built-ins bound.
func (f *Faker) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	evaluator, err := f.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	rule, err := evaluator.Compile(expression, opts...)
	if err != nil {
		return nil, err
	}
	return &boundRule{faker: f, rule: rule}, nil
}

type boundRule struct {
	faker *Faker
	rule  CompiledRule
}

func (r *boundRule) Evaluate(ctx RuleContext) (any, error) {
	if ctx.Locale == "" {
		ctx.Locale = r.faker.Locale()
	}
	ctx.Functions = r.faker.functions.Overlay(ctx.Functions)
	return r.rule.Evaluate(ctx)
}

func (f *Faker) resolveEvaluator() (Evaluator, error) {
	f.evalMu.Lock()
	defer f.evalMu.Unlock()
	if f.evaluator != nil {
		return f.evaluator, nil
	}
	evaluator, err := EvaluatorByName(EngineExpr, f.cfg.programCache, f.functions)
	if err != nil {
		return nil, err
	}
	f.evaluator = evaluator
	return evaluator, nil
}

// EvaluatorByName builds one of the bundled evaluators. The JS engine needs
// the js_eval build tag.
func EvaluatorByName(name string, cache ProgramCache, registry *FunctionRegistry) (Evaluator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineExpr:
		var opts []ExprEvaluatorOption
		if cache != nil {
			opts = append(opts, ExprWithProgramCache(cache))
		}
		if registry != nil {
			opts = append(opts, ExprWithFunctionRegistry(registry))
		}
		return NewExprEvaluator(opts...), nil
	case EngineCEL:
		var opts []CELEvaluatorOption
		if cache != nil {
			opts = append(opts, CELWithProgramCache(cache))
		}
		if registry != nil {
			opts = append(opts, CELWithFunctionRegistry(registry))
		}
		return NewCELEvaluator(opts...), nil
	case EngineJS:
		if !jsEvaluatorAvailable() {
			return nil, fmt.Errorf("%w: js requires the js_eval build tag", ErrNoEvaluator)
		}
		var opts []JSEvaluatorOption
		if cache != nil {
			opts = append(opts, JSWithProgramCache(cache))
		}
		if registry != nil {
			opts = append(opts, JSWithFunctionRegistry(registry))
		}
		return NewJSEvaluator(opts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrNoEvaluator, name)
	}
}

func evaluatorEngineName(e Evaluator) string {
	switch e.(type) {
	case nil:
		return "unknown"
	case *exprEvaluator:
		return EngineExpr
	case *celEvaluator:
		return EngineCEL
	}
	if isJSEvaluator(e) {
		return EngineJS
	}
	return "custom"
}
