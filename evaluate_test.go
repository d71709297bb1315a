package faker_test

import (
	"errors"
	"strings"
	"testing"

	faker "github.com/goliatone/go-faker"
)

func TestFakeComposesPicks(t *testing.T) {
	engines := []string{faker.EngineExpr, faker.EngineCEL}
	for _, engine := range engines {
		t.Run(engine, func(t *testing.T) {
			cfg := faker.Config{Locale: "de", FallbackLocale: "en", Seed: "42", Evaluator: engine}
			f, err := faker.NewFromConfig(testPacks(), cfg, faker.WithSchema(testSchema))
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			out, err := f.Fake(`pick("name", "first_name") + " " + pick("word", "noun")`)
			if err != nil {
				t.Fatalf("fake: %v", err)
			}
			parts := strings.SplitN(out, " ", 2)
			if len(parts) != 2 || parts[1] != "Hund" {
				t.Fatalf("expected '<name> Hund', got %q", out)
			}
			switch parts[0] {
			case "Ada", "Grace", "Alan":
			default:
				t.Fatalf("unexpected first name %q", parts[0])
			}
		})
	}
}

func TestFakeIsDeterministic(t *testing.T) {
	expression := `pick("name", "first_name") + "-" + string(number(1, 1000))`
	a, err := newTestFaker(t).Fake(expression)
	if err != nil {
		t.Fatalf("fake: %v", err)
	}
	b, err := newTestFaker(t).Fake(expression)
	if err != nil {
		t.Fatalf("fake: %v", err)
	}
	if a != b {
		t.Fatalf("expected seeded output to repeat, got %q and %q", a, b)
	}
}

func TestFakeBuiltins(t *testing.T) {
	f := newTestFaker(t, faker.WithLocale("de"))
	tests := []struct {
		expression string
		check      func(any) bool
	}{
		{`number(1, 6)`, func(v any) bool { n, ok := v.(int64); return ok && n >= 1 && n <= 6 }},
		{`decimal(0, 1)`, func(v any) bool { n, ok := v.(float64); return ok && n >= 0 && n < 1 }},
		{`boolean()`, func(v any) bool { _, ok := v.(bool); return ok }},
		{`len(uuid())`, func(v any) bool { return v == 36 }},
		{`element("x", "y")`, func(v any) bool { return v == "x" || v == "y" }},
		{`locale()`, func(v any) bool { return v == "de" }},
		{`call("pick", "word", "verb")`, func(v any) bool { return v == "run" || v == "jump" }},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			value, err := f.Evaluate(tt.expression)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if !tt.check(value) {
				t.Fatalf("unexpected value %#v (%T)", value, value)
			}
		})
	}
}

func TestFakeWithArgsAndCustomFunction(t *testing.T) {
	f := newTestFaker(t, faker.WithCustomFunction("shout", func(args ...any) (any, error) {
		text, _ := args[0].(string)
		return strings.ToUpper(text), nil
	}))
	out, err := f.FakeWith(faker.RuleContext{Args: map[string]any{"suffix": "!"}}, `shout(pick("word", "noun")) + args.suffix`)
	if err != nil {
		t.Fatalf("fake: %v", err)
	}
	if out != "CAT!" && out != "DOG!" {
		t.Fatalf("unexpected output %v", out)
	}
}

func TestFakeWithContextFunctionsOverrideBuiltins(t *testing.T) {
	f := newTestFaker(t)
	override := faker.NewFunctionRegistry()
	if err := override.Register("locale", func(...any) (any, error) { return "override", nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	value, err := f.FakeWith(faker.RuleContext{Functions: override}, `locale()`)
	if err != nil {
		t.Fatalf("fake: %v", err)
	}
	if value != "override" {
		t.Fatalf("expected context function to win, got %v", value)
	}
}

func TestFakeReportsEvaluationError(t *testing.T) {
	var events []faker.EvaluatorLogEvent
	f := newTestFaker(t, faker.WithEvaluatorLogger(faker.EvaluatorLoggerFunc(func(event faker.EvaluatorLogEvent) {
		events = append(events, event)
	})))

	_, err := f.Fake(`pick("hacker", "noun")`)
	var evalErr *faker.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %v", err)
	}
	if evalErr.Engine != faker.EngineExpr || evalErr.Locale != "en" {
		t.Fatalf("unexpected error metadata %+v", evalErr)
	}
	if !strings.Contains(err.Error(), "missing definition hacker") {
		t.Fatalf("expected the resolver error in the message, got %v", err)
	}
	if len(events) != 1 || events[0].Err == nil || events[0].Engine != faker.EngineExpr {
		t.Fatalf("expected failed evaluation to be logged, got %+v", events)
	}

	if _, err := f.Fake(""); err == nil {
		t.Fatalf("expected empty expression to fail")
	}
}

func TestCompileBindsBuiltins(t *testing.T) {
	f := newTestFaker(t)
	rule, err := f.Compile(`pick("word", "noun")`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := f.SetLocale("de"); err != nil {
		t.Fatalf("set locale: %v", err)
	}
	value, err := rule.Evaluate(faker.RuleContext{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if value != "Hund" {
		t.Fatalf("compiled rule should resolve against the current locale, got %v", value)
	}
}

func TestProgramCacheReusesPrograms(t *testing.T) {
	cache := faker.NewMapProgramCache()
	f := newTestFaker(t, faker.WithProgramCache(cache))
	for i := 0; i < 3; i++ {
		if _, err := f.Fake(`pick("word", "verb")`); err != nil {
			t.Fatalf("fake: %v", err)
		}
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one cached program, got %d", cache.Len())
	}
}

func TestSharedProgramCacheKeepsInstancesApart(t *testing.T) {
	for _, engine := range []string{faker.EngineExpr, faker.EngineCEL} {
		t.Run(engine, func(t *testing.T) {
			cache := faker.NewMapProgramCache()
			build := func(locale string) *faker.Faker {
				cfg := faker.Config{Locale: locale, FallbackLocale: "en", Seed: "42", Evaluator: engine}
				f, err := faker.NewFromConfig(testPacks(), cfg, faker.WithSchema(testSchema), faker.WithProgramCache(cache))
				if err != nil {
					t.Fatalf("new: %v", err)
				}
				return f
			}
			english, german := build("en"), build("de")
			first, err := english.Fake(`pick("word", "noun")`)
			if err != nil {
				t.Fatalf("fake en: %v", err)
			}
			if first != "cat" && first != "dog" {
				t.Fatalf("unexpected en noun %q", first)
			}
			for i := 0; i < 3; i++ {
				got, err := german.Fake(`pick("word", "noun")`)
				if err != nil {
					t.Fatalf("fake de: %v", err)
				}
				if got != "Hund" {
					t.Fatalf("draw %d: expected the de instance's own data, got %q", i, got)
				}
			}
		})
	}
}

func TestCELCacheHonoursPerCallFunctions(t *testing.T) {
	cache := faker.NewMapProgramCache()
	evaluator := faker.NewCELEvaluator(faker.CELWithProgramCache(cache))
	constant := func(value string) *faker.FunctionRegistry {
		registry := faker.NewFunctionRegistry()
		if err := registry.Register("greet", func(...any) (any, error) { return value, nil }); err != nil {
			t.Fatalf("register: %v", err)
		}
		return registry
	}
	tests := []struct {
		registry *faker.FunctionRegistry
		want     string
	}{
		{constant("hello"), "hello"},
		{constant("hallo"), "hallo"},
	}
	for _, tt := range tests {
		got, err := evaluator.Evaluate(faker.RuleContext{Functions: tt.registry}, `greet()`)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if got != tt.want {
			t.Fatalf("expected %q, got %v", tt.want, got)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("expected a program per registration, got %d", cache.Len())
	}
}

func TestCompileWithFunctions(t *testing.T) {
	registry := faker.NewFunctionRegistry()
	if err := registry.Register("suffix", func(args ...any) (any, error) {
		text, _ := args[0].(string)
		return text + "!", nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, evaluator := range []faker.Evaluator{faker.NewExprEvaluator(), faker.NewCELEvaluator()} {
		rule, err := evaluator.Compile(`suffix("hey")`, faker.CompileWithFunctions(registry))
		if err != nil {
			t.Fatalf("%T compile: %v", evaluator, err)
		}
		value, err := rule.Evaluate(faker.RuleContext{})
		if err != nil {
			t.Fatalf("%T evaluate: %v", evaluator, err)
		}
		if value != "hey!" {
			t.Fatalf("%T: unexpected value %v", evaluator, value)
		}
	}
}

func TestEvaluatorByName(t *testing.T) {
	for _, name := range []string{"", "expr", "CEL"} {
		if evaluator, err := faker.EvaluatorByName(name, nil, nil); err != nil || evaluator == nil {
			t.Fatalf("%q: expected evaluator, got %v", name, err)
		}
	}
	if _, err := faker.EvaluatorByName("lua", nil, nil); !errors.Is(err, faker.ErrNoEvaluator) {
		t.Fatalf("expected ErrNoEvaluator, got %v", err)
	}
}

func TestExprAndCELShareFunctionRegistry(t *testing.T) {
	registry := faker.NewFunctionRegistry()
	if err := registry.Register("twice", func(args ...any) (any, error) {
		text, _ := args[0].(string)
		return text + text, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, evaluator := range []faker.Evaluator{
		faker.NewExprEvaluator(faker.ExprWithFunctionRegistry(registry)),
		faker.NewCELEvaluator(faker.CELWithFunctionRegistry(registry)),
	} {
		value, err := evaluator.Evaluate(faker.RuleContext{Locale: "en"}, `twice("ab")`)
		if err != nil {
			t.Fatalf("%T: %v", evaluator, err)
		}
		if value != "abab" {
			t.Fatalf("%T: unexpected value %v", evaluator, value)
		}
	}
}
