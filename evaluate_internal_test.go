package faker

import "testing"

func TestEvaluatorEngineName(t *testing.T) {
	tests := []struct {
		name      string
		evaluator Evaluator
		want      string
	}{
		{name: "nil", evaluator: nil, want: "unknown"},
		{name: "expr", evaluator: NewExprEvaluator(), want: EngineExpr},
		{name: "cel", evaluator: NewCELEvaluator(), want: EngineCEL},
	}
	if jsEvaluatorAvailable() {
		tests = append(tests, struct {
			name      string
			evaluator Evaluator
			want      string
		}{name: "js", evaluator: NewJSEvaluator(), want: EngineJS})
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluatorEngineName(tt.evaluator); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBindingKeyTracksRegistrations(t *testing.T) {
	first := NewFunctionRegistry()
	second := NewFunctionRegistry()
	for _, registry := range []*FunctionRegistry{first, second} {
		if err := registry.Register("pick", constant("x")); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	if first.bindingKey() == second.bindingKey() {
		t.Fatalf("separate registrations must not share a binding key: %q", first.bindingKey())
	}
	if first.bindingKey() != first.Clone().bindingKey() {
		t.Fatalf("clone changed binding key")
	}
	if first.bindingKey() != first.Overlay(nil).bindingKey() {
		t.Fatalf("overlay changed binding key")
	}
	if programKey(EngineExpr, "pick()", first) != programKey(EngineExpr, "pick()", second) {
		t.Fatalf("name-keyed programs should be shared across registries")
	}
	if boundProgramKey(EngineCEL, "pick()", first) == boundProgramKey(EngineCEL, "pick()", second) {
		t.Fatalf("bound programs must be keyed per registration")
	}
}
