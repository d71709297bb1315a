package faker

import (
	"errors"
	"testing"
)

func TestWrapEvaluationErrorCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	err := wrapEvaluationError("expr", "pick(\"word\", \"noun\")", "de", base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" {
		t.Fatalf("expected engine expr, got %q", evalErr.Engine)
	}
	if evalErr.Expr != "pick(\"word\", \"noun\")" {
		t.Fatalf("expected expression metadata, got %q", evalErr.Expr)
	}
	if evalErr.Locale != "de" {
		t.Fatalf("expected locale metadata, got %q", evalErr.Locale)
	}
	if !errors.Is(evalErr.Err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
}

func TestWrapEvaluationErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{
		Engine: "expr",
		Err:    base,
	}

	err := wrapEvaluationError("cel", "rule", "en", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "rule" {
		t.Fatalf("expression should be filled, got %q", existing.Expr)
	}
	if existing.Locale != "en" {
		t.Fatalf("locale should be filled, got %q", existing.Locale)
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "missing definition",
			err:      &MissingDefinitionError{Category: "made_up_category", Property: "prop", Locale: "xx"},
			sentinel: ErrMissingDefinition,
			message:  `faker: missing definition made_up_category.prop for locale "xx"`,
		},
		{
			name:     "incomplete fallback",
			err:      &IncompleteFallbackError{Locale: "en", Category: CategoryWord, Missing: []string{"adverb", "verb"}},
			sentinel: ErrIncompleteFallback,
			message:  `faker: fallback locale "en" lacks word.{adverb,verb}`,
		},
		{
			name:     "fallback not loaded",
			err:      &IncompleteFallbackError{Locale: "en"},
			sentinel: ErrIncompleteFallback,
			message:  `faker: fallback locale "en" is not loaded`,
		},
		{
			name:     "unknown locale",
			err:      &UnknownLocaleError{Locale: "xx", Known: []string{"de", "en"}},
			sentinel: ErrUnknownLocale,
			message:  `faker: unknown locale "xx" (loaded: de,en)`,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.sentinel) {
				t.Fatalf("expected %v to match %v", tc.err, tc.sentinel)
			}
			if tc.err.Error() != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, tc.err.Error())
			}
		})
	}
}
