package faker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncompleteFallback matches *IncompleteFallbackError.
	ErrIncompleteFallback = errors.New("faker: incomplete fallback locale")
	// ErrMissingDefinition matches *MissingDefinitionError.
	ErrMissingDefinition = errors.New("faker: missing definition")
	// ErrUnknownLocale matches *UnknownLocaleError.
	ErrUnknownLocale = errors.New("faker: unknown locale")
	// ErrDuplicateCategory indicates a category registered twice.
	ErrDuplicateCategory = errors.New("faker: category already registered")
	// ErrDuplicateProperty indicates a property listed twice in one schema.
	ErrDuplicateProperty = errors.New("faker: duplicate property")
	// ErrCategoryRequired indicates an empty category name.
	ErrCategoryRequired = errors.New("faker: category name must be provided")
	// ErrLocaleRequired indicates an empty locale code.
	ErrLocaleRequired = errors.New("faker: locale code must be provided")
	// ErrNotCandidateList indicates a pick against a structured value.
	ErrNotCandidateList = errors.New("faker: definition is not a candidate list")
	// ErrNoCandidates indicates a pick against an empty candidate list.
	ErrNoCandidates = errors.New("faker: candidate list is empty")
	// ErrNoEvaluator indicates no expression engine could be resolved.
	ErrNoEvaluator = errors.New("faker: evaluator not configured")
)

// IncompleteFallbackError reports fallback data missing for a category at
// registration time. An empty Category means the fallback pack itself is not
// loaded.
type IncompleteFallbackError struct {
	Locale   string
	Category Category
	Missing  []string
}

func (e *IncompleteFallbackError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Category == "" {
		return fmt.Sprintf("faker: fallback locale %q is not loaded", e.Locale)
	}
	return fmt.Sprintf("faker: fallback locale %q lacks %s.{%s}", e.Locale, e.Category, strings.Join(e.Missing, ","))
}

func (e *IncompleteFallbackError) Is(target error) bool {
	return target == ErrIncompleteFallback
}

// MissingDefinitionError reports a category/property pair absent from both the
// active and the fallback locale. Locale is the active locale at read time.
type MissingDefinitionError struct {
	Category Category
	Property string
	Locale   string
}

func (e *MissingDefinitionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Property == "" {
		return fmt.Sprintf("faker: missing definition %s for locale %q", e.Category, e.Locale)
	}
	return fmt.Sprintf("faker: missing definition %s.%s for locale %q", e.Category, e.Property, e.Locale)
}

func (e *MissingDefinitionError) Is(target error) bool {
	return target == ErrMissingDefinition
}

// UnknownLocaleError is returned by SetLocale when strict locale checks are
// enabled and no pack is loaded for the code.
type UnknownLocaleError struct {
	Locale string
	Known  []string
}

func (e *UnknownLocaleError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("faker: unknown locale %q (loaded: %s)", e.Locale, strings.Join(e.Known, ","))
}

func (e *UnknownLocaleError) Is(target error) bool {
	return target == ErrUnknownLocale
}

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine string
	Expr   string
	Locale string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("faker: %s evaluator %s locale=%s: %v", e.Engine, describeExpression(e.Expr), e.Locale, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "faker:") {
		return err
	}
	return fmt.Errorf("faker: %s evaluator: %w", engine, err)
}

func wrapEvaluationError(engine, expr, locale string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Locale == "" {
			evalErr.Locale = locale
		}
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Locale: locale,
		Err:    err,
	}
}
