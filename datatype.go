package faker

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goliatone/go-faker/internal/clone"
	"github.com/goliatone/go-faker/mersenne"
	"github.com/google/uuid"
)

// Number returns an integer drawn uniformly from [min,max].
func (f *Faker) Number(min, max int64) (int64, error) {
	return f.seeds.Int(min, max)
}

// Float returns a float drawn from [min,max) with 53-bit resolution.
func (f *Faker) Float(min, max float64) (float64, error) {
	if math.IsNaN(min) || math.IsNaN(max) || min > max {
		return 0, fmt.Errorf("%w: min %v > max %v", mersenne.ErrInvalidRange, min, max)
	}
	return min + f.seeds.Float64()*(max-min), nil
}

// Bool returns true with probability one half.
func (f *Faker) Bool() bool {
	return f.seeds.Float64() < 0.5
}

// UUID returns a version 4 UUID built from engine output, so it is
// reproducible under a seed.
func (f *Faker) UUID() (string, error) {
	id, err := uuid.NewRandomFromReader(f.seeds)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Element returns one entry of values chosen by the engine.
func (f *Faker) Element(values []string) (string, error) {
	if len(values) == 0 {
		return "", ErrNoCandidates
	}
	index, err := f.seeds.Int(0, int64(len(values)-1))
	if err != nil {
		return "", err
	}
	return values[index], nil
}

// Shuffle returns a shuffled copy of values.
func (f *Faker) Shuffle(values []string) []string {
	out := clone.Strings(values)
	f.seeds.shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// builtins exposes the faker operations to expressions.
func (f *Faker) builtins() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("pick", func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pick expects (category, property), got %d arguments", len(args))
		}
		category, err := stringArg("pick", args[0])
		if err != nil {
			return nil, err
		}
		property, err := stringArg("pick", args[1])
		if err != nil {
			return nil, err
		}
		return f.Pick(Category(category), property)
	})
	_ = registry.Register("number", func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("number expects (min, max), got %d arguments", len(args))
		}
		min, err := intArg("number", args[0])
		if err != nil {
			return nil, err
		}
		max, err := intArg("number", args[1])
		if err != nil {
			return nil, err
		}
		return f.Number(min, max)
	})
	_ = registry.Register("decimal", func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("decimal expects (min, max), got %d arguments", len(args))
		}
		min, err := floatArg("decimal", args[0])
		if err != nil {
			return nil, err
		}
		max, err := floatArg("decimal", args[1])
		if err != nil {
			return nil, err
		}
		return f.Float(min, max)
	})
	_ = registry.Register("boolean", func(args ...any) (any, error) {
		return f.Bool(), nil
	})
	_ = registry.Register("uuid", func(args ...any) (any, error) {
		return f.UUID()
	})
	_ = registry.Register("element", func(args ...any) (any, error) {
		values, err := stringList("element", args)
		if err != nil {
			return nil, err
		}
		return f.Element(values)
	})
	_ = registry.Register("locale", func(args ...any) (any, error) {
		return f.Locale(), nil
	})
	return registry
}

func stringArg(fn string, value any) (string, error) {
	switch typed := value.(type) {
	case string:
		return typed, nil
	case fmt.Stringer:
		return typed.String(), nil
	default:
		return "", fmt.Errorf("%s: expected string argument, got %T", fn, value)
	}
}

func intArg(fn string, value any) (int64, error) {
	switch typed := value.(type) {
	case int:
		return int64(typed), nil
	case int32:
		return int64(typed), nil
	case int64:
		return typed, nil
	case uint:
		return int64(typed), nil
	case uint32:
		return int64(typed), nil
	case uint64:
		if typed > math.MaxInt64 {
			return 0, fmt.Errorf("%s: %d overflows int64", fn, typed)
		}
		return int64(typed), nil
	case float64:
		if typed != math.Trunc(typed) {
			return 0, fmt.Errorf("%s: expected integer argument, got %v", fn, typed)
		}
		return int64(typed), nil
	case string:
		parsed, err := strconv.ParseInt(typed, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", fn, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%s: expected integer argument, got %T", fn, value)
	}
}

func floatArg(fn string, value any) (float64, error) {
	switch typed := value.(type) {
	case float64:
		return typed, nil
	case float32:
		return float64(typed), nil
	default:
		number, err := intArg(fn, value)
		if err != nil {
			return 0, fmt.Errorf("%s: expected number argument, got %T", fn, value)
		}
		return float64(number), nil
	}
}

// stringList accepts either a single list argument or the values inline.
func stringList(fn string, args []any) ([]string, error) {
	if len(args) == 1 {
		switch typed := args[0].(type) {
		case []string:
			return typed, nil
		case []any:
			args = typed
		}
	}
	values := make([]string, 0, len(args))
	for _, arg := range args {
		text, err := stringArg(fn, arg)
		if err != nil {
			return nil, err
		}
		values = append(values, text)
	}
	return values, nil
}
