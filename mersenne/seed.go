package mersenne

import (
	"fmt"
	"strconv"
	"strings"
)

// SeedKind tags which variant a Seed carries.
type SeedKind uint8

const (
	// SeedKindNone is the zero value and never a valid seed.
	SeedKindNone SeedKind = iota
	// SeedKindScalar seeds through init_genrand.
	SeedKindScalar
	// SeedKindVector seeds through init_by_array.
	SeedKindVector
)

func (k SeedKind) String() string {
	switch k {
	case SeedKindScalar:
		return "scalar"
	case SeedKindVector:
		return "vector"
	default:
		return "none"
	}
}

// Seed is either a single 32-bit word or a key vector. Seeds are values; the
// vector is copied on the way in and on the way out.
type Seed struct {
	kind   SeedKind
	scalar uint32
	vector []uint32
}

// ScalarSeed returns a seed initialised through the linear congruential
// recurrence of the reference generator.
func ScalarSeed(value uint32) Seed {
	return Seed{kind: SeedKindScalar, scalar: value}
}

// VectorSeed returns a seed initialised through the reference array key
// schedule. An empty key produces an invalid seed.
func VectorSeed(key ...uint32) Seed {
	return Seed{kind: SeedKindVector, vector: append([]uint32(nil), key...)}
}

// ParseSeed accepts a decimal word ("42") or a comma separated key
// ("1,2,3"). A single word yields a scalar seed.
func ParseSeed(value string) (Seed, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Seed{}, fmt.Errorf("%w: empty value", ErrInvalidSeed)
	}
	parts := strings.Split(value, ",")
	key := make([]uint32, 0, len(parts))
	for _, part := range parts {
		word, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return Seed{}, fmt.Errorf("%w: %q: %v", ErrInvalidSeed, part, err)
		}
		key = append(key, uint32(word))
	}
	if len(key) == 1 {
		return ScalarSeed(key[0]), nil
	}
	return VectorSeed(key...), nil
}

// Kind reports the seed variant.
func (s Seed) Kind() SeedKind {
	return s.kind
}

// Scalar returns the scalar word when the seed is a scalar.
func (s Seed) Scalar() (uint32, bool) {
	return s.scalar, s.kind == SeedKindScalar
}

// Vector returns a copy of the key when the seed is a vector.
func (s Seed) Vector() []uint32 {
	if s.kind != SeedKindVector {
		return nil
	}
	return append([]uint32(nil), s.vector...)
}

// Validate reports ErrInvalidSeed for the zero seed and empty vectors.
func (s Seed) Validate() error {
	switch s.kind {
	case SeedKindScalar:
		return nil
	case SeedKindVector:
		if len(s.vector) == 0 {
			return fmt.Errorf("%w: empty key vector", ErrInvalidSeed)
		}
		return nil
	default:
		return fmt.Errorf("%w: seed kind %s", ErrInvalidSeed, s.kind)
	}
}

// Equal reports whether both seeds produce the same generator state.
func (s Seed) Equal(other Seed) bool {
	if s.kind != other.kind || s.scalar != other.scalar || len(s.vector) != len(other.vector) {
		return false
	}
	for i := range s.vector {
		if s.vector[i] != other.vector[i] {
			return false
		}
	}
	return true
}

func (s Seed) String() string {
	switch s.kind {
	case SeedKindScalar:
		return strconv.FormatUint(uint64(s.scalar), 10)
	case SeedKindVector:
		words := make([]string, len(s.vector))
		for i, word := range s.vector {
			words[i] = strconv.FormatUint(uint64(word), 10)
		}
		return strings.Join(words, ",")
	default:
		return "<none>"
	}
}
