package mersenne

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeed indicates a seed that is neither a scalar nor a non-empty
	// vector of 32-bit words.
	ErrInvalidSeed = errors.New("mersenne: invalid seed")
	// ErrInvalidRange indicates Int was called with min > max.
	ErrInvalidRange = errors.New("mersenne: invalid range")
)

// RangeError carries the rejected bounds. It matches ErrInvalidRange.
type RangeError struct {
	Min int64
	Max int64
}

func (e *RangeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v: min %d > max %d", ErrInvalidRange, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}
