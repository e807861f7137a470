package subsetsum

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidMagnitude is returned when a magnitude is zero or negative.
	ErrInvalidMagnitude = errors.New("invalid magnitude: must be a positive integer")
	// ErrInvalidTarget is returned when the target is negative.
	ErrInvalidTarget = errors.New("invalid target: must be a non-negative integer")
	// ErrResourceExhausted is returned when the reachability table would exceed the cell limit.
	ErrResourceExhausted = errors.New("resource exhausted: reachability table exceeds cell limit")
)

// IsInputError reports whether err is a caller contract violation
// (invalid magnitude or invalid target).
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidMagnitude) || errors.Is(err, ErrInvalidTarget)
}
