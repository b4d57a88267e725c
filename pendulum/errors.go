package pendulum

import (
	"errors"
	"math"
)

var (
	// ErrInvalidGeometry is returned when a setter receives NaN or ±Inf.
	// The previous value is left untouched.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrSegmentNotFound is returned for an id that is not part of the chain.
	ErrSegmentNotFound = errors.New("segment not found")
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
