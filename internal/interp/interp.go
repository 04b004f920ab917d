// Package interp blends values of a type by a progress factor and provides
// the easing curves that shape that factor.
//
// The progress factor is never clamped: easing curves with overshoot produce
// factors outside [0, 1] and the blended values follow them.
package interp

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Func blends a toward b. t == 0 yields a, t == 1 yields b.
type Func[T any] func(a, b T, t float64) T

// Interpolator is implemented by composite values that know how to blend
// themselves component-wise.
type Interpolator[T any] interface {
	Interpolate(to T, t float64) T
}

// Method adapts an Interpolator implementation to Func.
func Method[T Interpolator[T]](a, b T, t float64) T {
	return a.Interpolate(b, t)
}

// Float blends floating point values.
func Float[T constraints.Float](a, b T, t float64) T {
	return a + T(float64(b-a)*t)
}

// Int blends integers in float64, rounds to nearest and saturates to the
// range of T.
func Int[T constraints.Integer](a, b T, t float64) T {
	if a == b {
		return a
	}
	v := math.Round(float64(a) + (float64(b)-float64(a))*t)
	lo, hi := intRange[T]()
	switch {
	case v <= float64(lo):
		return lo
	case v >= float64(hi):
		return hi
	}
	return T(v)
}

func intRange[T constraints.Integer]() (lo, hi T) {
	bits := 0
	for x := ^T(0); x != 0; x <<= 1 {
		bits++
	}
	if ^T(0) < 0 {
		hi = T(1)<<(bits-1) - 1
		return -hi - 1, hi
	}
	return 0, ^T(0)
}

// lerp is the scalar blend used by the composite types.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
