// Package decomp defines the types, sentinels and options of the mass
// decomposer.
package decomp

import (
	"errors"
	"math"

	"github.com/katalvlaran/compomer/alphabet"
)

// Sentinel errors returned by the decomposer.
var (
	// ErrEmptyAlphabet indicates a nil alphabet or one without characters.
	ErrEmptyAlphabet = errors.New("decomp: alphabet is empty")

	// ErrBadWeight indicates a NaN, infinite, zero or negative character weight.
	ErrBadWeight = errors.New("decomp: character weight must be positive and finite")

	// ErrWeightBelowPrecision indicates a character whose weight discretizes
	// to integer mass 0 at the configured precision.
	ErrWeightBelowPrecision = errors.New("decomp: character weight is below precision")

	// ErrBadPrecision indicates a precision that is not positive and finite.
	ErrBadPrecision = errors.New("decomp: precision must be positive and finite")

	// ErrBadDeviation indicates a negative or non-finite ppm or absolute error.
	ErrBadDeviation = errors.New("decomp: deviation must be non-negative and finite")

	// ErrNegativeMass indicates a negative (or NaN) target mass.
	ErrNegativeMass = errors.New("decomp: mass must be non-negative")

	// ErrBadBounds indicates an interval with Min < 0 or Max < Min, or a
	// bounded character that is not part of the alphabet.
	ErrBadBounds = errors.New("decomp: invalid character bounds")

	// ErrOverflow indicates an integer mass or table size beyond the
	// representable range.
	ErrOverflow = errors.New("decomp: integer mass overflow")

	// ErrBadCoefficients indicates a coefficient vector of the wrong length
	// or with negative entries.
	ErrBadCoefficients = errors.New("decomp: invalid coefficient vector")

	// ErrValidator wraps an error returned by the injected Validator.
	ErrValidator = errors.New("decomp: validator failed")
)

// Unreachable is the residue-table sentinel for residue classes that no
// combination of the available characters can reach.
const Unreachable int64 = math.MaxInt64

// Unbounded is the Interval.Max value meaning "no upper limit".
const Unbounded = math.MaxInt

// Weight holds the derived quantities of one alphabet character.
//
//   - Mass        — real weight, as reported by the alphabet.
//   - IntegerMass — floor(Mass / precision), after the global GCD reduction.
//   - L           — a / gcd(a, IntegerMass): coefficient period of the
//     residue class modulo a = weights[0].IntegerMass.
//   - LCM         — L · IntegerMass = lcm(a, IntegerMass).
type Weight[T comparable] struct {
	Owner       T
	Mass        float64
	IntegerMass int64
	L           int64
	LCM         int64
}

// Interval is an inclusive [Min, Max] coefficient range for one character.
// Use Unbounded for Max to leave the upper end open.
type Interval struct {
	Min int
	Max int
}

// Bounds maps characters to their coefficient range. Characters without an
// entry default to [0, Unbounded].
type Bounds[T comparable] map[T]Interval

// Deviation is the mass tolerance model: the effective absolute tolerance
// for a mass m is max(PPM·1e-6·m, Absolute).
type Deviation struct {
	PPM      float64
	Absolute float64
}

// AbsoluteFor returns the absolute tolerance applied at mass.
func (d Deviation) AbsoluteFor(mass float64) float64 {
	return math.Max(d.PPM*1e-6*mass, d.Absolute)
}

// InErrorWindow reports whether value lies within tolerance of center.
func (d Deviation) InErrorWindow(center, value float64) bool {
	return math.Abs(center-value) <= d.AbsoluteFor(center)
}

// Validator decides whether an arithmetically valid decomposition is
// acceptable. coefficients is in sorted-weight order; order maps each sorted
// position to its alphabet index and is shared between calls, so it must not
// be modified. Implementations must be deterministic and free of side
// effects. A non-nil error aborts the decomposition.
type Validator[T comparable] interface {
	Validate(coefficients []int, order []int, a alphabet.Alphabet[T]) (bool, error)
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc[T comparable] func(coefficients []int, order []int, a alphabet.Alphabet[T]) (bool, error)

// Validate calls f.
func (f ValidatorFunc[T]) Validate(coefficients []int, order []int, a alphabet.Alphabet[T]) (bool, error) {
	return f(coefficients, order, a)
}
