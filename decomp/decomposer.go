package decomp

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/katalvlaran/compomer/alphabet"
)

// Decomposer enumerates the compomers of real masses over one alphabet.
//
// The residue table is built lazily on first use (or by Init) and published
// exactly once; afterwards every method is safe for concurrent use.
// WithValidator and WithDeviation return views that share the same table.
type Decomposer[T comparable] struct {
	alphabet  alphabet.Alphabet[T]
	opts      Options
	validator Validator[T]
	logger    *slog.Logger
	load      func() (*table[T], error)
}

// Info summarizes the discretization chosen for an alphabet.
type Info struct {
	Characters int     // alphabet size
	Modulus    int64   // a, the smallest integer mass (ERT rows)
	GCD        int64   // common divisor removed from the integer masses
	Precision  float64 // effective precision after the GCD rescale
	MinError   float64 // smallest relative discretization error (≤ 0)
	MaxError   float64 // largest relative discretization error (≥ 0)
}

// New creates a decomposer for alphabet a.
//
// Options and weights are validated eagerly; the residue table is not built
// until the first call that needs it.
//
// Errors:
//   - ErrEmptyAlphabet  — a is nil or has no characters.
//   - ErrBadWeight      — a weight is NaN, infinite or not positive.
//   - ErrBadPrecision   — precision is not positive and finite.
//   - ErrBadDeviation   — ppm or absolute error is negative or not finite.
func New[T comparable](a alphabet.Alphabet[T], opts ...Option) (*Decomposer[T], error) {
	if a == nil || a.Size() == 0 {
		return nil, ErrEmptyAlphabet
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	for i := 0; i < a.Size(); i++ {
		if !finitePositive(a.WeightOf(i)) {
			return nil, fmt.Errorf("%w: %v=%v", ErrBadWeight, a.Get(i), a.WeightOf(i))
		}
	}

	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := &Decomposer[T]{alphabet: a, opts: o, logger: logger}
	d.load = sync.OnceValues(func() (*table[T], error) {
		t, err := buildTable(a, o.Precision)
		if err != nil {
			return nil, err
		}
		logger.Debug("decomp: residue table built",
			slog.Int("characters", len(t.weights)),
			slog.Int64("modulus", t.modulus()),
			slog.Int64("gcd", t.gcd),
			slog.Float64("precision", t.precision),
			slog.Float64("min_error", t.minError),
			slog.Float64("max_error", t.maxError),
		)

		return t, nil
	})

	return d, nil
}

// Init builds the residue table if it has not been built yet.
// Repeated calls return the first outcome.
func (d *Decomposer[T]) Init() error {
	_, err := d.load()
	return err
}

// Alphabet returns the alphabet the decomposer was built for.
func (d *Decomposer[T]) Alphabet() alphabet.Alphabet[T] { return d.alphabet }

// Options returns the construction options.
func (d *Decomposer[T]) Options() Options { return d.opts }

// Deviation returns the tolerance model in use.
func (d *Decomposer[T]) Deviation() Deviation { return d.opts.Deviation }

// WithValidator returns a view of d that filters results through v.
// A nil v disables validation.
func (d *Decomposer[T]) WithValidator(v Validator[T]) *Decomposer[T] {
	c := *d
	c.validator = v

	return &c
}

// WithDeviation returns a view of d that uses dev as its tolerance.
func (d *Decomposer[T]) WithDeviation(dev Deviation) (*Decomposer[T], error) {
	if err := dev.validate(); err != nil {
		return nil, err
	}
	c := *d
	c.opts.Deviation = dev

	return &c, nil
}

// Info reports the discretization parameters, building the table if needed.
func (d *Decomposer[T]) Info() (Info, error) {
	t, err := d.load()
	if err != nil {
		return Info{}, err
	}

	return Info{
		Characters: len(t.weights),
		Modulus:    t.modulus(),
		GCD:        t.gcd,
		Precision:  t.precision,
		MinError:   t.minError,
		MaxError:   t.maxError,
	}, nil
}

// Weights returns a copy of the sorted weight list.
func (d *Decomposer[T]) Weights() ([]Weight[T], error) {
	t, err := d.load()
	if err != nil {
		return nil, err
	}

	return slices.Clone(t.weights), nil
}

// CharacterOrder returns, for each sorted position, the alphabet index of
// its character. Decomposition vectors use this order.
func (d *Decomposer[T]) CharacterOrder() ([]int, error) {
	t, err := d.load()
	if err != nil {
		return nil, err
	}

	return slices.Clone(t.order), nil
}

// MaybeDecomposable reports whether some integer mass within the tolerance
// window of mass is a non-negative combination of the character masses.
//
// A false result guarantees Decompose(mass, nil) is empty. A true result
// does not guarantee the opposite: the exact real-mass check or the
// validator may still reject every candidate.
func (d *Decomposer[T]) MaybeDecomposable(mass float64) (bool, error) {
	if !(mass >= 0) {
		return false, fmt.Errorf("%w: %g", ErrNegativeMass, mass)
	}
	tol := d.opts.Deviation.AbsoluteFor(mass)

	return d.MaybeDecomposableRange(mass-tol, mass+tol)
}

// MaybeDecomposableRange is MaybeDecomposable for the explicit real mass
// range [from, to].
func (d *Decomposer[T]) MaybeDecomposableRange(from, to float64) (bool, error) {
	t, err := d.load()
	if err != nil {
		return false, err
	}
	lo, hi, err := t.integerBound(from, to)
	if err != nil {
		return false, err
	}
	for m := lo; m <= hi; m++ {
		if t.reachable(m) {
			return true, nil
		}
	}

	return false, nil
}

// Decompose returns every decomposition of mass within tolerance that
// satisfies bounds and the validator. Vectors are in sorted-weight order
// (see CharacterOrder).
//
// A mass of exactly 0 yields an empty result, not the all-zero vector.
// Results come in production order: ascending integer mass, then
// enumeration order. An empty result is not an error.
func (d *Decomposer[T]) Decompose(mass float64, bounds Bounds[T]) ([][]int, error) {
	it, err := d.Iterator(mass, bounds)
	if err != nil {
		return nil, err
	}

	results := [][]int{}
	for it.Next() {
		results = append(results, it.Decomposition())
	}
	if err = it.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// DecomposeToCompomers is Decompose with every vector converted to a
// Compomer in alphabet order.
func (d *Decomposer[T]) DecomposeToCompomers(mass float64, bounds Bounds[T]) ([]Compomer[T], error) {
	vectors, err := d.Decompose(mass, bounds)
	if err != nil {
		return nil, err
	}
	t, err := d.load()
	if err != nil {
		return nil, err
	}

	out := make([]Compomer[T], len(vectors))
	for i, v := range vectors {
		out[i] = t.compomer(v)
	}

	return out, nil
}

// Compomer converts a sorted-order coefficient vector into a Compomer.
func (d *Decomposer[T]) Compomer(coefficients []int) (Compomer[T], error) {
	t, err := d.load()
	if err != nil {
		return nil, err
	}
	if err = t.checkVector(coefficients); err != nil {
		return nil, err
	}

	return t.compomer(coefficients), nil
}

// Mass returns the exact real mass of a sorted-order coefficient vector.
func (d *Decomposer[T]) Mass(coefficients []int) (float64, error) {
	t, err := d.load()
	if err != nil {
		return 0, err
	}
	if err = t.checkVector(coefficients); err != nil {
		return 0, err
	}

	return t.realMass(coefficients), nil
}
