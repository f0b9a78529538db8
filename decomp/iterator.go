package decomp

import (
	"fmt"
	"math"
)

// Iterator yields the decompositions of one mass lazily, in the same order
// as Decompose. It is not safe for concurrent use.
//
//	it, err := d.Iterator(180.0634, nil)
//	if err != nil { ... }
//	for it.Next() {
//		use(it.Decomposition())
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator[T comparable] struct {
	d    *Decomposer[T]
	t    *table[T]
	mass float64
	tol  float64
	mins []int64 // per sorted position
	enum *enumerator[T]

	next, hi   int64 // integer masses still to enumerate: [next, hi]
	pendingMin bool  // the minimum vector alone is a candidate
	active     bool  // enum holds a partially walked mass
	done       bool

	cur []int
	err error
}

// Iterator prepares a lazy decomposition of mass under bounds.
//
// Errors are those of Decompose that can be detected before enumeration:
// ErrNegativeMass, ErrBadBounds, ErrOverflow and table construction errors.
func (d *Decomposer[T]) Iterator(mass float64, bounds Bounds[T]) (*Iterator[T], error) {
	if !(mass >= 0) {
		return nil, fmt.Errorf("%w: %g", ErrNegativeMass, mass)
	}
	t, err := d.load()
	if err != nil {
		return nil, err
	}

	it := &Iterator[T]{d: d, t: t, mass: mass, done: mass == 0}
	if it.done {
		return it, nil
	}

	caps, err := it.applyBounds(bounds)
	if err != nil {
		return nil, err
	}

	// The minimum contribution is fixed up front; what is left is an
	// unbounded-below problem on the reduced mass.
	it.tol = d.opts.Deviation.AbsoluteFor(mass)
	var (
		fixed   float64
		anyMins bool
	)
	for i, m := range it.mins {
		if m > 0 {
			anyMins = true
			fixed += float64(m) * t.weights[i].Mass
		}
	}
	reduced := mass - fixed
	it.pendingMin = anyMins && d.opts.Deviation.InErrorWindow(mass, fixed)

	if it.next, it.hi, err = t.integerBound(reduced-it.tol, reduced+it.tol); err != nil {
		return nil, err
	}
	it.enum = t.newEnumerator(caps)

	return it, nil
}

// applyBounds resolves bounds to per sorted position minimums and caps.
func (it *Iterator[T]) applyBounds(bounds Bounds[T]) ([]int64, error) {
	n := len(it.t.weights)
	it.mins = make([]int64, n)
	caps := make([]int64, n)
	for i := range caps {
		caps[i] = math.MaxInt64
	}

	for c, iv := range bounds {
		idx := it.d.alphabet.IndexOf(c)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %v is not in the alphabet", ErrBadBounds, c)
		}
		if iv.Min < 0 || iv.Max < iv.Min {
			return nil, fmt.Errorf("%w: %v=[%d, %d]", ErrBadBounds, c, iv.Min, iv.Max)
		}
		pos := it.t.position[idx]
		it.mins[pos] = int64(iv.Min)
		if iv.Max != Unbounded {
			caps[pos] = int64(iv.Max - iv.Min)
		}
	}

	return caps, nil
}

// Next advances to the next accepted decomposition.
func (it *Iterator[T]) Next() bool {
	if it.done || it.err != nil {
		return false
	}

	if it.pendingMin {
		it.pendingMin = false
		if it.accept(it.vector(nil)) {
			return true
		}
		if it.err != nil {
			return false
		}
	}

	for {
		if it.active && it.enum.next() {
			v := it.vector(it.enum.coef)
			if !it.d.opts.Deviation.InErrorWindow(it.mass, it.t.realMass(v)) {
				continue
			}
			if it.accept(v) {
				return true
			}
			if it.err != nil {
				return false
			}
			continue
		}

		it.active = false
		if it.next > it.hi {
			it.done = true
			return false
		}
		m := it.next
		it.next++
		// Mass 0 is only the empty vector; the minimum vector covers it.
		if m == 0 {
			continue
		}
		it.enum.reset(m)
		it.active = true
	}
}

// Decomposition returns the current vector in sorted-weight order. The
// slice is owned by the caller and is not reused by later calls.
func (it *Iterator[T]) Decomposition() []int { return it.cur }

// Err returns the error that stopped the iteration, if any.
func (it *Iterator[T]) Err() error { return it.err }

// vector adds the per-character minimums back to coef (nil means zero).
func (it *Iterator[T]) vector(coef []int64) []int {
	v := make([]int, len(it.mins))
	for i, m := range it.mins {
		c := m
		if coef != nil {
			c += coef[i]
		}
		v[i] = int(c)
	}

	return v
}

// accept runs the validator on v and makes it current when it passes.
func (it *Iterator[T]) accept(v []int) bool {
	if vd := it.d.validator; vd != nil {
		ok, err := vd.Validate(v, it.t.order, it.d.alphabet)
		if err != nil {
			it.err = fmt.Errorf("%w: %w", ErrValidator, err)
			return false
		}
		if !ok {
			return false
		}
	}
	it.cur = v

	return true
}
