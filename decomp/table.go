// Package decomp — discretization and the extended residue table (ERT).
//
// The table is computed once per decomposer, in this order:
//  1. sortWeights   — copy the alphabet weights, sorted ascending by mass.
//  2. discretize    — integerMass = floor(mass / precision).
//  3. divideByGCD   — divide every integer mass by their common divisor d
//     and multiply precision by d. This keeps the table small while the
//     integer relationships stay exact.
//  4. computeLCMs   — L = a/gcd(a, I), LCM = L·I for every character.
//  5. calcERT       — round-robin relaxation over the residues modulo
//     a = weights[0].IntegerMass.
//  6. computeErrors — bounds of the relative discretization error.
//
// Complexity: O(n log n) for the sort, O(a·n) time and memory for the ERT,
// with a·n capped at maxTableCells.
// The table is never mutated after construction, so it is safe for
// concurrent readers.
package decomp

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/compomer/alphabet"
)

// maxTableCells caps the ERT at a·n cells (2 GiB of int64).
const maxTableCells = 1 << 28

// table is the immutable precomputation shared by every call of a decomposer.
type table[T comparable] struct {
	weights   []Weight[T] // ascending by Mass
	order     []int       // sorted position → alphabet index
	position  []int       // alphabet index → sorted position
	ert       [][]int64   // [a][n], Unreachable for empty residue classes
	precision float64     // effective grain, after the GCD rescale
	gcd       int64       // common divisor removed from the integer masses
	minError  float64
	maxError  float64
}

// buildTable runs the whole precomputation for alphabet a at precision p.
func buildTable[T comparable](a alphabet.Alphabet[T], p float64) (*table[T], error) {
	t := &table[T]{precision: p, gcd: 1}
	if err := t.sortWeights(a); err != nil {
		return nil, err
	}
	if err := t.discretize(); err != nil {
		return nil, err
	}
	t.divideByGCD()
	if err := t.computeLCMs(); err != nil {
		return nil, err
	}
	if err := t.calcERT(); err != nil {
		return nil, err
	}
	t.computeErrors()

	return t, nil
}

// sortWeights copies the alphabet into weights, ascending by mass.
// Ties keep alphabet order.
func (t *table[T]) sortWeights(a alphabet.Alphabet[T]) error {
	n := a.Size()
	t.order = make([]int, n)
	for i := range t.order {
		t.order[i] = i
		if !finitePositive(a.WeightOf(i)) {
			return fmt.Errorf("%w: %v=%v", ErrBadWeight, a.Get(i), a.WeightOf(i))
		}
	}
	slices.SortStableFunc(t.order, func(i, j int) int {
		switch wi, wj := a.WeightOf(i), a.WeightOf(j); {
		case wi < wj:
			return -1
		case wi > wj:
			return 1
		}

		return 0
	})

	t.weights = make([]Weight[T], n)
	t.position = make([]int, n)
	for i, idx := range t.order {
		t.weights[i] = Weight[T]{Owner: a.Get(idx), Mass: a.WeightOf(idx)}
		t.position[idx] = i
	}

	return nil
}

// discretize sets IntegerMass = floor(Mass / precision).
func (t *table[T]) discretize() error {
	for i := range t.weights {
		w := &t.weights[i]
		q := math.Floor(w.Mass / t.precision)
		if q >= math.MaxInt64 {
			return fmt.Errorf("%w: %v at precision %g", ErrOverflow, w.Owner, t.precision)
		}
		if q < 1 {
			return fmt.Errorf("%w: %v=%g, precision %g", ErrWeightBelowPrecision, w.Owner, w.Mass, t.precision)
		}
		w.IntegerMass = int64(q)
	}

	return nil
}

// divideByGCD removes the common divisor of all integer masses.
// A single-character alphabet ends up with IntegerMass 1.
func (t *table[T]) divideByGCD() {
	d := t.weights[0].IntegerMass
	for i := 1; i < len(t.weights) && d > 1; i++ {
		d = gcd(d, t.weights[i].IntegerMass)
	}
	if d <= 1 {
		return
	}

	t.gcd = d
	t.precision *= float64(d)
	for i := range t.weights {
		t.weights[i].IntegerMass /= d
	}
}

// computeLCMs derives L and LCM for every character relative to the modulus.
func (t *table[T]) computeLCMs() error {
	a := t.modulus()
	if a > math.MaxInt32 {
		return fmt.Errorf("%w: residue table needs %d rows", ErrOverflow, a)
	}
	if cells := a * int64(len(t.weights)); cells > maxTableCells {
		return fmt.Errorf("%w: residue table needs %d cells, limit %d", ErrOverflow, cells, maxTableCells)
	}

	t.weights[0].L, t.weights[0].LCM = 1, a
	for i := 1; i < len(t.weights); i++ {
		w := &t.weights[i]
		w.L = a / gcd(a, w.IntegerMass)
		if w.IntegerMass > math.MaxInt64/w.L {
			return fmt.Errorf("%w: lcm(%d, %d)", ErrOverflow, a, w.IntegerMass)
		}
		w.LCM = w.L * w.IntegerMass
	}

	return nil
}

// calcERT fills the residue table column by column.
//
// Column 0: only multiples of a are reachable, so ERT[0][0]=0 and every
// other row is Unreachable.
// Column j: with d = gcd(a, I_j) the residues split into d cycles of length
// a/d, each stepped by I_j mod a. Each cycle is seeded with its minimum from
// column j-1 (that value is final) and walked once, keeping the running
// minimum of "previous + I_j" and column j-1.
func (t *table[T]) calcERT() error {
	var (
		a     = t.modulus()
		n     = len(t.weights)
		cells = make([]int64, int(a)*n)
	)
	t.ert = make([][]int64, a)
	for r := range t.ert {
		t.ert[r] = cells[r*n : (r+1)*n : (r+1)*n]
		t.ert[r][0] = Unreachable
	}
	t.ert[0][0] = 0

	for j := 1; j < n; j++ {
		w := t.weights[j].IntegerMass
		d := gcd(a, w)
		step := w % a
		for p := int64(0); p < d; p++ {
			seed, at := Unreachable, p
			for q := p; q < a; q += d {
				if v := t.ert[q][j-1]; v < seed {
					seed, at = v, q
				}
			}
			if seed == Unreachable {
				for q := p; q < a; q += d {
					t.ert[q][j] = Unreachable
				}
				continue
			}

			cur, r := seed, at
			t.ert[r][j] = cur
			for k := int64(1); k < a/d; k++ {
				if cur > math.MaxInt64-w {
					return fmt.Errorf("%w: residue table column %d", ErrOverflow, j)
				}
				cur += w
				if r += step; r >= a {
					r -= a
				}
				if prev := t.ert[r][j-1]; prev < cur {
					cur = prev
				}
				t.ert[r][j] = cur
			}
		}
	}

	return nil
}

// computeErrors records the extreme relative errors of the discretization.
func (t *table[T]) computeErrors() {
	t.minError, t.maxError = 0, 0
	for _, w := range t.weights {
		e := (t.precision*float64(w.IntegerMass) - w.Mass) / w.Mass
		t.minError = math.Min(t.minError, e)
		t.maxError = math.Max(t.maxError, e)
	}
}

// modulus returns a, the smallest integer mass.
func (t *table[T]) modulus() int64 { return t.weights[0].IntegerMass }

// integerBound converts the real range [from, to] into the integer masses
// that may hold a decomposition of it. The range is widened by the
// discretization error bounds so no true decomposition is lost.
func (t *table[T]) integerBound(from, to float64) (lo, hi int64, err error) {
	fromD := math.Ceil((1 + t.minError) * from / t.precision)
	toD := math.Floor((1 + t.maxError) * to / t.precision)
	if math.IsNaN(fromD) || math.IsNaN(toD) || toD >= math.MaxInt64 {
		return 0, 0, fmt.Errorf("%w: mass range [%g, %g]", ErrOverflow, from, to)
	}

	return int64(math.Max(0, fromD)), int64(math.Max(0, toD)), nil
}

// reachable reports whether integer mass m is a non-negative combination of
// the integer masses of all characters.
func (t *table[T]) reachable(m int64) bool {
	return m >= t.ert[m%t.modulus()][len(t.weights)-1]
}

// realMass returns the exact weighted sum of coefficients in sorted order.
func (t *table[T]) realMass(coefficients []int) float64 {
	var sum float64
	for i, c := range coefficients {
		sum += float64(c) * t.weights[i].Mass
	}

	return sum
}

// gcd returns the greatest common divisor of two non-negative integers.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
