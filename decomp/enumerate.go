// Package decomp — bounded enumeration of integer decompositions.
//
// The enumerator lists every coefficient vector c with
//
//	Σ c_i · I_i = M   and   c_i ≤ bound_i
//
// by a depth-first walk from the heaviest character (level n-1) down to the
// lightest (level 0). The walk is iterative: each level keeps its own frame
// so the caller can stop and resume between vectors.
//
// Pruning at level i ≥ 1, for a residual mass R entering the level:
//  1. Explicit cap: c_i ≤ min(bound_i, R / I_i).
//  2. Reachability: the residual left for characters 0..i-1,
//     R' = R − c_i·I_i, must satisfy R' ≥ ERT[R' mod a][i-1].
//
// Coefficients are visited per residue class: for j in [0, L_i) the
// candidates are c = j, j+L_i, j+2·L_i, … Each step keeps R' mod a fixed and
// lowers R' by LCM_i, so one ERT lookup per class decides the whole run,
// which stops as soon as R' drops below that class's minimum.
//
// Level 0 is forced: c_0 = R / I_0 when I_0 divides R and c_0 ≤ bound_0.
// Characters are fixed in strictly decreasing index order, so no vector is
// produced twice.
package decomp

// frame is the state of one level of the walk.
type frame struct {
	mass  int64 // residual mass entering the level
	cap   int64 // largest admissible coefficient
	class int64 // residue-class offset j in [0, L)
	count int64 // current coefficient; -1 before the first one
	rest  int64 // residual left for the lower levels
	floor int64 // ERT minimum of rest's residue class
}

// enumerator walks the decompositions of one integer mass at a time.
// It is single-use per goroutine; reset starts a new mass.
type enumerator[T comparable] struct {
	t      *table[T]
	bounds []int64 // per sorted character coefficient cap
	coef   []int64 // current vector, valid after next returns true
	frames []frame
	level  int
	done   bool
}

// newEnumerator prepares an enumerator over t with the given caps.
func (t *table[T]) newEnumerator(bounds []int64) *enumerator[T] {
	n := len(t.weights)

	return &enumerator[T]{
		t:      t,
		bounds: bounds,
		coef:   make([]int64, n),
		frames: make([]frame, n),
		done:   true,
	}
}

// reset starts the enumeration of integer mass m.
func (e *enumerator[T]) reset(m int64) {
	clear(e.coef)
	e.level = len(e.frames) - 1
	e.done = m < 0
	e.enter(e.level, m)
}

// enter initializes the frame of level i for residual mass m.
func (e *enumerator[T]) enter(i int, m int64) {
	f := &e.frames[i]
	f.mass = m
	f.class, f.count, f.rest, f.floor = 0, -1, 0, 0
	if i == 0 {
		return
	}
	f.cap = m / e.t.weights[i].IntegerMass
	if e.bounds[i] < f.cap {
		f.cap = e.bounds[i]
	}
}

// next advances to the next vector. It returns false once the tree is
// exhausted; e.coef holds the vector otherwise.
func (e *enumerator[T]) next() bool {
	n := len(e.frames)
	for !e.done {
		if e.level == n {
			e.done = true
			break
		}

		if e.level == 0 {
			m, w := e.frames[0].mass, e.t.weights[0].IntegerMass
			e.level = 1
			if m%w == 0 && m/w <= e.bounds[0] {
				e.coef[0] = m / w
				return true
			}
			continue
		}

		f := &e.frames[e.level]
		if !e.advance(e.level, f) {
			e.coef[e.level] = 0
			e.level++
			continue
		}
		e.coef[e.level] = f.count
		e.level--
		e.enter(e.level, f.rest)
	}

	return false
}

// advance moves f to its next admissible coefficient.
func (e *enumerator[T]) advance(i int, f *frame) bool {
	w := &e.t.weights[i]
	if f.count >= 0 {
		if c := f.count + w.L; c <= f.cap && f.rest-w.LCM >= f.floor {
			f.count = c
			f.rest -= w.LCM
			return true
		}
		f.class++
	}

	a := e.t.modulus()
	for ; f.class < w.L && f.class <= f.cap; f.class++ {
		rest := f.mass - f.class*w.IntegerMass
		floor := e.t.ert[rest%a][i-1]
		if floor == Unreachable || rest < floor {
			continue
		}
		f.count, f.rest, f.floor = f.class, rest, floor
		return true
	}

	return false
}
