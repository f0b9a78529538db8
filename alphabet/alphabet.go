package alphabet

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

// Sentinel errors returned by New and FromMap.
var (
	// ErrEmpty indicates that no characters were supplied.
	ErrEmpty = errors.New("alphabet: no characters")

	// ErrLengthMismatch indicates len(chars) != len(weights).
	ErrLengthMismatch = errors.New("alphabet: characters and weights differ in length")

	// ErrDuplicateCharacter indicates that a character occurs more than once.
	ErrDuplicateCharacter = errors.New("alphabet: duplicate character")

	// ErrBadWeight indicates a NaN, infinite, zero or negative weight.
	ErrBadWeight = errors.New("alphabet: weight must be positive and finite")
)

// Alphabet is a read-only ordered set of weighted characters.
//
// Implementations must be immutable for as long as a decomposer holds them.
// IndexOf returns -1 for characters that are not part of the alphabet.
type Alphabet[T comparable] interface {
	Size() int
	Get(i int) T
	WeightOf(i int) float64
	IndexOf(c T) int
}

// Weighted is a slice-backed Alphabet.
type Weighted[T comparable] struct {
	chars   []T
	weights []float64
	index   map[T]int
}

// Ensure interface compliance at compile time.
var _ Alphabet[string] = (*Weighted[string])(nil)

// New builds an alphabet from parallel character and weight slices.
// Both slices are copied; the order of chars defines the alphabet order.
func New[T comparable](chars []T, weights []float64) (*Weighted[T], error) {
	if len(chars) == 0 {
		return nil, ErrEmpty
	}
	if len(chars) != len(weights) {
		return nil, ErrLengthMismatch
	}

	w := &Weighted[T]{
		chars:   slices.Clone(chars),
		weights: slices.Clone(weights),
		index:   make(map[T]int, len(chars)),
	}
	for i, c := range w.chars {
		if _, dup := w.index[c]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateCharacter, c)
		}
		if x := w.weights[i]; math.IsNaN(x) || math.IsInf(x, 0) || x <= 0 {
			return nil, fmt.Errorf("%w: %v=%v", ErrBadWeight, c, x)
		}
		w.index[c] = i
	}

	return w, nil
}

// FromMap builds an alphabet from a character→weight map.
// Characters are ordered ascending so the result is deterministic.
func FromMap[T cmp.Ordered](m map[T]float64) (*Weighted[T], error) {
	chars := make([]T, 0, len(m))
	for c := range m {
		chars = append(chars, c)
	}
	slices.Sort(chars)

	weights := make([]float64, len(chars))
	for i, c := range chars {
		weights[i] = m[c]
	}

	return New(chars, weights)
}

// Size returns the number of characters.
func (w *Weighted[T]) Size() int { return len(w.chars) }

// Get returns the character at position i.
func (w *Weighted[T]) Get(i int) T { return w.chars[i] }

// WeightOf returns the weight of the character at position i.
func (w *Weighted[T]) WeightOf(i int) float64 { return w.weights[i] }

// IndexOf returns the position of c, or -1 if c is not in the alphabet.
func (w *Weighted[T]) IndexOf(c T) int {
	if i, ok := w.index[c]; ok {
		return i
	}

	return -1
}

// Characters returns a copy of the characters in alphabet order.
func (w *Weighted[T]) Characters() []T { return slices.Clone(w.chars) }

// Equal reports whether a and b hold the same characters with bit-identical
// weights in the same order.
func Equal[T comparable](a, b Alphabet[T]) bool {
	if a.Size() != b.Size() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if a.Get(i) != b.Get(i) || math.Float64bits(a.WeightOf(i)) != math.Float64bits(b.WeightOf(i)) {
			return false
		}
	}

	return true
}
