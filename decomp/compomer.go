package decomp

import (
	"fmt"
	"strconv"
	"strings"
)

// Count is the multiplicity of one character in a compomer.
type Count[T comparable] struct {
	Character T
	N         int
}

// Compomer is a decomposition in alphabet order with zero counts dropped.
type Compomer[T comparable] []Count[T]

// String renders the compomer as concatenated characters and counts,
// omitting counts of 1: "C6H12O6", "H2O".
func (c Compomer[T]) String() string {
	var b strings.Builder
	for _, x := range c {
		fmt.Fprint(&b, x.Character)
		if x.N != 1 {
			b.WriteString(strconv.Itoa(x.N))
		}
	}

	return b.String()
}

// Count returns the multiplicity of ch, 0 if absent.
func (c Compomer[T]) Count(ch T) int {
	for _, x := range c {
		if x.Character == ch {
			return x.N
		}
	}

	return 0
}

// compomer converts a sorted-order vector into alphabet order.
func (t *table[T]) compomer(coefficients []int) Compomer[T] {
	byIndex := make([]int, len(coefficients))
	for i, c := range coefficients {
		byIndex[t.order[i]] = c
	}

	out := make(Compomer[T], 0, len(byIndex))
	for idx, n := range byIndex {
		if n == 0 {
			continue
		}
		out = append(out, Count[T]{Character: t.weights[t.position[idx]].Owner, N: n})
	}

	return out
}

// checkVector rejects vectors of the wrong length or with negative entries.
func (t *table[T]) checkVector(coefficients []int) error {
	if len(coefficients) != len(t.weights) {
		return fmt.Errorf("%w: length %d, want %d", ErrBadCoefficients, len(coefficients), len(t.weights))
	}
	for i, c := range coefficients {
		if c < 0 {
			return fmt.Errorf("%w: coefficient %d is %d", ErrBadCoefficients, i, c)
		}
	}

	return nil
}
