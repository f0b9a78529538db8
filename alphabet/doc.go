// Package alphabet defines the weighted alphabet consumed by mass
// decomposition.
//
// An alphabet is an ordered, immutable collection of characters, each
// carrying a positive real weight (typically a monoisotopic mass). The
// decomposer reads it through the four-method Alphabet contract and never
// mutates it.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/compomer/alphabet"
//
//	a, err := alphabet.New(
//		[]string{"C", "H", "O"},
//		[]float64{12.0, 1.00782503207, 15.99491461956},
//	)
//	if err != nil {
//		// handle ErrEmpty, ErrLengthMismatch, ErrDuplicateCharacter or ErrBadWeight
//	}
//	i := a.IndexOf("H") // 1
//
// Any type with comparable characters can implement Alphabet; Weighted is
// the slice-backed implementation used by the CLI and the tests.
package alphabet
