// Package decomp decomposes real masses over a weighted alphabet: it lists
// every compomer (multiset of characters) whose total weight lies within a
// tolerance of the target mass.
//
// 🚀 What is mass decomposition?
//
//	It is the money-changing problem with real-valued coins. Given
//	characters C=12.0, H=1.007825, O=15.994915 and a mass of 18.0106 ± 1 mDa,
//	the only compomer is H2O. It is the first step of molecular formula
//	identification in mass spectrometry, before any chemical rule is applied.
//
// ✨ How it works:
//   - Weights are discretized: I = floor(mass / precision), with the common
//     divisor of all I folded into the precision.
//   - An extended residue table (ERT) stores, for every residue r modulo the
//     smallest integer mass a and every alphabet prefix 0..j, the smallest
//     integer mass ≡ r that characters 0..j can reach.
//   - The tolerance window is mapped to an integer interval, widened by the
//     worst-case discretization error so nothing is missed.
//   - For each integer mass a branch-and-bound walk enumerates the exact
//     integer decompositions, pruned by the ERT and by per-character bounds.
//   - Every candidate is re-checked against the real mass and the optional
//     Validator.
//
// ⚙️ Usage:
//
//	a, _ := alphabet.New([]string{"C", "H", "O"}, []float64{12, 1.00782503207, 15.99491461956})
//	d, err := decomp.New[string](a,
//		decomp.WithPrecision(1e-5),
//		decomp.WithPPM(5),
//		decomp.WithAbsoluteError(1e-3),
//	)
//	if err != nil {
//		// ErrEmptyAlphabet, ErrBadWeight, ErrBadPrecision, ErrBadDeviation
//	}
//	compomers, err := d.DecomposeToCompomers(18.0106, decomp.Bounds[string]{"C": {Min: 0, Max: 0}})
//
// Concurrency:
//
//	The table is built once, on first use or by Init, and never mutated.
//	Decompose, MaybeDecomposable and Iterator are safe to call from many
//	goroutines; each call owns its enumeration state.
//
// Complexity:
//   - Table:     O(a·n) time and memory.
//   - Feasibility: O(w) for an integer window of width w.
//   - Decompose: O(w · n · a · |output|) in the worst case; in practice the
//     ERT prunes nearly every dead branch.
//
// Reference: S. Böcker, Zs. Lipták, "A fast and simple algorithm for the
// money changing problem", Algorithmica 48 (2007).
package decomp
