// Package compomer decomposes real masses into combinations of weighted
// characters: given an alphabet such as {C, H, N, O, P, S} with monoisotopic
// masses and a measured mass, it lists every molecular formula (compomer)
// whose mass lies within the measurement tolerance.
//
// 🚀 What is compomer?
//
//	An implementation of the Böcker–Lipták round-robin algorithm:
//		• Discretization: real weights → integer masses at a chosen precision
//		• Extended residue table (ERT): one row per residue of the smallest mass
//		• Feasibility: O(1) "is this integer mass reachable at all?"
//		• Enumeration: branch-and-bound over residue classes, per integer mass
//		• Bounds and validators: per-character ranges, custom result filters
//
// ✨ Why compomer?
//
//   - Exhaustive – every formula within tolerance, no heuristic pruning
//   - Lazy – build the table once, iterate results one at a time
//   - Concurrent – a built Decomposer is safe to share between goroutines
//
// The module is organized into four packages and one command:
//
//	alphabet/    — ordered characters with positive real weights
//	decomp/      — the decomposer: residue table, enumerator, iterator
//	decompcache/ — LRU cache of decomposers keyed by alphabet fingerprint
//	config/      — YAML configuration: alphabet, precision, tolerance, bounds
//	cmd/compomer — command-line front end (decompose, check, table, config)
//
// Quick example (integer weights, tolerance 0.1):
//
//	C = 12, H = 1, mass 26
//
//	    H26
//	    CH14
//	    C2H2
//
//	go install github.com/katalvlaran/compomer/cmd/compomer@latest
package compomer
