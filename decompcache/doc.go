// Package decompcache keeps initialized decomposers for reuse.
//
// Building a residue table costs O(a·n) time and memory, where a is the
// smallest integer mass (about 10^5 for hydrogen at 1e-5 Da). Callers that
// decompose many masses over a handful of alphabets (one per sample, one per
// ionization mode, …) should share one Decomposer per alphabet. Cache does
// that: alphabets are keyed by an xxh3 fingerprint of their characters and
// weights, the least recently used decomposers are evicted, and a
// fingerprint hit is confirmed with alphabet.Equal before it is served.
//
//	c, err := decompcache.New[string](16, decomp.WithPPM(5))
//	d, err := c.Get(a) // built on first use, shared afterwards
//	results, err := d.Decompose(mass, nil)
//
// Cache is safe for concurrent use.
package decompcache
