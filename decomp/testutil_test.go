package decomp_test

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/katalvlaran/compomer/alphabet"
	"github.com/katalvlaran/compomer/decomp"
	"github.com/stretchr/testify/require"
)

// Monoisotopic masses used across tests.
const (
	massC = 12.0
	massH = 1.00782503207
	massN = 14.0030740048
	massO = 15.99491461956
	massP = 30.97376163
	massS = 31.97207100
)

// rawAlphabet implements decomp's alphabet contract without validation, so
// tests can feed weights that alphabet.New would reject.
type rawAlphabet struct {
	chars   []string
	weights []float64
}

func (r rawAlphabet) Size() int              { return len(r.chars) }
func (r rawAlphabet) Get(i int) string       { return r.chars[i] }
func (r rawAlphabet) WeightOf(i int) float64 { return r.weights[i] }
func (r rawAlphabet) IndexOf(c string) int   { return slices.Index(r.chars, c) }

// mustAlphabet builds a string alphabet or fails the test.
func mustAlphabet(t testing.TB, chars []string, weights []float64) *alphabet.Weighted[string] {
	t.Helper()
	a, err := alphabet.New(chars, weights)
	require.NoError(t, err)

	return a
}

// chnops returns the CHNOPS alphabet.
func chnops(t testing.TB) *alphabet.Weighted[string] {
	return mustAlphabet(t,
		[]string{"C", "H", "N", "O", "P", "S"},
		[]float64{massC, massH, massN, massO, massP, massS},
	)
}

// mustDecomposer builds a decomposer or fails the test.
func mustDecomposer(t testing.TB, a alphabet.Alphabet[string], opts ...decomp.Option) *decomp.Decomposer[string] {
	t.Helper()
	d, err := decomp.New[string](a, opts...)
	require.NoError(t, err)

	return d
}

// bruteForce enumerates, in alphabet order, every vector whose real mass is
// within tol of mass and whose coefficients respect bounds.
func bruteForce(a alphabet.Alphabet[string], mass, tol float64, bounds decomp.Bounds[string]) [][]int {
	var (
		n   = a.Size()
		lo  = make([]int, n)
		hi  = make([]int, n)
		cur = make([]int, n)
		out [][]int
		rec func(i int, sum float64)
	)
	for i := 0; i < n; i++ {
		hi[i] = math.MaxInt
		if iv, ok := bounds[a.Get(i)]; ok {
			lo[i], hi[i] = iv.Min, iv.Max
		}
	}
	rec = func(i int, sum float64) {
		if i == n {
			if math.Abs(sum-mass) <= tol {
				out = append(out, slices.Clone(cur))
			}
			return
		}
		w := a.WeightOf(i)
		for c := lo[i]; c <= hi[i] && sum+float64(c)*w <= mass+tol; c++ {
			cur[i] = c
			rec(i+1, sum+float64(c)*w)
		}
		cur[i] = 0
	}
	rec(0, 0)

	return out
}

// toAlphabetOrder reorders sorted-order vectors with the decomposer's map.
func toAlphabetOrder(t testing.TB, d *decomp.Decomposer[string], vs [][]int) [][]int {
	t.Helper()
	order, err := d.CharacterOrder()
	require.NoError(t, err)

	out := make([][]int, len(vs))
	for k, v := range vs {
		out[k] = make([]int, len(v))
		for i, c := range v {
			out[k][order[i]] = c
		}
	}

	return out
}

// vectorKeys renders vectors as sorted strings for set comparison.
func vectorKeys(vs [][]int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = fmt.Sprint(v)
	}
	slices.Sort(out)

	return out
}
