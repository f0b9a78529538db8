package decompcache_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/compomer/alphabet"
	"github.com/katalvlaran/compomer/decomp"
	"github.com/katalvlaran/compomer/decompcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAlphabet(t *testing.T, chars []string, weights []float64) *alphabet.Weighted[string] {
	t.Helper()
	a, err := alphabet.New(chars, weights)
	require.NoError(t, err)

	return a
}

// TestNew_BadSize rejects non-positive capacities.
func TestNew_BadSize(t *testing.T) {
	_, err := decompcache.New[string](0)
	assert.ErrorIs(t, err, decompcache.ErrBadSize)
	_, err = decompcache.New[string](-3)
	assert.ErrorIs(t, err, decompcache.ErrBadSize)
}

// TestGet_HitAndMiss shares one decomposer between equal alphabets.
func TestGet_HitAndMiss(t *testing.T) {
	c, err := decompcache.New[string](4, decomp.WithPrecision(1e-3))
	require.NoError(t, err)

	a1 := mustAlphabet(t, []string{"C", "H"}, []float64{12, 1.0078})
	a2 := mustAlphabet(t, []string{"C", "H"}, []float64{12, 1.0078})
	b := mustAlphabet(t, []string{"C", "H", "O"}, []float64{12, 1.0078, 15.9949})

	d1, err := c.Get(a1)
	require.NoError(t, err)
	d2, err := c.Get(a2)
	require.NoError(t, err)
	d3, err := c.Get(b)
	require.NoError(t, err)

	assert.Same(t, d1, d2, "equal alphabets share a decomposer")
	assert.NotSame(t, d1, d3)
	assert.Equal(t, decompcache.Stats{Hits: 1, Misses: 2, Len: 2}, c.Stats())

	got, err := d1.Decompose(26.0156, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, got, "cached decomposer is usable")
}

// TestGet_Eviction keeps at most size decomposers.
func TestGet_Eviction(t *testing.T) {
	c, err := decompcache.New[string](1, decomp.WithPrecision(1e-3))
	require.NoError(t, err)

	a := mustAlphabet(t, []string{"A"}, []float64{3})
	b := mustAlphabet(t, []string{"B"}, []float64{5})

	da, err := c.Get(a)
	require.NoError(t, err)
	_, err = c.Get(b)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Stats().Len)

	da2, err := c.Get(a)
	require.NoError(t, err)
	assert.NotSame(t, da, da2, "evicted alphabet is rebuilt")
	assert.Equal(t, uint64(3), c.Stats().Misses)

	c.Purge()
	assert.Zero(t, c.Stats().Len)
}

// TestGet_Errors propagates construction failures and caches nothing.
func TestGet_Errors(t *testing.T) {
	c, err := decompcache.New[string](2, decomp.WithPrecision(1))
	require.NoError(t, err)

	_, err = c.Get(nil)
	assert.ErrorIs(t, err, decomp.ErrEmptyAlphabet)

	tiny := mustAlphabet(t, []string{"e"}, []float64{0.5})
	_, err = c.Get(tiny)
	assert.ErrorIs(t, err, decomp.ErrWeightBelowPrecision)
	assert.Zero(t, c.Stats().Len)
}

// TestGet_Concurrent: racing first lookups all end up with one decomposer.
func TestGet_Concurrent(t *testing.T) {
	c, err := decompcache.New[string](2, decomp.WithPrecision(1e-4))
	require.NoError(t, err)
	a := mustAlphabet(t, []string{"C", "H", "O"}, []float64{12, 1.0078, 15.9949})

	const workers = 8
	var (
		wg  sync.WaitGroup
		out = make([]*decomp.Decomposer[string], workers)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			d, err := c.Get(a)
			if err == nil {
				out[w] = d
			}
		}(w)
	}
	wg.Wait()

	cached, err := c.Get(a)
	require.NoError(t, err)
	for w := 0; w < workers; w++ {
		require.NotNil(t, out[w])
		assert.Same(t, cached, out[w], "worker %d", w)
	}
}

// TestFingerprint depends on characters, weights and order.
func TestFingerprint(t *testing.T) {
	a := mustAlphabet(t, []string{"C", "H"}, []float64{12, 1})
	b := mustAlphabet(t, []string{"C", "H"}, []float64{12, 1})
	swapped := mustAlphabet(t, []string{"H", "C"}, []float64{1, 12})
	heavier := mustAlphabet(t, []string{"C", "H"}, []float64{12, 2})

	assert.Equal(t, decompcache.Fingerprint[string](a), decompcache.Fingerprint[string](b))
	assert.NotEqual(t, decompcache.Fingerprint[string](a), decompcache.Fingerprint[string](swapped))
	assert.NotEqual(t, decompcache.Fingerprint[string](a), decompcache.Fingerprint[string](heavier))
}
