package alphabet_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/compomer/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_Errors verifies the sentinel returned for each malformed input.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name    string
		chars   []string
		weights []float64
		want    error
	}{
		{"empty", nil, nil, alphabet.ErrEmpty},
		{"length mismatch", []string{"C", "H"}, []float64{12}, alphabet.ErrLengthMismatch},
		{"duplicate", []string{"C", "C"}, []float64{12, 12}, alphabet.ErrDuplicateCharacter},
		{"zero weight", []string{"C", "H"}, []float64{12, 0}, alphabet.ErrBadWeight},
		{"negative weight", []string{"C"}, []float64{-1}, alphabet.ErrBadWeight},
		{"NaN weight", []string{"C"}, []float64{math.NaN()}, alphabet.ErrBadWeight},
		{"Inf weight", []string{"C"}, []float64{math.Inf(1)}, alphabet.ErrBadWeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := alphabet.New(tc.chars, tc.weights)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestNew_Lookup checks Size, Get, WeightOf and IndexOf on a small alphabet.
func TestNew_Lookup(t *testing.T) {
	a, err := alphabet.New([]string{"C", "H", "O"}, []float64{12, 1.0078, 15.9949})
	require.NoError(t, err)

	assert.Equal(t, 3, a.Size())
	assert.Equal(t, "H", a.Get(1))
	assert.Equal(t, 15.9949, a.WeightOf(2))
	assert.Equal(t, 0, a.IndexOf("C"))
	assert.Equal(t, -1, a.IndexOf("N"), "absent character must map to -1")
	assert.Equal(t, []string{"C", "H", "O"}, a.Characters())
}

// TestNew_CopiesInput ensures later mutation of the caller's slices has no effect.
func TestNew_CopiesInput(t *testing.T) {
	chars := []string{"A", "B"}
	weights := []float64{1, 2}
	a, err := alphabet.New(chars, weights)
	require.NoError(t, err)

	chars[0], weights[0] = "Z", 99
	assert.Equal(t, "A", a.Get(0))
	assert.Equal(t, 1.0, a.WeightOf(0))
}

// TestFromMap_SortedOrder checks that map input yields key-sorted order.
func TestFromMap_SortedOrder(t *testing.T) {
	a, err := alphabet.FromMap(map[string]float64{"O": 16, "C": 12, "H": 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "H", "O"}, a.Characters())
	assert.Equal(t, 1.0, a.WeightOf(a.IndexOf("H")))

	_, err = alphabet.FromMap(map[string]float64{})
	assert.ErrorIs(t, err, alphabet.ErrEmpty)
}

// TestEqual compares alphabets by characters, weights and order.
func TestEqual(t *testing.T) {
	a, _ := alphabet.New([]string{"C", "H"}, []float64{12, 1})
	b, _ := alphabet.New([]string{"C", "H"}, []float64{12, 1})
	c, _ := alphabet.New([]string{"H", "C"}, []float64{1, 12})
	d, _ := alphabet.New([]string{"C", "H"}, []float64{12, 1.0000001})
	e, _ := alphabet.New([]string{"C"}, []float64{12})

	assert.True(t, alphabet.Equal[string](a, b))
	assert.False(t, alphabet.Equal[string](a, c), "order matters")
	assert.False(t, alphabet.Equal[string](a, d), "weights compared bitwise")
	assert.False(t, alphabet.Equal[string](a, e), "size differs")
}
