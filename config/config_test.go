package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/compomer/alphabet"
	"github.com/katalvlaran/compomer/config"
	"github.com/katalvlaran/compomer/decomp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse_Empty keeps every default.
func TestParse_Empty(t *testing.T) {
	c, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
	assert.Len(t, c.Alphabet, 6)
	assert.Nil(t, c.DecompBounds())
}

// TestParse_Overrides replaces the alphabet and reads open-ended bounds.
func TestParse_Overrides(t *testing.T) {
	c, err := config.Parse([]byte(`
precision: 1.0e-3
ppm: 2
alphabet:
  - {symbol: C, mass: 12.0}
  - {symbol: H, mass: 1.0078}
bounds:
  C: {min: 1, max: 4}
  H: {min: 2}
`))
	require.NoError(t, err)

	assert.Equal(t, 1e-3, c.Precision)
	assert.Equal(t, 2.0, c.PPM)
	assert.Equal(t, decomp.DefaultAbsolute, c.Absolute, "absent key keeps its default")
	assert.Equal(t, []config.Element{{Symbol: "C", Mass: 12}, {Symbol: "H", Mass: 1.0078}}, c.Alphabet)
	assert.Equal(t, decomp.Bounds[string]{
		"C": {Min: 1, Max: 4},
		"H": {Min: 2, Max: decomp.Unbounded},
	}, c.DecompBounds())

	a, err := c.BuildAlphabet()
	require.NoError(t, err)
	assert.Equal(t, 2, a.Size())

	d, err := decomp.New[string](a, c.Options()...)
	require.NoError(t, err)
	assert.Equal(t, decomp.Deviation{PPM: 2, Absolute: decomp.DefaultAbsolute}, d.Deviation())
	assert.Equal(t, 1e-3, d.Options().Precision)
}

// TestParse_Errors covers each validation sentinel.
func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{"empty alphabet", "alphabet: []", config.ErrNoAlphabet},
		{"zero precision", "precision: 0", config.ErrBadPrecision},
		{"negative ppm", "ppm: -1", config.ErrBadDeviation},
		{"negative absolute", "absolute: -0.1", config.ErrBadDeviation},
		{"unknown bound", "bounds: {Xx: {min: 0, max: 1}}", config.ErrUnknownBound},
		{"negative min", "bounds: {C: {min: -1}}", config.ErrBadBound},
		{"max below min", "bounds: {C: {min: 3, max: 2}}", config.ErrBadBound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.yaml))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := config.Parse([]byte("precision: [1, 2]"))
	assert.Error(t, err, "malformed YAML")
}

// TestBuildAlphabet_Duplicate surfaces alphabet validation.
func TestBuildAlphabet_Duplicate(t *testing.T) {
	c := config.Default()
	c.Alphabet = append(c.Alphabet, config.Element{Symbol: "C", Mass: 13.00335})
	_, err := c.BuildAlphabet()
	assert.ErrorIs(t, err, alphabet.ErrDuplicateCharacter)
}

// TestLoad reads a file written by Marshal.
func TestLoad(t *testing.T) {
	c := config.Default()
	four := 4
	c.Bounds = map[string]config.Range{"S": {Min: 0, Max: &four}}
	data, err := c.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "compomer.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
