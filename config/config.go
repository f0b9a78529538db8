// Package config loads the YAML configuration of the compomer CLI: the
// discretization precision, the tolerance, the alphabet and optional
// per-character bounds.
//
// Example file:
//
//	precision: 1.0e-5
//	ppm: 5
//	absolute: 0.001
//	alphabet:
//	  - {symbol: C, mass: 12.0}
//	  - {symbol: H, mass: 1.00782503207}
//	  - {symbol: O, mass: 15.99491461956}
//	bounds:
//	  C: {min: 0, max: 40}
//	  O: {min: 1}
//
// Keys that are absent keep the values of Default.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/compomer/alphabet"
	"github.com/katalvlaran/compomer/decomp"
)

// Sentinel errors returned by Validate.
var (
	// ErrNoAlphabet indicates an empty alphabet list.
	ErrNoAlphabet = errors.New("config: alphabet is empty")

	// ErrBadPrecision indicates a precision that is not positive and finite.
	ErrBadPrecision = errors.New("config: precision must be positive")

	// ErrBadDeviation indicates a negative ppm or absolute tolerance.
	ErrBadDeviation = errors.New("config: ppm and absolute must be non-negative")

	// ErrUnknownBound indicates a bound on a symbol that is not in the alphabet.
	ErrUnknownBound = errors.New("config: bound on unknown symbol")

	// ErrBadBound indicates min < 0 or max < min.
	ErrBadBound = errors.New("config: invalid bound")
)

// Element is one alphabet character.
type Element struct {
	Symbol string  `yaml:"symbol"`
	Mass   float64 `yaml:"mass"`
}

// Range bounds the count of one symbol; a nil Max means unbounded.
type Range struct {
	Min int  `yaml:"min"`
	Max *int `yaml:"max,omitempty"`
}

// Config is the CLI configuration.
type Config struct {
	Precision float64          `yaml:"precision"`
	PPM       float64          `yaml:"ppm"`
	Absolute  float64          `yaml:"absolute"`
	Alphabet  []Element        `yaml:"alphabet"`
	Bounds    map[string]Range `yaml:"bounds,omitempty"`
}

// Default returns the CHNOPS monoisotopic alphabet with the decomposer's
// default precision and tolerance.
func Default() *Config {
	return &Config{
		Precision: decomp.DefaultPrecision,
		PPM:       decomp.DefaultPPM,
		Absolute:  decomp.DefaultAbsolute,
		Alphabet: []Element{
			{Symbol: "C", Mass: 12.0},
			{Symbol: "H", Mass: 1.00782503207},
			{Symbol: "N", Mass: 14.0030740048},
			{Symbol: "O", Mass: 15.99491461956},
			{Symbol: "P", Mass: 30.97376163},
			{Symbol: "S", Mass: 31.97207100},
		},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks value ranges and that every bound names a known symbol.
func (c *Config) Validate() error {
	if len(c.Alphabet) == 0 {
		return ErrNoAlphabet
	}
	if math.IsNaN(c.Precision) || math.IsInf(c.Precision, 0) || c.Precision <= 0 {
		return ErrBadPrecision
	}
	if !(c.PPM >= 0) || !(c.Absolute >= 0) || math.IsInf(c.PPM, 0) || math.IsInf(c.Absolute, 0) {
		return ErrBadDeviation
	}

	known := make(map[string]bool, len(c.Alphabet))
	for _, e := range c.Alphabet {
		known[e.Symbol] = true
	}
	for sym, r := range c.Bounds {
		if !known[sym] {
			return fmt.Errorf("%w: %q", ErrUnknownBound, sym)
		}
		if r.Min < 0 || (r.Max != nil && *r.Max < r.Min) {
			return fmt.Errorf("%w: %s", ErrBadBound, sym)
		}
	}

	return nil
}

// BuildAlphabet converts the element list into an alphabet.
func (c *Config) BuildAlphabet() (*alphabet.Weighted[string], error) {
	symbols := make([]string, len(c.Alphabet))
	masses := make([]float64, len(c.Alphabet))
	for i, e := range c.Alphabet {
		symbols[i], masses[i] = e.Symbol, e.Mass
	}

	return alphabet.New(symbols, masses)
}

// Options returns the decomposer options described by c.
func (c *Config) Options() []decomp.Option {
	return []decomp.Option{
		decomp.WithPrecision(c.Precision),
		decomp.WithPPM(c.PPM),
		decomp.WithAbsoluteError(c.Absolute),
	}
}

// DecompBounds converts the bounds into the decomposer's form.
func (c *Config) DecompBounds() decomp.Bounds[string] {
	if len(c.Bounds) == 0 {
		return nil
	}
	out := make(decomp.Bounds[string], len(c.Bounds))
	for sym, r := range c.Bounds {
		iv := decomp.Interval{Min: r.Min, Max: decomp.Unbounded}
		if r.Max != nil {
			iv.Max = *r.Max
		}
		out[sym] = iv
	}

	return out
}
