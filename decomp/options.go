package decomp

import (
	"log/slog"
	"math"
)

// Default construction parameters.
const (
	// DefaultPrecision is the integer-mass grain: 1e-5 Da keeps the residue
	// table of a CHNOPS alphabet around 10^5 rows.
	DefaultPrecision = 1e-5

	// DefaultPPM is the default relative tolerance.
	DefaultPPM = 10

	// DefaultAbsolute is the default absolute tolerance floor.
	DefaultAbsolute = 1e-3
)

// Options configures a Decomposer.
//
// Fields:
//   - Precision — discretization grain; integer masses are floor(mass/Precision).
//     Smaller values mean fewer spurious integer candidates but a larger table.
//   - Deviation — ppm + absolute tolerance used by Decompose and MaybeDecomposable.
//   - Logger    — receives debug records during initialization; nil discards.
type Options struct {
	Precision float64
	Deviation Deviation
	Logger    *slog.Logger
}

// Option is a functional option for New.
type Option func(*Options)

// WithPrecision sets the discretization grain.
func WithPrecision(p float64) Option {
	return func(o *Options) { o.Precision = p }
}

// WithPPM sets the relative tolerance in parts per million.
func WithPPM(ppm float64) Option {
	return func(o *Options) { o.Deviation.PPM = ppm }
}

// WithAbsoluteError sets the absolute tolerance floor.
func WithAbsoluteError(abs float64) Option {
	return func(o *Options) { o.Deviation.Absolute = abs }
}

// WithDeviationOption sets both tolerance components at once.
func WithDeviationOption(d Deviation) Option {
	return func(o *Options) { o.Deviation = d }
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns the defaults:
//   - Precision: DefaultPrecision
//   - Deviation: {PPM: DefaultPPM, Absolute: DefaultAbsolute}
//   - Logger:    nil (discard)
func DefaultOptions() Options {
	return Options{
		Precision: DefaultPrecision,
		Deviation: Deviation{PPM: DefaultPPM, Absolute: DefaultAbsolute},
	}
}

// validate checks option values; it has no side effects.
func (o Options) validate() error {
	if !finitePositive(o.Precision) {
		return ErrBadPrecision
	}

	return o.Deviation.validate()
}

func (d Deviation) validate() error {
	if !finiteNonNegative(d.PPM) || !finiteNonNegative(d.Absolute) {
		return ErrBadDeviation
	}

	return nil
}

func finitePositive(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x > 0
}

func finiteNonNegative(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x >= 0
}
