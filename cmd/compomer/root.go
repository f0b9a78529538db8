package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/compomer/config"
	"github.com/katalvlaran/compomer/decomp"
)

// ErrBadFlag indicates a malformed --alphabet or --bound value.
var ErrBadFlag = errors.New("compomer: malformed flag value")

// rootFlags holds the flags shared by every subcommand.
type rootFlags struct {
	configPath string
	precision  float64
	ppm        float64
	absolute   float64
	alphabet   string
	bounds     []string
	jsonOut    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "compomer",
		Short: "Decompose masses into compomers over a weighted alphabet",
		Long: `compomer lists every multiset of alphabet characters whose total mass lies
within a ppm/absolute tolerance of a measured mass.

The alphabet, precision, tolerance and per-character bounds come from a YAML
file (--config) and may be overridden by flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	pf.Float64Var(&f.precision, "precision", decomp.DefaultPrecision, "integer mass grain in Da")
	pf.Float64Var(&f.ppm, "ppm", decomp.DefaultPPM, "relative tolerance in ppm")
	pf.Float64Var(&f.absolute, "abs", decomp.DefaultAbsolute, "absolute tolerance floor in Da")
	pf.StringVarP(&f.alphabet, "alphabet", "a", "", "alphabet as SYMBOL=MASS,… (replaces the configured one)")
	pf.StringArrayVarP(&f.bounds, "bound", "b", nil, "bound as SYMBOL=MIN:MAX or SYMBOL=MIN: (repeatable)")
	pf.BoolVar(&f.jsonOut, "json", false, "print JSON instead of text")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log debug records to stderr")

	root.AddCommand(
		newDecomposeCmd(f),
		newCheckCmd(f),
		newTableCmd(f),
		newConfigCmd(f),
	)

	return root
}

// resolveConfig merges the config file (or the defaults) with the flags
// that were set explicitly.
func (f *rootFlags) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("precision") {
		cfg.Precision = f.precision
	}
	if flags.Changed("ppm") {
		cfg.PPM = f.ppm
	}
	if flags.Changed("abs") {
		cfg.Absolute = f.absolute
	}
	if f.alphabet != "" {
		elems, err := parseAlphabet(f.alphabet)
		if err != nil {
			return nil, err
		}
		cfg.Alphabet = elems
		cfg.Bounds = nil
	}
	for _, b := range f.bounds {
		sym, r, err := parseBound(b)
		if err != nil {
			return nil, err
		}
		if cfg.Bounds == nil {
			cfg.Bounds = make(map[string]config.Range)
		}
		cfg.Bounds[sym] = r
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decomposer builds the decomposer described by cfg.
func (f *rootFlags) decomposer(cmd *cobra.Command, cfg *config.Config) (*decomp.Decomposer[string], error) {
	a, err := cfg.BuildAlphabet()
	if err != nil {
		return nil, err
	}
	opts := append(cfg.Options(), decomp.WithLogger(f.logger(cmd)))

	return decomp.New[string](a, opts...)
}

func (f *rootFlags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// parseAlphabet reads "C=12,H=1.0078".
func parseAlphabet(s string) ([]config.Element, error) {
	var out []config.Element
	for _, part := range strings.Split(s, ",") {
		sym, mass, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || sym == "" {
			return nil, fmt.Errorf("%w: alphabet entry %q", ErrBadFlag, part)
		}
		m, err := strconv.ParseFloat(mass, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: alphabet entry %q: %w", ErrBadFlag, part, err)
		}
		out = append(out, config.Element{Symbol: sym, Mass: m})
	}

	return out, nil
}

// parseBound reads "C=0:10" or "O=1:" (open upper end).
func parseBound(s string) (string, config.Range, error) {
	sym, rng, ok := strings.Cut(s, "=")
	if !ok || sym == "" {
		return "", config.Range{}, fmt.Errorf("%w: bound %q", ErrBadFlag, s)
	}
	lo, hi, ok := strings.Cut(rng, ":")
	if !ok {
		return "", config.Range{}, fmt.Errorf("%w: bound %q needs MIN:MAX", ErrBadFlag, s)
	}

	var (
		r   config.Range
		err error
	)
	if lo != "" {
		if r.Min, err = strconv.Atoi(lo); err != nil {
			return "", config.Range{}, fmt.Errorf("%w: bound %q: %w", ErrBadFlag, s, err)
		}
	}
	if hi != "" {
		v, err := strconv.Atoi(hi)
		if err != nil {
			return "", config.Range{}, fmt.Errorf("%w: bound %q: %w", ErrBadFlag, s, err)
		}
		r.Max = &v
	}

	return sym, r, nil
}

// parseMasses converts positional arguments to masses.
func parseMasses(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		m, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("mass %q: %w", a, err)
		}
		out[i] = m
	}

	return out, nil
}
