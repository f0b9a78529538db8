package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/compomer/decomp"
)

// candidate is one decomposition as printed by the decompose command.
type candidate struct {
	Formula  string         `json:"formula"`
	Mass     float64        `json:"mass"`
	ErrorMDa float64        `json:"error_mda"`
	ErrorPPM float64        `json:"error_ppm"`
	Counts   map[string]int `json:"counts"`
}

// massResult groups the candidates of one queried mass.
type massResult struct {
	Mass       float64     `json:"mass"`
	Tolerance  float64     `json:"tolerance"`
	Candidates []candidate `json:"candidates"`
}

func newDecomposeCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "decompose <mass>...",
		Short: "List every compomer within tolerance of each mass",
		Long: `List every compomer within tolerance of each mass.

Examples:
  compomer decompose 180.0634 --ppm 5
  compomer decompose 180.0634 --bound C=0:6 --bound O=1:
  compomer decompose 18.0106 --alphabet C=12,H=1.00782503207,O=15.99491461956 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			masses, err := parseMasses(args)
			if err != nil {
				return err
			}
			cfg, err := f.resolveConfig(cmd)
			if err != nil {
				return err
			}
			d, err := f.decomposer(cmd, cfg)
			if err != nil {
				return err
			}

			results := make([]massResult, 0, len(masses))
			for _, m := range masses {
				r, err := decomposeOne(d, m, cfg.DecompBounds())
				if err != nil {
					return err
				}
				results = append(results, r)
			}

			if f.jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			return printResults(cmd.OutOrStdout(), results)
		},
	}
}

func decomposeOne(d *decomp.Decomposer[string], mass float64, bounds decomp.Bounds[string]) (massResult, error) {
	compomers, err := d.DecomposeToCompomers(mass, bounds)
	if err != nil {
		return massResult{}, fmt.Errorf("mass %g: %w", mass, err)
	}

	r := massResult{
		Mass:       mass,
		Tolerance:  d.Deviation().AbsoluteFor(mass),
		Candidates: make([]candidate, 0, len(compomers)),
	}
	a := d.Alphabet()
	for _, c := range compomers {
		var exact float64
		counts := make(map[string]int, len(c))
		for _, x := range c {
			counts[x.Character] = x.N
			exact += float64(x.N) * a.WeightOf(a.IndexOf(x.Character))
		}
		diff := exact - mass
		r.Candidates = append(r.Candidates, candidate{
			Formula:  c.String(),
			Mass:     exact,
			ErrorMDa: diff * 1e3,
			ErrorPPM: diff / mass * 1e6,
			Counts:   counts,
		})
	}

	return r, nil
}

func printResults(w io.Writer, results []massResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%.6f\t±%.4f Da\t%d candidates\n", r.Mass, r.Tolerance, len(r.Candidates))
		for _, c := range r.Candidates {
			fmt.Fprintf(tw, "  %s\t%.6f\t%+.3f mDa\t%+.2f ppm\n", c.Formula, c.Mass, c.ErrorMDa, c.ErrorPPM)
		}
	}

	return tw.Flush()
}
