package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <mass>...",
		Short: "Report whether each mass may be decomposable",
		Long: `Report whether some integer mass within tolerance of each mass is reachable.

A "false" answer is definitive: decompose would return nothing. A "true"
answer only says that the residue table does not rule the mass out.`,
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

			type answer struct {
				Mass  float64 `json:"mass"`
				Maybe bool    `json:"maybe"`
			}
			answers := make([]answer, len(masses))
			for i, m := range masses {
				ok, err := d.MaybeDecomposable(m)
				if err != nil {
					return fmt.Errorf("mass %g: %w", m, err)
				}
				answers[i] = answer{Mass: m, Maybe: ok}
			}

			out := cmd.OutOrStdout()
			if f.jsonOut {
				return json.NewEncoder(out).Encode(answers)
			}
			for _, a := range answers {
				fmt.Fprintf(out, "%g\t%t\n", a.Mass, a.Maybe)
			}

			return nil
		},
	}
}
