package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTableCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Show the discretized alphabet and residue table parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolveConfig(cmd)
			if err != nil {
				return err
			}
			d, err := f.decomposer(cmd, cfg)
			if err != nil {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			weights, err := d.Weights()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f.jsonOut {
				return json.NewEncoder(out).Encode(struct {
					Info    any `json:"info"`
					Weights any `json:"weights"`
				}{info, weights})
			}

			fmt.Fprintf(out, "precision %g (gcd %d), modulus %d, relative error [%.3g, %.3g]\n",
				info.Precision, info.GCD, info.Modulus, info.MinError, info.MaxError)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "symbol\tmass\tinteger\tL\tLCM")
			for _, w := range weights {
				fmt.Fprintf(tw, "%s\t%.8f\t%d\t%d\t%d\n", w.Owner, w.Mass, w.IntegerMass, w.L, w.LCM)
			}

			return tw.Flush()
		},
	}
}
