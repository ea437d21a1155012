package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/bcm-report/internal/store"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the dataset parses and every total reconciles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ds, err := opts.load(cmd)
			if err != nil {
				ces := store.ConfigErrors(err)
				for _, ce := range ces {
					fmt.Fprintln(out, "invalid:", ce.Error())
				}
				if len(ces) > 0 {
					return fmt.Errorf("dataset has %d problem(s)", len(ces))
				}
				return err
			}
			cur, next := ds.Current().Period, ds.Next().Period
			fmt.Fprintf(out, "ok: %s (%s, plan for %s)\n", ds.Report().Title, cur.Name, next.Name)
			for _, w := range ds.RoasWarnings() {
				who := w.Platform
				if who == "" {
					who = "total"
				}
				fmt.Fprintf(out, "warning: %s %s roas stated %s, revenue/spend gives %s\n",
					w.Source, who, w.Stated.StringFixed(2), w.Computed.StringFixed(2))
			}
			return nil
		},
	}
}
