package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brandonleon/carbsmart/internal/app"
)

func newPansCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pans",
		Short: "Inspect the pan library",
	}
	cmd.AddCommand(newPansListCommand(v))
	return cmd
}

func newPansListCommand(v *viper.Viper) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered pans",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := app.InitializeCore(ctx, loadConfig(v))
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(ctx) }()

			pans, err := a.Services.Pans.List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, pans)
			}
			if len(pans) == 0 {
				fmt.Fprintln(out, "No pans registered.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCAPACITY\tWEIGHT (g)")
			for _, p := range pans {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", p.ID, p.Name, p.CapacityLabel, p.WeightGrams)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print pans as JSON")
	return cmd
}
