package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/swatch/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	var assignments []string

	cmd := &cobra.Command{
		Use:   "resolve <component> [slot]",
		Short: "Print the override classes for a component slot",
		Long: "Resolves the merged override classes for one slot of a component.\n" +
			"The slot defaults to \"base\". Variant values are set with --set axis=value;\n" +
			"a bare --set axis selects \"true\".",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.ResolveRequest{
				Config:      c.config,
				Component:   args[0],
				Assignments: assignments,
			}
			if len(args) > 1 {
				req.Slot = args[1]
			}

			res, _, err := c.app.Resolve(cmd.Context(), req)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.String())
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, "Variant assignment axis=value (repeatable)")

	return cmd
}
