package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/mtbuller-resort/internal/catalog"
)

func inventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "Print the accommodation inventory every server starts with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := catalog.New()
			if err := catalog.Seed(c); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, a := range c.ListAccommodations() {
				fmt.Fprintln(out, a.String())
			}
			return nil
		},
	}
}
