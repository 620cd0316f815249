package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/mtbuller-resort/internal/codec"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Decode a saved package file and print one line per package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			pkgs, err := codec.DecodePackages(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			for _, p := range pkgs {
				fmt.Fprintln(out, p.String())
			}
			fmt.Fprintf(out, "%d package(s)\n", len(pkgs))
			return nil
		},
	}
}
