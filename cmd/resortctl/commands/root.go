// Package commands holds the resortctl cobra command tree.
package commands

import (
	"github.com/spf13/cobra"
)

// Execute runs resortctl with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "resortctl",
		Short:        "Operator tool for the Mt Buller resort server",
		SilenceUsage: true,
	}
	root.AddCommand(inspectCmd(), inventoryCmd(), migrateCmd())
	return root
}
