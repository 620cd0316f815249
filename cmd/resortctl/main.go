// Command resortctl is the operator tool for the resort server: it inspects
// saved package files, prints the seed inventory and runs schema migrations.
package main

import (
	"os"

	"github.com/pkordes/mtbuller-resort/cmd/resortctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
