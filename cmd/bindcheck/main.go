// Command bindcheck runs the binding-rule lessons.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/bindcheck/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
