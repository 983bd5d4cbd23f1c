// Command gdao compiles filter descriptions into SQL WHERE clauses.
package main

import (
	"fmt"
	"os"

	"github.com/rotexsoft/gdao/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
