package main

import (
	"fmt"
	"os"

	"github.com/roach88/dicerules/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands report on stdout; stderr always gets the error too.
		fmt.Fprintf(os.Stderr, "dicerules: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
