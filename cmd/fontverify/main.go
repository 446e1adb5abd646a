package main

import (
	"fmt"
	"os"

	"github.com/roach88/fontverify/internal/cli"
	"github.com/roach88/fontverify/internal/isolate"
)

func main() {
	// Batch processes started by "fontverify isolate" exit here.
	isolate.Main()

	if err := cli.NewRootCommand().Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
