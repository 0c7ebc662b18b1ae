package main

import (
	"fmt"
	"os"

	"github.com/roach88/sortspec/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sortspec:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
