// ABOUTME: Entrypoint for the dotkit binary.
// ABOUTME: Injects build version info and delegates to the internal CLI package.
package main

import (
	"os"

	"github.com/2389-research/dotkit/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
