// Package main provides the pwscripts command-line tool.
package main

import (
	"os"

	"github.com/Piiit/pwScripts/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
