// Package main provides the sqlremap CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlremap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
