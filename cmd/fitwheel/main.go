// Package main is the entry point for the fitwheel CLI.
package main

import (
	"os"

	"github.com/runger/fitwheel/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
