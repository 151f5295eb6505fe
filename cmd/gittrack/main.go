// main is the entry point for the gittrack CLI.
package main

import (
	"os"

	"gittrack/cmd"
	"gittrack/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		_, _ = contract.ErrorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
