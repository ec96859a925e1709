// Package main is the entry point for the msp-pricing CLI.
package main

import (
	"fmt"
	"os"

	"msp-pricing/cmd/cli/cmd"
	"msp-pricing/core/types"
)

func main() {
	types.UseNumericMoneyJSON()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
