// Package main is the entry point for the loadcfg CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/loadcfg/cmd/loadcfg/commands"
	"github.com/thoreinstein/loadcfg/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		code := errors.ExitUser
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, exitErr.Suggestion)
				os.Exit(code)
			}
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(code)
	}
}
