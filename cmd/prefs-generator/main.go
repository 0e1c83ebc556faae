// Package main provides the CLI entrypoint for prefs-generator.
//
// prefs-generator is a go:generate tool that:
//   - Loads Go packages (AST + go/types) and finds interfaces marked //prefs:store
//   - Pairs their getters and putters into settings keyed by name
//   - Generates a store-backed implementation, optionally with an LRU cache
//   - Reports problems as diagnostics with codes and source positions
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}
