// Command ginitool is a command-line interface for inspecting, reading and
// indexing GINI satellite and radar products.
package main

import (
	"fmt"
	"os"
)

func main() {
	cfg := InitializeConfig()
	if err := cfg.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
