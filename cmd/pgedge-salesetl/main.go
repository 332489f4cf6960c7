// Package main is the entry point for pgedge-salesetl.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-salesetl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
