// sqlecto - batch SQL dialect converter
//
// A Go CLI tool that extracts SQL statements from .sql files or
// spark.sql call-sites in .py files, transpiles them between SQL
// dialects, and writes one converted artifact per input file.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/sqlecto/sqlecto-go/internal/cli"
)

// Version information (set via ldflags at build time)
// These variables are intentionally unused in code but set via ldflags
var (
	version   = "dev"     //nolint:unused // Set via ldflags
	buildTime = "unknown" //nolint:unused // Set via ldflags
)

func main() {
	if err := cli.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
