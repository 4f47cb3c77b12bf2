// Package cli provides the command-line interface for sqlecto.
package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sqlecto/sqlecto-go/internal/config"
	"github.com/sqlecto/sqlecto-go/internal/extract"
	"github.com/sqlecto/sqlecto-go/internal/pipeline"
	"github.com/sqlecto/sqlecto-go/internal/transpile"
)

var (
	// Colors for output
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "sqlecto",
	Short: "Convert SQL statements between dialects",
	Long: `sqlecto - batch SQL dialect converter

A tool that extracts SQL statements from .sql files or from
spark.sql("""...""") call-sites in .py files, and transpiles them
from one SQL dialect to another.

Features:
  • Extract statements from plain SQL and Spark/Python sources
  • Filter out CREATE TABLE statements
  • Rename tables via ordered literal mappings
  • Per-statement fault isolation: engine errors become inline
    comment placeholders, never a failed file
  • Support for compressed sources (.gz, .bz2)
  • Bounded parallelism across files`,
	Example: `  # Convert all .sql and .py files in a directory
  sqlecto -d ./queries -s spark -t snowflake -o converted

  # Convert specific files with table renames
  sqlecto -f etl.py -f report.sql -s spark -t duckdb -m raw_events:events -m tmp_users:users

  # Drive a run from a config file
  sqlecto -c sqlecto.yaml`,
	RunE: runCommand,
}

func init() {
	rootCmd.Flags().StringSliceP("source-file", "f", []string{}, "SQL or Python file(s) to process, repeatable or comma-separated")
	rootCmd.Flags().StringP("source-dir", "d", "", "Directory to scan recursively for .sql and .py files")
	rootCmd.Flags().StringP("source-dialect", "s", "", "Source SQL dialect")
	rootCmd.Flags().StringP("target-dialect", "t", "", "Target SQL dialect")
	rootCmd.Flags().StringSliceP("table-mapping", "m", []string{}, "Table name mapping in the format source_table:target_table, repeatable")
	rootCmd.Flags().String("table-mappings-file", "", "YAML or JSON file with a table_mappings list")
	rootCmd.Flags().StringP("config-file", "c", "", "YAML or JSON configuration file")
	rootCmd.Flags().StringP("output-dir", "o", "", "Directory for converted artifacts (default: "+config.DefaultOutputDir+")")
	rootCmd.Flags().IntP("workers", "w", 0, "Number of files converted concurrently (default: 1)")
	rootCmd.Flags().Bool("progress", true, "Show progress for multi-file batches")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{}

	// Config file first; explicitly set flags override its values.
	if configFile, _ := cmd.Flags().GetString("config-file"); configFile != "" {
		loaded, err := config.LoadFile(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("source-file") {
		cfg.SourceFiles, _ = cmd.Flags().GetStringSlice("source-file")
	}
	if cmd.Flags().Changed("source-dir") {
		cfg.SourceDir, _ = cmd.Flags().GetString("source-dir")
	}
	if cmd.Flags().Changed("source-dialect") {
		cfg.SourceDialect, _ = cmd.Flags().GetString("source-dialect")
	}
	if cmd.Flags().Changed("target-dialect") {
		cfg.TargetDialect, _ = cmd.Flags().GetString("target-dialect")
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}

	// Mappings from flags and mappings file are combined, in that
	// order, and override any config-file mappings.
	mappingFlags, _ := cmd.Flags().GetStringSlice("table-mapping")
	mappingsFile, _ := cmd.Flags().GetString("table-mappings-file")
	if len(mappingFlags) > 0 || mappingsFile != "" {
		cfg.TableMappings = cfg.TableMappings[:0]
		for _, raw := range mappingFlags {
			m, err := config.ParseMapping(raw)
			if err != nil {
				return err
			}
			cfg.TableMappings = append(cfg.TableMappings, m)
		}
		if mappingsFile != "" {
			fromFile, err := config.LoadMappingsFile(mappingsFile)
			if err != nil {
				return err
			}
			cfg.TableMappings = append(cfg.TableMappings, fromFile...)
		}
	}

	if len(cfg.SourceFiles) == 0 && cfg.SourceDir == "" {
		cfg.SourceDir = "."
		infoColor.Println("No source file or directory specified. Defaulting to current directory.")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	showProgress, _ := cmd.Flags().GetBool("progress")
	return run(cfg, showProgress && isTerminal())
}

// collectFiles gathers explicit source files plus every convertible
// file under the source directory.
func collectFiles(cfg *config.Config) ([]string, error) {
	files := append([]string{}, cfg.SourceFiles...)

	if cfg.SourceDir != "" {
		err := filepath.WalkDir(cfg.SourceDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, err := extract.DetectFormat(path); err == nil {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan source directory %s: %w", cfg.SourceDir, err)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to process")
	}
	return files, nil
}

func run(cfg *config.Config, showProgress bool) error {
	files, err := collectFiles(cfg)
	if err != nil {
		return err
	}

	p := pipeline.New(transpile.NewEngine())
	tracker := NewProgressTracker(showProgress && len(files) > 1)

	var (
		mu           sync.Mutex
		converted    int
		failed       int
		placeholders int
	)

	// Files are independent units; statements within a file stay
	// strictly sequential inside the pipeline.
	var g errgroup.Group
	g.SetLimit(cfg.Workers)

	for _, file := range files {
		file := file
		tracker.StartFile(file)
		g.Go(func() error {
			conv, err := p.ProcessFile(file, cfg.SourceDialect, cfg.TargetDialect, cfg.TableMappings, cfg.OutputDir)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// A failed file never aborts the batch.
				failed++
				tracker.ErrorFile(file, err)
				if !tracker.enabled {
					errorColor.Fprintf(os.Stderr, "Error processing file %s: %v\n", file, err)
				}
				return nil
			}
			converted++
			placeholders += conv.FailedCount()
			tracker.FinishFile(file, conv.OutputPath, conv.StatementCount(), conv.FailedCount())
			if !tracker.enabled {
				successColor.Printf("✓ Converted %s → %s (%d statements)\n", file, conv.OutputPath, conv.StatementCount())
			}
			return nil
		})
	}

	_ = g.Wait()
	tracker.Stop()

	successColor.Printf("✓ Converted %d file(s) into %s\n", converted, cfg.OutputDir)
	if placeholders > 0 {
		warnColor.Printf("  %d statement(s) could not be transpiled and were written as placeholders\n", placeholders)
	}
	if failed > 0 {
		warnColor.Printf("  %d file(s) failed\n", failed)
	}
	return nil
}
