// Package config provides configuration types and parsing for sqlecto.
package config

import (
	"fmt"
	"strings"

	"github.com/sqlecto/sqlecto-go/internal/dialect"
	"github.com/sqlecto/sqlecto-go/internal/transform"
)

// DefaultOutputDir is where converted artifacts are written unless
// overridden.
const DefaultOutputDir = "transpiled_queries"

// Config holds all configuration options for a conversion run. The
// koanf tags double as the config-file schema.
type Config struct {
	SourceFiles   []string                 `koanf:"source_files"`
	SourceDir     string                   `koanf:"source_dir"`
	SourceDialect string                   `koanf:"source_dialect"`
	TargetDialect string                   `koanf:"target_dialect"`
	TableMappings []transform.TableMapping `koanf:"table_mappings"`
	OutputDir     string                   `koanf:"output_dir"`
	Workers       int                      `koanf:"workers"`
}

// ParseMapping parses a "source_table:target_table" pair.
func ParseMapping(s string) (transform.TableMapping, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return transform.TableMapping{}, fmt.Errorf("invalid table mapping %q (expected source_table:target_table)", s)
	}
	return transform.TableMapping{Src: parts[0], Dst: parts[1]}, nil
}

// ApplyDefaults fills in unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
}

// Validate checks that the configuration can drive a conversion run.
// Dialects are validated here, once, before any file is touched.
func (c *Config) Validate() error {
	if c.SourceDialect == "" {
		return fmt.Errorf("missing required parameter: --source-dialect")
	}
	if c.TargetDialect == "" {
		return fmt.Errorf("missing required parameter: --target-dialect")
	}
	if !dialect.IsSupported(c.SourceDialect) {
		return fmt.Errorf("unsupported source dialect: %s (supported: %s)",
			c.SourceDialect, strings.Join(dialect.List(), ", "))
	}
	if !dialect.IsSupported(c.TargetDialect) {
		return fmt.Errorf("unsupported target dialect: %s (supported: %s)",
			c.TargetDialect, strings.Join(dialect.List(), ", "))
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
