// Package dialect maintains the registry of SQL dialect names the
// transpilation engine accepts.
package dialect

import (
	"sort"
	"strings"
)

// supported is the fixed set of dialect names. Lookups are
// case-insensitive; keys are stored lowercase.
var supported = map[string]struct{}{
	"athena":     {},
	"bigquery":   {},
	"clickhouse": {},
	"databricks": {},
	"drill":      {},
	"duckdb":     {},
	"hive":       {},
	"mysql":      {},
	"oracle":     {},
	"postgres":   {},
	"presto":     {},
	"redshift":   {},
	"snowflake":  {},
	"spark":      {},
	"sqlite":     {},
	"starrocks":  {},
	"teradata":   {},
	"trino":      {},
	"tsql":       {},
}

// IsSupported reports whether name is a known dialect.
func IsSupported(name string) bool {
	_, ok := supported[strings.ToLower(name)]
	return ok
}

// List returns all supported dialect names (sorted).
func List() []string {
	names := make([]string, 0, len(supported))
	for name := range supported {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
