// Package transform filters and rewrites extracted statements before
// they reach the transpiler.
package transform

import (
	"strings"

	"github.com/sqlecto/sqlecto-go/internal/statement"
)

// FilterCreateTable drops statements whose leading keywords are
// CREATE TABLE (case-insensitive, any whitespace between them). All
// other statements pass through unchanged, in order.
func FilterCreateTable(stmts []statement.Statement) []statement.Statement {
	filtered := make([]statement.Statement, 0, len(stmts))
	for _, s := range stmts {
		if !isCreateTable(s.Text) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func isCreateTable(text string) bool {
	fields := strings.Fields(text)
	return len(fields) >= 2 &&
		strings.EqualFold(fields[0], "CREATE") &&
		strings.EqualFold(fields[1], "TABLE")
}
