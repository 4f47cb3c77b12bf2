package transform

import (
	"strings"

	"github.com/sqlecto/sqlecto-go/internal/statement"
)

// TableMapping is a literal source-name to destination-name
// substitution. Mappings are applied in list order; no overlap
// validation is performed, so later mappings see the output of
// earlier ones.
type TableMapping struct {
	Src string `koanf:"src_table"`
	Dst string `koanf:"dst_table"`
}

// RenameTables applies each mapping, in order, as a global literal
// substring replacement across every statement. The replacement is
// not identifier-boundary-aware: a source name occurring inside an
// unrelated token is replaced too. Known limitation, kept so output
// stays stable.
func RenameTables(stmts []statement.Statement, mappings []TableMapping) []statement.Statement {
	out := make([]statement.Statement, len(stmts))
	copy(out, stmts)
	for _, m := range mappings {
		for i, s := range out {
			out[i] = s.WithText(strings.ReplaceAll(s.Text, m.Src, m.Dst))
		}
	}
	return out
}
