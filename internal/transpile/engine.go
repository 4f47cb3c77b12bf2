// Package transpile rewrites statements from one SQL dialect to
// another with per-statement fault isolation.
package transpile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// Engine translates a single statement between dialects. Implementations
// return an error when the statement cannot be parsed or rewritten;
// callers decide how to isolate that failure.
type Engine interface {
	Translate(query, srcDialect, dstDialect string, pretty bool) (string, error)
}

// SQLEngine is the default Engine. It parses each statement with the
// sqlparser grammar, re-renders it in canonical form, and adjusts
// identifier quoting for the target dialect.
type SQLEngine struct{}

// NewEngine returns the default engine.
func NewEngine() *SQLEngine {
	return &SQLEngine{}
}

// backtickDialects keep the renderer's backtick identifier quoting.
var backtickDialects = map[string]struct{}{
	"athena":     {},
	"bigquery":   {},
	"clickhouse": {},
	"databricks": {},
	"drill":      {},
	"hive":       {},
	"mysql":      {},
	"spark":      {},
	"starrocks":  {},
}

// Translate implements Engine.
func (e *SQLEngine) Translate(query, srcDialect, dstDialect string, pretty bool) (string, error) {
	stmt, err := sqlparser.Parse(query)
	if err != nil {
		return "", fmt.Errorf("cannot parse %s statement: %w", srcDialect, err)
	}

	out := sqlparser.String(stmt)
	if pretty {
		out = prettyPrint(out)
	}
	out = quoteIdentifiers(out, dstDialect)
	return out, nil
}

// spanKind classifies a slice of rendered SQL for rewriting.
type spanKind int

const (
	spanText    spanKind = iota // keywords, operators, unquoted names
	spanLiteral                 // single-quoted string literal, quotes included
	spanIdent                   // backtick-quoted identifier, quotes included
)

type span struct {
	kind spanKind
	text string
}

// scanQuoted splits rendered SQL into text, string-literal, and
// backtick-identifier spans. Literals follow the renderer's escaping:
// backslash escapes inside '...', doubled backticks inside `...`.
func scanQuoted(query string) []span {
	var spans []span
	start, i := 0, 0
	emit := func(end int, kind spanKind) {
		if end > start {
			spans = append(spans, span{kind: kind, text: query[start:end]})
		}
		start = end
	}
	for i < len(query) {
		switch query[i] {
		case '\'':
			emit(i, spanText)
			j := i + 1
			for j < len(query) {
				if query[j] == '\\' && j+1 < len(query) {
					j += 2
					continue
				}
				if query[j] == '\'' {
					j++
					break
				}
				j++
			}
			i = j
			emit(j, spanLiteral)
		case '`':
			emit(i, spanText)
			j := i + 1
			for j < len(query) {
				if query[j] == '`' {
					if j+1 < len(query) && query[j+1] == '`' {
						j += 2
						continue
					}
					j++
					break
				}
				j++
			}
			i = j
			emit(j, spanIdent)
		default:
			i++
		}
	}
	emit(len(query), spanText)
	return spans
}

// quoteIdentifiers rewrites backtick-quoted identifiers into the
// target dialect's quoting style. String literals pass through
// untouched, backticks inside them included.
func quoteIdentifiers(query, dstDialect string) string {
	d := strings.ToLower(dstDialect)
	if _, ok := backtickDialects[d]; ok {
		return query
	}
	var sb strings.Builder
	for _, sp := range scanQuoted(query) {
		if sp.kind != spanIdent || len(sp.text) < 2 || !strings.HasSuffix(sp.text, "`") {
			sb.WriteString(sp.text)
			continue
		}
		name := strings.ReplaceAll(sp.text[1:len(sp.text)-1], "``", "`")
		if d == "tsql" {
			sb.WriteString("[")
			sb.WriteString(strings.ReplaceAll(name, "]", "]]"))
			sb.WriteString("]")
		} else {
			sb.WriteString(`"`)
			sb.WriteString(strings.ReplaceAll(name, `"`, `""`))
			sb.WriteString(`"`)
		}
	}
	return sb.String()
}

// clauseRE matches the major clause keywords in rendered (lowercase)
// SQL. Rendered text is word-spaced, so plain word boundaries are
// enough here.
var clauseRE = regexp.MustCompile(`\b(select|from|where|group by|having|order by|limit|union all|union)\b`)

// clauseBreaks are the keywords that start a new line in pretty output.
var clauseBreaks = []string{"FROM", "WHERE", "GROUP BY", "HAVING", "ORDER BY", "LIMIT", "UNION ALL", "UNION"}

// prettyPrint uppercases major clause keywords and starts each
// non-leading clause on its own line. Quoted spans are left as the
// renderer produced them.
func prettyPrint(query string) string {
	var sb strings.Builder
	for _, sp := range scanQuoted(query) {
		if sp.kind != spanText {
			sb.WriteString(sp.text)
			continue
		}
		out := clauseRE.ReplaceAllStringFunc(sp.text, strings.ToUpper)
		for _, kw := range clauseBreaks {
			out = strings.ReplaceAll(out, " "+kw+" ", "\n"+kw+" ")
		}
		sb.WriteString(out)
	}
	return sb.String()
}
