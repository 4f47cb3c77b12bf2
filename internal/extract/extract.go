// Package extract pulls raw SQL statements out of source files.
//
// Two host formats are supported: plain .sql files, split on the ';'
// delimiter, and .py files, where statements are the triple-quoted
// sole argument of spark.sql(...) call-sites. The splitting is
// deliberately naive: a ';' inside a quoted SQL string will split the
// statement. Known limitation, kept so output stays stable.
package extract

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/sqlecto/sqlecto-go/internal/statement"
)

// Format identifies the host format of an input file. It is resolved
// once per file by DetectFormat and passed explicitly through the
// pipeline; stages never re-inspect the file name.
type Format int

const (
	FormatUnknown Format = iota
	// FormatSQL is a plain SQL file with ';'-delimited statements.
	FormatSQL
	// FormatSparkCode is Python source containing spark.sql("""...""")
	// call-sites.
	FormatSparkCode
)

// String returns the format name for messages.
func (f Format) String() string {
	switch f {
	case FormatSQL:
		return "sql"
	case FormatSparkCode:
		return "spark"
	default:
		return "unknown"
	}
}

var (
	// sparkCallRE matches a spark.sql call whose sole argument is a
	// triple-quoted string literal, optionally an f-string. The body
	// may span multiple lines.
	sparkCallRE = regexp.MustCompile(`spark\.sql\(\s*f?['"]{3}(?s:.*?)['"]{3}\s*\)`)

	// tripleQuoteRE isolates the triple-quoted literal inside a
	// matched call-site.
	tripleQuoteRE = regexp.MustCompile(`['"]{3}(?s:.*?)['"]{3}`)
)

// Extract returns the statements found in content per the format's
// rules, in source order. Finding no statements is not an error; an
// unknown format is.
func Extract(content string, format Format) ([]statement.Statement, error) {
	switch format {
	case FormatSQL:
		return extractSQL(content), nil
	case FormatSparkCode:
		return extractSparkSQL(content), nil
	default:
		return nil, fmt.Errorf("cannot extract statements from format %q", format)
	}
}

// extractSQL splits content on ';'. Each segment is trimmed of
// surrounding whitespace; empty segments are dropped.
func extractSQL(content string) []statement.Statement {
	var stmts []statement.Statement
	pos := 0
	for _, seg := range strings.Split(content, ";") {
		trimmed := strings.TrimSpace(seg)
		if trimmed != "" {
			start := pos + strings.Index(seg, trimmed)
			stmts = append(stmts, statement.At(trimmed, start, start+len(trimmed)))
		}
		pos += len(seg) + 1
	}
	return stmts
}

// extractSparkSQL locates spark.sql call-sites and extracts the text
// between the triple delimiters. A call-site whose literal cannot be
// isolated is skipped with a warning rather than failing the file.
func extractSparkSQL(content string) []statement.Statement {
	var stmts []statement.Statement
	for _, loc := range sparkCallRE.FindAllStringIndex(content, -1) {
		call := content[loc[0]:loc[1]]
		inner := tripleQuoteRE.FindStringIndex(call)
		if inner == nil {
			// sparkCallRE requires the triple quotes, so this only
			// fires if the two patterns ever drift apart.
			log.Printf("Warning: could not extract SQL query from: %s", call)
			continue
		}
		// A whitespace-only body still yields a statement with empty
		// text; downstream stages decide what to do with it.
		body := call[inner[0]+3 : inner[1]-3]
		trimmed := strings.TrimSpace(body)
		start := loc[0] + inner[0] + 3 + strings.Index(body, trimmed)
		stmts = append(stmts, statement.At(trimmed, start, start+len(trimmed)))
	}
	return stmts
}
