// Package statement defines the SQL statement value passed between
// pipeline stages.
package statement

// Statement is a single SQL statement extracted from a source file.
// Start and End are byte offsets of the statement text within the
// original source, kept for diagnostics; both are -1 when the origin
// is unknown. Statements are immutable: transformations produce new
// values via WithText.
type Statement struct {
	Text  string
	Start int
	End   int
}

// New returns a Statement with no positional origin.
func New(text string) Statement {
	return Statement{Text: text, Start: -1, End: -1}
}

// At returns a Statement with its byte-offset origin in the source.
func At(text string, start, end int) Statement {
	return Statement{Text: text, Start: start, End: end}
}

// WithText returns a copy of s carrying new text but the same origin.
func (s Statement) WithText(text string) Statement {
	s.Text = text
	return s
}

// Texts returns the text of each statement, in order.
func Texts(stmts []Statement) []string {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		out[i] = s.Text
	}
	return out
}
