package transpile

import (
	"fmt"
	"log"

	"github.com/sqlecto/sqlecto-go/internal/statement"
)

// Result is the outcome of transpiling one statement. Exactly one
// Result is produced per input statement, so a batch never loses or
// reorders entries. Failures are carried in Err, never raised.
type Result struct {
	Original statement.Statement
	Output   string
	Err      error
}

// Failed reports whether the engine rejected the statement.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Render returns the text to write for this result: the rewritten
// statement on success, or a comment-wrapped placeholder preserving
// the original text on failure.
func (r Result) Render() string {
	if r.Err != nil {
		return fmt.Sprintf("-- Error transpiling query:\n-- %v\n%s", r.Err, r.Original.Text)
	}
	return r.Output
}

// Transpile feeds each statement through the engine with pretty
// printing enabled. One bad statement never aborts the batch: its
// Result carries the error and the failure is logged.
func Transpile(engine Engine, stmts []statement.Statement, srcDialect, dstDialect string) []Result {
	results := make([]Result, 0, len(stmts))
	for _, s := range stmts {
		out, err := engine.Translate(s.Text, srcDialect, dstDialect, true)
		if err != nil {
			log.Printf("Error transpiling query: %s\nError: %v", s.Text, err)
		}
		results = append(results, Result{Original: s, Output: out, Err: err})
	}
	return results
}
