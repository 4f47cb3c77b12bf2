// Package pipeline orchestrates the conversion of one source file:
// read, extract, filter, rename, transpile, write. Stages run strictly
// in order and statements are never reordered; the only failures that
// abort a file are an unsupported format and output I/O errors.
// Statement-level transpile failures become inline placeholders.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqlecto/sqlecto-go/internal/extract"
	"github.com/sqlecto/sqlecto-go/internal/transform"
	"github.com/sqlecto/sqlecto-go/internal/transpile"
)

// separator frames each written statement in the output artifact.
var separator = strings.Repeat("-", 80)

// Pipeline converts source files. Safe for concurrent use across
// files: it holds no per-file state.
type Pipeline struct {
	engine transpile.Engine
}

// New returns a Pipeline backed by the given engine.
func New(engine transpile.Engine) *Pipeline {
	return &Pipeline{engine: engine}
}

// Conversion describes the outcome of one converted file.
type Conversion struct {
	OutputPath string
	Results    []transpile.Result
}

// StatementCount returns the number of statements written.
func (c *Conversion) StatementCount() int {
	return len(c.Results)
}

// FailedCount returns the number of statements written as error
// placeholders.
func (c *Conversion) FailedCount() int {
	n := 0
	for _, r := range c.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// ProcessFile converts a single source file and writes the artifact
// into outputDir, creating the directory if absent. The output file is
// named converted_<stem>.sql. Dialects are assumed validated by the
// caller.
func (p *Pipeline) ProcessFile(path, srcDialect, dstDialect string, mappings []transform.TableMapping, outputDir string) (*Conversion, error) {
	format, err := extract.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	stmts, err := extract.Extract(content, format)
	if err != nil {
		return nil, err
	}

	stmts = transform.FilterCreateTable(stmts)
	stmts = transform.RenameTables(stmts, mappings)
	results := transpile.Transpile(p.engine, stmts, srcDialect, dstDialect)

	outputPath := filepath.Join(outputDir, OutputName(path))
	if err := writeArtifact(outputPath, results); err != nil {
		return nil, err
	}

	return &Conversion{OutputPath: outputPath, Results: results}, nil
}

// OutputName returns the artifact file name for a source path:
// converted_<stem>.sql, with compression and format extensions
// stripped from the stem.
func OutputName(path string) string {
	base := filepath.Base(extract.StripCompression(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return "converted_" + stem + ".sql"
}

// writeArtifact writes every result in order, each statement
// terminated by ';' and framed by a separator line.
func writeArtifact(outputPath string, results []transpile.Result) error {
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(r.Render())
		sb.WriteString(";\n\n")
		sb.WriteString("\n" + separator + "\n\n")
	}

	if _, err := file.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
