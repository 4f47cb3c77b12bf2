package pipeline

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlecto/sqlecto-go/internal/extract"
	"github.com/sqlecto/sqlecto-go/internal/transform"
	"github.com/sqlecto/sqlecto-go/internal/transpile"
)

const sampleSparkCode = `
def some_function():
    spark.sql("""
        SELECT *
        FROM table1
        WHERE id > 10
    """)

    spark.sql(f"""
        SELECT name, count(*)
        FROM table2
        GROUP BY name
    """)
`

const sampleSQLFile = `
SELECT * FROM table1;
CREATE TABLE temp AS SELECT * FROM table2;
SELECT count(*) FROM table3;
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestProcessFileSQL(t *testing.T) {
	tmpDir := t.TempDir()
	inputPath := writeFile(t, tmpDir, "test_file.sql", sampleSQLFile)
	outputDir := filepath.Join(tmpDir, "out")

	mappings := []transform.TableMapping{{Src: "table1", Dst: "new_table1"}}
	p := New(transpile.NewEngine())

	conv, err := p.ProcessFile(inputPath, "spark", "snowflake", mappings, outputDir)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if want := filepath.Join(outputDir, "converted_test_file.sql"); conv.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", conv.OutputPath, want)
	}
	// 3 statements minus the CREATE TABLE one.
	if conv.StatementCount() != 2 {
		t.Errorf("StatementCount() = %d, want 2", conv.StatementCount())
	}
	if conv.FailedCount() != 0 {
		t.Errorf("FailedCount() = %d, want 0", conv.FailedCount())
	}

	content, err := os.ReadFile(conv.OutputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	text := string(content)

	if !strings.Contains(text, "new_table1") {
		t.Errorf("output missing renamed table:\n%s", text)
	}
	if strings.Contains(strings.ToUpper(text), "CREATE TABLE") {
		t.Errorf("output contains filtered CREATE TABLE statement:\n%s", text)
	}
	if got := strings.Count(text, separator); got != 2 {
		t.Errorf("output has %d separator lines, want 2:\n%s", got, text)
	}
	if got := strings.Count(text, ";\n\n"); got != 2 {
		t.Errorf("output has %d statement terminators, want 2:\n%s", got, text)
	}
}

func TestProcessFileSpark(t *testing.T) {
	tmpDir := t.TempDir()
	inputPath := writeFile(t, tmpDir, "etl.py", sampleSparkCode)
	outputDir := filepath.Join(tmpDir, "out")

	p := New(transpile.NewEngine())
	conv, err := p.ProcessFile(inputPath, "spark", "duckdb", nil, outputDir)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if conv.StatementCount() != 2 {
		t.Errorf("StatementCount() = %d, want 2", conv.StatementCount())
	}
	if filepath.Base(conv.OutputPath) != "converted_etl.sql" {
		t.Errorf("output name = %q, want converted_etl.sql", filepath.Base(conv.OutputPath))
	}

	content, err := os.ReadFile(conv.OutputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "table2") {
		t.Errorf("output missing second query:\n%s", content)
	}
}

func TestProcessFilePlaceholders(t *testing.T) {
	tmpDir := t.TempDir()
	inputPath := writeFile(t, tmpDir, "broken.sql", "SELECT 1; INVALID SQL QUERY; SELECT 2;")
	outputDir := filepath.Join(tmpDir, "out")

	p := New(transpile.NewEngine())
	conv, err := p.ProcessFile(inputPath, "spark", "snowflake", nil, outputDir)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if conv.StatementCount() != 3 {
		t.Errorf("StatementCount() = %d, want 3", conv.StatementCount())
	}
	if conv.FailedCount() != 1 {
		t.Errorf("FailedCount() = %d, want 1", conv.FailedCount())
	}

	content, err := os.ReadFile(conv.OutputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "-- Error transpiling query:") {
		t.Errorf("output missing placeholder:\n%s", text)
	}
	if !strings.Contains(text, "INVALID SQL QUERY") {
		t.Errorf("placeholder should preserve original text:\n%s", text)
	}
}

func TestProcessFileUnsupportedFormat(t *testing.T) {
	tmpDir := t.TempDir()
	inputPath := writeFile(t, tmpDir, "notes.txt", "some content")
	outputDir := filepath.Join(tmpDir, "out")

	p := New(transpile.NewEngine())
	_, err := p.ProcessFile(inputPath, "spark", "snowflake", nil, outputDir)

	var ufe *extract.UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("ProcessFile() error = %v, want *extract.UnsupportedFormatError", err)
	}
	// The format check happens before any extraction or writing.
	if _, statErr := os.Stat(outputDir); !os.IsNotExist(statErr) {
		t.Error("output directory should not be created for unsupported input")
	}
}

func TestProcessFileMissing(t *testing.T) {
	p := New(transpile.NewEngine())
	if _, err := p.ProcessFile(filepath.Join(t.TempDir(), "missing.sql"), "spark", "snowflake", nil, t.TempDir()); err == nil {
		t.Error("ProcessFile() should fail for a missing input file")
	}
}

func TestProcessFileGzip(t *testing.T) {
	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "queries.sql.gz")

	file, err := os.Create(inputPath)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	gz := gzip.NewWriter(file)
	if _, err := gz.Write([]byte(sampleSQLFile)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip Close() error = %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	p := New(transpile.NewEngine())
	conv, err := p.ProcessFile(inputPath, "spark", "snowflake", nil, filepath.Join(tmpDir, "out"))
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if filepath.Base(conv.OutputPath) != "converted_queries.sql" {
		t.Errorf("output name = %q, want converted_queries.sql", filepath.Base(conv.OutputPath))
	}
	if conv.StatementCount() != 2 {
		t.Errorf("StatementCount() = %d, want 2", conv.StatementCount())
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"sql file", "queries.sql", "converted_queries.sql"},
		{"python file", "dir/etl.py", "converted_etl.sql"},
		{"gzipped", "queries.sql.gz", "converted_queries.sql"},
		{"bzipped python", "/abs/path/etl.py.bz2", "converted_etl.sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputName(tt.path); got != tt.want {
				t.Errorf("OutputName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
