package transpile

import (
	"strings"
	"testing"
)

func TestEngineTranslate(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Translate("SELECT * FROM table1 WHERE id > 10", "spark", "snowflake", false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.Contains(out, "table1") {
		t.Errorf("Translate() = %q, want table1 reference", out)
	}
	if !strings.Contains(out, "where") {
		t.Errorf("Translate() = %q, want a where clause", out)
	}
}

func TestEngineTranslateInvalid(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Translate("INVALID SQL QUERY", "spark", "snowflake", true)
	if err == nil {
		t.Fatal("Translate() should reject unparseable input")
	}
	if !strings.Contains(err.Error(), "cannot parse spark statement") {
		t.Errorf("Translate() error = %q, want source dialect named", err)
	}
}

func TestEngineTranslatePretty(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Translate("SELECT * FROM table1 WHERE id > 10", "spark", "snowflake", true)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.HasPrefix(out, "SELECT") {
		t.Errorf("pretty output = %q, want uppercased SELECT", out)
	}
	if !strings.Contains(out, "\nFROM ") {
		t.Errorf("pretty output = %q, want FROM on its own line", out)
	}
	if !strings.Contains(out, "\nWHERE ") {
		t.Errorf("pretty output = %q, want WHERE on its own line", out)
	}
}

func TestEngineTranslateKeepsLiteralText(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Translate("select 'from x' from t1", "spark", "snowflake", true)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.Contains(out, "'from x'") {
		t.Errorf("Translate() = %q, want literal 'from x' unchanged", out)
	}
	if !strings.Contains(out, "\nFROM t1") {
		t.Errorf("Translate() = %q, want FROM clause on its own line", out)
	}
}

func TestQuoteIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		dialect string
		want    string
	}{
		{"ansi double quotes", "select `order` from t1", "snowflake", `select "order" from t1`},
		{"postgres double quotes", "select `order` from t1", "postgres", `select "order" from t1`},
		{"tsql brackets", "select `order` from t1", "tsql", "select [order] from t1"},
		{"mysql keeps backticks", "select `order` from t1", "mysql", "select `order` from t1"},
		{"spark keeps backticks", "select `order` from t1", "spark", "select `order` from t1"},
		{"case-insensitive dialect", "select `order` from t1", "MySQL", "select `order` from t1"},
		{"no quoted identifiers", "select 1 from t1", "postgres", "select 1 from t1"},
		{"backticks inside literal untouched", "select 'a `b` c' from t1", "postgres", "select 'a `b` c' from t1"},
		{"literal next to identifier", "select `order`, 'keep `this`' from t1", "snowflake", `select "order", 'keep ` + "`this`" + `' from t1`},
		{"escaped quote in literal", `select 'o\'clock ` + "`x`" + `' from t1`, "postgres", `select 'o\'clock ` + "`x`" + `' from t1`},
		{"escaped backtick in identifier", "select `a``b` from t1", "postgres", "select \"a`b\" from t1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quoteIdentifiers(tt.query, tt.dialect); got != tt.want {
				t.Errorf("quoteIdentifiers(%q, %q) = %q, want %q", tt.query, tt.dialect, got, tt.want)
			}
		})
	}
}

func TestPrettyPrint(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			"select from where",
			"select * from t1 where id > 10",
			"SELECT *\nFROM t1\nWHERE id > 10",
		},
		{
			"grouped aggregate",
			"select name, count(*) from t2 group by name",
			"SELECT name, count(*)\nFROM t2\nGROUP BY name",
		},
		{
			"order and limit",
			"select * from t order by id limit 5",
			"SELECT *\nFROM t\nORDER BY id\nLIMIT 5",
		},
		{
			"keyword inside literal",
			"select 'from x' from t1",
			"SELECT 'from x'\nFROM t1",
		},
		{
			"keywords in several literals",
			"select 'group by' from t where a = 'where'",
			"SELECT 'group by'\nFROM t\nWHERE a = 'where'",
		},
		{
			"keyword as quoted identifier",
			"select `from` from t1",
			"SELECT `from`\nFROM t1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prettyPrint(tt.query); got != tt.want {
				t.Errorf("prettyPrint(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
