package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/dialects/duckdb"
	"github.com/hxx258456/sql-convert/pkg/dialects/mysql"
	"github.com/hxx258456/sql-convert/pkg/dialects/oracle"
	"github.com/hxx258456/sql-convert/pkg/dialects/postgres"
	"github.com/hxx258456/sql-convert/pkg/parser"
	"github.com/hxx258456/sql-convert/pkg/token"
)

func render(t *testing.T, sql string, source, target *dialect.Dialect, pretty bool) string {
	t.Helper()
	stmts, err := parser.Parse(sql, source)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	out, err := Format(stmts[0], target, pretty)
	require.NoError(t, err)
	return out
}

// limitedSelect is SELECT a FROM t with the given limit and offset.
func limitedSelect(limit, offset string) *core.SelectStmt {
	sc := &core.SelectCore{
		Columns: []*core.SelectItem{{Expr: &core.ColumnRef{Column: "a"}}},
		From:    &core.FromClause{Source: &core.TableName{Name: "t"}},
	}
	if limit != "" {
		sc.Limit = &core.Literal{Type: core.LiteralNumber, Value: limit}
	}
	if offset != "" {
		sc.Offset = &core.Literal{Type: core.LiteralNumber, Value: offset}
	}
	return &core.SelectStmt{Body: &core.SelectBody{Left: sc}}
}

// ---------- Row Limiting Tests ----------

func TestFormat_RowLimiting(t *testing.T) {
	tests := []struct {
		name   string
		limit  string
		offset string
		d      *dialect.Dialect
		want   string
	}{
		{"mysql limit", "10", "", mysql.MySQL, "SELECT a FROM t LIMIT 10"},
		{"mysql limit offset", "10", "5", mysql.MySQL, "SELECT a FROM t LIMIT 10 OFFSET 5"},
		{"mysql offset only", "", "5", mysql.MySQL, "SELECT a FROM t LIMIT 18446744073709551615 OFFSET 5"},
		{"postgres offset only", "", "5", postgres.Postgres, "SELECT a FROM t OFFSET 5"},
		{"oracle fetch first", "10", "", oracle.Oracle, "SELECT a FROM t FETCH FIRST 10 ROWS ONLY"},
		{"oracle fetch next", "10", "5", oracle.Oracle, "SELECT a FROM t OFFSET 5 ROWS FETCH NEXT 10 ROWS ONLY"},
		{"oracle offset only", "", "5", oracle.Oracle, "SELECT a FROM t OFFSET 5 ROWS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Format(limitedSelect(tt.limit, tt.offset), tt.d, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

// ---------- Dialect Rendering Tests ----------

func TestFormat_DialectDifferences(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		source *dialect.Dialect
		target *dialect.Dialect
		want   string
	}{
		{"dual added", "SELECT 1", mysql.MySQL, oracle.Oracle, "SELECT 1 FROM DUAL"},
		{"no dual elsewhere", "SELECT 1", oracle.Oracle, postgres.Postgres, "SELECT 1"},
		{"table alias without as", "SELECT x.a FROM t AS x", postgres.Postgres, oracle.Oracle, "SELECT x.a FROM t x"},
		{"table alias with as", "SELECT x.a FROM t x", oracle.Oracle, duckdb.DuckDB, "SELECT x.a FROM t AS x"},
		{"minus", "SELECT a FROM t1 EXCEPT SELECT a FROM t2", postgres.Postgres, oracle.Oracle, "SELECT a FROM t1 MINUS SELECT a FROM t2"},
		{"except", "SELECT a FROM t1 MINUS SELECT a FROM t2", oracle.Oracle, duckdb.DuckDB, "SELECT a FROM t1 EXCEPT SELECT a FROM t2"},
		{"bool as number", "SELECT a FROM t WHERE b = FALSE", postgres.Postgres, oracle.Oracle, "SELECT a FROM t WHERE b = 0"},
		{"string quoting", "SELECT 'a''b', 'c\\d'", postgres.Postgres, mysql.MySQL, `SELECT 'a''b', 'c\\d'`},
		{"quoted identifiers", `SELECT "Order", "my col" FROM t`, postgres.Postgres, mysql.MySQL, "SELECT `Order`, `my col` FROM t"},
		{"dollar placeholders", "SELECT a FROM t WHERE a = ? OR b = ?", mysql.MySQL, postgres.Postgres, "SELECT a FROM t WHERE a = $1 OR b = $2"},
		{"nulls ordering", "SELECT a FROM t ORDER BY a DESC NULLS FIRST", postgres.Postgres, oracle.Oracle, "SELECT a FROM t ORDER BY a DESC NULLS FIRST"},
		{"using join", "SELECT * FROM a JOIN b USING (id)", postgres.Postgres, mysql.MySQL, "SELECT * FROM a JOIN b USING (id)"},
		{"comma join", "SELECT * FROM a, b WHERE a.id = b.id", oracle.Oracle, postgres.Postgres, "SELECT * FROM a, b WHERE a.id = b.id"},
		{"left join", "SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id", mysql.MySQL, oracle.Oracle, "SELECT * FROM a LEFT JOIN b ON a.id = b.id"},
		{"cte", "WITH x AS (SELECT 1 AS n) SELECT n FROM x", postgres.Postgres, mysql.MySQL, "WITH x AS (SELECT 1 AS n) SELECT n FROM x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.sql, tt.source, tt.target, false))
		})
	}
}

func TestFormat_MultiRowInsert(t *testing.T) {
	sql := "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')"

	assert.Equal(t,
		"INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')",
		render(t, sql, mysql.MySQL, postgres.Postgres, false))

	assert.Equal(t,
		"INSERT INTO t (a, b) SELECT 1, 'x' FROM DUAL UNION ALL SELECT 2, 'y' FROM DUAL",
		render(t, sql, mysql.MySQL, oracle.Oracle, false))
}

func TestFormat_UpdateDelete(t *testing.T) {
	assert.Equal(t,
		"UPDATE t SET a = :1, b = b + 1 WHERE id = :2",
		render(t, "UPDATE t SET a = ?, b = b + 1 WHERE id = ?", mysql.MySQL, oracle.Oracle, false))

	assert.Equal(t,
		"DELETE FROM s.t WHERE id = 1",
		render(t, "DELETE FROM s.t WHERE id = 1", oracle.Oracle, mysql.MySQL, false))
}

// ---------- Pretty Tests ----------

func TestFormat_Pretty(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		target *dialect.Dialect
		want   string
	}{
		{
			name:   "clauses",
			sql:    "SELECT a, b FROM t WHERE x = 1 GROUP BY a, b ORDER BY a LIMIT 10",
			target: postgres.Postgres,
			want:   "SELECT\n  a,\n  b\nFROM t\nWHERE\n  x = 1\nGROUP BY\n  a,\n  b\nORDER BY\n  a\nLIMIT 10",
		},
		{
			name:   "join",
			sql:    "SELECT a FROM x LEFT JOIN y ON x.id = y.id",
			target: oracle.Oracle,
			want:   "SELECT\n  a\nFROM x\nLEFT JOIN y\n  ON x.id = y.id",
		},
		{
			name:   "update",
			sql:    "UPDATE t SET a = 1, b = 2 WHERE id = 3",
			target: mysql.MySQL,
			want:   "UPDATE t\nSET\n  a = 1,\n  b = 2\nWHERE\n  id = 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.sql, mysql.MySQL, tt.target, true))
		})
	}
}

// ---------- Error Tests ----------

func TestFormat_Unsupported(t *testing.T) {
	stmts, err := parser.Parse("SELECT GROUP_CONCAT(a) FROM t", mysql.MySQL)
	require.NoError(t, err)

	_, err = Format(stmts[0], oracle.Oracle, false)
	require.Error(t, err)

	var ue *UnsupportedError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "GROUP_CONCAT", ue.Feature)
	assert.Equal(t, "oracle", ue.Dialect)
	assert.Contains(t, err.Error(), "GROUP_CONCAT is not supported in oracle dialect")
}

func TestUnsupportedError(t *testing.T) {
	err := &UnsupportedError{Feature: "ILIKE", Dialect: "oracle"}
	assert.Equal(t, "ILIKE is not supported in oracle dialect", err.Error())

	err.Detail = "use UPPER(a) LIKE UPPER(b)"
	assert.Equal(t, "ILIKE is not supported in oracle dialect: use UPPER(a) LIKE UPPER(b)", err.Error())
}

func TestFormat_NilDialect(t *testing.T) {
	_, err := Format(limitedSelect("1", ""), nil, false)
	assert.True(t, errors.Is(err, dialect.ErrDialectRequired))

	_, err = Node(&core.ColumnRef{Column: "a"}, nil)
	assert.True(t, errors.Is(err, dialect.ErrDialectRequired))
}

// ---------- Node Tests ----------

func TestNode(t *testing.T) {
	tests := []struct {
		name string
		node core.Node
		d    *dialect.Dialect
		want string
	}{
		{"column", &core.ColumnRef{Table: "t", Column: "comment"}, oracle.Oracle, `t."comment"`},
		{"table", &core.TableName{Schema: "s", Name: "t", Alias: "x"}, postgres.Postgres, "s.t AS x"},
		{"select item", &core.SelectItem{Expr: &core.ColumnRef{Column: "a"}, Alias: "b"}, mysql.MySQL, "a AS b"},
		{
			"join",
			&core.Join{
				Type:      core.JoinLeft,
				Right:     &core.TableName{Name: "b"},
				Condition: &core.BinaryExpr{Left: &core.ColumnRef{Column: "x"}, Op: token.EQ, Right: &core.ColumnRef{Column: "y"}},
			},
			mysql.MySQL,
			"LEFT JOIN b ON x = y",
		},
		{"values row", &core.ValuesRow{Values: []core.Expr{&core.Literal{Type: core.LiteralNumber, Value: "1"}, &core.Param{}}}, postgres.Postgres, "(1, $1)"},
		{"order item", &core.OrderByItem{Expr: &core.ColumnRef{Column: "a"}, Desc: true}, mysql.MySQL, "a DESC"},
		{"assignment", &core.Assignment{Column: &core.ColumnRef{Column: "a"}, Value: &core.Literal{Type: core.LiteralNull}}, oracle.Oracle, "a = NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Node(tt.node, tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
