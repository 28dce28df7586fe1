package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/dialects/mysql"
	"github.com/hxx258456/sql-convert/pkg/dialects/oracle"
	"github.com/hxx258456/sql-convert/pkg/dialects/postgres"
	"github.com/hxx258456/sql-convert/pkg/parser"
	"github.com/hxx258456/sql-convert/pkg/token"
)

func parseOne(t *testing.T, sql string, d *dialect.Dialect) core.Stmt {
	t.Helper()
	stmts, err := parser.Parse(sql, d)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func selectCore(t *testing.T, sql string, d *dialect.Dialect) *core.SelectCore {
	t.Helper()
	stmt, ok := parseOne(t, sql, d).(*core.SelectStmt)
	require.True(t, ok, "expected *core.SelectStmt")
	require.NotNil(t, stmt.Body)
	return stmt.Body.Left
}

func literal(t *testing.T, e core.Expr) string {
	t.Helper()
	lit, ok := e.(*core.Literal)
	require.True(t, ok, "expected *core.Literal, got %T", e)
	return lit.Value
}

// ---------- Script Tests ----------

func TestParse_Script(t *testing.T) {
	stmts, err := parser.Parse("SELECT 1; ; DELETE FROM t;", mysql.MySQL)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.IsType(t, &core.SelectStmt{}, stmts[0])
	assert.IsType(t, &core.DeleteStmt{}, stmts[1])
	assert.Equal(t, token.Position{Line: 1, Column: 13, Offset: 12}, stmts[1].Pos())
}

func TestParse_EmptyInput(t *testing.T) {
	for _, sql := range []string{"", "   ", ";;", "-- only a comment\n", "/* nothing */ ;"} {
		stmts, err := parser.Parse(sql, mysql.MySQL)
		require.NoError(t, err, sql)
		assert.Empty(t, stmts, sql)
	}
}

func TestParse_NilDialect(t *testing.T) {
	_, err := parser.Parse("SELECT 1", nil)
	assert.True(t, errors.Is(err, dialect.ErrDialectRequired))
}

// ---------- Error Tests ----------

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		d       *dialect.Dialect
		line    int
		column  int
		message string
	}{
		{
			name:    "unknown statement",
			sql:     "SELEC 1",
			d:       mysql.MySQL,
			line:    1,
			column:  1,
			message: `unexpected identifier "SELEC", expected SELECT, INSERT, UPDATE, DELETE or WITH`,
		},
		{
			name:    "missing separator",
			sql:     "SELECT 1 SELECT 2",
			d:       mysql.MySQL,
			line:    1,
			column:  10,
			message: `unexpected "SELECT", expected ";" or end of input`,
		},
		{
			name:    "truncated where",
			sql:     "SELECT a\nFROM t\nWHERE",
			d:       mysql.MySQL,
			line:    3,
			column:  6,
			message: "unexpected end of input, expected expression",
		},
		{
			name:    "unterminated string",
			sql:     "SELECT 'abc",
			d:       mysql.MySQL,
			line:    1,
			column:  8,
			message: parser.ErrUnterminatedString,
		},
		{
			name:    "unterminated comment",
			sql:     "SELECT 1 /* note",
			d:       mysql.MySQL,
			line:    1,
			column:  10,
			message: parser.ErrUnterminatedComment,
		},
		{
			name:    "invalid utf8",
			sql:     "SELECT \xff FROM t",
			d:       mysql.MySQL,
			line:    1,
			column:  8,
			message: `unexpected character "\xff"`,
		},
		{
			name:    "illegal character",
			sql:     "SELECT a @ b",
			d:       mysql.MySQL,
			line:    1,
			column:  10,
			message: `unexpected character "@"`,
		},
		{
			name:    "limit in oracle",
			sql:     "SELECT a FROM t LIMIT 5",
			d:       oracle.Oracle,
			line:    1,
			column:  17,
			message: "LIMIT is not supported in oracle dialect",
		},
		{
			name:    "ilike in mysql",
			sql:     "SELECT a FROM t WHERE a ILIKE 'x'",
			d:       mysql.MySQL,
			line:    1,
			column:  25,
			message: "ILIKE is not supported in mysql dialect",
		},
		{
			name:    "incomplete fetch",
			sql:     "SELECT a FROM t FETCH FIRST 5",
			d:       oracle.Oracle,
			line:    1,
			column:  30,
			message: "unexpected end of input, expected ROWS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := parser.Parse(tt.sql, tt.d)
			require.Error(t, err)
			assert.Nil(t, stmts)

			var pe *parser.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Pos.Line)
			assert.Equal(t, tt.column, pe.Pos.Column)
			assert.Equal(t, tt.message, pe.Message)
		})
	}
}

func TestParse_ErrorString(t *testing.T) {
	_, err := parser.Parse("SELEC 1", mysql.MySQL)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse error at line 1, column 1: "))
}

func TestParse_TooDeep(t *testing.T) {
	sql := "SELECT " + strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)
	_, err := parser.Parse(sql, mysql.MySQL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expression nesting exceeds 200 levels")
}

func TestParse_OperatorBudget(t *testing.T) {
	chain := func(terms int) string {
		return "SELECT a FROM t WHERE " + strings.Repeat("a = 1 OR ", terms-1) + "a = 1"
	}

	// 2048 terms use 4095 operators.
	stmts, err := parser.Parse(chain(2048), mysql.MySQL)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	_, err = parser.Parse(chain(2049), mysql.MySQL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement has more than 4096 operators")

	// The budget is per statement.
	script := chain(1500) + "; " + chain(1500)
	stmts, err = parser.Parse(script, mysql.MySQL)
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
}

// ---------- SELECT Tests ----------

func TestParse_SelectClauses(t *testing.T) {
	sc := selectCore(t, "SELECT DISTINCT a, t.*, b AS x, c y FROM s.t WHERE a = 1 GROUP BY a, b HAVING COUNT(*) > 1 ORDER BY a DESC NULLS LAST, b", mysql.MySQL)

	assert.True(t, sc.Distinct)
	require.Len(t, sc.Columns, 4)
	assert.Equal(t, "t", sc.Columns[1].TableStar)
	assert.Equal(t, "x", sc.Columns[2].Alias)
	assert.Equal(t, "y", sc.Columns[3].Alias)

	table, ok := sc.From.Source.(*core.TableName)
	require.True(t, ok)
	assert.Equal(t, "s", table.Schema)
	assert.Equal(t, "t", table.Name)

	assert.NotNil(t, sc.Where)
	assert.Len(t, sc.GroupBy, 2)
	assert.NotNil(t, sc.Having)

	require.Len(t, sc.OrderBy, 2)
	assert.True(t, sc.OrderBy[0].Desc)
	require.NotNil(t, sc.OrderBy[0].NullsFirst)
	assert.False(t, *sc.OrderBy[0].NullsFirst)
	assert.Nil(t, sc.OrderBy[1].NullsFirst)
}

func TestParse_RowLimiting(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		d      *dialect.Dialect
		limit  string
		offset string
	}{
		{"limit", "SELECT a FROM t LIMIT 10", mysql.MySQL, "10", ""},
		{"limit comma", "SELECT a FROM t LIMIT 5, 10", mysql.MySQL, "10", "5"},
		{"limit offset", "SELECT a FROM t LIMIT 10 OFFSET 5", postgres.Postgres, "10", "5"},
		{"fetch first", "SELECT a FROM t FETCH FIRST 10 ROWS ONLY", oracle.Oracle, "10", ""},
		{"offset fetch next", "SELECT a FROM t OFFSET 5 ROWS FETCH NEXT 10 ROWS ONLY", oracle.Oracle, "10", "5"},
		{"offset only", "SELECT a FROM t OFFSET 5 ROWS", oracle.Oracle, "", "5"},
		{"fetch one row", "SELECT a FROM t FETCH FIRST 1 ROW ONLY", oracle.Oracle, "1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := selectCore(t, tt.sql, tt.d)
			if tt.limit == "" {
				assert.Nil(t, sc.Limit)
			} else {
				assert.Equal(t, tt.limit, literal(t, sc.Limit))
			}
			if tt.offset == "" {
				assert.Nil(t, sc.Offset)
			} else {
				assert.Equal(t, tt.offset, literal(t, sc.Offset))
			}
		})
	}
}

func TestParse_Joins(t *testing.T) {
	sc := selectCore(t, "SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id NATURAL JOIN c CROSS JOIN d, e JOIN f USING (id, k)", postgres.Postgres)

	require.Len(t, sc.From.Joins, 5)
	joins := sc.From.Joins

	assert.Equal(t, core.JoinLeft, joins[0].Type)
	assert.NotNil(t, joins[0].Condition)

	assert.Equal(t, core.JoinInner, joins[1].Type)
	assert.True(t, joins[1].Natural)

	assert.Equal(t, core.JoinCross, joins[2].Type)
	assert.Equal(t, core.JoinComma, joins[3].Type)

	assert.Equal(t, core.JoinInner, joins[4].Type)
	assert.Equal(t, []string{"id", "k"}, joins[4].Using)
}

func TestParse_DerivedTable(t *testing.T) {
	sc := selectCore(t, "SELECT x.a FROM (SELECT a FROM t) x", oracle.Oracle)
	derived, ok := sc.From.Source.(*core.DerivedTable)
	require.True(t, ok)
	assert.Equal(t, "x", derived.Alias)
	require.NotNil(t, derived.Select)
}

func TestParse_SetOperations(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		d    *dialect.Dialect
		op   core.SetOpType
	}{
		{"union", "SELECT a FROM t1 UNION SELECT a FROM t2", mysql.MySQL, core.SetOpUnion},
		{"union distinct", "SELECT a FROM t1 UNION DISTINCT SELECT a FROM t2", mysql.MySQL, core.SetOpUnion},
		{"union all", "SELECT a FROM t1 UNION ALL SELECT a FROM t2", mysql.MySQL, core.SetOpUnionAll},
		{"intersect", "SELECT a FROM t1 INTERSECT SELECT a FROM t2", postgres.Postgres, core.SetOpIntersect},
		{"except", "SELECT a FROM t1 EXCEPT SELECT a FROM t2", postgres.Postgres, core.SetOpExcept},
		{"minus", "SELECT a FROM t1 MINUS SELECT a FROM t2", oracle.Oracle, core.SetOpExcept},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseOne(t, tt.sql, tt.d).(*core.SelectStmt)
			assert.Equal(t, tt.op, stmt.Body.Op)
			require.NotNil(t, stmt.Body.Right)
			assert.Equal(t, core.SetOpNone, stmt.Body.Right.Op)
		})
	}
}

func TestParse_MinusIsAnAliasOutsideOracle(t *testing.T) {
	sc := selectCore(t, "SELECT a FROM t1 minus", mysql.MySQL)
	table := sc.From.Source.(*core.TableName)
	assert.Equal(t, "minus", table.Alias)
}

func TestParse_WithClause(t *testing.T) {
	stmt := parseOne(t, "WITH RECURSIVE x (n) AS (SELECT 1), y AS (SELECT n FROM x) SELECT n FROM y", postgres.Postgres).(*core.SelectStmt)

	require.NotNil(t, stmt.With)
	assert.True(t, stmt.With.Recursive)
	require.Len(t, stmt.With.CTEs, 2)
	assert.Equal(t, "x", stmt.With.CTEs[0].Name)
	assert.Equal(t, []string{"n"}, stmt.With.CTEs[0].Columns)
	assert.Equal(t, "y", stmt.With.CTEs[1].Name)
	assert.Nil(t, stmt.With.CTEs[1].Columns)
}

// ---------- Expression Tests ----------

func TestParse_Precedence(t *testing.T) {
	sc := selectCore(t, "SELECT a + b * c", mysql.MySQL)
	add, ok := sc.Columns[0].Expr.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, add.Op)
	mul, ok := add.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, mul.Op)

	sc = selectCore(t, "SELECT a FROM t WHERE x = 1 OR y = 2 AND z = 3", mysql.MySQL)
	or, ok := sc.Where.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.OR, or.Op)
	and, ok := or.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AND, and.Op)
}

func TestParse_PipesFollowDialect(t *testing.T) {
	sc := selectCore(t, "SELECT a || b FROM t", mysql.MySQL)
	assert.Equal(t, token.OR, sc.Columns[0].Expr.(*core.BinaryExpr).Op)

	sc = selectCore(t, "SELECT a || b FROM t", oracle.Oracle)
	assert.Equal(t, token.DPIPE, sc.Columns[0].Expr.(*core.BinaryExpr).Op)
}

func TestParse_Predicates(t *testing.T) {
	sc := selectCore(t, "SELECT a FROM t WHERE a NOT IN (1, 2) AND b BETWEEN 1 AND 5 AND c IS NOT NULL AND d NOT LIKE 'x%'", postgres.Postgres)

	var preds []core.Expr
	var walk func(e core.Expr)
	walk = func(e core.Expr) {
		if b, ok := e.(*core.BinaryExpr); ok && b.Op == token.AND {
			walk(b.Left)
			walk(b.Right)
			return
		}
		preds = append(preds, e)
	}
	walk(sc.Where)
	require.Len(t, preds, 4)

	in := preds[0].(*core.InExpr)
	assert.True(t, in.Not)
	assert.Len(t, in.Values, 2)

	between := preds[1].(*core.BetweenExpr)
	assert.Equal(t, "1", literal(t, between.Low))
	assert.Equal(t, "5", literal(t, between.High))

	assert.True(t, preds[2].(*core.IsNullExpr).Not)

	like := preds[3].(*core.LikeExpr)
	assert.True(t, like.Not)
	assert.Equal(t, token.LIKE, like.Op)
}

func TestParse_Functions(t *testing.T) {
	sc := selectCore(t, "SELECT substr(a, 1, 2), NOW(), CURRENT_TIMESTAMP, COUNT(*), COUNT(DISTINCT b) FROM t", mysql.MySQL)
	require.Len(t, sc.Columns, 5)

	names := make([]string, 0, len(sc.Columns))
	for _, item := range sc.Columns {
		fn, ok := item.Expr.(*core.FuncCall)
		require.True(t, ok, "expected *core.FuncCall, got %T", item.Expr)
		names = append(names, fn.Name)
	}
	assert.Equal(t, []string{"SUBSTRING", "CURRENT_TIMESTAMP", "CURRENT_TIMESTAMP", "COUNT", "COUNT"}, names)
	assert.True(t, sc.Columns[3].Expr.(*core.FuncCall).Star)
	assert.True(t, sc.Columns[4].Expr.(*core.FuncCall).Distinct)
}

func TestParse_Literals(t *testing.T) {
	sc := selectCore(t, `SELECT 1, 'x', TRUE, NULL, $1, "Order" FROM t`, postgres.Postgres)
	require.Len(t, sc.Columns, 6)

	assert.Equal(t, core.LiteralNumber, sc.Columns[0].Expr.(*core.Literal).Type)
	assert.Equal(t, core.LiteralString, sc.Columns[1].Expr.(*core.Literal).Type)
	assert.Equal(t, core.LiteralBool, sc.Columns[2].Expr.(*core.Literal).Type)
	assert.Equal(t, core.LiteralNull, sc.Columns[3].Expr.(*core.Literal).Type)
	assert.IsType(t, &core.Param{}, sc.Columns[4].Expr)
	assert.Equal(t, &core.ColumnRef{Column: "Order"}, sc.Columns[5].Expr)
}

// ---------- DML Tests ----------

func TestParse_Insert(t *testing.T) {
	ins := parseOne(t, "INSERT INTO t (a, b) VALUES (1, 2), (3, 4)", mysql.MySQL).(*core.InsertStmt)
	assert.Equal(t, "t", ins.Table.Name)
	assert.Equal(t, []string{"a", "b"}, ins.Columns)
	require.Len(t, ins.Rows, 2)
	assert.Len(t, ins.Rows[1].Values, 2)
	assert.Nil(t, ins.Select)

	ins = parseOne(t, "INSERT INTO t SELECT a FROM s", oracle.Oracle).(*core.InsertStmt)
	assert.Nil(t, ins.Columns)
	assert.Empty(t, ins.Rows)
	assert.NotNil(t, ins.Select)
}

func TestParse_Update(t *testing.T) {
	upd := parseOne(t, "UPDATE t x SET a = 1, x.b = ? WHERE id = 2", mysql.MySQL).(*core.UpdateStmt)
	assert.Equal(t, "x", upd.Table.Alias)
	require.Len(t, upd.Set, 2)
	assert.Equal(t, "a", upd.Set[0].Column.Column)
	assert.Equal(t, "x", upd.Set[1].Column.Table)
	assert.IsType(t, &core.Param{}, upd.Set[1].Value)
	assert.NotNil(t, upd.Where)
}

func TestParse_Delete(t *testing.T) {
	del := parseOne(t, "DELETE FROM s.t WHERE id IN (SELECT id FROM u)", oracle.Oracle).(*core.DeleteStmt)
	assert.Equal(t, "s", del.Table.Schema)
	assert.Equal(t, "t", del.Table.Name)
	in, ok := del.Where.(*core.InExpr)
	require.True(t, ok)
	assert.NotNil(t, in.Query)
}
