package transpile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxx258456/sql-convert/internal/introspect"
)

func serializeFirst(t *testing.T, source, sql string) *introspect.Tree {
	t.Helper()
	eng := mustEngine(t, source, "oracle")
	stmts, err := eng.Parse(sql)
	require.NoError(t, err)
	require.NotEmpty(t, stmts)
	tree, err := introspect.Serialize(stmts[0])
	require.NoError(t, err)
	return tree
}

func argTypes(tree *introspect.Tree) []string {
	types := make([]string, len(tree.Args))
	for i, a := range tree.Args {
		types[i] = a.Type
	}
	return types
}

func TestNode_Select(t *testing.T) {
	tree := serializeFirst(t, "mysql", "SELECT a AS x, t.b FROM t WHERE a = 1")

	assert.Equal(t, "Select", tree.Type)
	assert.Equal(t, "SELECT a AS x, t.b FROM t WHERE a = 1", tree.SQL)
	assert.Equal(t, []string{"Alias", "Column", "From", "Where"}, argTypes(tree))

	alias := tree.Args[0]
	assert.Equal(t, "x", alias.Alias)
	require.NotNil(t, alias.Expression)
	assert.Equal(t, "Column", alias.Expression.Type)
	assert.Equal(t, "a", alias.Expression.Column)

	col := tree.Args[1]
	assert.Equal(t, "t", col.Table)
	assert.Equal(t, "b", col.Column)
	assert.Equal(t, "t.b", col.SQL)

	from := tree.Args[2]
	require.Len(t, from.Args, 1)
	assert.Equal(t, "Table", from.Args[0].Type)
	assert.Equal(t, "t", from.Args[0].Name)

	where := tree.Args[3]
	assert.Equal(t, "WHERE a = 1", where.SQL)
	require.Len(t, where.Args, 1)
	assert.Equal(t, "EQ", where.Args[0].Type)
	assert.Equal(t, []string{"Column", "Literal"}, argTypes(where.Args[0]))
}

func TestNode_Statements(t *testing.T) {
	tests := []struct {
		sql      string
		wantType string
	}{
		{"INSERT INTO t VALUES (1)", "Insert"},
		{"UPDATE t SET a = 1", "Update"},
		{"DELETE FROM t", "Delete"},
		{"SELECT a FROM t1 UNION SELECT a FROM t2", "Union"},
		{"SELECT a FROM t1 INTERSECT SELECT a FROM t2", "Intersect"},
		{"SELECT a FROM t1 EXCEPT SELECT a FROM t2", "Except"},
	}
	for _, tt := range tests {
		t.Run(tt.wantType, func(t *testing.T) {
			tree := serializeFirst(t, "mysql", tt.sql)
			assert.Equal(t, tt.wantType, tree.Type)
			assert.Equal(t, tt.sql, tree.SQL)
		})
	}
}

func TestNode_Assignment(t *testing.T) {
	tree := serializeFirst(t, "mysql", "UPDATE t SET a = 1, b = 'x' WHERE id = 2")
	require.Equal(t, []string{"Table", "Assignment", "Assignment", "Where"}, argTypes(tree))

	set := tree.Args[1]
	assert.Equal(t, "a", set.Key)
	require.NotNil(t, set.Value)
	assert.Equal(t, "Literal", set.Value.Type)
	assert.Equal(t, "1", set.Value.SQL)
	assert.Empty(t, set.Args)
	assert.Nil(t, set.Expression)
}

func TestNode_With(t *testing.T) {
	tree := serializeFirst(t, "mysql", "WITH c AS (SELECT 1) SELECT * FROM c")
	assert.Equal(t, "Select", tree.Type)
	require.NotEmpty(t, tree.Args)

	with := tree.Args[0]
	assert.Equal(t, "With", with.Type)
	require.Len(t, with.Args, 1)
	cte := with.Args[0]
	assert.Equal(t, "CTE", cte.Type)
	assert.Equal(t, "c", cte.Key)
	assert.Equal(t, "c", cte.Alias)
	require.NotNil(t, cte.Value)
	assert.Equal(t, "Select", cte.Value.Type)
	assert.Equal(t, "SELECT 1", cte.Value.SQL)
}

func TestNode_Expressions(t *testing.T) {
	tree := serializeFirst(t, "mysql",
		"SELECT COUNT(*), CAST(a AS CHAR), -b, CASE WHEN a IS NULL THEN 0 ELSE 1 END FROM t")
	require.Equal(t, []string{"Func", "Cast", "Neg", "Case", "From"}, argTypes(tree))

	count := tree.Args[0]
	assert.Equal(t, "COUNT", count.Name)
	assert.Equal(t, []string{"Star"}, argTypes(count))

	cast := tree.Args[1]
	assert.Equal(t, "CHAR", cast.Name)
	require.NotNil(t, cast.Expression)
	assert.Equal(t, "a", cast.Expression.Column)

	neg := tree.Args[2]
	require.NotNil(t, neg.Expression)
	assert.Equal(t, "b", neg.Expression.Column)

	kase := tree.Args[3]
	assert.Equal(t, []string{"If", "Else"}, argTypes(kase))
	assert.Equal(t, []string{"Is", "Literal"}, argTypes(kase.Args[0]))
	assert.Equal(t, "ELSE 1", kase.Args[1].SQL)
}

func TestNode_Deterministic(t *testing.T) {
	eng := mustEngine(t, "mysql", "oracle")
	stmts, err := eng.Parse("SELECT a, SUM(b) FROM t JOIN u USING (id) GROUP BY a HAVING SUM(b) > 1 ORDER BY a DESC LIMIT 3")
	require.NoError(t, err)

	first, err := introspect.Serialize(stmts[0])
	require.NoError(t, err)
	second, err := introspect.Serialize(stmts[0])
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	assert.Equal(t, []string{"Column", "Func", "From", "Group", "Having", "Order", "Limit"}, argTypes(first))
	assert.Equal(t, "LIMIT 3", first.Args[6].SQL)
	assert.Equal(t, "ORDER BY a DESC", first.Args[5].SQL)
}

func TestNode_SetOperationClauses(t *testing.T) {
	tree := serializeFirst(t, "mysql", "SELECT 1 UNION SELECT 2 LIMIT 1")
	assert.Equal(t, "Union", tree.Type)
	assert.Equal(t, "SELECT 1 UNION SELECT 2 LIMIT 1", tree.SQL)
	assert.Equal(t, []string{"Select", "Select", "Limit"}, argTypes(tree))
	assert.Equal(t, "SELECT 2", tree.Args[1].SQL)
	assert.Equal(t, "LIMIT 1", tree.Args[2].SQL)

	sql := "SELECT a FROM t1 UNION ALL SELECT a FROM t2 EXCEPT SELECT a FROM t3 ORDER BY a LIMIT 5 OFFSET 2"
	tree = serializeFirst(t, "mysql", sql)
	assert.Equal(t, sql, tree.SQL)
	assert.Equal(t, "ALL", tree.Name)
	assert.Equal(t, []string{"Select", "Except", "Order", "Limit", "Offset"}, argTypes(tree))

	except := tree.Args[1]
	assert.Equal(t, "SELECT a FROM t2 EXCEPT SELECT a FROM t3", except.SQL)
	assert.Equal(t, []string{"Select", "Select"}, argTypes(except))
	assert.Equal(t, []string{"Column", "From"}, argTypes(except.Args[1]))

	// The clauses move in the tree only; rendering still limits the union.
	eng := mustEngine(t, "mysql", "oracle")
	stmts, err := eng.Parse("SELECT a FROM t1 UNION SELECT a FROM t2 LIMIT 1")
	require.NoError(t, err)
	_, err = introspect.Serialize(stmts[0])
	require.NoError(t, err)
	out, err := eng.Render(stmts, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT a FROM t1 UNION SELECT a FROM t2 FETCH FIRST 1 ROWS ONLY"}, out)
}

func TestNode_RenderUsesSource(t *testing.T) {
	eng := mustEngine(t, "mysql", "oracle")
	stmts, err := eng.Parse("SELECT a FROM t LIMIT 2")
	require.NoError(t, err)

	node, ok := stmts[0].(*Node)
	require.True(t, ok)
	assert.NotNil(t, node.Source())
	assert.Equal(t, "SELECT a FROM t LIMIT 2", node.SQL())

	out, err := eng.Render(stmts, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT a FROM t FETCH FIRST 2 ROWS ONLY"}, out)
}
