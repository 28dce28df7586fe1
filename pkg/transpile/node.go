package transpile

import (
	"strings"

	"github.com/hxx258456/sql-convert/internal/introspect"
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/format"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Node adapts a syntax tree node to the introspect capability interfaces.
//
// The adapter tree is built eagerly by Wrap. Clause nodes that have no
// syntax tree counterpart (Where, Group, Order, ...) are synthesized and
// render their text from their children.
type Node struct {
	tag     string
	src     core.Node
	dialect *dialect.Dialect

	// prefix and sep render synthesized nodes: prefix + children joined by sep.
	synthetic bool
	prefix    string
	suffix    string
	sep       string

	args  []*Node
	expr  *Node
	key   string
	value *Node

	alias  string
	name   string
	table  string
	column string
}

var (
	_ introspect.Node             = (*Node)(nil)
	_ introspect.KeyValuer        = (*Node)(nil)
	_ introspect.ArgsLister       = (*Node)(nil)
	_ introspect.ExpressionHolder = (*Node)(nil)
	_ introspect.Aliaser          = (*Node)(nil)
	_ introspect.Namer            = (*Node)(nil)
	_ introspect.Tabler           = (*Node)(nil)
	_ introspect.Columner         = (*Node)(nil)
)

// Wrap adapts a parsed statement (or any syntax tree node) written in
// dialect d.
func Wrap(n core.Node, d *dialect.Dialect) *Node {
	b := &builder{dialect: d}
	return b.build(n)
}

// Type returns the node's type tag.
func (n *Node) Type() string { return n.tag }

// SQL renders the node in its source dialect. Nodes the printer cannot
// fully render return the text produced before the failure.
func (n *Node) SQL() string {
	if n.synthetic {
		parts := make([]string, 0, len(n.args)+1)
		for _, a := range n.args {
			parts = append(parts, a.SQL())
		}
		if n.expr != nil {
			parts = append(parts, n.expr.SQL())
		}
		return n.prefix + strings.Join(parts, n.sep) + n.suffix
	}
	text, _ := format.Node(n.src, n.dialect)
	return text
}

// Source returns the underlying syntax tree node, nil for synthesized
// clause nodes.
func (n *Node) Source() core.Node { return n.src }

// KeyValue reports the key/value pair of assignments and CTEs.
func (n *Node) KeyValue() (string, introspect.Node, bool) {
	if n.value == nil {
		return "", nil, false
	}
	return n.key, n.value, true
}

// Args returns the ordered children.
func (n *Node) Args() []introspect.Node {
	if len(n.args) == 0 {
		return nil
	}
	out := make([]introspect.Node, len(n.args))
	for i, a := range n.args {
		out[i] = a
	}
	return out
}

// Expression returns the single wrapped child, if any.
func (n *Node) Expression() introspect.Node {
	if n.expr == nil {
		return nil
	}
	return n.expr
}

func (n *Node) Alias() string  { return n.alias }
func (n *Node) Name() string   { return n.name }
func (n *Node) Table() string  { return n.table }
func (n *Node) Column() string { return n.column }

// ---------- Builder ----------

type builder struct {
	dialect *dialect.Dialect
}

func (b *builder) node(tag string, src core.Node) *Node {
	return &Node{tag: tag, src: src, dialect: b.dialect}
}

// clause creates a synthesized node rendered as prefix + args joined by ", ".
func (b *builder) clause(tag, prefix string, args ...*Node) *Node {
	return &Node{tag: tag, dialect: b.dialect, synthetic: true, prefix: prefix, sep: ", ", args: args}
}

func (b *builder) build(n core.Node) *Node {
	switch v := n.(type) {
	case *core.SelectStmt:
		return b.selectStmt(v)
	case *core.InsertStmt:
		return b.insert(v)
	case *core.UpdateStmt:
		return b.update(v)
	case *core.DeleteStmt:
		return b.delete(v)
	case *core.SelectBody:
		return b.selectBody(v)
	case *core.SelectCore:
		return b.selectCore(v)
	case *core.SelectItem:
		return b.selectItem(v)
	case *core.FromClause:
		return b.from(v)
	case *core.Join:
		return b.join(v)
	case *core.TableName:
		return b.tableName(v)
	case *core.DerivedTable:
		sub := b.node("Subquery", v)
		sub.expr = b.build(v.Select)
		sub.alias = v.Alias
		return sub
	case *core.WithClause:
		return b.with(v)
	case *core.CTE:
		return b.cte(v)
	case *core.OrderByItem:
		return b.ordered(v)
	case *core.Assignment:
		return b.assignment(v)
	case *core.ValuesRow:
		return b.tuple(v)
	case *core.WhenClause:
		when := b.node("If", v)
		when.args = b.exprs(v.Condition, v.Result)
		return when
	case *core.WindowSpec:
		return b.window(v)
	case core.Expr:
		return b.expr(v)
	}
	return b.node("Unknown", n)
}

// ---------- Statements ----------

func (b *builder) selectStmt(s *core.SelectStmt) *Node {
	var n *Node
	if s.Body != nil {
		n = b.selectBody(s.Body)
	} else {
		n = b.node("Select", nil)
	}
	n.src = s
	if s.With != nil {
		n.args = append([]*Node{b.with(s.With)}, n.args...)
	}
	return n
}

var setOpTags = map[core.SetOpType]string{
	core.SetOpUnion:     "Union",
	core.SetOpUnionAll:  "Union",
	core.SetOpIntersect: "Intersect",
	core.SetOpExcept:    "Except",
}

func (b *builder) selectBody(body *core.SelectBody) *Node {
	if body.Op == core.SetOpNone || body.Right == nil {
		n := b.selectCore(body.Left)
		n.src = body
		return n
	}

	// A trailing ORDER BY or row limit is parsed onto the last SELECT but
	// applies to the whole set operation.
	tail := lastCore(body)
	if tail == nil || len(tail.OrderBy) == 0 && tail.Limit == nil && tail.Offset == nil {
		return b.setOp(body)
	}
	inner := *tail
	inner.OrderBy, inner.Limit, inner.Offset = nil, nil, nil
	n := b.setOp(withLastCore(body, &inner))
	n.src = body
	n.args = append(n.args, b.rowClauses(tail)...)
	return n
}

func (b *builder) setOp(body *core.SelectBody) *Node {
	if body.Op == core.SetOpNone || body.Right == nil {
		n := b.selectCore(body.Left)
		n.src = body
		return n
	}
	n := b.node(setOpTags[body.Op], body)
	n.args = []*Node{b.selectCore(body.Left), b.setOp(body.Right)}
	if body.Op == core.SetOpUnionAll {
		n.name = "ALL"
	}
	return n
}

func lastCore(body *core.SelectBody) *core.SelectCore {
	for body.Op != core.SetOpNone && body.Right != nil {
		body = body.Right
	}
	return body.Left
}

// withLastCore copies the set operation chain with its last SELECT
// replaced by sc.
func withLastCore(body *core.SelectBody, sc *core.SelectCore) *core.SelectBody {
	cp := *body
	if cp.Op == core.SetOpNone || cp.Right == nil {
		cp.Left = sc
	} else {
		cp.Right = withLastCore(cp.Right, sc)
	}
	return &cp
}

func (b *builder) selectCore(sc *core.SelectCore) *Node {
	n := b.node("Select", sc)
	if sc == nil {
		return n
	}
	for _, item := range sc.Columns {
		n.args = append(n.args, b.selectItem(item))
	}
	if sc.From != nil {
		n.args = append(n.args, b.from(sc.From))
	}
	if sc.Where != nil {
		n.args = append(n.args, b.clause("Where", "WHERE ", b.expr(sc.Where)))
	}
	if len(sc.GroupBy) > 0 {
		n.args = append(n.args, b.clause("Group", "GROUP BY ", b.exprs(sc.GroupBy...)...))
	}
	if sc.Having != nil {
		n.args = append(n.args, b.clause("Having", "HAVING ", b.expr(sc.Having)))
	}
	n.args = append(n.args, b.rowClauses(sc)...)
	return n
}

// rowClauses builds the ORDER BY, limit and offset clauses of sc.
func (b *builder) rowClauses(sc *core.SelectCore) []*Node {
	var out []*Node
	if len(sc.OrderBy) > 0 {
		out = append(out, b.order(sc.OrderBy))
	}
	if sc.Limit != nil {
		limit := b.clause("Limit", "LIMIT ", b.expr(sc.Limit))
		if b.dialect.Limit == core.LimitFetchFirst {
			limit.prefix, limit.suffix = "FETCH FIRST ", " ROWS ONLY"
		}
		out = append(out, limit)
	}
	if sc.Offset != nil {
		offset := b.clause("Offset", "OFFSET ", b.expr(sc.Offset))
		if b.dialect.Limit == core.LimitFetchFirst {
			offset.suffix = " ROWS"
		}
		out = append(out, offset)
	}
	return out
}

func (b *builder) selectItem(item *core.SelectItem) *Node {
	switch {
	case item.Star:
		return b.node("Star", item)
	case item.TableStar != "":
		n := b.node("Star", item)
		n.table = item.TableStar
		return n
	case item.Alias != "":
		n := b.node("Alias", item)
		n.expr = b.expr(item.Expr)
		n.alias = item.Alias
		return n
	}
	return b.expr(item.Expr)
}

func (b *builder) from(f *core.FromClause) *Node {
	n := b.node("From", f)
	n.args = append(n.args, b.build(f.Source))
	for _, j := range f.Joins {
		n.args = append(n.args, b.join(j))
	}
	return n
}

func (b *builder) join(j *core.Join) *Node {
	n := b.node("Join", j)
	name := string(j.Type)
	if j.Type == core.JoinComma {
		name = string(core.JoinCross)
	}
	if j.Natural {
		name = "NATURAL " + name
	}
	n.name = name
	n.args = append(n.args, b.build(j.Right))
	if j.Condition != nil {
		n.args = append(n.args, b.expr(j.Condition))
	}
	for _, col := range j.Using {
		c := b.node("Column", &core.ColumnRef{Column: col})
		c.column = col
		n.args = append(n.args, c)
	}
	return n
}

func (b *builder) tableName(t *core.TableName) *Node {
	n := b.node("Table", t)
	n.name = t.Name
	n.alias = t.Alias
	return n
}

func (b *builder) with(w *core.WithClause) *Node {
	n := b.node("With", w)
	for _, cte := range w.CTEs {
		n.args = append(n.args, b.cte(cte))
	}
	return n
}

func (b *builder) cte(c *core.CTE) *Node {
	n := b.node("CTE", c)
	n.alias = c.Name
	if c.Select != nil {
		n.key = c.Name
		n.value = b.selectStmt(c.Select)
	}
	return n
}

func (b *builder) order(items []*core.OrderByItem) *Node {
	args := make([]*Node, len(items))
	for i, item := range items {
		args[i] = b.ordered(item)
	}
	return b.clause("Order", "ORDER BY ", args...)
}

func (b *builder) ordered(item *core.OrderByItem) *Node {
	n := b.node("Ordered", item)
	n.expr = b.expr(item.Expr)
	return n
}

func (b *builder) insert(s *core.InsertStmt) *Node {
	n := b.node("Insert", s)
	if s.Table != nil {
		n.args = append(n.args, b.tableName(s.Table))
		n.name = s.Table.Name
	}
	for _, col := range s.Columns {
		c := b.node("Column", &core.ColumnRef{Column: col})
		c.column = col
		n.args = append(n.args, c)
	}
	if len(s.Rows) > 0 {
		rows := make([]*Node, len(s.Rows))
		for i, r := range s.Rows {
			rows[i] = b.tuple(r)
		}
		n.args = append(n.args, b.clause("Values", "VALUES ", rows...))
	}
	if s.Select != nil {
		n.args = append(n.args, b.selectStmt(s.Select))
	}
	return n
}

func (b *builder) tuple(r *core.ValuesRow) *Node {
	n := b.node("Tuple", r)
	n.args = b.exprs(r.Values...)
	return n
}

func (b *builder) update(s *core.UpdateStmt) *Node {
	n := b.node("Update", s)
	if s.Table != nil {
		n.args = append(n.args, b.tableName(s.Table))
		n.name = s.Table.Name
	}
	for _, a := range s.Set {
		n.args = append(n.args, b.assignment(a))
	}
	if s.Where != nil {
		n.args = append(n.args, b.clause("Where", "WHERE ", b.expr(s.Where)))
	}
	return n
}

func (b *builder) assignment(a *core.Assignment) *Node {
	n := b.node("Assignment", a)
	if a.Column != nil && a.Value != nil {
		n.key = a.Column.Column
		if a.Column.Table != "" {
			n.key = a.Column.Table + "." + a.Column.Column
		}
		n.value = b.expr(a.Value)
	}
	return n
}

func (b *builder) delete(s *core.DeleteStmt) *Node {
	n := b.node("Delete", s)
	if s.Table != nil {
		n.args = append(n.args, b.tableName(s.Table))
		n.name = s.Table.Name
	}
	if s.Where != nil {
		n.args = append(n.args, b.clause("Where", "WHERE ", b.expr(s.Where)))
	}
	return n
}

func (b *builder) window(w *core.WindowSpec) *Node {
	n := b.node("Window", w)
	n.args = b.exprs(w.PartitionBy...)
	for _, item := range w.OrderBy {
		n.args = append(n.args, b.ordered(item))
	}
	return n
}

// ---------- Expressions ----------

var binaryTags = map[token.TokenType]string{
	token.EQ:      "EQ",
	token.NE:      "NEQ",
	token.GT:      "GT",
	token.GE:      "GTE",
	token.LT:      "LT",
	token.LE:      "LTE",
	token.AND:     "And",
	token.OR:      "Or",
	token.PLUS:    "Add",
	token.MINUS:   "Sub",
	token.STAR:    "Mul",
	token.SLASH:   "Div",
	token.PERCENT: "Mod",
	token.DPIPE:   "DPipe",
}

var unaryTags = map[token.TokenType]string{
	token.NOT:   "Not",
	token.MINUS: "Neg",
	token.PLUS:  "Pos",
}

func (b *builder) exprs(list ...core.Expr) []*Node {
	out := make([]*Node, 0, len(list))
	for _, e := range list {
		if e != nil {
			out = append(out, b.expr(e))
		}
	}
	return out
}

func (b *builder) expr(e core.Expr) *Node {
	switch v := e.(type) {
	case *core.ColumnRef:
		n := b.node("Column", v)
		n.table = v.Table
		n.column = v.Column
		return n

	case *core.Literal:
		switch v.Type {
		case core.LiteralNull:
			return b.node("Null", v)
		case core.LiteralBool:
			return b.node("Boolean", v)
		}
		return b.node("Literal", v)

	case *core.Param:
		return b.node("Placeholder", v)

	case *core.StarExpr:
		n := b.node("Star", v)
		n.table = v.Table
		return n

	case *core.BinaryExpr:
		tag, ok := binaryTags[v.Op]
		if !ok {
			tag = "Binary"
		}
		n := b.node(tag, v)
		n.args = b.exprs(v.Left, v.Right)
		return n

	case *core.UnaryExpr:
		tag, ok := unaryTags[v.Op]
		if !ok {
			tag = "Unary"
		}
		n := b.node(tag, v)
		n.expr = b.expr(v.Expr)
		return n

	case *core.FuncCall:
		n := b.node("Func", v)
		n.name = v.Name
		if v.Star {
			n.args = append(n.args, b.node("Star", &core.StarExpr{}))
		}
		n.args = append(n.args, b.exprs(v.Args...)...)
		if v.Over != nil {
			n.args = append(n.args, b.window(v.Over))
		}
		return n

	case *core.CaseExpr:
		n := b.node("Case", v)
		if v.Operand != nil {
			n.args = append(n.args, b.expr(v.Operand))
		}
		for _, w := range v.Whens {
			n.args = append(n.args, b.build(w))
		}
		if v.Else != nil {
			els := b.clause("Else", "ELSE ")
			els.expr = b.expr(v.Else)
			n.args = append(n.args, els)
		}
		return n

	case *core.CastExpr:
		n := b.node("Cast", v)
		n.expr = b.expr(v.Expr)
		n.name = v.TypeName
		return n

	case *core.InExpr:
		n := b.node(negated("In", v.Not), v)
		n.args = b.exprs(v.Expr)
		n.args = append(n.args, b.exprs(v.Values...)...)
		if v.Query != nil {
			sub := b.node("Subquery", &core.SubqueryExpr{Select: v.Query})
			sub.expr = b.selectStmt(v.Query)
			n.args = append(n.args, sub)
		}
		return n

	case *core.BetweenExpr:
		n := b.node(negated("Between", v.Not), v)
		n.args = b.exprs(v.Expr, v.Low, v.High)
		return n

	case *core.IsNullExpr:
		n := b.node(negated("Is", v.Not), v)
		n.args = append(b.exprs(v.Expr), b.node("Null", &core.Literal{Type: core.LiteralNull, Value: "NULL"}))
		return n

	case *core.LikeExpr:
		tag := "Like"
		if v.Op == token.ILIKE {
			tag = "ILike"
		}
		n := b.node(negated(tag, v.Not), v)
		n.args = b.exprs(v.Expr, v.Pattern, v.Escape)
		return n

	case *core.ParenExpr:
		n := b.node("Paren", v)
		if v.Expr != nil {
			n.expr = b.expr(v.Expr)
		}
		return n

	case *core.SubqueryExpr:
		n := b.node("Subquery", v)
		if v.Select != nil {
			n.expr = b.selectStmt(v.Select)
		}
		return n

	case *core.ExistsExpr:
		n := b.node(negated("Exists", v.Not), v)
		if v.Select != nil {
			n.expr = b.selectStmt(v.Select)
		}
		return n
	}
	return b.node("Unknown", e)
}

func negated(tag string, not bool) string {
	if not {
		if tag == "Is" {
			return "IsNot"
		}
		return "Not" + tag
	}
	return tag
}
