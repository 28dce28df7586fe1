package format

import (
	"fmt"
	"strings"

	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Format renders a parsed statement in the given dialect. Pretty output
// puts each clause on its own line; compact output is a single line.
// Constructs the dialect cannot express yield an *UnsupportedError.
func Format(stmt core.Stmt, d *dialect.Dialect, pretty bool) (string, error) {
	if d == nil {
		return "", dialect.ErrDialectRequired
	}
	p := newPrinter(d, pretty)
	p.formatStmt(stmt)
	if p.err != nil {
		return "", p.err
	}
	return p.String(), nil
}

// Node renders any syntax tree node in compact form: statements,
// expressions, table references and the structural pieces in between
// (select items, joins, CTEs, assignments, ...). On failure the text
// rendered so far is returned together with the error.
func Node(n core.Node, d *dialect.Dialect) (string, error) {
	if d == nil {
		return "", dialect.ErrDialectRequired
	}
	p := newPrinter(d, false)
	switch v := n.(type) {
	case core.Stmt:
		p.formatStmt(v)
	case core.Expr:
		p.formatExpr(v)
	case core.TableRef:
		p.formatTableRef(v)
	case *core.SelectBody:
		p.formatSelectBody(v)
	case *core.SelectCore:
		p.formatSelectCore(v)
	case *core.SelectItem:
		p.formatSelectItem(v)
	case *core.FromClause:
		p.formatFromClause(v)
	case *core.Join:
		p.formatJoin(v)
	case *core.OrderByItem:
		p.formatOrderByItem(v)
	case *core.WithClause:
		p.formatWithClause(v)
	case *core.CTE:
		p.formatWithClause(&core.WithClause{CTEs: []*core.CTE{v}})
	case *core.Assignment:
		p.formatAssignment(v)
	case *core.ValuesRow:
		p.write("(")
		p.formatList(len(v.Values), func(i int) { p.formatExpr(v.Values[i]) }, false)
		p.write(")")
	case *core.WhenClause:
		p.kw(token.WHEN)
		p.space()
		p.formatExpr(v.Condition)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.formatExpr(v.Result)
	case *core.WindowSpec:
		p.formatWindowSpec(v)
	default:
		return "", fmt.Errorf("format: unknown node type %T", n)
	}
	return strings.TrimSpace(p.String()), p.err
}

func (p *Printer) formatStmt(stmt core.Stmt) {
	switch s := stmt.(type) {
	case *core.SelectStmt:
		p.formatSelectStmt(s)
	case *core.InsertStmt:
		p.formatInsert(s)
	case *core.UpdateStmt:
		p.formatUpdate(s)
	case *core.DeleteStmt:
		p.formatDelete(s)
	default:
		p.fail(fmt.Errorf("format: unknown statement type %T", stmt))
	}
}
