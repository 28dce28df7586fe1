package format

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Largest unsigned 64-bit value: MySQL's spelling of "no limit" when only
// an offset is given.
const unlimitedRows = "18446744073709551615"

func (p *Printer) formatSelectStmt(stmt *core.SelectStmt) {
	if stmt == nil {
		return
	}
	if stmt.With != nil {
		p.formatWithClause(stmt.With)
		p.br()
	}
	p.formatSelectBody(stmt.Body)
}

func (p *Printer) formatWithClause(with *core.WithClause) {
	p.kw(token.WITH)
	if with.Recursive {
		p.space()
		p.kw(token.RECURSIVE)
	}
	p.space()
	p.formatList(len(with.CTEs), func(i int) {
		cte := with.CTEs[i]
		p.ident(cte.Name)
		if len(cte.Columns) > 0 {
			p.write(" (")
			p.formatList(len(cte.Columns), func(j int) { p.ident(cte.Columns[j]) }, false)
			p.write(")")
		}
		p.space()
		p.kw(token.AS)
		p.space()
		p.formatSubquery(cte.Select)
	}, false)
}

// formatSubquery prints "(select)", breaking and indenting the inner query
// in pretty mode.
func (p *Printer) formatSubquery(stmt *core.SelectStmt) {
	p.write("(")
	if !p.pretty {
		p.formatSelectStmt(stmt)
		p.write(")")
		return
	}
	p.writeln()
	p.indent()
	p.formatSelectStmt(stmt)
	p.dedent()
	p.writeln()
	p.write(")")
}

func (p *Printer) formatSelectBody(body *core.SelectBody) {
	if body == nil {
		return
	}
	p.formatSelectCore(body.Left)
	if body.Op == core.SetOpNone {
		return
	}

	p.br()
	switch body.Op {
	case core.SetOpUnion:
		p.kw(token.UNION)
	case core.SetOpUnionAll:
		p.kw(token.UNION, token.ALL)
	case core.SetOpIntersect:
		p.kw(token.INTERSECT)
	case core.SetOpExcept:
		if p.dialect.SupportsExcept {
			p.kw(token.EXCEPT)
		} else {
			p.keyword("MINUS")
		}
	}
	p.br()
	p.formatSelectBody(body.Right)
}

func (p *Printer) formatSelectCore(sc *core.SelectCore) {
	if sc == nil {
		return
	}

	p.kw(token.SELECT)
	if sc.Distinct {
		p.space()
		p.kw(token.DISTINCT)
	}
	p.block(func() {
		p.formatList(len(sc.Columns), func(i int) { p.formatSelectItem(sc.Columns[i]) }, true)
	})

	switch {
	case sc.From != nil:
		p.br()
		p.kw(token.FROM)
		p.space()
		p.formatFromClause(sc.From)
	case p.dialect.RequiresFrom:
		p.br()
		p.kw(token.FROM)
		p.space()
		p.keyword("DUAL")
	}

	if sc.Where != nil {
		p.br()
		p.kw(token.WHERE)
		p.block(func() { p.formatExpr(sc.Where) })
	}
	if len(sc.GroupBy) > 0 {
		p.br()
		p.kw(token.GROUP, token.BY)
		p.block(func() {
			p.formatList(len(sc.GroupBy), func(i int) { p.formatExpr(sc.GroupBy[i]) }, true)
		})
	}
	if sc.Having != nil {
		p.br()
		p.kw(token.HAVING)
		p.block(func() { p.formatExpr(sc.Having) })
	}
	if len(sc.OrderBy) > 0 {
		p.br()
		p.kw(token.ORDER, token.BY)
		p.block(func() {
			p.formatList(len(sc.OrderBy), func(i int) { p.formatOrderByItem(sc.OrderBy[i]) }, true)
		})
	}
	p.formatLimit(sc)
}

// formatLimit writes row limiting in the target dialect's style.
func (p *Printer) formatLimit(sc *core.SelectCore) {
	if sc.Limit == nil && sc.Offset == nil {
		return
	}

	if p.dialect.Limit == core.LimitFetchFirst {
		if sc.Offset != nil {
			p.br()
			p.kw(token.OFFSET)
			p.space()
			p.formatExpr(sc.Offset)
			p.space()
			p.kw(token.ROWS)
		}
		if sc.Limit != nil {
			p.br()
			p.kw(token.FETCH)
			p.space()
			if sc.Offset != nil {
				p.kw(token.NEXT)
			} else {
				p.kw(token.FIRST)
			}
			p.space()
			p.formatExpr(sc.Limit)
			p.space()
			p.kw(token.ROWS, token.ONLY)
		}
		return
	}

	if sc.Limit != nil || p.dialect.OffsetNeedsLimit {
		p.br()
		p.kw(token.LIMIT)
		p.space()
		if sc.Limit != nil {
			p.formatExpr(sc.Limit)
		} else {
			p.write(unlimitedRows)
		}
	}
	if sc.Offset != nil {
		p.br()
		p.kw(token.OFFSET)
		p.space()
		p.formatExpr(sc.Offset)
	}
}

func (p *Printer) formatSelectItem(item *core.SelectItem) {
	switch {
	case item.Star:
		p.write("*")
	case item.TableStar != "":
		p.ident(item.TableStar)
		p.write(".*")
	default:
		p.formatExpr(item.Expr)
		if item.Alias != "" {
			p.space()
			p.kw(token.AS)
			p.space()
			p.ident(item.Alias)
		}
	}
}

func (p *Printer) formatOrderByItem(item *core.OrderByItem) {
	p.formatExpr(item.Expr)
	if item.Desc {
		p.space()
		p.kw(token.DESC)
	}
	if item.NullsFirst != nil {
		p.space()
		p.kw(token.NULLS)
		p.space()
		if *item.NullsFirst {
			p.kw(token.FIRST)
		} else {
			p.kw(token.LAST)
		}
	}
}

// ---------- FROM ----------

func (p *Printer) formatFromClause(from *core.FromClause) {
	p.formatTableRef(from.Source)
	for _, j := range from.Joins {
		p.formatJoin(j)
	}
}

func (p *Printer) formatJoin(j *core.Join) {
	if j.Type == core.JoinComma {
		p.write(", ")
		p.formatTableRef(j.Right)
		return
	}

	p.br()
	if j.Natural {
		p.kw(token.NATURAL)
		p.space()
	}
	if j.Type != core.JoinInner {
		p.keyword(string(j.Type))
		p.space()
	}
	p.kw(token.JOIN)
	p.space()
	p.formatTableRef(j.Right)

	switch {
	case j.Condition != nil:
		if p.pretty {
			p.writeln()
			p.indent()
			p.kw(token.ON)
			p.space()
			p.formatExpr(j.Condition)
			p.dedent()
		} else {
			p.space()
			p.kw(token.ON)
			p.space()
			p.formatExpr(j.Condition)
		}
	case len(j.Using) > 0:
		p.space()
		p.kw(token.USING)
		p.write(" (")
		p.formatList(len(j.Using), func(i int) { p.ident(j.Using[i]) }, false)
		p.write(")")
	}
}

func (p *Printer) formatTableRef(ref core.TableRef) {
	switch t := ref.(type) {
	case *core.TableName:
		p.formatTableName(t)
		p.formatTableAlias(t.Alias)
	case *core.DerivedTable:
		p.formatSubquery(t.Select)
		p.formatTableAlias(t.Alias)
	}
}

func (p *Printer) formatTableName(t *core.TableName) {
	if t.Schema != "" {
		p.ident(t.Schema)
		p.write(".")
	}
	p.ident(t.Name)
}

func (p *Printer) formatTableAlias(alias string) {
	if alias == "" {
		return
	}
	p.space()
	if p.dialect.TableAliasAs {
		p.kw(token.AS)
		p.space()
	}
	p.ident(alias)
}

// ---------- DML ----------

func (p *Printer) formatInsert(stmt *core.InsertStmt) {
	p.kw(token.INSERT, token.INTO)
	p.space()
	p.formatTableName(stmt.Table)
	if len(stmt.Columns) > 0 {
		p.write(" (")
		p.formatList(len(stmt.Columns), func(i int) { p.ident(stmt.Columns[i]) }, false)
		p.write(")")
	}

	switch {
	case stmt.Select != nil:
		p.br()
		p.formatSelectStmt(stmt.Select)
	case len(stmt.Rows) > 1 && !p.dialect.MultiRowValues:
		p.br()
		p.formatSelectStmt(rowsAsSelect(stmt.Rows))
	default:
		p.br()
		p.kw(token.VALUES)
		p.block(func() {
			p.formatList(len(stmt.Rows), func(i int) {
				p.write("(")
				p.formatList(len(stmt.Rows[i].Values), func(j int) { p.formatExpr(stmt.Rows[i].Values[j]) }, false)
				p.write(")")
			}, true)
		})
	}
}

// rowsAsSelect rewrites a multi-row VALUES list as
// SELECT ... UNION ALL SELECT ... for dialects without row constructors.
func rowsAsSelect(rows []*core.ValuesRow) *core.SelectStmt {
	var body *core.SelectBody
	for i := len(rows) - 1; i >= 0; i-- {
		sc := &core.SelectCore{}
		for _, v := range rows[i].Values {
			sc.Columns = append(sc.Columns, &core.SelectItem{Expr: v})
		}
		next := &core.SelectBody{Left: sc}
		if body != nil {
			next.Op = core.SetOpUnionAll
			next.Right = body
		}
		body = next
	}
	return &core.SelectStmt{Body: body}
}

func (p *Printer) formatUpdate(stmt *core.UpdateStmt) {
	p.kw(token.UPDATE)
	p.space()
	p.formatTableName(stmt.Table)
	p.formatTableAlias(stmt.Table.Alias)

	p.br()
	p.kw(token.SET)
	p.block(func() {
		p.formatList(len(stmt.Set), func(i int) { p.formatAssignment(stmt.Set[i]) }, true)
	})

	if stmt.Where != nil {
		p.br()
		p.kw(token.WHERE)
		p.block(func() { p.formatExpr(stmt.Where) })
	}
}

func (p *Printer) formatAssignment(a *core.Assignment) {
	p.formatExpr(a.Column)
	p.write(" = ")
	p.formatExpr(a.Value)
}

func (p *Printer) formatDelete(stmt *core.DeleteStmt) {
	p.kw(token.DELETE, token.FROM)
	p.space()
	p.formatTableName(stmt.Table)
	p.formatTableAlias(stmt.Table.Alias)

	if stmt.Where != nil {
		p.br()
		p.kw(token.WHERE)
		p.block(func() { p.formatExpr(stmt.Where) })
	}
}
