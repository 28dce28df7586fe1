package parser

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Statement parsing: WITH clause, CTEs, SELECT body, SELECT list, ORDER BY
// and row limiting.
//
// Grammar:
//
//	select_stmt   → [WITH [RECURSIVE] cte ("," cte)*] select_body
//	cte           → identifier ["(" ident_list ")"] AS "(" select_stmt ")"
//	select_body   → select_core [(UNION [ALL|DISTINCT]|INTERSECT|EXCEPT|MINUS) select_body]
//	select_core   → SELECT [DISTINCT|ALL] select_list
//	                [FROM from_clause] [WHERE expr]
//	                [GROUP BY expr_list] [HAVING expr]
//	                [ORDER BY order_list] [limit_clause]
//	limit_clause  → LIMIT expr [OFFSET expr] | LIMIT expr "," expr
//	              | [OFFSET expr (ROW|ROWS)] [FETCH (FIRST|NEXT) expr (ROW|ROWS) ONLY]
//	select_item   → "*" | table "." "*" | expr [[AS] alias]
//	order_item    → expr [ASC|DESC] [NULLS (FIRST|LAST)]

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() core.Stmt {
	switch p.token.Type {
	case token.SELECT, token.WITH:
		return p.parseSelectStmt()
	case token.INSERT:
		return p.parseInsert()
	case token.UPDATE:
		return p.parseUpdate()
	case token.DELETE:
		return p.parseDelete()
	case token.LPAREN:
		if p.checkPeek(token.SELECT) {
			return p.parseSelectStmt()
		}
	}
	p.errorUnexpected("SELECT, INSERT, UPDATE, DELETE or WITH")
	return nil
}

func (p *Parser) parseSelectStmt() *core.SelectStmt {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	stmt := &core.SelectStmt{Start: p.token.Pos}
	if p.check(token.WITH) {
		stmt.With = p.parseWithClause()
	}
	stmt.Body = p.parseSelectBody()
	return stmt
}

func (p *Parser) parseWithClause() *core.WithClause {
	p.expect(token.WITH)
	with := &core.WithClause{Recursive: p.match(token.RECURSIVE)}
	for !p.failed() {
		with.CTEs = append(with.CTEs, p.parseCTE())
		if !p.match(token.COMMA) {
			break
		}
	}
	return with
}

func (p *Parser) parseCTE() *core.CTE {
	cte := &core.CTE{Name: p.parseIdent("CTE name")}
	if p.check(token.LPAREN) {
		cte.Columns = p.parseIdentList("column name")
	}
	p.expect(token.AS)
	p.expect(token.LPAREN)
	cte.Select = p.parseSelectStmt()
	p.expect(token.RPAREN)
	return cte
}

func (p *Parser) parseSelectBody() *core.SelectBody {
	body := &core.SelectBody{}
	if p.check(token.LPAREN) && p.checkPeek(token.SELECT) {
		// A parenthesized operand of a set operation must be a single core.
		p.nextToken()
		inner := p.parseSelectBody()
		p.expect(token.RPAREN)
		if inner != nil && inner.Op == core.SetOpNone {
			body.Left = inner.Left
		} else {
			p.addError("parenthesized set operations are not supported")
			return body
		}
	} else {
		body.Left = p.parseSelectCore()
	}

	switch {
	case p.match(token.UNION):
		if p.match(token.ALL) {
			body.Op = core.SetOpUnionAll
		} else {
			p.match(token.DISTINCT)
			body.Op = core.SetOpUnion
		}
	case p.match(token.INTERSECT):
		body.Op = core.SetOpIntersect
	case p.match(token.EXCEPT):
		body.Op = core.SetOpExcept
	case p.isMinus(p.token):
		p.nextToken()
		body.Op = core.SetOpExcept
	default:
		return body
	}
	body.Right = p.parseSelectBody()
	return body
}

func (p *Parser) parseSelectCore() *core.SelectCore {
	p.expect(token.SELECT)
	sc := &core.SelectCore{}

	if p.match(token.DISTINCT) {
		sc.Distinct = true
	} else {
		p.match(token.ALL)
	}

	sc.Columns = p.parseSelectList()

	if p.match(token.FROM) {
		sc.From = p.parseFromClause()
	}
	if p.match(token.WHERE) {
		sc.Where = p.parseExpression()
	}
	if p.match(token.GROUP) {
		p.expect(token.BY)
		sc.GroupBy = p.parseExpressionList()
	}
	if p.match(token.HAVING) {
		sc.Having = p.parseExpression()
	}
	if p.match(token.ORDER) {
		p.expect(token.BY)
		sc.OrderBy = p.parseOrderByList()
	}
	p.parseLimit(sc)
	return sc
}

// parseLimit normalizes every row-limiting spelling into Limit/Offset.
func (p *Parser) parseLimit(sc *core.SelectCore) {
	if p.check(token.LIMIT) {
		if p.dialect.Limit == core.LimitFetchFirst {
			p.unsupported("LIMIT")
			return
		}
		p.nextToken()
		first := p.parseExpression()
		switch {
		case p.match(token.COMMA):
			// LIMIT offset, count
			sc.Offset = first
			sc.Limit = p.parseExpression()
		case p.match(token.OFFSET):
			sc.Limit = first
			sc.Offset = p.parseExpression()
		default:
			sc.Limit = first
		}
		return
	}

	if p.match(token.OFFSET) {
		sc.Offset = p.parseExpression()
		if !p.match(token.ROWS) {
			p.match(token.ROW)
		}
	}
	if p.match(token.FETCH) {
		if !p.match(token.FIRST) && !p.match(token.NEXT) {
			p.errorUnexpected("FIRST or NEXT")
			return
		}
		sc.Limit = p.parseExpression()
		if !p.match(token.ROWS) && !p.match(token.ROW) {
			p.errorUnexpected("ROWS")
			return
		}
		p.expect(token.ONLY)
	}
}

func (p *Parser) parseSelectList() []*core.SelectItem {
	var items []*core.SelectItem
	for !p.failed() {
		items = append(items, p.parseSelectItem())
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}

func (p *Parser) parseSelectItem() *core.SelectItem {
	if p.match(token.STAR) {
		return &core.SelectItem{Star: true}
	}
	if isIdentLike(p.token) && p.checkPeek(token.DOT) && p.peek2.Type == token.STAR {
		item := &core.SelectItem{TableStar: p.token.Literal}
		p.nextToken()
		p.nextToken()
		p.nextToken()
		return item
	}

	item := &core.SelectItem{Expr: p.parseExpression()}
	item.Alias = p.parseAlias()
	return item
}

func (p *Parser) parseOrderByList() []*core.OrderByItem {
	var items []*core.OrderByItem
	for !p.failed() {
		item := &core.OrderByItem{Expr: p.parseExpression()}
		if p.match(token.DESC) {
			item.Desc = true
		} else {
			p.match(token.ASC)
		}
		if p.match(token.NULLS) {
			first := p.check(token.FIRST)
			if !p.match(token.FIRST) && !p.match(token.LAST) {
				p.errorUnexpected("FIRST or LAST")
				return items
			}
			item.NullsFirst = &first
		}
		items = append(items, item)
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}
