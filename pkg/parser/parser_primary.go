package parser

import (
	"strings"

	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls.
//
// Grammar:
//
//	primary       → literal | param | column_ref | func_call | paren_expr
//	              | subquery | case_expr | cast_expr | exists_expr
//	literal       → NUMBER | STRING | TRUE | FALSE | NULL
//	column_ref    → [table "."] column | schema "." table "." column
//	func_call     → name "(" [DISTINCT] [expr_list | "*"] ")" [OVER window_spec]
//	              | niladic_name
//	window_spec   → "(" [PARTITION BY expr_list] [ORDER BY order_list] ")"

func (p *Parser) parsePrimary() core.Expr {
	switch p.token.Type {
	case token.NUMBER:
		lit := &core.Literal{Type: core.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.STRING:
		lit := &core.Literal{Type: core.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.TRUE, token.FALSE:
		lit := &core.Literal{Type: core.LiteralBool, Value: strings.ToUpper(p.token.Literal)}
		p.nextToken()
		return lit

	case token.NULL:
		p.nextToken()
		return &core.Literal{Type: core.LiteralNull, Value: "NULL"}

	case token.PARAM:
		p.nextToken()
		return &core.Param{}

	case token.CASE:
		return p.parseCaseExpr()

	case token.CAST:
		return p.parseCastExpr()

	case token.EXISTS:
		return p.parseExistsExpr(false)

	case token.LPAREN:
		return p.parseParenExpr()
	}

	if isIdentLike(p.token) {
		return p.parseIdentifierExpr()
	}

	p.errorUnexpected("expression")
	return nil
}

// parseIdentifierExpr parses an identifier which could be a column ref or
// function call.
func (p *Parser) parseIdentifierExpr() core.Expr {
	first := p.token
	p.nextToken()

	switch {
	case p.check(token.LPAREN) && !first.Quoted:
		return p.parseFuncCall(first.Literal)
	case p.check(token.DOT):
		return p.parseQualifiedRef(first.Literal)
	case !first.Quoted && dialect.IsNiladic(first.Literal):
		return &core.FuncCall{Name: p.dialect.CanonicalFunction(first.Literal)}
	}
	return &core.ColumnRef{Column: first.Literal}
}

// parseQualifiedRef parses table.column, schema.table.column, t.* and
// package-qualified function calls such as DBMS_RANDOM.VALUE().
func (p *Parser) parseQualifiedRef(first string) core.Expr {
	parts := []string{first}
	for p.match(token.DOT) {
		if p.check(token.STAR) {
			p.nextToken()
			return &core.StarExpr{Table: strings.Join(parts, ".")}
		}
		tok := p.token
		parts = append(parts, p.parseIdent("identifier"))
		if p.check(token.LPAREN) && !tok.Quoted {
			return p.parseFuncCall(strings.Join(parts, "."))
		}
	}

	ref := &core.ColumnRef{Column: parts[len(parts)-1]}
	if len(parts) > 1 {
		ref.Table = parts[len(parts)-2]
	}
	return ref
}

func (p *Parser) parseFuncCall(name string) core.Expr {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	fn := &core.FuncCall{Name: p.dialect.CanonicalFunction(name)}
	p.expect(token.LPAREN)

	switch {
	case p.check(token.STAR):
		fn.Star = true
		p.nextToken()
	case !p.check(token.RPAREN):
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		}
		fn.Args = p.parseExpressionList()
	}
	p.expect(token.RPAREN)

	if p.check(token.IDENT) && strings.EqualFold(p.token.Literal, "OVER") && p.checkPeek(token.LPAREN) {
		p.nextToken()
		fn.Over = p.parseWindowSpec()
	}
	return fn
}

// parseWindowSpec parses "(" [PARTITION BY ...] [ORDER BY ...] ")".
func (p *Parser) parseWindowSpec() *core.WindowSpec {
	spec := &core.WindowSpec{}
	p.expect(token.LPAREN)
	if p.check(token.IDENT) && strings.EqualFold(p.token.Literal, "PARTITION") {
		p.nextToken()
		p.expect(token.BY)
		spec.PartitionBy = p.parseExpressionList()
	}
	if p.match(token.ORDER) {
		p.expect(token.BY)
		spec.OrderBy = p.parseOrderByList()
	}
	p.expect(token.RPAREN)
	return spec
}

// parseParenExpr parses a parenthesized expression or scalar subquery.
func (p *Parser) parseParenExpr() core.Expr {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	p.expect(token.LPAREN)
	if p.check(token.SELECT) || p.check(token.WITH) {
		sub := &core.SubqueryExpr{Select: p.parseSelectStmt()}
		p.expect(token.RPAREN)
		return sub
	}
	expr := p.parseExpression()
	p.expect(token.RPAREN)
	return &core.ParenExpr{Expr: expr}
}

func (p *Parser) parseExistsExpr(not bool) core.Expr {
	p.expect(token.EXISTS)
	p.expect(token.LPAREN)
	exists := &core.ExistsExpr{Not: not, Select: p.parseSelectStmt()}
	p.expect(token.RPAREN)
	return exists
}

// parseCaseExpr parses CASE [operand] WHEN ... THEN ... [ELSE ...] END.
func (p *Parser) parseCaseExpr() core.Expr {
	p.expect(token.CASE)
	c := &core.CaseExpr{}
	if !p.check(token.WHEN) {
		c.Operand = p.parseExpression()
	}
	for p.match(token.WHEN) && !p.failed() {
		w := &core.WhenClause{Condition: p.parseExpression()}
		p.expect(token.THEN)
		w.Result = p.parseExpression()
		c.Whens = append(c.Whens, w)
	}
	if len(c.Whens) == 0 && !p.failed() {
		p.errorUnexpected("WHEN")
		return nil
	}
	if p.match(token.ELSE) {
		c.Else = p.parseExpression()
	}
	p.expect(token.END)
	return c
}

// parseCastExpr parses CAST(expr AS type). The type is one or more words
// with an optional "(n[, m])" suffix.
func (p *Parser) parseCastExpr() core.Expr {
	p.expect(token.CAST)
	p.expect(token.LPAREN)
	cast := &core.CastExpr{Expr: p.parseExpression()}
	p.expect(token.AS)

	var words []string
	for isIdentLike(p.token) && !p.failed() {
		words = append(words, strings.ToUpper(p.token.Literal))
		p.nextToken()
	}
	if len(words) == 0 {
		p.errorUnexpected("type name")
		return nil
	}
	typeName := strings.Join(words, " ")

	if p.match(token.LPAREN) {
		var sizes []string
		for !p.failed() {
			if !p.check(token.NUMBER) {
				p.errorUnexpected("type length")
				return nil
			}
			sizes = append(sizes, p.token.Literal)
			p.nextToken()
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
		typeName += "(" + strings.Join(sizes, ", ") + ")"
	}
	cast.TypeName = typeName
	p.expect(token.RPAREN)
	return cast
}
