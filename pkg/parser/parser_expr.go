package parser

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Precedence levels:
//
//	precOr         = 1
//	precAnd        = 2
//	precNot        = 3
//	precComparison = 4  (=, <>, <, >, <=, >=, IS, IN, BETWEEN, LIKE, ILIKE)
//	precAddition   = 5  (+, -, ||)
//	precMultiply   = 6  (*, /, %)
//	precUnary      = 7  (-, +)
//
// In dialects where || is logical OR (MySQL) it binds like OR and is
// parsed into an OR expression.
const (
	precNone = iota
	precOr
	precAnd
	precNot
	precComparison
	precAddition
	precMultiply
	precUnary
)

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(precOr)
}

func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) core.Expr {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	left := p.parsePrefixExpr()
	for left != nil && !p.failed() {
		prec := p.infixPrecedence()
		if prec < minPrecedence || prec == precNone {
			break
		}
		if !p.countOperator() {
			return nil
		}
		left = p.parseInfixExpr(left, prec)
	}
	return left
}

func (p *Parser) parsePrefixExpr() core.Expr {
	switch p.token.Type {
	case token.NOT:
		if p.checkPeek(token.EXISTS) {
			p.nextToken()
			return p.parseExistsExpr(true)
		}
		p.nextToken()
		return &core.UnaryExpr{Op: token.NOT, Expr: p.parseExpressionWithPrecedence(precNot)}
	case token.MINUS, token.PLUS:
		op := p.token.Type
		p.nextToken()
		return &core.UnaryExpr{Op: op, Expr: p.parseExpressionWithPrecedence(precUnary)}
	}
	return p.parsePrimary()
}

// infixPrecedence returns the precedence of the current token as an infix
// operator, or precNone.
func (p *Parser) infixPrecedence() int {
	switch p.token.Type {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE,
		token.IS, token.IN, token.BETWEEN, token.LIKE, token.ILIKE:
		return precComparison
	case token.NOT:
		switch p.peek.Type {
		case token.IN, token.BETWEEN, token.LIKE, token.ILIKE:
			return precComparison
		}
		return precNone
	case token.DPIPE:
		if !p.dialect.ConcatOperator {
			return precOr
		}
		return precAddition
	case token.PLUS, token.MINUS:
		return precAddition
	case token.STAR, token.SLASH, token.PERCENT:
		return precMultiply
	}
	return precNone
}

func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		return p.parseNegatableInfix(left, true)
	case token.IN, token.BETWEEN, token.LIKE, token.ILIKE:
		return p.parseNegatableInfix(left, false)
	case token.IS:
		return p.parseIsExpr(left)
	}

	op := p.token.Type
	if op == token.DPIPE && !p.dialect.ConcatOperator {
		op = token.OR
	}
	p.nextToken()

	// Left-associative: the right operand binds tighter.
	right := p.parseExpressionWithPrecedence(prec + 1)
	if right == nil {
		return nil
	}
	return &core.BinaryExpr{Left: left, Op: op, Right: right}
}

// parseNegatableInfix parses IN, BETWEEN, LIKE and ILIKE; a preceding NOT
// has already been consumed when not is true.
func (p *Parser) parseNegatableInfix(left core.Expr, not bool) core.Expr {
	switch p.token.Type {
	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, not)
	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, not)
	case token.LIKE:
		p.nextToken()
		return p.parseLikeExpr(left, not, token.LIKE)
	case token.ILIKE:
		if !p.dialect.SupportsIlike {
			p.unsupported("ILIKE")
			return nil
		}
		p.nextToken()
		return p.parseLikeExpr(left, not, token.ILIKE)
	}
	p.errorUnexpected("IN, BETWEEN, LIKE or ILIKE")
	return nil
}

// parseIsExpr parses IS [NOT] NULL.
func (p *Parser) parseIsExpr(left core.Expr) core.Expr {
	p.nextToken() // IS
	not := p.match(token.NOT)
	if !p.match(token.NULL) {
		p.errorUnexpected("NULL")
		return nil
	}
	return &core.IsNullExpr{Expr: left, Not: not}
}

func (p *Parser) parseInExpr(left core.Expr, not bool) core.Expr {
	in := &core.InExpr{Expr: left, Not: not}
	p.expect(token.LPAREN)
	if p.check(token.SELECT) || p.check(token.WITH) {
		in.Query = p.parseSelectStmt()
	} else {
		in.Values = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	return in
}

func (p *Parser) parseBetweenExpr(left core.Expr, not bool) core.Expr {
	between := &core.BetweenExpr{Expr: left, Not: not}
	// Bounds are parsed above AND so the separator is not swallowed.
	between.Low = p.parseExpressionWithPrecedence(precAddition)
	p.expect(token.AND)
	between.High = p.parseExpressionWithPrecedence(precAddition)
	return between
}

func (p *Parser) parseLikeExpr(left core.Expr, not bool, op token.TokenType) core.Expr {
	like := &core.LikeExpr{
		Expr:    left,
		Not:     not,
		Op:      op,
		Pattern: p.parseExpressionWithPrecedence(precAddition),
	}
	if p.match(token.ESCAPE) {
		like.Escape = p.parseExpressionWithPrecedence(precAddition)
	} else {
		like.BackslashEscape = p.dialect.LikeBackslashEscape
	}
	return like
}

// parseExpressionList parses expr ("," expr)*.
func (p *Parser) parseExpressionList() []core.Expr {
	var exprs []core.Expr
	for !p.failed() {
		exprs = append(exprs, p.parseExpression())
		if !p.match(token.COMMA) {
			break
		}
	}
	return exprs
}
