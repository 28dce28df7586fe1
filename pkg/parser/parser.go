// Package parser provides SQL parsing with dialect-aware syntax validation.
//
// # Usage
//
//	d, _ := dialect.Get("mysql")
//	stmts, err := parser.Parse("SELECT a FROM t; DELETE FROM t", d)
//
// # Grammar Overview
//
// The parser is a recursive descent parser with Pratt-style expression
// parsing for the statements a dialect converter needs:
//
//	script        → [statement] (";" [statement])*
//	statement     → select_stmt | insert_stmt | update_stmt | delete_stmt
//	select_stmt   → [WITH cte_list] select_body
//	select_body   → select_core [(UNION [ALL]|INTERSECT|EXCEPT|MINUS) select_body]
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"strings"

	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// maxDepth bounds expression and subquery nesting.
const maxDepth = 200

// maxOperators bounds the infix operators in one statement, which in turn
// bounds the depth of left-deep chains such as a OR b OR c.
const maxOperators = 4096

// Parser parses SQL into a syntax tree.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect // required
	depth   int

	operators int // infix operators in the current statement
}

// NewParser creates a new parser for the given SQL input and dialect.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	p := &Parser{
		lexer:   NewLexer(sql, d),
		dialect: d,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a script of zero or more semicolon-separated statements.
// Empty input and input made only of comments and semicolons yield an
// empty slice and no error. Parsing stops at the first error.
func Parse(sql string, d *dialect.Dialect) ([]core.Stmt, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	p := NewParser(sql, d)
	return p.parseScript()
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

func (p *Parser) parseScript() ([]core.Stmt, error) {
	var stmts []core.Stmt
	for {
		for p.match(token.SEMICOLON) {
		}
		if p.check(token.EOF) {
			return stmts, nil
		}

		p.operators = 0
		stmt := p.parseStatement()
		if len(p.errors) > 0 {
			return nil, p.errors[0]
		}
		stmts = append(stmts, stmt)

		if !p.check(token.SEMICOLON) && !p.check(token.EOF) {
			p.errorUnexpected("\";\" or end of input")
			return nil, p.errors[0]
		}
	}
}

// ---------- Token Helpers ----------

func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.errorUnexpected(fmt.Sprintf("%q", t.String()))
	return false
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// errorUnexpected reports the current token as unexpected. Lexer failures
// surface here as ILLEGAL tokens and get a dedicated message.
func (p *Parser) errorUnexpected(expected string) {
	if p.check(token.ILLEGAL) {
		lit := p.token.Literal
		switch {
		case strings.HasPrefix(lit, "/*"):
			p.addError(ErrUnterminatedComment)
		case len(lit) > 1 && strings.ContainsAny(lit[:1], "'\"`"):
			p.addError(ErrUnterminatedString)
		default:
			p.addError(fmt.Sprintf(ErrIllegalCharacter, lit))
		}
		return
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), expected))
}

func (p *Parser) unsupported(feature string) {
	p.addError(fmt.Sprintf(ErrUnsupported, feature, p.dialect.Name))
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// enter guards recursion depth; when it returns true callers must defer
// p.leave().
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > maxDepth {
		p.depth--
		if !p.failed() {
			p.addError(fmt.Sprintf(ErrTooDeep, maxDepth))
		}
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// countOperator records one infix operator and reports whether the
// statement is still within maxOperators.
func (p *Parser) countOperator() bool {
	p.operators++
	if p.operators > maxOperators {
		p.addError(fmt.Sprintf(ErrTooManyOperators, maxOperators))
		return false
	}
	return true
}

// ---------- Identifier Helpers ----------

// isIdentLike reports whether tok can serve as an identifier: a plain or
// quoted identifier, or a soft keyword such as ROWS or FIRST.
func isIdentLike(tok token.Token) bool {
	return tok.Type == token.IDENT || token.IsSoftKeyword(tok.Type)
}

// parseIdent consumes an identifier and returns its text.
func (p *Parser) parseIdent(what string) string {
	if !isIdentLike(p.token) {
		p.errorUnexpected(what)
		return ""
	}
	name := p.token.Literal
	p.nextToken()
	return name
}

// parseIdentList parses "(" ident ("," ident)* ")".
func (p *Parser) parseIdentList(what string) []string {
	p.expect(token.LPAREN)
	var names []string
	for !p.failed() {
		names = append(names, p.parseIdent(what))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return names
}

// parseAlias parses an optional alias: AS ident, AS 'string', or a bare
// identifier. AS is accepted before table aliases in every dialect.
func (p *Parser) parseAlias() string {
	if p.match(token.AS) {
		if p.check(token.STRING) {
			alias := p.token.Literal
			p.nextToken()
			return alias
		}
		return p.parseIdent("alias")
	}
	if p.check(token.IDENT) && !p.isMinus(p.token) {
		alias := p.token.Literal
		p.nextToken()
		return alias
	}
	return ""
}

// isMinus reports whether tok is Oracle's MINUS set operator.
func (p *Parser) isMinus(tok token.Token) bool {
	return !p.dialect.SupportsExcept && tok.Type == token.IDENT && !tok.Quoted &&
		strings.EqualFold(tok.Literal, "MINUS")
}
