package parser

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Data modification statements.
//
// Grammar:
//
//	insert_stmt   → INSERT [INTO] table_name ["(" ident_list ")"]
//	                (VALUES row ("," row)* | select_stmt)
//	row           → "(" expr_list ")"
//	update_stmt   → UPDATE table_name [[AS] alias] SET assignment ("," assignment)* [WHERE expr]
//	assignment    → column_ref "=" expr
//	delete_stmt   → DELETE [FROM] table_name [[AS] alias] [WHERE expr]

func (p *Parser) parseInsert() core.Stmt {
	stmt := &core.InsertStmt{Start: p.token.Pos}
	p.expect(token.INSERT)
	p.match(token.INTO)
	stmt.Table = p.parseTableName()

	if p.check(token.LPAREN) && !(p.checkPeek(token.SELECT) || p.checkPeek(token.WITH)) {
		stmt.Columns = p.parseIdentList("column name")
	}

	switch {
	case p.match(token.VALUES):
		for !p.failed() {
			p.expect(token.LPAREN)
			stmt.Rows = append(stmt.Rows, &core.ValuesRow{Values: p.parseExpressionList()})
			p.expect(token.RPAREN)
			if !p.match(token.COMMA) {
				break
			}
		}
	case p.check(token.SELECT), p.check(token.WITH):
		stmt.Select = p.parseSelectStmt()
	case p.check(token.LPAREN):
		p.nextToken()
		stmt.Select = p.parseSelectStmt()
		p.expect(token.RPAREN)
	default:
		p.errorUnexpected("VALUES or SELECT")
	}
	return stmt
}

func (p *Parser) parseUpdate() core.Stmt {
	stmt := &core.UpdateStmt{Start: p.token.Pos}
	p.expect(token.UPDATE)
	stmt.Table = p.parseTableName()
	if !p.check(token.SET) {
		stmt.Table.Alias = p.parseAlias()
	}
	p.expect(token.SET)

	for !p.failed() {
		if !isIdentLike(p.token) {
			p.errorUnexpected("column name")
			return stmt
		}
		col := p.parseIdentifierExpr()
		ref, ok := col.(*core.ColumnRef)
		if !ok {
			p.addError("expected column name in SET clause")
			return stmt
		}
		p.expect(token.EQ)
		stmt.Set = append(stmt.Set, &core.Assignment{Column: ref, Value: p.parseExpression()})
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}
	return stmt
}

func (p *Parser) parseDelete() core.Stmt {
	stmt := &core.DeleteStmt{Start: p.token.Pos}
	p.expect(token.DELETE)
	p.match(token.FROM)
	stmt.Table = p.parseTableName()
	if !p.check(token.WHERE) {
		stmt.Table.Alias = p.parseAlias()
	}
	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}
	return stmt
}
