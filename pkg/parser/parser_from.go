package parser

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// FROM clause parsing: table references, derived tables and joins.
//
// Grammar:
//
//	from_clause   → table_ref (join | "," table_ref)*
//	table_ref     → table_name [[AS] alias] | "(" select_stmt ")" [[AS] alias]
//	table_name    → [schema "."] identifier
//	join          → [NATURAL] [join_type] JOIN table_ref [ON expr | USING "(" ident_list ")"]
//	join_type     → INNER | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] | CROSS

func (p *Parser) parseFromClause() *core.FromClause {
	from := &core.FromClause{Source: p.parseTableRef()}
	for !p.failed() {
		if p.match(token.COMMA) {
			from.Joins = append(from.Joins, &core.Join{Type: core.JoinComma, Right: p.parseTableRef()})
			continue
		}
		join := p.parseJoin()
		if join == nil {
			break
		}
		from.Joins = append(from.Joins, join)
	}
	return from
}

// parseJoin returns nil when the current token does not start a join.
func (p *Parser) parseJoin() *core.Join {
	join := &core.Join{Type: core.JoinInner}
	join.Natural = p.match(token.NATURAL)

	switch {
	case p.match(token.INNER):
	case p.match(token.LEFT):
		join.Type = core.JoinLeft
		p.match(token.OUTER)
	case p.match(token.RIGHT):
		join.Type = core.JoinRight
		p.match(token.OUTER)
	case p.match(token.FULL):
		join.Type = core.JoinFull
		p.match(token.OUTER)
	case p.match(token.CROSS):
		join.Type = core.JoinCross
	case p.check(token.JOIN):
	default:
		if join.Natural {
			p.errorUnexpected("JOIN")
		}
		return nil
	}
	if !p.expect(token.JOIN) {
		return nil
	}

	join.Right = p.parseTableRef()
	switch {
	case p.match(token.ON):
		join.Condition = p.parseExpression()
	case p.check(token.USING):
		p.nextToken()
		join.Using = p.parseIdentList("column name")
	}
	return join
}

func (p *Parser) parseTableRef() core.TableRef {
	if p.check(token.LPAREN) {
		p.nextToken()
		derived := &core.DerivedTable{Select: p.parseSelectStmt()}
		p.expect(token.RPAREN)
		derived.Alias = p.parseAlias()
		return derived
	}
	t := p.parseTableName()
	t.Alias = p.parseAlias()
	return t
}

// parseTableName parses [schema "."] name without an alias.
func (p *Parser) parseTableName() *core.TableName {
	t := &core.TableName{Name: p.parseIdent("table name")}
	if p.match(token.DOT) {
		t.Schema = t.Name
		t.Name = p.parseIdent("table name")
	}
	return t
}
