package core

import "github.com/hxx258456/sql-convert/pkg/token"

// Node is the base interface for all syntax tree nodes, including the
// structural helpers (select items, joins, assignments) that are not
// expressions or statements on their own.
type Node interface {
	node()
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for top-level statement nodes.
type Stmt interface {
	Node
	stmtNode()
	// Pos returns the position of the statement's first token.
	Pos() token.Position
}

// TableRef is a marker interface for FROM-clause sources.
type TableRef interface {
	Node
	tableRefNode()
}
