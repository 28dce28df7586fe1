package core

import "github.com/hxx258456/sql-convert/pkg/token"

// ---------- Statement Types ----------

// SelectStmt represents a complete SELECT statement with optional WITH clause.
type SelectStmt struct {
	Start token.Position
	With  *WithClause
	Body  *SelectBody
}

func (*SelectStmt) node()     {}
func (*SelectStmt) stmtNode() {}

// Pos implements Stmt.
func (s *SelectStmt) Pos() token.Position { return s.Start }

// InsertStmt represents INSERT INTO ... VALUES or INSERT INTO ... SELECT.
// Exactly one of Rows and Select is set.
type InsertStmt struct {
	Start   token.Position
	Table   *TableName
	Columns []string
	Rows    []*ValuesRow
	Select  *SelectStmt
}

func (*InsertStmt) node()     {}
func (*InsertStmt) stmtNode() {}

// Pos implements Stmt.
func (s *InsertStmt) Pos() token.Position { return s.Start }

// ValuesRow is one parenthesized tuple of a VALUES list.
type ValuesRow struct {
	Values []Expr
}

func (*ValuesRow) node() {}

// UpdateStmt represents UPDATE t SET c = e, ... [WHERE ...].
type UpdateStmt struct {
	Start token.Position
	Table *TableName
	Set   []*Assignment
	Where Expr
}

func (*UpdateStmt) node()     {}
func (*UpdateStmt) stmtNode() {}

// Pos implements Stmt.
func (s *UpdateStmt) Pos() token.Position { return s.Start }

// Assignment is a single SET target = value pair.
type Assignment struct {
	Column *ColumnRef
	Value  Expr
}

func (*Assignment) node() {}

// DeleteStmt represents DELETE FROM t [WHERE ...].
type DeleteStmt struct {
	Start token.Position
	Table *TableName
	Where Expr
}

func (*DeleteStmt) node()     {}
func (*DeleteStmt) stmtNode() {}

// Pos implements Stmt.
func (s *DeleteStmt) Pos() token.Position { return s.Start }

// ---------- SELECT building blocks ----------

// WithClause represents a WITH clause with CTEs.
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

func (*WithClause) node() {}

// CTE represents a Common Table Expression.
type CTE struct {
	Name    string
	Columns []string
	Select  *SelectStmt
}

func (*CTE) node() {}

// SelectBody represents the body of a SELECT with possible set operations.
type SelectBody struct {
	Left  *SelectCore
	Op    SetOpType   // UNION, INTERSECT, EXCEPT, or empty
	Right *SelectBody // For chained set operations
}

func (*SelectBody) node() {}

// SetOpType represents the type of set operation.
type SetOpType string

// SetOpType constants for set operations in queries.
const (
	SetOpNone      SetOpType = ""
	SetOpUnion     SetOpType = "UNION"
	SetOpUnionAll  SetOpType = "UNION ALL"
	SetOpIntersect SetOpType = "INTERSECT"
	SetOpExcept    SetOpType = "EXCEPT"
)

// SelectCore represents the core SELECT clause.
//
// Row limiting is normalized at parse time: LIMIT n, LIMIT o, n,
// OFFSET o ROWS and FETCH FIRST n ROWS ONLY all land in Limit/Offset,
// and the printer chooses the target dialect's spelling.
type SelectCore struct {
	Distinct bool
	Columns  []*SelectItem
	From     *FromClause
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []*OrderByItem
	Limit    Expr
	Offset   Expr
}

func (*SelectCore) node() {}

// SelectItem represents an item in the SELECT list.
type SelectItem struct {
	Star      bool   // SELECT *
	TableStar string // SELECT t.*
	Expr      Expr
	Alias     string
}

func (*SelectItem) node() {}

// FromClause represents the FROM clause.
type FromClause struct {
	Source TableRef
	Joins  []*Join
}

func (*FromClause) node() {}

// Join represents a JOIN clause.
type Join struct {
	Type      JoinType
	Natural   bool
	Right     TableRef
	Condition Expr     // ON clause (mutually exclusive with Using)
	Using     []string // USING (col1, col2)
}

func (*Join) node() {}

// JoinType is the SQL keyword of a join ("LEFT", "INNER", ...).
type JoinType string

// Join types understood by every dialect.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
	// JoinComma represents an implicit cross join using comma syntax.
	JoinComma JoinType = ","
)

// OrderByItem represents an item in ORDER BY clause.
type OrderByItem struct {
	Expr       Expr
	Desc       bool
	NullsFirst *bool // nil means default, true = NULLS FIRST, false = NULLS LAST
}

func (*OrderByItem) node() {}

// ---------- Table Reference Types ----------

// TableName represents a (possibly schema-qualified) table reference.
type TableName struct {
	Schema string
	Name   string
	Alias  string
}

func (*TableName) node()         {}
func (*TableName) tableRefNode() {}

// DerivedTable represents a subquery in FROM clause.
type DerivedTable struct {
	Select *SelectStmt
	Alias  string
}

func (*DerivedTable) node()         {}
func (*DerivedTable) tableRefNode() {}
