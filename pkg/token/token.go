// Package token defines the lexical tokens shared by the SQL lexer, parser
// and printer.
//
// The token set is the union of what every registered dialect can lex.
// Whether a dialect accepts a given construct is decided by the dialect
// definition, not by the lexer.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType reads better than token.Type at call sites
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // users, `users`, "users"
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'
	PARAM  // ? placeholder

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;

	keywordStart

	// Keywords (alphabetical)
	ALL
	AND
	AS
	ASC
	BETWEEN
	BY
	CASE
	CAST
	CROSS
	DELETE
	DESC
	DISTINCT
	ELSE
	END
	ESCAPE
	EXCEPT
	EXISTS
	FALSE
	FETCH
	FIRST
	FROM
	FULL
	GROUP
	HAVING
	ILIKE
	IN
	INNER
	INSERT
	INTERSECT
	INTO
	IS
	JOIN
	LAST
	LEFT
	LIKE
	LIMIT
	NATURAL
	NEXT
	NOT
	NULL
	NULLS
	OFFSET
	ON
	ONLY
	OR
	ORDER
	OUTER
	RECURSIVE
	RIGHT
	ROW
	ROWS
	SELECT
	SET
	THEN
	TRUE
	UNION
	UPDATE
	USING
	VALUES
	WHEN
	WHERE
	WITH

	keywordEnd
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	PARAM:  "?",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "<>",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	LPAREN:    "(",
	RPAREN:    ")",
	SEMICOLON: ";",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{}

func init() {
	names := map[TokenType]string{
		ALL: "ALL", AND: "AND", AS: "AS", ASC: "ASC", BETWEEN: "BETWEEN",
		BY: "BY", CASE: "CASE", CAST: "CAST", CROSS: "CROSS", DELETE: "DELETE",
		DESC: "DESC", DISTINCT: "DISTINCT", ELSE: "ELSE", END: "END", ESCAPE: "ESCAPE",
		EXCEPT: "EXCEPT", EXISTS: "EXISTS", FALSE: "FALSE", FETCH: "FETCH",
		FIRST: "FIRST", FROM: "FROM", FULL: "FULL", GROUP: "GROUP",
		HAVING: "HAVING", ILIKE: "ILIKE", IN: "IN", INNER: "INNER",
		INSERT: "INSERT", INTERSECT: "INTERSECT", INTO: "INTO", IS: "IS",
		JOIN: "JOIN", LAST: "LAST", LEFT: "LEFT", LIKE: "LIKE", LIMIT: "LIMIT",
		NATURAL: "NATURAL", NEXT: "NEXT", NOT: "NOT", NULL: "NULL",
		NULLS: "NULLS", OFFSET: "OFFSET", ON: "ON", ONLY: "ONLY", OR: "OR",
		ORDER: "ORDER", OUTER: "OUTER", RECURSIVE: "RECURSIVE", RIGHT: "RIGHT",
		ROW: "ROW", ROWS: "ROWS", SELECT: "SELECT", SET: "SET", THEN: "THEN",
		TRUE: "TRUE", UNION: "UNION", UPDATE: "UPDATE", USING: "USING",
		VALUES: "VALUES", WHEN: "WHEN", WHERE: "WHERE", WITH: "WITH",
	}
	for t, name := range names {
		tokenNames[t] = name
		keywords[lower(name)] = t
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// LookupIdent returns the keyword token type for ident, or IDENT when the
// word is not a keyword. Lookup is case-insensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[lower(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t > keywordStart && t < keywordEnd
}

// IsSoftKeyword reports whether the keyword may also be used as a plain
// identifier (column or table name) outside of the clause it introduces.
func IsSoftKeyword(t TokenType) bool {
	switch t {
	case FIRST, LAST, NEXT, ROW, ROWS, ONLY, NULLS, ESCAPE:
		return true
	}
	return false
}

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	// Quoted is set for delimited identifiers (`x`, "x", [x]).
	Quoted bool
}
