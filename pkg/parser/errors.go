package parser

import (
	"fmt"

	"github.com/hxx258456/sql-convert/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken     = "unexpected %s, expected %s"
	ErrUnterminatedString  = "unterminated quoted literal"
	ErrUnterminatedComment = "unterminated block comment"
	ErrIllegalCharacter    = "unexpected character %q"
	ErrUnsupported         = "%s is not supported in %s dialect"
	ErrTooDeep             = "expression nesting exceeds %d levels"
	ErrTooManyOperators    = "statement has more than %d operators"
)

// describe renders a token for error messages.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case token.NUMBER, token.STRING:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	}
	return fmt.Sprintf("%q", tok.Literal)
}
