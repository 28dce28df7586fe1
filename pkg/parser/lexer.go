package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Lexer tokenizes SQL input according to a dialect's quoting rules.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	dialect *dialect.Dialect
}

// NewLexer creates a new Lexer for the given input and dialect.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0,
		dialect: d,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	if tok, ok := l.skipWhitespaceAndComments(); !ok {
		return tok
	}

	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: pos}
	}
	if l.ch >= utf8.RuneSelf && l.runeLen() == 0 {
		return l.invalidUTF8(pos)
	}

	single := func(t token.TokenType) token.Token {
		lit := string(l.ch)
		l.readChar()
		return token.Token{Type: t, Literal: lit, Pos: pos}
	}
	double := func(t token.TokenType) token.Token {
		lit := l.input[l.pos : l.pos+2]
		l.readChar()
		l.readChar()
		return token.Token{Type: t, Literal: lit, Pos: pos}
	}

	switch l.ch {
	case '+':
		return single(token.PLUS)
	case '-':
		return single(token.MINUS)
	case '*':
		return single(token.STAR)
	case '/':
		return single(token.SLASH)
	case '%':
		return single(token.PERCENT)
	case '=':
		return single(token.EQ)
	case '<':
		switch l.peekChar() {
		case '=':
			return double(token.LE)
		case '>':
			return double(token.NE)
		}
		return single(token.LT)
	case '>':
		if l.peekChar() == '=' {
			return double(token.GE)
		}
		return single(token.GT)
	case '!':
		if l.peekChar() == '=' {
			return double(token.NE)
		}
		return single(token.ILLEGAL)
	case '|':
		if l.peekChar() == '|' {
			return double(token.DPIPE)
		}
		return single(token.ILLEGAL)
	case '.':
		if isDigit(l.peekChar()) {
			return token.Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos}
		}
		return single(token.DOT)
	case ',':
		return single(token.COMMA)
	case '(':
		return single(token.LPAREN)
	case ')':
		return single(token.RPAREN)
	case ';':
		return single(token.SEMICOLON)
	case '?':
		return single(token.PARAM)
	case '$', ':':
		return l.readPlaceholder(pos)
	case '\'':
		return l.readString(pos, '\'')
	case '"':
		if l.dialect.DoubleQuotedStrings() {
			return l.readString(pos, '"')
		}
		return l.readQuotedIdentifier(pos)
	case '`':
		if l.dialect.Identifiers.Quote == "`" {
			return l.readQuotedIdentifier(pos)
		}
		return single(token.ILLEGAL)
	}

	switch {
	case isIdentStart(l.ch):
		lit := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
	case isDigit(l.ch):
		return token.Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos}
	}
	return single(token.ILLEGAL)
}

// skipWhitespaceAndComments skips whitespace, -- and /* */ comments, and
// # comments where the dialect allows them. An unterminated block comment
// is returned as an ILLEGAL token with ok set to false.
func (l *Lexer) skipWhitespaceAndComments() (tok token.Token, ok bool) {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' {
			l.readChar()
		}

		switch {
		case l.ch == '-' && l.peekChar() == '-',
			l.ch == '#' && l.dialect.HashComments:
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
			continue
		case l.ch == '/' && l.peekChar() == '*':
			pos, start := l.currentPos(), l.pos
			l.readChar()
			l.readChar()
			for !l.atEOF() && (l.ch != '*' || l.peekChar() != '/') {
				l.readChar()
			}
			if l.atEOF() {
				return token.Token{Type: token.ILLEGAL, Literal: l.input[start:], Pos: pos}, false
			}
			l.readChar()
			l.readChar()
			continue
		}
		return token.Token{}, true
	}
}

// readString reads a string literal delimited by quote. A doubled quote
// escapes itself; backslash escapes are honored when the dialect has them.
// \% and \_ keep their backslash so LIKE patterns still see the escape.
// An unterminated string becomes an ILLEGAL token holding the raw text.
func (l *Lexer) readString(pos token.Position, quote byte) token.Token {
	start := l.pos
	l.readChar() // opening quote

	var sb strings.Builder
	for {
		switch {
		case l.atEOF():
			return token.Token{Type: token.ILLEGAL, Literal: l.input[start:], Pos: pos}
		case l.ch == '\\' && l.dialect.BackslashEscapes && l.readPos < len(l.input):
			l.readChar()
			if l.ch == '%' || l.ch == '_' {
				sb.WriteByte('\\')
			}
			sb.WriteByte(unescape(l.ch))
			l.readChar()
		case l.ch == quote && l.peekChar() == quote:
			sb.WriteByte(quote)
			l.readChar()
			l.readChar()
		case l.ch == quote:
			l.readChar()
			return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
		case l.ch >= utf8.RuneSelf:
			if !l.copyRune(&sb) {
				return l.invalidUTF8(l.currentPos())
			}
		default:
			sb.WriteByte(l.ch)
			l.readChar()
		}
	}
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'b':
		return '\b'
	case 'Z':
		return 0x1a
	case '0':
		return 0
	}
	return c
}

// readQuotedIdentifier reads a delimited identifier. The closing quote
// escapes itself when doubled.
func (l *Lexer) readQuotedIdentifier(pos token.Position) token.Token {
	start := l.pos
	quote := l.ch
	l.readChar()

	var sb strings.Builder
	for {
		switch {
		case l.atEOF():
			return token.Token{Type: token.ILLEGAL, Literal: l.input[start:], Pos: pos}
		case l.ch == quote && l.peekChar() == quote:
			sb.WriteByte(quote)
			l.readChar()
			l.readChar()
		case l.ch == quote:
			l.readChar()
			return token.Token{Type: token.IDENT, Literal: sb.String(), Pos: pos, Quoted: true}
		case l.ch >= utf8.RuneSelf:
			if !l.copyRune(&sb) {
				return l.invalidUTF8(l.currentPos())
			}
		default:
			sb.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readPlaceholder reads $1 (PostgreSQL) or :1 / :name (Oracle) bind
// parameters. A lone $ or : is illegal.
func (l *Lexer) readPlaceholder(pos token.Position) token.Token {
	start := l.pos
	l.readChar()
	for isDigit(l.ch) || isIdentStart(l.ch) && l.ch < utf8.RuneSelf {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	if len(lit) == 1 {
		return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
	}
	return token.Token{Type: token.PARAM, Literal: lit, Pos: pos}
}

// readIdentifier reads a bare identifier. It stops before an invalid UTF-8
// sequence, which the next call to NextToken reports.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for {
		switch {
		case l.ch >= utf8.RuneSelf:
			n := l.runeLen()
			if n == 0 {
				return l.input[start:l.pos]
			}
			for range n {
				l.readChar()
			}
		case isIdentStart(l.ch) || isDigit(l.ch) || l.ch == '$':
			l.readChar()
		default:
			return l.input[start:l.pos]
		}
	}
}

// runeLen returns the byte length of the UTF-8 sequence at the current
// position, or 0 when it is invalid.
func (l *Lexer) runeLen() int {
	r, n := utf8.DecodeRuneInString(l.input[l.pos:])
	if r == utf8.RuneError && n <= 1 {
		return 0
	}
	return n
}

// copyRune appends the multi-byte sequence at the current position to sb
// and advances past it. It reports false for invalid UTF-8.
func (l *Lexer) copyRune(sb *strings.Builder) bool {
	n := l.runeLen()
	if n == 0 {
		return false
	}
	sb.WriteString(l.input[l.pos : l.pos+n])
	for range n {
		l.readChar()
	}
	return true
}

// invalidUTF8 returns the offending byte as an ILLEGAL token and skips it.
func (l *Lexer) invalidUTF8(pos token.Position) token.Token {
	lit := l.input[l.pos : l.pos+1]
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && (isDigit(l.peekChar()) || l.pos == start) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peekChar()) || l.peekChar() == '+' || l.peekChar() == '-') {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

// isIdentStart accepts ASCII letters, underscore and any non-ASCII byte.
// Callers check that non-ASCII bytes start a valid UTF-8 sequence.
func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, ending with EOF.
func Tokenize(input string, d *dialect.Dialect) []token.Token {
	l := NewLexer(input, d)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}
