// Package dialect provides SQL dialect definitions used by the parser and
// the printer.
//
// This package contains the public contract for dialect definitions.
// Concrete dialects are registered from pkg/dialects/*/ packages:
//
//	import _ "github.com/hxx258456/sql-convert/pkg/dialects" // registers all
//
//	d, ok := dialect.Get("mysql")
//
// A dialect describes how identifiers are quoted, which words are reserved,
// how row limiting is spelled and how function names map to and from the
// canonical (upper-case, ANSI-leaning) names the syntax tree carries.
package dialect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	core.DialectConfig

	reservedWords map[string]struct{}

	// aliases maps a dialect spelling to its canonical function name
	// (applied while parsing). renames maps a canonical name to the
	// dialect spelling (applied while printing).
	aliases map[string]string
	renames map[string]string

	// unsupported lists canonical function names that have no rendering
	// in this dialect.
	unsupported map[string]string

	// typeNames maps a data type base name to this dialect's spelling.
	typeNames map[string]string

	// variadicConcat is true when CONCAT accepts more than two arguments.
	variadicConcat bool

	// ifFunction is true when IF(cond, a, b) is available.
	ifFunction bool
}

// niladic functions are spelled without parentheses.
var niladic = map[string]struct{}{
	"CURRENT_DATE":      {},
	"CURRENT_TIME":      {},
	"CURRENT_TIMESTAMP": {},
	"CURRENT_USER":      {},
	"LOCALTIMESTAMP":    {},
	"SYSDATE":           {},
	"SYSTIMESTAMP":      {},
}

// IsNiladic reports whether name is a function spelled without parentheses
// (CURRENT_TIMESTAMP, SYSDATE, ...).
func IsNiladic(name string) bool {
	_, ok := niladic[strings.ToUpper(name)]
	return ok
}

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// IsReservedWord returns true if the word needs quoting when used as an
// identifier. Hard keywords of the shared lexer are always reserved.
func (d *Dialect) IsReservedWord(word string) bool {
	if _, ok := d.reservedWords[strings.ToLower(word)]; ok {
		return true
	}
	t := token.LookupIdent(word)
	return t != token.IDENT && !token.IsSoftKeyword(t)
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier if it is reserved in this
// dialect or cannot be written bare.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) || !plainIdent.MatchString(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// DoubleQuotedStrings reports whether "..." delimits a string literal
// rather than an identifier.
func (d *Dialect) DoubleQuotedStrings() bool {
	return d.Identifiers.Quote != `"`
}

// CanonicalFunction maps a function name as written in this dialect to the
// canonical name stored in the syntax tree.
func (d *Dialect) CanonicalFunction(name string) string {
	upper := strings.ToUpper(name)
	if c, ok := d.aliases[upper]; ok {
		return c
	}
	return upper
}

// FunctionName maps a canonical function name to this dialect's spelling.
func (d *Dialect) FunctionName(canonical string) string {
	if r, ok := d.renames[canonical]; ok {
		return r
	}
	return canonical
}

// UnsupportedFunction returns a reason when the canonical function has no
// rendering in this dialect.
func (d *Dialect) UnsupportedFunction(canonical string) (string, bool) {
	reason, ok := d.unsupported[canonical]
	return reason, ok
}

// TypeName maps a data type such as "VARCHAR(20)" to this dialect's
// spelling. The base name is looked up; a length suffix is kept unless the
// replacement carries its own.
func (d *Dialect) TypeName(typeName string) string {
	base, suffix := typeName, ""
	if i := strings.IndexByte(typeName, '('); i >= 0 {
		base, suffix = strings.TrimSpace(typeName[:i]), typeName[i:]
	}
	r, ok := d.typeNames[strings.ToUpper(base)]
	if !ok {
		return typeName
	}
	if strings.Contains(r, "(") {
		return r
	}
	return r + suffix
}

// VariadicConcat reports whether CONCAT accepts more than two arguments.
func (d *Dialect) VariadicConcat() bool {
	return d.variadicConcat
}

// HasIfFunction reports whether IF(cond, a, b) exists; without it the
// printer spells IF as a CASE expression.
func (d *Dialect) HasIfFunction() bool {
	return d.ifFunction
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case core.PlaceholderColon:
		return ":" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// New creates a dialect builder from a DialectConfig.
func New(cfg core.DialectConfig) *Builder {
	return &Builder{
		dialect: &Dialect{
			DialectConfig: cfg,
			reservedWords: make(map[string]struct{}),
			aliases:       make(map[string]string),
			renames:       make(map[string]string),
			unsupported:   make(map[string]string),
			typeNames:     make(map[string]string),
		},
	}
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// Aliases registers dialect spellings of canonical functions, e.g.
// {"IFNULL": "COALESCE"}. Keys and values are upper-cased.
func (b *Builder) Aliases(m map[string]string) *Builder {
	for k, v := range m {
		b.dialect.aliases[strings.ToUpper(k)] = strings.ToUpper(v)
	}
	return b
}

// Renames registers how canonical functions are spelled in this dialect,
// e.g. {"SUBSTRING": "SUBSTR"}.
func (b *Builder) Renames(m map[string]string) *Builder {
	for k, v := range m {
		b.dialect.renames[strings.ToUpper(k)] = v
	}
	return b
}

// Unsupported marks canonical functions that cannot be rendered.
func (b *Builder) Unsupported(m map[string]string) *Builder {
	for k, v := range m {
		b.dialect.unsupported[strings.ToUpper(k)] = v
	}
	return b
}

// TypeNames registers data type renames applied when printing CAST targets.
func (b *Builder) TypeNames(m map[string]string) *Builder {
	for k, v := range m {
		b.dialect.typeNames[strings.ToUpper(k)] = v
	}
	return b
}

// VariadicConcat marks CONCAT as accepting any number of arguments.
func (b *Builder) VariadicConcat() *Builder {
	b.dialect.variadicConcat = true
	return b
}

// IfFunction marks IF(cond, a, b) as available.
func (b *Builder) IfFunction() *Builder {
	b.dialect.ifFunction = true
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
