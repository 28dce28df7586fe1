package core

// DialectConfig holds the static, pure-data configuration for a SQL dialect.
//
// The runtime behavior (reserved words, function mapping, feature checks)
// lives in pkg/dialect.Dialect, which is built from this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "oracle").
	Name string

	// Identifiers defines quoting and normalization rules.
	Identifiers IdentifierConfig

	// Placeholder defines how query parameters are formatted.
	Placeholder PlaceholderStyle

	// Limit selects how row limiting is spelled.
	Limit LimitStyle

	// SupportsBoolLiterals is false for dialects without TRUE/FALSE
	// (Oracle before 23c); the printer then emits 1/0.
	SupportsBoolLiterals bool

	// SupportsIlike enables the ILIKE operator.
	SupportsIlike bool

	// ConcatOperator is true when || means string concatenation.
	// MySQL treats || as logical OR by default.
	ConcatOperator bool

	// TableAliasAs controls whether "AS" may precede a table alias.
	// Oracle rejects it.
	TableAliasAs bool

	// SupportsExcept is false for dialects spelling it MINUS.
	SupportsExcept bool

	// HashComments enables # line comments (MySQL).
	HashComments bool

	// BackslashEscapes enables \' style escapes inside string literals.
	BackslashEscapes bool

	// LikeBackslashEscape is set when LIKE treats backslash as its escape
	// character without an ESCAPE clause (MySQL, PostgreSQL).
	LikeBackslashEscape bool

	// RequiresFrom is set when every SELECT needs a FROM clause; the
	// printer then selects from DUAL.
	RequiresFrom bool

	// MultiRowValues is false when INSERT ... VALUES accepts a single row
	// only; the printer rewrites extra rows as a UNION ALL of SELECTs.
	MultiRowValues bool

	// ModFunction spells a % b as MOD(a, b).
	ModFunction bool

	// OffsetNeedsLimit is set when OFFSET is only valid after LIMIT.
	OffsetNeedsLimit bool
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL on Linux).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (DuckDB).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderColon uses :1, :2, etc. for parameters (Oracle).
	PlaceholderColon
)

// LimitStyle defines how a dialect spells row limiting.
type LimitStyle int

const (
	// LimitOffset is LIMIT n OFFSET m (MySQL, PostgreSQL, DuckDB).
	LimitOffset LimitStyle = iota
	// LimitFetchFirst is OFFSET m ROWS FETCH NEXT n ROWS ONLY (ANSI, Oracle 12c+).
	LimitFetchFirst
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `
	QuoteEnd      string                // End quote character (usually same as Quote)
	Escape        string                // Escape sequence: "", ``
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
