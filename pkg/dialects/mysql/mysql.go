// Package mysql provides the MySQL SQL dialect definition.
package mysql

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
)

func init() {
	dialect.Register(MySQL, "mariadb")
}

// Config is the MySQL dialect configuration.
var Config = core.DialectConfig{
	Name:        "mysql",
	Placeholder: core.PlaceholderQuestion,
	Limit:       core.LimitOffset,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive,
	},
	SupportsBoolLiterals: true,
	TableAliasAs:         true,
	SupportsExcept:       true,
	HashComments:         true,
	BackslashEscapes:     true,
	LikeBackslashEscape:  true,
	MultiRowValues:       true,
	OffsetNeedsLimit:     true,
	// || is logical OR unless PIPES_AS_CONCAT is set.
	ConcatOperator: false,
}

var reservedWords = []string{
	"accessible", "add", "analyze", "before", "both", "call", "change",
	"check", "collate", "column", "condition", "constraint", "continue",
	"convert", "create", "current_date", "current_time", "current_timestamp",
	"current_user", "database", "databases", "default", "delayed", "describe",
	"div", "drop", "each", "escaped", "explain", "for", "force",
	"foreign", "grant", "groups", "high_priority", "ignore", "index",
	"infile", "interval", "key", "keys", "kill", "leading", "lines", "load",
	"lock", "low_priority", "match", "mod", "natural", "option", "outfile",
	"over", "partition", "primary", "procedure", "range", "rank", "read",
	"references", "regexp", "rename", "repeat", "replace", "require",
	"restrict", "return", "revoke", "rlike", "row", "rows", "schema",
	"separator", "show", "table", "terminated", "to", "trailing", "trigger",
	"undo", "unique", "unlock", "unsigned", "usage", "use", "window",
	"write", "xor", "zerofill",
}

// MySQL is the MySQL dialect.
var MySQL = dialect.New(Config).
	WithReservedWords(reservedWords...).
	Aliases(map[string]string{
		"NOW":              "CURRENT_TIMESTAMP",
		"LOCALTIME":        "CURRENT_TIMESTAMP",
		"LOCALTIMESTAMP":   "CURRENT_TIMESTAMP",
		"SUBSTR":           "SUBSTRING",
		"CHAR_LENGTH":      "LENGTH",
		"CHARACTER_LENGTH": "LENGTH",
		"UCASE":            "UPPER",
		"LCASE":            "LOWER",
		"RAND":             "RANDOM",
		"CURDATE":          "CURRENT_DATE",
		"CURTIME":          "CURRENT_TIME",
	}).
	Renames(map[string]string{
		"RANDOM": "RAND",
	}).
	TypeNames(map[string]string{
		"VARCHAR":  "CHAR",
		"VARCHAR2": "CHAR",
		"TEXT":     "CHAR",
		"CLOB":     "CHAR",
		"INT":      "SIGNED",
		"INTEGER":  "SIGNED",
		"BIGINT":   "SIGNED",
		"NUMBER":   "DECIMAL",
		"NUMERIC":  "DECIMAL",
	}).
	VariadicConcat().
	IfFunction().
	Build()
