// Package duckdb provides the DuckDB SQL dialect definition.
package duckdb

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

// Config is the DuckDB dialect configuration.
var Config = core.DialectConfig{
	Name:        "duckdb",
	Placeholder: core.PlaceholderQuestion,
	Limit:       core.LimitOffset,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
	SupportsBoolLiterals: true,
	SupportsIlike:        true,
	ConcatOperator:       true,
	TableAliasAs:         true,
	SupportsExcept:       true,
	MultiRowValues:       true,
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.New(Config).
	WithReservedWords("analyse", "analyze", "array", "check", "column",
		"constraint", "create", "default", "for", "foreign", "grant",
		"lateral", "pivot", "primary", "qualify", "references", "returning",
		"table", "to", "unique", "unpivot", "window").
	Aliases(map[string]string{
		"NOW":         "CURRENT_TIMESTAMP",
		"SUBSTR":      "SUBSTRING",
		"STRING_AGG":  "GROUP_CONCAT",
		"CEIL":        "CEILING",
		"CHAR_LENGTH": "LENGTH",
		"UCASE":       "UPPER",
		"LCASE":       "LOWER",
	}).
	TypeNames(map[string]string{
		"DATETIME": "TIMESTAMP",
		"VARCHAR2": "VARCHAR",
		"NUMBER":   "DECIMAL",
		"CLOB":     "VARCHAR",
		"SIGNED":   "BIGINT",
		"UNSIGNED": "UBIGINT",
	}).
	Unsupported(map[string]string{
		"DATE_FORMAT": "DATE_FORMAT has no direct equivalent (use STRFTIME)",
	}).
	VariadicConcat().
	IfFunction().
	Build()
