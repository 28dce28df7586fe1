// Package postgres provides the PostgreSQL SQL dialect definition.
package postgres

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
)

func init() {
	dialect.Register(Postgres, "postgresql", "pg")
}

// Config is the PostgreSQL dialect configuration.
var Config = core.DialectConfig{
	Name:        "postgres",
	Placeholder: core.PlaceholderDollar,
	Limit:       core.LimitOffset,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase,
	},
	SupportsBoolLiterals: true,
	SupportsIlike:        true,
	LikeBackslashEscape:  true,
	ConcatOperator:       true,
	TableAliasAs:         true,
	SupportsExcept:       true,
	MultiRowValues:       true,
}

// postgresReservedWords contains common PostgreSQL reserved words.
var postgresReservedWords = []string{
	"analyse", "analyze", "any", "array", "asymmetric", "authorization",
	"binary", "both", "check", "collate", "column", "constraint", "create",
	"current_catalog", "current_date", "current_role", "current_schema",
	"current_time", "current_timestamp", "current_user", "default",
	"deferrable", "do", "for", "foreign", "freeze", "grant", "initially",
	"isnull", "lateral", "leading", "localtime", "localtimestamp",
	"notnull", "overlaps", "placing", "primary", "references", "returning",
	"session_user", "similar", "some", "symmetric", "table", "to",
	"trailing", "unique", "user", "variadic", "verbose", "window",
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.New(Config).
	WithReservedWords(postgresReservedWords...).
	Aliases(map[string]string{
		"NOW":    "CURRENT_TIMESTAMP",
		"SUBSTR": "SUBSTRING",
		"CEIL":   "CEILING",
		"CHR":    "CHAR",
	}).
	Renames(map[string]string{
		"IFNULL": "COALESCE",
		"CHAR":   "CHR",
	}).
	TypeNames(map[string]string{
		"DATETIME": "TIMESTAMP",
		"VARCHAR2": "VARCHAR",
		"NUMBER":   "NUMERIC",
		"CLOB":     "TEXT",
		"SIGNED":   "BIGINT",
		"UNSIGNED": "BIGINT",
		"DOUBLE":   "DOUBLE PRECISION",
		"TINYINT":  "SMALLINT",
	}).
	Unsupported(map[string]string{
		"GROUP_CONCAT": "GROUP_CONCAT has no direct equivalent (use STRING_AGG)",
		"DATE_FORMAT":  "DATE_FORMAT has no direct equivalent (use TO_CHAR)",
	}).
	VariadicConcat().
	Build()
