// Package ansi provides the ANSI SQL dialect definition.
//
// ANSI is the baseline: standard quoting, FETCH FIRST row limiting, ||
// concatenation and the standard function names.
package ansi

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
)

func init() {
	dialect.Register(ANSI, "standard")
}

// Config is the ANSI dialect configuration.
var Config = core.DialectConfig{
	Name:        "ansi",
	Placeholder: core.PlaceholderQuestion,
	Limit:       core.LimitFetchFirst,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase,
	},
	SupportsBoolLiterals: true,
	ConcatOperator:       true,
	TableAliasAs:         true,
	SupportsExcept:       true,
	MultiRowValues:       true,
}

// ANSI is the ANSI SQL dialect.
var ANSI = dialect.New(Config).
	WithReservedWords("check", "column", "constraint", "create",
		"current_date", "current_time", "current_timestamp", "current_user",
		"default", "for", "foreign", "grant", "primary", "references",
		"table", "to", "unique", "user").
	Aliases(map[string]string{
		"SUBSTR": "SUBSTRING",
	}).
	Renames(map[string]string{
		"IFNULL": "COALESCE",
	}).
	TypeNames(map[string]string{
		"DATETIME": "TIMESTAMP",
		"VARCHAR2": "VARCHAR",
		"NUMBER":   "NUMERIC",
		"SIGNED":   "BIGINT",
	}).
	Unsupported(map[string]string{
		"GROUP_CONCAT": "GROUP_CONCAT is not standard SQL (use LISTAGG)",
		"DATE_FORMAT":  "DATE_FORMAT is not standard SQL",
	}).
	Build()
