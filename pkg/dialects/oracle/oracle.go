// Package oracle provides the Oracle Database SQL dialect definition
// (12c and later, which introduced OFFSET/FETCH row limiting).
package oracle

import (
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
)

func init() {
	dialect.Register(Oracle)
}

// Config is the Oracle dialect configuration.
var Config = core.DialectConfig{
	Name:        "oracle",
	Placeholder: core.PlaceholderColon,
	Limit:       core.LimitFetchFirst,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase,
	},
	ConcatOperator: true,
	// No BOOLEAN in SQL before 23c, no AS before a table alias, and the
	// set difference operator is spelled MINUS.
	SupportsBoolLiterals: false,
	TableAliasAs:         false,
	SupportsExcept:       false,
	RequiresFrom:         true,
	MultiRowValues:       false,
	ModFunction:          true,
}

var reservedWords = []string{
	"access", "add", "alter", "audit", "check", "cluster", "column",
	"comment", "compress", "connect", "create", "current", "date",
	"decimal", "default", "drop", "exclusive", "file", "float", "for",
	"grant", "identified", "immediate", "increment", "index", "initial",
	"integer", "level", "lock", "long", "maxextents", "minus", "mlslabel",
	"mode", "modify", "noaudit", "nocompress", "nowait", "number", "of",
	"offline", "online", "option", "pctfree", "prior", "privileges",
	"public", "raw", "rename", "resource", "revoke", "row", "rowid",
	"rownum", "rows", "session", "share", "size", "smallint", "start",
	"successful", "synonym", "sysdate", "table", "to", "trigger", "uid",
	"unique", "user", "validate", "varchar", "varchar2", "view",
	"whenever",
}

// Oracle is the Oracle dialect.
var Oracle = dialect.New(Config).
	WithReservedWords(reservedWords...).
	Aliases(map[string]string{
		"NVL":               "IFNULL",
		"SUBSTR":            "SUBSTRING",
		"SYSTIMESTAMP":      "CURRENT_TIMESTAMP",
		"CEIL":              "CEILING",
		"DBMS_RANDOM.VALUE": "RANDOM",
	}).
	Renames(map[string]string{
		"IFNULL":            "NVL",
		"SUBSTRING":         "SUBSTR",
		"CEILING":           "CEIL",
		"RANDOM":            "DBMS_RANDOM.VALUE",
		"CURRENT_TIMESTAMP": "SYSTIMESTAMP",
	}).
	TypeNames(map[string]string{
		"VARCHAR":  "VARCHAR2",
		"TEXT":     "CLOB",
		"DATETIME": "TIMESTAMP",
		"BOOLEAN":  "NUMBER(1)",
		"BOOL":     "NUMBER(1)",
		"DOUBLE":   "BINARY_DOUBLE",
		"SIGNED":   "NUMBER",
		"UNSIGNED": "NUMBER",
		"BIGINT":   "NUMBER(19)",
		"TINYINT":  "NUMBER(3)",
	}).
	Unsupported(map[string]string{
		"GROUP_CONCAT": "GROUP_CONCAT has no direct equivalent (use LISTAGG ... WITHIN GROUP)",
		"DATE_FORMAT":  "DATE_FORMAT has no direct equivalent (use TO_CHAR with an Oracle format model)",
	}).
	Build()
