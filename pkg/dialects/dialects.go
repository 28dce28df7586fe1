// Package dialects registers every built-in dialect with pkg/dialect.
//
//	import _ "github.com/hxx258456/sql-convert/pkg/dialects"
package dialects

import (
	_ "github.com/hxx258456/sql-convert/pkg/dialects/ansi"     // Register ANSI dialect
	_ "github.com/hxx258456/sql-convert/pkg/dialects/duckdb"   // Register DuckDB dialect
	_ "github.com/hxx258456/sql-convert/pkg/dialects/mysql"    // Register MySQL dialect
	_ "github.com/hxx258456/sql-convert/pkg/dialects/oracle"   // Register Oracle dialect
	_ "github.com/hxx258456/sql-convert/pkg/dialects/postgres" // Register PostgreSQL dialect
)
