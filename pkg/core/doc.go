// Package core defines the SQL syntax tree shared by the parser, the
// printer and the transpile facade, plus the pure-data parts of a dialect
// definition.
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other engine packages depend on core, not the reverse.
package core
