// Package transpile joins the parser, the printer and the dialect registry
// into a converter between two SQL dialects.
//
//	eng, err := transpile.New("mysql", "oracle")
//	stmts, err := eng.Parse("SELECT * FROM t LIMIT 10")
//	out, err := eng.Render(stmts, false)
//	// out[0] == "SELECT * FROM t FETCH FIRST 10 ROWS ONLY"
package transpile

import (
	"errors"
	"fmt"

	"github.com/hxx258456/sql-convert/internal/introspect"
	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/format"
	"github.com/hxx258456/sql-convert/pkg/parser"

	// Register the built-in dialects.
	_ "github.com/hxx258456/sql-convert/pkg/dialects"
)

// Engine converts statements from Source to Target. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	Source *dialect.Dialect
	Target *dialect.Dialect
}

// New resolves both dialect names (aliases allowed) through the registry.
func New(source, target string) (*Engine, error) {
	src, err := dialect.Lookup(source)
	if err != nil {
		return nil, fmt.Errorf("source dialect: %w", err)
	}
	dst, err := dialect.Lookup(target)
	if err != nil {
		return nil, fmt.Errorf("target dialect: %w", err)
	}
	return &Engine{Source: src, Target: dst}, nil
}

// Parse splits sql into statements and parses each one in the source
// dialect. Empty input yields no statements and no error.
func (e *Engine) Parse(sql string) ([]introspect.Node, error) {
	stmts, err := parser.Parse(sql, e.Source)
	if err != nil {
		return nil, parseError(err)
	}
	nodes := make([]introspect.Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = Wrap(s, e.Source)
	}
	return nodes, nil
}

// Render prints each statement in the target dialect. The nodes must come
// from Parse (or Wrap) of an Engine.
func (e *Engine) Render(stmts []introspect.Node, pretty bool) ([]string, error) {
	out := make([]string, 0, len(stmts))
	for i, n := range stmts {
		stmt, err := statementOf(n)
		if err != nil {
			return nil, renderError(fmt.Errorf("statement %d: %w", i+1, err))
		}
		text, err := format.Format(stmt, e.Target, pretty)
		if err != nil {
			return nil, renderError(err)
		}
		out = append(out, text)
	}
	return out, nil
}

// Transpile is Parse followed by Render.
func (e *Engine) Transpile(sql string, pretty bool) ([]string, error) {
	stmts, err := e.Parse(sql)
	if err != nil {
		return nil, err
	}
	return e.Render(stmts, pretty)
}

var errNotStatement = errors.New("node is not a parsed statement")

func statementOf(n introspect.Node) (core.Stmt, error) {
	node, ok := n.(*Node)
	if !ok || node == nil {
		return nil, fmt.Errorf("%w: %T", errNotStatement, n)
	}
	stmt, ok := node.src.(core.Stmt)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotStatement, node.tag)
	}
	return stmt, nil
}
