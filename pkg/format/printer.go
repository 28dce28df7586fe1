// Package format renders syntax trees as SQL text for a target dialect.
package format

import (
	"bytes"
	"strings"

	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/token"
)

const indentSize = 2

// Printer writes SQL for one statement. In pretty mode every clause starts
// on its own line and lists are indented one item per line; otherwise the
// statement is written on a single line.
type Printer struct {
	dialect     *dialect.Dialect
	pretty      bool
	output      *bytes.Buffer
	depth       int
	atLineStart bool
	params      int   // placeholders written so far
	err         error // first rendering error
}

func newPrinter(d *dialect.Dialect, pretty bool) *Printer {
	return &Printer{
		dialect:     d,
		pretty:      pretty,
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output without trailing newlines.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n ")
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// br separates clauses: a line break when pretty, a space otherwise.
func (p *Printer) br() {
	if p.pretty {
		p.writeln()
	} else {
		p.space()
	}
}

// block prints the body of a clause such as WHERE or GROUP BY: indented on
// the following lines when pretty, inline otherwise.
func (p *Printer) block(body func()) {
	if !p.pretty {
		p.space()
		body()
		return
	}
	p.writeln()
	p.indent()
	body()
	p.dedent()
}

// kw prints keywords for the given token types separated by spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// keyword prints a keyword that has no token of its own.
func (p *Printer) keyword(s string) {
	p.write(strings.ToUpper(s))
}

// formatList prints count items; in pretty mode with multiline set each
// item goes on its own line.
func (p *Printer) formatList(count int, format func(i int), multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			if multiline && p.pretty {
				p.write(",")
				p.writeln()
			} else {
				p.write(", ")
			}
		}
	}
}

// ident writes an identifier, quoting it when the target dialect needs it.
func (p *Printer) ident(name string) {
	p.write(p.dialect.QuoteIdentifierIfNeeded(name))
}

// fail records the first rendering error; printing continues so callers
// only need to check once.
func (p *Printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}
