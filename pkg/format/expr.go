package format

import (
	"strings"

	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/hxx258456/sql-convert/pkg/token"
)

// Logical chains scoring above this are broken across lines when pretty.
const complexityThreshold = 5

func (p *Printer) formatExpr(e core.Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *core.Literal:
		p.formatLiteral(expr)
	case *core.Param:
		p.params++
		p.write(p.dialect.FormatPlaceholder(p.params))
	case *core.ColumnRef:
		p.formatColumnRef(expr)
	case *core.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *core.UnaryExpr:
		p.formatUnaryExpr(expr)
	case *core.FuncCall:
		p.formatFuncCall(expr)
	case *core.CaseExpr:
		p.formatCaseExpr(expr)
	case *core.CastExpr:
		p.kw(token.CAST)
		p.write("(")
		p.formatExpr(expr.Expr)
		p.space()
		p.kw(token.AS)
		p.space()
		p.write(p.dialect.TypeName(expr.TypeName))
		p.write(")")
	case *core.InExpr:
		p.formatInExpr(expr)
	case *core.BetweenExpr:
		p.formatExpr(expr.Expr)
		p.space()
		if expr.Not {
			p.kw(token.NOT)
			p.space()
		}
		p.kw(token.BETWEEN)
		p.space()
		p.formatExpr(expr.Low)
		p.space()
		p.kw(token.AND)
		p.space()
		p.formatExpr(expr.High)
	case *core.IsNullExpr:
		p.formatExpr(expr.Expr)
		p.space()
		p.kw(token.IS)
		if expr.Not {
			p.space()
			p.kw(token.NOT)
		}
		p.space()
		p.kw(token.NULL)
	case *core.LikeExpr:
		p.formatLikeExpr(expr)
	case *core.ParenExpr:
		p.write("(")
		p.formatExpr(expr.Expr)
		p.write(")")
	case *core.StarExpr:
		if expr.Table != "" {
			p.ident(expr.Table)
			p.write(".")
		}
		p.write("*")
	case *core.SubqueryExpr:
		p.formatSubquery(expr.Select)
	case *core.ExistsExpr:
		if expr.Not {
			p.kw(token.NOT)
			p.space()
		}
		p.kw(token.EXISTS)
		p.space()
		p.formatSubquery(expr.Select)
	}
}

func (p *Printer) exprComplexity(e core.Expr) int {
	switch expr := e.(type) {
	case nil:
		return 0
	case *core.BinaryExpr:
		return 1 + p.exprComplexity(expr.Left) + p.exprComplexity(expr.Right)
	case *core.UnaryExpr:
		return 1 + p.exprComplexity(expr.Expr)
	case *core.FuncCall:
		score := 2
		for _, arg := range expr.Args {
			score += p.exprComplexity(arg)
		}
		return score
	case *core.ParenExpr:
		return p.exprComplexity(expr.Expr)
	case *core.CaseExpr:
		score := 2
		for _, w := range expr.Whens {
			score += p.exprComplexity(w.Condition) + p.exprComplexity(w.Result)
		}
		return score
	default:
		return 1
	}
}

func isLogicalOp(op token.TokenType) bool {
	return op == token.AND || op == token.OR
}

func (p *Printer) formatLiteral(lit *core.Literal) {
	switch lit.Type {
	case core.LiteralString:
		p.write(p.quoteString(lit.Value))
	case core.LiteralBool:
		upper := strings.ToUpper(lit.Value)
		switch {
		case p.dialect.SupportsBoolLiterals:
			p.write(upper)
		case upper == "TRUE":
			p.write("1")
		default:
			p.write("0")
		}
	case core.LiteralNull:
		p.kw(token.NULL)
	default:
		p.write(lit.Value)
	}
}

// quoteString writes a single-quoted literal, doubling embedded quotes and
// escaping backslashes where the dialect treats them as escapes. A
// backslash before % or _ is left alone there, since \% and \_ already
// read back as two characters.
func (p *Printer) quoteString(s string) string {
	if p.dialect.BackslashEscapes && strings.Contains(s, `\`) {
		var sb strings.Builder
		for i := 0; i < len(s); i++ {
			sb.WriteByte(s[i])
			if s[i] == '\\' && (i+1 == len(s) || s[i+1] != '%' && s[i+1] != '_') {
				sb.WriteByte('\\')
			}
		}
		s = sb.String()
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (p *Printer) formatColumnRef(col *core.ColumnRef) {
	if col.Table != "" {
		p.ident(col.Table)
		p.write(".")
	}
	p.ident(col.Column)
}

func (p *Printer) formatBinaryExpr(expr *core.BinaryExpr) {
	switch {
	case expr.Op == token.DPIPE && !p.dialect.ConcatOperator:
		p.formatConcatCall(flattenConcat(expr))
		return
	case expr.Op == token.PERCENT && p.dialect.ModFunction:
		p.write("MOD(")
		p.formatExpr(expr.Left)
		p.write(", ")
		p.formatExpr(expr.Right)
		p.write(")")
		return
	}

	shouldBreak := p.pretty && isLogicalOp(expr.Op) && p.exprComplexity(expr) > complexityThreshold

	p.formatExpr(expr.Left)
	if shouldBreak {
		p.writeln()
	} else {
		p.space()
	}
	p.kw(expr.Op)
	p.space()
	p.formatExpr(expr.Right)
}

// flattenConcat collects the operands of a chain of || operators.
func flattenConcat(e core.Expr) []core.Expr {
	if b, ok := e.(*core.BinaryExpr); ok && b.Op == token.DPIPE {
		return append(flattenConcat(b.Left), flattenConcat(b.Right)...)
	}
	return []core.Expr{e}
}

// formatConcatCall writes CONCAT(args...), nesting two-argument calls when
// the dialect's CONCAT is not variadic.
func (p *Printer) formatConcatCall(args []core.Expr) {
	name := p.dialect.FunctionName("CONCAT")
	if len(args) <= 2 || p.dialect.VariadicConcat() {
		p.write(name)
		p.write("(")
		p.formatList(len(args), func(i int) { p.formatExpr(args[i]) }, false)
		p.write(")")
		return
	}
	p.write(name)
	p.write("(")
	p.formatExpr(args[0])
	p.write(", ")
	p.formatConcatCall(args[1:])
	p.write(")")
}

func (p *Printer) formatUnaryExpr(expr *core.UnaryExpr) {
	p.kw(expr.Op)
	if expr.Op == token.NOT {
		p.space()
	}
	p.formatExpr(expr.Expr)
}

func (p *Printer) formatFuncCall(fn *core.FuncCall) {
	if reason, ok := p.dialect.UnsupportedFunction(fn.Name); ok {
		p.unsupported(fn.Name, reason)
	}

	if fn.Name == "IF" && len(fn.Args) == 3 && fn.Over == nil && !p.dialect.HasIfFunction() {
		p.formatExpr(&core.CaseExpr{
			Whens: []*core.WhenClause{{Condition: fn.Args[0], Result: fn.Args[1]}},
			Else:  fn.Args[2],
		})
		return
	}

	// CONCAT with more than two arguments becomes a || chain where CONCAT
	// takes exactly two.
	if fn.Name == "CONCAT" && len(fn.Args) > 2 && !p.dialect.VariadicConcat() && !fn.Distinct {
		if !p.dialect.ConcatOperator {
			p.formatConcatCall(fn.Args)
			return
		}
		for i, arg := range fn.Args {
			if i > 0 {
				p.write(" || ")
			}
			p.formatOperand(arg)
		}
		return
	}

	name := p.dialect.FunctionName(fn.Name)
	if len(fn.Args) == 0 && !fn.Star && !fn.Distinct && fn.Over == nil && dialect.IsNiladic(name) {
		p.write(name)
		return
	}

	p.write(name)
	p.write("(")
	if fn.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}
	if fn.Star {
		p.write("*")
	} else {
		p.formatList(len(fn.Args), func(i int) { p.formatExpr(fn.Args[i]) }, false)
	}
	p.write(")")

	if fn.Over != nil {
		p.formatWindowSpec(fn.Over)
	}
}

// formatOperand wraps non-primary expressions in parentheses so they keep
// their meaning as operands of a synthesized operator.
func (p *Printer) formatOperand(e core.Expr) {
	switch e.(type) {
	case *core.BinaryExpr, *core.UnaryExpr, *core.InExpr, *core.BetweenExpr,
		*core.IsNullExpr, *core.LikeExpr:
		p.write("(")
		p.formatExpr(e)
		p.write(")")
	default:
		p.formatExpr(e)
	}
}

func (p *Printer) formatWindowSpec(w *core.WindowSpec) {
	p.write(" OVER (")
	if len(w.PartitionBy) > 0 {
		p.keyword("PARTITION")
		p.space()
		p.kw(token.BY)
		p.space()
		p.formatList(len(w.PartitionBy), func(i int) { p.formatExpr(w.PartitionBy[i]) }, false)
	}
	if len(w.OrderBy) > 0 {
		if len(w.PartitionBy) > 0 {
			p.space()
		}
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(w.OrderBy), func(i int) { p.formatOrderByItem(w.OrderBy[i]) }, false)
	}
	p.write(")")
}

func (p *Printer) formatCaseExpr(c *core.CaseExpr) {
	p.kw(token.CASE)
	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}

	if p.pretty {
		p.indent()
	}
	for _, w := range c.Whens {
		p.br()
		p.kw(token.WHEN)
		p.space()
		p.formatExpr(w.Condition)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.formatExpr(w.Result)
	}
	if c.Else != nil {
		p.br()
		p.kw(token.ELSE)
		p.space()
		p.formatExpr(c.Else)
	}
	if p.pretty {
		p.dedent()
	}
	p.br()
	p.kw(token.END)
}

func (p *Printer) formatInExpr(in *core.InExpr) {
	p.formatExpr(in.Expr)
	p.space()
	if in.Not {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(token.IN)
	p.space()
	if in.Query != nil {
		p.formatSubquery(in.Query)
		return
	}
	p.write("(")
	p.formatList(len(in.Values), func(i int) { p.formatExpr(in.Values[i]) }, false)
	p.write(")")
}

func (p *Printer) formatLikeExpr(like *core.LikeExpr) {
	if like.Op == token.ILIKE && !p.dialect.SupportsIlike {
		p.unsupported("ILIKE", "")
	}
	p.formatExpr(like.Expr)
	p.space()
	if like.Not {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(like.Op)
	p.space()

	pattern, isString := like.Pattern.(*core.Literal)
	isString = isString && pattern.Type == core.LiteralString
	switch {
	case like.Escape != nil:
		p.formatExpr(like.Pattern)
		p.space()
		p.kw(token.ESCAPE)
		p.space()
		p.formatExpr(like.Escape)
	case like.BackslashEscape && !p.dialect.LikeBackslashEscape:
		p.formatExpr(like.Pattern)
		if !isString || strings.Contains(pattern.Value, `\`) {
			p.space()
			p.kw(token.ESCAPE)
			p.space()
			p.write(p.quoteString(`\`))
		}
	case !like.BackslashEscape && p.dialect.LikeBackslashEscape && isString:
		// A literal backslash must not turn into an escape in the target.
		p.write(p.quoteString(strings.ReplaceAll(pattern.Value, `\`, `\\`)))
	default:
		p.formatExpr(like.Pattern)
	}
}
