package render

import (
	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/token"
)

func (p *Printer) formatExpr(e ast.Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *ast.Literal:
		p.formatLiteral(expr)
	case *ast.ColumnRef:
		p.formatColumnRef(expr)
	case *ast.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *ast.UnaryExpr:
		p.formatUnaryExpr(expr)
	case *ast.FuncCall:
		p.formatFuncCall(expr)
	case *ast.CaseExpr:
		p.formatCaseExpr(expr)
	case *ast.CastExpr:
		p.formatCastExpr(expr)
	case *ast.InExpr:
		p.formatInExpr(expr)
	case *ast.BetweenExpr:
		p.formatBetweenExpr(expr)
	case *ast.IsNullExpr:
		p.formatIsNullExpr(expr)
	case *ast.IsBoolExpr:
		p.formatIsBoolExpr(expr)
	case *ast.LikeExpr:
		p.formatLikeExpr(expr)
	case *ast.ParenExpr:
		p.formatParenExpr(expr)
	case *ast.SubqueryExpr:
		p.formatSubqueryExpr(expr)
	case *ast.ExistsExpr:
		p.formatExistsExpr(expr)
	case *ast.StarExpr:
		p.formatStarExpr(expr)
	}
}

func (p *Printer) formatLiteral(lit *ast.Literal) {
	switch lit.Type {
	case ast.LiteralString:
		p.write("'")
		p.write(escapeString(lit.Value))
		p.write("'")
	case ast.LiteralBool:
		if lit.Value == "TRUE" || lit.Value == "true" {
			p.kw(token.TRUE)
		} else {
			p.kw(token.FALSE)
		}
	case ast.LiteralNull:
		p.kw(token.NULL)
	default:
		p.write(lit.Value)
	}
}

// escapeString doubles single quotes for SQL string literals.
func escapeString(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'', '\'')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func (p *Printer) formatColumnRef(col *ast.ColumnRef) {
	if col.Table != "" {
		p.name(col.Table)
		p.write(".")
	}
	p.name(col.Column)
}

func (p *Printer) formatBinaryExpr(expr *ast.BinaryExpr) {
	p.formatExpr(expr.Left)
	p.space()
	p.kw(expr.Op)
	p.space()
	p.formatExpr(expr.Right)
}

func (p *Printer) formatUnaryExpr(expr *ast.UnaryExpr) {
	p.kw(expr.Op)
	if expr.Op == token.NOT {
		p.space()
	}
	p.formatExpr(expr.Expr)
}

func (p *Printer) formatFuncCall(fn *ast.FuncCall) {
	p.write(fn.Name)
	p.write("(")

	if fn.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}

	if fn.Star {
		p.write("*")
	} else {
		p.formatList(len(fn.Args), func(i int) { p.formatExpr(fn.Args[i]) }, ", ")
	}

	p.write(")")

	// FILTER clause
	if fn.Filter != nil {
		p.space()
		p.kw(token.FILTER)
		p.write(" (")
		p.kw(token.WHERE)
		p.space()
		p.formatExpr(fn.Filter)
		p.write(")")
	}

	// OVER clause (window function)
	if fn.Window != nil {
		p.space()
		p.formatWindowSpec(fn.Window)
	}
}

func (p *Printer) formatWindowSpec(w *ast.WindowSpec) {
	p.kw(token.OVER)
	p.write(" (")

	wrote := false
	if len(w.PartitionBy) > 0 {
		p.kw(token.PARTITION, token.BY)
		p.space()
		p.formatList(len(w.PartitionBy), func(i int) { p.formatExpr(w.PartitionBy[i]) }, ", ")
		wrote = true
	}

	if len(w.OrderBy) > 0 {
		if wrote {
			p.space()
		}
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(w.OrderBy), func(i int) { p.formatOrderByItem(w.OrderBy[i]) }, ", ")
		wrote = true
	}

	if w.Frame != nil {
		if wrote {
			p.space()
		}
		p.formatFrameSpec(w.Frame)
	}

	p.write(")")
}

func (p *Printer) formatFrameSpec(f *ast.FrameSpec) {
	p.keyword(string(f.Type))
	p.space()
	if f.End != nil {
		p.kw(token.BETWEEN)
		p.space()
		p.formatFrameBound(f.Start)
		p.space()
		p.kw(token.AND)
		p.space()
		p.formatFrameBound(f.End)
	} else {
		p.formatFrameBound(f.Start)
	}
}

func (p *Printer) formatFrameBound(b *ast.FrameBound) {
	if b == nil {
		return
	}
	switch b.Type {
	case ast.FrameUnboundedPreceding:
		p.kw(token.UNBOUNDED, token.PRECEDING)
	case ast.FrameUnboundedFollowing:
		p.kw(token.UNBOUNDED, token.FOLLOWING)
	case ast.FrameCurrentRow:
		p.kw(token.CURRENT, token.ROW)
	case ast.FrameExprPreceding:
		p.formatExpr(b.Offset)
		p.space()
		p.kw(token.PRECEDING)
	case ast.FrameExprFollowing:
		p.formatExpr(b.Offset)
		p.space()
		p.kw(token.FOLLOWING)
	}
}

func (p *Printer) formatCaseExpr(c *ast.CaseExpr) {
	p.kw(token.CASE)

	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}

	for _, w := range c.Whens {
		p.space()
		p.kw(token.WHEN)
		p.space()
		p.formatExpr(w.Condition)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.formatExpr(w.Result)
	}

	if c.Else != nil {
		p.space()
		p.kw(token.ELSE)
		p.space()
		p.formatExpr(c.Else)
	}

	p.space()
	p.kw(token.END)
}

func (p *Printer) formatCastExpr(c *ast.CastExpr) {
	p.kw(token.CAST)
	p.write("(")
	p.formatExpr(c.Expr)
	p.space()
	p.kw(token.AS)
	p.space()
	p.write(c.TypeName)
	p.write(")")
}

func (p *Printer) formatInExpr(in *ast.InExpr) {
	p.formatExpr(in.Expr)
	if in.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.IN)
	p.write(" (")

	if in.Query != nil {
		p.formatSelectStmt(in.Query)
	} else {
		p.formatList(len(in.Values), func(i int) { p.formatExpr(in.Values[i]) }, ", ")
	}

	p.write(")")
}

func (p *Printer) formatBetweenExpr(b *ast.BetweenExpr) {
	p.formatExpr(b.Expr)
	if b.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.BETWEEN)
	p.space()
	p.formatExpr(b.Low)
	p.space()
	p.kw(token.AND)
	p.space()
	p.formatExpr(b.High)
}

func (p *Printer) formatIsNullExpr(is *ast.IsNullExpr) {
	p.formatExpr(is.Expr)
	p.space()
	p.kw(token.IS)
	if is.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.NULL)
}

func (p *Printer) formatIsBoolExpr(is *ast.IsBoolExpr) {
	p.formatExpr(is.Expr)
	p.space()
	p.kw(token.IS)
	if is.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	if is.Value {
		p.kw(token.TRUE)
	} else {
		p.kw(token.FALSE)
	}
}

func (p *Printer) formatLikeExpr(like *ast.LikeExpr) {
	p.formatExpr(like.Expr)
	if like.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(like.Op)
	p.space()
	p.formatExpr(like.Pattern)
}

func (p *Printer) formatParenExpr(paren *ast.ParenExpr) {
	p.write("(")
	p.formatExpr(paren.Expr)
	p.write(")")
}

func (p *Printer) formatSubqueryExpr(sq *ast.SubqueryExpr) {
	p.write("(")
	p.formatSelectStmt(sq.Select)
	p.write(")")
}

func (p *Printer) formatExistsExpr(ex *ast.ExistsExpr) {
	if ex.Not {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(token.EXISTS)
	p.write(" (")
	p.formatSelectStmt(ex.Select)
	p.write(")")
}

func (p *Printer) formatStarExpr(star *ast.StarExpr) {
	if star.Table != "" {
		p.name(star.Table)
		p.write(".")
	}
	p.write("*")
}
