package render

import (
	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/token"
)

func (p *Printer) formatSelectStmt(stmt *ast.SelectStmt) {
	if stmt == nil {
		return
	}

	if stmt.With != nil {
		p.formatWithClause(stmt.With)
		p.space()
	}

	if stmt.Body != nil {
		p.formatSelectBody(stmt.Body)
	}
}

func (p *Printer) formatWithClause(with *ast.WithClause) {
	p.kw(token.WITH)
	if with.Recursive {
		p.space()
		p.kw(token.RECURSIVE)
	}
	p.space()

	p.formatList(len(with.CTEs), func(i int) {
		cte := with.CTEs[i]
		p.ident(&cte.Name)
		if len(cte.Columns) > 0 {
			p.write(" (")
			p.formatList(len(cte.Columns), func(j int) { p.ident(&cte.Columns[j]) }, ", ")
			p.write(")")
		}
		p.space()
		p.kw(token.AS)
		p.write(" (")
		p.formatSelectStmt(cte.Select)
		p.write(")")
	}, ", ")
}

func (p *Printer) formatSelectBody(body *ast.SelectBody) {
	if body == nil {
		return
	}

	p.formatSelectCore(body.Left)

	if body.Op != ast.SetOpNone {
		p.space()
		switch body.Op {
		case ast.SetOpUnion:
			p.kw(token.UNION)
		case ast.SetOpUnionAll:
			p.kw(token.UNION, token.ALL)
		case ast.SetOpIntersect:
			p.kw(token.INTERSECT)
		case ast.SetOpExcept:
			p.kw(token.EXCEPT)
		}
		p.space()
		p.formatSelectBody(body.Right)
	}
}

func (p *Printer) formatSelectCore(sc *ast.SelectCore) {
	if sc == nil {
		return
	}

	p.kw(token.SELECT)
	if sc.Distinct {
		p.space()
		p.kw(token.DISTINCT)
	}
	p.space()

	p.formatList(len(sc.Columns), func(i int) { p.formatSelectItem(sc.Columns[i]) }, ", ")

	if sc.From != nil {
		p.space()
		p.kw(token.FROM)
		p.space()
		p.formatFromClause(sc.From)
	}

	if sc.Where != nil {
		p.space()
		p.kw(token.WHERE)
		p.space()
		p.formatExpr(sc.Where)
	}

	if len(sc.GroupBy) > 0 {
		p.space()
		p.kw(token.GROUP, token.BY)
		p.space()
		p.formatList(len(sc.GroupBy), func(i int) { p.formatExpr(sc.GroupBy[i]) }, ", ")
	}

	if sc.Having != nil {
		p.space()
		p.kw(token.HAVING)
		p.space()
		p.formatExpr(sc.Having)
	}

	if sc.Qualify != nil {
		p.space()
		p.kw(token.QUALIFY)
		p.space()
		p.formatExpr(sc.Qualify)
	}

	if len(sc.OrderBy) > 0 {
		p.space()
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(sc.OrderBy), func(i int) { p.formatOrderByItem(sc.OrderBy[i]) }, ", ")
	}

	if sc.Limit != nil {
		p.space()
		p.kw(token.LIMIT)
		p.space()
		p.formatExpr(sc.Limit)
	}

	if sc.Offset != nil {
		p.space()
		p.kw(token.OFFSET)
		p.space()
		p.formatExpr(sc.Offset)
	}
}

func (p *Printer) formatSelectItem(item ast.SelectItem) {
	if item.Star {
		p.write("*")
		return
	}
	if item.TableStar != "" {
		p.name(item.TableStar)
		p.write(".*")
		return
	}

	p.formatExpr(item.Expr)
	if item.Alias != "" {
		p.space()
		p.kw(token.AS)
		p.space()
		p.name(item.Alias)
	}
}

func (p *Printer) formatFromClause(from *ast.FromClause) {
	if from == nil {
		return
	}

	p.formatTableRef(from.Source)

	for _, join := range from.Joins {
		p.formatJoin(join)
	}
}

func (p *Printer) formatTableRef(ref ast.TableRef) {
	if ref == nil {
		return
	}

	switch t := ref.(type) {
	case *ast.TableName:
		p.formatTableName(t)
	case *ast.DerivedTable:
		p.formatDerivedTable(t)
	case *ast.LateralTable:
		p.formatLateralTable(t)
	}
}

func (p *Printer) formatTableName(t *ast.TableName) {
	if t.Catalog != nil {
		p.ident(t.Catalog)
		p.write(".")
	}
	if t.Schema != nil {
		p.ident(t.Schema)
		p.write(".")
	}
	p.ident(t.Name)
	if t.Alias != "" {
		p.space()
		p.kw(token.AS)
		p.space()
		p.name(t.Alias)
	}
}

func (p *Printer) formatDerivedTable(t *ast.DerivedTable) {
	p.write("(")
	p.formatSelectStmt(t.Select)
	p.write(")")
	if t.Alias != "" {
		p.space()
		p.kw(token.AS)
		p.space()
		p.name(t.Alias)
	}
}

func (p *Printer) formatLateralTable(t *ast.LateralTable) {
	p.kw(token.LATERAL)
	p.write(" (")
	p.formatSelectStmt(t.Select)
	p.write(")")
	if t.Alias != "" {
		p.space()
		p.kw(token.AS)
		p.space()
		p.name(t.Alias)
	}
}

func (p *Printer) formatJoin(join *ast.Join) {
	if join == nil {
		return
	}

	if join.Type == ast.JoinComma {
		p.write(", ")
		p.formatTableRef(join.Right)
		return
	}

	p.space()

	if join.Natural {
		p.kw(token.NATURAL)
		p.space()
	}

	switch join.Type {
	case ast.JoinInner:
		// Plain "JOIN" for inner (most common, cleaner output)
		p.kw(token.JOIN)
	default:
		p.keyword(string(join.Type))
		p.space()
		p.kw(token.JOIN)
	}
	p.space()

	p.formatTableRef(join.Right)

	if len(join.Using) > 0 {
		p.space()
		p.kw(token.USING)
		p.write(" (")
		p.formatList(len(join.Using), func(i int) { p.name(join.Using[i]) }, ", ")
		p.write(")")
	} else if join.Condition != nil {
		p.space()
		p.kw(token.ON)
		p.space()
		p.formatExpr(join.Condition)
	}
}

func (p *Printer) formatOrderByItem(item ast.OrderByItem) {
	p.formatExpr(item.Expr)
	if item.Desc {
		p.space()
		p.kw(token.DESC)
	}
	if item.NullsFirst != nil {
		p.space()
		p.kw(token.NULLS)
		p.space()
		if *item.NullsFirst {
			p.kw(token.FIRST)
		} else {
			p.kw(token.LAST)
		}
	}
}
