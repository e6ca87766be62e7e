package rewrite

import (
	"github.com/leapstack-labs/sqlremap/pkg/ast"
)

// Statement traversal with CTE scope tracking.
//
// Each SELECT statement opens a scope holding its CTE names. A bare table
// name that matches a CTE name in any enclosing scope refers to the CTE,
// not a real table, and is never handed to the handler. Names are
// compared after dialect normalization.

// scope is a linked set of CTE names visible at a point in the tree.
type scope struct {
	names  map[string]struct{}
	parent *scope
}

func (s *scope) contains(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.names[name]; ok {
			return true
		}
	}
	return false
}

func (r *Rewriter) rewriteStmt(stmt *ast.SelectStmt, outer *scope, handler Handler) error {
	if stmt == nil {
		return nil
	}

	cur := outer
	if stmt.With != nil {
		cur = &scope{names: make(map[string]struct{}), parent: outer}
		// All CTE names go into scope before the bodies are walked so
		// that later (and recursive) CTEs can refer to earlier ones.
		for _, cte := range stmt.With.CTEs {
			cur.names[r.dialect.NormalizeName(cte.Name.Value)] = struct{}{}
		}
		for _, cte := range stmt.With.CTEs {
			if err := r.rewriteStmt(cte.Select, cur, handler); err != nil {
				return err
			}
		}
	}

	return r.rewriteBody(stmt.Body, cur, handler)
}

func (r *Rewriter) rewriteBody(body *ast.SelectBody, sc *scope, handler Handler) error {
	if body == nil {
		return nil
	}
	if err := r.rewriteCore(body.Left, sc, handler); err != nil {
		return err
	}
	return r.rewriteBody(body.Right, sc, handler)
}

func (r *Rewriter) rewriteCore(core *ast.SelectCore, sc *scope, handler Handler) error {
	if core == nil {
		return nil
	}

	if core.From != nil {
		if err := r.rewriteTableRef(core.From.Source, sc, handler); err != nil {
			return err
		}
		for _, join := range core.From.Joins {
			if err := r.rewriteTableRef(join.Right, sc, handler); err != nil {
				return err
			}
			if err := r.rewriteExpr(join.Condition, sc, handler); err != nil {
				return err
			}
		}
	}

	for _, item := range core.Columns {
		if err := r.rewriteExpr(item.Expr, sc, handler); err != nil {
			return err
		}
	}
	if err := r.rewriteExpr(core.Where, sc, handler); err != nil {
		return err
	}
	for _, e := range core.GroupBy {
		if err := r.rewriteExpr(e, sc, handler); err != nil {
			return err
		}
	}
	if err := r.rewriteExpr(core.Having, sc, handler); err != nil {
		return err
	}
	if err := r.rewriteExpr(core.Qualify, sc, handler); err != nil {
		return err
	}
	for _, item := range core.OrderBy {
		if err := r.rewriteExpr(item.Expr, sc, handler); err != nil {
			return err
		}
	}
	if err := r.rewriteExpr(core.Limit, sc, handler); err != nil {
		return err
	}
	return r.rewriteExpr(core.Offset, sc, handler)
}

func (r *Rewriter) rewriteTableRef(ref ast.TableRef, sc *scope, handler Handler) error {
	switch t := ref.(type) {
	case *ast.TableName:
		return r.rewriteTableName(t, sc, handler)
	case *ast.DerivedTable:
		return r.rewriteStmt(t.Select, sc, handler)
	case *ast.LateralTable:
		return r.rewriteStmt(t.Select, sc, handler)
	}
	return nil
}

func (r *Rewriter) rewriteTableName(t *ast.TableName, sc *scope, handler Handler) error {
	if t.Name == nil {
		return nil
	}

	if t.Schema == nil {
		// Bare name: a CTE reference is never rewritten, and other bare
		// names are only visited when opted in.
		if sc.contains(r.dialect.NormalizeName(t.Name.Value)) {
			r.logger.Debug("skipping CTE reference", "name", t.Name.Value)
			return nil
		}
		if !r.unqualified {
			return nil
		}
	}

	id := TableID{Name: t.Name.Value}
	if t.Catalog != nil {
		id.Catalog = t.Catalog.Value
	}
	if t.Schema != nil {
		id.Database = t.Schema.Value
	}

	dec, err := handler(id)
	if err != nil {
		return err
	}

	if err := r.applyDecision(t, id, dec); err != nil {
		return err
	}

	r.logger.Debug("rewrote table reference", "from", id.String(), "to", tableString(t))
	return nil
}

func tableString(t *ast.TableName) string {
	id := TableID{}
	if t.Catalog != nil {
		id.Catalog = t.Catalog.Value
	}
	if t.Schema != nil {
		id.Database = t.Schema.Value
	}
	if t.Name != nil {
		id.Name = t.Name.Value
	}
	return id.String()
}

func (r *Rewriter) rewriteExpr(e ast.Expr, sc *scope, handler Handler) error {
	if e == nil {
		return nil
	}

	switch expr := e.(type) {
	case *ast.BinaryExpr:
		if err := r.rewriteExpr(expr.Left, sc, handler); err != nil {
			return err
		}
		return r.rewriteExpr(expr.Right, sc, handler)

	case *ast.UnaryExpr:
		return r.rewriteExpr(expr.Expr, sc, handler)

	case *ast.FuncCall:
		for _, arg := range expr.Args {
			if err := r.rewriteExpr(arg, sc, handler); err != nil {
				return err
			}
		}
		if expr.Window != nil {
			for _, pe := range expr.Window.PartitionBy {
				if err := r.rewriteExpr(pe, sc, handler); err != nil {
					return err
				}
			}
			for _, item := range expr.Window.OrderBy {
				if err := r.rewriteExpr(item.Expr, sc, handler); err != nil {
					return err
				}
			}
		}
		return r.rewriteExpr(expr.Filter, sc, handler)

	case *ast.CaseExpr:
		if err := r.rewriteExpr(expr.Operand, sc, handler); err != nil {
			return err
		}
		for _, w := range expr.Whens {
			if err := r.rewriteExpr(w.Condition, sc, handler); err != nil {
				return err
			}
			if err := r.rewriteExpr(w.Result, sc, handler); err != nil {
				return err
			}
		}
		return r.rewriteExpr(expr.Else, sc, handler)

	case *ast.CastExpr:
		return r.rewriteExpr(expr.Expr, sc, handler)

	case *ast.InExpr:
		if err := r.rewriteExpr(expr.Expr, sc, handler); err != nil {
			return err
		}
		for _, v := range expr.Values {
			if err := r.rewriteExpr(v, sc, handler); err != nil {
				return err
			}
		}
		return r.rewriteStmt(expr.Query, sc, handler)

	case *ast.BetweenExpr:
		if err := r.rewriteExpr(expr.Expr, sc, handler); err != nil {
			return err
		}
		if err := r.rewriteExpr(expr.Low, sc, handler); err != nil {
			return err
		}
		return r.rewriteExpr(expr.High, sc, handler)

	case *ast.IsNullExpr:
		return r.rewriteExpr(expr.Expr, sc, handler)

	case *ast.IsBoolExpr:
		return r.rewriteExpr(expr.Expr, sc, handler)

	case *ast.LikeExpr:
		if err := r.rewriteExpr(expr.Expr, sc, handler); err != nil {
			return err
		}
		return r.rewriteExpr(expr.Pattern, sc, handler)

	case *ast.ParenExpr:
		return r.rewriteExpr(expr.Expr, sc, handler)

	case *ast.SubqueryExpr:
		return r.rewriteStmt(expr.Select, sc, handler)

	case *ast.ExistsExpr:
		return r.rewriteStmt(expr.Select, sc, handler)
	}

	return nil
}
