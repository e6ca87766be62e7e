package ast

// Inspect traverses the tree rooted at node in depth-first order, calling
// fn for each node. If fn returns false, the node's children are skipped.
// Nil nodes are not visited.
func Inspect(node any, fn func(any) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *SelectStmt:
		if n.With != nil {
			Inspect(n.With, fn)
		}
		if n.Body != nil {
			Inspect(n.Body, fn)
		}

	case *WithClause:
		for _, cte := range n.CTEs {
			Inspect(cte, fn)
		}

	case *CTE:
		if n.Select != nil {
			Inspect(n.Select, fn)
		}

	case *SelectBody:
		if n.Left != nil {
			Inspect(n.Left, fn)
		}
		if n.Right != nil {
			Inspect(n.Right, fn)
		}

	case *SelectCore:
		for _, item := range n.Columns {
			inspectExpr(item.Expr, fn)
		}
		if n.From != nil {
			Inspect(n.From, fn)
		}
		inspectExpr(n.Where, fn)
		for _, e := range n.GroupBy {
			inspectExpr(e, fn)
		}
		inspectExpr(n.Having, fn)
		inspectExpr(n.Qualify, fn)
		for _, item := range n.OrderBy {
			inspectExpr(item.Expr, fn)
		}
		inspectExpr(n.Limit, fn)
		inspectExpr(n.Offset, fn)

	case *FromClause:
		if n.Source != nil {
			Inspect(n.Source, fn)
		}
		for _, j := range n.Joins {
			Inspect(j, fn)
		}

	case *Join:
		if n.Right != nil {
			Inspect(n.Right, fn)
		}
		inspectExpr(n.Condition, fn)

	case *TableName:
		// leaf

	case *DerivedTable:
		if n.Select != nil {
			Inspect(n.Select, fn)
		}

	case *LateralTable:
		if n.Select != nil {
			Inspect(n.Select, fn)
		}

	case *BinaryExpr:
		inspectExpr(n.Left, fn)
		inspectExpr(n.Right, fn)

	case *UnaryExpr:
		inspectExpr(n.Expr, fn)

	case *FuncCall:
		for _, arg := range n.Args {
			inspectExpr(arg, fn)
		}
		if n.Window != nil {
			Inspect(n.Window, fn)
		}
		inspectExpr(n.Filter, fn)

	case *WindowSpec:
		for _, e := range n.PartitionBy {
			inspectExpr(e, fn)
		}
		for _, item := range n.OrderBy {
			inspectExpr(item.Expr, fn)
		}
		if n.Frame != nil {
			if n.Frame.Start != nil {
				inspectExpr(n.Frame.Start.Offset, fn)
			}
			if n.Frame.End != nil {
				inspectExpr(n.Frame.End.Offset, fn)
			}
		}

	case *CaseExpr:
		inspectExpr(n.Operand, fn)
		for _, w := range n.Whens {
			inspectExpr(w.Condition, fn)
			inspectExpr(w.Result, fn)
		}
		inspectExpr(n.Else, fn)

	case *CastExpr:
		inspectExpr(n.Expr, fn)

	case *InExpr:
		inspectExpr(n.Expr, fn)
		for _, v := range n.Values {
			inspectExpr(v, fn)
		}
		if n.Query != nil {
			Inspect(n.Query, fn)
		}

	case *BetweenExpr:
		inspectExpr(n.Expr, fn)
		inspectExpr(n.Low, fn)
		inspectExpr(n.High, fn)

	case *IsNullExpr:
		inspectExpr(n.Expr, fn)

	case *IsBoolExpr:
		inspectExpr(n.Expr, fn)

	case *LikeExpr:
		inspectExpr(n.Expr, fn)
		inspectExpr(n.Pattern, fn)

	case *ParenExpr:
		inspectExpr(n.Expr, fn)

	case *SubqueryExpr:
		if n.Select != nil {
			Inspect(n.Select, fn)
		}

	case *ExistsExpr:
		if n.Select != nil {
			Inspect(n.Select, fn)
		}
	}
}

func inspectExpr(e Expr, fn func(any) bool) {
	if e != nil {
		Inspect(e, fn)
	}
}
