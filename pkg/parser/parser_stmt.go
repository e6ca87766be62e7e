package parser

import (
	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/token"
)

// Statement parsing: WITH clause, CTEs, SELECT body, SELECT list, ORDER BY.
//
// Grammar:
//
//	statement     → [WITH cte_list] select_body
//	cte_list      → cte ("," cte)*
//	cte           → identifier ["(" column_list ")"] AS "(" statement ")"
//	select_body   → select_core [(UNION|INTERSECT|EXCEPT) [ALL|DISTINCT] select_body]
//	select_core   → SELECT [DISTINCT|ALL] select_list
//	                [FROM from_clause]
//	                [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	                [QUALIFY expr] [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//	select_list   → select_item ("," select_item)*
//	select_item   → "*" | table "." "*" | expr [AS identifier]
//	order_list    → order_item ("," order_item)*
//	order_item    → expr [ASC|DESC] [NULLS FIRST|LAST]

// parseStatement parses a complete SQL statement.
func (p *Parser) parseStatement() *ast.SelectStmt {
	stmt := &ast.SelectStmt{}

	// Optional WITH clause
	if p.check(token.WITH) {
		stmt.With = p.parseWithClause()
	}

	// Required SELECT body
	stmt.Body = p.parseSelectBody()

	return stmt
}

// parseWithClause parses a WITH clause with CTEs.
func (p *Parser) parseWithClause() *ast.WithClause {
	p.expect(token.WITH)
	with := &ast.WithClause{}

	// Optional RECURSIVE
	if p.match(token.RECURSIVE) {
		with.Recursive = true
	}

	// Parse CTE list
	for {
		cte := p.parseCTE()
		with.CTEs = append(with.CTEs, cte)

		if !p.match(token.COMMA) {
			break
		}
	}

	return with
}

// parseCTE parses a single CTE.
func (p *Parser) parseCTE() *ast.CTE {
	cte := &ast.CTE{}

	// CTE name
	if !p.check(token.IDENT) {
		p.addError("expected CTE name")
		return cte
	}
	cte.Name = ast.Ident{Value: p.token.Literal, Quoted: p.token.Quoted}
	p.nextToken()

	// Optional column list: name (a, b) AS (...)
	if p.match(token.LPAREN) {
		for {
			if !p.check(token.IDENT) {
				p.addError("expected column name in CTE column list")
				break
			}
			cte.Columns = append(cte.Columns, ast.Ident{Value: p.token.Literal, Quoted: p.token.Quoted})
			p.nextToken()
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	// AS
	p.expect(token.AS)

	// ( SelectStatement )
	p.expect(token.LPAREN)
	cte.Select = p.parseStatement()
	p.expect(token.RPAREN)

	return cte
}

// parseSelectBody parses a SELECT body with possible set operations.
func (p *Parser) parseSelectBody() *ast.SelectBody {
	body := &ast.SelectBody{}
	body.Left = p.parseSelectCore()

	// Check for set operations
	if p.check(token.UNION) || p.check(token.INTERSECT) || p.check(token.EXCEPT) {
		switch p.token.Type {
		case token.UNION:
			p.nextToken()
			if p.match(token.ALL) {
				body.Op = ast.SetOpUnionAll
				body.All = true
			} else {
				body.Op = ast.SetOpUnion
				p.match(token.DISTINCT) // optional
			}
		case token.INTERSECT:
			p.nextToken()
			body.Op = ast.SetOpIntersect
			p.match(token.ALL) // optional
		case token.EXCEPT:
			p.nextToken()
			body.Op = ast.SetOpExcept
			p.match(token.ALL) // optional
		}

		// Parse the right side (recursively for chained operations)
		body.Right = p.parseSelectBody()
	}

	return body
}

// parseSelectCore parses a single SELECT clause.
func (p *Parser) parseSelectCore() *ast.SelectCore {
	p.expect(token.SELECT)
	core := &ast.SelectCore{}

	// DISTINCT / ALL
	if p.match(token.DISTINCT) {
		core.Distinct = true
	} else {
		p.match(token.ALL) // optional, consume if present
	}

	// SELECT list
	core.Columns = p.parseSelectList()

	// FROM clause
	if p.match(token.FROM) {
		core.From = p.parseFromClause()
	}

	// Optional clauses in their fixed order
	if p.match(token.WHERE) {
		core.Where = p.parseExpression()
	}
	if p.check(token.GROUP) {
		p.nextToken()
		p.expect(token.BY)
		core.GroupBy = p.parseExpressionList()
	}
	if p.match(token.HAVING) {
		core.Having = p.parseExpression()
	}
	if p.match(token.QUALIFY) {
		core.Qualify = p.parseExpression()
	}
	if p.check(token.ORDER) {
		p.nextToken()
		p.expect(token.BY)
		core.OrderBy = p.parseOrderByList()
	}
	if p.match(token.LIMIT) {
		core.Limit = p.parseExpression()
	}
	if p.match(token.OFFSET) {
		core.Offset = p.parseExpression()
	}

	return core
}

// parseSelectList parses the list of SELECT items.
func (p *Parser) parseSelectList() []ast.SelectItem {
	var items []ast.SelectItem

	for {
		item := p.parseSelectItem()
		items = append(items, item)

		if !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseSelectItem parses a single SELECT item.
func (p *Parser) parseSelectItem() ast.SelectItem {
	item := ast.SelectItem{}

	// Check for * or table.*
	if p.check(token.STAR) {
		item.Star = true
		p.nextToken()
		return item
	}

	// Check for table.* pattern using 3-token lookahead (no rollback needed)
	if p.check(token.IDENT) && p.checkPeek(token.DOT) && p.checkPeek2(token.STAR) {
		tableName := p.token.Literal
		p.nextToken() // consume identifier
		p.nextToken() // consume DOT
		p.nextToken() // consume STAR
		item.TableStar = tableName
		return item
	}

	// Regular expression
	item.Expr = p.parseExpression()

	// Optional alias
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			item.Alias = p.token.Literal
			p.nextToken()
		} else {
			p.addError("expected alias after AS")
		}
	} else if p.check(token.IDENT) && !p.isKeyword(p.token) {
		// Alias without AS
		item.Alias = p.token.Literal
		p.nextToken()
	}

	return item
}

// parseOrderByList parses a list of ORDER BY items.
func (p *Parser) parseOrderByList() []ast.OrderByItem {
	var items []ast.OrderByItem

	for {
		item := p.parseOrderByItem()
		items = append(items, item)

		if !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseOrderByItem parses a single ORDER BY item.
func (p *Parser) parseOrderByItem() ast.OrderByItem {
	item := ast.OrderByItem{}
	item.Expr = p.parseExpression()

	// ASC / DESC
	if p.match(token.ASC) {
		item.Desc = false
	} else if p.match(token.DESC) {
		item.Desc = true
	}

	// NULLS FIRST / LAST
	if p.match(token.NULLS) {
		if p.match(token.FIRST) {
			b := true
			item.NullsFirst = &b
		} else if p.match(token.LAST) {
			b := false
			item.NullsFirst = &b
		}
	}

	return item
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []ast.Expr {
	var exprs []ast.Expr

	for {
		expr := p.parseExpression()
		exprs = append(exprs, expr)

		if !p.match(token.COMMA) {
			break
		}
	}

	return exprs
}
