package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls.
//
// Grammar:
//
//	primary       → literal | column_ref | func_call | paren_expr | case_expr | cast_expr | exists_expr
//	literal       → NUMBER | STRING | TRUE | FALSE | NULL
//	column_ref    → [table "."] column
//	func_call     → identifier "(" [DISTINCT] [expr_list | "*"] ")" [FILTER "(" WHERE expr ")"] [OVER window_spec]

// parsePrimary parses primary expressions.
func (p *Parser) parsePrimary() ast.Expr {
	switch p.token.Type {
	case token.NUMBER:
		lit := &ast.Literal{Type: ast.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.STRING:
		lit := &ast.Literal{Type: ast.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.TRUE:
		p.nextToken()
		return &ast.Literal{Type: ast.LiteralBool, Value: "true"}

	case token.FALSE:
		p.nextToken()
		return &ast.Literal{Type: ast.LiteralBool, Value: "false"}

	case token.NULL:
		p.nextToken()
		return &ast.Literal{Type: ast.LiteralNull, Value: "null"}

	case token.CASE:
		return p.parseCaseExpr()

	case token.CAST:
		return p.parseCastExpr()

	case token.NOT:
		// NOT EXISTS check
		if p.checkPeek(token.EXISTS) {
			p.nextToken() // consume NOT
			return p.parseExistsExpr(true)
		}
		p.nextToken()
		return &ast.UnaryExpr{Op: token.NOT, Expr: p.parsePrimary()}

	case token.EXISTS:
		return p.parseExistsExpr(false)

	case token.IDENT:
		return p.parseIdentifierExpr()

	case token.LPAREN:
		return p.parseParenExpr()

	case token.STAR:
		// SELECT * context
		p.nextToken()
		return &ast.StarExpr{}

	default:
		p.addError(fmt.Sprintf("unexpected token in expression: %s", p.token.Type))
		p.nextToken()
		return nil
	}
}

// parseIdentifierExpr parses an identifier which could be a column ref or function call.
func (p *Parser) parseIdentifierExpr() ast.Expr {
	name := p.token.Literal
	p.nextToken()

	// Check if it's a function call
	if p.check(token.LPAREN) {
		return p.parseFuncCall(name)
	}

	// Qualified column reference: table.column
	if p.check(token.DOT) {
		return p.parseQualifiedColumnRef(name)
	}

	// Simple column reference
	return &ast.ColumnRef{Column: name}
}

// parseQualifiedColumnRef parses a qualified column reference.
func (p *Parser) parseQualifiedColumnRef(firstPart string) ast.Expr {
	parts := []string{firstPart}

	for p.match(token.DOT) {
		// Check for table.*
		if p.check(token.STAR) {
			p.nextToken()
			return &ast.StarExpr{Table: firstPart}
		}

		if p.check(token.IDENT) {
			parts = append(parts, p.token.Literal)
			p.nextToken()
		}
	}

	// Build column reference
	ref := &ast.ColumnRef{}
	switch len(parts) {
	case 2:
		ref.Table = parts[0]
		ref.Column = parts[1]
	case 3:
		// schema.table.column - keep table.column
		ref.Table = parts[1]
		ref.Column = parts[2]
	default:
		ref.Column = parts[len(parts)-1]
	}

	return ref
}

// parseFuncCall parses a function call.
func (p *Parser) parseFuncCall(name string) ast.Expr {
	fn := &ast.FuncCall{Name: strings.ToUpper(name)}

	p.expect(token.LPAREN)

	// Handle COUNT(*) or other aggregate(*)
	if p.check(token.STAR) {
		fn.Star = true
		p.nextToken()
	} else if !p.check(token.RPAREN) {
		// Check for DISTINCT
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		}

		// Parse arguments
		for {
			arg := p.parseExpression()
			fn.Args = append(fn.Args, arg)

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	p.expect(token.RPAREN)

	// FILTER clause (for aggregates)
	if p.match(token.FILTER) {
		p.expect(token.LPAREN)
		p.expect(token.WHERE)
		fn.Filter = p.parseExpression()
		p.expect(token.RPAREN)
	}

	// OVER clause (window function)
	if p.match(token.OVER) {
		fn.Window = p.parseWindowSpec()
	}

	return fn
}
