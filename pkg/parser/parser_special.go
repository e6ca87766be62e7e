package parser

import (
	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/token"
)

// Special expression parsing: CASE, CAST, EXISTS, parenthesized expressions, subqueries.
//
// Grammar:
//
//	case_expr     → CASE [expr] (WHEN expr THEN expr)+ [ELSE expr] END
//	cast_expr     → CAST "(" expr AS type_name ")"
//	exists_expr   → [NOT] EXISTS "(" statement ")"
//	paren_expr    → "(" expression ")" | "(" statement ")"  -- subquery if SELECT/WITH
//	type_name     → identifier ["(" number ["," number] ")"]

// parseCaseExpr parses a CASE expression.
func (p *Parser) parseCaseExpr() ast.Expr {
	p.expect(token.CASE)
	caseExpr := &ast.CaseExpr{}

	// Simple CASE: CASE expr WHEN ...
	if !p.check(token.WHEN) {
		caseExpr.Operand = p.parseExpression()
	}

	// WHEN clauses
	for p.match(token.WHEN) {
		when := ast.WhenClause{}
		when.Condition = p.parseExpression()
		p.expect(token.THEN)
		when.Result = p.parseExpression()
		caseExpr.Whens = append(caseExpr.Whens, when)
	}

	// ELSE clause
	if p.match(token.ELSE) {
		caseExpr.Else = p.parseExpression()
	}

	p.expect(token.END)
	return caseExpr
}

// parseCastExpr parses a CAST expression.
func (p *Parser) parseCastExpr() ast.Expr {
	p.expect(token.CAST)
	p.expect(token.LPAREN)

	cast := &ast.CastExpr{}
	cast.Expr = p.parseExpression()

	p.expect(token.AS)

	// Parse type name (can have parameters like VARCHAR(255))
	cast.TypeName = p.parseTypeName()

	p.expect(token.RPAREN)
	return cast
}

// parseTypeName parses a type name with optional parameters.
func (p *Parser) parseTypeName() string {
	if !p.check(token.IDENT) {
		p.addError("expected type name")
		return ""
	}

	typeName := p.token.Literal
	p.nextToken()

	// Type parameters like VARCHAR(255) or DECIMAL(10, 2)
	if p.match(token.LPAREN) {
		typeName += "("
		for {
			if p.check(token.NUMBER) || p.check(token.IDENT) {
				typeName += p.token.Literal
				p.nextToken()
			}

			if !p.match(token.COMMA) {
				break
			}
			typeName += ", "
		}
		p.expect(token.RPAREN)
		typeName += ")"
	}

	return typeName
}

// parseParenExpr parses a parenthesized expression or subquery.
func (p *Parser) parseParenExpr() ast.Expr {
	p.expect(token.LPAREN)

	// Check if this is a subquery
	if p.check(token.SELECT) || p.check(token.WITH) {
		subquery := &ast.SubqueryExpr{Select: p.parseStatement()}
		p.expect(token.RPAREN)
		return subquery
	}

	expr := p.parseExpression()
	p.expect(token.RPAREN)
	return &ast.ParenExpr{Expr: expr}
}

// parseExistsExpr parses an EXISTS expression.
func (p *Parser) parseExistsExpr(not bool) ast.Expr {
	// Consume EXISTS keyword
	p.nextToken()

	p.expect(token.LPAREN)
	exists := &ast.ExistsExpr{Not: not, Select: p.parseStatement()}
	p.expect(token.RPAREN)

	return exists
}
