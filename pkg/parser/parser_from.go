package parser

import (
	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/token"
)

// FROM clause parsing: table references, derived tables, lateral joins, JOINs.
//
// Grammar:
//
//	from_clause   → table_ref (join)*
//	table_ref     → table_name | derived_table | lateral_table
//	table_name    → [catalog "."] [schema "."] identifier [AS identifier]
//	derived_table → "(" statement ")" [AS] identifier
//	lateral_table → LATERAL "(" statement ")" [AS] identifier
//	join          → [NATURAL] join_type JOIN table_ref [ON expr | USING "(" columns ")"]
//	              | "," table_ref
//	join_type     → [INNER] | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] | CROSS

// parseFromClause parses the FROM clause.
func (p *Parser) parseFromClause() *ast.FromClause {
	from := &ast.FromClause{}
	from.Source = p.parseTableRef()

	// Parse JOINs
	for {
		join := p.parseJoin()
		if join == nil {
			break
		}
		from.Joins = append(from.Joins, join)
	}

	return from
}

// parseTableRef parses a table reference.
func (p *Parser) parseTableRef() ast.TableRef {
	// LATERAL subquery
	if p.match(token.LATERAL) {
		return p.parseLateralTable()
	}

	// Derived table (subquery)
	if p.check(token.LPAREN) {
		return p.parseDerivedTable()
	}

	// Simple table name
	return p.parseTableName()
}

// parseTableName parses a table name with optional schema/catalog.
// Each dotted part keeps track of whether it was quoted in the source.
func (p *Parser) parseTableName() *ast.TableName {
	table := &ast.TableName{}

	if !p.check(token.IDENT) {
		p.addError("expected table name")
		return table
	}

	startPos := p.token.Pos

	// Parse potentially qualified name: catalog.schema.table
	parts := []ast.Ident{{Value: p.token.Literal, Quoted: p.token.Quoted}}
	p.nextToken()

	for p.match(token.DOT) {
		if p.check(token.IDENT) {
			parts = append(parts, ast.Ident{Value: p.token.Literal, Quoted: p.token.Quoted})
			p.nextToken()
		} else {
			p.addError("expected identifier after '.'")
		}
	}

	switch len(parts) {
	case 1:
		table.Name = &parts[0]
	case 2:
		table.Schema = &parts[0]
		table.Name = &parts[1]
	case 3:
		table.Catalog = &parts[0]
		table.Schema = &parts[1]
		table.Name = &parts[2]
	default:
		p.addError("table name has too many qualifiers")
		table.Catalog = &parts[0]
		table.Schema = &parts[1]
		table.Name = &parts[2]
	}

	table.Span = token.Span{Start: startPos, End: p.token.Pos}

	// Optional alias
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			table.Alias = p.token.Literal
			p.nextToken()
		}
	} else if p.check(token.IDENT) && !p.isJoinKeyword(p.token) && !p.isClauseKeyword(p.token) {
		table.Alias = p.token.Literal
		p.nextToken()
	}

	return table
}

// parseDerivedTable parses a derived table (subquery in FROM).
func (p *Parser) parseDerivedTable() *ast.DerivedTable {
	p.expect(token.LPAREN)
	derived := &ast.DerivedTable{}
	derived.Select = p.parseStatement()
	p.expect(token.RPAREN)

	// Alias is required for derived tables
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			derived.Alias = p.token.Literal
			p.nextToken()
		}
	} else if p.check(token.IDENT) {
		derived.Alias = p.token.Literal
		p.nextToken()
	}

	return derived
}

// parseLateralTable parses a LATERAL subquery.
func (p *Parser) parseLateralTable() *ast.LateralTable {
	p.expect(token.LPAREN)
	lateral := &ast.LateralTable{}
	lateral.Select = p.parseStatement()
	p.expect(token.RPAREN)

	// Alias
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			lateral.Alias = p.token.Literal
			p.nextToken()
		}
	} else if p.check(token.IDENT) {
		lateral.Alias = p.token.Literal
		p.nextToken()
	}

	return lateral
}

// parseJoin parses a JOIN clause.
func (p *Parser) parseJoin() *ast.Join {
	join := &ast.Join{}

	// Comma join (implicit cross join)
	if p.match(token.COMMA) {
		join.Type = ast.JoinComma
		join.Right = p.parseTableRef()
		return join
	}

	// NATURAL modifier
	if p.match(token.NATURAL) {
		join.Natural = true
	}

	switch p.token.Type {
	case token.JOIN, token.INNER:
		join.Type = ast.JoinInner
		p.match(token.INNER)
	case token.LEFT:
		join.Type = ast.JoinLeft
		p.nextToken()
		p.match(token.OUTER)
	case token.RIGHT:
		join.Type = ast.JoinRight
		p.nextToken()
		p.match(token.OUTER)
	case token.FULL:
		join.Type = ast.JoinFull
		p.nextToken()
		p.match(token.OUTER)
	case token.CROSS:
		join.Type = ast.JoinCross
		p.nextToken()
	default:
		if join.Natural {
			p.addError("expected join type after NATURAL")
		}
		return nil // no join
	}

	if !p.expect(token.JOIN) {
		return nil
	}

	join.Right = p.parseTableRef()
	p.parseJoinCondition(join)
	return join
}

// parseJoinCondition handles ON/USING/NATURAL validation.
func (p *Parser) parseJoinCondition(join *ast.Join) {
	switch {
	case join.Natural:
		// NATURAL JOIN cannot have ON or USING
		if p.check(token.ON) {
			p.addError("NATURAL JOIN cannot have ON clause")
		}
		if p.check(token.USING) {
			p.addError("NATURAL JOIN cannot have USING clause")
		}
	case p.match(token.ON):
		join.Condition = p.parseExpression()
	case p.match(token.USING):
		join.Using = p.parseUsingColumns()
	}
}

// parseUsingColumns parses the column list in USING (col1, col2, ...).
func (p *Parser) parseUsingColumns() []string {
	p.expect(token.LPAREN)
	var cols []string
	for {
		if !p.check(token.IDENT) {
			p.addError("expected column name in USING clause")
			break
		}
		cols = append(cols, p.token.Literal)
		p.nextToken()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return cols
}
