// Package parser provides SQL SELECT parsing with dialect-aware identifier
// quoting.
//
// # Usage
//
//	d, err := dialect.Get("spark")
//	stmt, err := parser.Parse("SELECT a, b FROM t", d)
//	if err != nil {
//	    // handle error
//	}
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for a subset of SQL:
//
//	statement     → [WITH cte_list] select_body
//	select_body   → select_core [(UNION|INTERSECT|EXCEPT) [ALL] select_body]
//	select_core   → SELECT [DISTINCT] select_list [FROM from_clause]
//	                [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	                [QUALIFY expr] [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/dialect"
	"github.com/leapstack-labs/sqlremap/pkg/token"
)

// Parser parses SQL into an AST.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect // required
}

// NewParser creates a new parser for the given SQL input and dialect.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	p := &Parser{
		lexer:   NewLexer(sql, d),
		dialect: d,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the SQL with the given dialect and returns the AST.
func Parse(sql string, d *dialect.Dialect) (*ast.SelectStmt, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	p := NewParser(sql, d)
	stmt := p.parseStatement()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if !p.check(token.EOF) {
		return nil, &ParseError{
			Pos:     p.token.Pos,
			Message: fmt.Sprintf("unexpected trailing input: %s", p.token.Type),
		}
	}
	return stmt, nil
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// checkPeek2 returns true if the peek2 token is of the given type.
func (p *Parser) checkPeek2(t token.TokenType) bool {
	return p.peek2.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t))
	return false
}

// addError adds a parse error.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// ---------- Keyword Helpers ----------

// isKeyword returns true if the token is a reserved keyword that can't be
// used as a bare alias. Quoted identifiers are never keywords.
func (p *Parser) isKeyword(tok token.Token) bool {
	if tok.Quoted {
		return false
	}
	switch tok.Type {
	case token.FROM, token.UNION, token.INTERSECT, token.EXCEPT,
		token.LEFT, token.RIGHT, token.INNER, token.OUTER, token.FULL,
		token.CROSS, token.JOIN, token.NATURAL, token.ON, token.USING,
		token.LATERAL:
		return true
	}
	return p.isClauseKeyword(tok)
}

// isJoinKeyword returns true if token is a JOIN-related keyword.
func (p *Parser) isJoinKeyword(tok token.Token) bool {
	if tok.Quoted {
		return false
	}
	switch tok.Type {
	case token.JOIN, token.LEFT, token.RIGHT, token.INNER, token.OUTER,
		token.FULL, token.CROSS, token.NATURAL, token.ON, token.USING,
		token.LATERAL:
		return true
	}
	return false
}

// isClauseKeyword returns true if token starts a new clause.
func (p *Parser) isClauseKeyword(tok token.Token) bool {
	if tok.Quoted {
		return false
	}
	switch tok.Type {
	case token.WHERE, token.GROUP, token.HAVING, token.QUALIFY,
		token.ORDER, token.LIMIT, token.OFFSET,
		token.UNION, token.INTERSECT, token.EXCEPT:
		return true
	}
	return false
}
