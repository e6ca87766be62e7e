// Package render turns a parsed SELECT tree back into SQL text.
//
// Output is a single line with canonical spacing and uppercase keywords.
// Table name components keep their original quoting unless the dialect
// requires quoting; other identifiers are quoted only when the dialect
// requires it.
package render

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/dialect"
	"github.com/leapstack-labs/sqlremap/pkg/token"
)

// Render returns the SQL text for the given statement.
func Render(stmt *ast.SelectStmt, d *dialect.Dialect) (string, error) {
	if d == nil {
		return "", dialect.ErrDialectRequired
	}
	p := newPrinter(d)
	p.formatSelectStmt(stmt)
	return p.String(), nil
}

// Printer accumulates SQL output.
type Printer struct {
	dialect *dialect.Dialect
	output  *bytes.Buffer
}

func newPrinter(d *dialect.Dialect) *Printer {
	return &Printer{
		dialect: d,
		output:  &bytes.Buffer{},
	}
}

// String returns the rendered output.
func (p *Printer) String() string {
	return strings.TrimSpace(p.output.String())
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

func (p *Printer) keyword(s string) {
	p.write(strings.ToUpper(s))
}

// kw prints keywords based on their token types.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// ident prints an identifier that carries its original quoting. It stays
// quoted if it was quoted in the source or the dialect requires quoting.
func (p *Printer) ident(id *ast.Ident) {
	if id == nil {
		return
	}
	if id.Quoted || p.dialect.NeedsQuoting(id.Value) {
		p.write(p.dialect.QuoteIdentifier(id.Value))
		return
	}
	p.write(id.Value)
}

// name prints a plain identifier, quoting only when the dialect requires it.
func (p *Printer) name(s string) {
	p.write(p.dialect.QuoteIdentifierIfNeeded(s))
}

// formatList prints a list of items with separators.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
		}
	}
}
