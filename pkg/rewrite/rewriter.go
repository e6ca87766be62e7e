package rewrite

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/dialect"
	"github.com/leapstack-labs/sqlremap/pkg/parser"
	"github.com/leapstack-labs/sqlremap/pkg/render"
)

// Rewriter rewrites table references in SELECT statements. The handler
// bound at construction decides every rewrite.
type Rewriter struct {
	dialect     *dialect.Dialect
	handler     Handler
	logger      *slog.Logger
	unqualified bool
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Rewriter) {
		r.logger = l
	}
}

// WithUnqualified makes the rewriter visit bare table names too.
// Names that match a CTE in scope are still skipped.
func WithUnqualified() Option {
	return func(r *Rewriter) {
		r.unqualified = true
	}
}

// New creates a Rewriter for the given dialect and handler.
func New(d *dialect.Dialect, handler Handler, opts ...Option) *Rewriter {
	r := &Rewriter{
		dialect: d,
		handler: handler,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite parses sql, applies the handler to every visited table
// reference, and renders the result. Parse errors are returned with
// their position; handler errors abort the rewrite.
func (r *Rewriter) Rewrite(sql string) (string, error) {
	if r.dialect == nil {
		return "", dialect.ErrDialectRequired
	}
	if r.handler == nil {
		return "", ErrHandlerRequired
	}

	stmt, err := parser.Parse(sql, r.dialect)
	if err != nil {
		return "", err
	}

	if err := r.RewriteStmt(stmt); err != nil {
		return "", err
	}

	return render.Render(stmt, r.dialect)
}

// RewriteStmt applies the handler to every visited table reference in the
// statement, mutating it in place. If the handler returns an error the
// walk stops; decisions already applied are not rolled back.
func (r *Rewriter) RewriteStmt(stmt *ast.SelectStmt) error {
	if r.dialect == nil {
		return dialect.ErrDialectRequired
	}
	if r.handler == nil {
		return ErrHandlerRequired
	}
	return r.rewriteStmt(stmt, nil, r.handler)
}

// applyDecision mutates the table reference according to the decision.
func (r *Rewriter) applyDecision(t *ast.TableName, id TableID, dec Decision) error {
	name, err := r.applySlot(t.Name, dec.Name, false)
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", id, err)
	}
	schema, err := r.applySlot(t.Schema, dec.Database, true)
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", id, err)
	}
	catalog, err := r.applySlot(t.Catalog, dec.Catalog, true)
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", id, err)
	}

	if catalog != nil && schema == nil {
		return fmt.Errorf("rewrite %s: %w", id, ErrCatalogWithoutDatabase)
	}

	t.Catalog = catalog
	t.Schema = schema
	t.Name = name
	return nil
}

// applySlot resolves one component. A replaced component stays quoted if
// the original was quoted or the dialect requires quoting for the new name.
func (r *Rewriter) applySlot(orig *ast.Ident, s Slot, allowClear bool) (*ast.Ident, error) {
	switch s.kind {
	case slotKeep:
		return orig, nil
	case slotClear:
		if !allowClear {
			return nil, ErrClearName
		}
		return nil, nil
	case slotSet:
		if s.value == "" {
			return nil, ErrEmptyValue
		}
		quoted := r.dialect.NeedsQuoting(s.value)
		if orig != nil {
			quoted = quoted || orig.Quoted
		}
		return &ast.Ident{Value: s.value, Quoted: quoted}, nil
	default:
		return orig, nil
	}
}
