package rewrite_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/sqlremap/internal/testutil"
	"github.com/leapstack-labs/sqlremap/pkg/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sparkdialect "github.com/leapstack-labs/sqlremap/pkg/dialects/spark"
)

// keepAll is a handler that leaves every reference unchanged.
func keepAll(rewrite.TableID) (rewrite.Decision, error) {
	return rewrite.KeepAll(), nil
}

func newRewriter(t *testing.T, handler rewrite.Handler, opts ...rewrite.Option) *rewrite.Rewriter {
	t.Helper()
	opts = append([]rewrite.Option{rewrite.WithLogger(testutil.NewTestLogger(t))}, opts...)
	return rewrite.New(sparkdialect.Spark, handler, opts...)
}

func TestRewriteIdentity(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "simple select",
			sql:  "SELECT * FROM sales.orders",
			want: "SELECT * FROM sales.orders",
		},
		{
			name: "fully qualified",
			sql:  "SELECT * FROM prod.sales.orders",
			want: "SELECT * FROM prod.sales.orders",
		},
		{
			name: "quoted components preserved",
			sql:  "SELECT * FROM `My DB`.`Orders`",
			want: "SELECT * FROM `My DB`.`Orders`",
		},
		{
			name: "joins and subqueries",
			sql:  "SELECT * FROM sales.orders AS o JOIN sales.refunds AS r ON o.id = r.order_id WHERE o.id IN (SELECT id FROM audit.log)",
			want: "SELECT * FROM sales.orders AS o JOIN sales.refunds AS r ON o.id = r.order_id WHERE o.id IN (SELECT id FROM audit.log)",
		},
	}

	r := newRewriter(t, keepAll)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Rewrite(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRewriteSetComponents(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		decision rewrite.Decision
		want     string
	}{
		{
			name:     "add catalog",
			sql:      "SELECT * FROM sales.orders",
			decision: rewrite.Decision{Catalog: rewrite.Set("prod")},
			want:     "SELECT * FROM prod.sales.orders",
		},
		{
			name:     "replace database",
			sql:      "SELECT * FROM sales.orders",
			decision: rewrite.Decision{Database: rewrite.Set("analytics")},
			want:     "SELECT * FROM analytics.orders",
		},
		{
			name:     "replace name",
			sql:      "SELECT * FROM sales.orders",
			decision: rewrite.Decision{Name: rewrite.Set("orders_v2")},
			want:     "SELECT * FROM sales.orders_v2",
		},
		{
			name:     "remove catalog",
			sql:      "SELECT * FROM prod.sales.orders",
			decision: rewrite.Decision{Catalog: rewrite.Clear()},
			want:     "SELECT * FROM sales.orders",
		},
		{
			name: "replace everything",
			sql:  "SELECT * FROM sales.orders",
			decision: rewrite.Decision{
				Catalog:  rewrite.Set("prod"),
				Database: rewrite.Set("analytics"),
				Name:     rewrite.Set("fct_orders"),
			},
			want: "SELECT * FROM prod.analytics.fct_orders",
		},
		{
			name:     "alias survives rewrite",
			sql:      "SELECT o.id FROM sales.orders AS o",
			decision: rewrite.Decision{Database: rewrite.Set("analytics")},
			want:     "SELECT o.id FROM analytics.orders AS o",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRewriter(t, func(rewrite.TableID) (rewrite.Decision, error) {
				return tt.decision, nil
			})
			out, err := r.Rewrite(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRewriteQuotingFidelity(t *testing.T) {
	rewriteWith := func(t *testing.T, sql string, dec rewrite.Decision) string {
		t.Helper()
		r := newRewriter(t, func(rewrite.TableID) (rewrite.Decision, error) {
			return dec, nil
		})
		out, err := r.Rewrite(sql)
		require.NoError(t, err)
		return out
	}

	t.Run("replacement of quoted component stays quoted", func(t *testing.T) {
		out := rewriteWith(t, "SELECT * FROM `Sales`.orders",
			rewrite.Decision{Database: rewrite.Set("Analytics")})
		assert.Equal(t, "SELECT * FROM `Analytics`.orders", out)
	})

	t.Run("replacement of bare component stays bare", func(t *testing.T) {
		out := rewriteWith(t, "SELECT * FROM sales.orders",
			rewrite.Decision{Database: rewrite.Set("analytics")})
		assert.Equal(t, "SELECT * FROM analytics.orders", out)
	})

	t.Run("replacement needing quotes gets them", func(t *testing.T) {
		out := rewriteWith(t, "SELECT * FROM sales.orders",
			rewrite.Decision{Database: rewrite.Set("my-db")})
		assert.Equal(t, "SELECT * FROM `my-db`.orders", out)
	})

	t.Run("reserved word replacement gets quotes", func(t *testing.T) {
		out := rewriteWith(t, "SELECT * FROM sales.orders",
			rewrite.Decision{Name: rewrite.Set("table")})
		assert.Equal(t, "SELECT * FROM sales.`table`", out)
	})
}

func TestRewriteSkipsBareNames(t *testing.T) {
	var seen []string
	r := newRewriter(t, func(id rewrite.TableID) (rewrite.Decision, error) {
		seen = append(seen, id.String())
		return rewrite.KeepAll(), nil
	})

	out, err := r.Rewrite("SELECT * FROM orders JOIN sales.refunds ON orders.id = refunds.order_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"sales.refunds"}, seen)
	assert.Contains(t, out, "FROM orders")
}

func TestRewriteSkipsCTEReferences(t *testing.T) {
	sql := "WITH recent AS (SELECT * FROM raw.events) SELECT * FROM recent JOIN sales.orders ON recent.id = orders.event_id"

	t.Run("default mode", func(t *testing.T) {
		var seen []string
		r := newRewriter(t, func(id rewrite.TableID) (rewrite.Decision, error) {
			seen = append(seen, id.String())
			return rewrite.KeepAll(), nil
		})
		_, err := r.Rewrite(sql)
		require.NoError(t, err)
		assert.Equal(t, []string{"raw.events", "sales.orders"}, seen)
	})

	t.Run("unqualified mode still protects CTEs", func(t *testing.T) {
		var seen []string
		r := newRewriter(t, func(id rewrite.TableID) (rewrite.Decision, error) {
			seen = append(seen, id.String())
			return rewrite.KeepAll(), nil
		}, rewrite.WithUnqualified())
		_, err := r.Rewrite(sql)
		require.NoError(t, err)
		assert.Equal(t, []string{"raw.events", "sales.orders"}, seen)
	})
}

func TestRewriteUnqualifiedMode(t *testing.T) {
	r := newRewriter(t, func(id rewrite.TableID) (rewrite.Decision, error) {
		assert.Equal(t, "orders", id.String())
		return rewrite.Decision{Database: rewrite.Set("sales")}, nil
	}, rewrite.WithUnqualified())

	out, err := r.Rewrite("SELECT * FROM orders")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM sales.orders", out)
}

func TestRewriteCTENameMatchingIsNormalized(t *testing.T) {
	// Spark compares identifiers case-insensitively, so a reference to
	// RECENT still hits the CTE named recent.
	var seen []string
	r := newRewriter(t, func(id rewrite.TableID) (rewrite.Decision, error) {
		seen = append(seen, id.String())
		return rewrite.KeepAll(), nil
	}, rewrite.WithUnqualified())

	_, err := r.Rewrite("WITH recent AS (SELECT * FROM raw.events) SELECT * FROM RECENT")
	require.NoError(t, err)
	assert.Equal(t, []string{"raw.events"}, seen)
}

func TestRewriteLaterCTECanReferenceEarlier(t *testing.T) {
	sql := "WITH a AS (SELECT * FROM raw.t), b AS (SELECT * FROM a) SELECT * FROM b"

	var seen []string
	r := newRewriter(t, func(id rewrite.TableID) (rewrite.Decision, error) {
		seen = append(seen, id.String())
		return rewrite.KeepAll(), nil
	}, rewrite.WithUnqualified())

	_, err := r.Rewrite(sql)
	require.NoError(t, err)
	assert.Equal(t, []string{"raw.t"}, seen)
}

func TestRewriteOncePerOccurrence(t *testing.T) {
	sql := "SELECT * FROM sales.orders AS a JOIN sales.orders AS b ON a.id = b.id"

	calls := 0
	r := newRewriter(t, func(id rewrite.TableID) (rewrite.Decision, error) {
		calls++
		return rewrite.Decision{Database: rewrite.Set("analytics")}, nil
	})

	out, err := r.Rewrite(sql)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "SELECT * FROM analytics.orders AS a JOIN analytics.orders AS b ON a.id = b.id", out)
}

func TestRewriteVisitsSubqueries(t *testing.T) {
	sql := "SELECT * FROM (SELECT id FROM sales.orders) AS sub WHERE id IN (SELECT id FROM sales.refunds) AND EXISTS (SELECT 1 FROM audit.log)"

	var seen []string
	r := newRewriter(t, func(id rewrite.TableID) (rewrite.Decision, error) {
		seen = append(seen, id.String())
		return rewrite.KeepAll(), nil
	})

	_, err := r.Rewrite(sql)
	require.NoError(t, err)
	assert.Equal(t, []string{"sales.orders", "sales.refunds", "audit.log"}, seen)
}

func TestRewriteIdempotent(t *testing.T) {
	r := newRewriter(t, func(id rewrite.TableID) (rewrite.Decision, error) {
		if id.Catalog != "prod" {
			return rewrite.Decision{Catalog: rewrite.Set("prod")}, nil
		}
		return rewrite.KeepAll(), nil
	})

	once, err := r.Rewrite("SELECT * FROM sales.orders")
	require.NoError(t, err)

	twice, err := r.Rewrite(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestRewriteHandlerError(t *testing.T) {
	boom := errors.New("boom")
	r := newRewriter(t, func(rewrite.TableID) (rewrite.Decision, error) {
		return rewrite.Decision{}, boom
	})

	_, err := r.Rewrite("SELECT * FROM sales.orders")
	require.ErrorIs(t, err, boom)
}

func TestRewriteInvalidDecisions(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		decision rewrite.Decision
		wantErr  error
	}{
		{
			name:     "clearing the name",
			sql:      "SELECT * FROM sales.orders",
			decision: rewrite.Decision{Name: rewrite.Clear()},
			wantErr:  rewrite.ErrClearName,
		},
		{
			name:     "empty replacement",
			sql:      "SELECT * FROM sales.orders",
			decision: rewrite.Decision{Name: rewrite.Set("")},
			wantErr:  rewrite.ErrEmptyValue,
		},
		{
			name:     "catalog without database",
			sql:      "SELECT * FROM prod.sales.orders",
			decision: rewrite.Decision{Database: rewrite.Clear()},
			wantErr:  rewrite.ErrCatalogWithoutDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRewriter(t, func(rewrite.TableID) (rewrite.Decision, error) {
				return tt.decision, nil
			})
			_, err := r.Rewrite(tt.sql)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRewriteParseError(t *testing.T) {
	r := newRewriter(t, keepAll)
	_, err := r.Rewrite("SELECT FROM WHERE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")
}

func TestRewriteNilDialect(t *testing.T) {
	r := rewrite.New(nil, keepAll)
	_, err := r.Rewrite("SELECT 1")
	require.Error(t, err)
}

func TestRewriteNilHandler(t *testing.T) {
	r := rewrite.New(sparkdialect.Spark, nil)
	_, err := r.Rewrite("SELECT 1")
	require.ErrorIs(t, err, rewrite.ErrHandlerRequired)
}

func TestTableIDString(t *testing.T) {
	tests := []struct {
		id   rewrite.TableID
		want string
	}{
		{rewrite.TableID{Name: "orders"}, "orders"},
		{rewrite.TableID{Database: "sales", Name: "orders"}, "sales.orders"},
		{rewrite.TableID{Catalog: "prod", Database: "sales", Name: "orders"}, "prod.sales.orders"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.id.String())
	}
}
