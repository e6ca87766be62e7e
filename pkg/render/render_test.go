package render_test

import (
	"testing"

	"github.com/leapstack-labs/sqlremap/pkg/parser"
	"github.com/leapstack-labs/sqlremap/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sparkdialect "github.com/leapstack-labs/sqlremap/pkg/dialects/spark"
)

// roundTrip parses and renders the input with the Spark dialect.
func roundTrip(t *testing.T, sql string) string {
	t.Helper()
	stmt, err := parser.Parse(sql, sparkdialect.Spark)
	require.NoError(t, err)
	out, err := render.Render(stmt, sparkdialect.Spark)
	require.NoError(t, err)
	return out
}

func TestRenderCanonicalForm(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "keywords uppercased",
			sql:  "select a, b from sales.orders",
			want: "SELECT a, b FROM sales.orders",
		},
		{
			name: "full clause sequence",
			sql:  "SELECT DISTINCT a FROM t WHERE a > 1 GROUP BY a HAVING count(*) > 2 ORDER BY a DESC LIMIT 10 OFFSET 5",
			want: "SELECT DISTINCT a FROM t WHERE a > 1 GROUP BY a HAVING COUNT(*) > 2 ORDER BY a DESC LIMIT 10 OFFSET 5",
		},
		{
			name: "inner join rendered as plain join",
			sql:  "SELECT * FROM a INNER JOIN b ON a.id = b.id",
			want: "SELECT * FROM a JOIN b ON a.id = b.id",
		},
		{
			name: "left outer join normalized",
			sql:  "SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id",
			want: "SELECT * FROM a LEFT JOIN b ON a.id = b.id",
		},
		{
			name: "comma join",
			sql:  "SELECT * FROM a, b",
			want: "SELECT * FROM a, b",
		},
		{
			name: "join using",
			sql:  "SELECT * FROM a JOIN b USING (id, ds)",
			want: "SELECT * FROM a JOIN b USING (id, ds)",
		},
		{
			name: "bare alias gets AS",
			sql:  "SELECT * FROM sales.orders o",
			want: "SELECT * FROM sales.orders AS o",
		},
		{
			name: "with clause",
			sql:  "WITH x AS (SELECT 1) SELECT * FROM x",
			want: "WITH x AS (SELECT 1) SELECT * FROM x",
		},
		{
			name: "union all",
			sql:  "SELECT a FROM t1 UNION ALL SELECT a FROM t2",
			want: "SELECT a FROM t1 UNION ALL SELECT a FROM t2",
		},
		{
			name: "case expression",
			sql:  "SELECT CASE WHEN a > 1 THEN 'big' ELSE 'small' END FROM t",
			want: "SELECT CASE WHEN a > 1 THEN 'big' ELSE 'small' END FROM t",
		},
		{
			name: "cast with type parameters",
			sql:  "SELECT CAST(a AS VARCHAR(10)) FROM t",
			want: "SELECT CAST(a AS VARCHAR(10)) FROM t",
		},
		{
			name: "between",
			sql:  "SELECT * FROM t WHERE a BETWEEN 1 AND 10",
			want: "SELECT * FROM t WHERE a BETWEEN 1 AND 10",
		},
		{
			name: "in list",
			sql:  "SELECT * FROM t WHERE a IN (1, 2, 3)",
			want: "SELECT * FROM t WHERE a IN (1, 2, 3)",
		},
		{
			name: "in subquery",
			sql:  "SELECT * FROM t WHERE id IN (SELECT id FROM sales.refunds)",
			want: "SELECT * FROM t WHERE id IN (SELECT id FROM sales.refunds)",
		},
		{
			name: "is not null",
			sql:  "SELECT * FROM t WHERE a IS NOT NULL",
			want: "SELECT * FROM t WHERE a IS NOT NULL",
		},
		{
			name: "like",
			sql:  "SELECT * FROM t WHERE name LIKE 'x%'",
			want: "SELECT * FROM t WHERE name LIKE 'x%'",
		},
		{
			name: "concat operator",
			sql:  "SELECT a || b FROM t",
			want: "SELECT a || b FROM t",
		},
		{
			name: "string literal with escaped quote",
			sql:  "SELECT 'it''s' FROM t",
			want: "SELECT 'it''s' FROM t",
		},
		{
			name: "table star",
			sql:  "SELECT t.* FROM t",
			want: "SELECT t.* FROM t",
		},
		{
			name: "window function",
			sql:  "SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b DESC) FROM t",
			want: "SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b DESC) FROM t",
		},
		{
			name: "exists",
			sql:  "SELECT * FROM t WHERE EXISTS (SELECT 1 FROM audit.log)",
			want: "SELECT * FROM t WHERE EXISTS (SELECT 1 FROM audit.log)",
		},
		{
			name: "comments dropped",
			sql:  "SELECT a /* keep the row */ FROM t -- done",
			want: "SELECT a FROM t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundTrip(t, tt.sql))
		})
	}
}

func TestRenderQuotingFidelity(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "quoted components stay quoted",
			sql:  "SELECT * FROM `My DB`.`Orders`",
			want: "SELECT * FROM `My DB`.`Orders`",
		},
		{
			name: "unquoted components stay bare",
			sql:  "SELECT * FROM sales.orders",
			want: "SELECT * FROM sales.orders",
		},
		{
			name: "quoted simple name keeps its quotes",
			sql:  "SELECT * FROM db.`plain`",
			want: "SELECT * FROM db.`plain`",
		},
		{
			name: "embedded backtick escaped on output",
			sql:  "SELECT * FROM db.`a``b`",
			want: "SELECT * FROM db.`a``b`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundTrip(t, tt.sql))
		})
	}
}

func TestRenderIdempotent(t *testing.T) {
	sql := "WITH recent AS (SELECT * FROM raw.events WHERE ds > '2024-01-01') SELECT e.id, COUNT(*) AS n FROM recent AS e GROUP BY e.id ORDER BY n DESC LIMIT 100"

	once := roundTrip(t, sql)
	twice := roundTrip(t, once)
	assert.Equal(t, once, twice)
}

func TestRenderNilDialect(t *testing.T) {
	stmt, err := parser.Parse("SELECT 1", sparkdialect.Spark)
	require.NoError(t, err)

	_, err = render.Render(stmt, nil)
	require.Error(t, err)
}
