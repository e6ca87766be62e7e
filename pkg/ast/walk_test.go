package ast_test

import (
	"testing"

	"github.com/leapstack-labs/sqlremap/pkg/ast"
	"github.com/leapstack-labs/sqlremap/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sparkdialect "github.com/leapstack-labs/sqlremap/pkg/dialects/spark"
)

func TestInspectVisitsAllTableNames(t *testing.T) {
	sql := `WITH recent AS (SELECT * FROM raw.events)
	        SELECT * FROM recent
	        JOIN sales.orders ON recent.id = orders.event_id
	        WHERE orders.id IN (SELECT order_id FROM sales.refunds)`

	stmt, err := parser.Parse(sql, sparkdialect.Spark)
	require.NoError(t, err)

	var names []string
	ast.Inspect(stmt, func(n any) bool {
		if tn, ok := n.(*ast.TableName); ok {
			names = append(names, tn.Name.Value)
		}
		return true
	})

	assert.Equal(t, []string{"events", "recent", "orders", "refunds"}, names)
}

func TestInspectSkipsChildrenOnFalse(t *testing.T) {
	stmt, err := parser.Parse("SELECT * FROM (SELECT * FROM raw.events) AS sub", sparkdialect.Spark)
	require.NoError(t, err)

	var count int
	ast.Inspect(stmt, func(n any) bool {
		if _, ok := n.(*ast.DerivedTable); ok {
			count++
			return false // do not descend into the subquery
		}
		if _, ok := n.(*ast.TableName); ok {
			count += 100
		}
		return true
	})

	assert.Equal(t, 1, count)
}
