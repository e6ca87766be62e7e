package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlremap/internal/rules"
	"github.com/leapstack-labs/sqlremap/internal/testutil"
	"github.com/leapstack-labs/sqlremap/pkg/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sparkdialect "github.com/leapstack-labs/sqlremap/pkg/dialects/spark"
)

func TestParse(t *testing.T) {
	data := []byte(`
rules:
  - match:
      database: staging
      name: "*"
    rewrite:
      database: analytics
  - match:
      name: legacy_orders
    rewrite:
      name: orders
      catalog: ""
`)

	parsed, err := rules.Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.Equal(t, "staging", parsed[0].Match.Database)
	assert.Equal(t, "*", parsed[0].Match.Name)
	require.NotNil(t, parsed[0].Rewrite.Database)
	assert.Equal(t, "analytics", *parsed[0].Rewrite.Database)
	assert.Nil(t, parsed[0].Rewrite.Name) // absent key keeps the component

	require.NotNil(t, parsed[1].Rewrite.Catalog)
	assert.Empty(t, *parsed[1].Rewrite.Catalog) // empty string clears
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := rules.Parse([]byte("rules: [whoops"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - match:
      database: staging
    rewrite:
      database: analytics
`), 0o600))

	loaded, err := rules.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "staging", loaded[0].Match.Database)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := rules.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestHandlerMatching(t *testing.T) {
	set := func(v string) *string { return &v }

	ruleSet := []rules.Rule{
		{
			Match:   rules.Match{Database: "staging"},
			Rewrite: rules.Rewrite{Database: set("analytics")},
		},
		{
			Match:   rules.Match{Catalog: "old", Database: "*", Name: "*"},
			Rewrite: rules.Rewrite{Catalog: set("")},
		},
	}
	handler := rules.Handler(ruleSet, sparkdialect.Spark)

	t.Run("first matching rule wins", func(t *testing.T) {
		dec, err := handler(rewrite.TableID{Database: "staging", Name: "events"})
		require.NoError(t, err)
		assert.Equal(t, rewrite.Decision{Database: rewrite.Set("analytics")}, dec)
	})

	t.Run("match is case-insensitive for spark", func(t *testing.T) {
		dec, err := handler(rewrite.TableID{Database: "STAGING", Name: "events"})
		require.NoError(t, err)
		assert.Equal(t, rewrite.Decision{Database: rewrite.Set("analytics")}, dec)
	})

	t.Run("wildcard match", func(t *testing.T) {
		dec, err := handler(rewrite.TableID{Catalog: "old", Database: "sales", Name: "orders"})
		require.NoError(t, err)
		assert.Equal(t, rewrite.Decision{Catalog: rewrite.Clear()}, dec)
	})

	t.Run("no match keeps everything", func(t *testing.T) {
		dec, err := handler(rewrite.TableID{Database: "sales", Name: "orders"})
		require.NoError(t, err)
		assert.Equal(t, rewrite.KeepAll(), dec)
	})
}

func TestHandlerEndToEnd(t *testing.T) {
	ruleSet, err := rules.Parse([]byte(`
rules:
  - match:
      database: staging
    rewrite:
      catalog: prod
      database: analytics
`))
	require.NoError(t, err)

	r := rewrite.New(sparkdialect.Spark, rules.Handler(ruleSet, sparkdialect.Spark),
		rewrite.WithLogger(testutil.NewTestLogger(t)))
	out, err := r.Rewrite("SELECT * FROM staging.events JOIN sales.orders ON events.id = orders.event_id")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM prod.analytics.events JOIN sales.orders ON events.id = orders.event_id", out)
}
