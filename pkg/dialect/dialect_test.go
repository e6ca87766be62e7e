package dialect

import (
	"testing"

	"github.com/leapstack-labs/sqlremap/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		norm NormalizationStrategy
		in   string
		want string
	}{
		{"lowercase", NormLowercase, "MyTable", "mytable"},
		{"uppercase", NormUppercase, "MyTable", "MYTABLE"},
		{"case sensitive", NormCaseSensitive, "MyTable", "MyTable"},
		{"case insensitive", NormCaseInsensitive, "MyTable", "mytable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDialect("test").Identifiers(`"`, `"`, `""`, tt.norm).Build()
			assert.Equal(t, tt.want, d.NormalizeName(tt.in))
		})
	}
}

func TestIsReservedWord(t *testing.T) {
	d := NewDialect("test").WithReservedWords("select", "from", "order").Build()

	assert.True(t, d.IsReservedWord("select"))
	assert.True(t, d.IsReservedWord("SELECT")) // normalized before lookup
	assert.True(t, d.IsReservedWord("Order"))
	assert.False(t, d.IsReservedWord("orders"))
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		quote string
		esc   string
		in    string
		want  string
	}{
		{"double quotes", `"`, `""`, "my table", `"my table"`},
		{"embedded quote escaped", `"`, `""`, `my"name`, `"my""name"`},
		{"backticks", "`", "``", "my table", "`my table`"},
		{"embedded backtick escaped", "`", "``", "a`b", "`a``b`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDialect("test").Identifiers(tt.quote, tt.quote, tt.esc, NormLowercase).Build()
			assert.Equal(t, tt.want, d.QuoteIdentifier(tt.in))
		})
	}
}

func TestNeedsQuoting(t *testing.T) {
	d := NewDialect("test").WithReservedWords("select", "order").Build()

	tests := []struct {
		in   string
		want bool
	}{
		{"orders", false},
		{"order_items", false},
		{"_private", false},
		{"t1", false},
		{"", true},
		{"select", true},
		{"ORDER", true},
		{"my table", true},
		{"my-table", true},
		{"1table", true},
		{"café", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, d.NeedsQuoting(tt.in))
		})
	}
}

func TestQuoteIdentifierIfNeeded(t *testing.T) {
	d := NewDialect("test").WithReservedWords("order").Build()

	assert.Equal(t, "orders", d.QuoteIdentifierIfNeeded("orders"))
	assert.Equal(t, `"order"`, d.QuoteIdentifierIfNeeded("order"))
	assert.Equal(t, `"my table"`, d.QuoteIdentifierIfNeeded("my table"))
}

func TestLookupKeyword(t *testing.T) {
	d := NewDialect("test").AddKeyword("QUALIFY", token.QUALIFY).Build()

	tok, ok := d.LookupKeyword("qualify")
	require.True(t, ok)
	assert.Equal(t, token.QUALIFY, tok)

	tok, ok = d.LookupKeyword("QUALIFY")
	require.True(t, ok)
	assert.Equal(t, token.QUALIFY, tok)

	_, ok = d.LookupKeyword("frobnicate")
	assert.False(t, ok)
}

func TestRegistry(t *testing.T) {
	d := NewDialect("registrytest").Build()
	Register(d)

	got, err := Get("registrytest")
	require.NoError(t, err)
	assert.Same(t, d, got)

	got, err = Get("RegistryTest") // lookup is case-insensitive
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = Get("no-such-dialect")
	require.Error(t, err)

	assert.Contains(t, List(), "registrytest")
}
