package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"select", SELECT},
		{"from", FROM},
		{"with", WITH},
		{"exists", EXISTS},
		{"orders", IDENT},
		{"qualify", IDENT}, // dialect keyword, not builtin
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.ident))
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "||", DPIPE.String())
	assert.Equal(t, "IDENT", IDENT.String())
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword(SELECT))
	assert.True(t, IsKeyword(QUALIFY))
	assert.False(t, IsKeyword(IDENT))
	assert.False(t, IsKeyword(PLUS))
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 14, Offset: 42}
	assert.Equal(t, "line 3, column 14", p.String())
	assert.True(t, p.IsValid())
	assert.False(t, Position{}.IsValid())
}

func TestSpanContains(t *testing.T) {
	s := Span{
		Start: Position{Line: 1, Column: 15, Offset: 14},
		End:   Position{Line: 1, Column: 20, Offset: 19},
	}
	assert.True(t, s.IsValid())
	assert.True(t, s.Contains(14))
	assert.True(t, s.Contains(18))
	assert.False(t, s.Contains(19)) // end is exclusive
	assert.False(t, s.Contains(13))
}

func TestIsOperator(t *testing.T) {
	assert.True(t, IsOperator(PLUS))
	assert.True(t, IsOperator(RPAREN))
	assert.False(t, IsOperator(SELECT))
	assert.False(t, IsOperator(EOF))
}
