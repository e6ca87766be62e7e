// Package ansi provides a baseline ANSI SQL dialect definition.
package ansi

import (
	"github.com/leapstack-labs/sqlremap/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

var ansiReservedWords = []string{
	"all", "and", "any", "as", "between", "both", "by", "case", "cast",
	"check", "collate", "column", "constraint", "create", "cross",
	"current", "current_date", "current_time", "current_timestamp",
	"default", "distinct", "else", "end", "escape", "except", "exists",
	"fetch", "filter", "for", "foreign", "from", "full", "grant", "group",
	"having", "in", "inner", "intersect", "into", "is", "join", "lateral",
	"leading", "left", "like", "limit", "natural", "not", "null", "offset",
	"on", "only", "or", "order", "outer", "overlaps", "partition",
	"primary", "references", "right", "select", "some", "table", "then",
	"to", "trailing", "true", "union", "unique", "user", "using", "when",
	"where", "window", "with",
}

// ANSI is a conservative baseline dialect. Identifiers are quoted with
// double quotes and unquoted names fold to lowercase.
var ANSI = dialect.NewDialect("ansi").
	Identifiers(`"`, `"`, `""`, dialect.NormLowercase).
	WithReservedWords(ansiReservedWords...).
	Build()
