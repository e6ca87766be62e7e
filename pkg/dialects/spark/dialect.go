// Package spark provides the Spark SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package spark

import (
	"github.com/leapstack-labs/sqlremap/pkg/dialect"
	"github.com/leapstack-labs/sqlremap/pkg/token"
)

func init() {
	dialect.Register(Spark)
}

// sparkReservedWords are words that must be backquoted when used as
// identifiers. Based on the Spark SQL ANSI reserved keyword list.
var sparkReservedWords = []string{
	"all", "and", "any", "as", "authorization", "between", "both", "by",
	"case", "cast", "check", "collate", "column", "constraint", "create",
	"cross", "current", "current_date", "current_time", "current_timestamp",
	"current_user", "distinct", "else", "end", "escape", "except", "exists",
	"external", "extract", "false", "fetch", "filter", "for", "foreign",
	"from", "full", "grant", "group", "having", "in", "inner", "intersect",
	"into", "is", "join", "lateral", "leading", "left", "like", "limit",
	"natural", "not", "null", "offset", "on", "only", "or", "order", "outer",
	"overlaps", "partition", "primary", "references", "right", "select",
	"session_user", "some", "table", "then", "time", "to", "trailing",
	"true", "union", "unique", "unknown", "user", "using", "when", "where",
	"window", "with",
}

// Spark is the Spark SQL dialect. Identifiers are quoted with backticks,
// a literal backtick is escaped by doubling, and unquoted names compare
// case-insensitively with their original spelling preserved.
var Spark = dialect.NewDialect("spark").
	Identifiers("`", "`", "``", dialect.NormCaseInsensitive).
	AddKeyword("QUALIFY", token.QUALIFY).
	AddKeyword("ILIKE", token.ILIKE).
	AddKeyword("RLIKE", token.RLIKE).
	WithReservedWords(sparkReservedWords...).
	Build()
