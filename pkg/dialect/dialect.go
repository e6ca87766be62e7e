// Package dialect provides SQL dialect configuration.
//
// This package contains the public contract for dialect definitions used by the
// parser, renderer, and rewrite engine. Concrete dialect implementations are
// registered from pkg/dialects/*/ packages.
package dialect

import (
	"strings"

	"github.com/leapstack-labs/sqlremap/pkg/token"
)

// NormalizationStrategy defines how a dialect folds unquoted identifiers.
type NormalizationStrategy int

const (
	// NormLowercase folds unquoted identifiers to lowercase (Postgres style).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase folds unquoted identifiers to uppercase (Oracle style).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly.
	NormCaseSensitive
	// NormCaseInsensitive preserves case but compares case-insensitively (Spark style).
	NormCaseInsensitive
)

// IdentifierConfig describes how a dialect quotes and normalizes identifiers.
type IdentifierConfig struct {
	Quote         string // Opening quote character (e.g. "`" or `"`)
	QuoteEnd      string // Closing quote character (same as Quote for most dialects)
	Escape        string // Escape sequence for QuoteEnd inside a quoted name (e.g. "``")
	Normalization NormalizationStrategy
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers IdentifierConfig

	// reservedWords are all keywords that need quoting as identifiers
	reservedWords map[string]struct{}

	// dynamicKw are dialect keywords ("QUALIFY" -> token.QUALIFY)
	dynamicKw map[string]token.TokenType
}

// GetName returns the dialect name.
// This method allows Dialect to satisfy interfaces that require Name() string.
func (d *Dialect) GetName() string {
	return d.Name
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	normalized := d.NormalizeName(word)
	_, ok := d.reservedWords[normalized]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ` -> ``)
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// NeedsQuoting returns true if the name cannot appear as a bare identifier:
// it is a reserved word, is empty, or contains characters outside
// [A-Za-z_][A-Za-z0-9_]*.
func (d *Dialect) NeedsQuoting(name string) bool {
	if name == "" {
		return true
	}
	if d.IsReservedWord(name) {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// QuoteIdentifierIfNeeded quotes an identifier only if the dialect requires it.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.NeedsQuoting(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// LookupKeyword returns the token type for a dialect keyword.
// Returns the token type and true if found, or IDENT and false if not.
func (d *Dialect) LookupKeyword(name string) (token.TokenType, bool) {
	lowerName := strings.ToLower(name)
	if t, ok := d.dynamicKw[lowerName]; ok {
		return t, true
	}
	return token.IDENT, false
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: NormLowercase,
			},
			reservedWords: make(map[string]struct{}),
			dynamicKw:     make(map[string]token.TokenType),
		},
	}
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm NormalizationStrategy) *Builder {
	b.dialect.Identifiers = IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// AddKeyword registers a dialect keyword for the lexer.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.dialect.dynamicKw[strings.ToLower(name)] = t
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[b.dialect.NormalizeName(w)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
